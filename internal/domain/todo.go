package domain

import "time"

// TodoItem is a persisted to-do entry. Username records the owner and is
// fixed at creation; only the owner may update or delete the item.
type TodoItem struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	Username  string    `db:"username" json:"username"`
	Completed bool      `db:"completed" json:"completed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
