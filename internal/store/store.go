// Package store defines the persistence interfaces for users and to-do
// items and provides Postgres and SQLite implementations of both.
package store

import (
	"context"

	"github.com/akarpov91/todo-service/internal/domain"
)

// UserStore is the credential store: it owns User records.
type UserStore interface {
	// InsertUser persists a new user and returns the stored record with its
	// assigned id. A duplicate username or email yields domain.ErrConflict.
	InsertUser(ctx context.Context, u domain.User) (domain.User, error)

	// FindUserByUsername returns domain.ErrNotFound when no user matches.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// ItemStore owns TodoItem records.
type ItemStore interface {
	ListItems(ctx context.Context) ([]domain.TodoItem, error)

	// FindItemByID returns domain.ErrNotFound when no item matches.
	FindItemByID(ctx context.Context, id string) (*domain.TodoItem, error)

	// InsertItem persists a new item and returns the stored record with its
	// assigned id and timestamps.
	InsertItem(ctx context.Context, item domain.TodoItem) (domain.TodoItem, error)

	// UpdateItem overwrites the mutable fields of an existing item and
	// refreshes item.UpdatedAt in place. Returns domain.ErrNotFound when
	// the id no longer exists.
	UpdateItem(ctx context.Context, item *domain.TodoItem) error

	// DeleteItem returns domain.ErrNotFound when the id does not exist, so
	// repeated deletes fail the same way every time.
	DeleteItem(ctx context.Context, id string) error
}
