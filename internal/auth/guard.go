package auth

import "github.com/akarpov91/todo-service/internal/domain"

// Action is an operation a principal attempts against an item.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Authorize decides whether p may perform action on item. Reads are open to
// everyone; update and delete are restricted to the item's owner.
func Authorize(p Principal, item domain.TodoItem, action Action) error {
	if action == ActionRead {
		return nil
	}
	if item.Username != p.Username {
		return domain.ErrForbidden
	}
	return nil
}
