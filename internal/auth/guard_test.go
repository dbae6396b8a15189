package auth

import (
	"errors"
	"testing"

	"github.com/akarpov91/todo-service/internal/domain"
)

func TestAuthorize(t *testing.T) {
	item := domain.TodoItem{ID: "1", Username: "alice"}
	owner := Principal{Username: "alice"}
	other := Principal{Username: "bob"}

	tests := []struct {
		name      string
		principal Principal
		action    Action
		wantErr   error
	}{
		{"owner reads", owner, ActionRead, nil},
		{"stranger reads", other, ActionRead, nil},
		{"owner updates", owner, ActionUpdate, nil},
		{"stranger updates", other, ActionUpdate, domain.ErrForbidden},
		{"owner deletes", owner, ActionDelete, nil},
		{"stranger deletes", other, ActionDelete, domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.principal, item, tt.action)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Authorize(%s, %s) = %v, want %v", tt.principal.Username, tt.action, err, tt.wantErr)
			}
		})
	}
}
