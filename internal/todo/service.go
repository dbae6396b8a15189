// Package todo implements the item service: ownership-scoped CRUD over the
// item store, with authentication and authorization applied per operation.
package todo

import (
	"context"
	"fmt"

	"github.com/akarpov91/todo-service/internal/auth"
	"github.com/akarpov91/todo-service/internal/domain"
	"github.com/akarpov91/todo-service/internal/store"
)

// ItemPayload carries the client-supplied item fields. Pointer fields
// distinguish an absent field from an explicit zero value, so updates only
// touch what the payload names.
type ItemPayload struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	Completed *bool   `json:"completed"`
}

// Service orchestrates item operations. It holds no state of its own; all
// persistence goes through the item store.
type Service struct {
	items store.ItemStore
	auth  *auth.Authenticator
}

func NewService(items store.ItemStore, authn *auth.Authenticator) *Service {
	return &Service{items: items, auth: authn}
}

// List returns every stored item. No authentication required.
func (s *Service) List(ctx context.Context) ([]domain.TodoItem, error) {
	return s.items.ListItems(ctx)
}

// Get returns a single item by id. No authentication required.
func (s *Service) Get(ctx context.Context, id string) (*domain.TodoItem, error) {
	return s.items.FindItemByID(ctx, id)
}

// Create persists a new item owned by the authenticated caller. Completed
// defaults to false unless the payload overrides it.
func (s *Service) Create(ctx context.Context, payload ItemPayload, creds *auth.Credentials) (*domain.TodoItem, error) {
	principal, err := s.auth.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}

	item := domain.TodoItem{Username: principal.Username}
	applyPayload(&item, payload)

	created, err := s.items.InsertItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}
	return &created, nil
}

// Update overwrites the mutable fields named in the payload. Checks run in
// the order existence, authentication, ownership: a missing id fails with
// NotFound before any credential inspection, and bad credentials fail
// before the ownership comparison.
func (s *Service) Update(ctx context.Context, id string, payload ItemPayload, creds *auth.Credentials) (*domain.TodoItem, error) {
	item, err := s.items.FindItemByID(ctx, id)
	if err != nil {
		return nil, err
	}

	principal, err := s.auth.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(principal, *item, auth.ActionUpdate); err != nil {
		return nil, err
	}

	applyPayload(item, payload)
	if err := s.items.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item. Same check order as Update; deleting an id that
// no longer exists fails with NotFound every time.
func (s *Service) Delete(ctx context.Context, id string, creds *auth.Credentials) error {
	item, err := s.items.FindItemByID(ctx, id)
	if err != nil {
		return err
	}

	principal, err := s.auth.Authenticate(ctx, creds)
	if err != nil {
		return err
	}

	if err := auth.Authorize(principal, *item, auth.ActionDelete); err != nil {
		return err
	}

	return s.items.DeleteItem(ctx, id)
}

func applyPayload(item *domain.TodoItem, payload ItemPayload) {
	if payload.Title != nil {
		item.Title = *payload.Title
	}
	if payload.Body != nil {
		item.Body = *payload.Body
	}
	if payload.Completed != nil {
		item.Completed = *payload.Completed
	}
}
