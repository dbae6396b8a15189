package user

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/akarpov91/todo-service/internal/auth"
	"github.com/akarpov91/todo-service/internal/domain"
	"github.com/akarpov91/todo-service/internal/store"
)

func newTestService(t *testing.T) (*Service, *auth.Authenticator) {
	t.Helper()

	s, err := store.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	authn := auth.NewAuthenticator(s)
	return NewService(s, authn), authn
}

func TestRegisterThenAuthenticate(t *testing.T) {
	svc, authn := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterPayload{
		Username: "alice",
		Password: "secret1",
		Email:    "alice@example.com",
		Name:     "Alice",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == "" {
		t.Error("expected an assigned id")
	}
	if u.PasswordHash == "secret1" {
		t.Error("plaintext password stored as digest")
	}

	p, err := authn.Authenticate(ctx, &auth.Credentials{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("authenticate after register: %v", err)
	}
	if p.Username != "alice" {
		t.Errorf("principal username = %q, want alice", p.Username)
	}
}

func TestRegisterResponseOmitsDigest(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.Register(context.Background(), RegisterPayload{
		Username: "alice",
		Password: "secret1",
		Email:    "alice@example.com",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	buf, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshaling user: %v", err)
	}
	body := string(buf)
	if strings.Contains(body, "password") || strings.Contains(body, u.PasswordHash) {
		t.Errorf("serialized user leaks the digest: %s", body)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	bad := []RegisterPayload{
		{Username: "", Password: "x", Email: "a@example.com"},
		{Username: "Alice", Password: "x", Email: "a@example.com"},
		{Username: "alice@home", Password: "x", Email: "a@example.com"},
		{Username: "al.ice", Password: "x", Email: "a@example.com"},
		{Username: "alice", Password: "x", Email: ""},
		{Username: "alice", Password: "", Email: "a@example.com"},
	}
	for _, payload := range bad {
		if _, err := svc.Register(ctx, payload); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Register(%+v) = %v, want ErrInvalidInput", payload, err)
		}
	}

	if _, err := svc.Register(ctx, RegisterPayload{
		Username: "alice42", Password: "x", Email: "a@example.com",
	}); err != nil {
		t.Errorf("lowercase alphanumeric username rejected: %v", err)
	}
}

func TestRegisterConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	payload := RegisterPayload{Username: "alice", Password: "secret1", Email: "alice@example.com"}
	if _, err := svc.Register(ctx, payload); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, payload); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second register: got %v, want ErrConflict", err)
	}
}

func TestMe(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterPayload{
		Username: "alice", Password: "secret1", Email: "alice@example.com", Name: "Alice",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := svc.Me(ctx, &auth.Credentials{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if u.Username != "alice" || u.Name != "Alice" {
		t.Errorf("got %+v", u)
	}

	if _, err := svc.Me(ctx, nil); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("me without credentials: got %v, want ErrMissingCredentials", err)
	}
	if _, err := svc.Me(ctx, &auth.Credentials{Username: "alice", Password: "wrong"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("me with bad password: got %v, want ErrInvalidCredentials", err)
	}
}
