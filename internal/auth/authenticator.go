package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/akarpov91/todo-service/internal/domain"
	"github.com/akarpov91/todo-service/internal/store"
)

// Principal is the authenticated identity behind a request.
type Principal struct {
	Username string
}

// Authenticator verifies credentials against stored bcrypt digests. It is
// read-only with respect to the store.
type Authenticator struct {
	users store.UserStore
}

func NewAuthenticator(users store.UserStore) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate resolves credentials to a Principal. An unknown username and
// a wrong password fail with the same error so responses never reveal
// whether an account exists. Absent credentials fail with
// domain.ErrMissingCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, creds *Credentials) (Principal, error) {
	if creds == nil {
		return Principal{}, domain.ErrMissingCredentials
	}

	u, err := a.users.FindUserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Principal{}, domain.ErrInvalidCredentials
		}
		return Principal{}, fmt.Errorf("looking up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)) != nil {
		return Principal{}, domain.ErrInvalidCredentials
	}

	return Principal{Username: u.Username}, nil
}
