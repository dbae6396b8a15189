// Package user implements registration and self-lookup over the credential
// store.
package user

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/akarpov91/todo-service/internal/auth"
	"github.com/akarpov91/todo-service/internal/domain"
	"github.com/akarpov91/todo-service/internal/store"
)

// RegisterPayload is the registration request body. The plaintext password
// is digested before anything touches the store and is never echoed back.
type RegisterPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

type Service struct {
	users store.UserStore
	auth  *auth.Authenticator
}

func NewService(users store.UserStore, authn *auth.Authenticator) *Service {
	return &Service{users: users, auth: authn}
}

// Register validates and persists a new user. A duplicate username or email
// surfaces as domain.ErrConflict from the store's uniqueness constraints;
// there is no pre-insert existence probe.
func (s *Service) Register(ctx context.Context, payload RegisterPayload) (*domain.User, error) {
	payload.Username = strings.TrimSpace(payload.Username)
	payload.Email = strings.TrimSpace(payload.Email)

	if err := validateUsername(payload.Username); err != nil {
		return nil, err
	}
	if payload.Email == "" {
		return nil, fmt.Errorf("email is required: %w", domain.ErrInvalidInput)
	}
	if payload.Password == "" {
		return nil, fmt.Errorf("password is required: %w", domain.ErrInvalidInput)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	created, err := s.users.InsertUser(ctx, domain.User{
		Username:     payload.Username,
		PasswordHash: string(digest),
		Email:        payload.Email,
		Name:         payload.Name,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Me authenticates the supplied credentials and returns the caller's
// profile.
func (s *Service) Me(ctx context.Context, creds *auth.Credentials) (*domain.User, error) {
	principal, err := s.auth.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}

	u, err := s.users.FindUserByUsername(ctx, principal.Username)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return u, nil
}

// validateUsername rejects uppercase letters, '@', punctuation, and
// whitespace so usernames stay distinct from email addresses.
func validateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required: %w", domain.ErrInvalidInput)
	}
	for _, r := range username {
		if unicode.IsUpper(r) || r == '@' || unicode.IsPunct(r) || unicode.IsSpace(r) {
			return fmt.Errorf(
				"username must not contain uppercase letters, '@', or punctuation: %w",
				domain.ErrInvalidInput,
			)
		}
	}
	return nil
}
