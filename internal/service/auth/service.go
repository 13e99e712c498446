package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/patient-portal/internal/apperror"
	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
)

// BcryptCost is used wherever passwords are hashed (provisioning, seed).
const BcryptCost = 12

// SessionStore is the session lifecycle the auth service drives.
type SessionStore interface {
	Create(ctx context.Context, ident model.Identity) (string, error)
	Identity(ctx context.Context, token string) (*model.Identity, error)
	Destroy(ctx context.Context, token string) error
}

type Service struct {
	users    repository.UserRepository
	sessions SessionStore
}

func NewService(users repository.UserRepository, sessions SessionStore) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
	}
}

// Login verifies credentials and establishes a session. Unknown usernames
// and wrong passwords fail with the same error so callers cannot tell
// whether an account exists.
func (s *Service) Login(ctx context.Context, username, password string) (string, *model.Identity, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return "", nil, apperror.Authentication()
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperror.Authentication()
	}

	ident := model.Identity{
		UserID:   user.ID,
		Role:     user.RoleName,
		FullName: user.FullName,
	}

	token, err := s.sessions.Create(ctx, ident)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	return token, &ident, nil
}

// Identity maps a session token to the bound identity, or an authentication
// error when the request is anonymous.
func (s *Service) Identity(ctx context.Context, token string) (*model.Identity, error) {
	return s.sessions.Identity(ctx, token)
}

// Logout clears the session bound to the token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
