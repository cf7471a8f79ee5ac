package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/timeclock-service/internal/auth"
	"github.com/spec-kit/timeclock-service/internal/config"
	"github.com/spec-kit/timeclock-service/internal/domain"
	"github.com/spec-kit/timeclock-service/internal/repository"
	apperrors "github.com/spec-kit/timeclock-service/pkg/util"
)

// ErrInvalidCredentials is returned for any failed login: unknown username,
// wrong password, or wrong role flag. Callers must not distinguish them.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates an account with the role the registration path implies.
// No session is established; callers redirect to the matching login page.
func (s *AuthService) Register(ctx context.Context, username, password string, isAdmin bool) (*domain.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("username already registered", map[string]any{"username": username})
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates a user for the requested role. A correct password with
// the wrong role flag fails exactly like a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string, wantAdmin bool) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.IsAdmin != wantAdmin {
		return nil, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
