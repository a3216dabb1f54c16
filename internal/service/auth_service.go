package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fronzypie/share-your-experience/internal/auth"
	"github.com/fronzypie/share-your-experience/internal/config"
	"github.com/fronzypie/share-your-experience/internal/domain"
	"github.com/fronzypie/share-your-experience/internal/repository"
	"github.com/fronzypie/share-your-experience/internal/session"
	"github.com/fronzypie/share-your-experience/internal/validation"
	"github.com/fronzypie/share-your-experience/pkg/util"
)

const uniqueViolationCode = "23505"

// AuthService coordinates registration, login and session lookups.
type AuthService struct {
	users      repository.UserRepository
	sessions   session.Store
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, sessions session.Store) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account and an initial session.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, string, error) {
	if err := validation.ValidateRegistration(username, password); err != nil {
		return nil, "", err
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, "", util.NewConflict("Username already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", util.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", util.NewInternalError(err)
	}

	user := &domain.User{Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, "", util.NewConflict("Username already exists")
		}
		return nil, "", util.NewInternalError(err)
	}

	token, err := s.sessions.Create(user.ID)
	if err != nil {
		return nil, "", util.NewInternalError(err)
	}
	return user, token, nil
}

// Login authenticates a user. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if username == "" || password == "" {
		return nil, "", util.NewValidationError("Username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", util.NewUnauthorized("Invalid username or password")
		}
		return nil, "", util.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", util.NewUnauthorized("Invalid username or password")
	}

	token, err := s.sessions.Create(user.ID)
	if err != nil {
		return nil, "", util.NewInternalError(err)
	}
	return user, token, nil
}

// Logout revokes the session. Unknown tokens are not an error.
func (s *AuthService) Logout(token string) {
	s.sessions.Revoke(token)
}

// CurrentUser resolves the token to its user record.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	userID, ok := s.sessions.Resolve(token)
	if !ok {
		return nil, util.NewUnauthorized("Invalid or expired session")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("User")
		}
		return nil, util.NewInternalError(err)
	}
	return user, nil
}

// Verify resolves a token to a user id without touching storage.
func (s *AuthService) Verify(token string) (int64, bool) {
	return s.sessions.Resolve(token)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
