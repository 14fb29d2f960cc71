package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/suportehub/chamados-service/internal/auth"
	"github.com/suportehub/chamados-service/internal/config"
	"github.com/suportehub/chamados-service/internal/domain"
	"github.com/suportehub/chamados-service/internal/repository"
	apperrors "github.com/suportehub/chamados-service/pkg/util/errorutil"
)

// ErrInvalidCredentials marks a failed login so the handler can produce the
// legacy {status:false} 404 response.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService coordinates registration, login and token revocation.
type AuthService struct {
	users       repository.UserRepository
	tokenMgr    *auth.TokenManager
	revocations auth.TokenRevocations
	bcryptCost  int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	Revocations auth.TokenRevocations
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		revocations: deps.Revocations,
		bcryptCost:  cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// RegisterInput describes a registration payload.
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
	LevelAccess          int
	Phone                *string
}

// Register creates a new login account. Email must be unique and the
// password confirmation must match.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	fields := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "required"
	}
	if strings.TrimSpace(input.Email) == "" {
		fields["email"] = "required"
	}
	if input.Password == "" {
		fields["password"] = "required"
	} else if input.Password != input.PasswordConfirmation {
		fields["password"] = "confirmation does not match"
	}
	if input.LevelAccess < 0 || input.LevelAccess > 3 {
		fields["level_access"] = "must be between 0 and 3"
	}
	if len(fields) > 0 {
		return nil, apperrors.NewUnprocessable("validation failed", fields)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewUnprocessable("validation failed", map[string]any{"email": "already registered"})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		LevelAccess:  input.LevelAccess,
		Phone:        input.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Login authenticates a user and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.LevelAccess)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// Logout revokes every outstanding token for the given user id.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.MapError(err)
	}
	if s.revocations == nil {
		return nil
	}
	if err := s.revocations.RevokeAll(ctx, userID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ListUsers returns all login accounts.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}
