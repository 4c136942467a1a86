package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ferramentas/toolhub/internal/auth"
	"github.com/ferramentas/toolhub/internal/config"
	"github.com/ferramentas/toolhub/internal/domain"
	"github.com/ferramentas/toolhub/internal/events"
	"github.com/ferramentas/toolhub/internal/repository"
)

// Auth flow failures. Login failures are intentionally undifferentiated so
// callers cannot tell an unknown account from a wrong password.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRefreshNotFound    = errors.New("refresh token not found")
	ErrRefreshExpired     = errors.New("refresh token expired")
	ErrUsernameTaken      = errors.New("username or email already registered")
)

// TokenPair bundles the credentials minted at login.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService coordinates credential verification, access-token issuance
// and refresh-token bookkeeping.
type AuthService struct {
	users      repository.UserRepository
	refresh    repository.RefreshTokenRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
	refreshTTL time.Duration
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	RefreshRepo repository.RefreshTokenRepository
	Dispatcher  events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		refresh:    deps.RefreshRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.BcryptCost,
		refreshTTL: cfg.RefreshTokenTTL(),
	}
}

// Register creates a new account with the default USER role.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if _, err := s.users.GetByUsernameOrEmail(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := s.users.GetByUsernameOrEmail(ctx, email); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by username or email and mints an access/refresh
// token pair. Any prior refresh token for the user is replaced, so a login
// bounds the number of live refresh tokens per account to one.
func (s *AuthService) Login(ctx context.Context, credential, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByUsernameOrEmail(ctx, credential)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	accessToken, accessExp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, nil, err
	}

	value, err := newRefreshValue()
	if err != nil {
		return nil, nil, err
	}
	record := &domain.RefreshToken{
		UserID:    user.ID,
		Token:     value,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.refresh.Replace(ctx, record); err != nil {
		return nil, nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:   events.EventUserLoggedIn,
			UserID: user.ID,
			Payload: map[string]any{
				"username": user.Username,
			},
		})
	}

	return user, &TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     value,
		RefreshExpiresAt: record.ExpiresAt,
	}, nil
}

// Refresh validates the stored refresh record and mints a new access token.
// The user is re-read so role changes take effect on the next access token.
// The refresh token itself stays valid until expiry or logout, which keeps
// concurrent refresh calls with the same token safe.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	record, err := s.refresh.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, ErrRefreshNotFound
		}
		return "", time.Time{}, err
	}

	if !time.Now().Before(record.ExpiresAt) {
		_ = s.refresh.DeleteByToken(ctx, record.Token)
		return "", time.Time{}, ErrRefreshExpired
	}

	user, err := s.users.GetByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, ErrRefreshNotFound
		}
		return "", time.Time{}, err
	}

	return s.tokenMgr.GenerateToken(user)
}

// Logout revokes the user's refresh token. Access tokens already issued
// remain valid until natural expiry. Safe to call with no active session.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return s.refresh.DeleteByUser(ctx, userID)
}

// SweepExpired removes refresh tokens past their expiry.
func (s *AuthService) SweepExpired(ctx context.Context) (int64, error) {
	return s.refresh.DeleteExpired(ctx)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// newRefreshValue produces an opaque token value with 256 bits of entropy.
func newRefreshValue() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
