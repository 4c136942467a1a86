package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ferramentas/toolhub/internal/api/dto"
	"github.com/ferramentas/toolhub/internal/auth"
	"github.com/ferramentas/toolhub/internal/config"
	"github.com/ferramentas/toolhub/internal/service"
	apperrors "github.com/ferramentas/toolhub/pkg/util"
)

// AuthHandler exposes the login, refresh, logout and register endpoints.
// Internal token failure kinds are collapsed here: clients only ever see
// an undifferentiated unauthorized response.
type AuthHandler struct {
	auth *service.AuthService
	cfg  config.AuthConfig
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{auth: authService, cfg: cfg}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("username, email and password required", nil)
	}

	user, err := h.auth.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			return apperrors.NewConflict("username or email already registered", nil)
		}
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"user": dto.NewUserResponse(user)},
	})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	user, pair, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		return apperrors.MapError(err)
	}

	c.Cookie(h.accessCookie(pair.AccessToken, pair.AccessExpiresAt))
	c.Cookie(h.refreshCookie(pair.RefreshToken, pair.RefreshExpiresAt))

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: pair.AccessToken, ExpiresAt: pair.AccessExpiresAt},
		},
	})
}

// Refresh handles POST /api/v1/auth/refresh. The refresh token arrives in
// its path-scoped cookie; a body field is accepted as fallback for clients
// without a cookie jar.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(h.cfg.RefreshCookieName)
	if refreshToken == "" {
		var req dto.RefreshRequest
		if err := c.BodyParser(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		return apperrors.NewValidationError("refresh token missing", nil)
	}

	accessToken, expiresAt, err := h.auth.Refresh(c.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, service.ErrRefreshNotFound) || errors.Is(err, service.ErrRefreshExpired) {
			return apperrors.NewUnauthorized("invalid refresh token")
		}
		return apperrors.MapError(err)
	}

	c.Cookie(h.accessCookie(accessToken, expiresAt))
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"auth": dto.AuthResponse{Token: accessToken, ExpiresAt: expiresAt},
		},
	})
}

// Logout handles POST /api/v1/auth/logout. Idempotent: callers without an
// active session still get their cookies cleared.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		if err := h.auth.Logout(c.Context(), principal.UserID); err != nil {
			return apperrors.MapError(err)
		}
	}

	c.Cookie(h.expiredCookie(h.cfg.AccessCookieName, "/"))
	c.Cookie(h.expiredCookie(h.cfg.RefreshCookieName, h.cfg.RefreshCookiePath))
	return c.SendStatus(http.StatusNoContent)
}

// ForgotPassword handles POST /api/v1/auth/forgot-password. Delivery is
// stubbed; the endpoint always accepts to avoid account enumeration.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	_ = c.BodyParser(&req)
	return c.SendStatus(http.StatusAccepted)
}

func (h *AuthHandler) accessCookie(token string, expiresAt time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     h.cfg.AccessCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

func (h *AuthHandler) refreshCookie(token string, expiresAt time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     h.cfg.RefreshCookieName,
		Value:    token,
		Path:     h.cfg.RefreshCookiePath,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

func (h *AuthHandler) expiredCookie(name, path string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}
