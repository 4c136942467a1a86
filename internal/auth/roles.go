package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/ferramentas/toolhub/pkg/util"
)

// Require reports whether the principal carries the given role. A nil
// principal is always denied. Role comparison is case-insensitive.
func Require(principal *Principal, role string) bool {
	if principal == nil {
		return false
	}
	for _, r := range principal.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// RequireAuthenticated ensures a caller is authenticated.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireRole ensures the principal has one of the allowed roles.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		for _, role := range allowed {
			if Require(principal, role) {
				return c.Next()
			}
		}
		return apperrors.NewForbidden("insufficient role")
	}
}
