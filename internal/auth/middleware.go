package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "auth_principal"

// Principal is the per-request identity context established by the gate.
// It lives in the request locals only and is never shared across requests.
type Principal struct {
	UserID   string
	Username string
	Roles    []string
}

// Gate extracts and validates access tokens on every request. A request
// without a usable token proceeds anonymously; the access-denied decision
// is deferred to the authorization middlewares.
type Gate struct {
	tokens     *TokenManager
	cookieName string
}

// NewGate constructs the authentication gate.
func NewGate(tokens *TokenManager, cookieName string) *Gate {
	return &Gate{tokens: tokens, cookieName: cookieName}
}

// Handle resolves the caller identity for the current request. It prefers
// an Authorization bearer header and falls back to the access-token cookie.
func (g *Gate) Handle(c *fiber.Ctx) error {
	tokenStr := bearerToken(c.Get(fiber.HeaderAuthorization))
	if tokenStr == "" {
		tokenStr = c.Cookies(g.cookieName)
	}
	if tokenStr == "" {
		return c.Next()
	}

	claims, err := g.tokens.ParseToken(tokenStr)
	if err != nil {
		// Invalid or expired tokens degrade to anonymous access.
		return c.Next()
	}

	c.Locals(principalKey, &Principal{
		UserID:   claims.UserID,
		Username: claims.Subject,
		Roles:    claims.Roles,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated identity, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
