package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fronzypie/share-your-experience/internal/session"
	"github.com/fronzypie/share-your-experience/pkg/util"
)

const userIDKey = "auth_user_id"

// ExtractBearerToken returns the token following the "Bearer " prefix
// of the Authorization header, or "" when missing or malformed.
func ExtractBearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return header[len("Bearer "):]
}

// Middleware gates mutating routes on a resolvable session token.
type Middleware struct {
	sessions session.Store
}

// NewMiddleware constructs the guard.
func NewMiddleware(sessions session.Store) *Middleware {
	return &Middleware{sessions: sessions}
}

// RequireAuth verifies the bearer token and stores the resolved user id
// in the request locals for handlers to pick up.
func (m *Middleware) RequireAuth(c *fiber.Ctx) error {
	token := ExtractBearerToken(c)
	if token == "" {
		return util.NewUnauthorized("Unauthorized - Missing token")
	}

	userID, ok := m.sessions.Resolve(token)
	if !ok {
		return util.NewUnauthorized("Unauthorized - Invalid or expired token")
	}

	c.Locals(userIDKey, userID)
	return c.Next()
}

// UserIDFromContext retrieves the authenticated user id.
func UserIDFromContext(c *fiber.Ctx) (int64, bool) {
	userID, ok := c.Locals(userIDKey).(int64)
	return userID, ok
}
