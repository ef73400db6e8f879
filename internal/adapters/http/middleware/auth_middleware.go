package middleware

import (
	"context"
	"strings"

	"yorkhub/internal/adapters/persistence/models"
	"yorkhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Authenticator resolves a bearer token to a user, or nil on any
// failure
type Authenticator interface {
	Resolve(ctx context.Context, bearer string) *models.User
}

const userKey = "user"

// RequireAuth rejects requests without a resolvable identity (401)
func RequireAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := resolve(c, auth)
		if user == nil {
			return response.Unauthorized(c, "Authentication required")
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// OptionalAuth resolves the identity when a valid token is present but
// lets the request through either way. Public endpoints degrade
// instead of failing.
func OptionalAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user := resolve(c, auth); user != nil {
			c.Locals(userKey, user)
		}
		return c.Next()
	}
}

// RequireRole rejects authenticated identities below min (403). An
// under-privileged identity is never conflated with an anonymous one;
// this middleware assumes RequireAuth ran first.
func RequireRole(min models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(userKey).(*models.User)
		if !ok {
			return response.Unauthorized(c, "Authentication required")
		}

		if !user.Role.AtLeast(min) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}

// AdminOnly allows admin and root
func AdminOnly() fiber.Handler {
	return RequireRole(models.RoleAdmin)
}

// RootOnly allows root only
func RootOnly() fiber.Handler {
	return RequireRole(models.RoleRoot)
}

// CurrentUser returns the resolved identity, or nil
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}

// resolve extracts the bearer token (cookie first, then Authorization
// header) and asks the authenticator for an identity
func resolve(c *fiber.Ctx, auth Authenticator) *models.User {
	accessToken := c.Cookies("access_token")

	if accessToken == "" {
		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	if accessToken == "" {
		return nil
	}
	return auth.Resolve(c.Context(), accessToken)
}
