package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"yorkhub/internal/adapters/persistence/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubAuthenticator maps fixed bearer tokens to identities
type stubAuthenticator struct {
	tokens map[string]*models.User
}

func (s *stubAuthenticator) Resolve(_ context.Context, bearer string) *models.User {
	return s.tokens[bearer]
}

func stubUser(username string, role models.Role) *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		Username: username,
		Role:     role,
		Verified: true,
	}
}

func newTestApp(auth Authenticator) *fiber.App {
	app := fiber.New()
	app.Get("/me", RequireAuth(auth), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Username)
	})
	app.Get("/admin", RequireAuth(auth), AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/root", RequireAuth(auth), RootOnly(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/public", OptionalAuth(auth), func(c *fiber.Ctx) error {
		if user := CurrentUser(c); user != nil {
			return c.SendString(user.Username)
		}
		return c.SendString("anonymous")
	})
	return app
}

func request(t *testing.T, app *fiber.App, path, bearer string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireAuth(t *testing.T) {
	auth := &stubAuthenticator{tokens: map[string]*models.User{
		"alice-token": stubUser("alice", models.RoleUser),
	}}
	app := newTestApp(auth)

	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "/me", ""))
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "/me", "bogus"))
	assert.Equal(t, fiber.StatusOK, request(t, app, "/me", "alice-token"))
}

func TestRequireAuthReadsCookie(t *testing.T) {
	auth := &stubAuthenticator{tokens: map[string]*models.User{
		"alice-token": stubUser("alice", models.RoleUser),
	}}
	app := newTestApp(auth)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Cookie", "access_token=alice-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoleGates(t *testing.T) {
	auth := &stubAuthenticator{tokens: map[string]*models.User{
		"user-token":  stubUser("alice", models.RoleUser),
		"admin-token": stubUser("mod", models.RoleAdmin),
		"root-token":  stubUser("boss", models.RoleRoot),
	}}
	app := newTestApp(auth)

	// Anonymous is 401, under-privileged is 403. The two are never
	// conflated.
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "/admin", ""))
	assert.Equal(t, fiber.StatusForbidden, request(t, app, "/admin", "user-token"))
	assert.Equal(t, fiber.StatusOK, request(t, app, "/admin", "admin-token"))
	assert.Equal(t, fiber.StatusOK, request(t, app, "/admin", "root-token"))

	assert.Equal(t, fiber.StatusForbidden, request(t, app, "/root", "admin-token"))
	assert.Equal(t, fiber.StatusOK, request(t, app, "/root", "root-token"))
}

func TestOptionalAuth(t *testing.T) {
	auth := &stubAuthenticator{tokens: map[string]*models.User{
		"alice-token": stubUser("alice", models.RoleUser),
	}}
	app := newTestApp(auth)

	// Public endpoints degrade to anonymous instead of failing
	assert.Equal(t, fiber.StatusOK, request(t, app, "/public", ""))
	assert.Equal(t, fiber.StatusOK, request(t, app, "/public", "bogus"))
	assert.Equal(t, fiber.StatusOK, request(t, app, "/public", "alice-token"))
}
