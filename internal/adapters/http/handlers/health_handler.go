package handlers

import (
	"yorkhub/internal/config"
	"yorkhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db *mongo.Database
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *mongo.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root returns basic service info
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "YorkHub Campus Resource API",
		"status":  "ok",
	})
}

// HealthCheck pings the database
// @Summary Health check
// @Tags Health
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	if err := config.HealthCheck(c.Context(), h.db); err != nil {
		return response.InternalServerError(c, "Database connection failed")
	}

	return c.JSON(fiber.Map{
		"status":   "healthy",
		"database": "connected",
	})
}
