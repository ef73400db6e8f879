package handlers

import (
	"errors"

	"yorkhub/internal/core/domain"
	"yorkhub/internal/core/services"
	"yorkhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles account administration endpoints (root only)
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateRoleRequest represents a role change body
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// List returns all accounts
// @Summary List users
// @Tags Admin
// @Security BearerAuth
// @Router /admin/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", users)
}

// UpdateRole changes a user's role
// @Summary Update user role
// @Tags Admin
// @Security BearerAuth
// @Router /admin/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.userService.UpdateRole(c.Context(), c.Params("id"), req.Role); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRole):
			return response.BadRequest(c, "Invalid role")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrRootImmutable):
			return response.Conflict(c, "Cannot modify root user roles")
		default:
			return response.InternalServerError(c, "Failed to update user role")
		}
	}

	return response.Success(c, "User role updated successfully", nil)
}
