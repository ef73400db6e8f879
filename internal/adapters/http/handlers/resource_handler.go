package handlers

import (
	"errors"

	"yorkhub/internal/adapters/http/middleware"
	"yorkhub/internal/adapters/persistence/models"
	"yorkhub/internal/core/domain"
	"yorkhub/internal/core/services"
	"yorkhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ResourceHandler handles resource directory endpoints
type ResourceHandler struct {
	resourceService *services.ResourceService
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(resourceService *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// ReviewRequest represents a review decision body
type ReviewRequest struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason"`
}

// List returns resources visible to the caller. Anonymous and
// non-admin callers only ever see approved entries.
// @Summary List resources
// @Tags Resources
// @Router /resources [get]
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	resources, err := h.resourceService.List(c.Context(), middleware.CurrentUser(c), c.Query("status"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return response.BadRequest(c, "Invalid status filter")
		}
		return response.InternalServerError(c, "Failed to list resources")
	}

	return response.Success(c, "Resources retrieved successfully", resources)
}

// Suggest files a resource suggestion for review
// @Summary Suggest a resource
// @Tags Resources
// @Security BearerAuth
// @Router /resources/suggest [post]
func (h *ResourceHandler) Suggest(c *fiber.Ctx) error {
	input, err := parseResourceInput(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	resource, err := h.resourceService.Suggest(c.Context(), middleware.CurrentUser(c), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to suggest resource")
	}

	return response.Created(c, "Resource suggested, awaiting review", resource)
}

// Pending lists suggestions awaiting review
// @Summary List pending resources
// @Tags Resources
// @Security BearerAuth
// @Router /resources/pending [get]
func (h *ResourceHandler) Pending(c *fiber.Ctx) error {
	resources, err := h.resourceService.List(c.Context(), middleware.CurrentUser(c), string(models.StatusPending))
	if err != nil {
		return response.InternalServerError(c, "Failed to list pending resources")
	}

	return response.Success(c, "Pending resources retrieved successfully", resources)
}

// ByStatus lists resources in a given lifecycle state
// @Summary List resources by status
// @Tags Resources
// @Security BearerAuth
// @Router /resources/by-status/{status} [get]
func (h *ResourceHandler) ByStatus(c *fiber.Ctx) error {
	status := c.Params("status")
	if _, ok := models.ParseStatus(status); !ok {
		return response.BadRequest(c, "Invalid status")
	}

	resources, err := h.resourceService.List(c.Context(), middleware.CurrentUser(c), status)
	if err != nil {
		return response.InternalServerError(c, "Failed to list resources")
	}

	return response.Success(c, "Resources retrieved successfully", resources)
}

// AdminAll lists every resource regardless of status
// @Summary List all resources
// @Tags Resources
// @Security BearerAuth
// @Router /resources/admin/all [get]
func (h *ResourceHandler) AdminAll(c *fiber.Ctx) error {
	resources, err := h.resourceService.List(c.Context(), middleware.CurrentUser(c), "")
	if err != nil {
		return response.InternalServerError(c, "Failed to list resources")
	}

	return response.Success(c, "Resources retrieved successfully", resources)
}

// Review records an approve/reject decision on a suggestion
// @Summary Review a resource
// @Tags Resources
// @Security BearerAuth
// @Router /resources/{id}/review [put]
func (h *ResourceHandler) Review(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	resource, err := h.resourceService.Review(c.Context(), middleware.CurrentUser(c), c.Params("id"), req.Status, req.RejectionReason)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			return response.BadRequest(c, "Invalid status. Must be 'approved' or 'rejected'")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Resource not found")
		default:
			return response.InternalServerError(c, "Failed to review resource")
		}
	}

	return response.Success(c, "Resource reviewed successfully", resource)
}

// AdminCreate creates a pre-approved resource
// @Summary Create a resource
// @Tags Resources
// @Security BearerAuth
// @Router /resources/admin/create [post]
func (h *ResourceHandler) AdminCreate(c *fiber.Ctx) error {
	input, err := parseResourceInput(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	resource, err := h.resourceService.AdminCreate(c.Context(), middleware.CurrentUser(c), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create resource")
	}

	return response.Created(c, "Resource created successfully", resource)
}

// AdminUpdate applies a partial update to a resource
// @Summary Update a resource
// @Tags Resources
// @Security BearerAuth
// @Router /resources/admin/{id} [put]
func (h *ResourceHandler) AdminUpdate(c *fiber.Ctx) error {
	var patch models.ResourceUpdate
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	resource, err := h.resourceService.AdminUpdate(c.Context(), middleware.CurrentUser(c), c.Params("id"), &patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Resource not found")
		}
		return response.InternalServerError(c, "Failed to update resource")
	}

	return response.Success(c, "Resource updated successfully", resource)
}

// AdminDelete removes a resource
// @Summary Delete a resource
// @Tags Resources
// @Security BearerAuth
// @Router /resources/admin/{id} [delete]
func (h *ResourceHandler) AdminDelete(c *fiber.Ctx) error {
	if err := h.resourceService.AdminDelete(c.Context(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Resource not found")
		}
		return response.InternalServerError(c, "Failed to delete resource")
	}

	return response.Success(c, "Resource deleted successfully", nil)
}

// parseResourceInput parses and validates the shared create/suggest
// body. Location and link are the only optional fields.
func parseResourceInput(c *fiber.Ctx) (*services.ResourceInput, error) {
	var input services.ResourceInput
	if err := c.BodyParser(&input); err != nil {
		return nil, errors.New("Invalid request body")
	}

	if input.Name == "" {
		return nil, errors.New("Name is required")
	}
	if input.Category == "" {
		return nil, errors.New("Category is required")
	}
	if input.Description == "" {
		return nil, errors.New("Description is required")
	}
	if input.OfferedBy == "" {
		return nil, errors.New("Offered by is required")
	}
	return &input, nil
}
