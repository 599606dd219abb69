package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/reelcraft/api/internal/model"
	"github.com/reelcraft/api/internal/service"
	"github.com/reelcraft/api/pkg/response"
)

type ProjectHandler struct {
	service   *service.ProjectService
	validator *validator.Validate
}

func NewProjectHandler(svc *service.ProjectService, v *validator.Validate) *ProjectHandler {
	return &ProjectHandler{
		service:   svc,
		validator: v,
	}
}

// Create handles POST /api/projects
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req model.ProjectCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.Create(c.Context(), &req)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}

	return response.Created(c, result)
}

// List handles GET /api/projects
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	result, err := h.service.List(c.Context())
	if err != nil {
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, result)
}

// Get handles GET /api/projects/:projectId
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	projectID := c.Params("projectId")
	if projectID == "" {
		return response.ValidationError(c, "Project ID is required", nil)
	}

	result, err := h.service.Get(c.Context(), projectID)
	if err != nil {
		if err == service.ErrProjectNotFound {
			return response.NotFound(c, "Project not found")
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}

// Delete handles DELETE /api/projects/:projectId
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	projectID := c.Params("projectId")
	if projectID == "" {
		return response.ValidationError(c, "Project ID is required", nil)
	}

	if err := h.service.Delete(c.Context(), projectID); err != nil {
		return response.ServiceError(c, err.Error())
	}

	return response.NoContent(c)
}

// Dispatch handles POST /api/projects/:projectId/dispatch
func (h *ProjectHandler) Dispatch(c *fiber.Ctx) error {
	projectID := c.Params("projectId")
	if projectID == "" {
		return response.ValidationError(c, "Project ID is required", nil)
	}

	var req model.DispatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.Dispatch(c.Context(), projectID, &req)
	if err != nil {
		if err == service.ErrProjectNotFound {
			return response.NotFound(c, "Project not found")
		}
		return response.ValidationError(c, err.Error(), nil)
	}

	return response.OK(c, result)
}

// Undo handles POST /api/projects/:projectId/undo
func (h *ProjectHandler) Undo(c *fiber.Ctx) error {
	return h.timeTravel(c, h.service.Undo)
}

// Redo handles POST /api/projects/:projectId/redo
func (h *ProjectHandler) Redo(c *fiber.Ctx) error {
	return h.timeTravel(c, h.service.Redo)
}

func (h *ProjectHandler) timeTravel(c *fiber.Ctx, step func(ctx context.Context, projectID string) (*model.ProjectResponse, error)) error {
	projectID := c.Params("projectId")
	if projectID == "" {
		return response.ValidationError(c, "Project ID is required", nil)
	}

	result, err := step(c.Context(), projectID)
	if err != nil {
		if err == service.ErrProjectNotFound {
			return response.NotFound(c, "Project not found")
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}
