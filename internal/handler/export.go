package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/reelcraft/api/internal/model"
	"github.com/reelcraft/api/internal/service"
	"github.com/reelcraft/api/pkg/response"
)

type ExportHandler struct {
	service   *service.ExportService
	validator *validator.Validate
}

func NewExportHandler(svc *service.ExportService, v *validator.Validate) *ExportHandler {
	return &ExportHandler{
		service:   svc,
		validator: v,
	}
}

// Export handles POST /api/export
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	var req model.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.Export(c.Context(), &req)
	if err != nil {
		if err == service.ErrProjectNotFound {
			return response.NotFound(c, "Project not found")
		}
		if err.Error() == "asset not found" {
			return response.NotFound(c, "Asset not found")
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}
