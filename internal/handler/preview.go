package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/reelcraft/api/internal/service"
	"github.com/reelcraft/api/pkg/response"
)

type PreviewHandler struct {
	service *service.PreviewService
}

func NewPreviewHandler(svc *service.PreviewService) *PreviewHandler {
	return &PreviewHandler{service: svc}
}

// Frame handles GET /api/projects/:projectId/preview
func (h *PreviewHandler) Frame(c *fiber.Ctx) error {
	projectID := c.Params("projectId")
	if projectID == "" {
		return response.ValidationError(c, "Project ID is required", nil)
	}

	t := 0.0
	if raw := c.Query("t"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			return response.ValidationError(c, "Invalid time parameter", nil)
		}
		t = parsed
	}

	frame, err := h.service.Render(c.Context(), projectID, t)
	if err != nil {
		if err == service.ErrProjectNotFound {
			return response.NotFound(c, "Project not found")
		}
		return response.ServiceError(c, err.Error())
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(frame)
}
