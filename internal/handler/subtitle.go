package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/reelcraft/api/internal/service"
	"github.com/reelcraft/api/pkg/response"
)

const maxSubtitleFileSize = 1 << 20 // 1 MiB

type SubtitleHandler struct {
	service *service.SubtitleService
}

func NewSubtitleHandler(svc *service.SubtitleService) *SubtitleHandler {
	return &SubtitleHandler{service: svc}
}

// Import handles POST /api/projects/:projectId/subtitles/import
func (h *SubtitleHandler) Import(c *fiber.Ctx) error {
	projectID := c.Params("projectId")
	if projectID == "" {
		return response.ValidationError(c, "Project ID is required", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.ValidationError(c, "File is required", nil)
	}
	if fileHeader.Size > maxSubtitleFileSize {
		return response.ValidationError(c, "Subtitle file too large", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.ServiceError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return response.ServiceError(c, "Failed to read uploaded file")
	}

	result, added, errs := h.service.Import(c.Context(), projectID, string(content))
	if result == nil {
		for _, e := range errs {
			if e == service.ErrProjectNotFound {
				return response.NotFound(c, "Project not found")
			}
		}
		return response.ValidationError(c, "No cues could be parsed", errorStrings(errs))
	}

	return response.OK(c, fiber.Map{
		"project":  result,
		"added":    added,
		"warnings": errorStrings(errs),
	})
}

func errorStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}
