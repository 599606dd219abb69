package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/reelcraft/api/internal/model"
	"github.com/reelcraft/api/internal/service"
	"github.com/reelcraft/api/pkg/response"
)

type PlaybackHandler struct {
	service *service.PlaybackService
}

func NewPlaybackHandler(svc *service.PlaybackService) *PlaybackHandler {
	return &PlaybackHandler{service: svc}
}

// Play handles POST /api/projects/:projectId/playback/play
func (h *PlaybackHandler) Play(c *fiber.Ctx) error {
	return h.command(c, h.service.Play)
}

// Pause handles POST /api/projects/:projectId/playback/pause
func (h *PlaybackHandler) Pause(c *fiber.Ctx) error {
	return h.command(c, h.service.Pause)
}

// Toggle handles POST /api/projects/:projectId/playback/toggle
func (h *PlaybackHandler) Toggle(c *fiber.Ctx) error {
	return h.command(c, h.service.Toggle)
}

// Forward handles POST /api/projects/:projectId/playback/forward
func (h *PlaybackHandler) Forward(c *fiber.Ctx) error {
	return h.command(c, h.service.Forward)
}

// Rewind handles POST /api/projects/:projectId/playback/rewind
func (h *PlaybackHandler) Rewind(c *fiber.Ctx) error {
	return h.command(c, h.service.Rewind)
}

// Seek handles POST /api/projects/:projectId/playback/seek
func (h *PlaybackHandler) Seek(c *fiber.Ctx) error {
	projectID := c.Params("projectId")
	if projectID == "" {
		return response.ValidationError(c, "Project ID is required", nil)
	}

	var req struct {
		Time float64 `json:"time"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	playback, err := h.service.Seek(c.Context(), projectID, req.Time)
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.OK(c, playbackResponse(projectID, playback))
}

// Stop handles POST /api/projects/:projectId/playback/stop. It pauses and
// tears the session down, releasing its media elements.
func (h *PlaybackHandler) Stop(c *fiber.Ctx) error {
	projectID := c.Params("projectId")
	if projectID == "" {
		return response.ValidationError(c, "Project ID is required", nil)
	}
	if _, err := h.service.Pause(c.Context(), projectID); err != nil {
		return h.serviceError(c, err)
	}
	h.service.Close(projectID)
	return response.NoContent(c)
}

func (h *PlaybackHandler) command(c *fiber.Ctx, op func(ctx context.Context, projectID string) (model.PlaybackState, error)) error {
	projectID := c.Params("projectId")
	if projectID == "" {
		return response.ValidationError(c, "Project ID is required", nil)
	}
	playback, err := op(c.Context(), projectID)
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.OK(c, playbackResponse(projectID, playback))
}

func (h *PlaybackHandler) serviceError(c *fiber.Ctx, err error) error {
	if err == service.ErrProjectNotFound {
		return response.NotFound(c, "Project not found")
	}
	return response.ServiceError(c, err.Error())
}

func playbackResponse(projectID string, playback model.PlaybackState) fiber.Map {
	return fiber.Map{
		"projectId": projectID,
		"playback":  playback,
	}
}
