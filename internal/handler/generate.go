package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/reelcraft/api/internal/model"
	"github.com/reelcraft/api/internal/service"
	"github.com/reelcraft/api/pkg/response"
)

type GenerateHandler struct {
	service   *service.GenerateService
	projects  *service.ProjectService
	validator *validator.Validate
}

func NewGenerateHandler(svc *service.GenerateService, projects *service.ProjectService, v *validator.Validate) *GenerateHandler {
	return &GenerateHandler{
		service:   svc,
		projects:  projects,
		validator: v,
	}
}

// Video handles POST /api/generate/video
func (h *GenerateHandler) Video(c *fiber.Ctx) error {
	var req model.GenerateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.StartVideo(c.Context(), &req)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}

	return response.Accepted(c, result)
}

// Image handles POST /api/generate/image
func (h *GenerateHandler) Image(c *fiber.Ctx) error {
	var req model.GenerateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.StartImage(c.Context(), &req)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}

	return response.Accepted(c, result)
}

// Subtitles handles POST /api/generate/subtitles
func (h *GenerateHandler) Subtitles(c *fiber.Ctx) error {
	var req model.GenerateSubtitlesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	proj, err := h.projects.Get(c.Context(), req.ProjectID)
	if err != nil {
		if err == service.ErrProjectNotFound {
			return response.NotFound(c, "Project not found")
		}
		return response.ServiceError(c, err.Error())
	}

	asset, ok := proj.State.Asset(req.AssetID)
	if !ok {
		return response.NotFound(c, "Asset not found")
	}
	if asset.Type != model.AssetTypeVideo && asset.Type != model.AssetTypeAudio {
		return response.ValidationError(c, "Asset has no audio to transcribe", nil)
	}

	result, err := h.service.StartSubtitles(c.Context(), &req, asset.URL)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}

	return response.Accepted(c, result)
}

// Status handles GET /api/generate/status/:jobId
func (h *GenerateHandler) Status(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return response.ValidationError(c, "Job ID is required", nil)
	}

	result, err := h.service.GetStatus(c.Context(), jobID)
	if err != nil {
		if err.Error() == "job not found" {
			return response.NotFound(c, "Job not found")
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}

// Result handles GET /api/generate/result/:jobId
func (h *GenerateHandler) Result(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return response.ValidationError(c, "Job ID is required", nil)
	}

	result, err := h.service.GetResult(c.Context(), jobID)
	if err != nil {
		if err.Error() == "job not found" {
			return response.NotFound(c, "Job not found")
		}
		if err.Error() == "job not completed" {
			return response.ValidationError(c, "Job not completed yet", nil)
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}

// Cancel handles POST /api/generate/cancel/:jobId
func (h *GenerateHandler) Cancel(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return response.ValidationError(c, "Job ID is required", nil)
	}

	result, err := h.service.Cancel(c.Context(), jobID)
	if err != nil {
		if err.Error() == "job not found" {
			return response.NotFound(c, "Job not found")
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}
