package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/reelcraft/api/internal/model"
	"github.com/reelcraft/api/internal/service"
	"github.com/reelcraft/api/pkg/response"
)

type AssetHandler struct {
	service *service.AssetService
}

func NewAssetHandler(svc *service.AssetService) *AssetHandler {
	return &AssetHandler{service: svc}
}

// Upload handles POST /api/assets/upload
func (h *AssetHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.ValidationError(c, "File is required", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.ServiceError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	asset, err := h.service.Ingest(c.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		return response.ValidationError(c, err.Error(), nil)
	}

	return response.Created(c, model.AssetUploadResponse{Asset: *asset})
}
