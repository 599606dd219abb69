package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/reelcraft/api/internal/model"
)

// ExportService prepares asset downloads. Export does not re-encode: a
// project's output is the generated asset itself, so exporting resolves the
// asset within the project and returns a time-limited download reference.
type ExportService struct {
	projects *ProjectService
}

func NewExportService(projects *ProjectService) *ExportService {
	return &ExportService{projects: projects}
}

// Export resolves an asset in the project and returns its download info.
func (s *ExportService) Export(ctx context.Context, req *model.ExportRequest) (*model.ExportResponse, error) {
	proj, err := s.projects.Get(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	asset, ok := proj.State.Asset(req.AssetID)
	if !ok {
		return nil, fmt.Errorf("asset not found")
	}
	if asset.Type == model.AssetTypeText {
		return nil, fmt.Errorf("text assets cannot be exported")
	}

	var size int64
	if fi, err := os.Stat(asset.URL); err == nil {
		size = fi.Size()
	}

	return &model.ExportResponse{
		FileURL:   asset.URL,
		Size:      size,
		Format:    req.Format,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}, nil
}
