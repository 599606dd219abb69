package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/reelcraft/api/internal/media"
	"github.com/reelcraft/api/internal/model"
)

// AssetService ingests uploaded media files: it stores the file, probes its
// metadata and precomputes the waveform for audio assets.
type AssetService struct {
	uploadDir string
	prober    *media.Prober
}

func NewAssetService(uploadDir string, prober *media.Prober) *AssetService {
	return &AssetService{
		uploadDir: uploadDir,
		prober:    prober,
	}
}

// Ingest stores an uploaded file and returns the resulting asset. The asset
// type is derived from the content type, falling back to the file extension.
func (s *AssetService) Ingest(ctx context.Context, filename, contentType string, file io.Reader) (*model.Asset, error) {
	assetType, err := resolveAssetType(filename, contentType)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	ext := filepath.Ext(filename)
	dest := filepath.Join(s.uploadDir, id+ext)

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	out, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(dest)
		return nil, fmt.Errorf("failed to store file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	asset := &model.Asset{
		ID:        id,
		Type:      assetType,
		Name:      filename,
		URL:       dest,
		CreatedAt: time.Now().UnixMilli(),
	}

	info, err := s.prober.Probe(ctx, dest)
	if err != nil {
		// Probe failure is not fatal; the asset just lacks metadata.
		log.Warn().Err(err).Str("asset", id).Msg("probe failed")
		return asset, nil
	}

	asset.Duration = info.Duration
	asset.Width = info.Width
	asset.Height = info.Height

	if assetType == model.AssetTypeAudio && strings.EqualFold(ext, ".wav") {
		waveform, err := media.WaveformFromFile(dest)
		if err != nil {
			log.Warn().Err(err).Str("asset", id).Msg("waveform extraction failed")
		} else {
			asset.Waveform = waveform
		}
	}

	return asset, nil
}

// Delete removes the stored file of an asset.
func (s *AssetService) Delete(ctx context.Context, assetURL string) error {
	// Only delete files inside the upload dir.
	abs, err := filepath.Abs(assetURL)
	if err != nil {
		return err
	}
	dir, err := filepath.Abs(s.uploadDir)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(abs, dir+string(filepath.Separator)) {
		return fmt.Errorf("asset file outside upload dir")
	}
	return os.Remove(abs)
}

func resolveAssetType(filename, contentType string) (model.AssetType, error) {
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(filename))
	}

	switch {
	case strings.HasPrefix(contentType, "video/"):
		return model.AssetTypeVideo, nil
	case strings.HasPrefix(contentType, "audio/"):
		return model.AssetTypeAudio, nil
	case strings.HasPrefix(contentType, "image/"):
		return model.AssetTypeImage, nil
	default:
		return "", fmt.Errorf("unsupported media type %q", contentType)
	}
}
