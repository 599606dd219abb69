package service

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/reelcraft/api/internal/media"
	"github.com/reelcraft/api/internal/model"
	"github.com/reelcraft/api/internal/render"
)

// PreviewService rasterizes single project frames on demand. Elements are
// acquired for the duration of one render and released immediately: preview
// is an occasional editor action, not a streaming path, so the pool stays
// empty between requests.
type PreviewService struct {
	projects   *ProjectService
	pool       *media.Pool
	compositor *render.Compositor
	size       render.CanvasSize
}

func NewPreviewService(projects *ProjectService, runtime *media.Runtime, fonts *render.FontRegistry, width, height int) *PreviewService {
	pool := media.NewPool(runtime.NewElement)
	return &PreviewService{
		projects:   projects,
		pool:       pool,
		compositor: render.NewCompositor(pool, fonts),
		size: render.CanvasSize{
			Width:     width,
			Height:    height,
			CSSWidth:  float64(width),
			CSSHeight: float64(height),
		},
	}
}

// Render composites the project frame at time t and returns it PNG-encoded.
func (s *PreviewService) Render(ctx context.Context, projectID string, t float64) ([]byte, error) {
	store, err := s.projects.Store(ctx, projectID)
	if err != nil {
		return nil, err
	}

	state := store.State()
	if t < 0 {
		t = 0
	}
	if t > state.Timeline.Duration {
		t = state.Timeline.Duration
	}
	state.Playback.CurrentTime = t

	var acquired []string
	for _, clip := range state.Timeline.ActiveClips(t) {
		if clip.Type != model.ClipTypeVideo {
			continue
		}
		asset, ok := state.Asset(clip.AssetID)
		if !ok {
			continue
		}
		if _, err := s.pool.Acquire(asset); err != nil {
			continue
		}
		acquired = append(acquired, asset.ID)
	}
	defer func() {
		for _, id := range acquired {
			s.pool.Release(id)
		}
	}()

	// Position each element so the compositor finds a usable frame on the
	// first pass instead of waiting out its seek tolerance.
	for _, clip := range state.Timeline.ActiveClips(t) {
		if el, ok := s.pool.Get(clip.AssetID); ok {
			el.Seek(t - clip.Start)
		}
	}

	frame := s.compositor.RenderFrame(state, s.size)

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return nil, fmt.Errorf("encode preview frame: %w", err)
	}
	return buf.Bytes(), nil
}
