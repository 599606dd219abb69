package service

import (
	"context"
	"fmt"
	"time"

	"github.com/reelcraft/api/internal/engine"
	"github.com/reelcraft/api/internal/model"
	"github.com/reelcraft/api/internal/subtitle"
)

// DefaultSubtitleStyle is applied to imported caption clips.
var DefaultSubtitleStyle = model.TextStyle{
	FontFamily:      "sans",
	FontSize:        32,
	Color:           "#ffffff",
	BackgroundColor: "rgba(0,0,0,0.5)",
}

// SubtitleService turns caption files into timed text clips on a project.
type SubtitleService struct {
	projects *ProjectService
}

func NewSubtitleService(projects *ProjectService) *SubtitleService {
	return &SubtitleService{projects: projects}
}

// Import parses SRT content and adds one text clip per cue to the project in
// a single history checkpoint batch. Returns the number of clips added along
// with per-cue parse errors.
func (s *SubtitleService) Import(ctx context.Context, projectID, content string) (*model.ProjectResponse, int, []error) {
	cues, errs := subtitle.Parse(content)
	if len(cues) == 0 {
		return nil, 0, errs
	}

	asset := model.Asset{
		ID:        model.NewID(),
		Type:      model.AssetTypeText,
		Name:      fmt.Sprintf("Captions %s", time.Now().Format("15:04:05")),
		CreatedAt: time.Now().UnixMilli(),
	}
	clips := subtitle.CuesToClips(cues, asset.ID, DefaultSubtitleStyle)

	resp, err := s.projects.Mutate(ctx, projectID, func(store *engine.Store) {
		store.Dispatch(engine.AddAsset{Asset: asset})
		for _, clip := range clips {
			store.Dispatch(engine.AddClip{Clip: clip})
		}
	})
	if err != nil {
		return nil, 0, append(errs, err)
	}
	return resp, len(clips), errs
}
