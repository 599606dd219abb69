package engine

import (
	"encoding/json"
	"fmt"

	"github.com/reelcraft/api/internal/model"
)

// Default placement durations for clips that have no intrinsic length.
const (
	DefaultTextClipDuration    = 5.0
	DefaultImageClipDuration   = 5.0
	DefaultElementClipDuration = 5.0
	fallbackMediaClipDuration  = 10.0
)

// The command helpers below are the high-level entry points UI layers call.
// Each reads the current state through the store handle and dispatches plain
// actions; none of them reach around the dispatch entry point.

// AddTextClip creates a text asset and places a text clip for it on the
// first video track, as an overlay.
func (s *Store) AddTextClip(text string, style model.TextStyle, startTime float64, createdAt int64) {
	asset := model.Asset{
		ID:        model.NewID(),
		Type:      model.AssetTypeText,
		Name:      "Text",
		Text:      text,
		CreatedAt: createdAt,
	}
	s.Dispatch(AddAsset{Asset: asset})

	st := style
	s.Dispatch(AddClip{
		Clip: model.Clip{
			AssetID:  asset.ID,
			Type:     model.ClipTypeText,
			Start:    startTime,
			Duration: DefaultTextClipDuration,
			Text:     text,
			Style:    &st,
		},
		TrackID: s.firstTrackOfType(model.ClipTypeVideo),
	})
}

// AddElementClip places an element clip for an existing element asset on the
// first video track.
func (s *Store) AddElementClip(assetID string, startTime float64) {
	s.Dispatch(AddClip{
		Clip: model.Clip{
			AssetID:   assetID,
			Type:      model.ClipTypeElement,
			Start:     startTime,
			Duration:  DefaultElementClipDuration,
			Transform: model.DefaultTransform(),
			Bounds:    &model.Rect{X: 50, Y: 50, Width: 100, Height: 100},
		},
		TrackID: s.firstTrackOfType(model.ClipTypeVideo),
	})
}

// ClipFromAsset builds the default clip placement for an asset dropped onto
// the timeline at startTime. Image assets become video clips with a fixed
// duration; text assets have no default placement and return false.
func ClipFromAsset(asset model.Asset, startTime float64) (model.Clip, bool) {
	switch asset.Type {
	case model.AssetTypeAudio:
		d := asset.Duration
		if d <= 0 {
			d = fallbackMediaClipDuration
		}
		return model.Clip{
			AssetID:  asset.ID,
			Type:     model.ClipTypeAudio,
			Start:    startTime,
			Duration: d,
			Volume:   1,
			Waveform: append([]float64(nil), asset.Waveform...),
		}, true
	case model.AssetTypeVideo, model.AssetTypeImage:
		d := asset.Duration
		if asset.Type == model.AssetTypeImage {
			d = DefaultImageClipDuration
		} else if d <= 0 {
			d = fallbackMediaClipDuration
		}
		return model.Clip{
			AssetID:   asset.ID,
			Type:      model.ClipTypeVideo,
			Start:     startTime,
			Duration:  d,
			Volume:    1,
			Speed:     1,
			Transform: model.DefaultTransform(),
			Crop:      model.DefaultCrop(),
		}, true
	default:
		return model.Clip{}, false
	}
}

// HandleDrop applies a drag-and-drop payload at dropTime. The marker type
// discriminates asset-drops from clip-move-drops.
func (s *Store) HandleDrop(markerType string, payload []byte, targetTrackID string, dropTime float64) error {
	switch markerType {
	case model.DragTypeAsset:
		var p model.AssetDragPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("decode asset drag payload: %w", err)
		}
		asset, ok := s.State().Asset(p.AssetID)
		if !ok {
			return fmt.Errorf("asset %s not found", p.AssetID)
		}
		clip, ok := ClipFromAsset(asset, dropTime)
		if !ok {
			return fmt.Errorf("asset type %s has no timeline placement", asset.Type)
		}
		s.Dispatch(AddClip{Clip: clip, TrackID: targetTrackID})
		return nil
	case model.DragTypeClip:
		var p model.ClipDragPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("decode clip drag payload: %w", err)
		}
		start := dropTime
		s.Dispatch(UpdateClip{ClipID: p.Clip.ID, Updates: ClipUpdate{Start: &start}})
		return nil
	default:
		return fmt.Errorf("unknown drag payload type %q", markerType)
	}
}

// SplitSelected splits the single selected clip at the playhead. No-op when
// the selection is not exactly one clip.
func (s *Store) SplitSelected() {
	state := s.State()
	if len(state.Selection.Clips) != 1 {
		return
	}
	s.Dispatch(SplitClip{ClipID: state.Selection.Clips[0], SplitTime: state.Playback.CurrentTime})
}

// DuplicateSelected duplicates all selected clips.
func (s *Store) DuplicateSelected() {
	state := s.State()
	if len(state.Selection.Clips) == 0 {
		return
	}
	s.Dispatch(DuplicateClips{ClipIDs: state.Selection.Clips})
}

// DeleteSelected deletes all selected clips.
func (s *Store) DeleteSelected() {
	for _, id := range s.State().Selection.Clips {
		s.Dispatch(DeleteClip{ClipID: id})
	}
}

func (s *Store) firstTrackOfType(t model.ClipType) string {
	for _, tr := range s.State().Timeline.Tracks {
		if tr.Type == t {
			return tr.ID
		}
	}
	return ""
}
