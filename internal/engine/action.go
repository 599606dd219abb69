package engine

import "github.com/reelcraft/api/internal/model"

// Action is a single editor state mutation. Every action is applied through
// the store's dispatch entry point; the reducer over the action set is pure
// and total, so an action can never fail, only no-op.
type Action interface {
	ActionType() string
}

// Action type identifiers, the wire names of the closed action set.
const (
	ActionAddAsset           = "ADD_ASSET"
	ActionRemoveAsset        = "REMOVE_ASSET"
	ActionAddClip            = "ADD_CLIP"
	ActionUpdateClip         = "UPDATE_CLIP"
	ActionDeleteClip         = "DELETE_CLIP"
	ActionSplitClip          = "SPLIT_CLIP"
	ActionDuplicateClips     = "DUPLICATE_CLIPS"
	ActionSetCurrentTime     = "SET_CURRENT_TIME"
	ActionSetIsPlaying       = "SET_IS_PLAYING"
	ActionSetVolume          = "SET_VOLUME"
	ActionSetIsMuted         = "SET_IS_MUTED"
	ActionSetSelection       = "SET_SELECTION"
	ActionSelectAllClips     = "SELECT_ALL_CLIPS"
	ActionClearSelection     = "CLEAR_SELECTION"
	ActionSetPixelsPerSecond = "SET_PIXELS_PER_SECOND"
	ActionStartRecording     = "START_RECORDING"
	ActionStopRecording      = "STOP_RECORDING"
)

// AddAsset appends an asset unless another asset already carries the same
// source URL. Text and generated assets without URLs are never deduped.
type AddAsset struct {
	Asset model.Asset `json:"asset"`
}

func (AddAsset) ActionType() string { return ActionAddAsset }

// RemoveAsset deletes an asset and cascades to every clip referencing it.
type RemoveAsset struct {
	AssetID string `json:"assetId"`
}

func (RemoveAsset) ActionType() string { return ActionRemoveAsset }

// AddClip places a clip on an explicit track, or on the first type-compatible
// one. Text and element clips may land on a video track as overlays.
type AddClip struct {
	Clip    model.Clip `json:"newClip"`
	TrackID string     `json:"trackId,omitempty"`
}

func (AddClip) ActionType() string { return ActionAddClip }

// UpdateClip shallow-merges updates into an existing clip. The clip's type
// discriminant is preserved; callers must not cross-apply updates of a
// different variant.
type UpdateClip struct {
	ClipID  string     `json:"clipId"`
	Updates ClipUpdate `json:"updates"`
}

func (UpdateClip) ActionType() string { return ActionUpdateClip }

// ClipUpdate carries the fields an UpdateClip may change. Nil fields are
// left untouched.
type ClipUpdate struct {
	Start     *float64         `json:"start,omitempty"`
	Duration  *float64         `json:"duration,omitempty"`
	Volume    *float64         `json:"volume,omitempty"`
	Speed     *float64         `json:"speed,omitempty"`
	Transform *model.Transform `json:"transform,omitempty"`
	Crop      *model.Crop      `json:"crop,omitempty"`
	Filter    *string          `json:"filter,omitempty"`
	Waveform  []float64        `json:"waveform,omitempty"`
	Text      *string          `json:"text,omitempty"`
	Style     *model.TextStyle `json:"style,omitempty"`
	Bounds    *model.Rect      `json:"bounds,omitempty"`
}

// DeleteClip removes a clip from the clip map, its track and the selection.
type DeleteClip struct {
	ClipID string `json:"clipId"`
}

func (DeleteClip) ActionType() string { return ActionDeleteClip }

// SplitClip cuts a clip in two at an interior time. A split time at or
// outside the clip bounds is a no-op.
type SplitClip struct {
	ClipID    string  `json:"clipId"`
	SplitTime float64 `json:"splitTime"`
}

func (SplitClip) ActionType() string { return ActionSplitClip }

// DuplicateClips copies clips after the end of their tracks, preserving
// relative order by original start.
type DuplicateClips struct {
	ClipIDs []string `json:"clipIds"`
}

func (DuplicateClips) ActionType() string { return ActionDuplicateClips }

// SetCurrentTime moves the playhead.
type SetCurrentTime struct {
	Time float64 `json:"time"`
}

func (SetCurrentTime) ActionType() string { return ActionSetCurrentTime }

// SetIsPlaying flips the playback flag.
type SetIsPlaying struct {
	IsPlaying bool `json:"isPlaying"`
}

func (SetIsPlaying) ActionType() string { return ActionSetIsPlaying }

// SetVolume sets the global playback volume.
type SetVolume struct {
	Volume float64 `json:"volume"`
}

func (SetVolume) ActionType() string { return ActionSetVolume }

// SetIsMuted sets the global mute flag.
type SetIsMuted struct {
	IsMuted bool `json:"isMuted"`
}

func (SetIsMuted) ActionType() string { return ActionSetIsMuted }

// SetSelection replaces the selection. The caller is responsible for set
// semantics (no duplicate ids).
type SetSelection struct {
	ClipIDs []string `json:"clipIds"`
}

func (SetSelection) ActionType() string { return ActionSetSelection }

// SelectAllClips selects every clip in the timeline.
type SelectAllClips struct{}

func (SelectAllClips) ActionType() string { return ActionSelectAllClips }

// ClearSelection empties the selection.
type ClearSelection struct{}

func (ClearSelection) ActionType() string { return ActionClearSelection }

// SetPixelsPerSecond sets the timeline zoom factor.
type SetPixelsPerSecond struct {
	PixelsPerSecond float64 `json:"pixelsPerSecond"`
}

func (SetPixelsPerSecond) ActionType() string { return ActionSetPixelsPerSecond }

// StartRecording sets the recording flag.
type StartRecording struct{}

func (StartRecording) ActionType() string { return ActionStartRecording }

// StopRecording clears the recording flag.
type StopRecording struct{}

func (StopRecording) ActionType() string { return ActionStopRecording }
