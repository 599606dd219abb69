package model

import "github.com/google/uuid"

// PlaybackState holds the shared playback clock state.
type PlaybackState struct {
	IsPlaying   bool    `json:"isPlaying"`
	CurrentTime float64 `json:"currentTime"` // seconds, 0..timeline duration
	Volume      float64 `json:"volume"`      // 0-1
	IsMuted     bool    `json:"isMuted"`
}

// SelectionState holds the selected clip ids with set semantics.
type SelectionState struct {
	Clips []string `json:"clips"`
}

// Contains reports whether the selection includes the clip id.
func (s SelectionState) Contains(id string) bool {
	for _, c := range s.Clips {
		if c == id {
			return true
		}
	}
	return false
}

// EditorState is the aggregate project state. It is the unit snapshotted by
// the history engine and must stay JSON-serializable with no cycles: clips
// reference tracks and assets by string id only.
type EditorState struct {
	ProjectAssets []Asset        `json:"projectAssets"`
	Timeline      Timeline       `json:"timeline"`
	Playback      PlaybackState  `json:"playback"`
	Selection     SelectionState `json:"selection"`
	IsRecording   bool           `json:"isRecording"`
}

const (
	// DefaultProjectDuration is the fixed project length in seconds.
	DefaultProjectDuration = 60
	// DefaultPixelsPerSecond is the initial timeline zoom.
	DefaultPixelsPerSecond = 50
)

// NewEditorState returns a fresh project: one video track, one audio track,
// no assets, playback stopped at zero.
func NewEditorState() EditorState {
	return EditorState{
		ProjectAssets: []Asset{},
		Timeline: Timeline{
			Tracks: []Track{
				{ID: uuid.New().String(), Type: ClipTypeVideo, Clips: []string{}},
				{ID: uuid.New().String(), Type: ClipTypeAudio, Clips: []string{}},
			},
			Clips:           map[string]Clip{},
			Duration:        DefaultProjectDuration,
			PixelsPerSecond: DefaultPixelsPerSecond,
		},
		Playback: PlaybackState{
			IsPlaying:   false,
			CurrentTime: 0,
			Volume:      1,
			IsMuted:     false,
		},
		Selection: SelectionState{Clips: []string{}},
	}
}

// Asset looks up a project asset by id.
func (s EditorState) Asset(id string) (Asset, bool) {
	for _, a := range s.ProjectAssets {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

// NewID returns a fresh entity id.
func NewID() string {
	return uuid.New().String()
}
