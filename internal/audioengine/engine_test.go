package audioengine

import (
	"image"
	"testing"

	"github.com/reelcraft/api/internal/media"
	"github.com/reelcraft/api/internal/model"
)

// fakeElement records the control calls the engine makes.
type fakeElement struct {
	paused   bool
	position float64
	volume   float64
	seeks    []float64
}

func (f *fakeElement) Frame() (image.Image, bool) { return nil, false }
func (f *fakeElement) Size() (int, int)           { return 0, 0 }
func (f *fakeElement) CurrentTime() float64       { return f.position }
func (f *fakeElement) Seek(t float64) {
	f.position = t
	f.seeks = append(f.seeks, t)
}
func (f *fakeElement) Play()              { f.paused = false }
func (f *fakeElement) Pause()             { f.paused = true }
func (f *fakeElement) Paused() bool       { return f.paused }
func (f *fakeElement) SetVolume(v float64) { f.volume = v }
func (f *fakeElement) Volume() float64    { return f.volume }
func (f *fakeElement) Close() error       { return nil }

func newFakePool(t *testing.T, assetIDs ...string) (*media.Pool, map[string]*fakeElement) {
	t.Helper()
	elements := make(map[string]*fakeElement)
	pool := media.NewPool(func(asset model.Asset) (media.Element, error) {
		el := &fakeElement{paused: true, volume: 1}
		elements[asset.ID] = el
		return el, nil
	})
	for _, id := range assetIDs {
		if _, err := pool.Acquire(model.Asset{ID: id, Type: model.AssetTypeAudio}); err != nil {
			t.Fatalf("acquire %s: %v", id, err)
		}
	}
	return pool, elements
}

func playingState(now float64) model.EditorState {
	state := model.NewEditorState()
	state.Playback = model.PlaybackState{IsPlaying: true, CurrentTime: now, Volume: 1}
	state.Timeline.Tracks = []model.Track{
		{ID: "t0", Type: model.ClipTypeAudio, Clips: []string{"c1", "c2"}},
	}
	state.Timeline.Clips = map[string]model.Clip{
		"c1": {ID: "c1", AssetID: "asset1", Type: model.ClipTypeAudio, Start: 0, Duration: 10, TrackID: "t0", Volume: 1},
		"c2": {ID: "c2", AssetID: "asset2", Type: model.ClipTypeAudio, Start: 20, Duration: 10, TrackID: "t0", Volume: 0.5},
	}
	return state
}

func TestSyncPlaysActiveAndPausesInactive(t *testing.T) {
	pool, elements := newFakePool(t, "asset1", "asset2")
	e := NewEngine(pool)

	e.Sync(playingState(5))

	if elements["asset1"].Paused() {
		t.Fatal("active element left paused")
	}
	if !elements["asset2"].Paused() {
		t.Fatal("inactive element playing")
	}
}

func TestSyncPausesEverythingWhenStopped(t *testing.T) {
	pool, elements := newFakePool(t, "asset1", "asset2")
	e := NewEngine(pool)

	e.Sync(playingState(5))

	state := playingState(5)
	state.Playback.IsPlaying = false
	e.Sync(state)

	for id, el := range elements {
		if !el.Paused() {
			t.Fatalf("element %s still playing after stop", id)
		}
	}
}

func TestSyncAppliesEffectiveVolume(t *testing.T) {
	pool, elements := newFakePool(t, "asset1", "asset2")
	e := NewEngine(pool)

	state := playingState(25) // c2 active, clip volume 0.5
	state.Playback.Volume = 0.8
	e.Sync(state)

	if got := elements["asset2"].Volume(); got != 0.4 {
		t.Fatalf("volume = %v, want 0.4", got)
	}

	state.Playback.IsMuted = true
	e.Sync(state)
	if got := elements["asset2"].Volume(); got != 0 {
		t.Fatalf("muted volume = %v, want 0", got)
	}
}

func TestSyncSeeksOnlyBeyondTolerance(t *testing.T) {
	pool, elements := newFakePool(t, "asset1")
	e := NewEngine(pool)

	el := elements["asset1"]

	// Element position matches clip-local time within tolerance: no reseek.
	el.position = 5.1
	e.Sync(playingState(5))
	if len(el.seeks) != 0 {
		t.Fatalf("unexpected reseek at drift 0.1: %v", el.seeks)
	}

	// Past the tolerance the engine snaps to clip-local time.
	el.position = 7
	e.Sync(playingState(5))
	if len(el.seeks) != 1 || el.seeks[0] != 5 {
		t.Fatalf("seeks = %v, want one seek to 5", el.seeks)
	}
}

func TestSyncUsesClipLocalTime(t *testing.T) {
	pool, elements := newFakePool(t, "asset2")
	e := NewEngine(pool)

	// Playhead at 26 on a clip starting at 20: media time is 6.
	e.Sync(playingState(26))
	el := elements["asset2"]
	if len(el.seeks) != 1 || el.seeks[0] != 6 {
		t.Fatalf("seeks = %v, want one seek to 6", el.seeks)
	}
}

func TestEffectiveVolume(t *testing.T) {
	tests := []struct {
		name     string
		playback model.PlaybackState
		clip     model.Clip
		want     float64
	}{
		{"unity", model.PlaybackState{Volume: 1}, model.Clip{Volume: 1}, 1},
		{"scaled", model.PlaybackState{Volume: 0.5}, model.Clip{Volume: 0.5}, 0.25},
		{"muted wins", model.PlaybackState{Volume: 1, IsMuted: true}, model.Clip{Volume: 1}, 0},
		{"silent clip", model.PlaybackState{Volume: 1}, model.Clip{Volume: 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveVolume(tt.playback, tt.clip); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
