package service

import (
	"image"
	"testing"

	"github.com/reelcraft/api/internal/engine"
	"github.com/reelcraft/api/internal/media"
	"github.com/reelcraft/api/internal/model"
	"github.com/reelcraft/api/internal/render"
)

type stubElement struct {
	paused   bool
	position float64
	volume   float64
	closed   bool
}

func (e *stubElement) Frame() (image.Image, bool) { return nil, false }
func (e *stubElement) Size() (int, int)           { return 0, 0 }
func (e *stubElement) CurrentTime() float64       { return e.position }
func (e *stubElement) Seek(t float64)             { e.position = t }
func (e *stubElement) Play()                      { e.paused = false }
func (e *stubElement) Pause()                     { e.paused = true }
func (e *stubElement) Paused() bool               { return e.paused }
func (e *stubElement) SetVolume(v float64)        { e.volume = v }
func (e *stubElement) Volume() float64            { return e.volume }
func (e *stubElement) Close() error {
	e.closed = true
	return nil
}

func newPlaybackTestSession(t *testing.T, initial model.EditorState) (*playbackSession, *engine.Store, map[string]*stubElement) {
	t.Helper()
	elements := make(map[string]*stubElement)
	factory := func(asset model.Asset) (media.Element, error) {
		el := &stubElement{paused: true, volume: 1}
		elements[asset.ID] = el
		return el, nil
	}
	store := engine.NewStoreWith(initial)
	sess := newPlaybackSession("p1", store, factory, nil, render.CanvasSize{Width: 16, Height: 9}, nil)
	t.Cleanup(sess.close)
	return sess, store, elements
}

func TestPlaybackSessionTracksAssetList(t *testing.T) {
	sess, store, _ := newPlaybackTestSession(t, model.NewEditorState())

	store.Dispatch(engine.AddAsset{Asset: model.Asset{
		ID: "a1", Type: model.AssetTypeAudio, Name: "song", URL: "/media/song.wav",
	}})
	if sess.pool.Len() != 1 {
		t.Fatalf("pool len = %d after audio asset, want 1", sess.pool.Len())
	}

	// Text assets have no media element.
	store.Dispatch(engine.AddAsset{Asset: model.Asset{
		ID: "a2", Type: model.AssetTypeText, Name: "captions",
	}})
	if sess.pool.Len() != 1 {
		t.Fatalf("pool len = %d after text asset, want 1", sess.pool.Len())
	}

	store.Dispatch(engine.RemoveAsset{AssetID: "a1"})
	if sess.pool.Len() != 0 {
		t.Fatalf("pool len = %d after asset removal, want 0", sess.pool.Len())
	}
}

func TestPlaybackSessionSyncsAudioElements(t *testing.T) {
	state := model.NewEditorState()
	state.Timeline.Duration = 60
	state.Timeline.Tracks = append(state.Timeline.Tracks, model.Track{
		ID: "t-audio", Type: model.ClipTypeAudio, Clips: []string{"c1"},
	})
	state.Timeline.Clips = map[string]model.Clip{
		"c1": {ID: "c1", AssetID: "a1", Type: model.ClipTypeAudio, Start: 0, Duration: 30, TrackID: "t-audio", Volume: 1},
	}
	state.ProjectAssets = []model.Asset{
		{ID: "a1", Type: model.AssetTypeAudio, URL: "/media/song.wav"},
	}

	_, store, elements := newPlaybackTestSession(t, state)
	el, ok := elements["a1"]
	if !ok {
		t.Fatal("session did not open an element for the seeded asset")
	}
	if !el.Paused() {
		t.Fatal("element playing before playback started")
	}

	store.DispatchTransient(engine.SetIsPlaying{IsPlaying: true})
	if el.Paused() {
		t.Fatal("active element still paused after play")
	}

	store.DispatchTransient(engine.SetIsPlaying{IsPlaying: false})
	if !el.Paused() {
		t.Fatal("element still playing after pause")
	}
}

func TestPlaybackSessionCloseReleasesEverything(t *testing.T) {
	sess, store, elements := newPlaybackTestSession(t, model.NewEditorState())

	store.Dispatch(engine.AddAsset{Asset: model.Asset{
		ID: "a1", Type: model.AssetTypeVideo, URL: "/media/clip.mp4",
	}})

	sess.close()
	if sess.pool.Len() != 0 {
		t.Fatalf("pool len = %d after close, want 0", sess.pool.Len())
	}
	if !elements["a1"].closed {
		t.Fatal("element not closed on session teardown")
	}

	// A closed session must ignore further store changes.
	store.Dispatch(engine.AddAsset{Asset: model.Asset{
		ID: "a2", Type: model.AssetTypeVideo, URL: "/media/other.mp4",
	}})
	if sess.pool.Len() != 0 {
		t.Fatalf("closed session reacquired media, pool len = %d", sess.pool.Len())
	}
}
