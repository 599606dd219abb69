package playback

import (
	"testing"
	"time"

	"github.com/reelcraft/api/internal/engine"
	"github.com/reelcraft/api/internal/model"
)

func newTestStore(duration float64) *engine.Store {
	state := model.NewEditorState()
	state.Timeline.Duration = duration
	return engine.NewStoreWith(state)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestSeekClamps(t *testing.T) {
	store := newTestStore(60)
	c := NewClock(store, time.Millisecond)
	defer c.Close()

	c.Seek(30)
	if got := store.State().Playback.CurrentTime; got != 30 {
		t.Fatalf("seek landed at %v", got)
	}
	c.Seek(-5)
	if got := store.State().Playback.CurrentTime; got != 0 {
		t.Fatalf("negative seek landed at %v, want 0", got)
	}
	c.Seek(1000)
	if got := store.State().Playback.CurrentTime; got != 60 {
		t.Fatalf("overlong seek landed at %v, want 60", got)
	}
}

func TestSeekNeverTouchesHistory(t *testing.T) {
	store := newTestStore(60)
	c := NewClock(store, time.Millisecond)
	defer c.Close()

	c.Seek(10)
	c.Seek(20)
	c.Forward()
	c.Rewind()
	if store.CanUndo() {
		t.Fatal("playhead moves created undo checkpoints")
	}
}

func TestForwardRewindStep(t *testing.T) {
	store := newTestStore(60)
	c := NewClock(store, time.Millisecond)
	defer c.Close()

	c.Seek(10)
	c.Forward()
	if got := store.State().Playback.CurrentTime; got != 15 {
		t.Fatalf("forward landed at %v, want 15", got)
	}
	c.Rewind()
	c.Rewind()
	c.Rewind()
	if got := store.State().Playback.CurrentTime; got != 0 {
		t.Fatalf("rewind landed at %v, want clamp at 0", got)
	}
}

func TestPlayAdvancesAndAutoStopsAtEnd(t *testing.T) {
	store := newTestStore(0.05)
	c := NewClock(store, time.Millisecond)
	defer c.Close()

	c.Play()
	if !store.State().Playback.IsPlaying {
		t.Fatal("play did not set the playing flag")
	}

	waitFor(t, 2*time.Second, func() bool {
		st := store.State()
		return !st.Playback.IsPlaying && st.Playback.CurrentTime == st.Timeline.Duration
	})
}

func TestPauseStopsAdvancing(t *testing.T) {
	store := newTestStore(3600)
	c := NewClock(store, time.Millisecond)
	defer c.Close()

	c.Play()
	waitFor(t, 2*time.Second, func() bool {
		return store.State().Playback.CurrentTime > 0
	})
	c.Pause()
	if store.State().Playback.IsPlaying {
		t.Fatal("pause did not clear the playing flag")
	}

	frozen := store.State().Playback.CurrentTime
	time.Sleep(50 * time.Millisecond)
	if got := store.State().Playback.CurrentTime; got != frozen {
		t.Fatalf("time advanced after pause: %v -> %v", frozen, got)
	}
}

func TestTogglePlayRestartsFromEnd(t *testing.T) {
	store := newTestStore(3600)
	c := NewClock(store, time.Millisecond)
	defer c.Close()

	store.DispatchTransient(engine.SetCurrentTime{Time: 3600})
	c.TogglePlay()

	st := store.State()
	if !st.Playback.IsPlaying {
		t.Fatal("toggle at end did not start playback")
	}
	if st.Playback.CurrentTime >= 3600 {
		t.Fatalf("toggle at end did not rewind, time=%v", st.Playback.CurrentTime)
	}
	c.Pause()
}

func TestPauseDuringAutoStopKeepsClockUsable(t *testing.T) {
	store := newTestStore(0.02)
	c := NewClock(store, time.Millisecond)
	defer c.Close()

	// Churn pause/play around the terminal tick. A stale run goroutine
	// reaching the end must not null out the replacement loop's stop
	// channel, so every later cycle still starts and stops cleanly.
	for i := 0; i < 5; i++ {
		c.Play()
		time.Sleep(5 * time.Millisecond)
		c.Pause()
		c.Play()
		waitFor(t, 2*time.Second, func() bool {
			st := store.State()
			return !st.Playback.IsPlaying && st.Playback.CurrentTime == st.Timeline.Duration
		})
		c.Seek(0)
	}

	c.Play()
	if !store.State().Playback.IsPlaying {
		t.Fatal("clock no longer starts after auto-stop churn")
	}
	c.Pause()
	if store.State().Playback.IsPlaying {
		t.Fatal("clock no longer pauses after auto-stop churn")
	}
}

func TestPlayIsIdempotent(t *testing.T) {
	store := newTestStore(3600)
	c := NewClock(store, time.Millisecond)
	defer c.Close()

	c.Play()
	c.Play()
	c.Pause()
	if store.State().Playback.IsPlaying {
		t.Fatal("pause after double play left playback running")
	}
}
