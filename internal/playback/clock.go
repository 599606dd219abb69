// Package playback drives the logical playhead from wall-clock time.
package playback

import (
	"math"
	"sync"
	"time"

	"github.com/reelcraft/api/internal/engine"
)

// DefaultTickInterval approximates a 60Hz frame pacer. The clock never
// assumes this rate: each tick advances by the measured wall-time delta.
const DefaultTickInterval = 16 * time.Millisecond

// SkipStep is the seek distance of Forward and Rewind, in seconds.
const SkipStep = 5.0

// Clock advances the store's current time while playback is running. All
// time updates are dispatched with the skipHistory flag, so scrubbing and
// playing never pollute the undo stack.
type Clock struct {
	store    *engine.Store
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

// NewClock returns a stopped clock over the store.
func NewClock(store *engine.Store, interval time.Duration) *Clock {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Clock{store: store, interval: interval}
}

// TogglePlay flips playback. Toggling to play while the playhead sits at or
// past the end first rewinds to zero, so play-at-end restarts.
func (c *Clock) TogglePlay() {
	state := c.store.State()
	if state.Playback.IsPlaying {
		c.Pause()
		return
	}
	if state.Playback.CurrentTime >= state.Timeline.Duration {
		c.store.DispatchTransient(engine.SetCurrentTime{Time: 0})
	}
	c.Play()
}

// Play starts the tick loop if it is not already running.
func (c *Clock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}
	c.store.DispatchTransient(engine.SetIsPlaying{IsPlaying: true})
	c.stop = make(chan struct{})
	go c.run(c.stop)
}

// Pause stops playback and cancels the pending tick, so no stray frame can
// advance time after the pause.
func (c *Clock) Pause() {
	c.mu.Lock()
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	c.mu.Unlock()
	c.store.DispatchTransient(engine.SetIsPlaying{IsPlaying: false})
}

// Seek clamps to [0, duration] and moves the playhead. Permitted at any
// time, including mid-playback.
func (c *Clock) Seek(t float64) {
	duration := c.store.State().Timeline.Duration
	clamped := math.Max(0, math.Min(t, duration))
	c.store.DispatchTransient(engine.SetCurrentTime{Time: clamped})
}

// Forward skips ahead by SkipStep seconds.
func (c *Clock) Forward() {
	c.Seek(c.store.State().Playback.CurrentTime + SkipStep)
}

// Rewind skips back by SkipStep seconds.
func (c *Clock) Rewind() {
	c.Seek(c.store.State().Playback.CurrentTime - SkipStep)
}

// Close stops the clock without touching playback state.
func (c *Clock) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

func (c *Clock) run(stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			delta := now.Sub(last).Seconds()
			last = now

			state := c.store.State()
			if !state.Playback.IsPlaying {
				return
			}

			newTime := state.Playback.CurrentTime + delta
			if newTime >= state.Timeline.Duration {
				// Terminal reached: clamp and auto-stop, no loop. Only the
				// goroutine that still owns the stop channel may do this; a
				// stale one racing a Pause/Play pair must not null out the
				// replacement loop's channel.
				c.mu.Lock()
				owner := c.stop == stop
				if owner {
					c.stop = nil
				}
				c.mu.Unlock()
				if !owner {
					return
				}
				c.store.DispatchTransient(engine.SetCurrentTime{Time: state.Timeline.Duration})
				c.store.DispatchTransient(engine.SetIsPlaying{IsPlaying: false})
				return
			}
			c.store.DispatchTransient(engine.SetCurrentTime{Time: newTime})
		}
	}
}
