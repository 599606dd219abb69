package render

import (
	"image"
	"sync"
	"time"

	"github.com/reelcraft/api/internal/engine"
)

// DefaultFrameInterval paces the preview loop near 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameSink receives each composited frame.
type FrameSink func(*image.RGBA)

// Loop drives the compositor once per frame interval against the store's
// current state. It runs independently of the playback clock: both read the
// same snapshots, so a time advance becomes visible within one frame of
// latency.
type Loop struct {
	store      *engine.Store
	compositor *Compositor
	size       CanvasSize
	interval   time.Duration
	sink       FrameSink

	mu   sync.Mutex
	stop chan struct{}
}

// NewLoop returns a stopped render loop.
func NewLoop(store *engine.Store, compositor *Compositor, size CanvasSize, interval time.Duration, sink FrameSink) *Loop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Loop{store: store, compositor: compositor, size: size, interval: interval, sink: sink}
}

// Start begins scheduling frames. No-op if already running.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stop != nil {
		return
	}
	l.stop = make(chan struct{})
	go l.run(l.stop)
}

// Stop cancels the pending frame and halts the loop.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stop != nil {
		close(l.stop)
		l.stop = nil
	}
}

func (l *Loop) run(stop chan struct{}) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			frame := l.compositor.RenderFrame(l.store.State(), l.size)
			l.sink(frame)
		}
	}
}
