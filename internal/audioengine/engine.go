// Package audioengine keeps the per-asset media elements in sync with the
// shared playback state. It is a separate concern from the visual
// compositor: it never draws, it only pauses, reseeks and re-volumes the
// off-screen elements.
package audioengine

import (
	"math"

	"github.com/reelcraft/api/internal/media"
	"github.com/reelcraft/api/internal/model"
)

// SeekTolerance is the drift, in seconds, an element may accumulate before
// the engine reseeks it. Coarser than the compositor's tolerance: an audio
// reseek produces an audible click where a visual snap goes unnoticed.
const SeekTolerance = 0.2

// Engine applies the current editor state to the pooled media elements.
type Engine struct {
	pool *media.Pool
}

// NewEngine returns an engine over the element pool.
func NewEngine(pool *media.Pool) *Engine {
	return &Engine{pool: pool}
}

// Sync reconciles every pooled element with the state. Called on every
// state change: play/pause flips, time advances, volume and timeline edits.
func (e *Engine) Sync(state model.EditorState) {
	now := state.Playback.CurrentTime

	active := make(map[string]model.Clip)
	for _, clip := range state.Timeline.ActiveClips(now) {
		if clip.Type == model.ClipTypeAudio || clip.Type == model.ClipTypeVideo {
			active[clip.AssetID] = clip
		}
	}

	// Pause anything whose asset fell out of the active set.
	e.pool.Each(func(assetID string, el media.Element) {
		if _, ok := active[assetID]; !ok && !el.Paused() {
			el.Pause()
		}
	})

	if !state.Playback.IsPlaying {
		e.pool.Each(func(_ string, el media.Element) {
			if !el.Paused() {
				el.Pause()
			}
		})
		return
	}

	for assetID, clip := range active {
		el, ok := e.pool.Get(assetID)
		if !ok {
			continue
		}
		el.SetVolume(EffectiveVolume(state.Playback, clip))

		mediaTime := now - clip.Start
		if math.Abs(el.CurrentTime()-mediaTime) > SeekTolerance {
			el.Seek(mediaTime)
		}
		if el.Paused() {
			el.Play()
		}
	}
}

// EffectiveVolume is the element volume for a clip under the global
// playback state: zero when muted, otherwise the global volume scaled by
// the clip's own volume.
func EffectiveVolume(playback model.PlaybackState, clip model.Clip) float64 {
	if playback.IsMuted {
		return 0
	}
	return playback.Volume * clip.Volume
}
