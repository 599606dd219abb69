// Package render is the frame-accurate canvas compositor: each pass
// evaluates which clips are active at the current playback time and draws
// them, in a fixed priority order, onto an RGBA surface.
package render

import (
	"sort"

	"github.com/reelcraft/api/internal/model"
)

// Draw priority tiers. Lower draws first, so higher tiers end up visually
// on top. Text above element above video is a visible-correctness contract:
// captions must always render over footage.
const (
	priorityVideo   = 0
	priorityElement = 1
	priorityText    = 2
)

// drawPriority returns the tier of a clip type. Audio clips are not drawn
// and report ok=false.
func drawPriority(t model.ClipType) (int, bool) {
	switch t {
	case model.ClipTypeVideo:
		return priorityVideo, true
	case model.ClipTypeElement:
		return priorityElement, true
	case model.ClipTypeText:
		return priorityText, true
	default:
		return 0, false
	}
}

// DrawList returns the clips active at time t in draw order: video/image
// first, elements next, text last. Within a tier the timeline's track and
// in-track clip order is preserved (stable sort), so for overlapping clips
// the later entry in the track list draws above.
func DrawList(timeline model.Timeline, t float64) []model.Clip {
	var out []model.Clip
	for _, clip := range timeline.ActiveClips(t) {
		if _, ok := drawPriority(clip.Type); ok {
			out = append(out, clip)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, _ := drawPriority(out[i].Type)
		pj, _ := drawPriority(out[j].Type)
		return pi < pj
	})
	return out
}
