package engine

import (
	"math"
	"sort"

	"github.com/reelcraft/api/internal/model"
)

// Point is a position in timeline pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LassoRect is an axis-aligned selection rectangle in timeline pixel space.
type LassoRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LassoFromPoints normalizes the rectangle spanned by the anchor and the
// current pointer position.
func LassoFromPoints(start, end Point) LassoRect {
	return LassoRect{
		X:      math.Min(start.X, end.X),
		Y:      math.Min(start.Y, end.Y),
		Width:  math.Abs(end.X - start.X),
		Height: math.Abs(end.Y - start.Y),
	}
}

// Intersects reports whether the lasso overlaps the item rectangle.
func (r LassoRect) Intersects(item LassoRect) bool {
	return r.X < item.X+item.Width &&
		r.X+r.Width > item.X &&
		r.Y < item.Y+item.Height &&
		r.Y+r.Height > item.Y
}

// HitTest returns the ids of all items intersecting the lasso, sorted for a
// deterministic selection order.
func (r LassoRect) HitTest(items map[string]LassoRect) []string {
	var out []string
	for id, geom := range items {
		if r.Intersects(geom) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// TrackHeight is the rendered height of one timeline lane in pixels.
const TrackHeight = 64.0

// ClipGeometry maps every clip to its rectangle in timeline pixel space:
// x spans [start, end) scaled by the zoom factor, y is the track lane.
func ClipGeometry(timeline model.Timeline) map[string]LassoRect {
	out := make(map[string]LassoRect, len(timeline.Clips))
	for lane, track := range timeline.Tracks {
		for _, id := range track.Clips {
			clip, ok := timeline.Clips[id]
			if !ok {
				continue
			}
			out[id] = LassoRect{
				X:      clip.Start * timeline.PixelsPerSecond,
				Y:      float64(lane) * TrackHeight,
				Width:  clip.Duration * timeline.PixelsPerSecond,
				Height: TrackHeight,
			}
		}
	}
	return out
}
