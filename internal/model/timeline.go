package model

// Track is an ordered lane of clip ids. Order is insertion order, not sorted
// by start; within a type-priority tier it decides draw order.
type Track struct {
	ID    string   `json:"id"`
	Type  ClipType `json:"type"`
	Clips []string `json:"clips"`
}

// Timeline aggregates tracks, the clip map, the fixed project duration and
// the zoom factor.
type Timeline struct {
	Tracks          []Track         `json:"tracks"`
	Clips           map[string]Clip `json:"clips"`
	Duration        float64         `json:"duration"`        // seconds
	PixelsPerSecond float64         `json:"pixelsPerSecond"` // zoom
}

// Clip looks up a clip by id.
func (t Timeline) Clip(id string) (Clip, bool) {
	c, ok := t.Clips[id]
	return c, ok
}

// Track looks up a track by id.
func (t Timeline) Track(id string) (Track, bool) {
	for _, tr := range t.Tracks {
		if tr.ID == id {
			return tr, true
		}
	}
	return Track{}, false
}

// ClipsInTrackOrder flattens all tracks' clip ids to clips, preserving track
// and in-track order. Missing ids are skipped.
func (t Timeline) ClipsInTrackOrder() []Clip {
	var out []Clip
	for _, tr := range t.Tracks {
		for _, id := range tr.Clips {
			if c, ok := t.Clips[id]; ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// ActiveClips returns the clips whose interval contains t, in track order.
func (t Timeline) ActiveClips(at float64) []Clip {
	var out []Clip
	for _, c := range t.ClipsInTrackOrder() {
		if c.ActiveAt(at) {
			out = append(out, c)
		}
	}
	return out
}
