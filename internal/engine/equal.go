package engine

import "github.com/reelcraft/api/internal/model"

// StatesEqual is the structural equality used for history no-op detection.
// It compares the known entity shapes field by field; nil and empty
// containers compare equal, so toggling a value back to its original never
// creates a history entry just because a container was reallocated.
func StatesEqual(a, b model.EditorState) bool {
	if a.IsRecording != b.IsRecording {
		return false
	}
	if a.Playback != b.Playback {
		return false
	}
	if !stringsEqual(a.Selection.Clips, b.Selection.Clips) {
		return false
	}
	if !assetsEqual(a.ProjectAssets, b.ProjectAssets) {
		return false
	}
	return timelinesEqual(a.Timeline, b.Timeline)
}

func timelinesEqual(a, b model.Timeline) bool {
	if a.Duration != b.Duration || a.PixelsPerSecond != b.PixelsPerSecond {
		return false
	}
	if len(a.Tracks) != len(b.Tracks) {
		return false
	}
	for i := range a.Tracks {
		if a.Tracks[i].ID != b.Tracks[i].ID || a.Tracks[i].Type != b.Tracks[i].Type {
			return false
		}
		if !stringsEqual(a.Tracks[i].Clips, b.Tracks[i].Clips) {
			return false
		}
	}
	if len(a.Clips) != len(b.Clips) {
		return false
	}
	for id, ca := range a.Clips {
		cb, ok := b.Clips[id]
		if !ok || !clipsEqual(ca, cb) {
			return false
		}
	}
	return true
}

func clipsEqual(a, b model.Clip) bool {
	if a.ID != b.ID || a.AssetID != b.AssetID || a.Type != b.Type ||
		a.Start != b.Start || a.Duration != b.Duration || a.TrackID != b.TrackID {
		return false
	}
	if a.Volume != b.Volume || a.Speed != b.Speed || a.Filter != b.Filter || a.Text != b.Text {
		return false
	}
	if !ptrEqual(a.Transform, b.Transform) {
		return false
	}
	if !ptrEqual(a.Crop, b.Crop) {
		return false
	}
	if !ptrEqual(a.Style, b.Style) {
		return false
	}
	if !ptrEqual(a.Bounds, b.Bounds) {
		return false
	}
	return floatsEqual(a.Waveform, b.Waveform)
}

func assetsEqual(a, b []model.Asset) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Type != b[i].Type || a[i].Name != b[i].Name ||
			a[i].CreatedAt != b[i].CreatedAt || a[i].URL != b[i].URL ||
			a[i].Duration != b[i].Duration || a[i].Width != b[i].Width ||
			a[i].Height != b[i].Height || a[i].Text != b[i].Text {
			return false
		}
		if !floatsEqual(a[i].Waveform, b[i].Waveform) {
			return false
		}
	}
	return true
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
