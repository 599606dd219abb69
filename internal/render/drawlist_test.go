package render

import (
	"testing"

	"github.com/reelcraft/api/internal/model"
)

func overlapTimeline() model.Timeline {
	return model.Timeline{
		Tracks: []model.Track{
			{ID: "t0", Type: model.ClipTypeVideo, Clips: []string{"text1", "vid1", "el1", "vid2"}},
			{ID: "t1", Type: model.ClipTypeAudio, Clips: []string{"aud1"}},
		},
		Clips: map[string]model.Clip{
			"text1": {ID: "text1", Type: model.ClipTypeText, Start: 0, Duration: 10, Text: "caption"},
			"vid1":  {ID: "vid1", Type: model.ClipTypeVideo, Start: 0, Duration: 10},
			"el1":   {ID: "el1", Type: model.ClipTypeElement, Start: 0, Duration: 10},
			"vid2":  {ID: "vid2", Type: model.ClipTypeVideo, Start: 5, Duration: 10},
			"aud1":  {ID: "aud1", Type: model.ClipTypeAudio, Start: 0, Duration: 10},
		},
		Duration: 60,
	}
}

func TestDrawListOrder(t *testing.T) {
	list := DrawList(overlapTimeline(), 6)

	got := make([]string, len(list))
	for i, c := range list {
		got[i] = c.ID
	}

	// Videos first in track order, then the element, text last. Audio never
	// appears.
	want := []string{"vid1", "vid2", "el1", "text1"}
	if len(got) != len(want) {
		t.Fatalf("draw list %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("draw list %v, want %v", got, want)
		}
	}
}

func TestDrawListActiveWindow(t *testing.T) {
	timeline := overlapTimeline()

	// At t=2 only the clips starting at 0 are active.
	list := DrawList(timeline, 2)
	for _, c := range list {
		if c.ID == "vid2" {
			t.Fatal("inactive clip included")
		}
	}

	// The interval is [start, start+duration): at t=10 the first batch ended.
	list = DrawList(timeline, 10)
	if len(list) != 1 || list[0].ID != "vid2" {
		t.Fatalf("at end boundary got %v", list)
	}

	if got := DrawList(timeline, 59); got != nil {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestDrawListExcludesAudio(t *testing.T) {
	timeline := overlapTimeline()
	for _, c := range DrawList(timeline, 1) {
		if c.Type == model.ClipTypeAudio {
			t.Fatal("audio clip in draw list")
		}
	}
}

func TestFitCanvas(t *testing.T) {
	tests := []struct {
		name          string
		w, h          float64
		ar            model.AspectRatio
		dpr           float64
		wantW, wantH  int
		wantCSSWidth  float64
		wantCSSHeight float64
	}{
		{
			name: "wide container, wide ratio fills width",
			w:    1600, h: 1000, ar: model.AspectRatioWide, dpr: 1,
			wantW: 1600, wantH: 900, wantCSSWidth: 1600, wantCSSHeight: 900,
		},
		{
			name: "short container, wide ratio fills height",
			w:    1600, h: 450, ar: model.AspectRatioWide, dpr: 1,
			wantW: 800, wantH: 450, wantCSSWidth: 800, wantCSSHeight: 450,
		},
		{
			name: "tall ratio in wide container fills height",
			w:    1600, h: 900, ar: model.AspectRatioTall, dpr: 1,
			wantW: 506, wantH: 900, wantCSSWidth: 506.25, wantCSSHeight: 900,
		},
		{
			name: "device pixel ratio scales backing store only",
			w:    1600, h: 1000, ar: model.AspectRatioWide, dpr: 2,
			wantW: 3200, wantH: 1800, wantCSSWidth: 1600, wantCSSHeight: 900,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitCanvas(tt.w, tt.h, tt.ar, tt.dpr)
			if got.Width != tt.wantW || got.Height != tt.wantH {
				t.Fatalf("backing store %dx%d, want %dx%d", got.Width, got.Height, tt.wantW, tt.wantH)
			}
			if got.CSSWidth != tt.wantCSSWidth || got.CSSHeight != tt.wantCSSHeight {
				t.Fatalf("css size %vx%v, want %vx%v", got.CSSWidth, got.CSSHeight, tt.wantCSSWidth, tt.wantCSSHeight)
			}
		})
	}
}
