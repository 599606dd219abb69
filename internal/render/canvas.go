package render

import "github.com/reelcraft/api/internal/model"

// CanvasSize is the pixel geometry of one composited frame.
type CanvasSize struct {
	// Width and Height are the backing-store dimensions (CSS size scaled by
	// the device pixel ratio).
	Width  int
	Height int
	// CSSWidth and CSSHeight are the layout dimensions inside the container.
	CSSWidth  float64
	CSSHeight float64
}

func ratioOf(ar model.AspectRatio) float64 {
	if ar == model.AspectRatioTall {
		return 9.0 / 16.0
	}
	return 16.0 / 9.0
}

// FitCanvas letterboxes the canvas into the container at the aspect ratio:
// fill the width, and if the resulting height overflows, fill the height
// instead. The backing store is scaled by the device pixel ratio.
func FitCanvas(containerW, containerH float64, ar model.AspectRatio, dpr float64) CanvasSize {
	if dpr <= 0 {
		dpr = 1
	}
	r := ratioOf(ar)

	w := containerW
	h := containerW / r
	if h > containerH {
		h = containerH
		w = containerH * r
	}
	return CanvasSize{
		Width:     int(w * dpr),
		Height:    int(h * dpr),
		CSSWidth:  w,
		CSSHeight: h,
	}
}
