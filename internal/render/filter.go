package render

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// filterFunc maps one pixel through a filter stage.
type filterFunc func(r, g, b float64) (float64, float64, float64)

// parseFilter compiles a CSS-filter-like descriptor, e.g. "grayscale(100%)"
// or "brightness(1.5) contrast(1.2)", into a pixel pipeline. Unknown or
// malformed stages are dropped; an empty result means no filtering.
func parseFilter(descriptor string) []filterFunc {
	var stages []filterFunc
	for _, part := range strings.Fields(descriptor) {
		open := strings.IndexByte(part, '(')
		if open < 0 || !strings.HasSuffix(part, ")") {
			continue
		}
		name := part[:open]
		arg := part[open+1 : len(part)-1]
		amount, ok := parseAmount(arg)
		if !ok {
			continue
		}
		switch name {
		case "grayscale":
			stages = append(stages, grayscale(clamp01(amount)))
		case "sepia":
			stages = append(stages, sepia(clamp01(amount)))
		case "invert":
			stages = append(stages, invert(clamp01(amount)))
		case "brightness":
			stages = append(stages, brightness(amount))
		case "contrast":
			stages = append(stages, contrast(amount))
		case "saturate":
			stages = append(stages, saturate(amount))
		}
	}
	return stages
}

// parseAmount handles both "1.5" and "100%" argument forms.
func parseAmount(s string) (float64, bool) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return v / 100, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// applyFilter runs the pipeline over the image in place.
func applyFilter(img *image.RGBA, stages []filterFunc) {
	if len(stages) == 0 {
		return
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			r, g, bl := float64(c.R), float64(c.G), float64(c.B)
			for _, f := range stages {
				r, g, bl = f(r, g, bl)
			}
			img.SetRGBA(x, y, color.RGBA{
				R: clampByte(r),
				G: clampByte(g),
				B: clampByte(bl),
				A: c.A,
			})
		}
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func grayscale(amount float64) filterFunc {
	return func(r, g, b float64) (float64, float64, float64) {
		l := 0.2126*r + 0.7152*g + 0.0722*b
		return lerp(r, l, amount), lerp(g, l, amount), lerp(b, l, amount)
	}
}

func sepia(amount float64) filterFunc {
	return func(r, g, b float64) (float64, float64, float64) {
		sr := 0.393*r + 0.769*g + 0.189*b
		sg := 0.349*r + 0.686*g + 0.168*b
		sb := 0.272*r + 0.534*g + 0.131*b
		return lerp(r, sr, amount), lerp(g, sg, amount), lerp(b, sb, amount)
	}
}

func invert(amount float64) filterFunc {
	return func(r, g, b float64) (float64, float64, float64) {
		return lerp(r, 255-r, amount), lerp(g, 255-g, amount), lerp(b, 255-b, amount)
	}
}

func brightness(factor float64) filterFunc {
	return func(r, g, b float64) (float64, float64, float64) {
		return r * factor, g * factor, b * factor
	}
}

func contrast(factor float64) filterFunc {
	return func(r, g, b float64) (float64, float64, float64) {
		return (r-128)*factor + 128, (g-128)*factor + 128, (b-128)*factor + 128
	}
}

func saturate(factor float64) filterFunc {
	return func(r, g, b float64) (float64, float64, float64) {
		l := 0.2126*r + 0.7152*g + 0.0722*b
		return lerp(l, r, factor), lerp(l, g, factor), lerp(l, b, factor)
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
