package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/reelcraft/api/internal/model"
)

// FontRegistry resolves text-style font families to loaded faces, one face
// per family/size pair. Unknown families fall back to the regular face.
type FontRegistry struct {
	mu    sync.Mutex
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

type faceKey struct {
	family string
	size   int
}

// NewFontRegistry returns a registry seeded with the bundled Go font
// families.
func NewFontRegistry() (*FontRegistry, error) {
	fr := &FontRegistry{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
	for family, data := range map[string][]byte{
		"regular": goregular.TTF,
		"bold":    gobold.TTF,
		"italic":  goitalic.TTF,
		"mono":    gomono.TTF,
	} {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, err
		}
		fr.fonts[family] = f
	}
	return fr, nil
}

// Face returns the face for a family and pixel size.
func (fr *FontRegistry) Face(family string, size int) (font.Face, error) {
	if size <= 0 {
		size = 16
	}
	key := faceKey{family: normalizeFamily(family), size: size}

	fr.mu.Lock()
	defer fr.mu.Unlock()
	if face, ok := fr.faces[key]; ok {
		return face, nil
	}
	f := fr.fonts[key.family]
	if f == nil {
		f = fr.fonts["regular"]
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	fr.faces[key] = face
	return face, nil
}

func normalizeFamily(family string) string {
	f := strings.ToLower(family)
	switch {
	case strings.Contains(f, "bold"):
		return "bold"
	case strings.Contains(f, "italic"):
		return "italic"
	case strings.Contains(f, "mono"), strings.Contains(f, "courier"):
		return "mono"
	default:
		return "regular"
	}
}

// drawCenteredText renders the text centered horizontally and vertically on
// the canvas in the clip's style. Text has no independent positioning.
func drawCenteredText(dst *image.RGBA, text string, style model.TextStyle, registry *FontRegistry) error {
	face, err := registry.Face(style.FontFamily, style.FontSize)
	if err != nil {
		return err
	}

	bounds := dst.Bounds()
	width := font.MeasureString(face, text)
	metrics := face.Metrics()

	cx := fixed.I(bounds.Dx() / 2)
	cy := fixed.I(bounds.Dy() / 2)
	dot := fixed.Point26_6{
		X: cx - width/2,
		Y: cy + (metrics.Ascent-metrics.Descent)/2,
	}

	if bg, ok := parseColor(style.BackgroundColor); ok {
		pad := fixed.I(4)
		rect := image.Rect(
			(dot.X - pad).Floor(),
			(dot.Y - metrics.Ascent - pad).Floor(),
			(dot.X + width + pad).Ceil(),
			(dot.Y + metrics.Descent + pad).Ceil(),
		)
		draw.Draw(dst, rect.Intersect(bounds), image.NewUniform(bg), image.Point{}, draw.Over)
	}

	fg, ok := parseColor(style.Color)
	if !ok {
		fg = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  dot,
	}
	drawer.DrawString(text)
	return nil
}

// parseColor handles #rgb, #rrggbb, #rrggbbaa, rgb() and rgba() forms.
// "transparent" and empty strings report no color.
func parseColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "transparent" || s == "none" {
		return color.RGBA{}, false
	}
	if strings.HasPrefix(s, "rgb") {
		return parseRGBFunc(s)
	}
	s = strings.TrimPrefix(s, "#")

	switch len(s) {
	case 3:
		var b strings.Builder
		for _, c := range s {
			b.WriteRune(c)
			b.WriteRune(c)
		}
		s = b.String()
	case 6, 8:
	default:
		return color.RGBA{}, false
	}

	v, err := strconv.ParseUint(s[:6], 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	out := color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
	if len(s) == 8 {
		a, err := strconv.ParseUint(s[6:8], 16, 16)
		if err != nil {
			return color.RGBA{}, false
		}
		out.A = uint8(a)
	}
	return out, true
}

// parseRGBFunc reads "rgb(r,g,b)" and "rgba(r,g,b,a)" with integer channels
// and a 0..1 alpha.
func parseRGBFunc(s string) (color.RGBA, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return color.RGBA{}, false
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.RGBA{}, false
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 10, 16)
		if err != nil || v > 255 {
			return color.RGBA{}, false
		}
		channels[i] = uint8(v)
	}
	out := color.RGBA{R: channels[0], G: channels[1], B: channels[2], A: 255}

	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.RGBA{}, false
		}
		out.A = uint8(math.Round(a * 255))
	}
	return out, true
}
