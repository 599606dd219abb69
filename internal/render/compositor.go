package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/reelcraft/api/internal/media"
	"github.com/reelcraft/api/internal/model"
)

// VideoSeekTolerance is the drift, in seconds, a video element may run
// ahead or behind its clip-local time before the compositor reseeks it.
// Tighter than the audio engine's tolerance: a visual snap is imperceptible
// where an audio reseek clicks.
const VideoSeekTolerance = 0.1

// Compositor rasterizes editor state into frames. It always reads the live
// state passed per call and resolves media through the shared element pool;
// elements are never created on the frame path.
type Compositor struct {
	pool  *media.Pool
	fonts *FontRegistry
}

// NewCompositor returns a compositor over the element pool.
func NewCompositor(pool *media.Pool, fonts *FontRegistry) *Compositor {
	return &Compositor{pool: pool, fonts: fonts}
}

// RenderFrame composites the frame at the state's current playback time.
// Clips whose media is not ready are omitted for this frame only; the pass
// self-corrects once the element has data.
func (c *Compositor) RenderFrame(state model.EditorState, size CanvasSize) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	// Clear to opaque black.
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	now := state.Playback.CurrentTime
	for _, clip := range DrawList(state.Timeline, now) {
		switch clip.Type {
		case model.ClipTypeVideo:
			c.drawVideoClip(canvas, state, clip, now)
		case model.ClipTypeText:
			if clip.Style != nil {
				// Text draws last in the list, so it lands above footage.
				_ = drawCenteredText(canvas, clip.Text, *clip.Style, c.fonts)
			}
		case model.ClipTypeElement:
			// Elements reserve their draw slot but have no raster pass.
		}
	}
	return canvas
}

func (c *Compositor) drawVideoClip(canvas *image.RGBA, state model.EditorState, clip model.Clip, now float64) {
	el, ok := c.pool.Get(clip.AssetID)
	if !ok {
		return
	}
	asset, _ := state.Asset(clip.AssetID)

	if asset.Type == model.AssetTypeVideo {
		speed := clip.Speed
		if speed <= 0 {
			speed = 1
		}
		clipTime := (now - clip.Start) * speed
		if math.Abs(el.CurrentTime()-clipTime) > VideoSeekTolerance {
			// The draw below blocks on the decoded frame, so the seek is
			// settled before this clip is rasterized.
			el.Seek(clipTime)
		}
	}

	frame, ok := el.Frame()
	if !ok {
		return
	}

	mediaW, mediaH := el.Size()
	if mediaW == 0 || mediaH == 0 {
		b := frame.Bounds()
		mediaW, mediaH = b.Dx(), b.Dy()
	}

	crop := clip.Crop
	if crop == nil {
		crop = model.DefaultCrop()
	}
	transform := clip.Transform
	if transform == nil {
		transform = model.DefaultTransform()
	}

	// Percentage insets to a source rectangle in media pixels.
	fb := frame.Bounds()
	sx := float64(fb.Min.X) + float64(mediaW)*crop.Left/100
	sy := float64(fb.Min.Y) + float64(mediaH)*crop.Top/100
	sw := float64(mediaW) * (1 - (crop.Left+crop.Right)/100)
	sh := float64(mediaH) * (1 - (crop.Top+crop.Bottom)/100)
	if sw <= 0 || sh <= 0 {
		return
	}
	srcRect := image.Rect(int(sx), int(sy), int(sx+sw), int(sy+sh))

	canvasW := float64(canvas.Bounds().Dx())
	canvasH := float64(canvas.Bounds().Dy())

	// Cover fit: uniform scale by the larger of the two fit ratios.
	cover := math.Max(canvasW/sw, canvasH/sh)
	dw := sw * cover
	dh := sh * cover

	// translate -> rotate -> scale composition around the canvas center,
	// with position as a percent-of-canvas offset from that center.
	cx := canvasW/2 + transform.Position.X/100*canvasW
	cy := canvasH/2 + transform.Position.Y/100*canvasH
	rad := transform.Rotation * math.Pi / 180

	m := affTranslate(cx, cy)
	m = affMul(m, affRotate(rad))
	m = affMul(m, affScale(transform.Scale, transform.Scale))
	m = affMul(m, affTranslate(-dw/2, -dh/2))
	m = affMul(m, affScale(cover, cover))
	m = affMul(m, affTranslate(-sx, -sy))

	target := canvas
	stages := parseFilter(clip.Filter)
	if len(stages) > 0 {
		// Filter on a scratch layer so it cannot bleed into layers below.
		target = image.NewRGBA(canvas.Bounds())
	}

	xdraw.BiLinear.Transform(target, m, frame, srcRect, xdraw.Over, nil)

	if len(stages) > 0 {
		applyFilter(target, stages)
		draw.Draw(canvas, canvas.Bounds(), target, canvas.Bounds().Min, draw.Over)
	}
}

// affTranslate, affRotate, affScale and affMul build row-major 2x3 affine
// matrices in the source-to-destination convention x/image/draw expects.
func affTranslate(tx, ty float64) f64.Aff3 {
	return f64.Aff3{1, 0, tx, 0, 1, ty}
}

func affRotate(rad float64) f64.Aff3 {
	sin, cos := math.Sincos(rad)
	return f64.Aff3{cos, -sin, 0, sin, cos, 0}
}

func affScale(sx, sy float64) f64.Aff3 {
	return f64.Aff3{sx, 0, 0, 0, sy, 0}
}

// affMul returns a∘b: b applied first, then a.
func affMul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}
