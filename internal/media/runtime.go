package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os/exec"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reelcraft/api/internal/model"
)

// frameExtractTimeout bounds a single still extraction.
const frameExtractTimeout = 5 * time.Second

// Runtime builds elements backed by ffmpeg still extraction. Video elements
// decode one frame per seek position; image elements decode once and serve
// the same frame; audio elements carry position and volume only.
type Runtime struct {
	ffmpegPath string
	prober     *Prober
}

// NewRuntime returns a runtime using the given binaries, falling back to
// PATH lookups for empty paths.
func NewRuntime(ffmpegPath, ffprobePath string) *Runtime {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Runtime{ffmpegPath: ffmpegPath, prober: NewProber(ffprobePath)}
}

// Prober exposes the runtime's metadata prober.
func (r *Runtime) Prober() *Prober {
	return r.prober
}

// NewElement builds the element backing an asset. It satisfies Factory.
func (r *Runtime) NewElement(asset model.Asset) (Element, error) {
	switch asset.Type {
	case model.AssetTypeVideo:
		return &videoElement{
			runtime: r,
			source:  asset.URL,
			width:   asset.Width,
			height:  asset.Height,
			paused:  true,
			volume:  1,
		}, nil
	case model.AssetTypeImage:
		return &imageElement{
			runtime: r,
			source:  asset.URL,
			width:   asset.Width,
			height:  asset.Height,
		}, nil
	case model.AssetTypeAudio:
		return &audioElement{paused: true, volume: 1}, nil
	default:
		return nil, fmt.Errorf("asset type %s has no media element", asset.Type)
	}
}

// extractFrame decodes the still at position t from the source.
func (r *Runtime) extractFrame(source string, t float64) (image.Image, error) {
	ctx, cancel := context.WithTimeout(context.Background(), frameExtractTimeout)
	defer cancel()

	args := []string{
		"-ss", fmt.Sprintf("%.3f", t),
		"-i", source,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	}
	cmd := exec.CommandContext(ctx, r.ffmpegPath, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg frame extraction failed: %w", err)
	}
	img, _, err := image.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("decode extracted frame: %w", err)
	}
	return img, nil
}

// frameCacheTolerance is how close a cached still must be to the requested
// position before a new extraction is issued.
const frameCacheTolerance = 0.04

type videoElement struct {
	runtime *Runtime
	source  string
	width   int
	height  int

	mu          sync.Mutex
	currentTime float64
	paused      bool
	volume      float64
	frame       image.Image
	frameTime   float64
}

func (e *videoElement) Frame() (image.Image, bool) {
	e.mu.Lock()
	t := e.currentTime
	cached := e.frame
	cachedAt := e.frameTime
	e.mu.Unlock()

	if cached != nil && math.Abs(cachedAt-t) <= frameCacheTolerance {
		return cached, true
	}
	img, err := e.runtime.extractFrame(e.source, t)
	if err != nil {
		// Not ready this frame; the compositor skips the clip and retries.
		log.Debug().Err(err).Str("source", e.source).Msg("frame not ready")
		return nil, false
	}
	e.mu.Lock()
	e.frame = img
	e.frameTime = t
	if e.width == 0 {
		b := img.Bounds()
		e.width, e.height = b.Dx(), b.Dy()
	}
	e.mu.Unlock()
	return img, true
}

func (e *videoElement) Size() (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width, e.height
}

func (e *videoElement) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentTime
}

func (e *videoElement) Seek(t float64) {
	e.mu.Lock()
	e.currentTime = t
	e.mu.Unlock()
}

func (e *videoElement) Play() {
	e.mu.Lock()
	e.paused = false
	e.mu.Unlock()
}

func (e *videoElement) Pause() {
	e.mu.Lock()
	e.paused = true
	e.mu.Unlock()
}

func (e *videoElement) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

func (e *videoElement) SetVolume(v float64) {
	e.mu.Lock()
	e.volume = v
	e.mu.Unlock()
}

func (e *videoElement) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

func (e *videoElement) Close() error {
	e.mu.Lock()
	e.frame = nil
	e.mu.Unlock()
	return nil
}

type imageElement struct {
	runtime *Runtime
	source  string
	width   int
	height  int

	mu    sync.Mutex
	frame image.Image
}

func (e *imageElement) Frame() (image.Image, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.frame != nil {
		return e.frame, true
	}
	img, err := e.runtime.extractFrame(e.source, 0)
	if err != nil {
		// Not ready this frame; retried on a later one.
		log.Debug().Err(err).Str("source", e.source).Msg("image not ready")
		return nil, false
	}
	e.frame = img
	if e.width == 0 {
		b := img.Bounds()
		e.width, e.height = b.Dx(), b.Dy()
	}
	return e.frame, true
}

func (e *imageElement) Size() (int, int)     { return e.width, e.height }
func (e *imageElement) CurrentTime() float64 { return 0 }
func (e *imageElement) Seek(float64)         {}
func (e *imageElement) Play()                {}
func (e *imageElement) Pause()               {}
func (e *imageElement) Paused() bool         { return true }
func (e *imageElement) SetVolume(float64)    {}
func (e *imageElement) Volume() float64      { return 0 }
func (e *imageElement) Close() error {
	e.mu.Lock()
	e.frame = nil
	e.mu.Unlock()
	return nil
}

type audioElement struct {
	mu          sync.Mutex
	currentTime float64
	paused      bool
	volume      float64
}

func (e *audioElement) Frame() (image.Image, bool) { return nil, false }
func (e *audioElement) Size() (int, int)           { return 0, 0 }

func (e *audioElement) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentTime
}

func (e *audioElement) Seek(t float64) {
	e.mu.Lock()
	e.currentTime = t
	e.mu.Unlock()
}

func (e *audioElement) Play() {
	e.mu.Lock()
	e.paused = false
	e.mu.Unlock()
}

func (e *audioElement) Pause() {
	e.mu.Lock()
	e.paused = true
	e.mu.Unlock()
}

func (e *audioElement) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

func (e *audioElement) SetVolume(v float64) {
	e.mu.Lock()
	e.volume = v
	e.mu.Unlock()
}

func (e *audioElement) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

func (e *audioElement) Close() error { return nil }
