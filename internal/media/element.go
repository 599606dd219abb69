package media

import "image"

// Element is one persistent off-screen media surface backing an asset. One
// element exists per asset for the lifetime of its pool entry; it is never
// recreated per frame. Implementations are not safe for concurrent use; the
// compositor and audio engine coordinate through the single dispatch thread
// of control.
type Element interface {
	// Frame returns the decoded frame at the element's current position.
	// The second result is false while not enough data is available; the
	// caller skips the element for that frame and retries later.
	Frame() (image.Image, bool)
	// Size returns the intrinsic pixel dimensions of the media.
	Size() (width, height int)
	// CurrentTime returns the element's playback position in seconds.
	CurrentTime() float64
	// Seek moves the playback position.
	Seek(t float64)
	// Play resumes the element.
	Play()
	// Pause suspends the element.
	Pause()
	// Paused reports whether the element is suspended.
	Paused() bool
	// SetVolume sets the element volume in [0,1].
	SetVolume(v float64)
	// Volume returns the element volume.
	Volume() float64
	// Close releases the native resources behind the element.
	Close() error
}
