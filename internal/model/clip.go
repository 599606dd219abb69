package model

// Clip types
type ClipType string

const (
	ClipTypeVideo   ClipType = "video"
	ClipTypeAudio   ClipType = "audio"
	ClipTypeText    ClipType = "text"
	ClipTypeElement ClipType = "element"
)

// Position is a percent-of-canvas offset from the canvas center.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Transform holds the visual transform of a video or element clip.
type Transform struct {
	Scale    float64  `json:"scale"`
	Rotation float64  `json:"rotation"` // degrees
	Position Position `json:"position"`
}

// Crop holds percentage insets per side, 0-50 each.
type Crop struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// TextStyle holds the render style of a text clip.
type TextStyle struct {
	FontFamily      string `json:"fontFamily"`
	FontSize        int    `json:"fontSize"`
	Color           string `json:"color"`
	BackgroundColor string `json:"backgroundColor"`
}

// Rect is the bounding box of an element clip.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Clip is a timed placement of an asset on a track. It is a tagged union over
// the clip types: the variant-specific pointer fields are set only for the
// matching Type and stay nil for the rest.
type Clip struct {
	ID       string   `json:"id"`
	AssetID  string   `json:"assetId"`
	Type     ClipType `json:"type"`
	Start    float64  `json:"start"`    // seconds
	Duration float64  `json:"duration"` // seconds, > 0
	TrackID  string   `json:"trackId"`

	// video + audio
	Volume float64 `json:"volume,omitempty"` // 0-1

	// video
	Speed     float64    `json:"speed,omitempty"` // multiplier, > 0
	Transform *Transform `json:"transform,omitempty"`
	Crop      *Crop      `json:"crop,omitempty"`
	Filter    string     `json:"filter,omitempty"` // CSS-filter-like descriptor

	// audio
	Waveform []float64 `json:"waveform,omitempty"`

	// text
	Text  string     `json:"text,omitempty"`
	Style *TextStyle `json:"style,omitempty"`

	// element bounding box
	Bounds *Rect `json:"bounds,omitempty"`
}

// End returns the exclusive end time of the clip.
func (c Clip) End() float64 {
	return c.Start + c.Duration
}

// ActiveAt reports whether t falls inside the clip's [start, start+duration)
// interval.
func (c Clip) ActiveAt(t float64) bool {
	return t >= c.Start && t < c.End()
}

// Clone returns a deep copy of the clip.
func (c Clip) Clone() Clip {
	out := c
	if c.Transform != nil {
		tr := *c.Transform
		out.Transform = &tr
	}
	if c.Crop != nil {
		cr := *c.Crop
		out.Crop = &cr
	}
	if c.Style != nil {
		st := *c.Style
		out.Style = &st
	}
	if c.Bounds != nil {
		b := *c.Bounds
		out.Bounds = &b
	}
	if c.Waveform != nil {
		out.Waveform = append([]float64(nil), c.Waveform...)
	}
	return out
}

// DefaultTransform returns the identity transform new visual clips start with.
func DefaultTransform() *Transform {
	return &Transform{Scale: 1, Rotation: 0, Position: Position{X: 0, Y: 0}}
}

// DefaultCrop returns an empty crop.
func DefaultCrop() *Crop {
	return &Crop{}
}
