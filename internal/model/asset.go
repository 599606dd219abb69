package model

// Asset types
type AssetType string

const (
	AssetTypeVideo AssetType = "video"
	AssetTypeAudio AssetType = "audio"
	AssetTypeImage AssetType = "image"
	AssetTypeText  AssetType = "text"
)

// Asset describes an importable or generated resource. Assets are immutable
// after creation and referenced from clips by id only.
type Asset struct {
	ID        string    `json:"id"`
	Type      AssetType `json:"type"`
	Name      string    `json:"name"`
	CreatedAt int64     `json:"createdAt"` // unix millis

	// Media variants (video/audio/image)
	URL      string  `json:"url,omitempty"`
	Duration float64 `json:"duration,omitempty"` // seconds
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`

	// Audio variant: cached amplitude envelope, 100 samples in [0,1]
	Waveform []float64 `json:"waveform,omitempty"`

	// Text variant
	Text string `json:"text,omitempty"`
}

// Clone returns a deep copy of the asset.
func (a Asset) Clone() Asset {
	out := a
	if a.Waveform != nil {
		out.Waveform = append([]float64(nil), a.Waveform...)
	}
	return out
}
