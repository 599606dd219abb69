package model

// SubtitleCue is a single timed caption parsed from an SRT file.
type SubtitleCue struct {
	ID        string  `json:"id"`
	StartTime float64 `json:"startTime"` // seconds
	EndTime   float64 `json:"endTime"`   // seconds
	Text      string  `json:"text"`
}
