package model

import "time"

// Job represents a background generation job in the system
type Job struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"` // "video", "image" or "subtitles"
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"`
	CurrentStep string     `json:"currentStep,omitempty"`
	Error       *string    `json:"error,omitempty"`
	Payload     []byte     `json:"-"` // Stored as JSON
	Result      []byte     `json:"-"` // Stored as JSON
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	RetryCount  int        `json:"retryCount"`
}

// Job types
const (
	JobTypeVideo     = "video"
	JobTypeImage     = "image"
	JobTypeSubtitles = "subtitles"
)

// Job status
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCanceled  JobStatus = "canceled"
)

// VideoJobPayload contains the data for a video generation job
type VideoJobPayload struct {
	ProjectID   string      `json:"projectId"`
	Prompt      string      `json:"prompt"`
	AspectRatio AspectRatio `json:"aspectRatio"`
	Resolution  Resolution  `json:"resolution"`
}

// ImageJobPayload contains the data for an image generation job
type ImageJobPayload struct {
	ProjectID   string      `json:"projectId"`
	Prompt      string      `json:"prompt"`
	AspectRatio AspectRatio `json:"aspectRatio"`
}

// SubtitlesJobPayload contains the data for a subtitle transcription job
type SubtitlesJobPayload struct {
	ProjectID string `json:"projectId"`
	AssetID   string `json:"assetId"`
	AssetURL  string `json:"assetUrl"`
}
