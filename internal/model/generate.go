package model

import "time"

// AspectRatio of the project canvas and generated media
type AspectRatio string

const (
	AspectRatioWide AspectRatio = "16:9"
	AspectRatioTall AspectRatio = "9:16"
)

// Resolution of generated video
type Resolution string

const (
	Resolution720p  Resolution = "720p"
	Resolution1080p Resolution = "1080p"
)

// GenerateVideoRequest represents the request to start a video generation job
type GenerateVideoRequest struct {
	ProjectID   string      `json:"projectId" validate:"required,uuid"`
	Prompt      string      `json:"prompt" validate:"required,min=1,max=2000"`
	AspectRatio AspectRatio `json:"aspectRatio" validate:"required,oneof=16:9 9:16"`
	Resolution  Resolution  `json:"resolution" validate:"required,oneof=720p 1080p"`
}

// GenerateImageRequest represents the request to start an image generation job
type GenerateImageRequest struct {
	ProjectID   string      `json:"projectId" validate:"required,uuid"`
	Prompt      string      `json:"prompt" validate:"required,min=1,max=2000"`
	AspectRatio AspectRatio `json:"aspectRatio" validate:"required,oneof=16:9 9:16"`
}

// GenerateSubtitlesRequest represents the request to transcribe an audio or
// video asset into subtitle text
type GenerateSubtitlesRequest struct {
	ProjectID string `json:"projectId" validate:"required,uuid"`
	AssetID   string `json:"assetId" validate:"required"`
}

// GenerateStartResponse represents the response when a generation job is queued
type GenerateStartResponse struct {
	JobID             string    `json:"jobId"`
	Status            JobStatus `json:"status"`
	EstimatedDuration int       `json:"estimatedDuration"` // seconds
	CreatedAt         time.Time `json:"createdAt"`
}

// GenerateStatusResponse represents the status of a generation job
type GenerateStatusResponse struct {
	JobID       string     `json:"jobId"`
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"`
	CurrentStep string     `json:"currentStep,omitempty"`
	Error       *string    `json:"error"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	RetryCount  int        `json:"retryCount"`
}

// GenerateResultResponse represents the result of a completed generation job.
// Media jobs carry a URL plus probed metadata; subtitle jobs carry text.
type GenerateResultResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	URL       string    `json:"url,omitempty"`
	Duration  float64   `json:"duration,omitempty"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// GenerateCancelResponse represents the response when canceling a job
type GenerateCancelResponse struct {
	Success bool      `json:"success"`
	JobID   string    `json:"jobId"`
	Status  JobStatus `json:"status"`
}
