// Package worker processes queued generation jobs.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/reelcraft/api/internal/engine"
	"github.com/reelcraft/api/internal/model"
	"github.com/reelcraft/api/internal/service"
	"github.com/reelcraft/api/internal/websocket"
)

// GenerateWorker processes media generation jobs
type GenerateWorker struct {
	generateService *service.GenerateService
	projectService  *service.ProjectService
	subtitleService *service.SubtitleService
	hub             *websocket.Hub
}

// NewGenerateWorker creates a new generation worker
func NewGenerateWorker(generateService *service.GenerateService, projectService *service.ProjectService, subtitleService *service.SubtitleService, hub *websocket.Hub) *GenerateWorker {
	return &GenerateWorker{
		generateService: generateService,
		projectService:  projectService,
		subtitleService: subtitleService,
		hub:             hub,
	}
}

// ProcessTask handles generation task processing
func (w *GenerateWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var taskPayload struct {
		JobID   string          `json:"jobId"`
		JobType string          `json:"jobType"`
		Payload json.RawMessage `json:"payload"`
	}

	if err := json.Unmarshal(t.Payload(), &taskPayload); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	jobID := taskPayload.JobID
	log.Info().Str("job", jobID).Str("type", taskPayload.JobType).Msg("starting generation job")

	steps := stepsFor(taskPayload.JobType)

	for _, step := range steps {
		// Check for cancellation
		select {
		case <-ctx.Done():
			log.Info().Str("job", jobID).Msg("generation job cancelled")
			return ctx.Err()
		default:
		}
		if w.generateService.IsCanceled(ctx, jobID) {
			log.Info().Str("job", jobID).Msg("generation job canceled by client")
			return nil
		}

		// Update progress
		if err := w.generateService.UpdateJobProgress(ctx, jobID, step.progress, step.step); err != nil {
			log.Warn().Err(err).Str("job", jobID).Msg("failed to update progress")
		}

		// Broadcast progress via WebSocket
		w.hub.BroadcastProgress(jobID, step.progress, model.JobStatusRunning, step.step)

		// Simulate provider latency
		time.Sleep(step.duration)
	}

	result, projectID, err := w.generateResult(taskPayload.JobType, taskPayload.Payload)
	if err != nil {
		w.failJob(ctx, jobID, "Invalid payload")
		return err
	}

	// Complete the job
	if err := w.generateService.CompleteJob(ctx, jobID, result); err != nil {
		w.failJob(ctx, jobID, "Failed to save result")
		return err
	}

	// Attach the result to the project so it shows up in the asset panel
	// without a separate upload round-trip.
	if err := w.attachResult(ctx, projectID, result); err != nil {
		log.Warn().Err(err).Str("job", jobID).Str("project", projectID).Msg("failed to attach result to project")
	}

	// Broadcast completion
	w.hub.BroadcastComplete(jobID, result)

	log.Info().Str("job", jobID).Msg("generation job completed")
	return nil
}

type progressStep struct {
	progress int
	step     string
	duration time.Duration
}

func stepsFor(jobType string) []progressStep {
	switch jobType {
	case model.JobTypeVideo:
		return []progressStep{
			{10, "Interpreting prompt...", 2 * time.Second},
			{25, "Composing scenes...", 3 * time.Second},
			{45, "Generating frames...", 5 * time.Second},
			{70, "Encoding video...", 3 * time.Second},
			{90, "Uploading result...", 2 * time.Second},
			{95, "Finalizing...", 1 * time.Second},
		}
	case model.JobTypeImage:
		return []progressStep{
			{20, "Interpreting prompt...", 1 * time.Second},
			{60, "Rendering image...", 3 * time.Second},
			{90, "Uploading result...", 1 * time.Second},
		}
	case model.JobTypeSubtitles:
		return []progressStep{
			{15, "Extracting audio...", 2 * time.Second},
			{50, "Transcribing speech...", 4 * time.Second},
			{85, "Aligning timestamps...", 2 * time.Second},
		}
	default:
		return []progressStep{{50, "Processing...", 2 * time.Second}}
	}
}

func (w *GenerateWorker) failJob(ctx context.Context, jobID, errMsg string) {
	if err := w.generateService.FailJob(ctx, jobID, errMsg); err != nil {
		log.Error().Err(err).Str("job", jobID).Msg("failed to mark job as failed")
	}
	w.hub.BroadcastError(jobID, "GENERATE_FAILED", errMsg)
}

func (w *GenerateWorker) generateResult(jobType string, raw json.RawMessage) (*model.GenerateResultResponse, string, error) {
	id := uuid.New().String()
	now := time.Now()

	switch jobType {
	case model.JobTypeVideo:
		var payload model.VideoJobPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, "", fmt.Errorf("failed to unmarshal video payload: %w", err)
		}
		width, height := dimensionsFor(payload.AspectRatio, payload.Resolution)
		return &model.GenerateResultResponse{
			ID:        id,
			Type:      model.JobTypeVideo,
			URL:       fmt.Sprintf("https://cdn.reelcraft.app/generated/%s.mp4", id),
			Duration:  8,
			Width:     width,
			Height:    height,
			CreatedAt: now,
		}, payload.ProjectID, nil

	case model.JobTypeImage:
		var payload model.ImageJobPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, "", fmt.Errorf("failed to unmarshal image payload: %w", err)
		}
		width, height := dimensionsFor(payload.AspectRatio, model.Resolution1080p)
		return &model.GenerateResultResponse{
			ID:        id,
			Type:      model.JobTypeImage,
			URL:       fmt.Sprintf("https://cdn.reelcraft.app/generated/%s.png", id),
			Width:     width,
			Height:    height,
			CreatedAt: now,
		}, payload.ProjectID, nil

	case model.JobTypeSubtitles:
		var payload model.SubtitlesJobPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, "", fmt.Errorf("failed to unmarshal subtitles payload: %w", err)
		}
		return &model.GenerateResultResponse{
			ID:        id,
			Type:      model.JobTypeSubtitles,
			Text:      "1\n00:00:00,000 --> 00:00:03,000\nGenerated subtitle text\n",
			CreatedAt: now,
		}, payload.ProjectID, nil

	default:
		return nil, "", fmt.Errorf("unknown job type %q", jobType)
	}
}

// attachResult lands a finished job on its project: media results become
// project assets, subtitle results become caption clips.
func (w *GenerateWorker) attachResult(ctx context.Context, projectID string, result *model.GenerateResultResponse) error {
	if projectID == "" {
		return nil
	}

	if result.Type == model.JobTypeSubtitles {
		_, added, errs := w.subtitleService.Import(ctx, projectID, result.Text)
		if added == 0 && len(errs) > 0 {
			return errs[0]
		}
		return nil
	}

	asset, ok := assetForResult(result)
	if !ok {
		return nil
	}
	_, err := w.projectService.Mutate(ctx, projectID, func(store *engine.Store) {
		store.Dispatch(engine.AddAsset{Asset: asset})
	})
	return err
}

// assetForResult maps a media generation result to the project asset it
// produces. Subtitle results carry text instead of media and report false.
func assetForResult(result *model.GenerateResultResponse) (model.Asset, bool) {
	var assetType model.AssetType
	switch result.Type {
	case model.JobTypeVideo:
		assetType = model.AssetTypeVideo
	case model.JobTypeImage:
		assetType = model.AssetTypeImage
	default:
		return model.Asset{}, false
	}

	return model.Asset{
		ID:        result.ID,
		Type:      assetType,
		Name:      fmt.Sprintf("Generated %s", result.Type),
		CreatedAt: result.CreatedAt.UnixMilli(),
		URL:       result.URL,
		Duration:  result.Duration,
		Width:     result.Width,
		Height:    result.Height,
	}, true
}

func dimensionsFor(ratio model.AspectRatio, res model.Resolution) (int, int) {
	short := 720
	if res == model.Resolution1080p {
		short = 1080
	}
	long := short * 16 / 9

	if ratio == model.AspectRatioTall {
		return short, long
	}
	return long, short
}
