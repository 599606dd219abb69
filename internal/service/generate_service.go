package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/reelcraft/api/internal/model"
)

const (
	TaskTypeGenerate = "generate:process"
)

// GenerateService handles media generation jobs
type GenerateService struct {
	redis       *redis.Client
	asynqClient *asynq.Client
	taskTimeout time.Duration
}

func NewGenerateService(redisClient *redis.Client, asynqClient *asynq.Client, taskTimeout time.Duration) *GenerateService {
	return &GenerateService{
		redis:       redisClient,
		asynqClient: asynqClient,
		taskTimeout: taskTimeout,
	}
}

// StartVideo queues a video generation job
func (s *GenerateService) StartVideo(ctx context.Context, req *model.GenerateVideoRequest) (*model.GenerateStartResponse, error) {
	payload := &model.VideoJobPayload{
		ProjectID:   req.ProjectID,
		Prompt:      req.Prompt,
		AspectRatio: req.AspectRatio,
		Resolution:  req.Resolution,
	}
	return s.start(ctx, model.JobTypeVideo, payload, 120)
}

// StartImage queues an image generation job
func (s *GenerateService) StartImage(ctx context.Context, req *model.GenerateImageRequest) (*model.GenerateStartResponse, error) {
	payload := &model.ImageJobPayload{
		ProjectID:   req.ProjectID,
		Prompt:      req.Prompt,
		AspectRatio: req.AspectRatio,
	}
	return s.start(ctx, model.JobTypeImage, payload, 30)
}

// StartSubtitles queues a subtitle transcription job
func (s *GenerateService) StartSubtitles(ctx context.Context, req *model.GenerateSubtitlesRequest, assetURL string) (*model.GenerateStartResponse, error) {
	payload := &model.SubtitlesJobPayload{
		ProjectID: req.ProjectID,
		AssetID:   req.AssetID,
		AssetURL:  assetURL,
	}
	return s.start(ctx, model.JobTypeSubtitles, payload, 60)
}

func (s *GenerateService) start(ctx context.Context, jobType string, payload interface{}, estimatedSeconds int) (*model.GenerateStartResponse, error) {
	jobID := uuid.New().String()
	now := time.Now()

	job := &model.Job{
		ID:        jobID,
		Type:      jobType,
		Status:    model.JobStatusQueued,
		Progress:  0,
		CreatedAt: now,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	job.Payload = payloadBytes

	if err := s.saveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	task, err := newGenerateTask(jobID, jobType, payloadBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	_, err = s.asynqClient.Enqueue(task,
		asynq.Queue("generate"),
		asynq.MaxRetry(3),
		asynq.Timeout(s.taskTimeout),
		asynq.Retention(24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue task: %w", err)
	}

	return &model.GenerateStartResponse{
		JobID:             jobID,
		Status:            model.JobStatusQueued,
		EstimatedDuration: estimatedSeconds,
		CreatedAt:         now,
	}, nil
}

// GetStatus returns the current status of a generation job
func (s *GenerateService) GetStatus(ctx context.Context, jobID string) (*model.GenerateStatusResponse, error) {
	job, err := s.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	return &model.GenerateStatusResponse{
		JobID:       job.ID,
		Status:      job.Status,
		Progress:    job.Progress,
		CurrentStep: job.CurrentStep,
		Error:       job.Error,
		CreatedAt:   job.CreatedAt,
		StartedAt:   job.StartedAt,
		CompletedAt: job.CompletedAt,
		RetryCount:  job.RetryCount,
	}, nil
}

// GetResult returns the result of a completed generation job
func (s *GenerateService) GetResult(ctx context.Context, jobID string) (*model.GenerateResultResponse, error) {
	job, err := s.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status != model.JobStatusSucceeded {
		return nil, fmt.Errorf("job not completed")
	}

	var result model.GenerateResultResponse
	if err := json.Unmarshal(job.Result, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

// Cancel marks a queued or running job as canceled. The worker observes the
// flag between steps and stops.
func (s *GenerateService) Cancel(ctx context.Context, jobID string) (*model.GenerateCancelResponse, error) {
	job, err := s.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status == model.JobStatusSucceeded || job.Status == model.JobStatusFailed {
		return &model.GenerateCancelResponse{
			Success: false,
			JobID:   jobID,
			Status:  job.Status,
		}, nil
	}

	now := time.Now()
	job.Status = model.JobStatusCanceled
	job.CompletedAt = &now

	if err := s.saveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	return &model.GenerateCancelResponse{
		Success: true,
		JobID:   jobID,
		Status:  model.JobStatusCanceled,
	}, nil
}

// IsCanceled reports whether the job was canceled by the client
func (s *GenerateService) IsCanceled(ctx context.Context, jobID string) bool {
	job, err := s.getJob(ctx, jobID)
	if err != nil {
		return false
	}
	return job.Status == model.JobStatusCanceled
}

// UpdateJobProgress updates a running job's progress and current step
func (s *GenerateService) UpdateJobProgress(ctx context.Context, jobID string, progress int, step string) error {
	job, err := s.getJob(ctx, jobID)
	if err != nil {
		return err
	}

	if job.Status == model.JobStatusQueued {
		now := time.Now()
		job.StartedAt = &now
	}
	job.Status = model.JobStatusRunning
	job.Progress = progress
	job.CurrentStep = step

	return s.saveJob(ctx, job)
}

// CompleteJob stores the job result and marks it succeeded
func (s *GenerateService) CompleteJob(ctx context.Context, jobID string, result interface{}) error {
	job, err := s.getJob(ctx, jobID)
	if err != nil {
		return err
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		return err
	}

	now := time.Now()
	job.Status = model.JobStatusSucceeded
	job.Progress = 100
	job.CurrentStep = ""
	job.Result = resultBytes
	job.CompletedAt = &now

	return s.saveJob(ctx, job)
}

// FailJob marks the job failed with an error message
func (s *GenerateService) FailJob(ctx context.Context, jobID, errMsg string) error {
	job, err := s.getJob(ctx, jobID)
	if err != nil {
		return err
	}

	now := time.Now()
	job.Status = model.JobStatusFailed
	job.Error = &errMsg
	job.CompletedAt = &now
	job.RetryCount++

	return s.saveJob(ctx, job)
}

// Helper methods

func (s *GenerateService) saveJob(ctx context.Context, job *model.Job) error {
	data, err := json.Marshal(jobRecord{
		Job:     job,
		Payload: job.Payload,
		Result:  job.Result,
	})
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, fmt.Sprintf("job:%s", job.ID), data, 24*time.Hour).Err()
}

func (s *GenerateService) getJob(ctx context.Context, jobID string) (*model.Job, error) {
	data, err := s.redis.Get(ctx, fmt.Sprintf("job:%s", jobID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("job not found")
		}
		return nil, err
	}

	var rec jobRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}

	job := *rec.Job
	job.Payload = rec.Payload
	job.Result = rec.Result
	return &job, nil
}

// jobRecord is the Redis storage form of a job. Payload and Result are
// excluded from the API JSON shape, so they are carried alongside here.
type jobRecord struct {
	*model.Job
	Payload json.RawMessage `json:"payload,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

func newGenerateTask(jobID, jobType string, payload []byte) (*asynq.Task, error) {
	taskPayload := map[string]interface{}{
		"jobId":   jobID,
		"jobType": jobType,
		"payload": payload,
	}
	data, err := json.Marshal(taskPayload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeGenerate, data), nil
}
