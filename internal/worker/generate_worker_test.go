package worker

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/reelcraft/api/internal/model"
)

func TestGenerateResultCarriesProjectID(t *testing.T) {
	w := &GenerateWorker{}

	tests := []struct {
		name    string
		jobType string
		payload interface{}
	}{
		{"video", model.JobTypeVideo, model.VideoJobPayload{ProjectID: "p1", Prompt: "a sunset", AspectRatio: model.AspectRatioWide, Resolution: model.Resolution1080p}},
		{"image", model.JobTypeImage, model.ImageJobPayload{ProjectID: "p1", Prompt: "a sunset", AspectRatio: model.AspectRatioTall}},
		{"subtitles", model.JobTypeSubtitles, model.SubtitlesJobPayload{ProjectID: "p1", AssetID: "a1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.payload)
			if err != nil {
				t.Fatalf("marshal payload: %v", err)
			}
			result, projectID, err := w.generateResult(tt.jobType, raw)
			if err != nil {
				t.Fatalf("generateResult: %v", err)
			}
			if projectID != "p1" {
				t.Fatalf("projectID = %q, want p1", projectID)
			}
			if result.Type != tt.jobType {
				t.Fatalf("result type = %q, want %q", result.Type, tt.jobType)
			}
		})
	}

	if _, _, err := w.generateResult("unknown", nil); err == nil {
		t.Fatal("unknown job type did not error")
	}
}

func TestAssetForResult(t *testing.T) {
	now := time.Now()

	video := &model.GenerateResultResponse{
		ID:        "r1",
		Type:      model.JobTypeVideo,
		URL:       "https://cdn.reelcraft.app/generated/r1.mp4",
		Duration:  8,
		Width:     1920,
		Height:    1080,
		CreatedAt: now,
	}
	asset, ok := assetForResult(video)
	if !ok {
		t.Fatal("video result produced no asset")
	}
	if asset.Type != model.AssetTypeVideo || asset.ID != "r1" || asset.URL != video.URL {
		t.Fatalf("video asset = %+v", asset)
	}
	if asset.Duration != 8 || asset.Width != 1920 || asset.Height != 1080 {
		t.Fatalf("video asset metadata = %+v", asset)
	}
	if asset.CreatedAt != now.UnixMilli() {
		t.Fatalf("asset createdAt = %d", asset.CreatedAt)
	}

	image := &model.GenerateResultResponse{ID: "r2", Type: model.JobTypeImage, URL: "u", Width: 608, Height: 1080, CreatedAt: now}
	asset, ok = assetForResult(image)
	if !ok || asset.Type != model.AssetTypeImage {
		t.Fatalf("image asset = %+v, ok=%v", asset, ok)
	}

	subs := &model.GenerateResultResponse{ID: "r3", Type: model.JobTypeSubtitles, Text: "1\n...", CreatedAt: now}
	if _, ok := assetForResult(subs); ok {
		t.Fatal("subtitle result mapped to a media asset")
	}
}

func TestGenerateResultSubtitleTextParses(t *testing.T) {
	w := &GenerateWorker{}
	raw, _ := json.Marshal(model.SubtitlesJobPayload{ProjectID: "p1"})
	result, _, err := w.generateResult(model.JobTypeSubtitles, raw)
	if err != nil {
		t.Fatalf("generateResult: %v", err)
	}
	if !strings.Contains(result.Text, "-->") {
		t.Fatalf("subtitle result is not SRT-shaped: %q", result.Text)
	}
}

func TestDimensionsFor(t *testing.T) {
	tests := []struct {
		ratio model.AspectRatio
		res   model.Resolution
		w, h  int
	}{
		{model.AspectRatioWide, model.Resolution1080p, 1920, 1080},
		{model.AspectRatioWide, model.Resolution720p, 1280, 720},
		{model.AspectRatioTall, model.Resolution1080p, 1080, 1920},
	}
	for _, tt := range tests {
		w, h := dimensionsFor(tt.ratio, tt.res)
		if w != tt.w || h != tt.h {
			t.Errorf("dimensionsFor(%s, %s) = %dx%d, want %dx%d", tt.ratio, tt.res, w, h, tt.w, tt.h)
		}
	}
}
