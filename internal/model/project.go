package model

import (
	"encoding/json"
	"time"
)

// Project is a persisted snapshot of an editor session.
type Project struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	State     EditorState `json:"state"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// ProjectCreateRequest represents the request to open a new editor session
type ProjectCreateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// ProjectResponse represents a project with its live state
type ProjectResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	State     EditorState `json:"state"`
	CanUndo   bool        `json:"canUndo"`
	CanRedo   bool        `json:"canRedo"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// ProjectSummary is a project listing entry without the state blob
type ProjectSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DispatchRequest carries a batch of actions to apply to a project, in order.
type DispatchRequest struct {
	Actions []ActionEnvelope `json:"actions" validate:"required,min=1,dive"`
}

// ActionEnvelope is the wire form of a single editor action.
type ActionEnvelope struct {
	Type    string          `json:"type" validate:"required"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Meta    ActionMeta      `json:"meta"`
}

// ActionMeta carries per-action dispatch flags.
type ActionMeta struct {
	// SkipHistory suppresses the undo checkpoint for this action. Used for
	// continuous high-frequency updates (scrub, drag-in-progress, zoom,
	// volume) that would otherwise flood the history stack.
	SkipHistory bool `json:"skipHistory,omitempty"`
}

// AssetUploadResponse represents an ingested media asset
type AssetUploadResponse struct {
	Asset Asset `json:"asset"`
}

// ExportRequest represents the request to export a project result. Export
// downloads a pre-rendered asset; no encoding happens server-side.
type ExportRequest struct {
	ProjectID string `json:"projectId" validate:"required,uuid"`
	AssetID   string `json:"assetId" validate:"required"`
	Format    string `json:"format" validate:"required,oneof=mp4 webm gif"`
}

// ExportResponse represents a prepared download
type ExportResponse struct {
	FileURL   string    `json:"fileUrl"`
	Size      int64     `json:"size"`
	Format    string    `json:"format"`
	ExpiresAt time.Time `json:"expiresAt"`
}
