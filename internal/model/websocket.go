package model

// WebSocket message types
const (
	WSMessageTypeProgress = "progress"
	WSMessageTypeComplete = "complete"
	WSMessageTypeError    = "error"
	WSMessageTypeState    = "state"
	WSMessageTypeFrame    = "frame"
	WSMessageTypePing     = "ping"
	WSMessageTypePong     = "pong"
)

// WSMessage represents a generic WebSocket message
type WSMessage struct {
	Type string `json:"type"`
}

// WSProgressMessage represents a generation progress update
type WSProgressMessage struct {
	Type        string    `json:"type"`
	JobID       string    `json:"jobId"`
	Progress    int       `json:"progress"`
	Status      JobStatus `json:"status"`
	CurrentStep string    `json:"currentStep,omitempty"`
}

// WSCompleteMessage represents job completion
type WSCompleteMessage struct {
	Type   string      `json:"type"`
	JobID  string      `json:"jobId"`
	Result interface{} `json:"result"`
}

// WSErrorMessage represents an error
type WSErrorMessage struct {
	Type  string  `json:"type"`
	JobID string  `json:"jobId"`
	Error WSError `json:"error"`
}

// WSError represents error details
type WSError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WSFrameMessage carries one composited preview frame to project
// subscribers. Frame is PNG data, base64-encoded on the wire.
type WSFrameMessage struct {
	Type      string  `json:"type"`
	ProjectID string  `json:"projectId"`
	Time      float64 `json:"time"`
	Frame     []byte  `json:"frame"`
}

// WSStateMessage carries a project state update to editor subscribers
type WSStateMessage struct {
	Type      string      `json:"type"`
	ProjectID string      `json:"projectId"`
	State     EditorState `json:"state"`
	CanUndo   bool        `json:"canUndo"`
	CanRedo   bool        `json:"canRedo"`
}
