package models

// Passage is a bounded slice of transcript text, the unit of retrieval.
type Passage struct {
	Content string
	ChunkID int
}

// ProcessVideoResult is the outcome of one successful ingestion.
type ProcessVideoResult struct {
	Message          string
	VideoID          string
	ChunksCount      int
	TranscriptLength int
}

// StatusResult reports the service status and the currently loaded video.
type StatusResult struct {
	ServiceStatus     string  `json:"service_status"`
	CurrentVideoID    *string `json:"current_video_id"`
	ReadyForQuestions bool    `json:"ready_for_questions"`
}

type ProcessVideoRequest struct {
	VideoID string `json:"video_id" validate:"required,len=11"`
}

type ProcessVideoResponse struct {
	Message     string `json:"message"`
	VideoID     string `json:"video_id"`
	ChunksCount int    `json:"chunks_count"`
	Status      string `json:"status"`
}

type ChatRequest struct {
	Question string `json:"question" validate:"required,min=1"`
	VideoID  string `json:"video_id,omitempty"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
	Status string `json:"status"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
