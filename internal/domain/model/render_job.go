package model

import "time"

type RenderJobStatus string

const (
	RenderJobStatusPending    RenderJobStatus = "pending"
	RenderJobStatusProcessing RenderJobStatus = "processing"
	RenderJobStatusCompleted  RenderJobStatus = "completed"
	RenderJobStatusFailed     RenderJobStatus = "failed"
)

// RenderJob tracks one asynchronous video generation for the HTTP layer.
// Jobs live in process memory only and disappear on restart.
type RenderJob struct {
	ID        string
	Status    RenderJobStatus
	Prompt    string
	Progress  []string
	Result    *MediaBlob
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewRenderJob(id, prompt string) *RenderJob {
	now := time.Now()
	return &RenderJob{
		ID:        id,
		Status:    RenderJobStatusPending,
		Prompt:    prompt,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Terminal reports whether the job has reached its final state.
func (j *RenderJob) Terminal() bool {
	return j.Status == RenderJobStatusCompleted || j.Status == RenderJobStatusFailed
}
