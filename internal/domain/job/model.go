package job

import "time"

// Job is a scheduled or completed cleaning job.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Customer    string    `json:"customer"`
	Address     string    `json:"address,omitempty"`
	Status      string    `json:"status"`
	ScheduledAt time.Time `json:"scheduled_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
	AssignedTo  []string  `json:"assigned_to,omitempty"`
}
