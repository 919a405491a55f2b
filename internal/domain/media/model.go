package media

import "time"

// Status is the review state of an uploaded item.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusFlagged  Status = "flagged"
	StatusRejected Status = "rejected"
)

// IsValid reports whether the status is one of the review states.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusFlagged, StatusRejected:
		return true
	default:
		return false
	}
}

// Type distinguishes photos from video walkthroughs.
type Type string

const (
	TypeImage Type = "image"
	TypeVideo Type = "video"
)

// Category marks whether the shot was taken before or after the job.
type Category string

const (
	CategoryBefore Category = "before"
	CategoryAfter  Category = "after"
)

// Item represents one uploaded photo or video attached to a job.
type Item struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	JobTitle    string    `json:"job_title"`
	MediaType   Type      `json:"media_type"`
	Category    Category  `json:"category"`
	Status      Status    `json:"status"`
	IsImportant bool      `json:"is_important"`
	Customer    string    `json:"customer"`
	Staff       string    `json:"staff"`
	UploadedAt  time.Time `json:"uploaded_at"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type,omitempty"`
	Thumbnail   string    `json:"thumbnail"`
	FullPath    string    `json:"full_path"`
}
