package employee

import "time"

// Employee is a staff directory entry.
type Employee struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	HiredAt   time.Time `json:"hired_at,omitempty"`
}

// ScheduleEntry is one shift on an employee's calendar.
type ScheduleEntry struct {
	ID       string    `json:"id"`
	JobID    string    `json:"job_id"`
	JobTitle string    `json:"job_title"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Location string    `json:"location,omitempty"`
}

// Performance summarizes review scores for one period.
type Performance struct {
	Period        string  `json:"period"`
	JobsCompleted int     `json:"jobs_completed"`
	Rating        float64 `json:"rating"`
	OnTimeRate    float64 `json:"on_time_rate"`
}

// Availability is a weekly availability window.
type Availability struct {
	Weekday   string `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// Document is an uploaded HR document (contract, certificate).
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MimeType   string    `json:"mime_type"`
	FileSize   int64     `json:"file_size"`
	UploadedAt time.Time `json:"uploaded_at"`
	URL        string    `json:"url"`
}

// Stats aggregates counters shown on the employee detail page.
type Stats struct {
	TotalJobs     int     `json:"total_jobs"`
	PendingMedia  int     `json:"pending_media"`
	ApprovedMedia int     `json:"approved_media"`
	AverageRating float64 `json:"average_rating"`
}
