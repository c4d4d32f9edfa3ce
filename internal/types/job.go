// Package types defines the shared domain types for the job application
// pipeline: job records, submission outcomes, and pipeline statistics.
package types

import (
	"time"
)

// JobStatus represents the lifecycle state of a job application.
type JobStatus string

// Job status constants. A job starts pending, is picked up by the
// coordinator as processing, and ends in exactly one terminal state.
const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status is a final state. Terminal statuses
// never transition again.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Platform constants for supported job boards.
const (
	PlatformLinkedIn      = "linkedin"
	PlatformIndeed        = "indeed"
	PlatformCompanyPortal = "company_portal"
)

// KnownPlatforms lists the platforms with dedicated submission flows.
// Anything else falls through to the generic portal strategy.
var KnownPlatforms = []string{PlatformLinkedIn, PlatformIndeed, PlatformCompanyPortal}

// JobCreate holds the caller-supplied fields for a new job submission.
type JobCreate struct {
	Title        string `json:"title" validate:"required"`
	Company      string `json:"company" validate:"required"`
	Platform     string `json:"platform" validate:"required"`
	URL          string `json:"url" validate:"required,url"`
	Description  string `json:"description,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	Location     string `json:"location,omitempty"`
	SalaryRange  string `json:"salary_range,omitempty"`
}

// JobRecord is one tracked application target moving through the pipeline.
// The ID is assigned at enqueue time and never changes; everything else is
// mutated only by the coordinator while it owns the record.
type JobRecord struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Company      string           `json:"company"`
	Platform     string           `json:"platform"`
	URL          string           `json:"url"`
	Description  string           `json:"description,omitempty"`
	Requirements string           `json:"requirements,omitempty"`
	Location     string           `json:"location,omitempty"`
	SalaryRange  string           `json:"salary_range,omitempty"`
	Priority     int              `json:"priority"`
	Status       JobStatus        `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	AppliedAt    *time.Time       `json:"applied_at,omitempty"`
	CoverLetter  string           `json:"cover_letter,omitempty"`
	Result       *ExecutionResult `json:"application_result,omitempty"`
}

// PipelineStats is the process-wide view of the automation loop.
type PipelineStats struct {
	Running    bool  `json:"running"`
	Processed  int64 `json:"processed_count"`
	QueueDepth int   `json:"queue_size"`
}

// ApplicationStats summarizes persisted job counts by status.
type ApplicationStats struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
}
