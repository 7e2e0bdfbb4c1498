package models

import (
	"encoding/json"
	"time"
)

// CanonicalJob is the system of record for a job number.
// At most one row exists per job number.
type CanonicalJob struct {
	ID        string          `json:"id" db:"id"`
	JobNumber string          `json:"job_number" db:"job_number"`
	Data      json.RawMessage `json:"data" db:"data"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// Fields decodes Data into a field map
func (j *CanonicalJob) Fields() (map[string]any, error) {
	fields := map[string]any{}
	if len(j.Data) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(j.Data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// UpsertResult is the outcome of a canonical upsert
type UpsertResult struct {
	Job      CanonicalJob `json:"job"`
	Inserted bool         `json:"inserted"` // true if the row was created
	Changed  bool         `json:"changed"`  // true if stored data differs from before the write
}

// UpsertJobRequest is the request for upserting canonical job fields
type UpsertJobRequest struct {
	Fields map[string]any `json:"fields" validate:"required"`
}

// CompleteJobRequest is the request for marking a job complete or not complete
type CompleteJobRequest struct {
	Completed   *bool  `json:"completed" validate:"required"`
	CompletedBy string `json:"completed_by,omitempty"`
}

// PruneJobsRequest is the request for removing canonical jobs that are no
// longer scheduled on a date
type PruneJobsRequest struct {
	Date       string   `json:"date" validate:"required,datetime=2006-01-02"`
	JobNumbers []string `json:"job_numbers" validate:"required"`
}

// PruneJobsResponse is the response for a prune request
type PruneJobsResponse struct {
	Date    string   `json:"date"`
	Deleted []string `json:"deleted"`
}
