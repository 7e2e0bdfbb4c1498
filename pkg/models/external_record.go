package models

// SourceSystem identifies the system an ExternalRecord was fetched from
type SourceSystem string

const (
	SourceSystemWorkiz    SourceSystem = "workiz"     // Job tracking system
	SourceSystemMoveQuote SourceSystem = "move_quote" // Quote/estimate forms
)

// ExternalRecord is a record fetched from a source system for reconciliation.
// Records are never persisted; they are fetched fresh for every request.
type ExternalRecord struct {
	NaturalKey    string         `json:"natural_key"` // serial id for jobs, quote id for quotes
	SourceSystem  SourceSystem   `json:"source_system"`
	RawPhone      string         `json:"raw_phone,omitempty"`
	RawAddress    string         `json:"raw_address,omitempty"`
	ScheduledDate *Date          `json:"scheduled_date,omitempty"`
	FirstName     string         `json:"first_name,omitempty"`
	LastName      string         `json:"last_name,omitempty"`
	Status        string         `json:"status,omitempty"`
	JobType       string         `json:"job_type,omitempty"`
	Payload       map[string]any `json:"payload,omitempty"` // carried through unmodified
}

// JobFilter narrows the jobs fetched from a job source
type JobFilter struct {
	Date     *Date    `json:"date,omitempty"`
	JobTypes []string `json:"job_types,omitempty"`
}
