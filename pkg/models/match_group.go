package models

// MatchGroup is a quote and the jobs it was directly matched to.
// Groups are computed per request and never persisted.
type MatchGroup struct {
	QuoteID      string         `json:"quote_id"`
	JobNumbers   []string       `json:"job_numbers"`
	CustomerName string         `json:"customer_name"`
	MatchedBy    []CandidateKey `json:"matched_by"`
	MatchedKeys  MatchedKeys    `json:"matched_keys"`
	Jobs         []JobSummary   `json:"jobs"`
}

// MatchedKeys are the normalized keys shared by the quote and its first matched job
type MatchedKeys struct {
	NormalizedPhone   string `json:"normalized_phone,omitempty"`
	NormalizedAddress string `json:"normalized_address,omitempty"`
}

// JobSummary is the job metadata carried in a MatchGroup
type JobSummary struct {
	JobNumber     string         `json:"job_number"`
	ScheduledDate *Date          `json:"scheduled_date,omitempty"`
	Status        string         `json:"status,omitempty"`
	JobType       string         `json:"job_type,omitempty"`
	MatchedBy     []CandidateKey `json:"matched_by"`
}

// ReconcileResponse is the response for a reconciliation run
type ReconcileResponse struct {
	Date       *Date        `json:"date,omitempty"`
	JobCount   int          `json:"job_count"`
	QuoteCount int          `json:"quote_count"`
	Groups     []MatchGroup `json:"groups"`
}
