package models

import (
	"encoding/json"
	"time"
)

// MoveQuote is an estimate form submitted for a move
type MoveQuote struct {
	ID                  string          `json:"id" db:"id"`
	JobNumber           *string         `json:"job_number,omitempty" db:"job_number"`
	QuoteNumber         *string         `json:"quote_number,omitempty" db:"quote_number"`
	PhoneNumber         *string         `json:"phone_number,omitempty" db:"phone_number"`
	Address             *string         `json:"address,omitempty" db:"address"`
	CustomerHomeAddress *string         `json:"customer_home_address,omitempty" db:"customer_home_address"`
	FormData            json.RawMessage `json:"form_data" db:"form_data"`
	MoveDate            *Date           `json:"move_date,omitempty" db:"move_date"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" db:"updated_at"`
}

// ExternalRecord converts the quote into a reconciliation record.
// The form data is the payload; the phone_number and address columns are the primary keys.
func (q MoveQuote) ExternalRecord() (ExternalRecord, error) {
	payload := map[string]any{}
	if len(q.FormData) > 0 && string(q.FormData) != "null" {
		if err := json.Unmarshal(q.FormData, &payload); err != nil {
			return ExternalRecord{}, err
		}
	}

	record := ExternalRecord{
		NaturalKey:    q.ID,
		SourceSystem:  SourceSystemMoveQuote,
		RawPhone:      deref(q.PhoneNumber),
		RawAddress:    deref(q.Address),
		ScheduledDate: q.MoveDate,
		Payload:       payload,
	}
	if s, ok := payload["firstName"].(string); ok {
		record.FirstName = s
	}
	if s, ok := payload["lastName"].(string); ok {
		record.LastName = s
	}
	return record, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
