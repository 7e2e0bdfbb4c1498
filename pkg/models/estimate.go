package models

import (
	"encoding/json"
	"time"
)

// EstimateSearchType is the field an estimate search matches on
type EstimateSearchType string

const (
	EstimateSearchPhone     EstimateSearchType = "phone"     // digits compared with suffix matching
	EstimateSearchName      EstimateSearchType = "name"      // substring of full, first or last name
	EstimateSearchQuoteID   EstimateSearchType = "quoteId"   // exact, lowercased
	EstimateSearchWorkizJob EstimateSearchType = "workizJob" // exact job number
)

// MoveEstimate is a saved move estimate
type MoveEstimate struct {
	ID              string          `json:"id" db:"id"`
	QuoteID         *string         `json:"quote_id,omitempty" db:"quote_id"`
	WorkizJobNumber *string         `json:"workiz_job_number,omitempty" db:"workiz_job_number"`
	FullName        *string         `json:"full_name,omitempty" db:"full_name"`
	FirstName       *string         `json:"first_name,omitempty" db:"first_name"`
	LastName        *string         `json:"last_name,omitempty" db:"last_name"`
	Phone           *string         `json:"phone,omitempty" db:"phone"`
	Data            json.RawMessage `json:"data,omitempty" db:"data"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// EstimateSearchRequest is the request for searching estimates
type EstimateSearchRequest struct {
	SearchType  EstimateSearchType `json:"searchType" validate:"required"`
	SearchValue string             `json:"searchValue" validate:"required"`
}

// EstimateSearchResponse is the response for an estimate search
type EstimateSearchResponse struct {
	Estimates []MoveEstimate `json:"estimates"`
	Message   string         `json:"message,omitempty"`
}
