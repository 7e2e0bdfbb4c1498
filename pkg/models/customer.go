package models

// FindCustomerRequest is the request for finding a Workiz customer by name
type FindCustomerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// CustomerMatch is the job found for a customer lookup
type CustomerMatch struct {
	JobNumber   string `json:"job_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address     string `json:"address"`
	JobDateTime string `json:"job_date_time,omitempty"`
}

// FindCustomerResponse is the response for a customer lookup
type FindCustomerResponse struct {
	Multiple bool            `json:"multiple"`
	Jobs     []CustomerMatch `json:"jobs"`
}
