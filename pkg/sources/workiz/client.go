// Package workiz reads jobs from the Workiz REST API
package workiz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/httpclient"
	"github.com/Ramsey-B/fern/pkg/matching"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// DefaultBaseURL is the Workiz API root
const DefaultBaseURL = "https://api.workiz.com/api/v1"

// SerialID is a Workiz job number. The API sends it as a number or a string.
type SerialID string

func (s *SerialID) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*s = SerialID(n.String())
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return fmt.Errorf("invalid SerialId %s", string(b))
	}
	*s = SerialID(str)
	return nil
}

// Job is a job as returned by job/all/
type Job struct {
	SerialID    SerialID `json:"SerialId"`
	JobDateTime string   `json:"JobDateTime"`
	Status      string   `json:"Status"`
	JobType     string   `json:"JobType"`
	FirstName   string   `json:"FirstName"`
	LastName    string   `json:"LastName"`
	Phone       string   `json:"Phone"`
	SecondPhone string   `json:"SecondPhone"`
	Address     string   `json:"Address"`
	City        string   `json:"City"`
	State       string   `json:"State"`
	PostalCode  string   `json:"PostalCode"`
	FullAddress string   `json:"FullAddress"`
}

// ScheduledDate is the YYYY-MM-DD prefix of JobDateTime, or nil when absent
func (j Job) ScheduledDate() *models.Date {
	if len(j.JobDateTime) < 10 {
		return nil
	}
	d, err := models.ParseDate(j.JobDateTime[:10])
	if err != nil {
		return nil
	}
	return &d
}

// DisplayAddress joins the address parts, falling back to FullAddress
func (j Job) DisplayAddress() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{j.Address, j.City, j.State, j.PostalCode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	if j.FullAddress != "" {
		return j.FullAddress
	}
	return "No address"
}

// ExternalRecord converts the job into a reconciliation record
func (j Job) ExternalRecord() models.ExternalRecord {
	payload := map[string]any{
		"serial_id": string(j.SerialID),
	}
	if j.SecondPhone != "" {
		payload["second_phone"] = j.SecondPhone
	}
	if j.JobDateTime != "" {
		payload["job_date_time"] = j.JobDateTime
	}

	return models.ExternalRecord{
		NaturalKey:    string(j.SerialID),
		SourceSystem:  models.SourceSystemWorkiz,
		RawPhone:      j.Phone,
		RawAddress:    j.Address,
		ScheduledDate: j.ScheduledDate(),
		FirstName:     j.FirstName,
		LastName:      j.LastName,
		Status:        j.Status,
		JobType:       j.JobType,
		Payload:       payload,
	}
}

type listResponse struct {
	Data []Job `json:"data"`
}

// Client calls the Workiz API
type Client struct {
	http    *httpclient.Client
	logger  ectologger.Logger
	baseURL string
	apiKey  string
}

// NewClient creates a new Workiz client
func NewClient(httpClient *httpclient.Client, logger ectologger.Logger, baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    httpClient,
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// AllJobs fetches every job visible to the API key
func (c *Client) AllJobs(ctx context.Context) ([]Job, error) {
	ctx, span := tracing.StartSpan(ctx, "workiz.Client.AllJobs")
	defer span.End()

	if c.apiKey == "" {
		return nil, httperror.NewHTTPError(http.StatusServiceUnavailable, "Workiz API key is not configured").
			AddMetaValue("source", string(models.SourceSystemWorkiz))
	}

	url := fmt.Sprintf("%s/%s/job/all/", c.baseURL, c.apiKey)

	var resp listResponse
	if err := c.http.GetJSON(ctx, url, &resp); err != nil {
		c.logger.WithContext(ctx).WithError(err).Error("Failed to fetch jobs from Workiz")
		return nil, httperror.NewHTTPError(http.StatusBadGateway, "failed to fetch jobs from Workiz").
			AddMetaValue("source", string(models.SourceSystemWorkiz))
	}

	c.logger.WithContext(ctx).WithField("count", len(resp.Data)).Debug("Fetched Workiz jobs")
	return resp.Data, nil
}

// ListJobs returns the jobs matching filter as reconciliation records
func (c *Client) ListJobs(ctx context.Context, filter models.JobFilter) ([]models.ExternalRecord, error) {
	jobs, err := c.AllJobs(ctx)
	if err != nil {
		return nil, err
	}

	types := make(map[string]struct{}, len(filter.JobTypes))
	for _, t := range filter.JobTypes {
		types[t] = struct{}{}
	}

	records := []models.ExternalRecord{}
	for _, job := range jobs {
		if filter.Date != nil {
			date := job.ScheduledDate()
			if date == nil || date.String() != filter.Date.String() {
				continue
			}
		}
		if len(types) > 0 {
			if _, ok := types[job.JobType]; !ok {
				continue
			}
		}
		records = append(records, job.ExternalRecord())
	}
	return records, nil
}

// FindCustomer returns the jobs whose customer name matches req. The last
// name must match exactly; the first name may be a prefix of the stored one
// or the other way round.
func (c *Client) FindCustomer(ctx context.Context, req models.FindCustomerRequest) (*models.FindCustomerResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "workiz.Client.FindCustomer")
	defer span.End()

	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, httperror.NewHTTPError(http.StatusBadRequest, "first name and last name are required")
	}

	jobs, err := c.AllJobs(ctx)
	if err != nil {
		return nil, err
	}

	matches := []models.CustomerMatch{}
	for _, job := range jobs {
		if !matching.LastNamesMatch(job.LastName, req.LastName) || !matching.FirstNamesMatch(job.FirstName, req.FirstName) {
			continue
		}
		matches = append(matches, models.CustomerMatch{
			JobNumber:   string(job.SerialID),
			FirstName:   job.FirstName,
			LastName:    job.LastName,
			Address:     job.DisplayAddress(),
			JobDateTime: job.JobDateTime,
		})
	}

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"searched": len(jobs),
		"matched":  len(matches),
	}).Info("Searched Workiz for customer")

	if len(matches) == 0 {
		return nil, httperror.NewHTTPError(http.StatusNotFound, "no jobs found for this customer name")
	}

	return &models.FindCustomerResponse{
		Multiple: len(matches) > 1,
		Jobs:     matches,
	}, nil
}
