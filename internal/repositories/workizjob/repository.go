package workizjob

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

const table = "all_workiz_jobs"

var columns = []string{
	"serial_id", "scheduled_date", "job_date_time", "status", "job_type",
	"first_name", "last_name", "phone", "second_phone", "address",
}

// Repository reads the Workiz job mirror table
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new Workiz job repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// ListJobs returns the mirrored jobs matching filter as reconciliation records
func (r *Repository) ListJobs(ctx context.Context, filter models.JobFilter) ([]models.ExternalRecord, error) {
	ctx, span := tracing.StartSpan(ctx, "workizjob.Repository.ListJobs")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(table)
	if filter.Date != nil {
		sb.Where(sb.Equal("scheduled_date", filter.Date.String()))
	}
	if len(filter.JobTypes) > 0 {
		types := make([]any, len(filter.JobTypes))
		for i, t := range filter.JobTypes {
			types[i] = t
		}
		sb.Where(sb.In("job_type", types...))
	}
	sb.OrderBy("serial_id")

	query, args := sb.Build()

	var jobs []models.WorkizJob
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list Workiz jobs")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to fetch Workiz jobs")
	}

	records := make([]models.ExternalRecord, 0, len(jobs))
	for _, job := range jobs {
		records = append(records, job.ExternalRecord())
	}

	r.logger.WithContext(ctx).WithField("count", len(records)).Debug("Listed Workiz jobs")
	return records, nil
}
