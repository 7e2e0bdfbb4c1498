package movequote

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

const table = "move_quote"

var columns = []string{
	"id", "job_number", "quote_number", "phone_number", "address",
	"customer_home_address", "form_data", "move_date", "created_at", "updated_at",
}

// Repository reads submitted move quote forms
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new move quote repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// ListQuotes returns every quote form, most recently updated first
func (r *Repository) ListQuotes(ctx context.Context) ([]models.ExternalRecord, error) {
	ctx, span := tracing.StartSpan(ctx, "movequote.Repository.ListQuotes")
	defer span.End()

	log := r.logger.WithContext(ctx).WithField("method", "ListQuotes")

	sb := database.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(table)
	sb.OrderBy("updated_at").Desc()

	query, args := sb.Build()

	var quotes []models.MoveQuote
	if err := r.db.SelectContext(ctx, &quotes, query, args...); err != nil {
		log.WithError(err).Error("Failed to list move quotes")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to fetch estimate forms")
	}

	records := make([]models.ExternalRecord, 0, len(quotes))
	for _, q := range quotes {
		record, err := q.ExternalRecord()
		if err != nil {
			// one bad form should not hide the rest
			log.WithError(err).WithField("id", q.ID).Warn("Skipping move quote with unreadable form data")
			continue
		}
		records = append(records, record)
	}

	log.WithField("count", len(records)).Debug("Listed move quotes")
	return records, nil
}
