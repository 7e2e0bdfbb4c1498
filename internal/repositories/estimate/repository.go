package estimate

import (
	"context"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/matching"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/normalizers"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

const table = "move_estimates"

var columns = []string{
	"id", "quote_id", "workiz_job_number", "full_name", "first_name",
	"last_name", "phone", "data", "created_at", "updated_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repository searches saved move estimates
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new move estimate repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Search finds estimates by the requested search type
func (r *Repository) Search(ctx context.Context, req models.EstimateSearchRequest) ([]models.MoveEstimate, error) {
	switch req.SearchType {
	case models.EstimateSearchPhone:
		return r.FindByPhone(ctx, req.SearchValue)
	case models.EstimateSearchName:
		return r.FindByName(ctx, req.SearchValue)
	case models.EstimateSearchQuoteID:
		return r.FindByQuoteID(ctx, req.SearchValue)
	case models.EstimateSearchWorkizJob:
		return r.FindByWorkizJob(ctx, req.SearchValue)
	}
	return nil, httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid search type %q", req.SearchType)
}

// FindByPhone matches stored phones on digits, allowing either number to be a
// suffix of the other. Newest first.
func (r *Repository) FindByPhone(ctx context.Context, phone string) ([]models.MoveEstimate, error) {
	ctx, span := tracing.StartSpan(ctx, "estimate.Repository.FindByPhone")
	defer span.End()

	digits := normalizers.NormalizePhone(phone)
	if digits == "" {
		return nil, httperror.NewHTTPError(http.StatusBadRequest, "phone search value must contain digits")
	}

	sb := database.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(table)
	sb.Where(sb.IsNotNull("phone"))
	sb.OrderBy("updated_at").Desc()

	all, err := r.list(ctx, sb)
	if err != nil {
		return nil, err
	}

	matches := []models.MoveEstimate{}
	for _, e := range all {
		if e.Phone != nil && matching.PhonesMatch(digits, normalizers.NormalizePhone(*e.Phone)) {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

// FindByName matches a case-insensitive substring of the full, first or last name. Newest first.
func (r *Repository) FindByName(ctx context.Context, name string) ([]models.MoveEstimate, error) {
	ctx, span := tracing.StartSpan(ctx, "estimate.Repository.FindByName")
	defer span.End()

	pattern := "%" + likeEscaper.Replace(strings.ToLower(name)) + "%"

	sb := database.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(table)
	sb.Where(sb.Or(
		sb.Like("LOWER(full_name)", pattern),
		sb.Like("LOWER(first_name)", pattern),
		sb.Like("LOWER(last_name)", pattern),
	))
	sb.OrderBy("updated_at").Desc()

	return r.list(ctx, sb)
}

// FindByQuoteID returns the estimate with the quote id, compared lowercased and trimmed
func (r *Repository) FindByQuoteID(ctx context.Context, quoteID string) ([]models.MoveEstimate, error) {
	ctx, span := tracing.StartSpan(ctx, "estimate.Repository.FindByQuoteID")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(table)
	sb.Where(sb.Equal("quote_id", strings.ToLower(strings.TrimSpace(quoteID))))
	sb.Limit(1)

	return r.list(ctx, sb)
}

// FindByWorkizJob returns the estimates linked to a Workiz job number
func (r *Repository) FindByWorkizJob(ctx context.Context, jobNumber string) ([]models.MoveEstimate, error) {
	ctx, span := tracing.StartSpan(ctx, "estimate.Repository.FindByWorkizJob")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(table)
	sb.Where(sb.Equal("workiz_job_number", strings.TrimSpace(jobNumber)))
	sb.OrderBy("updated_at").Desc()

	return r.list(ctx, sb)
}

func (r *Repository) list(ctx context.Context, sb *database.SelectBuilder) ([]models.MoveEstimate, error) {
	query, args := sb.Build()

	estimates := []models.MoveEstimate{}
	if err := r.db.SelectContext(ctx, &estimates, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to search estimates")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to search estimates")
	}
	return estimates, nil
}
