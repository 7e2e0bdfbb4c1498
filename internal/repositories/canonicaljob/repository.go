package canonicaljob

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

const table = "canonical_jobs"

var columns = []string{"id", "job_number", "data", "created_at", "updated_at"}

// Repository stores canonical jobs, one row per job number
type Repository struct {
	db     database.DB
	logger ectologger.Logger
	clock  func() time.Time
}

// NewRepository creates a new canonical job repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
		clock:  time.Now,
	}
}

// Upsert merges fields into the row for jobNumber in a single statement.
// Present keys overwrite, absent keys are kept and JSON null stores null.
// updated_at only moves when the merged data differs from what was stored.
func (r *Repository) Upsert(ctx context.Context, jobNumber string, fields map[string]any) (*models.UpsertResult, error) {
	ctx, span := tracing.StartSpan(ctx, "canonicaljob.Repository.Upsert")
	defer span.End()

	log := r.logger.WithContext(ctx).WithFields(map[string]any{
		"method":     "Upsert",
		"job_number": jobNumber,
	})

	// postgres keeps microseconds; truncating lets the change check compare exactly
	now := r.clock().UTC().Truncate(time.Microsecond)

	ib := database.NewInsertBuilder()
	ib.InsertInto(table)
	ib.Cols(columns...)
	ib.Values(uuid.New().String(), jobNumber, database.JSONB[map[string]any]{Data: fields}, now, now)
	ub := ib.OnConflict("job_number")
	ub.Set(
		"data = canonical_jobs.data || EXCLUDED.data",
		"updated_at = CASE WHEN (canonical_jobs.data || EXCLUDED.data) = canonical_jobs.data THEN canonical_jobs.updated_at ELSE EXCLUDED.updated_at END",
	)
	ib.Returning(append(columns, "(xmax = 0) AS inserted")...)

	query, args := ib.Build()

	var row struct {
		models.CanonicalJob
		Inserted bool `db:"inserted"`
	}
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		log.WithError(err).Error("Failed to upsert canonical job")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to upsert canonical job")
	}

	result := &models.UpsertResult{
		Job:      row.CanonicalJob,
		Inserted: row.Inserted,
		Changed:  row.Inserted || row.UpdatedAt.Equal(now),
	}

	switch {
	case result.Inserted:
		log.WithField("id", row.ID).Info("Created canonical job")
	case result.Changed:
		log.WithField("id", row.ID).Info("Updated canonical job")
	default:
		log.WithField("id", row.ID).Debug("Canonical job unchanged")
	}

	return result, nil
}

// Get retrieves the canonical job for a job number
func (r *Repository) Get(ctx context.Context, jobNumber string) (*models.CanonicalJob, error) {
	ctx, span := tracing.StartSpan(ctx, "canonicaljob.Repository.Get")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(table)
	sb.Where(sb.Equal("job_number", jobNumber))

	query, args := sb.Build()

	var job models.CanonicalJob
	if err := r.db.GetContext(ctx, &job, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, "canonical job not found")
		}
		r.logger.WithContext(ctx).WithError(err).WithField("job_number", jobNumber).Error("Failed to get canonical job")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get canonical job")
	}

	return &job, nil
}

// Prune deletes the canonical jobs scheduled on date whose job number is not in
// keep, and returns the deleted job numbers. An empty keep list deletes every
// job scheduled on the date.
func (r *Repository) Prune(ctx context.Context, date models.Date, keep []string) ([]string, error) {
	ctx, span := tracing.StartSpan(ctx, "canonicaljob.Repository.Prune")
	defer span.End()

	log := r.logger.WithContext(ctx).WithFields(map[string]any{
		"method": "Prune",
		"date":   date.String(),
		"keep":   len(keep),
	})

	if keep == nil {
		keep = []string{}
	}

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	sb := database.NewSelectBuilder()
	sb.Select("job_number")
	sb.From(table)
	sb.Where(
		sb.Equal("data->>'scheduled_date'", date.String()),
		fmt.Sprintf("NOT (job_number = ANY(%s))", sb.Var(pq.Array(keep))),
	)
	sb.ForUpdate()

	query, args := sb.Build()

	var orphaned []string
	if err := tx.SelectContext(ctx, &orphaned, query, args...); err != nil {
		log.WithError(err).Error("Failed to find canonical jobs to prune")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to prune canonical jobs")
	}

	if len(orphaned) == 0 {
		return []string{}, tx.Commit(ctx)
	}

	del := database.NewDeleteBuilder()
	del.DeleteFrom(table)
	del.Where(fmt.Sprintf("job_number = ANY(%s)", del.Var(pq.Array(orphaned))))

	query, args = del.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		log.WithError(err).Error("Failed to delete canonical jobs")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to prune canonical jobs")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to prune canonical jobs")
	}

	log.WithField("deleted", len(orphaned)).Info("Pruned canonical jobs")
	return orphaned, nil
}
