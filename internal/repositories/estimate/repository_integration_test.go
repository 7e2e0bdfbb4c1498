//go:build integration

package estimate_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/internal/repositories/estimate"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/testutil/containers"
)

func seed(t *testing.T, pg *containers.PostgresContainer, quoteID, jobNumber, fullName, phone string, updatedAt time.Time) string {
	t.Helper()
	id := uuid.NewString()
	_, err := pg.DB.ExecContext(context.Background(),
		`INSERT INTO move_estimates (id, quote_id, workiz_job_number, full_name, first_name, last_name, phone, updated_at)
		 VALUES ($1, $2, $3, $4, split_part($4, ' ', 1), split_part($4, ' ', 2), $5, $6)`,
		id, quoteID, jobNumber, fullName, phone, updatedAt)
	require.NoError(t, err)
	return id
}

func ids(estimates []models.MoveEstimate) []string {
	out := make([]string, 0, len(estimates))
	for _, e := range estimates {
		out = append(out, e.ID)
	}
	return out
}

func TestRepository_Search(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	repo := estimate.NewRepository(pg.DB, ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {}))
	ctx := context.Background()

	now := time.Now().UTC()
	older := seed(t, pg, "q-100", "1001", "Sam Smith", "(720) 555-1234", now.Add(-time.Hour))
	newer := seed(t, pg, "q-200", "1002", "Samantha Jones", "1-720-555-1234", now)
	other := seed(t, pg, "q-300", "1003", "Pat 50%_Off", "303-555-0000", now.Add(-2*time.Hour))

	t.Run("should match phones by suffix newest first", func(t *testing.T) {
		found, err := repo.Search(ctx, models.EstimateSearchRequest{SearchType: models.EstimateSearchPhone, SearchValue: "720.555.1234"})
		require.NoError(t, err)
		assert.Equal(t, []string{newer, older}, ids(found))
	})

	t.Run("should reject phone searches without digits", func(t *testing.T) {
		_, err := repo.Search(ctx, models.EstimateSearchRequest{SearchType: models.EstimateSearchPhone, SearchValue: "n/a"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	})

	t.Run("should match name substrings case-insensitively", func(t *testing.T) {
		found, err := repo.Search(ctx, models.EstimateSearchRequest{SearchType: models.EstimateSearchName, SearchValue: "SAM"})
		require.NoError(t, err)
		assert.Equal(t, []string{newer, older}, ids(found))
	})

	t.Run("should treat like wildcards literally", func(t *testing.T) {
		found, err := repo.Search(ctx, models.EstimateSearchRequest{SearchType: models.EstimateSearchName, SearchValue: "50%_"})
		require.NoError(t, err)
		assert.Equal(t, []string{other}, ids(found))

		found, err = repo.Search(ctx, models.EstimateSearchRequest{SearchType: models.EstimateSearchName, SearchValue: "%"})
		require.NoError(t, err)
		assert.Equal(t, []string{other}, ids(found))
	})

	t.Run("should find by quote id ignoring case and whitespace", func(t *testing.T) {
		found, err := repo.Search(ctx, models.EstimateSearchRequest{SearchType: models.EstimateSearchQuoteID, SearchValue: "  Q-200 "})
		require.NoError(t, err)
		assert.Equal(t, []string{newer}, ids(found))
	})

	t.Run("should find by workiz job number", func(t *testing.T) {
		found, err := repo.Search(ctx, models.EstimateSearchRequest{SearchType: models.EstimateSearchWorkizJob, SearchValue: "1003"})
		require.NoError(t, err)
		assert.Equal(t, []string{other}, ids(found))
	})

	t.Run("should reject unknown search types", func(t *testing.T) {
		_, err := repo.Search(ctx, models.EstimateSearchRequest{SearchType: "email", SearchValue: "x"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	})
}
