//go:build integration

package movequote_test

import (
	"context"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/internal/repositories/movequote"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/testutil/containers"
)

func TestRepository_ListQuotes(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	repo := movequote.NewRepository(pg.DB, ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {}))
	ctx := context.Background()
	now := time.Now().UTC()

	older := uuid.NewString()
	newer := uuid.NewString()
	_, err := pg.DB.ExecContext(ctx,
		`INSERT INTO move_quote (id, phone_number, address, form_data, move_date, updated_at) VALUES
		 ($1, '(720) 555-1234', '123 Main St', '{"firstName":"Sam","lastName":"Smith","pickupAddress":"123 Main Street"}', '2025-06-02', $3),
		 ($2, NULL, NULL, '{}', NULL, $4)`,
		older, newer, now.Add(-time.Hour), now)
	require.NoError(t, err)

	records, err := repo.ListQuotes(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, newer, records[0].NaturalKey)
	assert.Empty(t, records[0].RawPhone)

	r := records[1]
	assert.Equal(t, older, r.NaturalKey)
	assert.Equal(t, models.SourceSystemMoveQuote, r.SourceSystem)
	assert.Equal(t, "(720) 555-1234", r.RawPhone)
	assert.Equal(t, "Sam", r.FirstName)
	assert.Equal(t, "123 Main Street", r.Payload["pickupAddress"])
	require.NotNil(t, r.ScheduledDate)
	assert.Equal(t, "2025-06-02", r.ScheduledDate.String())
}
