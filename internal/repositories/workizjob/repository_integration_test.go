//go:build integration

package workizjob_test

import (
	"context"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/internal/repositories/workizjob"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/testutil/containers"
)

func TestRepository_ListJobs(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	repo := workizjob.NewRepository(pg.DB, ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {}))
	ctx := context.Background()

	_, err := pg.DB.ExecContext(ctx,
		`INSERT INTO all_workiz_jobs (serial_id, scheduled_date, job_type, first_name, last_name, phone, second_phone, address) VALUES
		 ('1001', '2025-06-02', 'Moving', 'Sam', 'Smith', '720-555-1234', '303-555-0000', '123 Main St'),
		 ('1002', '2025-06-02', 'Junk Removal', 'Ann', 'Lee', '720-555-0000', NULL, '9 Oak Ave'),
		 ('1003', '2025-06-03', 'Moving WT', 'Pat', 'Kim', NULL, NULL, NULL)`)
	require.NoError(t, err)

	date, err := models.ParseDate("2025-06-02")
	require.NoError(t, err)

	t.Run("should filter by date and job type", func(t *testing.T) {
		records, err := repo.ListJobs(ctx, models.JobFilter{Date: &date, JobTypes: []string{"Moving", "Moving WT"}})
		require.NoError(t, err)
		require.Len(t, records, 1)

		r := records[0]
		assert.Equal(t, "1001", r.NaturalKey)
		assert.Equal(t, models.SourceSystemWorkiz, r.SourceSystem)
		assert.Equal(t, "303-555-0000", r.Payload["second_phone"])
		assert.Equal(t, "2025-06-02", r.ScheduledDate.String())
	})

	t.Run("should return every job without a filter", func(t *testing.T) {
		records, err := repo.ListJobs(ctx, models.JobFilter{})
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})
}
