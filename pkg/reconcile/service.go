// Package reconcile correlates Workiz jobs with move quotes and maintains the
// canonical job records
package reconcile

import (
	"context"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Ramsey-B/fern/pkg/matching"
	"github.com/Ramsey-B/fern/pkg/merging"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// JobSource lists jobs from the job tracking system
type JobSource interface {
	ListJobs(ctx context.Context, filter models.JobFilter) ([]models.ExternalRecord, error)
}

// QuoteSource lists submitted quote forms
type QuoteSource interface {
	ListQuotes(ctx context.Context) ([]models.ExternalRecord, error)
}

// CanonicalStore persists canonical jobs keyed by job number
type CanonicalStore interface {
	Upsert(ctx context.Context, jobNumber string, fields map[string]any) (*models.UpsertResult, error)
	Get(ctx context.Context, jobNumber string) (*models.CanonicalJob, error)
}

// Service runs reconciliations and canonical upserts. It holds no state
// between calls.
type Service struct {
	logger    ectologger.Logger
	jobs      JobSource
	quotes    QuoteSource
	store     CanonicalStore
	clock     func() time.Time
	jobKeys   matching.KeySpec
	quoteKeys matching.KeySpec
}

// Option configures a Service
type Option func(*Service)

// WithClock sets the clock used for event timestamps
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithKeySpecs overrides where candidate keys are read from
func WithKeySpecs(jobs, quotes matching.KeySpec) Option {
	return func(s *Service) {
		s.jobKeys = jobs
		s.quoteKeys = quotes
	}
}

// NewService creates a new reconciliation service
func NewService(logger ectologger.Logger, jobs JobSource, quotes QuoteSource, store CanonicalStore, opts ...Option) *Service {
	s := &Service{
		logger:    logger,
		jobs:      jobs,
		quotes:    quotes,
		store:     store,
		clock:     time.Now,
		jobKeys:   matching.JobKeys,
		quoteKeys: matching.QuoteKeys,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reconcile fetches jobs and quotes and groups every quote with the jobs it
// matches. Both sources are read concurrently; if either fails nothing is matched.
func (s *Service) Reconcile(ctx context.Context, filter models.JobFilter) (*models.ReconcileResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "reconcile.Service.Reconcile")
	defer span.End()

	start := time.Now()
	log := s.logger.WithContext(ctx)
	if filter.Date != nil {
		log = log.WithField("date", filter.Date.String())
	}

	var jobs, quotes []models.ExternalRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = s.jobs.ListJobs(gctx, filter)
		if err != nil {
			log.WithError(err).WithField("source", "job source").Error("Failed to read source")
			return upstreamError("job source", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		quotes, err = s.quotes.ListQuotes(gctx)
		if err != nil {
			log.WithError(err).WithField("source", "quote source").Error("Failed to read source")
			return upstreamError("quote source", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Warn("Reconciliation aborted")
		metrics.ReconciliationsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	groups := s.Match(jobs, quotes)

	metrics.ReconciliationsTotal.WithLabelValues("success").Inc()
	metrics.ReconciliationDuration.Observe(time.Since(start).Seconds())
	log.WithFields(map[string]any{
		"jobs":   len(jobs),
		"quotes": len(quotes),
		"groups": len(groups),
	}).Info("Reconciliation complete")

	return &models.ReconcileResponse{
		Date:       filter.Date,
		JobCount:   len(jobs),
		QuoteCount: len(quotes),
		Groups:     groups,
	}, nil
}

// Match indexes jobs and returns one group per quote that directly matches
// at least one job. Quotes keep their input order.
func (s *Service) Match(jobs, quotes []models.ExternalRecord) []models.MatchGroup {
	groups := []models.MatchGroup{}
	if len(jobs) == 0 {
		return groups
	}

	index := matching.BuildIndex(jobs, s.jobKeys)
	caser := cases.Title(language.English)

	for _, q := range quotes {
		matches := index.FindMatches(q, s.quoteKeys)
		if len(matches) == 0 {
			continue
		}
		groups = append(groups, buildGroup(q, matches, caser))
	}
	return groups
}

func buildGroup(quote models.ExternalRecord, matches []matching.Match, caser cases.Caser) models.MatchGroup {
	group := models.MatchGroup{
		QuoteID:    quote.NaturalKey,
		JobNumbers: make([]string, 0, len(matches)),
		Jobs:       make([]models.JobSummary, 0, len(matches)),
	}

	seen := map[models.CandidateKey]bool{}
	for _, m := range matches {
		group.JobNumbers = append(group.JobNumbers, m.Record.NaturalKey)
		group.Jobs = append(group.Jobs, models.JobSummary{
			JobNumber:     m.Record.NaturalKey,
			ScheduledDate: m.Record.ScheduledDate,
			Status:        m.Record.Status,
			JobType:       m.Record.JobType,
			MatchedBy:     m.MatchedBy,
		})

		for _, key := range m.MatchedBy {
			metrics.MatchesTotal.WithLabelValues(string(key.Kind)).Inc()
			if seen[key] {
				continue
			}
			seen[key] = true
			group.MatchedBy = append(group.MatchedBy, key)
			if key.Kind == models.KeyKindPhone && group.MatchedKeys.NormalizedPhone == "" {
				group.MatchedKeys.NormalizedPhone = key.Value
			}
		}
	}
	group.MatchedKeys.NormalizedAddress = matches[0].AddressKey

	name := fullName(quote.FirstName, quote.LastName)
	if name == "" {
		name = fullName(matches[0].Record.FirstName, matches[0].Record.LastName)
	}
	if name == "" {
		name = "Unknown"
	}
	group.CustomerName = caser.String(name)

	return group
}

func fullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// Upsert writes fields onto the canonical job for jobNumber, creating it if
// needed. Present fields overwrite, absent fields are kept. A payload carrying
// "completed" also sets "completed_at" from the service clock.
func (s *Service) Upsert(ctx context.Context, jobNumber string, fields map[string]any) (*models.UpsertResult, error) {
	ctx, span := tracing.StartSpan(ctx, "reconcile.Service.Upsert")
	defer span.End()

	if strings.TrimSpace(jobNumber) == "" {
		return nil, validationError("job number is required")
	}
	if len(fields) == 0 {
		return nil, validationError("at least one field is required")
	}

	log := s.logger.WithContext(ctx).WithField("job_number", jobNumber)

	fields = merging.ApplyEventTimestamps(fields, s.clock())
	result, err := s.store.Upsert(ctx, jobNumber, fields)
	if err != nil {
		log.WithError(err).Error("Failed to upsert canonical job")
		metrics.CanonicalUpsertsTotal.WithLabelValues("error").Inc()
		return nil, storeError("upsert canonical job", err)
	}

	outcome := "unchanged"
	switch {
	case result.Inserted:
		outcome = "inserted"
	case result.Changed:
		outcome = "updated"
	}
	metrics.CanonicalUpsertsTotal.WithLabelValues(outcome).Inc()
	log.WithField("result", outcome).Debug("Upserted canonical job")

	return result, nil
}

// Get returns the canonical job for jobNumber
func (s *Service) Get(ctx context.Context, jobNumber string) (*models.CanonicalJob, error) {
	ctx, span := tracing.StartSpan(ctx, "reconcile.Service.Get")
	defer span.End()

	if strings.TrimSpace(jobNumber) == "" {
		return nil, validationError("job number is required")
	}

	job, err := s.store.Get(ctx, jobNumber)
	if err != nil {
		return nil, storeError("get canonical job", err)
	}
	return job, nil
}
