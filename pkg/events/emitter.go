// Package events handles event emission for canonical job changes
package events

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// EventJobUpserted is emitted after every successful canonical upsert
const EventJobUpserted = "canonical_job.upserted"

// Publisher publishes job events
type Publisher interface {
	PublishJobEvent(ctx context.Context, event *kafka.JobEvent) error
}

// Emitter handles event emission for fern. A nil Emitter or one without a
// publisher does nothing.
type Emitter struct {
	publisher Publisher
	logger    ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(publisher Publisher, logger ectologger.Logger) *Emitter {
	return &Emitter{
		publisher: publisher,
		logger:    logger,
	}
}

// EmitJobUpserted emits a canonical_job.upserted event
func (e *Emitter) EmitJobUpserted(ctx context.Context, result *models.UpsertResult) error {
	if e == nil || e.publisher == nil {
		return nil
	}

	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitJobUpserted")
	defer span.End()

	event := &kafka.JobEvent{
		EventType: EventJobUpserted,
		JobNumber: result.Job.JobNumber,
		Inserted:  result.Inserted,
		Changed:   result.Changed,
		Data:      result.Job.Data,
		Timestamp: result.Job.UpdatedAt.UTC(),
	}

	if err := e.publisher.PublishJobEvent(ctx, event); err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(EventJobUpserted, "error").Inc()
		e.logger.WithContext(ctx).WithError(err).Errorf("Failed to emit %s event", EventJobUpserted)
		return err
	}

	metrics.EventsPublishedTotal.WithLabelValues(EventJobUpserted, "success").Inc()
	return nil
}
