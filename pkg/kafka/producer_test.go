package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestProducer_PublishJobEvent(t *testing.T) {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})

	t.Run("should key messages by job number", func(t *testing.T) {
		writer := &recordingWriter{}
		producer := NewProducerWithWriter(writer, "fern.jobs", logger)

		err := producer.PublishJobEvent(context.Background(), &JobEvent{
			EventType: "canonical_job.upserted",
			JobNumber: "1001",
			Inserted:  true,
			Data:      json.RawMessage(`{"completed":true}`),
		})
		require.NoError(t, err)
		require.Len(t, writer.messages, 1)

		msg := writer.messages[0]
		assert.Equal(t, "fern.jobs", msg.Topic)
		assert.Equal(t, "1001", string(msg.Key))
		assert.Equal(t, "canonical_job.upserted", header(msg, "event_type"))
		assert.Equal(t, SchemaVersion, header(msg, "schema_version"))

		var decoded JobEvent
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, "1001", decoded.JobNumber)
		assert.True(t, decoded.Inserted)
		assert.False(t, decoded.Timestamp.IsZero())
	})

	t.Run("should keep a provided timestamp", func(t *testing.T) {
		writer := &recordingWriter{}
		producer := NewProducerWithWriter(writer, "fern.jobs", logger)
		ts := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

		require.NoError(t, producer.PublishJobEvent(context.Background(), &JobEvent{JobNumber: "1", Timestamp: ts}))

		var decoded JobEvent
		require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
		assert.True(t, ts.Equal(decoded.Timestamp))
	})

	t.Run("should return write errors", func(t *testing.T) {
		writer := &recordingWriter{err: errors.New("broker down")}
		producer := NewProducerWithWriter(writer, "fern.jobs", logger)

		err := producer.PublishJobEvent(context.Background(), &JobEvent{JobNumber: "1"})
		assert.EqualError(t, err, "broker down")
	})
}
