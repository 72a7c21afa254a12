package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/appbridge/migration-backend/model"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// JobProducer publishes packaging job lifecycle events to Kafka
type JobProducer struct {
	Writer *kafka.Writer
}

// NewJobProducer initializes a new Kafka writer for job events
func NewJobProducer(brokers []string, topic string, transport *kafka.Transport) *JobProducer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
	if transport != nil {
		w.Transport = transport
	}
	return &JobProducer{Writer: w}
}

// NewJobTerminalEvent builds the event for a job that reached outcome
func NewJobTerminalEvent(job model.PackagingJob, outcome model.JobOutcome, errorMessage string) JobTerminalEvent {
	event := JobTerminalEvent{
		EventType:     EventTypeJobTerminal,
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: SchemaVersion,
		JobID:         job.Key,
		Outcome:       outcome,
		ErrorMessage:  errorMessage,
	}
	if job.PackageConfig != nil {
		event.WingetID = job.PackageConfig.WingetID
		event.Version = job.PackageConfig.Version
	}
	return event
}

// PublishJobTerminal sends the event keyed by job id, so that all events of
// one job land on the same partition
func (p *JobProducer) PublishJobTerminal(ctx context.Context, event JobTerminalEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.JobID),
		Value: payload,
	})
}

// Close cleans up the Kafka writer
func (p *JobProducer) Close() error {
	return p.Writer.Close()
}
