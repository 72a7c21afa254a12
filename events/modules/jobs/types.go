// Package jobs defines the Kafka event contract for packaging job lifecycle events.
package jobs

import (
	"time"

	"github.com/appbridge/migration-backend/model"
)

// Event contract identifiers
const (
	EventTypeJobTerminal = "packaging.job.terminal"
	SchemaVersion        = "v1"
)

// JobTerminalEvent is published when a packaging job reaches a terminal outcome.
type JobTerminalEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	JobID        string           `json:"job_id"`
	Outcome      model.JobOutcome `json:"outcome"`
	ErrorMessage string           `json:"error_message,omitempty"`

	// Informational, the controller reads the job record itself
	WingetID string `json:"winget_id,omitempty"`
	Version  string `json:"version,omitempty"`
}

// Validate checks the fields the consumer depends on
func (e JobTerminalEvent) Validate() error {
	if e.EventType != "" && e.EventType != EventTypeJobTerminal {
		return &InvalidEventError{Reason: "unexpected event type " + e.EventType}
	}
	if e.JobID == "" {
		return &InvalidEventError{Reason: "missing job_id"}
	}
	if !e.Outcome.IsValid() {
		return &InvalidEventError{Reason: "unknown outcome " + string(e.Outcome)}
	}
	return nil
}

// InvalidEventError marks an event that can never be processed.
// Consumers should not retry it.
type InvalidEventError struct {
	Reason string
}

func (e *InvalidEventError) Error() string {
	return "invalid event: " + e.Reason
}
