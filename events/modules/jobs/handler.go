package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appbridge/migration-backend/model"
	"go.uber.org/zap"
)

// LifecycleService applies terminal job outcomes to auto-update state.
type LifecycleService interface {
	OnJobTerminal(ctx context.Context, jobID string, outcome model.JobOutcome, errorMessage string) (*model.PolicyMutation, error)
}

// HandleJobTerminalWithService processes a job terminal event from Kafka.
// Malformed or invalid payloads are returned as *InvalidEventError.
func HandleJobTerminalWithService(
	ctx context.Context,
	msg []byte,
	service LifecycleService,
	logger *zap.Logger,
) error {
	var event JobTerminalEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return &InvalidEventError{Reason: fmt.Sprintf("failed to unmarshal JobTerminalEvent: %v", err)}
	}

	if err := event.Validate(); err != nil {
		return err
	}

	logger.Debug("Processing job terminal event",
		zap.String("event_id", event.EventID),
		zap.String("job_id", event.JobID),
		zap.String("outcome", string(event.Outcome)))

	mutation, err := service.OnJobTerminal(ctx, event.JobID, event.Outcome, event.ErrorMessage)
	if err != nil {
		return fmt.Errorf("internal service error: %w", err)
	}

	if mutation != nil {
		logger.Info("Applied auto-update policy mutation",
			zap.String("job_id", event.JobID),
			zap.String("policy_id", mutation.PolicyID))
	}
	return nil
}
