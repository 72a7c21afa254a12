// Package autoupdate keeps auto-update history and policy tracking consistent
// when packaging jobs reach a terminal state, however the job finished.
package autoupdate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/appbridge/migration-backend/model"
	"go.uber.org/zap"
)

// DefaultMaxConsecutiveFailures is the failure count that disables a policy.
const DefaultMaxConsecutiveFailures = 3

// Store is the record store the controller reads and writes. Get methods
// return model.ErrNotFound for missing records.
type Store interface {
	GetJob(ctx context.Context, jobID string) (*model.PackagingJob, error)
	GetHistory(ctx context.Context, historyID string) (*model.UpdateHistoryRecord, error)
	GetPolicy(ctx context.Context, policyID string) (*model.UpdatePolicy, error)
	// CompleteAttempt writes the history transition and the policy mutation of
	// a as one atomic update, computing the mutation from the failure count
	// stored at write time. It returns nil when the history record is no
	// longer running, in which case nothing is written.
	CompleteAttempt(ctx context.Context, a model.AttemptCompletion) (*model.PolicyMutation, error)
	ClearBatchDeploymentReferences(ctx context.Context, jobID string) error
	DeleteJob(ctx context.Context, jobID string) error
}

// Controller applies job completions to auto-update history and policies.
type Controller struct {
	store                  Store
	logger                 *zap.Logger
	maxConsecutiveFailures int
	now                    func() time.Time
}

// NewController creates a controller. A threshold of zero or less uses
// DefaultMaxConsecutiveFailures.
func NewController(store Store, logger *zap.Logger, maxConsecutiveFailures int) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxConsecutiveFailures <= 0 {
		maxConsecutiveFailures = DefaultMaxConsecutiveFailures
	}
	return &Controller{
		store:                  store,
		logger:                 logger,
		maxConsecutiveFailures: maxConsecutiveFailures,
		now:                    func() time.Time { return time.Now().UTC() },
	}
}

// MaxConsecutiveFailures returns the failure count that disables a policy.
func (c *Controller) MaxConsecutiveFailures() int {
	return c.maxConsecutiveFailures
}

// OnJobTerminal records the terminal outcome of a packaging job against its
// auto-update history and policy, and returns the policy change it applied.
//
// It returns (nil, nil) when there is nothing to do: the job is not an
// auto-update, its history record is missing, or the completion was already
// recorded. Redelivered or concurrent completions of the same job are applied
// at most once. Store errors are returned wrapped so the caller can retry.
func (c *Controller) OnJobTerminal(ctx context.Context, jobID string, outcome model.JobOutcome, errorMessage string) (*model.PolicyMutation, error) {
	if !outcome.IsValid() {
		return nil, fmt.Errorf("invalid job outcome %q", outcome)
	}

	job, err := c.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to read job %s: %w", jobID, err)
	}

	if !job.IsAutoUpdate || job.AutoUpdatePolicyID == nil || *job.AutoUpdatePolicyID == "" {
		return nil, nil
	}
	policyID := *job.AutoUpdatePolicyID
	log := c.logger.With(zap.String("job_id", jobID), zap.String("policy_id", policyID))

	historyID := job.HistoryID()
	if historyID == "" {
		log.Warn("No auto-update history id in package config, skipping")
		return nil, nil
	}
	log = log.With(zap.String("history_id", historyID))

	history, err := c.store.GetHistory(ctx, historyID)
	if errors.Is(err, model.ErrNotFound) {
		log.Warn("Auto-update history record not found, skipping")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history %s: %w", historyID, err)
	}

	if history.Status.IsTerminal() {
		log.Debug("Auto-update history already terminal", zap.String("status", string(history.Status)))
		return nil, nil
	}

	// a missing policy fails the delivery before anything is written
	if _, err := c.store.GetPolicy(ctx, policyID); err != nil {
		return nil, fmt.Errorf("failed to read policy %s: %w", policyID, err)
	}

	mutation, err := c.store.CompleteAttempt(ctx, model.AttemptCompletion{
		HistoryID:              historyID,
		PolicyID:               policyID,
		Transition:             historyTransition(outcome, errorMessage, c.now()),
		MaxConsecutiveFailures: c.maxConsecutiveFailures,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete auto-update attempt %s: %w", historyID, err)
	}
	if mutation == nil {
		// another delivery of this completion got there first
		return nil, nil
	}

	if mutation.IsEnabled != nil && !*mutation.IsEnabled {
		failures := *mutation.ConsecutiveFailures
		log.Warn(fmt.Sprintf("Circuit breaker: disabling policy %s after %d consecutive failures", policyID, failures),
			zap.Int("consecutive_failures", failures))
	}

	if !outcome.IsSuccess() {
		c.dismissJob(ctx, jobID, log)
	}

	return mutation, nil
}

func historyTransition(outcome model.JobOutcome, errorMessage string, now time.Time) model.HistoryTransition {
	if outcome.IsSuccess() {
		return model.HistoryTransition{Status: model.HistoryStatusCompleted, CompletedAt: now}
	}

	status := model.HistoryStatusFailed
	if outcome == model.JobOutcomeCancelled {
		status = model.HistoryStatusCancelled
	}
	if errorMessage == "" {
		errorMessage = "Job " + string(outcome)
	}
	return model.HistoryTransition{Status: status, ErrorMessage: &errorMessage, CompletedAt: now}
}

// dismissJob removes a failed auto-update job from the dashboard. Tracking is
// already persisted, so failures here are only logged.
func (c *Controller) dismissJob(ctx context.Context, jobID string, log *zap.Logger) {
	if err := c.store.ClearBatchDeploymentReferences(ctx, jobID); err != nil {
		log.Error("Failed to clear batch deployment references before dismissing job", zap.Error(err))
		return
	}
	if err := c.store.DeleteJob(ctx, jobID); err != nil {
		log.Error("Failed to dismiss job", zap.Error(err))
	}
}
