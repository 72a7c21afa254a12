package database

import (
	"context"
	"fmt"

	"github.com/appbridge/migration-backend/autoupdate"
	"github.com/appbridge/migration-backend/model"
	"github.com/arangodb/go-driver/v2/arangodb"
)

// AutoUpdateRepo stores packaging jobs, auto-update history and update policies
type AutoUpdateRepo struct {
	db arangodb.Database
}

// NewAutoUpdateRepo creates an auto-update repository on an initialized connection
func NewAutoUpdateRepo(conn DBConnection) *AutoUpdateRepo {
	return &AutoUpdateRepo{db: conn.Database}
}

var _ autoupdate.Store = (*AutoUpdateRepo)(nil)

func getDocument[T any](ctx context.Context, db arangodb.Database, collection, key string) (*T, error) {
	query := `RETURN DOCUMENT(CONCAT(@collection, "/", @key))`
	bindVars := map[string]interface{}{
		"collection": collection,
		"key":        key,
	}

	doc, err := readOne[T](ctx, db, query, bindVars)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", collection, key, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%s/%s: %w", collection, key, model.ErrNotFound)
	}
	return doc, nil
}

// GetJob returns a packaging job by key
func (r *AutoUpdateRepo) GetJob(ctx context.Context, jobID string) (*model.PackagingJob, error) {
	return getDocument[model.PackagingJob](ctx, r.db, PackagingJobCollection, jobID)
}

// GetHistory returns an auto-update history record by key
func (r *AutoUpdateRepo) GetHistory(ctx context.Context, historyID string) (*model.UpdateHistoryRecord, error) {
	return getDocument[model.UpdateHistoryRecord](ctx, r.db, UpdateHistoryCollection, historyID)
}

// GetPolicy returns an update policy by key
func (r *AutoUpdateRepo) GetPolicy(ctx context.Context, policyID string) (*model.UpdatePolicy, error) {
	return getDocument[model.UpdatePolicy](ctx, r.db, UpdatePolicyCollection, policyID)
}

// CompleteAttempt transitions the history record and updates its policy in one
// AQL query, so both writes commit or neither does. The failure count is read
// inside the query. Of two concurrent writers on the same record or policy one
// fails with a write conflict and sees the committed state when retried.
func (r *AutoUpdateRepo) CompleteAttempt(ctx context.Context, a model.AttemptCompletion) (*model.PolicyMutation, error) {
	query := `
		LET h = DOCUMENT(update_history, @history)
		LET p = DOCUMENT(update_policy, @policy)
		FILTER h != null AND p != null AND h.status == @running
		LET stored = NOT_NULL(p.consecutive_failures, 0)
		LET failures = @failed ? stored + 1 : 0
		LET patch = MERGE(
			{ consecutive_failures: failures, updated_at: @completed_at },
			@failed ? { last_auto_update_version: null } : {},
			(@failed AND failures >= @max) ? { is_enabled: false } : {}
		)
		LET history = (
			UPDATE h WITH {
				status: @status,
				error_message: @error_message,
				completed_at: @completed_at
			} IN update_history
			RETURN NEW._key
		)
		LET policy = (
			UPDATE p WITH patch IN update_policy OPTIONS { keepNull: true }
			RETURN NEW._key
		)
		RETURN stored
	`
	bindVars := map[string]interface{}{
		"history":       a.HistoryID,
		"policy":        a.PolicyID,
		"running":       model.HistoryStatusRunning,
		"failed":        a.Failed(),
		"max":           a.MaxConsecutiveFailures,
		"status":        a.Transition.Status,
		"error_message": a.Transition.ErrorMessage,
		"completed_at":  a.Transition.CompletedAt,
	}

	stored, err := readOne[int](ctx, r.db, query, bindVars)
	if err != nil {
		return nil, fmt.Errorf("failed to complete attempt %s: %w", a.HistoryID, err)
	}
	if stored == nil {
		return nil, nil
	}

	mutation := a.Mutation(*stored)
	return &mutation, nil
}

// ClearBatchDeploymentReferences detaches batch deployment items from a job
func (r *AutoUpdateRepo) ClearBatchDeploymentReferences(ctx context.Context, jobID string) error {
	query := `
		FOR b IN batch_deployment_item
			FILTER b.packaging_job_id == @job
			UPDATE b WITH { packaging_job_id: null } IN batch_deployment_item OPTIONS { keepNull: true }
			RETURN NEW._key
	`
	if _, err := exec(ctx, r.db, query, map[string]interface{}{"job": jobID}); err != nil {
		return fmt.Errorf("failed to clear batch deployment references for %s: %w", jobID, err)
	}
	return nil
}

// DeleteJob removes a packaging job
func (r *AutoUpdateRepo) DeleteJob(ctx context.Context, jobID string) error {
	query := `
		FOR j IN packaging_job
			FILTER j._key == @key
			REMOVE j IN packaging_job
			RETURN OLD._key
	`
	if _, err := exec(ctx, r.db, query, map[string]interface{}{"key": jobID}); err != nil {
		return fmt.Errorf("failed to delete job %s: %w", jobID, err)
	}
	return nil
}

// SavePolicy creates or replaces an update policy
func (r *AutoUpdateRepo) SavePolicy(ctx context.Context, policy model.UpdatePolicy) error {
	query := `
		UPSERT { _key: @doc._key }
		INSERT @doc
		REPLACE @doc
		IN update_policy
		RETURN NEW._key
	`
	if _, err := exec(ctx, r.db, query, map[string]interface{}{"doc": policy}); err != nil {
		return fmt.Errorf("failed to save policy %s: %w", policy.Key, err)
	}
	return nil
}
