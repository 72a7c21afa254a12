package autoupdate

import (
	"context"
	"sync"

	"github.com/appbridge/migration-backend/model"
)

// memoryStore is an in-memory Store. CompleteAttempt holds the lock across the
// history and policy writes, matching the single query of the database
// implementation.
type memoryStore struct {
	mu        sync.Mutex
	jobs      map[string]*model.PackagingJob
	history   map[string]*model.UpdateHistoryRecord
	policies  map[string]*model.UpdatePolicy
	batchRefs map[string]int

	getJobErr    error
	getPolicyErr error
	completeErr  error
	clearErr     error
	deleteErr    error

	completions int
	deletes     int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		jobs:      make(map[string]*model.PackagingJob),
		history:   make(map[string]*model.UpdateHistoryRecord),
		policies:  make(map[string]*model.UpdatePolicy),
		batchRefs: make(map[string]int),
	}
}

// addAutoUpdateJob registers a running auto-update attempt for policyID.
func (s *memoryStore) addAutoUpdateJob(jobID, policyID, historyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pid := policyID
	s.jobs[jobID] = &model.PackagingJob{
		Key:                jobID,
		IsAutoUpdate:       true,
		AutoUpdatePolicyID: &pid,
		PackageConfig:      &model.PackageConfig{AutoUpdateHistoryID: historyID},
		Status:             "packaging",
	}
	if historyID != "" {
		record := model.NewUpdateHistoryRecord(policyID, jobID)
		record.Key = historyID
		s.history[historyID] = record
	}
	s.batchRefs[jobID] = 1
}

func (s *memoryStore) addPolicy(policyID string) *model.UpdatePolicy {
	s.mu.Lock()
	defer s.mu.Unlock()

	policy := model.NewUpdatePolicy("Acme.Tools", model.PolicyModeAutoUpdate)
	policy.Key = policyID
	version := "1.0.0"
	policy.LastAutoUpdateVersion = &version
	s.policies[policyID] = policy
	return policy
}

func (s *memoryStore) policy(policyID string) model.UpdatePolicy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.policies[policyID]
}

func (s *memoryStore) historyRecord(historyID string) model.UpdateHistoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.history[historyID]
}

func (s *memoryStore) hasJob(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jobs[jobID]
	return ok
}

func (s *memoryStore) GetJob(_ context.Context, jobID string) (*model.PackagingJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getJobErr != nil {
		return nil, s.getJobErr
	}
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, model.ErrNotFound
	}
	copied := *job
	return &copied, nil
}

func (s *memoryStore) GetHistory(_ context.Context, historyID string) (*model.UpdateHistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.history[historyID]
	if !ok {
		return nil, model.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *memoryStore) GetPolicy(_ context.Context, policyID string) (*model.UpdatePolicy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getPolicyErr != nil {
		return nil, s.getPolicyErr
	}
	policy, ok := s.policies[policyID]
	if !ok {
		return nil, model.ErrNotFound
	}
	copied := *policy
	return &copied, nil
}

func (s *memoryStore) CompleteAttempt(_ context.Context, a model.AttemptCompletion) (*model.PolicyMutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completeErr != nil {
		return nil, s.completeErr
	}
	record, ok := s.history[a.HistoryID]
	if !ok {
		return nil, model.ErrNotFound
	}
	policy, ok := s.policies[a.PolicyID]
	if !ok {
		return nil, model.ErrNotFound
	}
	if record.Status != model.HistoryStatusRunning {
		return nil, nil
	}

	record.Status = a.Transition.Status
	record.ErrorMessage = a.Transition.ErrorMessage
	completedAt := a.Transition.CompletedAt
	record.CompletedAt = &completedAt

	mutation := a.Mutation(policy.ConsecutiveFailures)
	updated := mutation.Apply(*policy)
	s.policies[a.PolicyID] = &updated
	s.completions++
	return &mutation, nil
}

func (s *memoryStore) ClearBatchDeploymentReferences(_ context.Context, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clearErr != nil {
		return s.clearErr
	}
	delete(s.batchRefs, jobID)
	return nil
}

func (s *memoryStore) DeleteJob(_ context.Context, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.jobs, jobID)
	s.deletes++
	return nil
}
