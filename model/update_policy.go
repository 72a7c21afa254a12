// Package model - auto-update policy tracking and packaging job records
package model

import (
	"time"

	"github.com/Masterminds/semver/v3"
)

// PolicyMode controls what happens when a newer version of a tracked package appears.
type PolicyMode string

const (
	PolicyModeAutoUpdate PolicyMode = "auto_update"
	PolicyModeNotify     PolicyMode = "notify"
	PolicyModeIgnore     PolicyMode = "ignore"
	PolicyModePinVersion PolicyMode = "pin_version"
)

// HistoryStatus is the state of one auto-update attempt.
type HistoryStatus string

const (
	HistoryStatusRunning   HistoryStatus = "running"
	HistoryStatusCompleted HistoryStatus = "completed"
	HistoryStatusFailed    HistoryStatus = "failed"
	HistoryStatusCancelled HistoryStatus = "cancelled"
)

// IsTerminal reports whether the status can no longer transition.
func (s HistoryStatus) IsTerminal() bool {
	switch s {
	case HistoryStatusCompleted, HistoryStatusFailed, HistoryStatusCancelled:
		return true
	}
	return false
}

// JobOutcome is the terminal outcome of a packaging job.
type JobOutcome string

const (
	JobOutcomeDeployed         JobOutcome = "deployed"
	JobOutcomeDuplicateSkipped JobOutcome = "duplicate_skipped"
	JobOutcomeFailed           JobOutcome = "failed"
	JobOutcomeCancelled        JobOutcome = "cancelled"
)

// IsValid reports whether o is one of the known terminal outcomes.
func (o JobOutcome) IsValid() bool {
	switch o {
	case JobOutcomeDeployed, JobOutcomeDuplicateSkipped, JobOutcomeFailed, JobOutcomeCancelled:
		return true
	}
	return false
}

// IsSuccess reports whether the outcome counts as a successful update.
func (o JobOutcome) IsSuccess() bool {
	return o == JobOutcomeDeployed || o == JobOutcomeDuplicateSkipped
}

// UpdatePolicy tracks automated updates of one package for a tenant.
type UpdatePolicy struct {
	Key                   string     `json:"_key,omitempty"`
	TenantID              string     `json:"tenant_id,omitempty"`
	WingetID              string     `json:"winget_id"`
	Mode                  PolicyMode `json:"mode"`
	PinnedVersion         string     `json:"pinned_version,omitempty"`
	ConsecutiveFailures   int        `json:"consecutive_failures"`
	IsEnabled             bool       `json:"is_enabled"`
	LastAutoUpdateVersion *string    `json:"last_auto_update_version"`
	ObjType               string     `json:"objtype"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// NewUpdatePolicy creates an enabled policy with no failure history.
func NewUpdatePolicy(wingetID string, mode PolicyMode) *UpdatePolicy {
	now := time.Now().UTC()
	return &UpdatePolicy{
		WingetID:  wingetID,
		Mode:      mode,
		IsEnabled: true,
		ObjType:   "UpdatePolicy",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AllowsVersion reports whether the policy lets version be deployed automatically.
// Pinned policies only accept the pinned version; versions are compared
// semantically when both parse, otherwise textually.
func (p UpdatePolicy) AllowsVersion(version string) bool {
	if !p.IsEnabled {
		return false
	}
	switch p.Mode {
	case PolicyModeIgnore:
		return false
	case PolicyModePinVersion:
		pinned, errPinned := semver.NewVersion(p.PinnedVersion)
		candidate, errCandidate := semver.NewVersion(version)
		if errPinned == nil && errCandidate == nil {
			return pinned.Equal(candidate)
		}
		return p.PinnedVersion == version
	}
	return true
}

// PolicyMutation is the change the lifecycle controller applies to a policy.
// Nil fields are left untouched.
type PolicyMutation struct {
	PolicyID                   string    `json:"policy_id"`
	ConsecutiveFailures        *int      `json:"consecutive_failures,omitempty"`
	IsEnabled                  *bool     `json:"is_enabled,omitempty"`
	ClearLastAutoUpdateVersion bool      `json:"clear_last_auto_update_version,omitempty"`
	UpdatedAt                  time.Time `json:"updated_at"`
}

// Apply returns a copy of p with the mutation applied.
func (m PolicyMutation) Apply(p UpdatePolicy) UpdatePolicy {
	if m.ConsecutiveFailures != nil {
		p.ConsecutiveFailures = *m.ConsecutiveFailures
	}
	if m.IsEnabled != nil {
		p.IsEnabled = *m.IsEnabled
	}
	if m.ClearLastAutoUpdateVersion {
		p.LastAutoUpdateVersion = nil
	}
	if !m.UpdatedAt.IsZero() {
		p.UpdatedAt = m.UpdatedAt
	}
	return p
}

// UpdateHistoryRecord is one auto-update attempt, tied to exactly one packaging job.
type UpdateHistoryRecord struct {
	Key          string        `json:"_key,omitempty"`
	PolicyID     string        `json:"policy_id"`
	JobID        string        `json:"job_id"`
	FromVersion  string        `json:"from_version,omitempty"`
	ToVersion    string        `json:"to_version,omitempty"`
	Status       HistoryStatus `json:"status"`
	ErrorMessage *string       `json:"error_message"`
	CompletedAt  *time.Time    `json:"completed_at"`
	ObjType      string        `json:"objtype"`
	CreatedAt    time.Time     `json:"created_at"`
}

// NewUpdateHistoryRecord creates a running history record.
func NewUpdateHistoryRecord(policyID, jobID string) *UpdateHistoryRecord {
	return &UpdateHistoryRecord{
		PolicyID:  policyID,
		JobID:     jobID,
		Status:    HistoryStatusRunning,
		ObjType:   "UpdateHistoryRecord",
		CreatedAt: time.Now().UTC(),
	}
}

// HistoryTransition is the terminal write applied to a running history record.
type HistoryTransition struct {
	Status       HistoryStatus `json:"status"`
	ErrorMessage *string       `json:"error_message,omitempty"`
	CompletedAt  time.Time     `json:"completed_at"`
}

// PackageConfig is the job configuration fields the lifecycle controller reads.
type PackageConfig struct {
	AutoUpdateHistoryID string `json:"autoUpdateHistoryId,omitempty"`
	WingetID            string `json:"wingetId,omitempty"`
	Version             string `json:"version,omitempty"`
}

// PackagingJob is the caller-owned packaging job record.
type PackagingJob struct {
	Key                string         `json:"_key,omitempty"`
	IsAutoUpdate       bool           `json:"is_auto_update"`
	AutoUpdatePolicyID *string        `json:"auto_update_policy_id"`
	PackageConfig      *PackageConfig `json:"package_config"`
	Status             string         `json:"status"`
	ObjType            string         `json:"objtype"`
	CreatedAt          time.Time      `json:"created_at"`
}

// HistoryID returns the auto-update history id embedded in the job configuration.
func (j PackagingJob) HistoryID() string {
	if j.PackageConfig == nil {
		return ""
	}
	return j.PackageConfig.AutoUpdateHistoryID
}

// AttemptCompletion is the write that finishes one auto-update attempt: the
// history transition and the policy change it implies, applied together.
type AttemptCompletion struct {
	HistoryID              string
	PolicyID               string
	Transition             HistoryTransition
	MaxConsecutiveFailures int
}

// Failed reports whether the attempt counts against the policy.
func (a AttemptCompletion) Failed() bool {
	return a.Transition.Status != HistoryStatusCompleted
}

// Mutation returns the policy change for the attempt, given the failure count
// stored on the policy when the completion is written.
func (a AttemptCompletion) Mutation(consecutiveFailures int) PolicyMutation {
	m := PolicyMutation{PolicyID: a.PolicyID, UpdatedAt: a.Transition.CompletedAt}
	if !a.Failed() {
		reset := 0
		m.ConsecutiveFailures = &reset
		return m
	}

	failures := consecutiveFailures + 1
	m.ConsecutiveFailures = &failures
	m.ClearLastAutoUpdateVersion = true
	if failures >= a.MaxConsecutiveFailures {
		disabled := false
		m.IsEnabled = &disabled
	}
	return m
}
