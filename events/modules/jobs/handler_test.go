package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/appbridge/migration-backend/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type call struct {
	jobID        string
	outcome      model.JobOutcome
	errorMessage string
}

type fakeService struct {
	calls    []call
	mutation *model.PolicyMutation
	err      error
}

func (f *fakeService) OnJobTerminal(_ context.Context, jobID string, outcome model.JobOutcome, errorMessage string) (*model.PolicyMutation, error) {
	f.calls = append(f.calls, call{jobID, outcome, errorMessage})
	return f.mutation, f.err
}

func payload(t *testing.T, event JobTerminalEvent) []byte {
	t.Helper()
	b, err := json.Marshal(event)
	require.NoError(t, err)
	return b
}

func TestHandleJobTerminal_CallsService(t *testing.T) {
	svc := &fakeService{}
	event := NewJobTerminalEvent(model.PackagingJob{Key: "job-1"}, model.JobOutcomeFailed, "installer exited 1603")

	err := HandleJobTerminalWithService(context.Background(), payload(t, event), svc, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, svc.calls, 1)
	assert.Equal(t, call{"job-1", model.JobOutcomeFailed, "installer exited 1603"}, svc.calls[0])
}

func TestHandleJobTerminal_LogsMutation(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := &fakeService{mutation: &model.PolicyMutation{PolicyID: "policy-1"}}
	event := NewJobTerminalEvent(model.PackagingJob{Key: "job-1"}, model.JobOutcomeDeployed, "")

	err := HandleJobTerminalWithService(context.Background(), payload(t, event), svc, zap.New(core))
	require.NoError(t, err)

	entries := logs.FilterMessage("Applied auto-update policy mutation").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "policy-1", entries[0].ContextMap()["policy_id"])
}

func TestHandleJobTerminal_InvalidPayloads(t *testing.T) {
	tests := []struct {
		name string
		msg  []byte
	}{
		{"not json", []byte("{nope")},
		{"missing job id", []byte(`{"outcome":"deployed"}`)},
		{"unknown outcome", []byte(`{"job_id":"job-1","outcome":"exploded"}`)},
		{"wrong event type", []byte(`{"event_type":"release.sbom.created","job_id":"job-1","outcome":"failed"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			err := HandleJobTerminalWithService(context.Background(), tt.msg, svc, zap.NewNop())

			var invalid *InvalidEventError
			require.ErrorAs(t, err, &invalid)
			assert.Empty(t, svc.calls)
		})
	}
}

func TestHandleJobTerminal_ServiceErrorIsRetryable(t *testing.T) {
	boom := errors.New("write conflict")
	svc := &fakeService{err: boom}
	event := NewJobTerminalEvent(model.PackagingJob{Key: "job-1"}, model.JobOutcomeCancelled, "")

	err := HandleJobTerminalWithService(context.Background(), payload(t, event), svc, zap.NewNop())
	require.ErrorIs(t, err, boom)

	var invalid *InvalidEventError
	assert.False(t, errors.As(err, &invalid))
}

func TestNewJobTerminalEvent_CopiesPackageConfig(t *testing.T) {
	job := model.PackagingJob{
		Key:           "job-9",
		PackageConfig: &model.PackageConfig{WingetID: "Mozilla.Firefox", Version: "120.0"},
	}

	event := NewJobTerminalEvent(job, model.JobOutcomeDeployed, "")

	assert.Equal(t, EventTypeJobTerminal, event.EventType)
	assert.Equal(t, SchemaVersion, event.SchemaVersion)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "Mozilla.Firefox", event.WingetID)
	assert.Equal(t, "120.0", event.Version)
	assert.NoError(t, event.Validate())
}
