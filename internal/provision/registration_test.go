package provision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbusgate/ccfleet/internal/config"
	"github.com/nimbusgate/ccfleet/internal/plan"
	"github.com/nimbusgate/ccfleet/internal/registration"
)

// memoryRecord is an in-memory RecordStore keyed like the S3-backed
// one: a lookup under a different key finds nothing.
type memoryRecord struct {
	regs  map[string][]registration.Registration
	saved int
}

func newMemoryRecord() *memoryRecord {
	return &memoryRecord{regs: make(map[string][]registration.Registration)}
}

func (m *memoryRecord) Load(_ context.Context, key string) ([]registration.Registration, error) {
	return m.regs[key], nil
}

func (m *memoryRecord) Save(_ context.Context, key string, regs []registration.Registration) error {
	m.regs[key] = regs
	m.saved++
	return nil
}

func TestReapplyWithRecordIsNoOp(t *testing.T) {
	cfg := validConfig(t)
	cfg.Deployment = "edge-x7k2p9"
	record := newMemoryRecord()

	var registered, deregistered []string
	mock := happyMock(&registered)
	mock.DeregisterTargetsFunc = func(_ context.Context, _ string, addresses []string) error {
		deregistered = append(deregistered, addresses...)
		return nil
	}

	d := NewDeployer(cfg, mock, record, nil)
	_, err := d.Apply(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"10.0.1.5", "10.0.2.5", "10.0.3.5"}, registered)
	require.Equal(t, 1, record.saved)
	// The record key is stable across applies of the same deployment.
	require.Contains(t, record.regs, "deployments/edge-x7k2p9/registrations.json")

	// The second Apply resumes the same identity, so it finds the
	// record under the same key and the diff comes up empty.
	registered = nil
	report, err := d.Apply(context.Background())
	require.NoError(t, err)

	out, ok := report.Output(NodeRegistration)
	require.True(t, ok)
	result := out.(RegistrationResult)

	// Same config, same policy: nothing to add or remove.
	assert.True(t, result.Delta.Empty())
	assert.Empty(t, registered)
	assert.Empty(t, deregistered)
}

func TestRegistrationShrinkRemovesExactSlots(t *testing.T) {
	cfg := validConfig(t)
	cfg.SizeClass = "small" // slot 1 only; slot 2 stays populated
	cfg.ComputeProfile = "t3.medium"

	record := newMemoryRecord()
	var registered, deregistered []string
	mock := happyMock(&registered)
	mock.DeregisterTargetsFunc = func(_ context.Context, _ string, addresses []string) error {
		deregistered = append(deregistered, addresses...)
		return nil
	}
	// The previous apply, at medium, had registered slots 1 and 2.
	mock.ListTargetsFunc = func(_ context.Context, _ string) ([]string, error) {
		return []string{"10.0.1.5", "10.0.2.5", "10.0.3.5"}, nil
	}

	d := NewDeployer(cfg, mock, record, nil)
	report, err := d.Apply(context.Background())
	require.NoError(t, err)

	out, ok := report.Output(NodeRegistration)
	require.True(t, ok)
	result := out.(RegistrationResult)

	// Slot 1 survives untouched; only the slot-2 address is removed.
	assert.Equal(t, []string{"10.0.3.5"}, deregistered)
	assert.Empty(t, registered)
	require.Len(t, result.Ignored, 1)
	assert.Equal(t, 2, result.Ignored[0].Slot)
}

func TestRegistrationUsesRecordOverLiveState(t *testing.T) {
	cfg := validConfig(t)
	record := newMemoryRecord()

	listCalled := false
	var registered []string
	mock := happyMock(&registered)
	mock.ListTargetsFunc = func(_ context.Context, _ string) ([]string, error) {
		listCalled = true
		return nil, nil
	}
	mock.DeregisterTargetsFunc = func(_ context.Context, _ string, _ []string) error {
		return nil
	}

	// Pre-seed the record for whatever key the deployment derives.
	d := NewDeployer(cfg, mock, &seededRecord{memoryRecord: record}, nil)
	_, err := d.Apply(context.Background())
	require.NoError(t, err)
	assert.False(t, listCalled, "record present, live target group must not be consulted")
}

// seededRecord returns a fixed previous set for any key.
type seededRecord struct {
	*memoryRecord
}

func (s *seededRecord) Load(_ context.Context, _ string) ([]registration.Registration, error) {
	return []registration.Registration{
		mustRegistration("arn:tg", "10.0.9.9", 1),
	}, nil
}

func TestRegistrationRollsBackRemovalsOnFailedAdd(t *testing.T) {
	cfg := validConfig(t)
	cfg.ServiceAddresses = config.ServiceAddresses{
		Slot1: []string{"10.0.1.6"}, // replaces the previously applied 10.0.1.5
		Slot2: []string{"10.0.3.5"},
	}

	var registerCalls [][]string
	var deregistered []string
	mock := happyMock(nil)
	mock.ListTargetsFunc = func(_ context.Context, _ string) ([]string, error) {
		return []string{"10.0.1.5", "10.0.3.5"}, nil
	}
	mock.DeregisterTargetsFunc = func(_ context.Context, _ string, addresses []string) error {
		deregistered = append(deregistered, addresses...)
		return nil
	}
	mock.RegisterTargetsFunc = func(_ context.Context, _ string, addresses []string) error {
		registerCalls = append(registerCalls, addresses)
		if len(registerCalls) == 1 {
			return assert.AnError
		}
		return nil
	}

	d := NewDeployer(cfg, mock, nil, nil)
	report, err := d.Apply(context.Background())
	require.Error(t, err)
	assert.Equal(t, plan.StatusFailed, report.Status(NodeRegistration))

	// The removed address was restored after the add failed.
	require.Len(t, registerCalls, 2)
	assert.Equal(t, []string{"10.0.1.6"}, registerCalls[0])
	assert.Equal(t, deregistered, registerCalls[1])
}

func TestRegistrationFailureSkipsNothingElse(t *testing.T) {
	cfg := validConfig(t)

	var registered []string
	mock := happyMock(&registered)
	mock.RegisterTargetsFunc = func(_ context.Context, _ string, _ []string) error {
		return assert.AnError
	}

	d := NewDeployer(cfg, mock, nil, nil)
	report, err := d.Apply(context.Background())
	require.Error(t, err)

	assert.Equal(t, plan.StatusFailed, report.Status(NodeRegistration))
	// Registration has no downstream consumers; the rest still converges.
	assert.Equal(t, plan.StatusSucceeded, report.Status(NodeFleet))
	assert.Equal(t, plan.StatusSucceeded, report.Status(NodeEndpoints))
}

var _ RecordStore = (*memoryRecord)(nil)
