package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbusgate/ccfleet/internal/config"
	"github.com/nimbusgate/ccfleet/internal/observe"
	"github.com/nimbusgate/ccfleet/internal/plan"
	"github.com/nimbusgate/ccfleet/internal/platform/awscloud"
	"github.com/nimbusgate/ccfleet/internal/provision"
)

func testConfig() *config.Config {
	return &config.Config{
		NamePrefix:     "edge",
		Owner:          "netsec",
		Region:         "eu-central-1",
		SizeClass:      "small",
		ComputeProfile: "t3.medium",
		HealthCheck: config.HealthCheck{
			Port:               80,
			Path:               "/healthz",
			IntervalSeconds:    10,
			HealthyThreshold:   3,
			UnhealthyThreshold: 3,
		},
		ServiceAddresses: config.ServiceAddresses{Slot1: []string{"10.0.1.5"}},
		Network: config.NetworkConfig{
			VPCID:     "vpc-0abc",
			SubnetIDs: []string{"subnet-a"},
		},
		Fleet: config.FleetConfig{MinSize: 1, MaxSize: 3, DesiredCapacity: 1, ImageID: "ami-1"},
	}
}

// deployerMock satisfies the Deployer interface with canned results.
type deployerMock struct {
	applyErr   error
	destroyErr error
	destroyed  string
}

func (m *deployerMock) Apply(_ context.Context) (*plan.Report, error) {
	return nil, m.applyErr
}

func (m *deployerMock) BuildGraph() (*plan.Graph, error) {
	return provision.NewDeployer(testConfig(), nil, nil, nil).BuildGraph()
}

func (m *deployerMock) Destroy(_ context.Context, name string) error {
	m.destroyed = name
	return m.destroyErr
}

func injectMocks(t *testing.T, cfg *config.Config, mock *deployerMock) {
	t.Helper()
	origLoad := loadConfigFile
	origCloud := newCloudClient
	origRecord := newRecordStore
	origDeployer := newDeployer
	t.Cleanup(func() {
		loadConfigFile = origLoad
		newCloudClient = origCloud
		newRecordStore = origRecord
		newDeployer = origDeployer
	})

	loadConfigFile = func(_ string) (*config.Config, error) { return cfg, nil }
	newCloudClient = func(_ context.Context, _ string) (awscloud.API, error) { return &awscloud.Mock{}, nil }
	newRecordStore = func(_ context.Context, _, _ string) (provision.RecordStore, error) {
		t.Fatal("record store must not be constructed without state_record config")
		return nil, nil
	}
	newDeployer = func(_ *config.Config, _ awscloud.API, record provision.RecordStore, _ observe.Observer) Deployer {
		assert.Nil(t, record)
		return mock
	}
}

func TestApply(t *testing.T) {
	injectMocks(t, testConfig(), &deployerMock{})
	require.NoError(t, Apply(context.Background(), "ccfleet.yaml", "", false))
}

func TestApplyPropagatesPlanFailure(t *testing.T) {
	injectMocks(t, testConfig(), &deployerMock{applyErr: errors.New("node \"fleet\" failed")})
	err := Apply(context.Background(), "ccfleet.yaml", "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fleet")
}

func TestApplyDeploymentFlagOverridesConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Deployment = "edge-aaaaaa"
	injectMocks(t, cfg, &deployerMock{})

	var gotDeployment string
	newDeployer = func(c *config.Config, _ awscloud.API, _ provision.RecordStore, _ observe.Observer) Deployer {
		gotDeployment = c.Deployment
		return &deployerMock{}
	}

	require.NoError(t, Apply(context.Background(), "ccfleet.yaml", "edge-x7k2p9", false))
	assert.Equal(t, "edge-x7k2p9", gotDeployment)
}

func TestApplyBuildsRecordStoreWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.StateRecord = config.StateRecordConfig{Bucket: "fleet-state"}

	mock := &deployerMock{}
	injectMocks(t, cfg, mock)

	var gotRegion, gotBucket string
	newRecordStore = func(_ context.Context, region, bucket string) (provision.RecordStore, error) {
		gotRegion, gotBucket = region, bucket
		return nil, nil
	}
	newDeployer = func(_ *config.Config, _ awscloud.API, _ provision.RecordStore, _ observe.Observer) Deployer {
		return mock
	}

	require.NoError(t, Apply(context.Background(), "ccfleet.yaml", "", false))
	// Record region falls back to the deployment region.
	assert.Equal(t, "eu-central-1", gotRegion)
	assert.Equal(t, "fleet-state", gotBucket)
}

func TestDestroy(t *testing.T) {
	mock := &deployerMock{}
	injectMocks(t, testConfig(), mock)

	require.NoError(t, Destroy(context.Background(), "ccfleet.yaml", "edge-x7k2p9", false))
	assert.Equal(t, "edge-x7k2p9", mock.destroyed)
}

func TestDestroyWrapsError(t *testing.T) {
	mock := &deployerMock{destroyErr: errors.New("still referenced")}
	injectMocks(t, testConfig(), mock)

	err := Destroy(context.Background(), "ccfleet.yaml", "edge-x7k2p9", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "teardown incomplete")
}
