package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
name_prefix: cc
owner: net-team
region: eu-central-1
size_class: medium
compute_profile: m5.2xlarge
bootstrap_payload: ./bootstrap.b64
cross_zone_enabled: true
health_check:
  port: 8080
  path: /status
  interval: 15
  healthy_threshold: 2
  unhealthy_threshold: 4
service_addresses:
  slot1: [10.0.1.5, 10.0.1.6]
  slot2: [10.0.2.5]
network:
  vpc_id: vpc-0a1b2c3d
  subnet_ids: [subnet-aaa, subnet-bbb]
fleet:
  min_size: 2
  max_size: 6
  desired_capacity: 2
  image_id: ami-0123456789abcdef0
support:
  instance_profile_arn: arn:aws:iam::123456789012:instance-profile/cc
  security_group_ids: [sg-111, sg-222]
dns:
  domains: [corp.example.com]
tags:
  CostCenter: "1234"
`

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, "cc", cfg.NamePrefix)
	assert.Equal(t, "medium", cfg.SizeClass)
	assert.Equal(t, 8080, cfg.HealthCheck.Port)
	assert.Equal(t, []string{"10.0.1.5", "10.0.1.6"}, cfg.ServiceAddresses.Slot1)
	assert.Equal(t, []string{"subnet-aaa", "subnet-bbb"}, cfg.Network.SubnetIDs)
	assert.True(t, cfg.CrossZoneEnabled)
	assert.Equal(t, "1234", cfg.Tags["CostCenter"])
	assert.Empty(t, onlyErrors(cfg.Validate()))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load([]byte(`
name_prefix: cc
owner: net-team
region: eu-central-1
size_class: small
compute_profile: m5.large
network:
  vpc_id: vpc-1
  subnet_ids: [subnet-1]
`))
	require.NoError(t, err)

	assert.Equal(t, DefaultHealthCheckPort, cfg.HealthCheck.Port)
	assert.Equal(t, DefaultHealthCheckPath, cfg.HealthCheck.Path)
	assert.Equal(t, DefaultHealthCheckInterval, cfg.HealthCheck.IntervalSeconds)
	assert.Equal(t, DefaultFleetMinSize, cfg.Fleet.MinSize)
	assert.Equal(t, cfg.Fleet.MinSize, cfg.Fleet.DesiredCapacity)
	assert.Equal(t, DefaultBastionKeyBits, cfg.Support.BastionKeyBits)
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load([]byte("name_prefix: [unterminated"))
	assert.Error(t, err)
}

func TestValidate_RequiredFields(t *testing.T) {
	cfg, err := Load([]byte(`{}`))
	require.NoError(t, err)

	errs := onlyErrors(cfg.Validate())
	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}

	for _, want := range []string{"NamePrefix", "Owner", "Region", "SizeClass", "ComputeProfile", "Network"} {
		assert.True(t, fields[want], "expected error for field %s", want)
	}
}

func TestValidate_UppercasePrefix(t *testing.T) {
	cfg := minimalValid()
	cfg.NamePrefix = "CC"
	assertFieldError(t, cfg.Validate(), "NamePrefix")
}

func TestValidate_BadAddress(t *testing.T) {
	cfg := minimalValid()
	cfg.ServiceAddresses.Slot1 = []string{"10.0.1.999"}
	assertFieldError(t, cfg.Validate(), "ServiceAddresses.Slot1")
}

func TestValidate_HealthCheckRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*HealthCheck)
		field  string
	}{
		{"port too high", func(hc *HealthCheck) { hc.Port = 70000 }, "HealthCheck.Port"},
		{"relative path", func(hc *HealthCheck) { hc.Path = "status" }, "HealthCheck.Path"},
		{"interval too short", func(hc *HealthCheck) { hc.IntervalSeconds = 1 }, "HealthCheck.Interval"},
		{"healthy threshold too low", func(hc *HealthCheck) { hc.HealthyThreshold = 1 }, "HealthCheck.HealthyThreshold"},
		{"unhealthy threshold too high", func(hc *HealthCheck) { hc.UnhealthyThreshold = 20 }, "HealthCheck.UnhealthyThreshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalValid()
			tt.mutate(&cfg.HealthCheck)
			assertFieldError(t, cfg.Validate(), tt.field)
		})
	}
}

func TestValidate_Deployment(t *testing.T) {
	cfg := minimalValid()
	cfg.Deployment = "cc-a1b2c3"
	assert.Empty(t, onlyErrors(cfg.Validate()))

	cfg.Deployment = "cc-nope" // suffix too short
	assertFieldError(t, cfg.Validate(), "Deployment")

	cfg.Deployment = "edge-a1b2c3" // someone else's deployment
	assertFieldError(t, cfg.Validate(), "Deployment")
}

func TestValidate_FleetSizing(t *testing.T) {
	cfg := minimalValid()
	cfg.Fleet.MinSize = 5
	cfg.Fleet.MaxSize = 2
	cfg.Fleet.DesiredCapacity = 3
	errs := onlyErrors(cfg.Validate())
	assert.NotEmpty(t, errs)
}

func TestValidate_UnconsumedSlotIsWarning(t *testing.T) {
	cfg := minimalValid()
	cfg.SizeClass = "small"
	cfg.ComputeProfile = "m5.large"
	cfg.ServiceAddresses.Slot2 = []string{"10.0.2.9"}

	all := cfg.Validate()
	assert.Empty(t, onlyErrors(all), "populated unused slot must not be an error")

	warned := false
	for _, e := range all {
		if !e.IsError() && e.Field == "ServiceAddresses.Slot2" {
			warned = true
		}
	}
	assert.True(t, warned, "populated unused slot should warn")
}

func minimalValid() *Config {
	cfg, err := Load([]byte(validYAML))
	if err != nil {
		panic(err)
	}
	return cfg
}

func onlyErrors(all []ValidationError) []ValidationError {
	var errs []ValidationError
	for _, e := range all {
		if e.IsError() {
			errs = append(errs, e)
		}
	}
	return errs
}

func assertFieldError(t *testing.T, all []ValidationError, field string) {
	t.Helper()
	for _, e := range onlyErrors(all) {
		if e.Field == field {
			return
		}
	}
	t.Errorf("expected validation error for field %s, got %v", field, all)
}
