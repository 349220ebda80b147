package config

// Config holds the full deployment configuration.
type Config struct {
	NamePrefix string `mapstructure:"name_prefix" yaml:"name_prefix"`
	Owner      string `mapstructure:"owner" yaml:"owner"`
	Region     string `mapstructure:"region" yaml:"region"`

	// Deployment names an existing deployment to converge. When set,
	// apply reuses its identity (and with it every resource name)
	// instead of minting a new suffix; when empty, apply provisions a
	// new deployment. The --deployment flag overrides this.
	Deployment string `mapstructure:"deployment" yaml:"deployment"`

	SizeClass      string `mapstructure:"size_class" yaml:"size_class"`
	ComputeProfile string `mapstructure:"compute_profile" yaml:"compute_profile"`

	// BootstrapPayloadPath points at the opaque runtime-registration
	// blob forwarded to every connector instance. Never parsed here.
	BootstrapPayloadPath string `mapstructure:"bootstrap_payload" yaml:"bootstrap_payload"`

	CrossZoneEnabled bool        `mapstructure:"cross_zone_enabled" yaml:"cross_zone_enabled"`
	HealthCheck      HealthCheck `mapstructure:"health_check" yaml:"health_check"`

	ServiceAddresses ServiceAddresses `mapstructure:"service_addresses" yaml:"service_addresses"`

	Network NetworkConfig `mapstructure:"network" yaml:"network"`
	Fleet   FleetConfig   `mapstructure:"fleet" yaml:"fleet"`
	Support SupportConfig `mapstructure:"support" yaml:"support"`
	DNS     DNSConfig     `mapstructure:"dns" yaml:"dns"`

	// StateRecord optionally names the externally-owned record of the
	// last-applied registration set. When unset, re-planning diffs
	// against the live target group instead.
	StateRecord StateRecordConfig `mapstructure:"state_record" yaml:"state_record"`

	Tags map[string]string `mapstructure:"tags" yaml:"tags"`
}

// HealthCheck parameterizes the target group's HTTP health check.
type HealthCheck struct {
	Port               int    `mapstructure:"port" yaml:"port"`
	Path               string `mapstructure:"path" yaml:"path"`
	IntervalSeconds    int    `mapstructure:"interval" yaml:"interval"`
	HealthyThreshold   int    `mapstructure:"healthy_threshold" yaml:"healthy_threshold"`
	UnhealthyThreshold int    `mapstructure:"unhealthy_threshold" yaml:"unhealthy_threshold"`
}

// ServiceAddresses holds one ordered address list per service-interface
// slot. Only the slots implied by the size class are consumed.
type ServiceAddresses struct {
	Slot1 []string `mapstructure:"slot1" yaml:"slot1"`
	Slot2 []string `mapstructure:"slot2" yaml:"slot2"`
	Slot3 []string `mapstructure:"slot3" yaml:"slot3"`
}

// NetworkConfig identifies the VPC and connector subnets, either
// explicitly or by tag lookup.
type NetworkConfig struct {
	VPCID     string   `mapstructure:"vpc_id" yaml:"vpc_id"`
	SubnetIDs []string `mapstructure:"subnet_ids" yaml:"subnet_ids"`

	// Tag lookup, used when explicit IDs are not set.
	VPCTagKey      string `mapstructure:"vpc_tag_key" yaml:"vpc_tag_key"`
	VPCTagValue    string `mapstructure:"vpc_tag_value" yaml:"vpc_tag_value"`
	SubnetTagKey   string `mapstructure:"subnet_tag_key" yaml:"subnet_tag_key"`
	SubnetTagValue string `mapstructure:"subnet_tag_value" yaml:"subnet_tag_value"`
}

// FleetConfig sizes the autoscaling group of connector instances.
type FleetConfig struct {
	MinSize         int    `mapstructure:"min_size" yaml:"min_size"`
	MaxSize         int    `mapstructure:"max_size" yaml:"max_size"`
	DesiredCapacity int    `mapstructure:"desired_capacity" yaml:"desired_capacity"`
	ImageID         string `mapstructure:"image_id" yaml:"image_id"`
}

// SupportConfig carries opaque handles from the support providers,
// passed through unmodified into the fleet configuration.
type SupportConfig struct {
	InstanceProfileARN string   `mapstructure:"instance_profile_arn" yaml:"instance_profile_arn"`
	SecurityGroupIDs   []string `mapstructure:"security_group_ids" yaml:"security_group_ids"`
	BastionKeyBits     int      `mapstructure:"bastion_key_bits" yaml:"bastion_key_bits"`
}

// DNSConfig drives resolver-rule redirection at the published endpoint.
type DNSConfig struct {
	Domains            []string `mapstructure:"domains" yaml:"domains"`
	ResolverEndpointID string   `mapstructure:"resolver_endpoint_id" yaml:"resolver_endpoint_id"`
}

// StateRecordConfig names the S3 location of the last-applied record.
type StateRecordConfig struct {
	Bucket string `mapstructure:"bucket" yaml:"bucket"`
	Region string `mapstructure:"region" yaml:"region"`
}

// Enabled reports whether a state record location is configured.
func (s StateRecordConfig) Enabled() bool {
	return s.Bucket != ""
}
