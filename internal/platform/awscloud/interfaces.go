package awscloud

import "context"

// GenevePort is the fixed encapsulation port gateway load balancer
// target groups listen on.
const GenevePort = 6081

// HealthCheckSpec parameterizes the target group's HTTP health check.
type HealthCheckSpec struct {
	Port               int
	Path               string
	IntervalSeconds    int
	HealthyThreshold   int
	UnhealthyThreshold int
}

// GatewayLoadBalancerSpec describes the traffic-interception front end.
type GatewayLoadBalancerSpec struct {
	Name      string
	SubnetIDs []string
	CrossZone bool
	Tags      map[string]string
}

// TargetGroupSpec describes the GENEVE target group behind the gateway
// load balancer.
type TargetGroupSpec struct {
	Name        string
	VPCID       string
	HealthCheck HealthCheckSpec
	Tags        map[string]string
}

// LoadBalancerAPI manages the forwarding layer.
type LoadBalancerAPI interface {
	// EnsureGatewayLoadBalancer returns the load balancer ARN.
	EnsureGatewayLoadBalancer(ctx context.Context, spec GatewayLoadBalancerSpec) (string, error)
	// EnsureTargetGroup returns the target group ARN.
	EnsureTargetGroup(ctx context.Context, spec TargetGroupSpec) (string, error)
	// ListTargets returns the addresses currently registered.
	ListTargets(ctx context.Context, targetGroupARN string) ([]string, error)
	RegisterTargets(ctx context.Context, targetGroupARN string, addresses []string) error
	DeregisterTargets(ctx context.Context, targetGroupARN string, addresses []string) error
	DeleteLoadBalancer(ctx context.Context, name string) error
	DeleteTargetGroup(ctx context.Context, name string) error
}

// LaunchTemplateSpec describes the connector instance template. The
// bootstrap payload is opaque: it is forwarded byte-for-byte as user
// data, never parsed.
type LaunchTemplateSpec struct {
	Name               string
	ImageID            string
	InstanceType       string
	BootstrapPayload   []byte
	InstanceProfileARN string
	SecurityGroupIDs   []string
	Tags               map[string]string
}

// FleetSpec sizes the autoscaling group of connector instances. The
// target group ARN attaches the group to the gateway load balancer so
// instances register as they launch.
type FleetSpec struct {
	Name             string
	LaunchTemplateID string
	TargetGroupARN   string
	SubnetIDs        []string
	MinSize          int
	MaxSize          int
	DesiredCapacity  int
	Tags             map[string]string
}

// FleetAPI manages the autoscaling group of connector instances.
type FleetAPI interface {
	// EnsureLaunchTemplate returns the launch template ID.
	EnsureLaunchTemplate(ctx context.Context, spec LaunchTemplateSpec) (string, error)
	EnsureFleet(ctx context.Context, spec FleetSpec) error
	DeleteFleet(ctx context.Context, name string) error
	DeleteLaunchTemplate(ctx context.Context, name string) error
}

// EndpointService is the published face of the gateway load balancer.
type EndpointService struct {
	ID          string
	ServiceName string
}

// EndpointServiceSpec publishes a gateway load balancer as an endpoint
// service.
type EndpointServiceSpec struct {
	Name    string
	GWLBARN string
	Tags    map[string]string
}

// EndpointSpec places one endpoint into a subnet.
type EndpointSpec struct {
	Name        string
	VPCID       string
	SubnetID    string
	ServiceName string
	Tags        map[string]string
}

// EndpointAPI publishes the load balancer as consumable endpoints.
type EndpointAPI interface {
	EnsureEndpointService(ctx context.Context, spec EndpointServiceSpec) (EndpointService, error)
	// EnsureEndpoint returns the endpoint ID.
	EnsureEndpoint(ctx context.Context, spec EndpointSpec) (string, error)
}

// ResolverRuleSpec forwards one domain at the deployment's endpoints.
type ResolverRuleSpec struct {
	Name               string
	Domain             string
	TargetIPs          []string
	ResolverEndpointID string
	Tags               map[string]string
}

// DNSAPI installs resolver rules redirecting DNS at the endpoints.
type DNSAPI interface {
	// EnsureResolverRule returns the rule ID.
	EnsureResolverRule(ctx context.Context, spec ResolverRuleSpec) (string, error)
	AssociateResolverRule(ctx context.Context, ruleID, vpcID, name string) error
}

// NetworkAPI discovers the VPC and connector subnets by tag.
type NetworkAPI interface {
	LookupVPC(ctx context.Context, tagKey, tagValue string) (string, error)
	LookupSubnets(ctx context.Context, vpcID, tagKey, tagValue string) ([]string, error)
}

// API combines every control-plane surface the deployment touches.
type API interface {
	LoadBalancerAPI
	FleetAPI
	EndpointAPI
	DNSAPI
	NetworkAPI
}
