package awscloud

import "context"

// Mock is a function-field implementation of API for tests.
type Mock struct {
	EnsureGatewayLoadBalancerFunc func(ctx context.Context, spec GatewayLoadBalancerSpec) (string, error)
	EnsureTargetGroupFunc         func(ctx context.Context, spec TargetGroupSpec) (string, error)
	ListTargetsFunc               func(ctx context.Context, targetGroupARN string) ([]string, error)
	RegisterTargetsFunc           func(ctx context.Context, targetGroupARN string, addresses []string) error
	DeregisterTargetsFunc         func(ctx context.Context, targetGroupARN string, addresses []string) error
	DeleteLoadBalancerFunc        func(ctx context.Context, name string) error
	DeleteTargetGroupFunc         func(ctx context.Context, name string) error

	EnsureLaunchTemplateFunc func(ctx context.Context, spec LaunchTemplateSpec) (string, error)
	EnsureFleetFunc          func(ctx context.Context, spec FleetSpec) error
	DeleteFleetFunc          func(ctx context.Context, name string) error
	DeleteLaunchTemplateFunc func(ctx context.Context, name string) error

	EnsureEndpointServiceFunc func(ctx context.Context, spec EndpointServiceSpec) (EndpointService, error)
	EnsureEndpointFunc        func(ctx context.Context, spec EndpointSpec) (string, error)

	EnsureResolverRuleFunc    func(ctx context.Context, spec ResolverRuleSpec) (string, error)
	AssociateResolverRuleFunc func(ctx context.Context, ruleID, vpcID, name string) error

	LookupVPCFunc     func(ctx context.Context, tagKey, tagValue string) (string, error)
	LookupSubnetsFunc func(ctx context.Context, vpcID, tagKey, tagValue string) ([]string, error)
}

var _ API = (*Mock)(nil)

func (m *Mock) EnsureGatewayLoadBalancer(ctx context.Context, spec GatewayLoadBalancerSpec) (string, error) {
	return m.EnsureGatewayLoadBalancerFunc(ctx, spec)
}

func (m *Mock) EnsureTargetGroup(ctx context.Context, spec TargetGroupSpec) (string, error) {
	return m.EnsureTargetGroupFunc(ctx, spec)
}

func (m *Mock) ListTargets(ctx context.Context, targetGroupARN string) ([]string, error) {
	return m.ListTargetsFunc(ctx, targetGroupARN)
}

func (m *Mock) RegisterTargets(ctx context.Context, targetGroupARN string, addresses []string) error {
	return m.RegisterTargetsFunc(ctx, targetGroupARN, addresses)
}

func (m *Mock) DeregisterTargets(ctx context.Context, targetGroupARN string, addresses []string) error {
	return m.DeregisterTargetsFunc(ctx, targetGroupARN, addresses)
}

func (m *Mock) DeleteLoadBalancer(ctx context.Context, name string) error {
	return m.DeleteLoadBalancerFunc(ctx, name)
}

func (m *Mock) DeleteTargetGroup(ctx context.Context, name string) error {
	return m.DeleteTargetGroupFunc(ctx, name)
}

func (m *Mock) EnsureLaunchTemplate(ctx context.Context, spec LaunchTemplateSpec) (string, error) {
	return m.EnsureLaunchTemplateFunc(ctx, spec)
}

func (m *Mock) EnsureFleet(ctx context.Context, spec FleetSpec) error {
	return m.EnsureFleetFunc(ctx, spec)
}

func (m *Mock) DeleteFleet(ctx context.Context, name string) error {
	return m.DeleteFleetFunc(ctx, name)
}

func (m *Mock) DeleteLaunchTemplate(ctx context.Context, name string) error {
	return m.DeleteLaunchTemplateFunc(ctx, name)
}

func (m *Mock) EnsureEndpointService(ctx context.Context, spec EndpointServiceSpec) (EndpointService, error) {
	return m.EnsureEndpointServiceFunc(ctx, spec)
}

func (m *Mock) EnsureEndpoint(ctx context.Context, spec EndpointSpec) (string, error) {
	return m.EnsureEndpointFunc(ctx, spec)
}

func (m *Mock) EnsureResolverRule(ctx context.Context, spec ResolverRuleSpec) (string, error) {
	return m.EnsureResolverRuleFunc(ctx, spec)
}

func (m *Mock) AssociateResolverRule(ctx context.Context, ruleID, vpcID, name string) error {
	return m.AssociateResolverRuleFunc(ctx, ruleID, vpcID, name)
}

func (m *Mock) LookupVPC(ctx context.Context, tagKey, tagValue string) (string, error) {
	return m.LookupVPCFunc(ctx, tagKey, tagValue)
}

func (m *Mock) LookupSubnets(ctx context.Context, vpcID, tagKey, tagValue string) ([]string, error) {
	return m.LookupSubnetsFunc(ctx, vpcID, tagKey, tagValue)
}
