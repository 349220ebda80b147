package provision

import (
	"context"

	"github.com/nimbusgate/ccfleet/internal/observe"
	"github.com/nimbusgate/ccfleet/internal/plan"
	"github.com/nimbusgate/ccfleet/internal/platform/awscloud"
)

// LoadBalancer holds the forwarding layer handles consumed downstream.
type LoadBalancer struct {
	LoadBalancerARN string
	TargetGroupARN  string
}

func (d *Deployer) provisionLoadBalancer(ctx context.Context, in plan.Inputs) (any, error) {
	dep, err := deployment(in)
	if err != nil {
		return nil, err
	}
	net, err := network(in)
	if err != nil {
		return nil, err
	}

	lbARN, err := d.cloud.EnsureGatewayLoadBalancer(ctx, awscloud.GatewayLoadBalancerSpec{
		Name:      dep.GatewayLoadBalancer(),
		SubnetIDs: net.SubnetIDs,
		CrossZone: d.cfg.CrossZoneEnabled,
		Tags:      dep.Tags,
	})
	if err != nil {
		return nil, err
	}
	d.observer.Event(observe.Event{
		Type:     observe.EventResourceCreated,
		Node:     NodeLoadBalancer,
		Resource: dep.GatewayLoadBalancer(),
	})

	tgARN, err := d.cloud.EnsureTargetGroup(ctx, awscloud.TargetGroupSpec{
		Name:  dep.TargetGroup(),
		VPCID: net.VPCID,
		HealthCheck: awscloud.HealthCheckSpec{
			Port:               d.cfg.HealthCheck.Port,
			Path:               d.cfg.HealthCheck.Path,
			IntervalSeconds:    d.cfg.HealthCheck.IntervalSeconds,
			HealthyThreshold:   d.cfg.HealthCheck.HealthyThreshold,
			UnhealthyThreshold: d.cfg.HealthCheck.UnhealthyThreshold,
		},
		Tags: dep.Tags,
	})
	if err != nil {
		return nil, err
	}
	d.observer.Event(observe.Event{
		Type:     observe.EventResourceCreated,
		Node:     NodeLoadBalancer,
		Resource: dep.TargetGroup(),
	})

	return LoadBalancer{LoadBalancerARN: lbARN, TargetGroupARN: tgARN}, nil
}
