package provision

import (
	"context"
	"fmt"
	"os"

	"github.com/nimbusgate/ccfleet/internal/observe"
	"github.com/nimbusgate/ccfleet/internal/plan"
	"github.com/nimbusgate/ccfleet/internal/platform/awscloud"
)

// Fleet holds the connector fleet handles.
type Fleet struct {
	Name             string
	LaunchTemplateID string
}

// provisionFleet creates the launch template and autoscaling group of
// connector instances. It depends on the validation gate: an
// incompatible compute profile must never reach the cloud.
func (d *Deployer) provisionFleet(ctx context.Context, in plan.Inputs) (any, error) {
	dep, err := deployment(in)
	if err != nil {
		return nil, err
	}
	net, err := network(in)
	if err != nil {
		return nil, err
	}
	support, err := plan.Get[Support](in, NodeSupport)
	if err != nil {
		return nil, err
	}
	lb, err := plan.Get[LoadBalancer](in, NodeLoadBalancer)
	if err != nil {
		return nil, err
	}

	payload, err := d.bootstrapPayload()
	if err != nil {
		return nil, err
	}

	ltID, err := d.cloud.EnsureLaunchTemplate(ctx, awscloud.LaunchTemplateSpec{
		Name:               dep.LaunchTemplate(),
		ImageID:            d.cfg.Fleet.ImageID,
		InstanceType:       d.cfg.ComputeProfile,
		BootstrapPayload:   payload,
		InstanceProfileARN: support.InstanceProfileARN,
		SecurityGroupIDs:   support.SecurityGroupIDs,
		Tags:               dep.Tags,
	})
	if err != nil {
		return nil, err
	}
	d.observer.Event(observe.Event{
		Type:     observe.EventResourceCreated,
		Node:     NodeFleet,
		Resource: dep.LaunchTemplate(),
	})

	if err := d.cloud.EnsureFleet(ctx, awscloud.FleetSpec{
		Name:             dep.Fleet(),
		LaunchTemplateID: ltID,
		TargetGroupARN:   lb.TargetGroupARN,
		SubnetIDs:        net.SubnetIDs,
		MinSize:          d.cfg.Fleet.MinSize,
		MaxSize:          d.cfg.Fleet.MaxSize,
		DesiredCapacity:  d.cfg.Fleet.DesiredCapacity,
		Tags:             dep.Tags,
	}); err != nil {
		return nil, err
	}
	d.observer.Event(observe.Event{
		Type:     observe.EventResourceCreated,
		Node:     NodeFleet,
		Resource: dep.Fleet(),
	})

	return Fleet{Name: dep.Fleet(), LaunchTemplateID: ltID}, nil
}

// bootstrapPayload reads the runtime-registration blob for the connector
// instances. The payload is opaque: it is handed to the launch template
// byte-for-byte, never parsed or rewritten.
func (d *Deployer) bootstrapPayload() ([]byte, error) {
	if d.cfg.BootstrapPayloadPath == "" {
		return nil, nil
	}
	payload, err := os.ReadFile(d.cfg.BootstrapPayloadPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read bootstrap payload: %w", err)
	}
	return payload, nil
}
