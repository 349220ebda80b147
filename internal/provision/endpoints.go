package provision

import (
	"context"
	"fmt"

	"github.com/nimbusgate/ccfleet/internal/observe"
	"github.com/nimbusgate/ccfleet/internal/plan"
	"github.com/nimbusgate/ccfleet/internal/platform/awscloud"
	"github.com/nimbusgate/ccfleet/internal/util/async"
)

// Endpoints is the published consumption surface of the deployment.
type Endpoints struct {
	Service     awscloud.EndpointService
	EndpointIDs []string
}

// publishEndpoints exposes the gateway load balancer as an endpoint
// service and places one endpoint per connector subnet. Subnets are
// independent, so endpoint placement fans out concurrently.
func (d *Deployer) publishEndpoints(ctx context.Context, in plan.Inputs) (any, error) {
	dep, err := deployment(in)
	if err != nil {
		return nil, err
	}
	net, err := network(in)
	if err != nil {
		return nil, err
	}
	lb, err := plan.Get[LoadBalancer](in, NodeLoadBalancer)
	if err != nil {
		return nil, err
	}

	service, err := d.cloud.EnsureEndpointService(ctx, awscloud.EndpointServiceSpec{
		Name:    dep.EndpointService(),
		GWLBARN: lb.LoadBalancerARN,
		Tags:    dep.Tags,
	})
	if err != nil {
		return nil, err
	}
	d.observer.Event(observe.Event{
		Type:     observe.EventResourceCreated,
		Node:     NodeEndpoints,
		Resource: service.ServiceName,
	})

	endpointIDs := make([]string, len(net.SubnetIDs))
	tasks := make([]async.Task, 0, len(net.SubnetIDs))
	for i, subnetID := range net.SubnetIDs {
		name := dep.Endpoint(i)
		tasks = append(tasks, async.Task{
			Name: name,
			Func: func(ctx context.Context) error {
				id, err := d.cloud.EnsureEndpoint(ctx, awscloud.EndpointSpec{
					Name:        name,
					VPCID:       net.VPCID,
					SubnetID:    subnetID,
					ServiceName: service.ServiceName,
					Tags:        dep.Tags,
				})
				if err != nil {
					return err
				}
				endpointIDs[i] = id
				d.observer.Event(observe.Event{
					Type:     observe.EventResourceCreated,
					Node:     NodeEndpoints,
					Resource: name,
				})
				return nil
			},
		})
	}
	if err := async.Run(ctx, tasks); err != nil {
		return nil, fmt.Errorf("failed to place endpoints: %w", err)
	}

	return Endpoints{Service: service, EndpointIDs: endpointIDs}, nil
}
