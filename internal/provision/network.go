package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimbusgate/ccfleet/internal/plan"
)

// ErrDependencyUnavailable marks an upstream handle that resolved empty
// or unusable. The consuming branch must not proceed on it.
var ErrDependencyUnavailable = errors.New("dependency unavailable")

// Network is the resolved placement of the deployment.
type Network struct {
	VPCID     string
	SubnetIDs []string
}

// resolveNetwork resolves the VPC and connector subnets, either from
// explicit IDs or by tag lookup. The network is a hard dependency:
// without subnets nothing downstream can be placed.
func (d *Deployer) resolveNetwork(ctx context.Context, _ plan.Inputs) (any, error) {
	nc := d.cfg.Network

	if nc.VPCID != "" && len(nc.SubnetIDs) > 0 {
		return Network{VPCID: nc.VPCID, SubnetIDs: nc.SubnetIDs}, nil
	}

	vpcID, err := d.cloud.LookupVPC(ctx, nc.VPCTagKey, nc.VPCTagValue)
	if err != nil {
		return nil, err
	}

	subnetIDs, err := d.cloud.LookupSubnets(ctx, vpcID, nc.SubnetTagKey, nc.SubnetTagValue)
	if err != nil {
		return nil, err
	}
	if len(subnetIDs) == 0 {
		return nil, fmt.Errorf("%w: no connector subnets tagged %s=%s in %s", ErrDependencyUnavailable, nc.SubnetTagKey, nc.SubnetTagValue, vpcID)
	}

	d.observer.Printf("resolved %s with %d connector subnet(s)", vpcID, len(subnetIDs))
	return Network{VPCID: vpcID, SubnetIDs: subnetIDs}, nil
}
