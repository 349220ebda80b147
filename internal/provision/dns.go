package provision

import (
	"context"

	"github.com/nimbusgate/ccfleet/internal/observe"
	"github.com/nimbusgate/ccfleet/internal/plan"
	"github.com/nimbusgate/ccfleet/internal/platform/awscloud"
)

// DNS holds the installed redirection rules.
type DNS struct {
	RuleIDs []string
}

// redirectDNS installs one forward rule per configured domain, pointing
// resolution at the slot-1 service addresses behind the published
// endpoints, and associates each rule with the deployment VPC. With no
// domains configured the step is a no-op.
func (d *Deployer) redirectDNS(ctx context.Context, in plan.Inputs) (any, error) {
	if len(d.cfg.DNS.Domains) == 0 {
		return DNS{}, nil
	}

	dep, err := deployment(in)
	if err != nil {
		return nil, err
	}
	net, err := network(in)
	if err != nil {
		return nil, err
	}
	// The endpoints dependency orders this step after publication; rules
	// must not redirect traffic at a surface that does not exist yet.
	if _, err := plan.Get[Endpoints](in, NodeEndpoints); err != nil {
		return nil, err
	}

	ruleIDs := make([]string, 0, len(d.cfg.DNS.Domains))
	for i, domain := range d.cfg.DNS.Domains {
		name := dep.ResolverRule(i)
		ruleID, err := d.cloud.EnsureResolverRule(ctx, awscloud.ResolverRuleSpec{
			Name:               name,
			Domain:             domain,
			TargetIPs:          d.cfg.ServiceAddresses.Slot1,
			ResolverEndpointID: d.cfg.DNS.ResolverEndpointID,
			Tags:               dep.Tags,
		})
		if err != nil {
			return nil, err
		}

		if err := d.cloud.AssociateResolverRule(ctx, ruleID, net.VPCID, name); err != nil {
			return nil, err
		}
		d.observer.Event(observe.Event{
			Type:     observe.EventResourceCreated,
			Node:     NodeDNS,
			Resource: name,
			Fields:   map[string]string{"domain": domain},
		})
		ruleIDs = append(ruleIDs, ruleID)
	}

	return DNS{RuleIDs: ruleIDs}, nil
}
