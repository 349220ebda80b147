package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimbusgate/ccfleet/internal/config"
	"github.com/nimbusgate/ccfleet/internal/identity"
	"github.com/nimbusgate/ccfleet/internal/metrics"
	"github.com/nimbusgate/ccfleet/internal/observe"
	"github.com/nimbusgate/ccfleet/internal/plan"
	"github.com/nimbusgate/ccfleet/internal/platform/awscloud"
	"github.com/nimbusgate/ccfleet/internal/registration"
	"github.com/nimbusgate/ccfleet/internal/sizeclass"
)

// Plan node names. Dependencies reference these, so they are part of the
// graph's wiring, not display strings.
const (
	NodeIdentity     = "identity"
	NodeValidate     = "validate"
	NodeNetwork      = "network"
	NodeSupport      = "support"
	NodeLoadBalancer = "loadbalancer"
	NodeRegistration = "registration"
	NodeFleet        = "fleet"
	NodeEndpoints    = "endpoints"
	NodeDNS          = "dns"
)

// RecordStore persists the last-applied registration set. Nil disables
// the record; the registration step then diffs against the live target
// group.
type RecordStore interface {
	Load(ctx context.Context, key string) ([]registration.Registration, error)
	Save(ctx context.Context, key string, regs []registration.Registration) error
}

// Deployer provisions one connector deployment.
type Deployer struct {
	cfg      *config.Config
	cloud    awscloud.API
	record   RecordStore
	observer observe.Observer
}

// NewDeployer creates a deployer. record may be nil.
func NewDeployer(cfg *config.Config, cloud awscloud.API, record RecordStore, observer observe.Observer) *Deployer {
	if observer == nil {
		observer = observe.Nop{}
	}
	return &Deployer{cfg: cfg, cloud: cloud, record: record, observer: observer}
}

// BuildGraph assembles the full deployment graph. The graph is rebuilt
// for every run; nodes close over the deployer, not over each other.
func (d *Deployer) BuildGraph() (*plan.Graph, error) {
	g := plan.New(d.observer)

	steps := []struct {
		name string
		deps []string
		run  plan.RunFunc
	}{
		{NodeIdentity, nil, d.generateIdentity},
		{NodeValidate, nil, d.validate},
		{NodeNetwork, nil, d.resolveNetwork},
		{NodeSupport, []string{NodeIdentity}, d.provisionSupport},
		{NodeLoadBalancer, []string{NodeIdentity, NodeNetwork}, d.provisionLoadBalancer},
		{NodeRegistration, []string{NodeIdentity, NodeValidate, NodeLoadBalancer}, d.applyRegistrations},
		{NodeFleet, []string{NodeIdentity, NodeValidate, NodeNetwork, NodeSupport, NodeLoadBalancer}, d.provisionFleet},
		{NodeEndpoints, []string{NodeIdentity, NodeNetwork, NodeLoadBalancer}, d.publishEndpoints},
		{NodeDNS, []string{NodeIdentity, NodeNetwork, NodeEndpoints}, d.redirectDNS},
	}

	for _, s := range steps {
		if err := g.Add(s.name, s.deps, s.run); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Apply executes the deployment plan. The report is returned even when
// execution fails, so callers can show per-node outcomes.
func (d *Deployer) Apply(ctx context.Context) (*plan.Report, error) {
	g, err := d.BuildGraph()
	if err != nil {
		return nil, err
	}
	return g.Execute(ctx)
}

// generateIdentity establishes the deployment identity. A configured
// deployment name is rebuilt so re-apply converges on the existing
// resources; the suffix is only drawn on the first apply, when no name
// exists yet.
func (d *Deployer) generateIdentity(_ context.Context, _ plan.Inputs) (any, error) {
	if d.cfg.Deployment != "" {
		dep, err := identity.FromName(d.cfg.Deployment, d.cfg.Owner, d.cfg.Tags)
		if err != nil {
			return nil, err
		}
		d.observer.Printf("resuming deployment %s", dep.Name())
		return dep, nil
	}
	dep, err := identity.Generate(d.cfg.NamePrefix, d.cfg.Owner, d.cfg.Tags)
	if err != nil {
		return nil, err
	}
	d.observer.Printf("deployment %s (pass --deployment %s to converge it later)", dep.Name(), dep.Name())
	return dep, nil
}

// validate runs structural validation and the size-class/compute-profile
// compatibility gate. Its failure skips exactly the branches that
// consume it: registrations and the fleet.
func (d *Deployer) validate(_ context.Context, _ plan.Inputs) (any, error) {
	var errs []error
	for _, finding := range d.cfg.Validate() {
		if finding.IsError() {
			d.observer.Event(observe.Event{
				Type:    observe.EventValidationFailed,
				Node:    NodeValidate,
				Message: finding.Error(),
			})
			errs = append(errs, finding)
			continue
		}
		d.observer.Printf("warning: %s", finding.Error())
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	class := d.cfg.Class()
	if result := sizeclass.ValidateProfile(class, d.cfg.ComputeProfile); !result.OK {
		metrics.ValidationFailed()
		d.observer.Event(observe.Event{
			Type:    observe.EventValidationFailed,
			Node:    NodeValidate,
			Message: result.Diagnostic,
		})
		return nil, errors.New(result.Diagnostic)
	}
	return class, nil
}

func deployment(in plan.Inputs) (*identity.Deployment, error) {
	return plan.Get[*identity.Deployment](in, NodeIdentity)
}

func network(in plan.Inputs) (Network, error) {
	return plan.Get[Network](in, NodeNetwork)
}

// Destroy tears down the deployment's own resources in reverse
// dependency order. Endpoint services and resolver rules are associated
// with consumer VPCs and are left to their owners; everything the fleet
// branch created is removed. Teardown is best effort: every step runs
// and the errors are joined.
func (d *Deployer) Destroy(ctx context.Context, name string) error {
	dep, err := identity.FromName(name, d.cfg.Owner, d.cfg.Tags)
	if err != nil {
		return err
	}

	var errs []error
	step := func(what string, fn func() error) {
		if err := fn(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", what, err))
			return
		}
		d.observer.Event(observe.Event{Type: observe.EventResourceRemoved, Resource: what})
	}

	step(dep.Fleet(), func() error { return d.cloud.DeleteFleet(ctx, dep.Fleet()) })
	step(dep.LaunchTemplate(), func() error { return d.cloud.DeleteLaunchTemplate(ctx, dep.LaunchTemplate()) })
	// The load balancer goes before the target group: a group cannot be
	// deleted while a listener still forwards to it.
	step(dep.GatewayLoadBalancer(), func() error { return d.cloud.DeleteLoadBalancer(ctx, dep.GatewayLoadBalancer()) })
	step(dep.TargetGroup(), func() error { return d.cloud.DeleteTargetGroup(ctx, dep.TargetGroup()) })

	return errors.Join(errs...)
}
