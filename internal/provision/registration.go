package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimbusgate/ccfleet/internal/metrics"
	"github.com/nimbusgate/ccfleet/internal/observe"
	"github.com/nimbusgate/ccfleet/internal/plan"
	"github.com/nimbusgate/ccfleet/internal/registration"
	"github.com/nimbusgate/ccfleet/internal/sizeclass"
)

// RegistrationResult is the outcome of one registration apply.
type RegistrationResult struct {
	Desired []registration.Registration
	Delta   registration.Delta
	Ignored []registration.IgnoredSlot
}

// applyRegistrations converges the target group membership on the set
// implied by the size class policy. Removals are applied before
// additions so a slot reshuffle never overshoots the group's capacity.
func (d *Deployer) applyRegistrations(ctx context.Context, in plan.Inputs) (any, error) {
	dep, err := deployment(in)
	if err != nil {
		return nil, err
	}
	class, err := plan.Get[sizeclass.Class](in, NodeValidate)
	if err != nil {
		return nil, err
	}
	lb, err := plan.Get[LoadBalancer](in, NodeLoadBalancer)
	if err != nil {
		return nil, err
	}

	desired, ignored := registration.Compute(class, d.cfg.AddressSets(), lb.TargetGroupARN)
	for _, ig := range ignored {
		metrics.SlotIgnored()
		d.observer.Event(observe.Event{
			Type:    observe.EventSlotIgnored,
			Node:    NodeRegistration,
			Message: fmt.Sprintf("slot %d holds %d address(es) but size class %q does not consume it", ig.Slot, ig.Addresses, class),
		})
	}

	previous, err := d.previousRegistrations(ctx, dep.StateRecordKey(), desired, lb.TargetGroupARN)
	if err != nil {
		return nil, err
	}

	delta := registration.Diff(previous, desired)
	if delta.Empty() {
		d.observer.Printf("registrations already converged (%d target(s))", len(desired))
		return RegistrationResult{Desired: desired, Delta: delta, Ignored: ignored}, nil
	}

	if len(delta.Remove) > 0 {
		if err := d.cloud.DeregisterTargets(ctx, lb.TargetGroupARN, registration.Addresses(delta.Remove)); err != nil {
			return nil, err
		}
		metrics.TargetsDeregistered(len(delta.Remove))
	}
	if len(delta.Add) > 0 {
		if err := d.cloud.RegisterTargets(ctx, lb.TargetGroupARN, registration.Addresses(delta.Add)); err != nil {
			// The delta applies as a unit: restore what was removed so
			// an interrupted apply never strands the group between two
			// policy states.
			if len(delta.Remove) > 0 {
				if rbErr := d.cloud.RegisterTargets(ctx, lb.TargetGroupARN, registration.Addresses(delta.Remove)); rbErr != nil {
					return nil, errors.Join(err, fmt.Errorf("rollback of %d removed target(s) failed: %w", len(delta.Remove), rbErr))
				}
				d.observer.Printf("rolled back %d removed target(s) after failed registration", len(delta.Remove))
			}
			return nil, err
		}
		metrics.TargetsRegistered(len(delta.Add))
	}
	d.observer.Printf("registered %d and deregistered %d target(s)", len(delta.Add), len(delta.Remove))

	if d.record != nil {
		if err := d.record.Save(ctx, dep.StateRecordKey(), desired); err != nil {
			return nil, err
		}
	}

	return RegistrationResult{Desired: desired, Delta: delta, Ignored: ignored}, nil
}

// previousRegistrations establishes the baseline for the diff: the state
// record when one exists, otherwise the live target group. Live targets
// carry no slot information, so addresses still desired inherit the
// desired slot and unknown addresses are marked for removal.
func (d *Deployer) previousRegistrations(ctx context.Context, key string, desired []registration.Registration, targetGroupARN string) ([]registration.Registration, error) {
	if d.record != nil {
		regs, err := d.record.Load(ctx, key)
		if err != nil {
			return nil, err
		}
		if regs != nil {
			return regs, nil
		}
	}

	live, err := d.cloud.ListTargets(ctx, targetGroupARN)
	if err != nil {
		return nil, err
	}

	slotOf := make(map[string]int, len(desired))
	for _, r := range desired {
		slotOf[r.Address] = r.Slot
	}

	previous := make([]registration.Registration, 0, len(live))
	for _, addr := range live {
		previous = append(previous, registration.Registration{
			TargetGroupID: targetGroupARN,
			Address:       addr,
			Slot:          slotOf[addr],
		})
	}
	return previous, nil
}
