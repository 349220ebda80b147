package registration

import (
	"github.com/nimbusgate/ccfleet/internal/sizeclass"
)

// AddressSets holds one ordered address list per service-interface
// slot. Index 0 is slot 1. Only the slots implied by the size class are
// consumed; the rest may be populated but never produce registrations.
type AddressSets [sizeclass.MaxInterfaces][]string

// Registration is one (target group, address) membership. It is
// produced once and never mutated.
type Registration struct {
	TargetGroupID string `json:"targetGroupId"`
	Address       string `json:"address"`
	Slot          int    `json:"slot"` // 1-based service-interface slot
}

// IgnoredSlot reports a populated address slot that the size class does
// not consume. Deliberately non-fatal: the addresses are dropped, not
// registered, and the condition is surfaced for operability.
type IgnoredSlot struct {
	Slot      int
	Addresses int
}

// Compute returns the registrations implied by the size class policy
// table:
//
//	small  -> slot 1
//	medium -> slots 1-2
//	large  -> slots 1-3
//
// Output order is slot 1 before slot 2 before slot 3, insertion order
// within a slot. Empty slots yield zero registrations without error.
func Compute(class sizeclass.Class, sets AddressSets, targetGroupID string) ([]Registration, []IgnoredSlot) {
	consumed := class.Interfaces()

	var regs []Registration
	var ignored []IgnoredSlot

	for i, addrs := range sets {
		slot := i + 1
		if slot > consumed {
			if len(addrs) > 0 {
				ignored = append(ignored, IgnoredSlot{Slot: slot, Addresses: len(addrs)})
			}
			continue
		}
		for _, addr := range addrs {
			regs = append(regs, Registration{
				TargetGroupID: targetGroupID,
				Address:       addr,
				Slot:          slot,
			})
		}
	}

	return regs, ignored
}

// Delta is the exact change set between a previously applied
// registration set and a desired one. Add preserves desired order,
// Remove preserves previous order, so applying a delta is as
// deterministic as computing one.
type Delta struct {
	Add    []Registration
	Remove []Registration
}

// Empty reports whether applying the delta would be a no-op.
func (d Delta) Empty() bool {
	return len(d.Add) == 0 && len(d.Remove) == 0
}

// Diff computes the delta that turns previous into desired.
// Registrations are keyed by (address, slot); the target group handle
// is carried through unchanged.
func Diff(previous, desired []Registration) Delta {
	type key struct {
		address string
		slot    int
	}

	prevSet := make(map[key]bool, len(previous))
	for _, r := range previous {
		prevSet[key{r.Address, r.Slot}] = true
	}
	wantSet := make(map[key]bool, len(desired))
	for _, r := range desired {
		wantSet[key{r.Address, r.Slot}] = true
	}

	var delta Delta
	for _, r := range desired {
		if !prevSet[key{r.Address, r.Slot}] {
			delta.Add = append(delta.Add, r)
		}
	}
	for _, r := range previous {
		if !wantSet[key{r.Address, r.Slot}] {
			delta.Remove = append(delta.Remove, r)
		}
	}
	return delta
}

// Addresses projects a registration sequence onto its addresses,
// preserving order. Used when applying a delta against the target
// group API, which speaks plain addresses.
func Addresses(regs []Registration) []string {
	addrs := make([]string, 0, len(regs))
	for _, r := range regs {
		addrs = append(addrs, r.Address)
	}
	return addrs
}
