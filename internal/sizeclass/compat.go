package sizeclass

import (
	"fmt"
	"sort"
	"strings"
)

// compatTable maps each tier to the compute profiles it supports.
// Small connectors run a single service interface and fit on general
// purpose instances; medium and large tiers need the additional ENI
// capacity of bigger instances.
var compatTable = map[Class]map[string]bool{
	Small: {
		"t3.medium": true,
		"m5.large":  true,
		"m5n.large": true,
		"c5.large":  true,
	},
	Medium: {
		"m5.2xlarge":  true,
		"m5n.2xlarge": true,
		"c5.2xlarge":  true,
	},
	Large: {
		"m5.4xlarge":  true,
		"m5n.4xlarge": true,
		"c5.4xlarge":  true,
	},
}

// Result is the outcome of a compatibility check. It is a pure function
// of its inputs; the plan executor uses it to gate the fleet branch.
type Result struct {
	OK         bool
	Diagnostic string
}

// CompatError is returned when a compute profile is not allowed for the
// chosen size class. The fleet branch must not run once this surfaces.
type CompatError struct {
	Class   Class
	Profile string
}

func (e *CompatError) Error() string {
	return fmt.Sprintf("compute profile %q is not supported for size class %q (allowed: %s)",
		e.Profile, e.Class, strings.Join(allowedProfiles(e.Class), ", "))
}

// ValidateProfile checks a (size class, compute profile) pairing against
// the static compatibility table.
func ValidateProfile(class Class, profile string) Result {
	allowed, ok := compatTable[class]
	if !ok {
		return Result{OK: false, Diagnostic: fmt.Sprintf("unknown size class %q", class)}
	}
	if !allowed[profile] {
		return Result{OK: false, Diagnostic: (&CompatError{Class: class, Profile: profile}).Error()}
	}
	return Result{OK: true}
}

// allowedProfiles returns the sorted profile list for a class, for
// diagnostics.
func allowedProfiles(class Class) []string {
	profiles := make([]string, 0, len(compatTable[class]))
	for p := range compatTable[class] {
		profiles = append(profiles, p)
	}
	sort.Strings(profiles)
	return profiles
}
