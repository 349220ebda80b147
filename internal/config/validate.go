package config

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/nimbusgate/ccfleet/internal/identity"
	"github.com/nimbusgate/ccfleet/internal/sizeclass"
)

// ValidationError represents a configuration validation error or warning.
type ValidationError struct {
	Field    string
	Message  string
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == "error"
}

// Validate runs structural validation and returns every error and
// warning found. The size-class/compute-profile compatibility gate is
// not part of this: it runs as its own plan node so the executor can
// skip exactly the fleet branch.
func (cfg *Config) Validate() []ValidationError {
	var errs []ValidationError

	if cfg.NamePrefix == "" {
		errs = append(errs, ValidationError{
			Field:    "NamePrefix",
			Message:  "name prefix is required",
			Severity: "error",
		})
	} else if cfg.NamePrefix != strings.ToLower(cfg.NamePrefix) {
		errs = append(errs, ValidationError{
			Field:    "NamePrefix",
			Message:  "name prefix must be lowercase (downstream naming schemes forbid uppercase)",
			Severity: "error",
		})
	}

	if cfg.Owner == "" {
		errs = append(errs, ValidationError{
			Field:    "Owner",
			Message:  "owner tag is required",
			Severity: "error",
		})
	}

	if cfg.Region == "" {
		errs = append(errs, ValidationError{
			Field:    "Region",
			Message:  "region is required (e.g. 'eu-central-1')",
			Severity: "error",
		})
	}

	if cfg.Deployment != "" {
		dep, err := identity.FromName(cfg.Deployment, cfg.Owner, nil)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:    "Deployment",
				Message:  err.Error(),
				Severity: "error",
			})
		} else if dep.NamePrefix != cfg.NamePrefix {
			errs = append(errs, ValidationError{
				Field:    "Deployment",
				Message:  fmt.Sprintf("deployment %q does not belong to name prefix %q", cfg.Deployment, cfg.NamePrefix),
				Severity: "error",
			})
		}
	}

	class, err := sizeclass.Parse(cfg.SizeClass)
	if err != nil {
		errs = append(errs, ValidationError{
			Field:    "SizeClass",
			Message:  err.Error(),
			Severity: "error",
		})
	}

	if cfg.ComputeProfile == "" {
		errs = append(errs, ValidationError{
			Field:    "ComputeProfile",
			Message:  "compute profile is required",
			Severity: "error",
		})
	}

	errs = append(errs, validateAddresses(cfg.ServiceAddresses)...)

	// Populated slots beyond what the size class consumes are dropped
	// at registration time; warn here so the misconfiguration is
	// visible before apply.
	if err == nil {
		for slot, addrs := range [][]string{cfg.ServiceAddresses.Slot1, cfg.ServiceAddresses.Slot2, cfg.ServiceAddresses.Slot3} {
			if slot+1 > class.Interfaces() && len(addrs) > 0 {
				errs = append(errs, ValidationError{
					Field:    fmt.Sprintf("ServiceAddresses.Slot%d", slot+1),
					Message:  fmt.Sprintf("slot %d is populated but size class %q consumes only %d slot(s); addresses will be ignored", slot+1, class, class.Interfaces()),
					Severity: "warning",
				})
			}
		}
	}

	errs = append(errs, validateHealthCheck(cfg.HealthCheck)...)

	if !cfg.Network.explicit() && !cfg.Network.byTag() {
		errs = append(errs, ValidationError{
			Field:    "Network",
			Message:  "either vpc_id + subnet_ids or the vpc/subnet tag lookup must be set",
			Severity: "error",
		})
	}

	if cfg.Fleet.MinSize > cfg.Fleet.MaxSize {
		errs = append(errs, ValidationError{
			Field:    "Fleet",
			Message:  fmt.Sprintf("min_size %d exceeds max_size %d", cfg.Fleet.MinSize, cfg.Fleet.MaxSize),
			Severity: "error",
		})
	}
	if cfg.Fleet.DesiredCapacity < cfg.Fleet.MinSize || cfg.Fleet.DesiredCapacity > cfg.Fleet.MaxSize {
		errs = append(errs, ValidationError{
			Field:    "Fleet.DesiredCapacity",
			Message:  fmt.Sprintf("desired capacity %d outside [%d, %d]", cfg.Fleet.DesiredCapacity, cfg.Fleet.MinSize, cfg.Fleet.MaxSize),
			Severity: "error",
		})
	}

	return errs
}

func validateAddresses(sets ServiceAddresses) []ValidationError {
	var errs []ValidationError
	for slot, addrs := range [][]string{sets.Slot1, sets.Slot2, sets.Slot3} {
		for _, addr := range addrs {
			if _, err := netip.ParseAddr(addr); err != nil {
				errs = append(errs, ValidationError{
					Field:    fmt.Sprintf("ServiceAddresses.Slot%d", slot+1),
					Message:  fmt.Sprintf("invalid address %q", addr),
					Severity: "error",
				})
			}
		}
	}
	return errs
}

func validateHealthCheck(hc HealthCheck) []ValidationError {
	var errs []ValidationError

	if hc.Port < 1 || hc.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:    "HealthCheck.Port",
			Message:  fmt.Sprintf("port %d outside [1, 65535]", hc.Port),
			Severity: "error",
		})
	}
	if !strings.HasPrefix(hc.Path, "/") {
		errs = append(errs, ValidationError{
			Field:    "HealthCheck.Path",
			Message:  fmt.Sprintf("path %q must start with '/'", hc.Path),
			Severity: "error",
		})
	}
	if hc.IntervalSeconds < 5 || hc.IntervalSeconds > 300 {
		errs = append(errs, ValidationError{
			Field:    "HealthCheck.Interval",
			Message:  fmt.Sprintf("interval %ds outside [5s, 300s]", hc.IntervalSeconds),
			Severity: "error",
		})
	}
	for field, v := range map[string]int{
		"HealthCheck.HealthyThreshold":   hc.HealthyThreshold,
		"HealthCheck.UnhealthyThreshold": hc.UnhealthyThreshold,
	} {
		if v < 2 || v > 10 {
			errs = append(errs, ValidationError{
				Field:    field,
				Message:  fmt.Sprintf("threshold %d outside [2, 10]", v),
				Severity: "error",
			})
		}
	}

	return errs
}

func (n NetworkConfig) explicit() bool {
	return n.VPCID != "" && len(n.SubnetIDs) > 0
}

func (n NetworkConfig) byTag() bool {
	return n.VPCTagKey != "" && n.VPCTagValue != "" && n.SubnetTagKey != "" && n.SubnetTagValue != ""
}

// Class returns the parsed size class. Call only after Validate.
func (cfg *Config) Class() sizeclass.Class {
	class, _ := sizeclass.Parse(cfg.SizeClass)
	return class
}

// AddressSets converts the per-slot config lists into the registration
// engine's input shape.
func (cfg *Config) AddressSets() [sizeclass.MaxInterfaces][]string {
	return [sizeclass.MaxInterfaces][]string{
		cfg.ServiceAddresses.Slot1,
		cfg.ServiceAddresses.Slot2,
		cfg.ServiceAddresses.Slot3,
	}
}
