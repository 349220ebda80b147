// Package config loads and validates the deployment configuration.
//
// Configuration is a single YAML file. Structural validation (required
// fields, address syntax, threshold ranges) lives here and reports
// every problem at once; the size-class/compute-profile compatibility
// gate is a separate pure check in the sizeclass package, consumed by
// the plan executor.
package config
