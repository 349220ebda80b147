// Package main is the entry point for the ccfleet CLI.
//
// ccfleet provisions fleets of network security connectors behind a
// gateway load balancer: it generates a deployment identity, validates
// the size class against the compute profile, provisions the forwarding
// layer and autoscaling fleet, registers service addresses as targets,
// publishes consumption endpoints, and installs DNS redirection.
//
// Commands: apply, plan, validate, destroy, version.
//
// For detailed usage information, run:
//
//	ccfleet --help
package main

import (
	"fmt"
	"os"

	"github.com/nimbusgate/ccfleet/cmd/ccfleet/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
