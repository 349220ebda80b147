package commands

import (
	"github.com/spf13/cobra"

	"github.com/nimbusgate/ccfleet/cmd/ccfleet/handlers"
)

// Destroy returns the teardown command.
//
// Destroy removes the deployment's fleet and forwarding layer in
// dependency order: autoscaling group, launch template, gateway load
// balancer, target group. Endpoint services and resolver rules are
// associated with consumer VPCs and are left to their owners.
func Destroy() *cobra.Command {
	var configPath string
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "destroy <deployment-name>",
		Args:  cobra.ExactArgs(1),
		Short: "Tear down a connector deployment",
		Long: `Tear down a connector deployment.

The deployment name is the canonical prefix-suffix name printed by
apply, e.g. edge-x7k2p9. Teardown is best effort: every step runs and
all failures are reported together.

Example:
  ccfleet destroy edge-x7k2p9 -c production.yaml

WARNING: This operation is irreversible.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Destroy(cmd.Context(), configPath, args[0], logJSON)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (required)")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Emit structured JSON logs")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
