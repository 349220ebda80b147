package commands

import (
	"github.com/spf13/cobra"

	"github.com/nimbusgate/ccfleet/cmd/ccfleet/handlers"
)

// Apply returns the command for provisioning a connector deployment.
//
// Required flags:
//
//	--config, -c: Path to the deployment configuration YAML file
//
// Optional flags:
//
//	--deployment: Name of an existing deployment to converge
//	--log-json: Emit structured JSON logs instead of console output
func Apply() *cobra.Command {
	var configPath string
	var deployment string
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update a connector deployment",
		Long: `Create or update a connector deployment.

This command executes the full provisioning plan: deployment identity,
gateway load balancer, target group, connector fleet, target
registrations, consumption endpoints, and DNS redirection. Steps with
unmet dependencies are skipped; everything else runs to completion.

The first apply mints a new deployment identity and prints its name.
Re-applying with --deployment (or the deployment field in the
configuration) converges that deployment: existing resources are
reused and only the target registration delta is applied.

Examples:
  # Provision a new deployment
  ccfleet apply -c production.yaml

  # Converge an existing deployment
  ccfleet apply -c production.yaml --deployment edge-x7k2p9

  # Structured logs for CI
  ccfleet apply -c production.yaml --log-json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath, deployment, logJSON)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (required)")
	cmd.Flags().StringVar(&deployment, "deployment", "", "Name of an existing deployment to converge")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Emit structured JSON logs")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
