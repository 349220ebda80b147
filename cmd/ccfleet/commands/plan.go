package commands

import (
	"github.com/spf13/cobra"

	"github.com/nimbusgate/ccfleet/cmd/ccfleet/handlers"
)

// Plan returns the dry-run command.
//
// The plan command shows what apply would do without touching the
// cloud: the step execution order and the target registrations the size
// class policy would produce.
func Plan() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the provisioning plan without applying it",
		Long: `Show the provisioning plan without applying it.

Prints the step execution order and the target registrations implied by
the configured size class and service addresses. No cloud calls are
made; the registration delta against live state is only known at apply.

Example:
  ccfleet plan -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
