package commands

import (
	"github.com/spf13/cobra"

	"github.com/nimbusgate/ccfleet/cmd/ccfleet/handlers"
)

// Validate returns the configuration validation command.
func Validate() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a deployment configuration",
		Long: `Validate a deployment configuration.

Runs structural validation and the size-class/compute-profile
compatibility check, printing every error and warning found. Exits
non-zero when the configuration would be refused at apply.

Example:
  ccfleet validate -c production.yaml`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Validate(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
