package handlers

import (
	"errors"
	"fmt"

	"github.com/nimbusgate/ccfleet/internal/config"
	"github.com/nimbusgate/ccfleet/internal/sizeclass"
)

// Validate checks a configuration and prints every finding. It returns
// an error when apply would refuse the configuration.
func Validate(configPath string) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := reportFindings(cfg); err != nil {
		return err
	}

	fmt.Println("Configuration is valid.")
	return nil
}

// reportFindings prints validation findings and the compatibility check
// result, returning an error when any finding is fatal.
func reportFindings(cfg *config.Config) error {
	var failed bool
	for _, finding := range cfg.Validate() {
		fmt.Println(finding.Error())
		if finding.IsError() {
			failed = true
		}
	}
	if failed {
		return errors.New("configuration is invalid")
	}

	if result := sizeclass.ValidateProfile(cfg.Class(), cfg.ComputeProfile); !result.OK {
		fmt.Println(result.Diagnostic)
		return errors.New("configuration is invalid")
	}
	return nil
}
