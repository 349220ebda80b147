// Package handlers implements the business logic for CLI commands.
//
// Handlers are framework-agnostic and can be tested independently of
// the CLI framework. External constructors are factory variables so
// tests can inject fakes.
package handlers

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/nimbusgate/ccfleet/internal/config"
	"github.com/nimbusgate/ccfleet/internal/observe"
	"github.com/nimbusgate/ccfleet/internal/plan"
	"github.com/nimbusgate/ccfleet/internal/platform/awscloud"
	"github.com/nimbusgate/ccfleet/internal/provision"
	"github.com/nimbusgate/ccfleet/internal/staterec"
)

// Deployer interface for testing - matches provision.Deployer.
type Deployer interface {
	Apply(ctx context.Context) (*plan.Report, error)
	BuildGraph() (*plan.Graph, error)
	Destroy(ctx context.Context, name string) error
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file.
	loadConfigFile = config.LoadFile

	// newCloudClient creates the AWS-backed platform client.
	newCloudClient = func(ctx context.Context, region string) (awscloud.API, error) {
		return awscloud.NewClient(ctx, region)
	}

	// newRecordStore creates the S3-backed state record store.
	newRecordStore = func(ctx context.Context, region, bucket string) (provision.RecordStore, error) {
		return staterec.NewFromRegion(ctx, region, bucket)
	}

	// newDeployer creates a deployer over the platform client.
	newDeployer = func(cfg *config.Config, cloud awscloud.API, record provision.RecordStore, observer observe.Observer) Deployer {
		return provision.NewDeployer(cfg, cloud, record, observer)
	}

	// newObserver selects the progress output format.
	newObserver = func(jsonLogs bool) (observe.Observer, error) {
		if !jsonLogs {
			return observe.NewConsoleObserver(), nil
		}
		logger, err := zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		return observe.NewZapObserver(logger), nil
	}
)

// Apply provisions or updates a connector deployment. A non-empty
// deployment name converges that existing deployment instead of
// minting a new identity.
//
// The full plan runs even when a step fails: independent branches
// complete, dependent steps are skipped, and the per-step outcome is
// printed before the error is returned.
func Apply(ctx context.Context, configPath, deployment string, jsonLogs bool) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if deployment != "" {
		cfg.Deployment = deployment
	}

	observer, err := newObserver(jsonLogs)
	if err != nil {
		return err
	}

	cloud, err := newCloudClient(ctx, cfg.Region)
	if err != nil {
		return err
	}

	record, err := recordStore(ctx, cfg)
	if err != nil {
		return err
	}

	log.Printf("Applying deployment %s (%s/%s) in %s", cfg.NamePrefix, cfg.SizeClass, cfg.ComputeProfile, cfg.Region)

	report, applyErr := newDeployer(cfg, cloud, record, observer).Apply(ctx)
	if report != nil {
		printReport(report)
	}
	return applyErr
}

// recordStore builds the state record store when one is configured. The
// record bucket may live in a different region than the deployment.
func recordStore(ctx context.Context, cfg *config.Config) (provision.RecordStore, error) {
	if !cfg.StateRecord.Enabled() {
		return nil, nil
	}
	region := cfg.StateRecord.Region
	if region == "" {
		region = cfg.Region
	}
	return newRecordStore(ctx, region, cfg.StateRecord.Bucket)
}

func printReport(report *plan.Report) {
	fmt.Println()
	for _, node := range report.Nodes() {
		fmt.Printf("  %-14s %s\n", node, report.Status(node))
	}
}
