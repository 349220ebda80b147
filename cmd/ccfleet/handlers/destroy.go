package handlers

import (
	"context"
	"fmt"
	"log"
)

// Destroy tears down the named deployment. The configuration supplies
// the region and owner; the deployment name supplies everything else.
func Destroy(ctx context.Context, configPath, name string, jsonLogs bool) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	observer, err := newObserver(jsonLogs)
	if err != nil {
		return err
	}

	cloud, err := newCloudClient(ctx, cfg.Region)
	if err != nil {
		return err
	}

	log.Printf("Destroying deployment %s in %s", name, cfg.Region)

	if err := newDeployer(cfg, cloud, nil, observer).Destroy(ctx, name); err != nil {
		return fmt.Errorf("teardown incomplete: %w", err)
	}

	log.Printf("Deployment %s destroyed", name)
	return nil
}
