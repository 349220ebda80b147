package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Defaults applied when the file leaves a field unset.
const (
	DefaultHealthCheckPort     = 80
	DefaultHealthCheckPath     = "/healthz"
	DefaultHealthCheckInterval = 10
	DefaultHealthyThreshold    = 3
	DefaultUnhealthyThreshold  = 3
	DefaultFleetMinSize        = 1
	DefaultFleetMaxSize        = 3
	DefaultBastionKeyBits      = 4096
)

// LoadFile reads and parses the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Load(data)
}

// Load parses configuration from YAML bytes and applies defaults.
func Load(data []byte) (*Config, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	if err := mapstructure.Decode(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HealthCheck.Port == 0 {
		cfg.HealthCheck.Port = DefaultHealthCheckPort
	}
	if cfg.HealthCheck.Path == "" {
		cfg.HealthCheck.Path = DefaultHealthCheckPath
	}
	if cfg.HealthCheck.IntervalSeconds == 0 {
		cfg.HealthCheck.IntervalSeconds = DefaultHealthCheckInterval
	}
	if cfg.HealthCheck.HealthyThreshold == 0 {
		cfg.HealthCheck.HealthyThreshold = DefaultHealthyThreshold
	}
	if cfg.HealthCheck.UnhealthyThreshold == 0 {
		cfg.HealthCheck.UnhealthyThreshold = DefaultUnhealthyThreshold
	}
	if cfg.Fleet.MinSize == 0 {
		cfg.Fleet.MinSize = DefaultFleetMinSize
	}
	if cfg.Fleet.MaxSize == 0 {
		cfg.Fleet.MaxSize = DefaultFleetMaxSize
	}
	if cfg.Fleet.DesiredCapacity == 0 {
		cfg.Fleet.DesiredCapacity = cfg.Fleet.MinSize
	}
	if cfg.Support.BastionKeyBits == 0 {
		cfg.Support.BastionKeyBits = DefaultBastionKeyBits
	}
}
