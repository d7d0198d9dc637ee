package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Gateway modes.
const (
	ModeREST   = "rest"
	ModeSQLite = "sqlite"
)

// Config defines client configuration.
type Config struct {
	Gateway GatewayConfig `yaml:"gateway"`
	Log     LogConfig     `yaml:"log"`
}

type GatewayConfig struct {
	Mode   string `yaml:"mode"`
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
	DBPath string `yaml:"db_path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment
// variables.
func Load() (Config, error) {
	cfg := Config{
		Gateway: GatewayConfig{
			Mode:   ModeSQLite,
			DBPath: "trackline.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("TRACKLINE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if mode := os.Getenv("TRACKLINE_GATEWAY_MODE"); mode != "" {
		cfg.Gateway.Mode = mode
	}
	if url := os.Getenv("TRACKLINE_GATEWAY_URL"); url != "" {
		cfg.Gateway.URL = url
	}
	if key := os.Getenv("TRACKLINE_API_KEY"); key != "" {
		cfg.Gateway.APIKey = key
	}
	if dbPath := os.Getenv("TRACKLINE_DB_PATH"); dbPath != "" {
		cfg.Gateway.DBPath = dbPath
	}
	if level := os.Getenv("TRACKLINE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	switch cfg.Gateway.Mode {
	case ModeREST:
		if cfg.Gateway.URL == "" {
			return Config{}, fmt.Errorf("gateway mode %q requires a url", ModeREST)
		}
	case ModeSQLite:
	default:
		return Config{}, fmt.Errorf("unknown gateway mode %q", cfg.Gateway.Mode)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
