package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configDir  = ".sqlab"
	configFile = "config"
	configType = "yaml"
)

// Load reads the configuration from ~/.sqlab/config.yaml.
// Returns an empty config if the file does not exist.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("config dir: %w", err)
	}

	viper.SetConfigName(configFile)
	viper.SetConfigType(configType)
	viper.AddConfigPath(dir)

	viper.SetDefault("preferences.theme", "default")

	cfg := &Config{}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to ~/.sqlab/config.yaml.
func Save(cfg *Config) error {
	dir, err := Dir()
	if err != nil {
		return fmt.Errorf("config dir: %w", err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	viper.Set("connections", cfg.Connections)
	viper.Set("preferences", cfg.Preferences)

	path := filepath.Join(dir, configFile+"."+configType)
	return viper.WriteConfigAs(path)
}

// SaveConnection stores a parsed connection profile and its password.
func SaveConnection(cfg *Config, conn Connection, password string) error {
	if cfg.HasConnection(conn.Name) {
		return nil
	}
	if password != "" {
		if err := SetPassword(conn.Name, password); err != nil {
			return fmt.Errorf("store password: %w", err)
		}
	}
	cfg.AddConnection(conn)
	return Save(cfg)
}

// Dir returns the configuration directory (~/.sqlab), which also holds
// the log file and default lab databases.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDir), nil
}
