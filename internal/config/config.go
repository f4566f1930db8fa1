// Package config loads and saves the side configuration file holding the
// default data file path.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

const (
	// DefaultPath is where the config file lives unless overridden.
	DefaultPath = "config.json"

	// DefaultDataFile is used when no config file exists yet.
	DefaultDataFile = "students.csv"
)

type Config struct {
	DefaultFilePath string `mapstructure:"default_file_path"`
}

// Load reads the config file at path. A missing file is not an error; the
// returned config then carries the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault("default_file_path", DefaultDataFile)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config back to path.
func Save(path string, cfg *Config) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.Set("default_file_path", cfg.DefaultFilePath)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
