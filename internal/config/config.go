// Package config loads the FlowPilot settings from .flowpilot.yaml, FLOWPILOT_*
// environment variables and command line flags.
package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/askiada/go-flowpilot/internal/imports"
)

// EnvPrefix prefixes the environment variables overriding the settings.
const EnvPrefix = "FLOWPILOT"

// Config holds the runtime settings of the flowpilot command.
type Config struct {
	Project         string   `mapstructure:"project"`
	OutputDir       string   `mapstructure:"output_dir"`
	ScanRoot        string   `mapstructure:"scan_root"`
	Categories      []string `mapstructure:"categories"`
	ScanWorkers     int      `mapstructure:"scan_workers"`
	AnchoredImports bool     `mapstructure:"anchored_imports"`
	Verbose         bool     `mapstructure:"verbose"`
}

// Init points viper at cfgFile, or at .flowpilot.yaml in the working directory
// and then the home directory. A missing config file is not an error.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".flowpilot")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}

		return errors.Wrap(err, "unable to read config")
	}

	return nil
}

// Load reads the settings from viper, applying defaults for any value not set
// by the config file, the environment or flags.
func Load() (Config, error) {
	viper.SetDefault("project", "flowpilot")
	viper.SetDefault("output_dir", "")
	viper.SetDefault("scan_root", ".")
	viper.SetDefault("anchored_imports", false)
	viper.SetDefault("scan_workers", imports.DefaultWorkers)
	viper.SetDefault("categories", []string{})
	viper.SetDefault("verbose", false)

	var cfg Config

	err := viper.Unmarshal(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(err, "unable to decode config")
	}

	return cfg, nil
}
