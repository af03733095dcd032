package config

import (
	"path/filepath"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

var AppFs = afero.NewOsFs()

// Config holds the relq CLI's configuration.
type Config struct {
	DatabaseURL       string
	Provider          string
	TelemetryDisabled bool
	Debug             bool
}

// LoadConfig reads one config file: the first of ./.relq.yaml, ~/.relq.yaml
// and ~/.config/relq/.relq.yaml that exists, or else
// ~/.config/relq/relq.yaml (the file SaveConfig writes). RELQ_-prefixed
// environment variables override the file. A .env file sets environment
// variables that are not already set; a .env.local file sets them even when
// they are.
func LoadConfig() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".relq")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "relq"))

	viper.SetEnvPrefix("RELQ")
	viper.AutomaticEnv()

	viper.SetDefault("provider", "postgresql")
	viper.SetDefault("telemetry_disabled", false)
	viper.SetDefault("debug", false)

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			viper.SetConfigFile(filepath.Join(home, ".config", "relq", "relq.yaml"))
			_ = viper.ReadInConfig()
		}
	}

	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		DatabaseURL:       viper.GetString("database_url"),
		Provider:          viper.GetString("provider"),
		TelemetryDisabled: viper.GetBool("telemetry_disabled"),
		Debug:             viper.GetBool("debug"),
	}
	return cfg, nil
}

// SaveConfig persists cfg to ~/.config/relq/relq.yaml.
func SaveConfig(cfg *Config) error {
	viper.Set("database_url", cfg.DatabaseURL)
	viper.Set("provider", cfg.Provider)
	viper.Set("telemetry_disabled", cfg.TelemetryDisabled)
	viper.Set("debug", cfg.Debug)

	home, err := homedir.Dir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(home, ".config", "relq")
	if err := AppFs.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	return viper.WriteConfigAs(filepath.Join(configDir, "relq.yaml"))
}
