package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/polyclient/export"
	"github.com/s0up4200/polyclient/polygon"
)

// EnvPrefix prefixes environment overrides, e.g. POLYCLIENT_POLYGON_TOKEN
const EnvPrefix = "POLYCLIENT"

// Load loads the configuration from file and environment. Without an explicit
// path a missing config file is not an error; the token may come from the
// environment alone.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("polygon.token", EnvPrefix+"_POLYGON_TOKEN", "POLYGON_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".polyclient"))
		}

		// Check /etc
		v.AddConfigPath("/etc/polyclient/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Polygon defaults
	v.SetDefault("polygon.token", "")
	v.SetDefault("polygon.base_url", polygon.DefaultBaseURL)
	v.SetDefault("polygon.timeout", polygon.DefaultTimeout)
	v.SetDefault("polygon.user_agent", polygon.DefaultUserAgent)
	v.SetDefault("polygon.max_pages", 0)

	// Output defaults
	v.SetDefault("output.format", string(export.FormatTable))

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Polygon.Token == "" || cfg.Polygon.Token == "your-api-key-here" {
		return fmt.Errorf("polygon.token must be set to a valid API key (or set %s_POLYGON_TOKEN / POLYGON_API_KEY)", EnvPrefix)
	}

	u, err := url.Parse(cfg.Polygon.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid polygon.base_url: %q", cfg.Polygon.BaseURL)
	}

	if cfg.Polygon.Timeout <= 0 {
		return fmt.Errorf("polygon.timeout must be positive, got %s", cfg.Polygon.Timeout)
	}

	if cfg.Polygon.MaxPages < 0 {
		return fmt.Errorf("polygon.max_pages must not be negative, got %d", cfg.Polygon.MaxPages)
	}

	if _, err := export.ParseFormat(cfg.Output.Format); err != nil {
		return fmt.Errorf("invalid output.format: %w", err)
	}

	for name, expression := range cfg.Filters {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter %q has an empty expression", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
