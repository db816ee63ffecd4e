package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Polygon PolygonConfig `mapstructure:"polygon"`
	Output  OutputConfig  `mapstructure:"output"`
	Filters FilterConfig  `mapstructure:"filters"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PolygonConfig holds Polygon API connection details
type PolygonConfig struct {
	Token     string        `mapstructure:"token"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	MaxPages  int           `mapstructure:"max_pages"` // 0 fetches every page
}

// OutputConfig controls how results are written
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// FilterConfig maps filter names to expressions usable with --filter
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
