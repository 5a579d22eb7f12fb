package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

type Config struct {
	API           APIConfig           `mapstructure:"api"`
	Reports       ReportsConfig       `mapstructure:"reports"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type APIConfig struct {
	// BaseURL is the root of the expense backend, e.g. http://localhost:5000.
	// The session credential is a cookie issued by this host; the client never
	// inspects it.
	BaseURL string `mapstructure:"base_url"`
}

type ReportsConfig struct {
	// OutputDir is where downloaded CSV reports are written.
	OutputDir string `mapstructure:"output_dir"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

// LoadConfigFromEnv builds a Config from environment variables only, for
// deployments without a config file.
func LoadConfigFromEnv() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:5000"),
		},
		Reports: ReportsConfig{
			OutputDir: getEnv("REPORTS_OUTPUT_DIR", "."),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
}

func (c *Config) Validate() error {
	var errs []string

	if err := c.API.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("api config: %v", err))
	}
	if err := c.Observability.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (c *APIConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %s: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https, got %q", u.Scheme)
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Format)
	}
	return nil
}
