package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Veraticus/the-truth-must-out/internal/common"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the origin of a locally running classification service.
const DefaultBaseURL = "http://localhost:8000"

// Config holds the settings every command needs.
type Config struct {
	BaseURL   string
	Theme     string
	LogLevel  string
	LogFormat string
	LogFile   string
	Timeout   time.Duration
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("ui.theme", "default")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
}

// Load reads and validates configuration from v.
// It follows this precedence:
// 1. Flags bound to v
// 2. TRUTH_ environment variables
// 3. Config file
// 4. Defaults from SetDefaults
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		BaseURL:   v.GetString("api.base_url"),
		Timeout:   v.GetDuration("api.timeout"),
		Theme:     v.GetString("ui.theme"),
		LogLevel:  v.GetString("logging.level"),
		LogFormat: v.GetString("logging.format"),
		LogFile:   ExpandPath(v.GetString("logging.file")),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: api.base_url: %v", common.ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: api.base_url must be an http(s) URL, got %q", common.ErrInvalidConfig, c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: api.base_url has no host: %q", common.ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must not be negative", common.ErrInvalidConfig)
	}
	return nil
}
