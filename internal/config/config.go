package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ProviderConfig holds the settings for one configured provider.
// It is immutable once loaded.
type ProviderConfig struct {
	Name              string `mapstructure:"name" validate:"required"`
	Enabled           bool   `mapstructure:"enabled"`
	APIKey            string `mapstructure:"api_key"`
	BaseURL           string `mapstructure:"base_url"`
	Priority          int    `mapstructure:"priority" validate:"gte=0"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" validate:"gte=0"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" validate:"gte=0"`
	MaxRetries        int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
}

// Timeout returns the per-call deadline, zero meaning none.
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// Usable reports whether the provider is enabled and holds a credential.
func (p ProviderConfig) Usable() bool {
	return p.Enabled && strings.TrimSpace(p.APIKey) != ""
}

// Config holds all configuration for the market data service.
type Config struct {
	Providers []ProviderConfig `mapstructure:"providers" validate:"dive"`

	// Response cache
	CachingEnabled  bool `mapstructure:"caching_enabled"`
	CacheTTLSeconds int  `mapstructure:"cache_ttl_seconds" validate:"gte=0"`

	// Logging
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFile  string `mapstructure:"log_file"`

	// HTTP API
	HTTPAddr string `mapstructure:"http_addr"`
}

// CacheTTL returns the cache freshness window.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// EnabledProviders returns the usable providers sorted by ascending priority.
// Ties keep declaration order.
func (c *Config) EnabledProviders() []ProviderConfig {
	out := make([]ProviderConfig, 0, len(c.Providers))
	for _, p := range c.Providers {
		if p.Usable() {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// DefaultProviders is the roster used when the config file declares none.
// Credentials still have to come from the environment.
func DefaultProviders() []ProviderConfig {
	return []ProviderConfig{
		{
			Name:              "polygon",
			Enabled:           true,
			Priority:          1,
			RequestsPerMinute: 5,
			TimeoutSeconds:    10,
			MaxRetries:        2,
		},
		{
			Name:              "alpha_vantage",
			Enabled:           true,
			BaseURL:           "https://www.alphavantage.co/query",
			Priority:          2,
			RequestsPerMinute: 5,
			TimeoutSeconds:    10,
			MaxRetries:        2,
		},
		{
			Name:              "binance",
			Enabled:           true,
			Priority:          3,
			RequestsPerMinute: 1200,
			TimeoutSeconds:    5,
			MaxRetries:        1,
		},
	}
}

// APIKeyEnv returns the environment variable holding a provider's credential,
// e.g. ALPHA_VANTAGE_API_KEY.
func APIKeyEnv(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_")) + "_API_KEY"
}

// Load reads configuration from an optional config file, a .env file and
// environment variables. Environment variables take precedence over file values.
//
// When path is empty the file is searched as config.yaml in the working
// directory and in $HOME/.marketbrain.
//
// Recognized environment variables:
//   - <PROVIDER>_API_KEY for every configured provider
//   - MARKETBRAIN_CACHING_ENABLED
//   - MARKETBRAIN_CACHE_TTL_SECONDS
//   - MARKETBRAIN_LOG_LEVEL
//   - MARKETBRAIN_LOG_FILE
//   - MARKETBRAIN_HTTP_ADDR
func Load(path string) (*Config, error) {
	// A missing .env is the normal case outside development
	_ = godotenv.Load()

	v := viper.New()

	v.SetEnvPrefix("MARKETBRAIN")
	v.AutomaticEnv()

	v.SetDefault("caching_enabled", true)
	v.SetDefault("cache_ttl_seconds", 300)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("http_addr", ":8080")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.marketbrain")

		// Read config file (ignore if not found)
		_ = v.ReadInConfig()
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(config.Providers) == 0 {
		config.Providers = DefaultProviders()
	}

	// Credentials from the environment win over the file
	for i := range config.Providers {
		p := &config.Providers[i]
		key := "credentials." + p.Name
		if err := v.BindEnv(key, APIKeyEnv(p.Name)); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", APIKeyEnv(p.Name), err)
		}
		if apiKey := v.GetString(key); apiKey != "" {
			p.APIKey = apiKey
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks field ranges and that provider names are unique.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	seen := make(map[string]struct{}, len(c.Providers))
	var dup []string
	for _, p := range c.Providers {
		if _, ok := seen[p.Name]; ok {
			dup = append(dup, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	if len(dup) > 0 {
		return fmt.Errorf("invalid configuration: duplicate provider names: %s", strings.Join(dup, ", "))
	}

	return nil
}
