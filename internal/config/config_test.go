package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func providerNamed(cfg *Config, name string) (ProviderConfig, bool) {
	for _, p := range cfg.Providers {
		if p.Name == name {
			return p, true
		}
	}
	return ProviderConfig{}, false
}

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"polygon", "alpha_vantage", "binance", "finnhub", "fmp"} {
		t.Setenv(APIKeyEnv(name), "")
	}
}

func TestLoad_FromFile(t *testing.T) {
	clearProviderEnv(t)
	path := writeConfig(t, `
caching_enabled: true
cache_ttl_seconds: 120
log_level: debug
providers:
  - name: finnhub
    enabled: true
    api_key: file_key
    priority: 2
    requests_per_minute: 60
    timeout_seconds: 7
    max_retries: 1
  - name: alpha_vantage
    enabled: true
    api_key: av_key
    base_url: https://test.alphavantage.co
    priority: 1
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if !cfg.CachingEnabled || cfg.CacheTTLSeconds != 120 {
		t.Errorf("cache settings = %v/%d, want true/120", cfg.CachingEnabled, cfg.CacheTTLSeconds)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if len(cfg.Providers) != 2 {
		t.Fatalf("len(Providers) = %d, want 2", len(cfg.Providers))
	}

	fh, ok := providerNamed(cfg, "finnhub")
	if !ok {
		t.Fatal("finnhub not found")
	}
	tests := []struct {
		name string
		got  any
		want any
	}{
		{"APIKey", fh.APIKey, "file_key"},
		{"Priority", fh.Priority, 2},
		{"RequestsPerMinute", fh.RequestsPerMinute, 60},
		{"TimeoutSeconds", fh.TimeoutSeconds, 7},
		{"MaxRetries", fh.MaxRetries, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("FINNHUB_API_KEY", "env_key")
	t.Setenv("MARKETBRAIN_CACHE_TTL_SECONDS", "30")
	t.Setenv("MARKETBRAIN_CACHING_ENABLED", "false")

	path := writeConfig(t, `
providers:
  - name: finnhub
    enabled: true
    api_key: file_key
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	fh, _ := providerNamed(cfg, "finnhub")
	if fh.APIKey != "env_key" {
		t.Errorf("APIKey = %q, want env_key", fh.APIKey)
	}
	if cfg.CacheTTLSeconds != 30 {
		t.Errorf("CacheTTLSeconds = %d, want 30", cfg.CacheTTLSeconds)
	}
	if cfg.CachingEnabled {
		t.Error("CachingEnabled = true, want false")
	}
}

func TestLoad_DefaultRoster(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("POLYGON_API_KEY", "pk")

	path := writeConfig(t, "cache_ttl_seconds: 60\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if len(cfg.Providers) != len(DefaultProviders()) {
		t.Fatalf("len(Providers) = %d, want %d", len(cfg.Providers), len(DefaultProviders()))
	}

	enabled := cfg.EnabledProviders()
	if len(enabled) != 1 || enabled[0].Name != "polygon" {
		t.Errorf("EnabledProviders() = %+v, want only polygon", enabled)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearProviderEnv(t)

	tests := []struct {
		name        string
		body        string
		wantErrText string
	}{
		{
			name: "negative priority",
			body: `
providers:
  - name: polygon
    priority: -1
`,
			wantErrText: "Priority",
		},
		{
			name: "missing name",
			body: `
providers:
  - enabled: true
`,
			wantErrText: "Name",
		},
		{
			name: "duplicate names",
			body: `
providers:
  - name: polygon
  - name: polygon
`,
			wantErrText: "duplicate provider names: polygon",
		},
		{
			name:        "bad log level",
			body:        "log_level: loud\n",
			wantErrText: "LogLevel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErrText) {
				t.Errorf("Load() error = %q, want error containing %q", err.Error(), tt.wantErrText)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
}

func TestEnabledProviders_PriorityAndCredentials(t *testing.T) {
	cfg := &Config{Providers: []ProviderConfig{
		{Name: "c", Enabled: true, APIKey: "k", Priority: 3},
		{Name: "a1", Enabled: true, APIKey: "k", Priority: 1},
		{Name: "nokey", Enabled: true, Priority: 0},
		{Name: "blank", Enabled: true, APIKey: "   ", Priority: 0},
		{Name: "off", Enabled: false, APIKey: "k", Priority: 0},
		{Name: "a2", Enabled: true, APIKey: "k", Priority: 1},
		{Name: "b", Enabled: true, APIKey: "k", Priority: 2},
	}}

	var got []string
	for _, p := range cfg.EnabledProviders() {
		got = append(got, p.Name)
	}

	want := []string{"a1", "a2", "b", "c"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("EnabledProviders() = %v, want %v", got, want)
	}
}

func TestAPIKeyEnv(t *testing.T) {
	tests := map[string]string{
		"alpha_vantage": "ALPHA_VANTAGE_API_KEY",
		"polygon":       "POLYGON_API_KEY",
		"twelve-data":   "TWELVE_DATA_API_KEY",
	}
	for name, want := range tests {
		if got := APIKeyEnv(name); got != want {
			t.Errorf("APIKeyEnv(%q) = %q, want %q", name, got, want)
		}
	}
}
