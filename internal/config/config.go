package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LedgerErrorPolicy decides how a failed deduplication lookup is counted.
// "assume_used" biases toward never serving a duplicate at the cost of
// over-rejecting; "assume_unused" keeps quotes flowing but risks repeats.
type LedgerErrorPolicy string

const (
	AssumeUsed   LedgerErrorPolicy = "assume_used"
	AssumeUnused LedgerErrorPolicy = "assume_unused"
)

// Config is the root configuration structure.
// It is read-only after Load() returns and thread-safe for concurrent reads.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Provider   ProviderConfig   `yaml:"provider"`
	Auth       AuthConfig       `yaml:"auth"`
	Identity   IdentityConfig   `yaml:"identity"`
	Mailer     MailerConfig     `yaml:"mailer"`
	Generation GenerationConfig `yaml:"generation"`
	Worker     WorkerConfig     `yaml:"worker"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ProviderConfig contains text-generation provider settings.
type ProviderConfig struct {
	APIKey  string   `yaml:"-"` // env-only, never in YAML
	BaseURL string   `yaml:"base_url"`
	Model   string   `yaml:"model"`
	Timeout Duration `yaml:"timeout"`
}

// AuthConfig contains service-to-service authentication settings.
type AuthConfig struct {
	ServiceKey string `yaml:"-"` // env-only, never in YAML
}

// IdentityConfig contains settings for the external identity provider.
type IdentityConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"-"` // env-only, never in YAML
}

// MailerConfig contains transactional email settings.
type MailerConfig struct {
	APIKey string `yaml:"-"` // env-only, never in YAML
	From   string `yaml:"from"`
}

// GenerationConfig contains quote generation tunables.
type GenerationConfig struct {
	// ClassicProbability is the chance of short-circuiting a mixed,
	// term-less request straight to the static pool.
	ClassicProbability float64           `yaml:"classic_probability"`
	OnLedgerError      LedgerErrorPolicy `yaml:"on_ledger_error"`
	// ProviderRetries bounds the backoff loop around a single provider call.
	ProviderRetries int `yaml:"provider_retries"`
}

// WorkerConfig contains background worker settings.
type WorkerConfig struct {
	ScheduleInterval Duration `yaml:"schedule_interval"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Duration is a wrapper around time.Duration that supports YAML string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Load loads configuration with precedence: defaults → YAML file → env vars.
// Returns an immutable Config suitable for concurrent read access.
func Load() (*Config, error) {
	cfg := newDefaults()

	configPath := getEnv("INSPIRO_CONFIG_PATH", "config/inspiro.yaml")

	// Missing file is not an error; defaults plus env are enough to run.
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific path.
// Used for testing and explicit path specification.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		Database: DatabaseConfig{
			Path: "data/inspiro.db",
		},
		Provider: ProviderConfig{
			BaseURL: "https://api.perplexity.ai",
			Model:   "llama-3.1-sonar-large-128k-online",
			Timeout: Duration(30 * time.Second),
		},
		Generation: GenerationConfig{
			ClassicProbability: 0.2,
			OnLedgerError:      AssumeUsed,
			ProviderRetries:    3,
		},
		Worker: WorkerConfig{
			ScheduleInterval: Duration(1 * time.Hour),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Only non-empty env vars override config values.
func applyEnvOverrides(cfg *Config) {
	// Server
	if v := os.Getenv("INSPIRO_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("INSPIRO_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = Duration(d)
		}
	}
	if v := os.Getenv("INSPIRO_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = Duration(d)
		}
	}
	if v := os.Getenv("INSPIRO_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ShutdownTimeout = Duration(d)
		}
	}

	// Database
	if v := os.Getenv("INSPIRO_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// Provider (PERPLEXITY_API_KEY matches the hosted deployment convention)
	if v := os.Getenv("PERPLEXITY_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("INSPIRO_PROVIDER_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("INSPIRO_PROVIDER_MODEL"); v != "" {
		cfg.Provider.Model = v
	}
	if v := os.Getenv("INSPIRO_PROVIDER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Provider.Timeout = Duration(d)
		}
	}

	// Auth
	if v := os.Getenv("INSPIRO_SERVICE_KEY"); v != "" {
		cfg.Auth.ServiceKey = v
	}

	// Identity
	if v := os.Getenv("INSPIRO_IDENTITY_BASE_URL"); v != "" {
		cfg.Identity.BaseURL = v
	}
	if v := os.Getenv("INSPIRO_IDENTITY_KEY"); v != "" {
		cfg.Identity.APIKey = v
	}

	// Mailer
	if v := os.Getenv("RESEND_API_KEY"); v != "" {
		cfg.Mailer.APIKey = v
	}
	if v := os.Getenv("INSPIRO_MAIL_FROM"); v != "" {
		cfg.Mailer.From = v
	}

	// Generation
	if v := os.Getenv("INSPIRO_CLASSIC_PROBABILITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Generation.ClassicProbability = f
		}
	}
	if v := os.Getenv("INSPIRO_ON_LEDGER_ERROR"); v != "" {
		cfg.Generation.OnLedgerError = LedgerErrorPolicy(v)
	}
	if v := os.Getenv("INSPIRO_PROVIDER_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Generation.ProviderRetries = n
		}
	}

	// Worker
	if v := os.Getenv("INSPIRO_SCHEDULE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Worker.ScheduleInterval = Duration(d)
		}
	}

	// Log
	if v := os.Getenv("INSPIRO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("INSPIRO_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// validate checks structural configuration invariants. Credential presence
// is checked separately per entrypoint via ValidateForServe.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Generation.ClassicProbability < 0 || c.Generation.ClassicProbability > 1 {
		return fmt.Errorf("classic_probability must be within [0,1], got %g", c.Generation.ClassicProbability)
	}
	switch c.Generation.OnLedgerError {
	case AssumeUsed, AssumeUnused:
	default:
		return fmt.Errorf("on_ledger_error must be %q or %q, got %q", AssumeUsed, AssumeUnused, c.Generation.OnLedgerError)
	}
	if c.Generation.ProviderRetries < 1 {
		return fmt.Errorf("provider_retries must be at least 1")
	}
	return nil
}

// ValidateForServe checks credentials required to run the full service.
// A missing provider key is a fatal configuration error: it must surface at
// startup rather than be masked later by fallback quotes.
func (c *Config) ValidateForServe() error {
	if c.Provider.APIKey == "" {
		return fmt.Errorf("PERPLEXITY_API_KEY is required")
	}
	return nil
}

// ValidateForMail checks credentials required to send quote emails.
func (c *Config) ValidateForMail() error {
	if c.Mailer.APIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is required for email delivery")
	}
	if c.Mailer.From == "" {
		return fmt.Errorf("mailer from address is required")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
