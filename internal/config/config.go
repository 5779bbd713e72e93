package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultProvider    = "deepseek"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000

	// APIKeyEnv overrides the provider's own key variable
	APIKeyEnv = "QUILL_API_KEY"
	// PathEnv points at an alternative config file
	PathEnv = "QUILL_CONFIG"
)

type Config struct {
	Provider    string        `yaml:"provider"`
	BaseURL     string        `yaml:"base_url,omitempty"`
	Model       string        `yaml:"model,omitempty"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
	Locale      string        `yaml:"locale,omitempty"`
	Mode        string        `yaml:"mode,omitempty"`
	LogFile     string        `yaml:"log_file,omitempty"`

	// APIKey is read from the environment only and never persisted
	APIKey string `yaml:"-"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider:    DefaultProvider,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Locale:      "en",
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "quill"), nil
}

// ConfigPath returns $QUILL_CONFIG if set, else ~/.config/quill/config.yaml
func ConfigPath() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads .env from the working directory, then the config file, then
// environment overrides. Missing files are not an error, and neither is a
// missing API key: requests simply go out unauthenticated.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return load(".env", path)
}

func load(envFile, path string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load %s: %w", envFile, err)
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.resolve(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("QUILL_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("QUILL_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("QUILL_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("QUILL_LOCALE"); v != "" {
		c.Locale = v
	}
	if v := os.Getenv("QUILL_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("QUILL_LOG"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("QUILL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: QUILL_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("QUILL_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: QUILL_MAX_TOKENS: %w", err)
		}
		c.MaxTokens = n
	}
	return nil
}

// resolve fills provider defaults, reads the credential and validates
func (c *Config) resolve() error {
	provider := GetProvider(c.Provider)
	if provider == nil {
		return fmt.Errorf("config: unknown provider: %s", c.Provider)
	}

	if c.BaseURL == "" {
		c.BaseURL = provider.BaseURL
	}
	if c.BaseURL == "" {
		return fmt.Errorf("config: %s provider requires base_url", provider.ID)
	}
	if c.Model == "" {
		c.Model = provider.DefaultModel
	}
	if c.Model == "" {
		return fmt.Errorf("config: %s provider requires model", provider.ID)
	}

	c.APIKey = os.Getenv(APIKeyEnv)
	if c.APIKey == "" && provider.KeyEnv != "" {
		c.APIKey = os.Getenv(provider.KeyEnv)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config: temperature %.2f out of range [0, 2]", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("config: max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: timeout must not be negative, got %s", c.Timeout)
	}

	return nil
}

// KeySource names the environment variable the API key is read from
func (c *Config) KeySource() string {
	if os.Getenv(APIKeyEnv) != "" {
		return APIKeyEnv
	}
	if p := GetProvider(c.Provider); p != nil && p.KeyEnv != "" {
		return p.KeyEnv
	}
	return APIKeyEnv
}

// MaskedAPIKey returns the key with all but its edges hidden
func (c *Config) MaskedAPIKey() string {
	if c.APIKey == "" {
		return "Not set"
	}
	if len(c.APIKey) > 8 {
		return c.APIKey[:4] + "****" + c.APIKey[len(c.APIKey)-4:]
	}
	return "****"
}
