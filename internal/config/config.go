package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is returned by Validate when no credential is configured.
// The llm package reports the same sentinel per call.
var ErrMissingAPIKey = errors.New("missing API key")

type Config struct {
	Provider string        `yaml:"provider"`
	APIKey   string        `yaml:"api_key,omitempty"`
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"base_url,omitempty"`
	Title    string        `yaml:"title,omitempty"`
	Referer  string        `yaml:"referer,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`

	// fromFile and fromEnv record the values an environment variable
	// replaced, so SaveTo writes the file's value back instead of the
	// per-process override.
	fromFile overridable
	fromEnv  overridable
}

// overridable holds the settings the environment can override. A zero
// field in fromEnv means no override.
type overridable struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

const (
	DefaultTitle   = "Legal Document Generator"
	DefaultTimeout = 5 * time.Minute
)

func DefaultConfig() *Config {
	p := GetProvider("openrouter")
	return &Config{
		Provider: p.ID,
		Model:    p.DefaultModel,
		BaseURL:  p.BaseURL,
		Title:    DefaultTitle,
		Timeout:  DefaultTimeout,
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "legalgen"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// TemplatesDir holds user-defined document templates, one YAML file each.
func TemplatesDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "templates"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load resolves the effective configuration: defaults, then the config file,
// then .env, then process environment.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit config file path. A missing file is not
// an error.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{Provider: "openrouter"}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	_ = godotenv.Load()

	cfg.fromFile = overridable{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	return cfg, nil
}

func (c *Config) applyEnv() error {
	keyVar := "OPENROUTER_API_KEY"
	if p := GetProvider(c.Provider); p != nil && p.APIKeyEnv != "" {
		keyVar = p.APIKeyEnv
	}
	if v := os.Getenv(keyVar); v != "" {
		c.fromEnv.APIKey = v
	}
	if v := os.Getenv("LEGALGEN_API_KEY"); v != "" {
		c.fromEnv.APIKey = v
	}
	c.fromEnv.BaseURL = os.Getenv("LEGALGEN_BASE_URL")
	c.fromEnv.Model = os.Getenv("LEGALGEN_MODEL")
	if v := os.Getenv("LEGALGEN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LEGALGEN_TIMEOUT=%q: %w", v, err)
		}
		c.fromEnv.Timeout = d
	}

	if c.fromEnv.APIKey != "" {
		c.APIKey = c.fromEnv.APIKey
	}
	if c.fromEnv.BaseURL != "" {
		c.BaseURL = c.fromEnv.BaseURL
	}
	if c.fromEnv.Model != "" {
		c.Model = c.fromEnv.Model
	}
	if c.fromEnv.Timeout != 0 {
		c.Timeout = c.fromEnv.Timeout
	}
	return nil
}

// fillDefaults completes a partially specified config from its provider
// preset.
func (c *Config) fillDefaults() {
	if p := GetProvider(c.Provider); p != nil {
		if c.BaseURL == "" {
			c.BaseURL = p.BaseURL
		}
		if c.Model == "" {
			c.Model = p.DefaultModel
		}
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Validate reports configuration that makes generation impossible.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		keyVar := "OPENROUTER_API_KEY"
		if p := GetProvider(c.Provider); p != nil && p.APIKeyEnv != "" {
			keyVar = p.APIKeyEnv
		}
		return fmt.Errorf("%w: set %s or api_key in the config file", ErrMissingAPIKey, keyVar)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("provider %q requires base_url", c.Provider)
	}
	if c.Model == "" {
		return errors.New("model is not set")
	}
	return nil
}

// MaskedAPIKey returns the key with all but its edges hidden.
func (c *Config) MaskedAPIKey() string {
	if c.APIKey == "" {
		return "Not set"
	}
	if len(c.APIKey) > 8 {
		return c.APIKey[:4] + "****" + c.APIKey[len(c.APIKey)-4:]
	}
	return "****"
}

// Save writes the config to ConfigPath.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path. Settings still holding an environment
// override are written with the value the file had when loaded; settings
// changed since loading are written as they are.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	out := c.persistable()
	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

func (c *Config) persistable() Config {
	out := *c
	if c.fromEnv.APIKey != "" && out.APIKey == c.fromEnv.APIKey {
		out.APIKey = c.fromFile.APIKey
	}
	if c.fromEnv.BaseURL != "" && out.BaseURL == c.fromEnv.BaseURL {
		out.BaseURL = c.fromFile.BaseURL
	}
	if c.fromEnv.Model != "" && out.Model == c.fromEnv.Model {
		out.Model = c.fromFile.Model
	}
	if c.fromEnv.Timeout != 0 && out.Timeout == c.fromEnv.Timeout {
		out.Timeout = c.fromFile.Timeout
	}
	return out
}
