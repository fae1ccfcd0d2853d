// Package config handles configuration loading and defaults.
package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pthm/hxtodo/internal/log"
)

// Default values.
const (
	DefaultAddr     = ":8080"
	DefaultEnv      = EnvDevelopment
	DefaultLogLevel = "info"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// secretLen is the size of a generated props secret.
const secretLen = 32

// Config holds the full configuration for hxtodo.
type Config struct {
	Addr     string `toml:"addr"`
	Env      string `toml:"env"` // development or production
	LogLevel string `toml:"log_level"`

	// Secret keys the props encoder. Empty means a random key per process,
	// which invalidates URLs rendered before a restart.
	Secret string `toml:"secret"`

	// SeedFile replaces the built-in seed list when set.
	SeedFile string `toml:"seed_file"`

	// SensitiveProps encrypts component props instead of signing them.
	SensitiveProps bool `toml:"sensitive_props"`

	// File is the config file that was loaded, if any.
	File string `toml:"-"`
}

// Overrides carries values set explicitly on the command line. Nil fields
// leave the loaded value alone.
type Overrides struct {
	Addr     *string
	LogLevel *string
	SeedFile *string
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Load builds the configuration in priority order:
// 1. Defaults
// 2. Config file (TOML), path or hxtodo.toml / .hxtodo.toml in the working directory
// 3. Environment variables
// 4. CLI flags
func Load(path string, o Overrides) (*Config, error) {
	cfg := Default()

	configFile := path
	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		if err := loadConfigFile(cfg, configFile); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", configFile, err)
		}
		cfg.File = configFile
	}

	loadFromEnv(cfg)
	cfg.Apply(o)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply copies every non-nil override into cfg.
func (c *Config) Apply(o Overrides) {
	if o.Addr != nil {
		c.Addr = *o.Addr
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.SeedFile != nil {
		c.SeedFile = *o.SeedFile
	}
}

// Validate rejects values the rest of the program cannot use.
func (c *Config) Validate() error {
	var errs []error
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("env %q: must be %s or %s", c.Env, EnvDevelopment, EnvProduction))
	}
	if !log.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level %q: must be debug, info, warn, error or fatal", c.LogLevel))
	}
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr: must not be empty"))
	}
	if c.Env == EnvProduction && c.Secret == "" {
		errs = append(errs, errors.New("secret: required in production"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// IsDevelopment reports whether the development environment is selected.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// SecretKey returns the props encoder key, generating a random one when no
// secret is configured.
func (c *Config) SecretKey() ([]byte, error) {
	if c.Secret != "" {
		return []byte(c.Secret), nil
	}
	key := make([]byte, secretLen)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generating secret: %w", err)
	}
	return key, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Addr = DefaultAddr
	cfg.Env = DefaultEnv
	cfg.LogLevel = DefaultLogLevel
}

// findConfigFile looks for a config file in the current directory.
func findConfigFile() string {
	for _, name := range []string{"hxtodo.toml", ".hxtodo.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// loadConfigFile loads TOML config from the given file. Unknown keys are an
// error so typos do not pass silently.
func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("HXTODO_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("HXTODO_ENV"); v != "" {
		cfg.Env = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("HXTODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("HXTODO_SECRET"); v != "" {
		cfg.Secret = v
	}
	if v := os.Getenv("HXTODO_SEED_FILE"); v != "" {
		cfg.SeedFile = v
	}
	if v := os.Getenv("HXTODO_SENSITIVE_PROPS"); v != "" {
		cfg.SensitiveProps = boolFromString(v)
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
