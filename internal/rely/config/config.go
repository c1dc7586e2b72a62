// Package config loads rely settings from flags, environment, a .rely.yaml
// config file and a .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default values for configuration.
const (
	DefaultAPIURL   = "https://api.github.com/"
	DefaultTimeout  = 30 * time.Second
	DefaultAddr     = ":8080"
	DefaultOutput   = "table"
	DefaultLogLevel = "info"
	EnvPrefix       = "RELY"
)

// Config holds the validated runtime configuration.
type Config struct {
	GitHubToken string        `mapstructure:"github-token"`
	APIURL      string        `mapstructure:"api-url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Addr        string        `mapstructure:"addr"`
	Output      string        `mapstructure:"output"`
	Color       bool          `mapstructure:"color"`
	LogLevel    string        `mapstructure:"log-level"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api-url", DefaultAPIURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("color", true)
	v.SetDefault("log-level", DefaultLogLevel)
	v.SetDefault("github-token", "")
}

// Load merges defaults, the config file, environment variables and any flags
// already bound to v, then validates the result. configFile may be empty, in
// which case .rely.yaml is looked up in the working and home directories; a
// missing file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".rely")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.GitHubToken == "" {
		cfg.GitHubToken = tokenFallback(".env")
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// tokenFallback resolves the GitHub token when neither flag, RELY_GITHUB_TOKEN
// nor the config file set one: GITHUB_PERSONAL_ACCESS_TOKEN from the
// environment or dotenvPath, then GITHUB_TOKEN.
func tokenFallback(dotenvPath string) string {
	if t := os.Getenv("GITHUB_PERSONAL_ACCESS_TOKEN"); t != "" {
		return t
	}
	if t := readDotenv(dotenvPath, "GITHUB_PERSONAL_ACCESS_TOKEN"); t != "" {
		return t
	}
	return os.Getenv("GITHUB_TOKEN")
}

// readDotenv reads key from a dotenv file, returning "" when the file or key
// is absent.
func readDotenv(path, key string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	env := viper.New()
	env.SetConfigFile(path)
	env.SetConfigType("dotenv")
	if err := env.ReadInConfig(); err != nil {
		return ""
	}
	return env.GetString(key)
}

func validate(cfg *Config) error {
	cfg.Output = strings.ToLower(cfg.Output)
	switch cfg.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format '%s'. must be table, json, yaml", cfg.Output)
	}

	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be greater than 0 (received %s)", cfg.Timeout)
	}

	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return err
	}

	if cfg.APIURL == "" {
		return fmt.Errorf("api-url must not be empty")
	}
	return nil
}

// ParseLevel maps a log level name onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", s)
	}
	return level, nil
}

// Logger builds the process logger for cfg.
func (c *Config) Logger() *slog.Logger {
	level, _ := ParseLevel(c.LogLevel)
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
