// Package config loads process configuration. Defaults are overlaid by an
// optional YAML file, and environment variables win over both, so container
// deployments can run with nothing but env vars set.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	databridge "github.com/opendatakr/databridge"
)

// Environment variable names.
const (
	EnvTourismAPIKey    = "KOREA_TOURISM_API_KEY"
	EnvDefaultLanguage  = "MCP_TOURISM_DEFAULT_LANGUAGE"
	EnvCacheTTL         = "MCP_TOURISM_CACHE_TTL"
	EnvRateLimitCalls   = "MCP_TOURISM_RATE_LIMIT_CALLS"
	EnvRateLimitPeriod  = "MCP_TOURISM_RATE_LIMIT_PERIOD"
	EnvConcurrencyLimit = "MCP_TOURISM_CONCURRENCY_LIMIT"
	EnvWeatherAPIKey    = "KOREA_WEATHER_API_KEY"
	EnvTransport        = "MCP_TRANSPORT"
	EnvHost             = "MCP_HOST"
	EnvPort             = "MCP_PORT"
	EnvPath             = "MCP_PATH"
	EnvLogLevel         = "MCP_LOG_LEVEL"
)

// Supported transports.
const (
	TransportStdio      = "stdio"
	TransportSSE        = "sse"
	TransportStreamable = "streamable-http"
)

// Config is the full process configuration.
type Config struct {
	Transport string `yaml:"transport"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Path      string `yaml:"path"`
	LogLevel  string `yaml:"log_level"`

	Tourism Tourism `yaml:"tourism"`
	Weather Weather `yaml:"weather"`
}

// Tourism holds the tourism client settings. Durations are whole seconds,
// matching what deployments put in env vars.
type Tourism struct {
	APIKey                 string `yaml:"api_key"`
	DefaultLanguage        string `yaml:"default_language"`
	CacheTTLSeconds        int    `yaml:"cache_ttl"`
	RateLimitCalls         int    `yaml:"rate_limit_calls"`
	RateLimitPeriodSeconds int    `yaml:"rate_limit_period"`
	ConcurrencyLimit       int    `yaml:"concurrency_limit"`
}

// Weather holds the weather client settings.
type Weather struct {
	APIKey string `yaml:"api_key"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Transport: TransportStdio,
		Host:      "127.0.0.1",
		Port:      8000,
		Path:      "/mcp",
		LogLevel:  "info",
		Tourism: Tourism{
			DefaultLanguage:        databridge.DefaultLanguage,
			CacheTTLSeconds:        int(databridge.DefaultCacheTTL / time.Second),
			RateLimitCalls:         databridge.DefaultRateLimitCalls,
			RateLimitPeriodSeconds: int(databridge.DefaultRateLimitPeriod / time.Second),
			ConcurrencyLimit:       databridge.DefaultConcurrencyLimit,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path if
// one is given, then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Transport, EnvTransport)
	setString(&c.Host, EnvHost)
	setInt(&c.Port, EnvPort)
	setString(&c.Path, EnvPath)
	setString(&c.LogLevel, EnvLogLevel)

	setString(&c.Tourism.APIKey, EnvTourismAPIKey)
	setString(&c.Tourism.DefaultLanguage, EnvDefaultLanguage)
	setInt(&c.Tourism.CacheTTLSeconds, EnvCacheTTL)
	setInt(&c.Tourism.RateLimitCalls, EnvRateLimitCalls)
	setInt(&c.Tourism.RateLimitPeriodSeconds, EnvRateLimitPeriod)
	setInt(&c.Tourism.ConcurrencyLimit, EnvConcurrencyLimit)

	setString(&c.Weather.APIKey, EnvWeatherAPIKey)
}

func (c *Config) validate() error {
	switch c.Transport {
	case TransportStdio, TransportSSE, TransportStreamable:
	default:
		return fmt.Errorf("unsupported transport %q (expected %s, %s, or %s)",
			c.Transport, TransportStdio, TransportSSE, TransportStreamable)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

// ClientConfig converts the tourism section to the client's config type.
func (c Config) ClientConfig() databridge.ClientConfig {
	return databridge.ClientConfig{
		APIKey:           c.Tourism.APIKey,
		Language:         c.Tourism.DefaultLanguage,
		CacheTTL:         time.Duration(c.Tourism.CacheTTLSeconds) * time.Second,
		RateLimitCalls:   c.Tourism.RateLimitCalls,
		RateLimitPeriod:  time.Duration(c.Tourism.RateLimitPeriodSeconds) * time.Second,
		ConcurrencyLimit: int64(c.Tourism.ConcurrencyLimit),
	}
}

// Addr returns the listen address for HTTP transports.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func setInt(dst *int, env string) {
	v := os.Getenv(env)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}
