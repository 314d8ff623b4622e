package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ai-gateway/chat-relay/internal/provider"
)

const (
	DefaultPort    = 5000
	DefaultBaseURL = provider.DefaultBaseURL
)

type Config struct {
	Address         string        `mapstructure:"address"`
	Port            int           `mapstructure:"port"`
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	UpstreamTimeout time.Duration `mapstructure:"upstream_timeout"`
	TelemetryURL    string        `mapstructure:"telemetry_url"`
	LogLevel        string        `mapstructure:"log_level"`
	Dev             bool          `mapstructure:"dev"`
}

// envBindings maps config keys to the environment variables operators
// already use for this service.
var envBindings = map[string]string{
	"port":     "PORT",
	"api_key":  "ANTHROPIC_API_KEY",
	"base_url": "ANTHROPIC_API_BASE_URL",
}

func Load() (*Config, error) {
	return LoadFrom(".", "./config")
}

// LoadFrom is Load with explicit search paths for config.yaml.
func LoadFrom(paths ...string) (*Config, error) {
	// .env never overrides variables that are already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// viper only unmarshals keys it knows; every key needs a default
	v.SetDefault("address", "")
	v.SetDefault("port", DefaultPort)
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("upstream_timeout", time.Duration(0))
	v.SetDefault("telemetry_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("dev", false)

	// remaining keys are reachable as RELAY_ADDRESS, RELAY_TELEMETRY_URL, ...
	v.SetEnvPrefix("RELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// don't fail if config file is missing, allow env-only config
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.Address == "" && (c.Port < 1 || c.Port > 65535) {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("invalid upstream_timeout %s", c.UpstreamTimeout)
	}
	return nil
}

// ListenAddress returns the address the server binds to.
func (c *Config) ListenAddress() string {
	if c.Address != "" {
		return c.Address
	}
	return ":" + strconv.Itoa(c.Port)
}
