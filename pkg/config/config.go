package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"saba/pkg/observability"

	"github.com/spf13/viper"
)

// Config is the root configuration of the saba shell.
type Config struct {
	Browser BrowserConfig              `mapstructure:"browser"`
	Network NetworkConfig              `mapstructure:"network"`
	Logger  observability.LoggerConfig `mapstructure:"logger"`
}

// BrowserConfig sizes the content area and names the start page.
type BrowserConfig struct {
	ViewportWidth  int    `mapstructure:"viewport_width"`
	ViewportHeight int    `mapstructure:"viewport_height"`
	HomeURL        string `mapstructure:"home_url"`
}

// NetworkConfig holds settings for the HTTP client.
type NetworkConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

const EnvPrefix = "SABA"

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("browser.viewport_width", 590)
	v.SetDefault("browser.viewport_height", 340)
	v.SetDefault("browser.home_url", "http://example.com/")
	v.SetDefault("network.timeout", 30*time.Second)
	v.SetDefault("network.user_agent", "saba/0.1")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "saba")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
}

// NewViper returns a viper instance with defaults, SABA_ environment overrides
// and, if present, the config file. cfgFile may be empty to search for
// config.yaml in the working directory.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return v, nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values the engine depends on.
func (c *Config) Validate() error {
	if c.Browser.ViewportWidth <= 0 {
		return fmt.Errorf("browser.viewport_width must be positive, got %d", c.Browser.ViewportWidth)
	}
	if c.Browser.ViewportHeight <= 0 {
		return fmt.Errorf("browser.viewport_height must be positive, got %d", c.Browser.ViewportHeight)
	}
	if c.Network.Timeout <= 0 {
		return fmt.Errorf("network.timeout must be positive, got %s", c.Network.Timeout)
	}
	return nil
}

// Default returns the configuration with every default applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	if err != nil {
		panic(err)
	}
	return cfg
}
