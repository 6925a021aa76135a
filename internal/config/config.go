// File: internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Browser() BrowserConfig
	Geometry() GeometryConfig
	Dispatch() DispatchConfig

	// Browser Setters
	SetBrowserRemoteURL(string)
	SetBrowserCommandTimeout(time.Duration)

	// Geometry Setters
	SetGeometryFramelessIFrame(bool)
}

// Config holds the entire application configuration.
// It uses private fields to enforce access through the Interface's getter methods.
type Config struct {
	logger   LoggerConfig
	browser  BrowserConfig
	geometry GeometryConfig
	dispatch DispatchConfig
}

// fileConfig mirrors Config with exported fields so viper can decode into it.
type fileConfig struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Browser  BrowserConfig  `mapstructure:"browser" yaml:"browser"`
	Geometry GeometryConfig `mapstructure:"geometry" yaml:"geometry"`
	Dispatch DispatchConfig `mapstructure:"dispatch" yaml:"dispatch"`
}

var _ Interface = (*Config)(nil)

func (c *Config) Logger() LoggerConfig     { return c.logger }
func (c *Config) Browser() BrowserConfig   { return c.browser }
func (c *Config) Geometry() GeometryConfig { return c.geometry }
func (c *Config) Dispatch() DispatchConfig { return c.dispatch }

// -- Browser Setters --
func (c *Config) SetBrowserRemoteURL(u string)             { c.browser.RemoteURL = u }
func (c *Config) SetBrowserCommandTimeout(d time.Duration) { c.browser.CommandTimeout = d }

// -- Geometry Setters --
func (c *Config) SetGeometryFramelessIFrame(enabled bool) { c.geometry.FramelessIFrame = enabled }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color names for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// BrowserConfig describes how the CLI reaches a running browser.
type BrowserConfig struct {
	// RemoteURL is the DevTools endpoint, e.g. http://127.0.0.1:9222.
	RemoteURL string `mapstructure:"remote_url" yaml:"remote_url"`
	// CommandTimeout bounds a whole CLI command. Zero disables it.
	CommandTimeout time.Duration `mapstructure:"command_timeout" yaml:"command_timeout"`
}

// GeometryConfig tunes the geometry resolver.
type GeometryConfig struct {
	FramelessIFrame bool    `mapstructure:"frameless_iframe" yaml:"frameless_iframe"`
	ScrollbarSize   float64 `mapstructure:"scrollbar_size" yaml:"scrollbar_size"`
}

// DispatchConfig paces input delivery.
type DispatchConfig struct {
	// MaxEventsPerSecond caps dispatched events. Zero means unlimited.
	MaxEventsPerSecond float64 `mapstructure:"max_events_per_second" yaml:"max_events_per_second"`
	Burst              int     `mapstructure:"burst" yaml:"burst"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	cfg, err := decode(v)
	if err != nil {
		// Defaults always decode.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return cfg
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "framepoint")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Browser --
	v.SetDefault("browser.remote_url", "http://127.0.0.1:9222")
	v.SetDefault("browser.command_timeout", "30s")

	// -- Geometry --
	v.SetDefault("geometry.frameless_iframe", false)
	v.SetDefault("geometry.scrollbar_size", 17.0)

	// -- Dispatch --
	v.SetDefault("dispatch.max_events_per_second", 0.0)
	v.SetDefault("dispatch.burst", 1)
}

// EnvPrefix is the prefix for environment overrides, e.g.
// FRAMEPOINT_BROWSER_REMOTE_URL.
const EnvPrefix = "FRAMEPOINT"

// BindEnv makes every known key overridable from the environment.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	cfg, err := decode(v)
	if err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, err
	}
	return &Config{
		logger:   fc.Logger,
		browser:  fc.Browser,
		geometry: fc.Geometry,
		dispatch: fc.Dispatch,
	}, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.browser.Validate(); err != nil {
		return fmt.Errorf("browser configuration invalid: %w", err)
	}
	if err := c.geometry.Validate(); err != nil {
		return fmt.Errorf("geometry configuration invalid: %w", err)
	}
	if err := c.dispatch.Validate(); err != nil {
		return fmt.Errorf("dispatch configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the browser settings.
func (b *BrowserConfig) Validate() error {
	if b.RemoteURL == "" {
		return fmt.Errorf("browser.remote_url is required")
	}
	u, err := url.Parse(b.RemoteURL)
	if err != nil {
		return fmt.Errorf("browser.remote_url is not a valid URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("browser.remote_url must use http, https, ws or wss, got %q", u.Scheme)
	}
	if b.CommandTimeout < 0 {
		return fmt.Errorf("browser.command_timeout must not be negative")
	}
	return nil
}

// Validate checks the geometry settings.
func (g *GeometryConfig) Validate() error {
	if g.ScrollbarSize < 0 {
		return fmt.Errorf("geometry.scrollbar_size must not be negative")
	}
	return nil
}

// Validate checks the dispatch settings.
func (d *DispatchConfig) Validate() error {
	if d.MaxEventsPerSecond < 0 {
		return fmt.Errorf("dispatch.max_events_per_second must not be negative")
	}
	if d.MaxEventsPerSecond > 0 && d.Burst <= 0 {
		return fmt.Errorf("dispatch.burst must be a positive integer when pacing is enabled")
	}
	return nil
}
