// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     config
// Description: TOML/YAML configuration loading, defaults and hot reload
// Author:      Mike Stoffels
// Created:     2025-12-04
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	kerror "github.com/msto63/kairos/foundation/core/error"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "KAIROS_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig  `toml:"general" yaml:"general"`
	Server   ServerConfig   `toml:"server" yaml:"server"`
	Calendar CalendarConfig `toml:"calendar" yaml:"calendar"`
	Cache    CacheConfig    `toml:"cache" yaml:"cache"`
	Clock    ClockConfig    `toml:"clock" yaml:"clock"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Environment string `toml:"environment" yaml:"environment"`
	DataDir     string `toml:"data_dir" yaml:"data_dir"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	LogFormat   string `toml:"log_format" yaml:"log_format"`
}

// ServerConfig holds the gRPC and HTTP listener settings
type ServerConfig struct {
	Host         string   `toml:"host" yaml:"host"`
	GRPCPort     int      `toml:"grpc_port" yaml:"grpc_port"`
	HTTPPort     int      `toml:"http_port" yaml:"http_port"`
	ReadTimeout  Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout" yaml:"write_timeout"`
}

// CalendarConfig holds trading calendar settings
type CalendarConfig struct {
	StorePath     string `toml:"store_path" yaml:"store_path"`
	DefaultMarket string `toml:"default_market" yaml:"default_market"`
	// WeekendDays uses 0 = Sunday through 6 = Saturday.
	WeekendDays []int `toml:"weekend_days" yaml:"weekend_days"`
	MaxSteps    int   `toml:"max_steps" yaml:"max_steps"`
}

// CacheConfig holds parse cache settings
type CacheConfig struct {
	MaxItems int      `toml:"max_items" yaml:"max_items"`
	TTL      Duration `toml:"ttl" yaml:"ttl"`
}

// ClockConfig holds websocket clock stream settings
type ClockConfig struct {
	TickInterval Duration `toml:"tick_interval" yaml:"tick_interval"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kerror.Newf("config file not found: %s", path).
				WithCode(kerror.CodeMissingConfig).
				WithOperation("config.Load")
		}
		return nil, kerror.Wrap(err, "failed to read config").
			WithCode(kerror.CodeConfigError).
			WithOperation("config.Load")
	}

	cfg, err := decode(path, data)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte) (*Config, error) {
	var cfg Config
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml", "":
		_, err = toml.Decode(string(data), &cfg)
	default:
		return nil, kerror.Newf("unsupported config format: %s", filepath.Ext(path)).
			WithCode(kerror.CodeInvalidConfig).
			WithOperation("config.Load")
	}
	if err != nil {
		return nil, kerror.Wrap(err, "failed to parse config").
			WithCode(kerror.CodeInvalidConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from the KAIROS_CONFIG environment variable
// or the first default location that exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = findDefault()
	}
	if path == "" {
		return nil, kerror.Newf("no config file found, set %s or create configs/config.toml", EnvConfigPath).
			WithCode(kerror.CodeMissingConfig).
			WithOperation("config.LoadFromEnv")
	}
	return Load(path)
}

func findDefault() string {
	candidates := []string{
		"./configs/config.toml",
		"./configs/config.yaml",
		"./config.toml",
		filepath.Join(os.Getenv("HOME"), ".config/kairos/config.toml"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "kairos"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = 9300
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8300
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 15 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 30 * time.Second
	}

	// Calendar
	if c.Calendar.StorePath == "" {
		c.Calendar.StorePath = filepath.Join(c.General.DataDir, "calendar.db")
	}
	if c.Calendar.DefaultMarket == "" {
		c.Calendar.DefaultMarket = "XETR"
	}
	if c.Calendar.WeekendDays == nil {
		c.Calendar.WeekendDays = []int{0, 6}
	}
	if c.Calendar.MaxSteps == 0 {
		c.Calendar.MaxSteps = 10000
	}

	// Cache
	if c.Cache.MaxItems == 0 {
		c.Cache.MaxItems = 4096
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = 10 * time.Minute
	}

	// Clock
	if c.Clock.TickInterval.Duration == 0 {
		c.Clock.TickInterval.Duration = time.Second
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.Calendar.StorePath = os.ExpandEnv(c.Calendar.StorePath)
}

// Validate checks value ranges after defaults were applied
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}) error {
		return kerror.Newf("invalid value for %s: %v", field, value).
			WithCode(kerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("field", field)
	}

	if c.Server.GRPCPort < 1 || c.Server.GRPCPort > 65535 {
		return invalid("server.grpc_port", c.Server.GRPCPort)
	}
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return invalid("server.http_port", c.Server.HTTPPort)
	}
	for _, d := range c.Calendar.WeekendDays {
		if d < 0 || d > 6 {
			return invalid("calendar.weekend_days", d)
		}
	}
	if c.Calendar.MaxSteps < 0 {
		return invalid("calendar.max_steps", c.Calendar.MaxSteps)
	}
	if c.Cache.MaxItems < 0 {
		return invalid("cache.max_items", c.Cache.MaxItems)
	}
	if c.Clock.TickInterval.Duration < 10*time.Millisecond {
		return invalid("clock.tick_interval", c.Clock.TickInterval.Duration)
	}
	return nil
}

// GRPCAddress returns the gRPC listen address
func (c *Config) GRPCAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.GRPCPort))
}

// HTTPAddress returns the HTTP listen address
func (c *Config) HTTPAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.HTTPPort))
}

// IsWeekend reports whether weekday (0 = Sunday) is configured as a non-trading day
func (c *Config) IsWeekend(weekday int) bool {
	for _, d := range c.Calendar.WeekendDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// String returns a short summary for logging
func (c *Config) String() string {
	return fmt.Sprintf("%s[%s] grpc=%s http=%s store=%s",
		c.General.Name, c.General.Environment, c.GRPCAddress(), c.HTTPAddress(), c.Calendar.StorePath)
}
