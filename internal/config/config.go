package config

import (
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vango-dev/sonner/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "sonner.json"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SONNER_"

	// DefaultAddr is the default feed server address.
	DefaultAddr = "localhost:3100"

	// DefaultMountPath is where the feed routes are mounted.
	DefaultMountPath = "/_sonner"

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = "5s"

	// DefaultDuration is how long toasts stay on screen unless they say
	// otherwise.
	DefaultDuration = "4s"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"

	// IDsCounter and IDsUUID select the toast id generator.
	IDsCounter = "counter"
	IDsUUID    = "uuid"
)

// Config represents the complete sonner.json configuration.
type Config struct {
	// Server contains feed server configuration.
	Server ServerConfig `json:"server" envPrefix:"SERVER_"`

	// Toasts contains toast store defaults.
	Toasts ToastsConfig `json:"toasts" envPrefix:"TOASTS_"`

	// Log contains logging configuration.
	Log LogConfig `json:"log" envPrefix:"LOG_"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics" envPrefix:"METRICS_"`
}

// ServerConfig contains feed server settings.
type ServerConfig struct {
	// Addr is the host:port to listen on.
	Addr string `json:"addr,omitempty" env:"ADDR"`

	// MountPath is the URL prefix of the feed routes.
	MountPath string `json:"mountPath,omitempty" env:"MOUNT_PATH"`

	// AllowedOrigins restricts WebSocket origins. Empty allows all.
	AllowedOrigins []string `json:"allowedOrigins,omitempty" env:"ALLOWED_ORIGINS" envSeparator:","`

	// ShutdownTimeout bounds graceful shutdown (e.g., "5s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty" env:"SHUTDOWN_TIMEOUT"`
}

// ToastsConfig contains toast store defaults.
type ToastsConfig struct {
	// DefaultDuration is given to toasts created without one (e.g., "4s").
	DefaultDuration string `json:"defaultDuration,omitempty" env:"DEFAULT_DURATION"`

	// IDs selects the id generator: "counter" or "uuid".
	IDs string `json:"ids,omitempty" env:"IDS"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" env:"LEVEL"`

	// NoColor disables colored console output.
	NoColor bool `json:"noColor,omitempty" env:"NO_COLOR"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes metrics on Path.
	Enabled bool `json:"enabled" env:"ENABLED"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty" env:"NAMESPACE"`

	// Path is the URL path of the metrics endpoint.
	Path string `json:"path,omitempty" env:"PATH"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			MountPath:       DefaultMountPath,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Toasts: ToastsConfig{
			DefaultDuration: DefaultDuration,
			IDs:             IDsCounter,
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "sonner",
			Path:      DefaultMetricsPath,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for sonner.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path, then applies
// environment overrides.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path)).
				WithSuggestion("Create sonner.json or run without --config to use defaults")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid JSON")
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

// FromEnv returns the defaults with environment overrides applied.
func FromEnv() (*Config, error) {
	cfg := New()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// ApplyEnv overrides fields from SONNER_* environment variables.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(nil)
}

// applyEnv reads overrides from environ, or the process environment when
// environ is nil.
func (c *Config) applyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return errors.New("E121").Wrap(err)
	}
	return nil
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.MountPath == "" {
		c.Server.MountPath = DefaultMountPath
	}
	if !strings.HasPrefix(c.Server.MountPath, "/") {
		c.Server.MountPath = "/" + c.Server.MountPath
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Toasts.DefaultDuration == "" {
		c.Toasts.DefaultDuration = DefaultDuration
	}
	if c.Toasts.IDs == "" {
		c.Toasts.IDs = IDsCounter
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "sonner"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return errors.New("E122").
			WithDetail("server.addr must be host:port, got " + c.Server.Addr).
			Wrap(err)
	}
	if _, err := parseDuration("server.shutdownTimeout", c.Server.ShutdownTimeout); err != nil {
		return err
	}
	if _, err := parseDuration("toasts.defaultDuration", c.Toasts.DefaultDuration); err != nil {
		return err
	}
	switch c.Toasts.IDs {
	case IDsCounter, IDsUUID:
	default:
		return errors.New("E122").
			WithDetail(`toasts.ids must be "counter" or "uuid", got "` + c.Toasts.IDs + `"`)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("E122").
			WithDetail("metrics.path must start with /")
	}
	return nil
}

// ShutdownTimeout returns the parsed shutdown timeout.
func (c *Config) ShutdownTimeout() time.Duration {
	d, _ := parseDuration("", c.Server.ShutdownTimeout)
	return d
}

// ToastDuration returns the parsed default toast duration.
func (c *Config) ToastDuration() time.Duration {
	d, _ := parseDuration("", c.Toasts.DefaultDuration)
	return d
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.New("E122").
			WithDetail("log.level must be debug, info, warn or error, got " + c.Log.Level)
	}
	return level, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, errors.New("E122").
			WithDetail(field + " must be a non-negative duration like \"4s\", got \"" + value + "\"")
	}
	return d, nil
}
