package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/domrender/internal/errors"
)

// ConfigFileNames are the file names Load looks for, in order.
var ConfigFileNames = []string{"domrender.yaml", "domrender.yml", "domrender.json"}

const (
	// DefaultTag is the element kind used for vnodes without a tag.
	DefaultTag = "div"

	// DefaultAddr is the default preview server address.
	DefaultAddr = ":8080"

	// DefaultMaxBodyBytes caps preview request bodies.
	DefaultMaxBodyBytes = 1 << 20

	// DefaultTimeout is the default server read and write timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "domrender"

	// DefaultMetricsPath is where the preview server exposes metrics.
	DefaultMetricsPath = "/metrics"
)

// Config represents the complete domrender configuration.
type Config struct {
	// Render contains renderer defaults.
	Render RenderConfig `yaml:"render" json:"render"`

	// Server contains preview server settings.
	Server ServerConfig `yaml:"server" json:"server"`

	// Log contains logging settings.
	Log LogConfig `yaml:"log" json:"log"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`

	configPath string
}

// RenderConfig contains renderer defaults.
type RenderConfig struct {
	// DefaultTag replaces an empty vnode tag.
	DefaultTag string `yaml:"defaultTag" json:"defaultTag"`
}

// ServerConfig contains preview server settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr" json:"addr"`

	// MaxBodyBytes caps the size of a /render request body.
	MaxBodyBytes int64 `yaml:"maxBodyBytes" json:"maxBodyBytes"`

	// ReadTimeout bounds reading a request.
	ReadTimeout Duration `yaml:"readTimeout" json:"readTimeout"`

	// WriteTimeout bounds writing a response.
	WriteTimeout Duration `yaml:"writeTimeout" json:"writeTimeout"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" json:"level"`

	// Format is text or json.
	Format string `yaml:"format" json:"format"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled registers renderer metrics and serves them at Path.
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace" json:"namespace"`

	// Path is the metrics endpoint of the preview server.
	Path string `yaml:"path" json:"path"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Render: RenderConfig{DefaultTag: DefaultTag},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
			ReadTimeout:  Duration(DefaultTimeout),
			WriteTimeout: Duration(DefaultTimeout),
		},
		Log: LogConfig{Level: "info", Format: "text"},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
			Path:      DefaultMetricsPath,
		},
	}
}

// Load reads configuration from the first config file found in dir.
func Load(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E141").
		WithDetail("No " + strings.Join(ConfigFileNames, ", ") + " found in " + dir)
}

// LoadFile reads configuration from path. Files ending in .json are parsed
// as JSON, everything else as YAML.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No configuration file at " + path).
				WithSuggestion("Pass --config with an existing file or omit it to use defaults")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg, err := Parse(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// Parse decodes configuration over the defaults and validates it.
func Parse(data []byte, isJSON bool) (*Config, error) {
	cfg := New()
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, errors.New("E120").
				Wrap(err).
				WithSuggestion("Check that the file is valid JSON")
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, errors.New("E120").
				Wrap(err).
				WithSuggestion("Check that the file is valid YAML")
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in values cleared by the file.
func (c *Config) applyDefaults() {
	if c.Render.DefaultTag == "" {
		c.Render.DefaultTag = DefaultTag
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.MaxBodyBytes < 0 {
		return invalid("server.maxBodyBytes must not be negative")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return invalid("server timeouts must not be negative")
	}
	if _, err := c.SlogLevel(); err != nil {
		return invalid(err.Error())
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid(fmt.Sprintf("log.format %q must be text or json", c.Log.Format))
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return invalid(fmt.Sprintf("metrics.path %q must start with /", c.Metrics.Path))
	}
	if strings.ContainsAny(c.Render.DefaultTag, " <>/\"'=") {
		return invalid(fmt.Sprintf("render.defaultTag %q is not an element name", c.Render.DefaultTag))
	}
	return nil
}

func invalid(detail string) error {
	return errors.New("E121").WithDetail(detail)
}

// SlogLevel parses Log.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q must be debug, info, warn or error", c.Log.Level)
	}
	return level, nil
}

// Duration is a time.Duration written as a Go duration string ("10s")
// or a number of milliseconds.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String implements fmt.Stringer.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.parse(node.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	return d.parse(strings.Trim(string(data), `"`))
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*d = 0
		return nil
	}
	if v, err := time.ParseDuration(s); err == nil {
		*d = Duration(v)
		return nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}
