package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vango-dev/fileroutes/internal/errors"
	"github.com/vango-dev/fileroutes/pkg/routetree"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "fileroutes.json"

	// DefaultRoutes is the default routes directory.
	DefaultRoutes = "app/routes"

	// DefaultPort is the default serve port.
	DefaultPort = 3000

	// DefaultHost is the default serve host.
	DefaultHost = "localhost"

	// DefaultDebounce is the default watch debounce delay.
	DefaultDebounce = "100ms"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "fileroutes"
)

// Source types.
const (
	SourceDir = "dir"
	SourceS3  = "s3"
)

// Config represents the complete fileroutes.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Routes is the path to the routes directory, relative to the config file.
	Routes string `json:"routes,omitempty"`

	// Extensions are the recognized route file extensions.
	Extensions []string `json:"extensions,omitempty"`

	// Conventions overrides the file naming conventions.
	Conventions ConventionsConfig `json:"conventions,omitempty"`

	// Source selects where route files are listed from.
	Source SourceConfig `json:"source,omitempty"`

	// Serve contains development server configuration.
	Serve ServeConfig `json:"serve,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ConventionsConfig overrides routetree.Conventions. Empty fields keep the
// defaults.
type ConventionsConfig struct {
	Index       string `json:"index,omitempty"`
	Layout      string `json:"layout,omitempty"`
	ParamPrefix string `json:"paramPrefix,omitempty"`
	Splat       string `json:"splat,omitempty"`
	Delimiter   string `json:"delimiter,omitempty"`
}

// SourceConfig selects the listing provider.
type SourceConfig struct {
	// Type is "dir" (default) or "s3".
	Type string `json:"type,omitempty"`

	// Bucket is the S3 bucket for type "s3".
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the S3 key prefix for type "s3".
	Prefix string `json:"prefix,omitempty"`

	// Region is the AWS region; empty uses the SDK default chain.
	Region string `json:"region,omitempty"`
}

// ServeConfig contains development server configuration.
type ServeConfig struct {
	// Host is the listen host.
	Host string `json:"host,omitempty"`

	// Port is the listen port.
	Port int `json:"port,omitempty"`

	// Watch enables recompiling on route file changes.
	Watch bool `json:"watch,omitempty"`

	// Debounce is the watch debounce delay (e.g. "100ms").
	Debounce string `json:"debounce,omitempty"`
}

// MetricsConfig contains Prometheus configuration.
type MetricsConfig struct {
	// Enabled exposes /metrics when serving.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace is the metric namespace.
	Namespace string `json:"namespace,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{
		Routes: DefaultRoutes,
		Source: SourceConfig{Type: SourceDir},
		Serve: ServeConfig{
			Host:     DefaultHost,
			Port:     DefaultPort,
			Debounce: DefaultDebounce,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from fileroutes.json in dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C001").
				WithDetail("No " + ConfigFileName + " found at " + path)
		}
		return nil, errors.New("C002").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("C002").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// LoadOrDefault loads fileroutes.json from dir, or returns defaults rooted
// at dir when the file does not exist.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		cfg := New()
		cfg.configPath = filepath.Join(dir, ConfigFileName)
		return cfg, nil
	}
	return Load(dir)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("C002").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C002").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Routes == "" {
		c.Routes = DefaultRoutes
	}
	if len(c.Extensions) == 0 {
		c.Extensions = append([]string(nil), routetree.DefaultExtensions...)
	}
	if c.Source.Type == "" {
		c.Source.Type = SourceDir
	}
	if c.Serve.Host == "" {
		c.Serve.Host = DefaultHost
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultPort
	}
	if c.Serve.Debounce == "" {
		c.Serve.Debounce = DefaultDebounce
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.New("C003").
			WithDetail("serve.port must be between 0 and 65535")
	}
	switch c.Source.Type {
	case SourceDir:
	case SourceS3:
		if c.Source.Bucket == "" {
			return errors.New("C003").
				WithDetail("source.bucket is required when source.type is \"s3\"")
		}
	default:
		return errors.New("C003").
			WithDetail("source.type must be \"dir\" or \"s3\", got \"" + c.Source.Type + "\"")
	}
	if _, err := time.ParseDuration(c.Serve.Debounce); err != nil {
		return errors.New("C003").
			WithDetail("serve.debounce is not a duration: " + c.Serve.Debounce).
			Wrap(err)
	}
	for _, ext := range c.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return errors.New("C003").
				WithDetail("extensions must start with a dot, got \"" + ext + "\"")
		}
	}
	return nil
}

// RoutesPath returns the absolute path to the routes directory.
func (c *Config) RoutesPath() string {
	if filepath.IsAbs(c.Routes) {
		return c.Routes
	}
	return filepath.Join(c.Dir(), c.Routes)
}

// RouteConventions returns the naming conventions for the compiler.
func (c *Config) RouteConventions() routetree.Conventions {
	return routetree.Conventions{
		IndexName:        c.Conventions.Index,
		LayoutName:       c.Conventions.Layout,
		ParamPrefix:      c.Conventions.ParamPrefix,
		SplatName:        c.Conventions.Splat,
		NestingDelimiter: c.Conventions.Delimiter,
		Extensions:       c.Extensions,
	}
}

// ServeAddress returns the listen address for the server.
func (c *Config) ServeAddress() string {
	return c.Serve.Host + ":" + strconv.Itoa(c.Serve.Port)
}

// DebounceDuration returns the parsed watch debounce delay.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Serve.Debounce)
	if err != nil || d <= 0 {
		return 100 * time.Millisecond
	}
	return d
}

// Exists reports whether dir contains fileroutes.json.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir to the first directory containing
// fileroutes.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("C001").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
