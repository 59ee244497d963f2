package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/vango-dev/outlet/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "outlet.json"

	// EnvFileName is the optional dotenv file read next to outlet.json.
	EnvFileName = ".env"

	// DefaultPort is the default inspector port.
	DefaultPort = 7070

	// DefaultHost is the default inspector host.
	DefaultHost = "localhost"

	// DefaultRoutes is the default route config source.
	DefaultRoutes = "routes.json"

	// DefaultRoot is the default root component name.
	DefaultRoot = "root"

	// DefaultMetricsNamespace is the default Prometheus namespace.
	DefaultMetricsNamespace = "outlet"
)

// Config represents the complete outlet.json configuration.
type Config struct {
	// Routes is the route config source: a file path, relative to the
	// config file, or an s3://bucket/key URI.
	Routes string `json:"routes,omitempty"`

	// Root is the component name given to the root of every router state.
	Root string `json:"root,omitempty"`

	// Server contains inspector server settings.
	Server ServerConfig `json:"server,omitempty"`

	// Metrics contains navigation metric settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains navigation tracing settings.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// Guards contains guard settings for the CLI and inspector.
	Guards GuardsConfig `json:"guards,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains inspector server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// MetricsConfig contains navigation metric settings.
type MetricsConfig struct {
	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains navigation tracing settings.
type TracingConfig struct {
	Enabled bool `json:"enabled,omitempty"`
}

// GuardsConfig contains guard settings.
type GuardsConfig struct {
	// Deny lists guard names that always reject. Every other guard a route
	// names admits.
	Deny []string `json:"deny,omitempty"`
}

// environment is the OUTLET_* overlay applied on top of outlet.json.
// Zero values leave the file's value alone.
type environment struct {
	Routes           string   `env:"OUTLET_ROUTES"`
	Root             string   `env:"OUTLET_ROOT"`
	Host             string   `env:"OUTLET_HOST"`
	Port             int      `env:"OUTLET_PORT"`
	MetricsNamespace string   `env:"OUTLET_METRICS_NAMESPACE"`
	Tracing          string   `env:"OUTLET_TRACING"`
	GuardsDeny       []string `env:"OUTLET_GUARDS_DENY" envSeparator:","`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Routes: DefaultRoutes,
		Root:   DefaultRoot,
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultMetricsNamespace,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for outlet.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E153").
				WithDetail("No outlet.json found at " + path).
				WithSuggestion("Create outlet.json or pass --routes directly")
		}
		return nil, errors.New("E151").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E151").
			WithDetail("Failed to parse outlet.json: " + err.Error()).
			WithSuggestion("Check that outlet.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E160").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E160").Wrap(err)
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
	if c.Root == "" {
		c.Root = DefaultRoot
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// ApplyEnv overlays OUTLET_* variables from environ onto the config.
func (c *Config) ApplyEnv(environ map[string]string) error {
	var e environment
	if err := env.ParseWithOptions(&e, env.Options{Environment: environ}); err != nil {
		return errors.New("E152").Wrap(err)
	}

	if e.Routes != "" {
		c.Routes = e.Routes
	}
	if e.Root != "" {
		c.Root = e.Root
	}
	if e.Host != "" {
		c.Server.Host = e.Host
	}
	if e.Port != 0 {
		c.Server.Port = e.Port
	}
	if e.MetricsNamespace != "" {
		c.Metrics.Namespace = e.MetricsNamespace
	}
	if e.Tracing != "" {
		enabled, err := strconv.ParseBool(e.Tracing)
		if err != nil {
			return errors.New("E152").
				WithDetail("OUTLET_TRACING must be a boolean, got " + strconv.Quote(e.Tracing)).
				Wrap(err)
		}
		c.Tracing.Enabled = enabled
	}
	if len(e.GuardsDeny) > 0 {
		c.Guards.Deny = e.GuardsDeny
	}
	return nil
}

// Environment returns the process environment merged over the optional
// .env file in dir. Process variables win.
func Environment(dir string) (map[string]string, error) {
	merged := map[string]string{}

	dotenv := filepath.Join(dir, EnvFileName)
	if _, err := os.Stat(dotenv); err == nil {
		vars, err := godotenv.Read(dotenv)
		if err != nil {
			return nil, errors.New("E152").
				WithDetail("Failed to read " + dotenv).
				Wrap(err)
		}
		for k, v := range vars {
			merged[k] = v
		}
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			merged[k] = v
		}
	}
	return merged, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E150").
			WithDetail("server.port must be between 0 and 65535")
	}
	if c.Routes == "" {
		return errors.New("E150").
			WithDetail("routes must name a file or an s3://bucket/key URI")
	}
	if !validMetricName(c.Metrics.Namespace) {
		return errors.New("E150").
			WithDetail("metrics.namespace " + strconv.Quote(c.Metrics.Namespace) + " is not a valid Prometheus name")
	}
	for _, name := range c.Guards.Deny {
		if name == "" {
			return errors.New("E150").
				WithDetail("guards.deny contains an empty guard name")
		}
	}
	return nil
}

// validMetricName reports whether s matches [a-zA-Z_][a-zA-Z0-9_]*.
func validMetricName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Address returns the host:port address for the inspector.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the full URL for the inspector.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// RoutesSource returns the route config source with relative file paths
// resolved against the config directory.
func (c *Config) RoutesSource() string {
	if strings.Contains(c.Routes, "://") || filepath.IsAbs(c.Routes) {
		return c.Routes
	}
	return filepath.Join(c.Dir(), c.Routes)
}

// Denies reports whether the named guard is configured to reject.
func (c *Config) Denies(guard string) bool {
	return slices.Contains(c.Guards.Deny, guard)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing outlet.json, or an error if not found.
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
			return "", errors.New("E153").
				WithDetail("No outlet.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the nearest outlet.json at or
// above the working directory, then applies the environment overlay.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	return LoadWithEnv(root)
}

// LoadWithEnv loads outlet.json from dir and applies the OUTLET_*
// environment overlay, including dir/.env.
func LoadWithEnv(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if err != nil {
		return nil, err
	}
	environ, err := Environment(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(environ); err != nil {
		return nil, err
	}
	return cfg, nil
}
