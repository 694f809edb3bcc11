package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"payarakit/internal/product"
)

// Config captures the per-project settings of payarakit.
type Config struct {
	Version int `yaml:"version"`
	// Product and Backend pin detection; empty means detect from the build
	// files.
	Product     string            `yaml:"product,omitempty"`
	Backend     string            `yaml:"backend,omitempty"`
	DebugPort   string            `yaml:"debug_port,omitempty"`
	Executables ExecutablesConfig `yaml:"executables"`
	Server      ServerConfig      `yaml:"server"`
	Cloud       CloudConfig       `yaml:"cloud"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Transform   TransformConfig   `yaml:"transform"`

	// ToolMinimums raises the minimum versions reported by doctor.
	ToolMinimums map[string]string `yaml:"tool_minimums,omitempty"`
}

// ExecutablesConfig names the build tools to invoke.
type ExecutablesConfig struct {
	Maven  string `yaml:"maven"`
	Gradle string `yaml:"gradle"`
}

// ServerConfig holds Payara Server launch settings. Exploded and Remote
// override whatever the build file declares when set.
type ServerConfig struct {
	ContextRoot   string            `yaml:"context_root,omitempty"`
	PayaraHome    string            `yaml:"payara_home,omitempty"`
	PayaraVersion string            `yaml:"payara_version,omitempty"`
	DomainName    string            `yaml:"domain_name,omitempty"`
	InstanceName  string            `yaml:"instance_name,omitempty"`
	Host          string            `yaml:"host,omitempty"`
	Protocol      string            `yaml:"protocol,omitempty"`
	HTTPPort      string            `yaml:"http_port,omitempty"`
	HTTPSPort     string            `yaml:"https_port,omitempty"`
	AdminPort     string            `yaml:"admin_port,omitempty"`
	User          string            `yaml:"user,omitempty"`
	Exploded      *bool             `yaml:"exploded,omitempty"`
	Remote        *bool             `yaml:"remote,omitempty"`
	Properties    map[string]string `yaml:"properties,omitempty"`
}

// CloudConfig points at the Payara Cloud API and remembers the last
// selection.
type CloudConfig struct {
	APIURL       string `yaml:"api_url"`
	Subscription string `yaml:"subscription,omitempty"`
	Namespace    string `yaml:"namespace,omitempty"`
	CacheSize    int    `yaml:"cache_size"`
	// Token is only read from the environment.
	Token string `yaml:"-"`
}

// CredentialsConfig selects where the encrypted admin password is kept.
type CredentialsConfig struct {
	Backend string `yaml:"backend"`
}

// Credential store backends.
const (
	CredentialsLevelDB = "leveldb"
	CredentialsKeyring = "keyring"
)

// TransformConfig bounds the wait for a Jakarta EE migration to finish.
type TransformConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Executables: ExecutablesConfig{
			Maven:  product.Maven.Executable(),
			Gradle: product.Gradle.Executable(),
		},
		Cloud: CloudConfig{
			CacheSize: 64,
		},
		Credentials: CredentialsConfig{Backend: CredentialsLevelDB},
		Transform: TransformConfig{
			Timeout:      5 * time.Minute,
			PollInterval: time.Second,
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults ensures nested fields fall back to sensible defaults when the
// YAML omits them.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.Executables.Maven == "" {
		c.Executables.Maven = defaults.Executables.Maven
	}
	if c.Executables.Gradle == "" {
		c.Executables.Gradle = defaults.Executables.Gradle
	}
	if c.Cloud.CacheSize <= 0 {
		c.Cloud.CacheSize = defaults.Cloud.CacheSize
	}
	if c.Credentials.Backend == "" {
		c.Credentials.Backend = defaults.Credentials.Backend
	}
	if c.Transform.Timeout <= 0 {
		c.Transform.Timeout = defaults.Transform.Timeout
	}
	if c.Transform.PollInterval <= 0 {
		c.Transform.PollInterval = defaults.Transform.PollInterval
	}
}

// Executable returns the configured tool for backend.
func (c Config) Executable(backend product.Backend) string {
	if backend == product.Gradle {
		return c.Executables.Gradle
	}
	return c.Executables.Maven
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}
