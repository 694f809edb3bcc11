package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// envOverrides lists the environment variables that take precedence over
// payarakit.yaml. Empty values leave the file setting alone.
type envOverrides struct {
	Product            string `env:"PAYARAKIT_PRODUCT"`
	Backend            string `env:"PAYARAKIT_BACKEND"`
	DebugPort          string `env:"PAYARAKIT_DEBUG_PORT"`
	PayaraHome         string `env:"PAYARAKIT_PAYARA_HOME"`
	CloudAPIURL        string `env:"PAYARAKIT_CLOUD_API_URL"`
	CloudToken         string `env:"PAYARAKIT_CLOUD_TOKEN"`
	CredentialsBackend string `env:"PAYARAKIT_CREDENTIALS_BACKEND"`
}

// ApplyEnv overlays environment overrides read through lookuper. A nil
// lookuper reads the process environment.
func (c *Config) ApplyEnv(ctx context.Context, lookuper envconfig.Lookuper) error {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}

	var env envOverrides
	if err := envconfig.ProcessWith(ctx, &env, lookuper); err != nil {
		return fmt.Errorf("read environment overrides: %w", err)
	}

	set := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	set(&c.Product, env.Product)
	set(&c.Backend, env.Backend)
	set(&c.DebugPort, env.DebugPort)
	set(&c.Server.PayaraHome, env.PayaraHome)
	set(&c.Cloud.APIURL, env.CloudAPIURL)
	set(&c.Cloud.Token, env.CloudToken)
	set(&c.Credentials.Backend, env.CredentialsBackend)
	return nil
}

// LoadWithEnv loads path and applies environment overrides.
func LoadWithEnv(ctx context.Context, path string, lookuper envconfig.Lookuper) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(ctx, lookuper); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
