package cfgmng

import (
	"fmt"

	"github.com/seb7887/simplerest/rest"
)

// Config is the configuration of a REST client application.
type Config struct {
	Environment EnvironmentConfig `mapstructure:"environment"`
	Log         LogConfig         `mapstructure:"log"`
	Auth        AuthConfig        `mapstructure:"auth"`
}

// EnvironmentConfig is a rest.Environment read from configuration.
type EnvironmentConfig struct {
	Host string `mapstructure:"hostname"`
	Port int    `mapstructure:"port"`
}

var _ rest.Environment = EnvironmentConfig{}

// AuthConfig holds credentials sent by the client.
type AuthConfig struct {
	Token string `mapstructure:"token"`
}

// defaults registers every key so that environment variables can override it.
var defaults = map[string]any{
	"environment.hostname": "",
	"environment.port":     0,
	"log.level":            "info",
	"log.format":           "console",
	"auth.token":           "",
}

// Load reads path/filename.yaml with environment overrides and validates it.
func Load(path, filename string) (*Config, error) {
	cfg, err := LoadConfig[Config](path, filename, defaults)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Environment.Port < 0 || c.Environment.Port > 65535 {
		return fmt.Errorf("cfgmng: environment.port out of range: %d", c.Environment.Port)
	}
	return nil
}

// Hostname implements rest.Environment.
func (e EnvironmentConfig) Hostname() string { return e.Host }

// PortNumber implements rest.Environment.
func (e EnvironmentConfig) PortNumber() (int, bool) { return e.Port, e.Port != 0 }
