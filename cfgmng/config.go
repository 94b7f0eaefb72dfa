package cfgmng

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override file values, e.g.
// RESTCALL_ENVIRONMENT_HOSTNAME for environment.hostname.
const EnvPrefix = "RESTCALL"

// LoadConfig reads path/filename.yaml into T. Keys in defaults are registered
// first so they can also be overridden from the environment. A missing file is not
// an error; an empty path skips the file entirely.
func LoadConfig[T any](path string, filename string, defaults map[string]any) (*T, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.AddConfigPath(path)
		v.SetConfigName(filename)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	var cfg T
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
