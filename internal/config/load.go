package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from defaults, an optional config.yaml in the
// working directory, and environment variables with the EINFIELD_ prefix
// (e.g. EINFIELD_SERVER_PORT). Environment variables take precedence over
// file values. The result is validated before it is returned.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.capacity", 1024)
	v.SetDefault("cache.cleanup_interval", time.Minute)

	// SI values. Geometric units are a configuration choice
	// (gravitational_constant=1, speed_of_light=1), never a silent one.
	v.SetDefault("physics.gravitational_constant", 6.67430e-11)
	v.SetDefault("physics.speed_of_light", 299792458.0)
	v.SetDefault("physics.default_hubble", 70.0)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine: defaults plus environment apply.
	}

	v.SetEnvPrefix("EINFIELD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
