// Package config loads and validates application configuration.
package config

import "time"

// Config holds all application configuration, organized into logical
// groups.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Cache   CacheConfig   `mapstructure:"cache" validate:"required"`
	Physics PhysicsConfig `mapstructure:"physics" validate:"required"`
}

// ServerConfig contains the server-related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// CacheConfig bounds the result memoizer.
type CacheConfig struct {
	// TTL is how long a cached result stays valid after insertion.
	TTL time.Duration `mapstructure:"ttl" validate:"required"`
	// Capacity is the maximum number of cached results before the
	// least-recently-inserted entry is evicted.
	Capacity int `mapstructure:"capacity" validate:"required,gt=0"`
	// CleanupInterval drives the background expiry sweep; zero or negative
	// disables it.
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// PhysicsConfig carries the physical constants the evaluators run with.
// Defaults are SI values; setting both constants to 1 selects geometric
// units.
type PhysicsConfig struct {
	GravitationalConstant float64 `mapstructure:"gravitational_constant" validate:"required,gt=0"`
	SpeedOfLight          float64 `mapstructure:"speed_of_light" validate:"required,gt=0"`
	// DefaultHubble is the hubble_parameter an FLRW request falls back to
	// when the input omits one, in km/s/Mpc.
	DefaultHubble float64 `mapstructure:"default_hubble" validate:"required,gt=0"`
}
