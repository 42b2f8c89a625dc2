// Package config loads the fretwise service configuration.
//
// Values are layered, later layers winning:
//
//  1. built-in defaults
//  2. an optional YAML file (--config, FRETWISE_CONFIG or ./fretwise.yaml)
//  3. environment variables, FRETWISE_<SECTION>__<KEY> (e.g. FRETWISE_SEED__BATCH_SIZE)
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Backend names accepted in Config.Backend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendLoam   = "loam"
)

// Config is the root configuration.
type Config struct {
	Log     LogConfig     `koanf:"log"`
	Backend string        `koanf:"backend" validate:"oneof=memory redis sqlite loam"`
	Seed    SeedConfig    `koanf:"seed"`
	Redis   RedisConfig   `koanf:"redis"`
	SQLite  SQLiteConfig  `koanf:"sqlite"`
	Loam    LoamConfig    `koanf:"loam"`
	HTTP    HTTPConfig    `koanf:"http"`
	Scoring ScoringConfig `koanf:"scoring"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn warning error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// SeedConfig controls loading a seed file into the backend.
type SeedConfig struct {
	// Path of a JSON or YAML seed file. Empty uses the embedded sample library.
	Path      string        `koanf:"path"`
	BatchSize int           `koanf:"batch_size" validate:"gte=1,lte=10000"`
	OnStart   bool          `koanf:"seed_on_start"`
	LockTTL   time.Duration `koanf:"lock_ttl" validate:"gte=0"`
}

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string        `koanf:"addr" validate:"omitempty,hostname_port"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db" validate:"gte=0"`
	Prefix   string        `koanf:"prefix"`
	TTL      time.Duration `koanf:"ttl" validate:"gte=0"`
}

// SQLiteConfig configures the SQLite backend.
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// LoamConfig configures the Markdown document backend.
type LoamConfig struct {
	Path     string `koanf:"path"`
	ReadOnly bool   `koanf:"read_only"`
}

// HTTPConfig configures the HTTP API.
type HTTPConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	Metrics         bool          `koanf:"metrics"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// ScoringConfig holds the transition penalty weights. Both must be non-positive.
type ScoringConfig struct {
	FingeringWeight    float64 `koanf:"fingering_weight" validate:"lte=0"`
	HandPositionWeight float64 `koanf:"hand_position_weight" validate:"lte=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Backend: BackendMemory,
		Seed: SeedConfig{
			BatchSize: 100,
			OnStart:   true,
			LockTTL:   30 * time.Second,
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "fretwise:",
		},
		SQLite: SQLiteConfig{
			Path: "fretwise.db",
		},
		Loam: LoamConfig{
			Path:     "chords",
			ReadOnly: true,
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Scoring: ScoringConfig{
			FingeringWeight:    -1,
			HandPositionWeight: -1,
		},
	}
}

var validate = validator.New()

// Validate checks field constraints and backend-specific requirements.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid %s: %q fails %q", fe.Namespace(), fmt.Sprint(fe.Value()), fe.Tag())
		}
		return err
	}

	switch c.Backend {
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis backend requires redis.addr")
		}
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return errors.New("sqlite backend requires sqlite.path")
		}
	case BackendLoam:
		if c.Loam.Path == "" {
			return errors.New("loam backend requires loam.path")
		}
	}
	return nil
}
