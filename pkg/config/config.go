// Package config loads abclisten settings from a TOML file and the
// environment.
//
// Resolution order, later wins:
//
//  1. built-in defaults ([Default])
//  2. the config file ($XDG_CONFIG_HOME/abclisten/config.toml or --config)
//  3. ABCLISTEN_* environment variables ([Config.ApplyEnv])
//
// Example file:
//
//	[storage]
//	backend = "redis"
//	profile = "anna"
//
//	[storage.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/matzehuels/abclisten/pkg/errors"
	"github.com/matzehuels/abclisten/pkg/store"
)

// AppName is used for directories and the environment prefix.
const AppName = "abclisten"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ABCLISTEN_"

// Config is the complete application configuration.
type Config struct {
	Storage Storage `toml:"storage"`
	Server  Server  `toml:"server"`
	Export  Export  `toml:"export"`
	Log     Log     `toml:"log"`
}

// Storage selects the persistence backend.
type Storage struct {
	Backend string `toml:"backend" env:"STORE_BACKEND" validate:"oneof=memory file redis mongo"`
	Dir     string `toml:"dir" env:"DATA_DIR"`
	// Profile isolates one learner's data inside a shared backend.
	Profile string `toml:"profile" env:"PROFILE" validate:"omitempty,max=64,excludesall=/\\:"`
	Redis   Redis  `toml:"redis"`
	Mongo   Mongo  `toml:"mongo"`
}

// Redis configures the redis backend.
type Redis struct {
	Addr     string `toml:"addr" env:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	Password string `toml:"password" env:"REDIS_PASSWORD"`
	DB       int    `toml:"db" env:"REDIS_DB" validate:"gte=0,lte=15"`
	Prefix   string `toml:"prefix"`
}

// Mongo configures the mongo backend.
type Mongo struct {
	URI        string `toml:"uri" env:"MONGO_URI" validate:"omitempty,uri"`
	Database   string `toml:"database" env:"MONGO_DATABASE"`
	Collection string `toml:"collection"`
}

// Server configures `abclisten serve`.
type Server struct {
	Addr            string   `toml:"addr" env:"SERVER_ADDR" validate:"required"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Export configures mind-map and document export.
type Export struct {
	Formats []string `toml:"formats" env:"EXPORT_FORMATS" validate:"dive,oneof=json dot svg pdf png"`
	Cache   bool     `toml:"cache" env:"EXPORT_CACHE"`
	Dir     string   `toml:"dir" env:"EXPORT_DIR"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
}

// Duration is a time.Duration that reads TOML strings such as "15s".
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: Storage{
			Backend: store.BackendFile,
			Redis:   Redis{Addr: "localhost:6379", Prefix: store.DefaultRedisPrefix},
			Mongo: Mongo{
				URI:        "mongodb://localhost:27017",
				Database:   store.DefaultMongoDatabase,
				Collection: store.DefaultMongoCollection,
			},
		},
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{60 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Export: Export{Formats: []string{"svg"}, Cache: true},
		Log:    Log{Level: "info"},
	}
}

// Load reads the config file at path on top of [Default] and applies the
// environment. An empty path means [DefaultPath]; a missing default file is
// not an error, a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		switch {
		case err == nil:
		case os.IsNotExist(err) && !explicit:
		case os.IsNotExist(err):
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		default:
			return cfg, errors.Wrap(errors.ErrCodeInvalidSetting, err, "parse config %s", path)
		}
	}

	if err := cfg.ApplyEnv(nil); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode reads TOML from r on top of cfg.
func (c *Config) Decode(r io.Reader) error {
	if _, err := toml.NewDecoder(r).Decode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSetting, err, "parse config")
	}
	return nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// ApplyEnv overrides fields tagged env from ABCLISTEN_* variables. A nil
// environ reads the process environment. List values are comma separated
// and trimmed.
func (c *Config) ApplyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSetting, err, "parse environment")
	}
	for i, f := range c.Export.Formats {
		c.Export.Formats[i] = strings.TrimSpace(f)
	}
	return nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := errors.ValidateStruct(errors.ErrCodeInvalidSetting, c); err != nil {
		return err
	}
	switch {
	case c.Storage.Backend == store.BackendRedis && c.Storage.Redis.Addr == "":
		return errors.New(errors.ErrCodeInvalidSetting, "storage.redis.addr is required for the redis backend")
	case c.Storage.Backend == store.BackendMongo && c.Storage.Mongo.URI == "":
		return errors.New(errors.ErrCodeInvalidSetting, "storage.mongo.uri is required for the mongo backend")
	}
	return nil
}

// StoreOptions converts the storage section into options for [store.Open].
// An empty Dir resolves to [DataDir].
func (c Config) StoreOptions() (store.Options, error) {
	dir := c.Storage.Dir
	if dir == "" && c.Storage.Backend == store.BackendFile {
		d, err := DataDir()
		if err != nil {
			return store.Options{}, err
		}
		dir = d
	}
	var scope string
	if c.Storage.Profile != "" {
		scope = "profile:" + c.Storage.Profile + ":"
	}
	return store.Options{
		Backend: c.Storage.Backend,
		Dir:     dir,
		Scope:   scope,
		Redis: store.RedisConfig{
			Addr:     c.Storage.Redis.Addr,
			Password: c.Storage.Redis.Password,
			DB:       c.Storage.Redis.DB,
			Prefix:   c.Storage.Redis.Prefix,
		},
		Mongo: store.MongoConfig{
			URI:        c.Storage.Mongo.URI,
			Database:   c.Storage.Mongo.Database,
			Collection: c.Storage.Mongo.Collection,
		},
	}, nil
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns $XDG_CONFIG_HOME/abclisten/config.toml
// (~/.config/abclisten/config.toml).
func DefaultPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataDir returns $XDG_DATA_HOME/abclisten (~/.local/share/abclisten).
func DataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// CacheDir returns $XDG_CACHE_HOME/abclisten (~/.cache/abclisten).
func CacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, fallback, AppName), nil
}
