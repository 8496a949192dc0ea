package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server    Server    `yaml:"server"`
	Log       Log       `yaml:"log"`
	Generator Generator `yaml:"generator"`
	Store     Store     `yaml:"store"`
	Redis     Redis     `yaml:"redis"`
	Postgres  Postgres  `yaml:"postgres"`
	SQLite    SQLite    `yaml:"sqlite"`
	Engine    Engine    `yaml:"engine"`
	Menu      Menu      `yaml:"menu"`
}

type Server struct {
	Port string `yaml:"port" env:"PORT"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// Generator configures the remote content generator. An empty APIKey means
// content comes from the bundled pool unless a credential is registered at
// runtime.
type Generator struct {
	APIKey   string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model    string `yaml:"model" env:"GEMINI_MODEL"`
	Endpoint string `yaml:"endpoint" env:"GEMINI_ENDPOINT"`
	Timeout  string `yaml:"timeout" env:"GENERATOR_TIMEOUT"`
}

type Store struct {
	Driver string `yaml:"driver" env:"STORE_DRIVER"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
	TTL      string `yaml:"ttl" env:"REDIS_SESSION_TTL"`
}

type Postgres struct {
	URL string `yaml:"url" env:"DATABASE_URL"`
}

type SQLite struct {
	Path string `yaml:"path" env:"SQLITE_PATH"`
}

// Engine holds the display delays of scheduled transitions.
type Engine struct {
	MismatchDelay string `yaml:"mismatch_delay" env:"ENGINE_MISMATCH_DELAY"`
	CorrectDelay  string `yaml:"correct_delay" env:"ENGINE_CORRECT_DELAY"`
	WrongDelay    string `yaml:"wrong_delay" env:"ENGINE_WRONG_DELAY"`
	MathDelay     string `yaml:"math_delay" env:"ENGINE_MATH_DELAY"`
}

type Menu struct {
	Preschool []string `yaml:"preschool" env:"MENU_PRESCHOOL" envSeparator:","`
}

// Load reads YAML config from path, then applies environment overrides. A
// missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Driver returns the configured store driver, memory by default.
func (c Config) Driver() string {
	driver := strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if driver == "" {
		return DriverMemory
	}
	return driver
}

func (c Config) validate() error {
	switch c.Driver() {
	case DriverMemory:
	case DriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("store driver redis requires redis.addr")
		}
	case DriverPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("store driver postgres requires postgres.url")
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("store driver sqlite requires sqlite.path")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	return nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}
