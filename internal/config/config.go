package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Token store kinds.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	Console struct {
		Addr string `yaml:"addr"`
		// PublicURL is the console origin printed in share links.
		PublicURL string `yaml:"public_url"`
	} `yaml:"console"`
	Token struct {
		Store string `yaml:"store"`
		Path  string `yaml:"path"`
	} `yaml:"token"`
	Redis struct {
		Addr      string `yaml:"addr"`
		Password  string `yaml:"password"`
		DB        int    `yaml:"db"`
		Namespace string `yaml:"namespace"`
	} `yaml:"redis"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// LoadEnv reads .env files into the process environment without overriding
// variables that are already set. It returns the load errors joined; callers
// treat them as informational since a missing .env is normal.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var errs []error
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			errs = append(errs, fmt.Errorf("env file %s: %w", f, err))
		}
	}
	return errors.Join(errs...)
}

// Load reads YAML config from path, fills defaults and applies environment
// overrides. A missing file yields the defaults.
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

	applyEnv(&cfg)
	applyDefaults(&cfg)
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// APITimeout is the per-request timeout for backend calls.
func (c Config) APITimeout() time.Duration {
	return Duration(c.API.Timeout, 15*time.Second)
}

func applyEnv(cfg *Config) {
	override(&cfg.API.BaseURL, "QUIZ_API_URL")
	override(&cfg.Console.Addr, "QUIZDESK_ADDR")
	override(&cfg.Console.PublicURL, "QUIZDESK_PUBLIC_URL")
	override(&cfg.Token.Store, "QUIZDESK_TOKEN_STORE")
	override(&cfg.Token.Path, "QUIZDESK_TOKEN_PATH")
	override(&cfg.Redis.Addr, "QUIZDESK_REDIS_ADDR")
	override(&cfg.Redis.Password, "QUIZDESK_REDIS_PASSWORD")
	override(&cfg.Log.Level, "QUIZDESK_LOG_LEVEL")
	override(&cfg.Log.Format, "QUIZDESK_LOG_FORMAT")
	if raw, ok := os.LookupEnv("QUIZDESK_REDIS_DB"); ok {
		if db, err := strconv.Atoi(raw); err == nil {
			cfg.Redis.DB = db
		}
	}
}

func override(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:8000"
	}
	if cfg.Console.Addr == "" {
		cfg.Console.Addr = ":8080"
	}
	if cfg.Console.PublicURL == "" {
		cfg.Console.PublicURL = publicURLFromAddr(cfg.Console.Addr)
	}
	cfg.Console.PublicURL = strings.TrimRight(cfg.Console.PublicURL, "/")
	if cfg.Token.Store == "" {
		cfg.Token.Store = StoreFile
	}
	if cfg.Token.Path == "" {
		cfg.Token.Path = defaultTokenPath()
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.Namespace == "" {
		cfg.Redis.Namespace = "quizdesk:"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

func (c Config) validate() error {
	switch c.Token.Store {
	case StoreFile, StoreRedis, StoreMemory:
		return nil
	default:
		return fmt.Errorf("token.store %q: want file, redis or memory", c.Token.Store)
	}
}

// publicURLFromAddr turns a listen address such as ":8080" into a local origin.
func publicURLFromAddr(addr string) string {
	host := addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	return "http://" + host
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "quizdesk", "credentials.yaml")
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
