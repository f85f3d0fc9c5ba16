package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		StaticDir       string        `yaml:"static_dir"`
		StaticPatterns  []string      `yaml:"static_patterns"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		RateLimit       float64       `yaml:"rate_limit"` // requests/s per client; negative disables
		RateBurst       int           `yaml:"rate_burst"`
	} `yaml:"server"`
	Provider struct {
		Seed         int64         `yaml:"seed"`
		LatencyScale float64       `yaml:"latency_scale"`
		FailureLimit uint32        `yaml:"failure_limit"`
		OpenTimeout  time.Duration `yaml:"open_timeout"`
	} `yaml:"provider"`
	Cache struct {
		RedisAddr     string        `yaml:"redis_addr"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db"`
		Prefix        string        `yaml:"prefix"`
		TTL           time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Store struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"store"`
	Schedule struct {
		SnapshotCron  string `yaml:"snapshot_cron"`
		WatchlistCron string `yaml:"watchlist_cron"`
	} `yaml:"schedule"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCKBOARD_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("STOCKBOARD_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("STOCKBOARD_STATIC_DIR"); v != "" {
		cfg.Server.StaticDir = v
	}
	if v := os.Getenv("STOCKBOARD_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("STOCKBOARD_SEED: %w", err)
		}
		cfg.Provider.Seed = seed
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Cache.RedisPassword = v
	}
	if v := os.Getenv("STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5001
	}
	if cfg.Server.StaticDir == "" {
		cfg.Server.StaticDir = "web"
	}
	if len(cfg.Server.StaticPatterns) == 0 {
		cfg.Server.StaticPatterns = []string{"*.html", "css/**", "js/**", "img/**", "favicon.ico"}
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 20
	}
	if cfg.Server.RateBurst == 0 {
		cfg.Server.RateBurst = 40
	}
	if cfg.Provider.FailureLimit == 0 {
		cfg.Provider.FailureLimit = 5
	}
	if cfg.Provider.OpenTimeout == 0 {
		cfg.Provider.OpenTimeout = 30 * time.Second
	}
	if cfg.Provider.Seed == 0 {
		cfg.Provider.Seed = time.Now().UnixNano()
	}
	if cfg.Cache.Prefix == "" {
		cfg.Cache.Prefix = "stockboard:"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 5 * time.Minute
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "sqlite"
	}
	if cfg.Store.DSN == "" && cfg.Store.Driver == "sqlite" {
		cfg.Store.DSN = "data/stockboard.db"
	}
	if cfg.Schedule.SnapshotCron == "" {
		cfg.Schedule.SnapshotCron = "*/5 * * * * *"
	}
	if cfg.Schedule.WatchlistCron == "" {
		cfg.Schedule.WatchlistCron = "*/30 * * * * *"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "auto"
	}

	return cfg, nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.Server.RateBurst < 0 {
		return fmt.Errorf("server.rate_burst must not be negative")
	}
	if c.Provider.LatencyScale < 0 {
		return fmt.Errorf("provider.latency_scale must not be negative")
	}
	switch c.Store.Driver {
	case "sqlite", "postgres", "file":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for driver %s", c.Store.Driver)
		}
	case "memory":
	default:
		return fmt.Errorf("store.driver must be sqlite, postgres, file or memory, got %q", c.Store.Driver)
	}
	switch c.Log.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("log.format must be auto, console or json, got %q", c.Log.Format)
	}
	return nil
}
