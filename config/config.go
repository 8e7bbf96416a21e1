package config

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type DatabaseConfig struct {
	// DSN is a Postgres connection URL. DATABASE_URL overrides it.
	DSN          string `yaml:"dsn"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type StorageConfig struct {
	BasePath            string `yaml:"base_path"`
	DefaultStorageLimit int64  `yaml:"default_storage_limit"`
	PremiumStorageLimit int64  `yaml:"premium_storage_limit"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	// Secret must come from the config file or SECRET_KEY. There is no
	// generated fallback: tokens signed with a random per-process secret
	// would all become invalid on restart.
	Secret        string `yaml:"secret"`
	ExpireMinutes int    `yaml:"expire_minutes"`
	CookieName    string `yaml:"cookie_name"`
}

type RateLimitConfig struct {
	SignupPerMin  int `yaml:"signup_per_min"`
	LoginPerMin   int `yaml:"login_per_min"`
	WindowSeconds int `yaml:"window_seconds"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

var AppConfig *Config

var ErrMissingSecret = errors.New("jwt secret is not configured (set jwt.secret or SECRET_KEY)")

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if cfg.JWT.Secret == "" {
		return nil, ErrMissingSecret
	}

	AppConfig = &cfg
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "postgres://localhost:5432/dataforge?sslmode=disable"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./data"
	}
	if cfg.Storage.DefaultStorageLimit == 0 {
		cfg.Storage.DefaultStorageLimit = 1 << 30
	}
	if cfg.Storage.PremiumStorageLimit == 0 {
		cfg.Storage.PremiumStorageLimit = 999_999_999_999
	}
	if cfg.JWT.ExpireMinutes == 0 {
		cfg.JWT.ExpireMinutes = 60
	}
	if cfg.JWT.CookieName == "" {
		cfg.JWT.CookieName = "access_token"
	}
	if cfg.RateLimit.SignupPerMin == 0 {
		cfg.RateLimit.SignupPerMin = 5
	}
	if cfg.RateLimit.LoginPerMin == 0 {
		cfg.RateLimit.LoginPerMin = 10
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
}
