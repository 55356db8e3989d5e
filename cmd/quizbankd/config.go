package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	backendFile   = "file"
	backendDuckDB = "duckdb"
	backendRedis  = "redis"
)

// config describes the quizbankd YAML configuration.
type config struct {
	Server struct {
		ListenAddr  string   `yaml:"listen_addr"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Store struct {
		Backend          string `yaml:"backend"`
		Path             string `yaml:"path"`
		DegradeOnCorrupt bool   `yaml:"degrade_on_corrupt"`
		Redis            struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Key      string `yaml:"key"`
		} `yaml:"redis"`
		DuckDB struct {
			Path string `yaml:"path"`
		} `yaml:"duckdb"`
	} `yaml:"store"`
	Skills struct {
		Dir string `yaml:"dir"`
	} `yaml:"skills"`
}

// loadConfig reads the configuration file, applies environment overrides,
// and validates the result. An empty path uses defaults and the environment.
func loadConfig(path string) (config, error) {
	var cfg config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":3001"
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = backendFile
	}
	switch cfg.Store.Backend {
	case backendFile:
		if cfg.Store.Path == "" {
			cfg.Store.Path = "data/questions.json"
		}
	case backendDuckDB:
		if cfg.Store.DuckDB.Path == "" {
			return cfg, fmt.Errorf("store.duckdb.path is required")
		}
	case backendRedis:
		if cfg.Store.Redis.Addr == "" {
			return cfg, fmt.Errorf("store.redis.addr is required")
		}
	default:
		return cfg, fmt.Errorf("store.backend %q is not supported (expected file|duckdb|redis)", cfg.Store.Backend)
	}
	return cfg, nil
}

// applyEnv overlays environment variables on the file configuration.
func applyEnv(cfg *config) error {
	if port := getEnv("PORT", ""); port != "" {
		cfg.Server.ListenAddr = ":" + port
	}
	cfg.Server.ListenAddr = getEnv("QUIZBANK_LISTEN_ADDR", cfg.Server.ListenAddr)
	if origins := getEnv("QUIZBANK_CORS_ORIGINS", ""); origins != "" {
		cfg.Server.CORSOrigins = strings.Split(origins, ",")
	}
	cfg.Store.Backend = getEnv("QUIZBANK_STORE_BACKEND", cfg.Store.Backend)
	cfg.Store.Path = getEnv("QUIZBANK_STORE_PATH", cfg.Store.Path)
	cfg.Store.DuckDB.Path = getEnv("QUIZBANK_DUCKDB_PATH", cfg.Store.DuckDB.Path)
	cfg.Store.Redis.Addr = getEnv("QUIZBANK_REDIS_ADDR", cfg.Store.Redis.Addr)
	cfg.Store.Redis.Key = getEnv("QUIZBANK_REDIS_KEY", cfg.Store.Redis.Key)
	cfg.Skills.Dir = getEnv("QUIZBANK_SKILLS_DIR", cfg.Skills.Dir)
	if value := getEnv("QUIZBANK_DEGRADE_ON_CORRUPT", ""); value != "" {
		degrade, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("QUIZBANK_DEGRADE_ON_CORRUPT: %w", err)
		}
		cfg.Store.DegradeOnCorrupt = degrade
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
