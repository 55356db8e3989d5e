package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoadConfigDefaults verifies defaults with no file.
func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.ListenAddr != ":3001" || cfg.Store.Backend != backendFile || cfg.Store.Path != "data/questions.json" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Fatalf("expected wildcard cors, got %v", cfg.Server.CORSOrigins)
	}
}

// TestLoadConfigFileAndEnv verifies the environment overrides the file.
func TestLoadConfigFileAndEnv(t *testing.T) {
	path := writeConfig(t, `server:
  listen_addr: ":9000"
  cors_origins: ["http://localhost:5173"]
store:
  backend: DuckDB
  duckdb:
    path: /tmp/bank.duckdb
skills:
  dir: public/data/skills
`)
	t.Setenv("PORT", "4000")
	t.Setenv("QUIZBANK_DEGRADE_ON_CORRUPT", "true")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.ListenAddr != ":4000" {
		t.Fatalf("expected PORT override, got %q", cfg.Server.ListenAddr)
	}
	if cfg.Store.Backend != backendDuckDB || cfg.Store.DuckDB.Path != "/tmp/bank.duckdb" {
		t.Fatalf("unexpected store config: %+v", cfg.Store)
	}
	if !cfg.Store.DegradeOnCorrupt || cfg.Skills.Dir != "public/data/skills" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.Server.CORSOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected cors origins: %v", cfg.Server.CORSOrigins)
	}
}

// TestLoadConfigErrors verifies required settings per backend.
func TestLoadConfigErrors(t *testing.T) {
	cases := map[string]string{
		"redis without addr":  "store:\n  backend: redis\n",
		"duckdb without path": "store:\n  backend: duckdb\n",
		"unknown backend":     "store:\n  backend: sqlite\n",
		"bad yaml":            "server: [",
	}
	for name, body := range cases {
		if _, err := loadConfig(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	t.Setenv("QUIZBANK_DEGRADE_ON_CORRUPT", "sometimes")
	if _, err := loadConfig(""); err == nil {
		t.Fatalf("expected error for invalid boolean override")
	}
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
