package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Postgres.MaxConns != 15 {
		t.Errorf("expected max_conns 15, got %d", cfg.Postgres.MaxConns)
	}
	if cfg.Auth.Enabled {
		t.Error("auth must default to disabled for local development")
	}
	if cfg.Auth.ClaimsTTL != time.Minute {
		t.Errorf("expected claims ttl 1m, got %v", cfg.Auth.ClaimsTTL)
	}
}

func TestLoadYAMLOverride(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "test.yaml")

	content := `
server:
  port: "9090"
  cors_origin: "http://example.com"
postgres:
  max_conns: 20
logging:
  level: "debug"
`
	if err := os.WriteFile(yamlPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Defaults()
	if err := loadYAML(&cfg, yamlPath); err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.CORSOrigin != "http://example.com" {
		t.Errorf("expected cors http://example.com, got %s", cfg.Server.CORSOrigin)
	}
	if cfg.Postgres.MaxConns != 20 {
		t.Errorf("expected max_conns 20, got %d", cfg.Postgres.MaxConns)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
	// Unchanged fields keep defaults
	if cfg.Cache.MaxSizeMB != 16 {
		t.Errorf("expected default cache size, got %d", cfg.Cache.MaxSizeMB)
	}
}

func TestLoadYAMLMissingFileIsNotAnError(t *testing.T) {
	cfg := Defaults()
	if err := loadYAML(&cfg, filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("missing yaml must be tolerated: %v", err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("AGENTDESK_PORT", "7070")
	t.Setenv("DATABASE_URL", "postgres://env@localhost/env")
	t.Setenv("AGENTDESK_AUTH_ENABLED", "true")
	t.Setenv("AGENTDESK_AUTH_CLAIMS_TTL", "5m")

	cfg := Defaults()
	loadEnv(&cfg)

	if cfg.Server.Port != "7070" {
		t.Errorf("expected port 7070, got %s", cfg.Server.Port)
	}
	if cfg.Postgres.DSN != "postgres://env@localhost/env" {
		t.Errorf("expected env dsn, got %s", cfg.Postgres.DSN)
	}
	if !cfg.Auth.Enabled {
		t.Error("expected auth enabled from env")
	}
	if cfg.Auth.ClaimsTTL != 5*time.Minute {
		t.Errorf("expected claims ttl 5m, got %v", cfg.Auth.ClaimsTTL)
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	if err := validate(&cfg); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	bad := Defaults()
	bad.Postgres.DSN = ""
	if err := validate(&bad); err == nil {
		t.Error("empty dsn must be rejected")
	}

	bad = Defaults()
	bad.Auth.Enabled = true
	if err := validate(&bad); err == nil {
		t.Error("enabled auth without secret must be rejected")
	}

	bad = Defaults()
	bad.Auth.Enabled = true
	bad.Auth.SessionSecret = "s"
	if err := validate(&bad); err != nil {
		t.Errorf("enabled auth with secret must validate: %v", err)
	}
}
