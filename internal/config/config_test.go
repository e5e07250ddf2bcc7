package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Storage.Driver != "memory" {
		t.Fatalf("driver = %q", cfg.Storage.Driver)
	}
	if cfg.AccessTTL() != 24*time.Hour {
		t.Fatalf("access ttl = %v", cfg.AccessTTL())
	}
	if cfg.Events.Channel != "gomart.events" {
		t.Fatalf("channel = %q", cfg.Events.Channel)
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
app:
  env: staging
server:
  addr: ":9999"
storage:
  driver: memory
jwt:
  issuer: mi-emisor
  access_ttl: 2h
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SERVER_ADDR", ":7777")
	t.Setenv("JWT_SECRET", "secreto-de-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Env != "staging" {
		t.Fatalf("env = %q", cfg.App.Env)
	}
	// El entorno pisa al YAML
	if cfg.Server.Addr != ":7777" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.JWT.Secret != "secreto-de-test" {
		t.Fatalf("secret = %q", cfg.JWT.Secret)
	}
	if cfg.AccessTTL() != 2*time.Hour {
		t.Fatalf("ttl = %v", cfg.AccessTTL())
	}
}

func TestValidate_Failures(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	if _, err := Load(""); err == nil {
		t.Fatal("prod sin JWT_SECRET: se esperaba error")
	}

	t.Setenv("APP_ENV", "dev")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("STORAGE_DSN", "")
	if _, err := Load(""); err == nil {
		t.Fatal("postgres sin DSN: se esperaba error")
	}
}
