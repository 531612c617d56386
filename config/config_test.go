package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DEBUG", "")

	cfg := LoadConfig()

	if cfg.Database.Path != "tasks.db" {
		t.Fatalf("unexpected database path: %q", cfg.Database.Path)
	}
	if cfg.ServerPort != 8080 {
		t.Fatalf("unexpected port: %d", cfg.ServerPort)
	}
	if cfg.Debug {
		t.Fatalf("expected debug to be off")
	}
	if !cfg.UsesDevSecret() {
		t.Fatalf("expected development secret, got %q", cfg.SecretKey)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("DATABASE_PATH", "/tmp/other.db")
	t.Setenv("SECRET_KEY", "kibo")
	t.Setenv("SERVER_PORT", "5000")
	t.Setenv("DEBUG", "true")

	cfg := LoadConfig()

	if cfg.Database.Path != "/tmp/other.db" {
		t.Fatalf("unexpected database path: %q", cfg.Database.Path)
	}
	if cfg.ServerPort != 5000 {
		t.Fatalf("unexpected port: %d", cfg.ServerPort)
	}
	if !cfg.Debug {
		t.Fatalf("expected debug to be on")
	}
	if cfg.SecretKey != "kibo" || cfg.UsesDevSecret() {
		t.Fatalf("unexpected secret: %q", cfg.SecretKey)
	}
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("SERVER_PORT", "eighty")
	t.Setenv("DEBUG", "sometimes")

	cfg := LoadConfig()

	if cfg.ServerPort != 8080 {
		t.Fatalf("expected default port, got %d", cfg.ServerPort)
	}
	if cfg.Debug {
		t.Fatalf("expected debug default")
	}
}
