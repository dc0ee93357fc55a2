package config

import (
	"testing"
	"time"
)

func TestLoad_defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "BCRYPT_COST", "AUTH_TOKEN_TTL", "RESET_TOKEN_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("expected postgres driver, got %s", cfg.DBDriver)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("expected bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if cfg.AuthTokenTTL != 24*time.Hour {
		t.Errorf("expected auth token ttl 24h, got %s", cfg.AuthTokenTTL)
	}
	if cfg.ResetTokenTTL != 45*time.Minute {
		t.Errorf("expected reset token ttl 45m, got %s", cfg.ResetTokenTTL)
	}
}

func TestLoad_overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("AUTH_TOKEN_TTL", "2h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("expected bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.AuthTokenTTL != 2*time.Hour {
		t.Errorf("expected 2h, got %s", cfg.AuthTokenTTL)
	}
}

func TestLoad_invalidValuesFallBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "99")
	t.Setenv("RESET_TOKEN_TTL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("expected out-of-range cost to fall back to 10, got %d", cfg.BcryptCost)
	}
	if cfg.ResetTokenTTL != 45*time.Minute {
		t.Errorf("expected invalid ttl to fall back to 45m, got %s", cfg.ResetTokenTTL)
	}
}

func TestPostgresURL(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	want := "postgres://u:p@h:5432/d?sslmode=disable"
	if got := cfg.PostgresURL(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
