package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/marketplace/identity-api/internal/core/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "dev",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour || cfg.Auth.LoginDelay != 0 || cfg.Auth.BcryptCost != 10 {
		t.Fatalf("unexpected auth defaults: %+v", cfg.Auth)
	}
	if cfg.Auth.SessionBackend != SessionBackendMemory {
		t.Fatalf("unexpected session backend: %s", cfg.Auth.SessionBackend)
	}
	if cfg.Mongo.AuditEnabled || cfg.Mongo.AuditWorkers != 4 {
		t.Fatalf("unexpected mongo defaults: %+v", cfg.Mongo)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":      "a-long-production-secret",
		"ENV":             "production",
		"TOKEN_TTL":       "2h",
		"LOGIN_DELAY":     "500ms",
		"SESSION_BACKEND": "redis",
		"REDIS_ADDR":      "redis:6379",
		"AUDIT_ENABLED":   "true",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour || cfg.Auth.LoginDelay != 500*time.Millisecond {
		t.Fatalf("unexpected durations: %+v", cfg.Auth)
	}
	if cfg.Auth.SessionBackend != SessionBackendRedis || cfg.Redis.Addr != "redis:6379" || !cfg.Mongo.AuditEnabled {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":       {},
		"bad backend":          {"JWT_SECRET": "x", "SESSION_BACKEND": "etcd"},
		"short prod secret":    {"JWT_SECRET": "short", "ENV": "production"},
		"non positive ttl":     {"JWT_SECRET": "x", "TOKEN_TTL": "0s"},
		"negative login delay": {"JWT_SECRET": "x", "LOGIN_DELAY": "-1s"},
	}
	for name, env := range cases {
		if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParseCredentials(t *testing.T) {
	raw := []byte(`
accounts:
  - email: ops@market.test
    phone: "+6620000000"
    secret: s3cret
    profile:
      id: "42"
      name: Ops
      role: admin
      is_verified: true
      created_at: 2024-05-01T10:00:00Z
`)
	records, err := ParseCredentials(raw)
	if err != nil {
		t.Fatalf("ParseCredentials: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.Email != "ops@market.test" || r.Phone != "+6620000000" || r.Secret != "s3cret" {
		t.Fatalf("unexpected record: %+v", r)
	}
	if r.Profile.ID != "42" || r.Profile.Role != domain.RoleAdmin || !r.Profile.IsVerified {
		t.Fatalf("unexpected profile: %+v", r.Profile)
	}
	if !r.Profile.CreatedAt.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created_at: %v", r.Profile.CreatedAt)
	}
}

func TestParseCredentials_Empty(t *testing.T) {
	if _, err := ParseCredentials([]byte("accounts: []\n")); err == nil {
		t.Fatalf("expected error for empty account list")
	}
	if _, err := ParseCredentials([]byte("accounts: [")); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}

func TestLoadCredentials_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	body := "accounts:\n  - email: a@b.c\n    secret: x\n    profile: {id: \"1\", role: seller}\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	records, err := LoadCredentials(path)
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if records[0].Profile.Role != domain.RoleSeller {
		t.Fatalf("unexpected role: %s", records[0].Profile.Role)
	}

	if _, err := LoadCredentials(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
