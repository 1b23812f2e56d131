package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "projectman")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DB.Host != "localhost" || cfg.DB.Port != 5432 {
		t.Errorf("db defaults = %s:%d, want localhost:5432", cfg.DB.Host, cfg.DB.Port)
	}
	if cfg.DB.MaxSize != 10 {
		t.Errorf("pool size = %d, want 10", cfg.DB.MaxSize)
	}
	if cfg.DB.QueryTimeout != 5*time.Second {
		t.Errorf("query timeout = %v, want 5s", cfg.DB.QueryTimeout)
	}
	if cfg.Auth.AccessTokenDuration != 15*time.Minute {
		t.Errorf("access token duration = %v, want 15m", cfg.Auth.AccessTokenDuration)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("server port = %q, want 8080", cfg.Server.Port)
	}
}

func TestLoadConfigCollectsAllErrors(t *testing.T) {
	// None of the required variables may be set; the error must name each
	// one. t.Setenv registers the restore, os.Unsetenv does the clearing
	// since an empty value still counts as set.
	for _, key := range []string{"DB_USER", "DB_PASSWORD", "DB_NAME", "JWT_SECRET"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("expected an error with no configuration set")
	}
	for _, key := range []string{"DB_USER", "DB_PASSWORD", "DB_NAME", "JWT_SECRET"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error does not mention %s: %v", key, err)
		}
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("DB_QUERY_TIMEOUT", "soon")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("expected an error for unparseable values")
	}
	if !strings.Contains(err.Error(), "DB_PORT") || !strings.Contains(err.Error(), "DB_QUERY_TIMEOUT") {
		t.Errorf("error does not mention both bad variables: %v", err)
	}
}

func TestLoadConfigClampsPoolSize(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_POOL_SIZE", "2")

	// An out-of-range pool size is clamped and reported.
	_, err := LoadConfig()
	if err == nil || !strings.Contains(err.Error(), "DB_POOL_SIZE") {
		t.Fatalf("expected a pool size error, got %v", err)
	}
}
