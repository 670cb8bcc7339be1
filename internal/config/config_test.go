package config

import (
	"testing"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	t.Setenv("GOOGLE_REFRESH_TOKEN", "refresh-token")
}

func TestLoad(t *testing.T) {
	setCredentials(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.GoogleClientID != "client-id" || cfg.GoogleRefreshToken != "refresh-token" {
		t.Errorf("credentials not read: %+v", cfg)
	}
	if cfg.HTTPAddr != ":3000" {
		t.Errorf("HTTPAddr = %q, want default :3000", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q, want default :9090", cfg.MetricsAddr)
	}
}

func TestLoadOverrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("HTTP_ADDR", "127.0.0.1:8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:8080" {
		t.Errorf("HTTPAddr = %q, want the override", cfg.HTTPAddr)
	}
}

func TestLoadMissingRefreshToken(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	t.Setenv("GOOGLE_REFRESH_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Error("expected an error when GOOGLE_REFRESH_TOKEN is unset")
	}
}

func TestLoadClientOnly(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	t.Setenv("GOOGLE_REFRESH_TOKEN", "")

	cfg, err := LoadClientOnly()
	if err != nil {
		t.Fatalf("LoadClientOnly returned error: %v", err)
	}
	if cfg.GoogleClientID != "client-id" {
		t.Errorf("GoogleClientID = %q", cfg.GoogleClientID)
	}

	creds := cfg.Credentials()
	if creds.ClientSecret != "client-secret" {
		t.Errorf("Credentials().ClientSecret = %q", creds.ClientSecret)
	}
}
