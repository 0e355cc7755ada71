package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadRequiresBaseURL(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatal("missing base url must fail validation")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BESWAN_API_BASE_URL", "https://api.bersekolah.example/api")
	t.Setenv("BESWAN_TOKEN", "opaque")
	t.Setenv("BESWAN_REQUEST_TIMEOUT", "15s")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIBaseURL != "https://api.bersekolah.example/api" {
		t.Errorf("base url = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("timeout = %v", cfg.RequestTimeout)
	}
	if cfg.Category != "pendukung" {
		t.Errorf("default category = %q", cfg.Category)
	}
	if cfg.RetryMaxAttempts != 1 {
		t.Errorf("default retry attempts = %d, want 1 (no automatic retries)", cfg.RetryMaxAttempts)
	}
}

func TestLoadYAMLFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "beswanadmin.yaml")
	raw := []byte("api_base_url: https://file.example/api\ntoken: from-file\nlog_level: debug\nwatch_interval: 10s\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BESWAN_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIBaseURL != "https://file.example/api" {
		t.Errorf("base url = %q", cfg.APIBaseURL)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("env must win over file, log level = %q", cfg.LogLevel)
	}
	if cfg.WatchInterval != 10*time.Second {
		t.Errorf("watch interval = %v", cfg.WatchInterval)
	}
}

func TestLoadRequiresSomeCredential(t *testing.T) {
	t.Setenv("BESWAN_API_BASE_URL", "https://api.bersekolah.example/api")
	if _, err := Load(""); err == nil {
		t.Fatal("missing token and token file must fail")
	}

	t.Setenv("BESWAN_TOKEN_FILE", "/tmp/token")
	if _, err := Load(""); err != nil {
		t.Fatalf("token file alone must satisfy the credential check, got %v", err)
	}
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("BESWAN_API_BASE_URL", "https://api.bersekolah.example/api")
	t.Setenv("BESWAN_TOKEN", "opaque")
	t.Setenv("BESWAN_LOG_LEVEL", "loud")
	if _, err := Load(""); err == nil {
		t.Fatal("unknown log level must fail validation")
	}
}
