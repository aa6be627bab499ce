package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testYAML = `
app:
  name: fakestore-etl
  version: 1.0.0
  env: test
api:
  base_url: https://fakestoreapi.com
  timeout: 30s
pipeline:
  scratch_dir: data
storage:
  s3:
    bucket: etl-bucket
    region: us-east-1
scheduler:
  owner: data-team
  notify_email: team@example.com
  retry_attempts: 3
  retry_delay: 5m
logging:
  level: info
  format: console
`

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
}

func TestLoad(t *testing.T) {
	writeConfig(t, testYAML)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.App.Name != "fakestore-etl" {
		t.Errorf("Unexpected app name %q", cfg.App.Name)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("Unexpected API timeout %v", cfg.API.Timeout)
	}
	if cfg.Storage.S3.Bucket != "etl-bucket" {
		t.Errorf("Unexpected bucket %q", cfg.Storage.S3.Bucket)
	}
	if cfg.Scheduler.RetryAttempts != 3 || cfg.Scheduler.RetryDelay != 5*time.Minute {
		t.Errorf("Unexpected retry settings: %d / %v", cfg.Scheduler.RetryAttempts, cfg.Scheduler.RetryDelay)
	}
}

func TestLoadDefaults(t *testing.T) {
	writeConfig(t, "app:\n  name: fakestore-etl\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.BaseURL != "https://fakestoreapi.com" {
		t.Errorf("Expected default base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.UsersEndpoint != "/users" || cfg.API.ProductsEndpoint != "/products" || cfg.API.CartsEndpoint != "/carts" {
		t.Errorf("Expected default endpoints, got %q %q %q",
			cfg.API.UsersEndpoint, cfg.API.ProductsEndpoint, cfg.API.CartsEndpoint)
	}
	if cfg.Pipeline.ScratchDir != "data" {
		t.Errorf("Expected default scratch dir, got %q", cfg.Pipeline.ScratchDir)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	writeConfig(t, testYAML)
	t.Setenv("AWS_ACCESS_KEY_ID", "env-key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "env-secret")
	t.Setenv("S3_BUCKET", "env-bucket")
	t.Setenv("NOTIFY_EMAIL", "oncall@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.S3.AccessKey != "env-key" || cfg.Storage.S3.SecretKey != "env-secret" {
		t.Error("Environment credentials must override the config file")
	}
	if cfg.Storage.S3.Bucket != "env-bucket" {
		t.Errorf("Expected env bucket, got %q", cfg.Storage.S3.Bucket)
	}
	if cfg.Scheduler.NotifyEmail != "oncall@example.com" {
		t.Errorf("Expected env notify email, got %q", cfg.Scheduler.NotifyEmail)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	if _, err := Load(); err == nil {
		t.Error("Expected error for missing config file")
	}
}
