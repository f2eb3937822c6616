package config

import (
	"os"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()
	return tmpFile.Name()
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
log:
  level: "debug"
  format: "json"
store:
  driver: "postgres"
  dsn: "host=db user=app dbname=contracts"
  max_contracts: 50
minio:
  endpoint: "localhost:9000"
  access_key: "minioadmin"
  secret_key: "minioadmin"
  bucket: "test-bucket"
  use_ssl: false
processing:
  workers: 8
  queue_size: 512
  max_retries: 5
  retry_delay_seconds: 30
  max_file_size: 1048576
cleanup:
  retention_days: 14
  schedule: "30 3 * * *"
auth:
  jwt_secret: "test-secret"
  token_expire_hours: 48
users:
  - username: "testuser"
    password: "testpass"
    tenant: "testtenant"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Unexpected log config: %+v", cfg.Log)
	}
	if cfg.Store.Driver != "postgres" {
		t.Errorf("Expected postgres driver, got %s", cfg.Store.Driver)
	}
	if cfg.Store.MaxContracts != 50 {
		t.Errorf("Expected max_contracts 50, got %d", cfg.Store.MaxContracts)
	}
	if cfg.Minio.Endpoint != "localhost:9000" {
		t.Errorf("Expected endpoint localhost:9000, got %s", cfg.Minio.Endpoint)
	}
	if cfg.Processing.Workers != 8 || cfg.Processing.QueueSize != 512 {
		t.Errorf("Unexpected processing config: %+v", cfg.Processing)
	}
	if cfg.Processing.MaxRetries != 5 || cfg.Processing.RetryDelaySeconds != 30 {
		t.Errorf("Unexpected retry config: %+v", cfg.Processing)
	}
	if cfg.Processing.MaxFileSize != 1048576 {
		t.Errorf("Expected max_file_size 1048576, got %d", cfg.Processing.MaxFileSize)
	}
	if cfg.Cleanup.RetentionDays != 14 || cfg.Cleanup.Schedule != "30 3 * * *" {
		t.Errorf("Unexpected cleanup config: %+v", cfg.Cleanup)
	}
	if cfg.Auth.TokenExpireHours != 48 {
		t.Errorf("Expected token_expire_hours 48, got %d", cfg.Auth.TokenExpireHours)
	}
	if len(cfg.Users) != 1 || cfg.Users[0].Username != "testuser" {
		t.Errorf("Unexpected users: %+v", cfg.Users)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
minio:
  endpoint: "localhost:9000"
  access_key: "test"
  secret_key: "test"
  bucket: "bucket"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("Expected default memory driver, got %s", cfg.Store.Driver)
	}
	if cfg.Store.MaxContracts != 1000 {
		t.Errorf("Expected default max_contracts 1000, got %d", cfg.Store.MaxContracts)
	}
	if cfg.Processing.Workers != 4 || cfg.Processing.QueueSize != 256 {
		t.Errorf("Unexpected processing defaults: %+v", cfg.Processing)
	}
	if cfg.Processing.MaxRetries != 3 || cfg.Processing.RetryDelaySeconds != 60 {
		t.Errorf("Unexpected retry defaults: %+v", cfg.Processing)
	}
	if cfg.Processing.MaxFileSize != 50*1024*1024 {
		t.Errorf("Expected default max file size 50MB, got %d", cfg.Processing.MaxFileSize)
	}
	if cfg.Cleanup.RetentionDays != 30 || cfg.Cleanup.Schedule != "0 2 * * *" {
		t.Errorf("Unexpected cleanup defaults: %+v", cfg.Cleanup)
	}
	if cfg.Auth.TokenExpireHours != 24 {
		t.Errorf("Expected default token_expire_hours 24, got %d", cfg.Auth.TokenExpireHours)
	}
}

func TestLoadNonExistent(t *testing.T) {
	if _, err := Load("nonexistent.yaml"); err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: yaml: content:")
	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestFindUser(t *testing.T) {
	cfg := &Config{
		Users: []User{
			{Username: "alice", Password: "a", Tenant: "acme"},
			{Username: "bob", Password: "b", Tenant: "globex"},
		},
	}

	if u := cfg.FindUser("bob"); u == nil || u.Tenant != "globex" {
		t.Errorf("Unexpected user: %+v", u)
	}
	if u := cfg.FindUser("mallory"); u != nil {
		t.Errorf("Expected nil for unknown user, got %+v", u)
	}
}
