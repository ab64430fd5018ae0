package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
http:
  port: 9000
  timeout: 3s
  allowed_origins: ["https://insure.example"]
log:
  level: debug
model:
  path: /srv/models/model.json
  strict_version: true
  watch: false
`)
	config, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Http.Port != 9000 || config.Http.Timeout != 3*time.Second {
		t.Fatalf("unexpected http config: %+v", config.Http)
	}
	if len(config.Http.AllowedOrigins) != 1 || config.Http.AllowedOrigins[0] != "https://insure.example" {
		t.Fatalf("unexpected origins: %v", config.Http.AllowedOrigins)
	}
	if config.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %s", config.Log.Level)
	}
	if config.Model.Path != "/srv/models/model.json" || !config.Model.StrictVersion || config.Model.Watch {
		t.Fatalf("unexpected model config: %+v", config.Model)
	}
	if config.Log.MaxBackups != 3 {
		t.Fatalf("expected defaults to survive partial yaml, got %+v", config.Log)
	}
}

func TestLoadRelativeModelPath(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "model:\n  path: models/model.json\n")
	config, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := filepath.Join(dir, "models", "model.json")
	if config.Model.Path != expected {
		t.Fatalf("expected %s, got %s", expected, config.Model.Path)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "http:\n  port: 9000\nmodel:\n  path: /srv/model.json\n")
	t.Setenv("TI_HTTP_PORT", "9100")
	t.Setenv("TI_MODEL_PATH", "/opt/model.json")
	t.Setenv("TI_MODEL_STRICT_VERSION", "true")
	t.Setenv("TI_LOG_LEVEL", "warn")

	config, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Http.Port != 9100 {
		t.Fatalf("expected env port, got %d", config.Http.Port)
	}
	if config.Model.Path != "/opt/model.json" || !config.Model.StrictVersion {
		t.Fatalf("unexpected model config: %+v", config.Model)
	}
	if config.Log.Level != "warn" {
		t.Fatalf("unexpected log level: %s", config.Log.Level)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Http.Port != 8501 || config.Model.Path != "./models/travel_insurance_model.json" {
		t.Fatalf("unexpected defaults: %+v", config)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "log:\n  level: verbose\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown log level")
	}
	path = writeConfig(t, dir, "http: [\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
