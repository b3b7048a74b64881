package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSettingsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adcflow.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeSettingsFile(t, `
device:
  host: device.example.com
  username: admin
  password: secret
root_path: config/slb/virtualServers
max_parallel: 4
store:
  path: /var/lib/adcflow/runs.db
telemetry:
  log_level: debug
  log_format: json
  metrics_enabled: true
  metrics_listen: ":9091"
`)

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if settings.Device.Host != "device.example.com" {
		t.Errorf("Expected host device.example.com, got %s", settings.Device.Host)
	}
	// Device defaults are filled during validation.
	if settings.Device.Port != 443 {
		t.Errorf("Expected default port 443, got %d", settings.Device.Port)
	}
	if settings.MaxParallel != 4 {
		t.Errorf("Expected max_parallel 4, got %d", settings.MaxParallel)
	}
	if settings.Store.Path != "/var/lib/adcflow/runs.db" {
		t.Errorf("Expected store path, got %s", settings.Store.Path)
	}
	if settings.Telemetry.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", settings.Telemetry.LogLevel)
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing device host",
			content: `
device:
  username: admin
  password: secret
`,
		},
		{
			name: "bad log level",
			content: `
device:
  host: device.example.com
  username: admin
  password: secret
telemetry:
  log_level: verbose
`,
		},
		{
			name:    "malformed yaml",
			content: "device: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSettingsFile(t, tt.content)
			if _, err := LoadSettings(path); err == nil {
				t.Fatal("Expected error, got nil")
			}
		})
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
}

func TestSettings_TelemetryConfig(t *testing.T) {
	settings := &Settings{
		Telemetry: TelemetrySettings{
			LogLevel:        "warn",
			LogFormat:       "json",
			MetricsEnabled:  true,
			MetricsListen:   ":9999",
			TracingEnabled:  true,
			TracingExporter: "otlp",
			TracingEndpoint: "collector:4317",
		},
	}

	cfg := settings.TelemetryConfig("1.2.3")

	if cfg.ServiceVersion != "1.2.3" {
		t.Errorf("Expected version 1.2.3, got %s", cfg.ServiceVersion)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Expected level warn, got %s", cfg.Logging.Level)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.ListenAddress != ":9999" {
		t.Errorf("Expected metrics enabled on :9999, got %+v", cfg.Metrics)
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.Endpoint != "collector:4317" {
		t.Errorf("Expected tracing to collector:4317, got %+v", cfg.Tracing)
	}
}

func TestSettings_TelemetryConfig_Defaults(t *testing.T) {
	settings := &Settings{}
	cfg := settings.TelemetryConfig("dev")

	if cfg.Logging.Level == "" {
		t.Error("Expected a default log level")
	}
	if cfg.Metrics.Enabled {
		t.Error("Expected metrics disabled by default")
	}
	if cfg.Tracing.Enabled {
		t.Error("Expected tracing disabled by default")
	}
}
