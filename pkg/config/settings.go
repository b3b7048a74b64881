package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/adcflow/adcflow/pkg/telemetry"
	"github.com/adcflow/adcflow/pkg/transports/rest"
)

// Settings is the top-level adcflow configuration file.
type Settings struct {
	// Device configures the controller's HTTP API endpoint and credentials.
	Device rest.Config `yaml:"device" validate:"required"`

	// RootPath overrides where virtual services live in the configuration
	// tree. Empty selects the engine default.
	RootPath string `yaml:"root_path"`

	// MaxParallel bounds concurrent writes within a scheduling phase.
	MaxParallel int `yaml:"max_parallel" validate:"gte=0"`

	// Store configures the local run-history database.
	Store StoreSettings `yaml:"store"`

	// Telemetry configures logging, metrics, and tracing.
	Telemetry TelemetrySettings `yaml:"telemetry"`
}

// StoreSettings configures the run-history store.
type StoreSettings struct {
	// Path is the SQLite database file. Empty disables run history.
	Path string `yaml:"path"`
}

// TelemetrySettings is the file-level shape of the telemetry configuration.
type TelemetrySettings struct {
	LogLevel        string `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error fatal"`
	LogFormat       string `yaml:"log_format" validate:"omitempty,oneof=console json"`
	MetricsEnabled  bool   `yaml:"metrics_enabled"`
	MetricsListen   string `yaml:"metrics_listen"`
	TracingEnabled  bool   `yaml:"tracing_enabled"`
	TracingExporter string `yaml:"tracing_exporter" validate:"omitempty,oneof=otlp stdout none"`
	TracingEndpoint string `yaml:"tracing_endpoint"`
}

// LoadSettings reads, validates, and defaults a settings file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings := &Settings{}
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if err := validator.New().Struct(settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	if err := settings.Device.Validate(); err != nil {
		return nil, fmt.Errorf("invalid device settings: %w", err)
	}

	return settings, nil
}

// TelemetryConfig expands the file-level telemetry settings into the full
// telemetry configuration.
func (s *Settings) TelemetryConfig(version string) *telemetry.Config {
	cfg := telemetry.DefaultConfig()
	cfg.ServiceVersion = version

	if s.Telemetry.LogLevel != "" {
		cfg.Logging.Level = s.Telemetry.LogLevel
	}
	if s.Telemetry.LogFormat != "" {
		cfg.Logging.Format = s.Telemetry.LogFormat
	}

	cfg.Metrics.Enabled = s.Telemetry.MetricsEnabled
	if s.Telemetry.MetricsListen != "" {
		cfg.Metrics.ListenAddress = s.Telemetry.MetricsListen
	}

	cfg.Tracing.Enabled = s.Telemetry.TracingEnabled
	if s.Telemetry.TracingExporter != "" {
		cfg.Tracing.Exporter = s.Telemetry.TracingExporter
	}
	cfg.Tracing.Endpoint = s.Telemetry.TracingEndpoint

	return cfg
}
