package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseService(t *testing.T) {
	obj, err := ParseService([]byte(`
name: svc1
vip: "10.0.0.1:443"
port: 8443
idleTimeout: 30.5
serviceHttp:
  maxInFlight: 2
  keepAliveTimeout: 5
`))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if obj["name"].Scalar() != "svc1" {
		t.Errorf("Expected name svc1, got %q", obj["name"].Scalar())
	}
	if obj["port"].Scalar() != "8443" {
		t.Errorf("Expected port 8443, got %q", obj["port"].Scalar())
	}
	if obj["idleTimeout"].Scalar() != "30.5" {
		t.Errorf("Expected idleTimeout 30.5, got %q", obj["idleTimeout"].Scalar())
	}

	sub := obj["serviceHttp"]
	if !sub.IsObject() {
		t.Fatal("Expected serviceHttp to be a nested object")
	}
	if sub.Object()["maxInFlight"].Scalar() != "2" {
		t.Errorf("Expected nested maxInFlight 2, got %q", sub.Object()["maxInFlight"].Scalar())
	}
}

func TestParseService_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed yaml", data: "name: ["},
		{name: "list value", data: "members:\n  - a\n  - b"},
		{name: "null value", data: "vip: null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseService([]byte(tt.data)); err == nil {
				t.Fatal("Expected error, got nil")
			}
		})
	}
}

func TestLoadService(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svc1.yaml")
	content := "name: svc1\nadminStatus: true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write definition: %v", err)
	}

	obj, err := LoadService(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if obj["adminStatus"].Scalar() != "1" {
		t.Errorf("Expected adminStatus 1, got %q", obj["adminStatus"].Scalar())
	}
}

func TestLoadService_MissingFile(t *testing.T) {
	if _, err := LoadService(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
}
