package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/adcflow/adcflow/pkg/conftree"
)

// LoadService reads a virtual-service definition file: a YAML mapping that
// mirrors the desired subtree of the device configuration.
func LoadService(path string) (conftree.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service definition: %w", err)
	}
	return ParseService(data)
}

// ParseService parses a virtual-service definition from YAML bytes.
func ParseService(data []byte) (conftree.Object, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse service definition: %w", err)
	}

	desired, err := conftree.FromMap(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid service definition: %w", err)
	}
	return desired, nil
}
