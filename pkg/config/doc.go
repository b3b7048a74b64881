// Package config loads and validates adcflow's two kinds of input files:
// the settings file (device endpoint, credentials, store, telemetry) and
// virtual-service definition files, which are plain YAML mappings that
// mirror the device's configuration tree.
package config
