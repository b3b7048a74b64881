// Package telemetry bundles the observability concerns of adcflow:
// structured logging with zerolog, Prometheus metrics, and OpenTelemetry
// tracing, behind one configurable Telemetry value.
//
// Components are nil-safe and disable cleanly: a Telemetry created with
// Nop() logs nothing, records nothing, and exports nothing, which keeps
// engine and transport code free of conditional instrumentation.
//
// Apply runs are correlated across components by a run ID carried in the
// context (ContextWithRunID / RunIDFromContext).
package telemetry
