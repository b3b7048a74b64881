// Package stores provides the persistence layer for adcflow's apply-run
// history: SQLite-backed storage of runs and their individual writes. The
// store is an audit trail only; configuration truth lives on the device.
package stores
