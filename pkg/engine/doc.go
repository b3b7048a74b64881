// Package engine implements the configuration-tree write scheduler at the
// heart of adcflow.
//
// # Overview
//
// The engine turns a declarative, possibly nested description of a device
// configuration node (for example a virtual service) into a correctly
// ordered sequence of writes against the device's tree-structured
// configuration API. Writes are grouped into five ordered phases:
//
//  1. Naming  - the node's "name" field, which also extends the base path
//  2. Disable - administrative disablement, applied before other attributes
//  3. General - every ordinary scalar attribute
//  4. Subtree - nested child nodes, applied by recursive scheduling
//  5. Enable  - administrative enablement, applied last
//
// Phases execute strictly in order. Within a phase, writes fan out
// concurrently and the phase completes only when every member has resolved;
// a failing phase halts progression to later phases. Nothing is retried and
// nothing is rolled back: partial application is an accepted outcome, and
// the returned error identifies exactly which phase and field failed.
//
// # Collaborators
//
// The scheduler drives a single narrow capability, the Transport interface
// (write/read/delete at a path). Session management, status-code handling,
// and payload encoding live behind the transport; the engine treats every
// transport failure uniformly.
//
// # Error Classification
//
// Errors carry a class for programmatic handling:
//
//   - validation: malformed caller input, detected before any I/O
//   - already_exists: workflow precondition failure
//   - transport: a failed device read or write
//   - partial: a phase-level aggregate failure wrapping the first task error
//
// Use the predicate helpers to inspect errors:
//
//	if engine.IsAlreadyExists(err) {
//	    // target was already configured
//	}
//
// # Cancellation
//
// Cancelling the context never interrupts a phase in flight. In-flight
// writes finish naturally; cancellation is observed only between phases,
// where it prevents later phases from starting.
package engine
