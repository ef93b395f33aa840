// Package bridge exposes the host-facing command surface described in
// the external interfaces section: node/network editing commands,
// design-file persistence, .cnnd library import, and preferences
// loading. It is the one package in this module that behaves like an
// application shell around the evaluator core rather than a pure
// library: it owns named NodeNetwork instances, logs diagnostics, and
// talks to the filesystem.
package bridge
