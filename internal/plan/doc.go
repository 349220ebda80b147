// Package plan implements a dependency-graph executor for provisioning
// steps.
//
// A graph is built from named nodes and explicit data-dependency edges.
// Execution is any topological order: every node runs in its own
// goroutine and blocks until each dependency has resolved its output
// exactly once, so independent branches proceed concurrently. A failed
// node fails closed: all transitive consumers are skipped, never run,
// while unrelated branches complete normally.
package plan
