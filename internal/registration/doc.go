// Package registration computes load-balancer target registrations for
// a connector deployment.
//
// The engine is a pure function over (size class, per-slot address
// lists, target group handle). The size class selects which slots are
// consumed; every address in a consumed slot becomes exactly one
// registration, in slot order then insertion order, so re-running on
// identical inputs reproduces an identical sequence. Addresses in
// non-consumed slots never leak into the target group; they are
// reported so operators can spot the misconfiguration.
//
// Diff compares a previously applied set against a desired set and
// yields the exact add/remove delta, which is what keeps re-planning
// idempotent and size-class changes free of dangling targets.
package registration
