// Package retry implements a small retry combinator used by the sync
// orchestrator.
//
// The loop is parameterized by the attempt cap, a delay function and a
// retryability predicate, so callers describe policy rather than writing
// nested loops with manual counters. Delays are linear by default in this
// codebase: upstream park APIs respond better to a steady, polite cadence
// than to exponential bursts.
package retry
