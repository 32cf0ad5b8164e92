// Package detect implements the rule-based issue-detection engine: a
// registry of pluggable rules evaluated against domain objects to produce
// prioritized, actionable issues.
//
// # Rules
//
// A Rule pairs metadata (id, name, category, base priority) with a pure
// detection function that inspects one input and returns zero or more
// results. Rules are registered once at engine construction and can be
// toggled at runtime with SetRuleEnabled; toggling affects the next
// detection call only, never issues already produced.
//
// # Issues
//
// Every result is wrapped into a fully-populated Issue: fresh id, sequential
// category-prefixed issue number, open status, and automatic source
// provenance naming the detecting rule. Issues are immutable value types;
// the lifecycle functions (Acknowledge, Start, Resolve, Dismiss, Reopen)
// return new values.
//
// # Concurrency
//
// The issue-number counter is the engine's only mutable state. Two engine
// instances run concurrently without interference, but a single instance
// must not be shared across goroutines unless the caller serializes access.
package detect
