// Package revision implements the version and change-tracking engine:
// immutable revisions, versioned documents, and the lifecycle operations
// connecting them.
//
// # Core Types
//
// Revision is one immutable snapshot of a document plus metadata about how
// it differs from its predecessor. Revisions are created once and never
// mutated; every lifecycle transition (publish, approve, archive,
// supersede) returns a new Revision value.
//
// Document owns the ordered, append-only list of revision ids for one
// versioned document. Revisions reference their document by id only; the
// document never holds revision objects, so storage stays with the caller.
//
// # Engine
//
// Engine is a factory configured once with id generation, a clock, and
// default comparison options. CreateRevision computes the change set
// against the previous revision's data and derives the version bump from
// change significance unless the caller forces one.
//
// # Concurrency
//
// All operations are pure functions over value types. The engine holds no
// mutable state, but it also provides no transaction boundary: two callers
// creating a revision from the same predecessor will both compute the same
// revision number. CheckConflict is the optimistic-concurrency probe for
// callers that need to detect that race before persisting.
//
// # Merge Types
//
// MergeResult and MergeConflict are data shapes consumed by hosts that
// implement their own reconciliation. No merge algorithm lives here.
package revision
