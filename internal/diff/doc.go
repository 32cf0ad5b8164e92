// Package diff implements deep structural comparison between two snapshots
// of a document.
//
// This package follows the same layering rules as the other engine packages:
//   - Pure functions over normalized data, no I/O and no engine state
//   - Inputs are normalized through a JSON round-trip so structs, maps, and
//     slices from any caller compare uniformly
//   - Every result is a new value; inputs are never mutated
//
// # Comparison Model
//
// Calculate walks the union of keys of both snapshots and classifies each
// difference as added, removed, or modified. Arrays are not compared
// positionally: elements exposing an "id" or "key" property are reconciled
// by that identity, producing item_added, item_removed, and item_modified
// collection changes. Elements without an identity property are excluded
// from collection diffing. This is a deliberate heuristic, not a general
// array diff; callers that need positional diffing must assign identities.
//
// # Significance
//
// Each field change carries a significance (major, minor, patch) decided by
// exact-path membership in the configured MajorPaths and MinorPaths lists.
// Unlisted paths default to patch. Significance drives automatic version
// bumps in the revision engine via SuggestBump.
//
// # Stats
//
// ChangeStats are derived entirely from the change arrays. ComputeStats
// over a ChangeSet's arrays always reproduces the stored stats; the engine
// never mutates stats independently.
package diff
