package diff

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// ============================================================================
// Property-Based Tests for Comparator Invariants
// ============================================================================

// snapshotGen generates small nested snapshots: scalar fields, one nested
// object, and one identity-carrying collection.
func snapshotGen() *rapid.Generator[map[string]any] {
	return rapid.Custom(func(t *rapid.T) map[string]any {
		snap := map[string]any{
			"status":   rapid.SampledFrom([]string{"draft", "sent", "confirmed"}).Draw(t, "status"),
			"quantity": rapid.IntRange(0, 100).Draw(t, "quantity"),
			"vendor": map[string]any{
				"name":   rapid.SampledFrom([]string{"Acme", "Globex", "Initech"}).Draw(t, "vendorName"),
				"rating": rapid.IntRange(1, 5).Draw(t, "rating"),
			},
		}

		numLines := rapid.IntRange(0, 4).Draw(t, "numLines")
		lines := make([]any, 0, numLines)
		for i := 0; i < numLines; i++ {
			lines = append(lines, map[string]any{
				"id":  i + 1,
				"qty": rapid.IntRange(0, 50).Draw(t, "lineQty"),
			})
		}
		snap["lines"] = lines
		return snap
	})
}

// TestProperty_SelfDiffIsEmpty verifies that comparing any snapshot against
// itself yields an empty change set.
func TestProperty_SelfDiffIsEmpty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		snap := snapshotGen().Draw(t, "snap")

		cs := Calculate(snap, snap, Options{})

		require.True(t, cs.Empty(), "self-diff must be empty, got %+v", cs)
		require.Empty(t, cs.FieldChanges)
		require.Empty(t, cs.CollectionChanges)
	})
}

// TestProperty_StatsConsistent verifies that recomputing stats from a change
// set's arrays reproduces the stored stats exactly.
func TestProperty_StatsConsistent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		oldSnap := snapshotGen().Draw(t, "old")
		newSnap := snapshotGen().Draw(t, "new")

		cs := Calculate(oldSnap, newSnap, Options{
			MajorPaths: []string{"quantity"},
			MinorPaths: []string{"vendor.rating"},
		})

		require.Equal(t, cs.Stats, ComputeStats(cs.FieldChanges, cs.CollectionChanges))
	})
}

// TestProperty_TotalMatchesArrays verifies TotalChanges equals the number of
// counted entries in both arrays.
func TestProperty_TotalMatchesArrays(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		oldSnap := snapshotGen().Draw(t, "old")
		newSnap := snapshotGen().Draw(t, "new")

		cs := Calculate(oldSnap, newSnap, Options{})

		counted := 0
		for _, fc := range cs.FieldChanges {
			if fc.Type != FieldUnchanged {
				counted++
			}
		}
		for _, cc := range cs.CollectionChanges {
			if cc.Type != ItemReordered {
				counted++
			}
		}
		require.Equal(t, counted, cs.Stats.TotalChanges)
	})
}
