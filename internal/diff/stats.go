package diff

import (
	"fmt"
	"strings"

	"github.com/zjrosen/reckon/internal/semver"
)

// Stats aggregates counters over a ChangeSet. Stats are always derived from
// the change arrays; recomputing them from the arrays reproduces the stored
// values exactly.
type Stats struct {
	TotalChanges   int `json:"total_changes"`
	FieldsAdded    int `json:"fields_added"`
	FieldsRemoved  int `json:"fields_removed"`
	FieldsModified int `json:"fields_modified"`
	ItemsAdded     int `json:"items_added"`
	ItemsRemoved   int `json:"items_removed"`
	ItemsModified  int `json:"items_modified"`
	MajorChanges   int `json:"major_changes"`
	MinorChanges   int `json:"minor_changes"`
	PatchChanges   int `json:"patch_changes"`
}

// ComputeStats derives Stats from change arrays. FieldUnchanged entries and
// reorder markers do not count toward totals.
func ComputeStats(fields []FieldChange, collections []CollectionChange) Stats {
	var s Stats

	for _, fc := range fields {
		switch fc.Type {
		case FieldAdded:
			s.FieldsAdded++
		case FieldRemoved:
			s.FieldsRemoved++
		case FieldModified:
			s.FieldsModified++
		default:
			continue
		}

		switch fc.Significance {
		case SignificanceMajor:
			s.MajorChanges++
		case SignificanceMinor:
			s.MinorChanges++
		default:
			s.PatchChanges++
		}
	}

	for _, cc := range collections {
		switch cc.Type {
		case ItemAdded:
			s.ItemsAdded++
		case ItemRemoved:
			s.ItemsRemoved++
		case ItemModified:
			s.ItemsModified++
		}
	}

	s.TotalChanges = s.FieldsAdded + s.FieldsRemoved + s.FieldsModified +
		s.ItemsAdded + s.ItemsRemoved + s.ItemsModified
	return s
}

// SuggestBump derives the version bump a change set warrants. This is a
// priority cascade, not a count: one major-significance field change forces
// a major bump regardless of how many patch changes accompany it.
func SuggestBump(cs ChangeSet) semver.Bump {
	hasMinor := false
	for _, fc := range cs.FieldChanges {
		if fc.Type == FieldUnchanged {
			continue
		}
		switch fc.Significance {
		case SignificanceMajor:
			return semver.BumpMajor
		case SignificanceMinor:
			hasMinor = true
		}
	}
	if hasMinor {
		return semver.BumpMinor
	}
	return semver.BumpPatch
}

// Summary renders a deterministic one-line description of a change set by
// concatenating non-zero stat categories in a fixed order. An empty change
// set renders as "No changes".
func Summary(cs ChangeSet) string {
	s := cs.Stats
	parts := make([]string, 0, 6)

	add := func(count int, noun, verb string) {
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%d %s %s", count, noun, verb))
		}
	}

	add(s.FieldsAdded, "field(s)", "added")
	add(s.FieldsRemoved, "field(s)", "removed")
	add(s.FieldsModified, "field(s)", "modified")
	add(s.ItemsAdded, "item(s)", "added")
	add(s.ItemsRemoved, "item(s)", "removed")
	add(s.ItemsModified, "item(s)", "modified")

	if len(parts) == 0 {
		return "No changes"
	}
	return strings.Join(parts, ", ")
}
