package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// TextDiff computes a character-level diff between two string field values,
// cleaned up to word-ish boundaries. Hosts use it to render inline previews
// of modified text fields (descriptions, notes, terms).
func TextDiff(oldText, newText string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	return dmp.DiffCleanupSemantic(diffs)
}

// FormatTextDiff renders a TextDiff as plain text with [-removed-] and
// {+inserted+} markers.
func FormatTextDiff(oldText, newText string) string {
	var b strings.Builder
	for _, d := range TextDiff(oldText, newText) {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-")
			b.WriteString(d.Text)
			b.WriteString("-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+")
			b.WriteString(d.Text)
			b.WriteString("+}")
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
