package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/reckon/internal/diff"
	"github.com/zjrosen/reckon/internal/telemetry"
)

var (
	diffMajorPaths  []string
	diffMinorPaths  []string
	diffIgnorePaths []string
)

var (
	addedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#73F59F"))
	removedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8787"))
	modifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD866"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

var diffCmd = &cobra.Command{
	Use:   "diff <old-file> <new-file>",
	Short: "Compare two document snapshots",
	Long: `Compare two YAML or JSON snapshot files and print every field and
collection change, the change summary, and the suggested version bump.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringSliceVar(&diffMajorPaths, "major", nil, "paths whose changes are major")
	diffCmd.Flags().StringSliceVar(&diffMinorPaths, "minor", nil, "paths whose changes are minor")
	diffCmd.Flags().StringSliceVar(&diffIgnorePaths, "ignore", nil, "paths to skip entirely")
	rootCmd.AddCommand(diffCmd)
}

// loadSnapshot parses a YAML (or JSON, a YAML subset) snapshot file.
func loadSnapshot(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap any
	if err := yaml.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return snap, nil
}

func diffOptions() diff.Options {
	opts := cfg.Diff.Options()
	opts.MajorPaths = append(opts.MajorPaths, diffMajorPaths...)
	opts.MinorPaths = append(opts.MinorPaths, diffMinorPaths...)
	opts.IgnorePaths = append(opts.IgnorePaths, diffIgnorePaths...)
	return opts
}

func runDiff(cmd *cobra.Command, args []string) error {
	_, span := telemetry.Tracer().Start(cmd.Context(), "diff")
	defer span.End()

	oldSnap, err := loadSnapshot(args[0])
	if err != nil {
		return err
	}
	newSnap, err := loadSnapshot(args[1])
	if err != nil {
		return err
	}

	cs := diff.Calculate(oldSnap, newSnap, diffOptions())

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render(diff.Summary(cs)))
	if cs.Empty() {
		return nil
	}
	fmt.Fprintf(out, "Suggested bump: %s\n\n", diff.SuggestBump(cs))

	for _, fc := range cs.FieldChanges {
		fmt.Fprintln(out, renderFieldChange(fc))
	}
	for _, cc := range cs.CollectionChanges {
		fmt.Fprintln(out, renderCollectionChange(cc))
	}
	return nil
}

func renderFieldChange(fc diff.FieldChange) string {
	name := fc.Path
	if fc.Label != "" {
		name = fmt.Sprintf("%s (%s)", fc.Label, fc.Path)
	}

	switch fc.Type {
	case diff.FieldAdded:
		return addedStyle.Render(fmt.Sprintf("+ %s = %v", name, fc.NewValue))
	case diff.FieldRemoved:
		return removedStyle.Render(fmt.Sprintf("- %s (was %v)", name, fc.OldValue))
	case diff.FieldModified:
		oldStr, oldOK := fc.OldValue.(string)
		newStr, newOK := fc.NewValue.(string)
		if oldOK && newOK {
			return modifiedStyle.Render(fmt.Sprintf("~ %s: %s", name, diff.FormatTextDiff(oldStr, newStr)))
		}
		return modifiedStyle.Render(fmt.Sprintf("~ %s: %v -> %v", name, fc.OldValue, fc.NewValue)) +
			dimStyle.Render(fmt.Sprintf("  [%s]", fc.Significance))
	default:
		return dimStyle.Render(fmt.Sprintf("  %s unchanged", name))
	}
}

func renderCollectionChange(cc diff.CollectionChange) string {
	switch cc.Type {
	case diff.ItemAdded:
		return addedStyle.Render(fmt.Sprintf("+ %s[%s] added", cc.Path, cc.ItemID))
	case diff.ItemRemoved:
		return removedStyle.Render(fmt.Sprintf("- %s[%s] removed", cc.Path, cc.ItemID))
	case diff.ItemModified:
		paths := make([]string, 0, len(cc.ItemChanges))
		for _, ic := range cc.ItemChanges {
			paths = append(paths, ic.Path)
		}
		return modifiedStyle.Render(fmt.Sprintf("~ %s[%s]: %s", cc.Path, cc.ItemID, strings.Join(paths, ", ")))
	default:
		return dimStyle.Render(fmt.Sprintf("  %s reordered", cc.Path))
	}
}
