package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/reckon/internal/detect"
	"github.com/zjrosen/reckon/internal/procurement"
	"github.com/zjrosen/reckon/internal/telemetry"
)

var detectCmd = &cobra.Command{
	Use:   "detect <items-file>",
	Short: "Run the built-in procurement rules over a file of domain objects",
	Long: `Evaluate purchase-order lines, shipments, and invoices from a YAML
file against the built-in detection rules and print the resulting issues,
most urgent first.`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

// detectFile is the on-disk shape detect consumes.
type detectFile struct {
	Lines     []procurement.LineItem `yaml:"lines"`
	Shipments []procurement.Shipment `yaml:"shipments"`
	Invoices  []invoiceEntry         `yaml:"invoices"`
}

type invoiceEntry struct {
	procurement.Invoice `yaml:",inline"`
	OrderedLine         *procurement.LineItem `yaml:"ordered_line"`
}

func (f detectFile) subjects() []procurement.Subject {
	var out []procurement.Subject
	for i := range f.Lines {
		out = append(out, procurement.Subject{Line: &f.Lines[i]})
	}
	for i := range f.Shipments {
		out = append(out, procurement.Subject{Shipment: &f.Shipments[i]})
	}
	for i := range f.Invoices {
		out = append(out, procurement.Subject{
			Invoice:     &f.Invoices[i].Invoice,
			OrderedLine: f.Invoices[i].OrderedLine,
		})
	}
	return out
}

func runDetect(cmd *cobra.Command, args []string) error {
	_, span := telemetry.Tracer().Start(cmd.Context(), "detect")
	defer span.End()

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading items: %w", err)
	}
	var file detectFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	engine := detect.NewEngine(procurement.Rules(nil), detect.Config[procurement.Category]{})
	for _, id := range cfg.Detect.DisabledRules {
		engine.SetRuleEnabled(id, false)
	}

	out := engine.DetectBatch(detect.Batch[procurement.Subject]{Items: file.subjects()})

	w := cmd.OutOrStdout()
	if len(out.Issues) == 0 {
		fmt.Fprintln(w, "No issues detected")
		return nil
	}

	for _, issue := range detect.SortIssues(out.Issues, detect.SortByPriority, false) {
		fmt.Fprintln(w, renderIssue(issue))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d issue(s), %d action required", len(out.Issues), len(out.ActionRequired))))
	for category, count := range out.ByCategory {
		fmt.Fprintf(w, "  %s: %d\n", category, count)
	}
	return nil
}

func priorityStyle(p detect.Priority) string {
	switch p {
	case detect.PriorityCritical:
		return removedStyle.Bold(true).Render(string(p))
	case detect.PriorityHigh:
		return removedStyle.Render(string(p))
	case detect.PriorityMedium:
		return modifiedStyle.Render(string(p))
	default:
		return dimStyle.Render(string(p))
	}
}

func renderIssue(issue detect.Issue[procurement.Category]) string {
	line := fmt.Sprintf("%s  %-8s  %s", issue.IssueNumber, priorityStyle(issue.Priority), issue.Title)
	if issue.SuggestedAction != "" {
		line += dimStyle.Render(fmt.Sprintf("\n    -> %s", issue.SuggestedAction))
	}
	return line
}
