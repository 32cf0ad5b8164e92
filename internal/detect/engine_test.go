package detect

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type shipmentLine struct {
	ID        string
	Qty       int
	QtyOnHold int
	Overdue   bool
}

func holdRule() Rule[shipmentLine, string] {
	return Rule[shipmentLine, string]{
		ID:           "quality-hold",
		Name:         "Quantity on quality hold",
		Category:     "quality_hold",
		BasePriority: PriorityHigh,
		Enabled:      true,
		Detect: func(line shipmentLine, _ Context) []Result[string] {
			if line.QtyOnHold <= 0 {
				return nil
			}
			return []Result[string]{{
				Title:            fmt.Sprintf("%d unit(s) on quality hold", line.QtyOnHold),
				SuggestedAction:  "Release or reject the held units",
				Related:          []ObjectRef{{Type: "shipment_line", ID: line.ID}},
				AffectedQuantity: float64(line.QtyOnHold),
			}}
		},
	}
}

func overdueRule() Rule[shipmentLine, string] {
	return Rule[shipmentLine, string]{
		ID:           "overdue",
		Name:         "Shipment overdue",
		Category:     "delivery",
		BasePriority: PriorityMedium,
		Enabled:      true,
		Detect: func(line shipmentLine, _ Context) []Result[string] {
			if !line.Overdue {
				return nil
			}
			return []Result[string]{{Title: "Shipment overdue"}}
		},
	}
}

func testDetectEngine(t *testing.T, rules ...Rule[shipmentLine, string]) *Engine[shipmentLine, string] {
	t.Helper()
	n := 0
	return NewEngine(rules, Config[string]{
		NewID: func() string {
			n++
			return fmt.Sprintf("issue-%d", n)
		},
		Now: func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) },
	})
}

func TestDetect(t *testing.T) {
	engine := testDetectEngine(t, holdRule(), overdueRule())

	issues := engine.Detect(shipmentLine{ID: "L1", Qty: 10, QtyOnHold: 5}, nil)

	require.Len(t, issues, 1)
	issue := issues[0]
	require.Equal(t, "issue-1", issue.ID)
	require.Equal(t, "QH-001", issue.IssueNumber)
	require.Equal(t, "quality_hold", issue.Category)
	require.Equal(t, PriorityHigh, issue.Priority, "priority inherited from the rule")
	require.Equal(t, StatusOpen, issue.Status)
	require.Equal(t, Source{Type: SourceAutomatic, Detector: "quality-hold"}, issue.Source)
	require.Equal(t, float64(5), issue.AffectedQuantity)
	require.Equal(t, []ObjectRef{{Type: "shipment_line", ID: "L1"}}, issue.Related)
	require.False(t, issue.DetectedAt.IsZero())
}

func TestDetect_RuleSelection(t *testing.T) {
	t.Run("clean input produces nothing", func(t *testing.T) {
		engine := testDetectEngine(t, holdRule(), overdueRule())
		require.Empty(t, engine.Detect(shipmentLine{ID: "L1", Qty: 10}, nil))
	})

	t.Run("explicit rule ids restrict evaluation", func(t *testing.T) {
		engine := testDetectEngine(t, holdRule(), overdueRule())
		issues := engine.Detect(shipmentLine{ID: "L1", QtyOnHold: 2, Overdue: true}, nil, "overdue")
		require.Len(t, issues, 1)
		require.Equal(t, "delivery", issues[0].Category)
	})

	t.Run("unknown rule ids are silently skipped", func(t *testing.T) {
		engine := testDetectEngine(t, holdRule())
		issues := engine.Detect(shipmentLine{ID: "L1", QtyOnHold: 2}, nil, "no-such-rule", "quality-hold")
		require.Len(t, issues, 1)
	})

	t.Run("disabled rules do not run", func(t *testing.T) {
		engine := testDetectEngine(t, holdRule(), overdueRule())
		require.True(t, engine.SetRuleEnabled("quality-hold", false))
		issues := engine.Detect(shipmentLine{ID: "L1", QtyOnHold: 2, Overdue: true}, nil)
		require.Len(t, issues, 1)
		require.Equal(t, "delivery", issues[0].Category)
	})
}

func TestSetRuleEnabled_UnknownID(t *testing.T) {
	engine := testDetectEngine(t, holdRule())
	require.False(t, engine.SetRuleEnabled("missing", true))
}

func TestRuleRegistry(t *testing.T) {
	engine := testDetectEngine(t, holdRule(), overdueRule())

	rules := engine.Rules()
	require.Len(t, rules, 2)
	require.Equal(t, "quality-hold", rules[0].ID, "registration order preserved")

	rule, ok := engine.RuleByID("overdue")
	require.True(t, ok)
	require.Equal(t, "Shipment overdue", rule.Name)

	_, ok = engine.RuleByID("missing")
	require.False(t, ok)

	t.Run("returned slice is a copy", func(t *testing.T) {
		rules[0].Enabled = false
		fresh, _ := engine.RuleByID("quality-hold")
		require.True(t, fresh.Enabled)
	})
}

func TestDetectBatch(t *testing.T) {
	engine := testDetectEngine(t, holdRule(), overdueRule())

	out := engine.DetectBatch(Batch[shipmentLine]{Items: []shipmentLine{
		{ID: "L1", Qty: 10, QtyOnHold: 5},
		{ID: "L2", Qty: 4},
		{ID: "L3", Qty: 2, Overdue: true},
	}})

	require.Len(t, out.Issues, 2)
	require.Equal(t, 1, out.ByCategory["quality_hold"])
	require.Equal(t, 1, out.ByCategory["delivery"])
	require.Equal(t, 1, out.ByPriority[PriorityHigh])
	require.Equal(t, 1, out.ByPriority[PriorityMedium])

	t.Run("action required holds open critical and high issues", func(t *testing.T) {
		require.Len(t, out.ActionRequired, 1)
		require.Equal(t, "quality_hold", out.ActionRequired[0].Category)
	})

	t.Run("summaries agree with CalculateStats", func(t *testing.T) {
		stats := CalculateStats(out.Issues)
		require.Equal(t, stats.ByCategory, out.ByCategory)
		require.Equal(t, stats.ByPriority, out.ByPriority)
		require.Equal(t, stats.ActionRequired, len(out.ActionRequired))
	})
}

func TestDetectBatch_NumberingMonotonic(t *testing.T) {
	engine := testDetectEngine(t, holdRule())

	out := engine.DetectBatch(Batch[shipmentLine]{Items: []shipmentLine{
		{ID: "L1", QtyOnHold: 1},
		{ID: "L2", QtyOnHold: 2},
	}})

	require.Len(t, out.Issues, 2)
	require.Equal(t, "QH-001", out.Issues[0].IssueNumber)
	require.Equal(t, "QH-002", out.Issues[1].IssueNumber, "counter must not reset between items")

	t.Run("counter continues across calls", func(t *testing.T) {
		issues := engine.Detect(shipmentLine{ID: "L3", QtyOnHold: 1}, nil)
		require.Equal(t, "QH-003", issues[0].IssueNumber)
	})
}

// TestProperty_BatchNumberingStrictlyIncreases verifies issue numbers
// strictly increase across arbitrary batches, whatever mix of items fires.
func TestProperty_BatchNumberingStrictlyIncreases(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		engine := NewEngine([]Rule[shipmentLine, string]{holdRule(), overdueRule()}, Config[string]{})

		numItems := rapid.IntRange(1, 20).Draw(t, "numItems")
		items := make([]shipmentLine, numItems)
		for i := range items {
			items[i] = shipmentLine{
				ID:        fmt.Sprintf("L%d", i),
				QtyOnHold: rapid.IntRange(0, 3).Draw(t, fmt.Sprintf("hold-%d", i)),
				Overdue:   rapid.Bool().Draw(t, fmt.Sprintf("overdue-%d", i)),
			}
		}

		out := engine.DetectBatch(Batch[shipmentLine]{Items: items})

		var lastSeq int
		for _, issue := range out.Issues {
			idx := strings.LastIndexByte(issue.IssueNumber, '-')
			require.Positive(t, idx, "issue number %q must carry a prefix", issue.IssueNumber)
			seq, err := strconv.Atoi(issue.IssueNumber[idx+1:])
			require.NoError(t, err, "issue number %q must end in a sequence", issue.IssueNumber)
			require.Greater(t, seq, lastSeq, "numbers must strictly increase")
			lastSeq = seq
		}
	})
}

func TestDefaultPrefix(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"quality_hold", "QH"},
		{"invoice", "INV"},
		{"backorder", "BAC"},
		{"po", "PO"},
		{"price_variance_check", "PVC"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, defaultPrefix(tt.category), "defaultPrefix(%q)", tt.category)
	}
}
