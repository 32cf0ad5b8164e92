package detect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func openIssue() Issue[string] {
	return Issue[string]{
		ID:          "issue-1",
		IssueNumber: "QH-001",
		Category:    "quality_hold",
		Priority:    PriorityHigh,
		Status:      StatusOpen,
		Title:       "5 unit(s) on quality hold",
	}
}

func TestLifecycleTransitions(t *testing.T) {
	issue := openIssue()

	t.Run("acknowledge", func(t *testing.T) {
		next := Acknowledge(issue, "alice")
		require.Equal(t, StatusAcknowledged, next.Status)
		require.Equal(t, "alice", next.AcknowledgedBy)
		require.NotNil(t, next.AcknowledgedAt)
		require.Equal(t, StatusOpen, issue.Status, "argument untouched")
	})

	t.Run("start assigns the actor", func(t *testing.T) {
		next := Start(issue, "bob")
		require.Equal(t, StatusInProgress, next.Status)
		require.Equal(t, "bob", next.StartedBy)
		require.Equal(t, "bob", next.Assignee)
	})

	t.Run("start keeps an existing assignee", func(t *testing.T) {
		assigned := issue
		assigned.Assignee = "carol"
		next := Start(assigned, "bob")
		require.Equal(t, "carol", next.Assignee)
	})

	t.Run("resolve", func(t *testing.T) {
		next := Resolve(issue, "units released", "bob")
		require.Equal(t, StatusResolved, next.Status)
		require.Equal(t, "units released", next.Resolution)
		require.Equal(t, "bob", next.ResolvedBy)
		require.NotNil(t, next.ResolvedAt)
	})

	t.Run("dismiss", func(t *testing.T) {
		next := Dismiss(issue, "false positive", "alice")
		require.Equal(t, StatusDismissed, next.Status)
		require.Equal(t, "false positive", next.DismissReason)
		require.Equal(t, "alice", next.DismissedBy)
	})
}

func TestReopen_ClearsResolutionFields(t *testing.T) {
	resolved := Resolve(openIssue(), "fixed", "bob")
	reopened := Reopen(resolved)

	require.Equal(t, StatusOpen, reopened.Status)
	require.Nil(t, reopened.ResolvedAt)
	require.Empty(t, reopened.ResolvedBy)
	require.Empty(t, reopened.Resolution)
}

func TestReopen_ClearsDismissalFields(t *testing.T) {
	dismissed := Dismiss(openIssue(), "noise", "alice")
	reopened := Reopen(dismissed)

	require.Equal(t, StatusOpen, reopened.Status)
	require.Nil(t, reopened.DismissedAt)
	require.Empty(t, reopened.DismissedBy)
	require.Empty(t, reopened.DismissReason)
}

func TestActionRequired(t *testing.T) {
	tests := []struct {
		name     string
		priority Priority
		status   Status
		want     bool
	}{
		{"open critical", PriorityCritical, StatusOpen, true},
		{"open high", PriorityHigh, StatusOpen, true},
		{"open medium", PriorityMedium, StatusOpen, false},
		{"open low", PriorityLow, StatusOpen, false},
		{"resolved critical", PriorityCritical, StatusResolved, false},
		{"acknowledged high", PriorityHigh, StatusAcknowledged, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := openIssue()
			issue.Priority = tt.priority
			issue.Status = tt.status
			require.Equal(t, tt.want, issue.ActionRequired())
		})
	}
}

func TestPriorityRank(t *testing.T) {
	require.Less(t, PriorityCritical.Rank(), PriorityHigh.Rank())
	require.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	require.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	require.Less(t, PriorityLow.Rank(), Priority("unknown").Rank())
}
