package revision

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/reckon/internal/semver"
)

func queryFixture() []Revision[orderData] {
	at := func(day int) time.Time {
		return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
	}
	return []Revision[orderData]{
		{ID: "r1", DocumentID: "d1", RevisionNumber: 1, Status: StatusPublished, CreatedBy: "alice", CreatedAt: at(1), Version: semver.Version{Major: 1}, Tags: []string{"import", "baseline"}},
		{ID: "r2", DocumentID: "d1", RevisionNumber: 2, Status: StatusDraft, CreatedBy: "bob", CreatedAt: at(5), Version: semver.Version{Major: 1, Minor: 1}},
		{ID: "r3", DocumentID: "d2", RevisionNumber: 1, Status: StatusApproved, CreatedBy: "alice", CreatedAt: at(9), Version: semver.Version{Major: 2}, Tags: []string{"import"}},
	}
}

func ids[T any](revs []Revision[T]) []string {
	out := make([]string, len(revs))
	for i, r := range revs {
		out[i] = r.ID
	}
	return out
}

func TestFilterRevisions(t *testing.T) {
	revs := queryFixture()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty filter matches all", Filter{}, []string{"r1", "r2", "r3"}},
		{"by document", Filter{DocumentID: "d1"}, []string{"r1", "r2"}},
		{"by status set", Filter{Statuses: []Status{StatusDraft, StatusApproved}}, []string{"r2", "r3"}},
		{"by creator", Filter{CreatedBy: "alice"}, []string{"r1", "r3"}},
		{"by tag superset", Filter{Tags: []string{"import", "baseline"}}, []string{"r1"}},
		{"by version range", Filter{
			MinVersion: &semver.Version{Major: 1, Minor: 1},
			MaxVersion: &semver.Version{Major: 2},
		}, []string{"r2", "r3"}},
		{"conjunctive", Filter{DocumentID: "d1", CreatedBy: "alice"}, []string{"r1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ids(FilterRevisions(revs, tt.filter)))
		})
	}

	t.Run("by date range", func(t *testing.T) {
		after := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		before := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
		got := FilterRevisions(revs, Filter{CreatedAfter: &after, CreatedBefore: &before})
		require.Equal(t, []string{"r2"}, ids(got))
	})

	t.Run("input not mutated", func(t *testing.T) {
		FilterRevisions(revs, Filter{DocumentID: "d2"})
		require.Equal(t, []string{"r1", "r2", "r3"}, ids(revs))
	})
}

func TestSortRevisions(t *testing.T) {
	revs := []Revision[orderData]{
		{ID: "r2", RevisionNumber: 2, Version: semver.Version{Major: 1, Minor: 2}, CreatedAt: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "r3", RevisionNumber: 3, Version: semver.Version{Major: 2}, CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "r1", RevisionNumber: 1, Version: semver.Version{Major: 1}, CreatedAt: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
	}

	t.Run("by number ascending", func(t *testing.T) {
		require.Equal(t, []string{"r1", "r2", "r3"}, ids(SortRevisions(revs, SortByNumber, false)))
	})

	t.Run("by version descending", func(t *testing.T) {
		require.Equal(t, []string{"r3", "r2", "r1"}, ids(SortRevisions(revs, SortByVersion, true)))
	})

	t.Run("by creation time", func(t *testing.T) {
		require.Equal(t, []string{"r3", "r2", "r1"}, ids(SortRevisions(revs, SortByCreatedAt, false)))
	})

	t.Run("input not mutated", func(t *testing.T) {
		SortRevisions(revs, SortByNumber, false)
		require.Equal(t, []string{"r2", "r3", "r1"}, ids(revs))
	})
}
