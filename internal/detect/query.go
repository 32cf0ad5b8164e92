package detect

import (
	"slices"
	"sort"
	"time"
)

// Filter selects issues. All set fields must match (conjunctive).
type Filter[C ~string] struct {
	Categories []C
	Priorities []Priority
	Statuses   []Status
	Assignee   string

	// RelatedObjectID matches issues referencing the object in any
	// related ref.
	RelatedObjectID string

	DetectedAfter  *time.Time
	DetectedBefore *time.Time
}

func (f Filter[C]) matches(issue Issue[C]) bool {
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, issue.Category) {
		return false
	}
	if len(f.Priorities) > 0 && !slices.Contains(f.Priorities, issue.Priority) {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, issue.Status) {
		return false
	}
	if f.Assignee != "" && issue.Assignee != f.Assignee {
		return false
	}
	if f.RelatedObjectID != "" {
		found := false
		for _, ref := range issue.Related {
			if ref.ID == f.RelatedObjectID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.DetectedAfter != nil && issue.DetectedAt.Before(*f.DetectedAfter) {
		return false
	}
	if f.DetectedBefore != nil && issue.DetectedAt.After(*f.DetectedBefore) {
		return false
	}
	return true
}

// FilterIssues returns the issues matching f, in input order. The input
// slice is never mutated.
func FilterIssues[C ~string](issues []Issue[C], f Filter[C]) []Issue[C] {
	out := make([]Issue[C], 0, len(issues))
	for _, issue := range issues {
		if f.matches(issue) {
			out = append(out, issue)
		}
	}
	return out
}

// SortKey selects the issue sort field.
type SortKey string

const (
	// SortByPriority uses the fixed severity ordering: critical sorts
	// before high before medium before low under ascending order.
	SortByPriority   SortKey = "priority"
	SortByDetectedAt SortKey = "detected_at"
	SortByNumber     SortKey = "issue_number"
)

// SortIssues returns a sorted copy of issues. The input slice is never
// mutated. Unknown keys sort by issue number.
func SortIssues[C ~string](issues []Issue[C], key SortKey, descending bool) []Issue[C] {
	out := append([]Issue[C](nil), issues...)

	less := func(a, b Issue[C]) bool {
		switch key {
		case SortByPriority:
			return a.Priority.Rank() < b.Priority.Rank()
		case SortByDetectedAt:
			return a.DetectedAt.Before(b.DetectedAt)
		default:
			return a.IssueNumber < b.IssueNumber
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// GroupByCategory buckets issues by category, preserving input order
// within each bucket.
func GroupByCategory[C ~string](issues []Issue[C]) map[C][]Issue[C] {
	out := make(map[C][]Issue[C])
	for _, issue := range issues {
		out[issue.Category] = append(out[issue.Category], issue)
	}
	return out
}

// GroupByPriority buckets issues by priority, preserving input order
// within each bucket.
func GroupByPriority[C ~string](issues []Issue[C]) map[Priority][]Issue[C] {
	out := make(map[Priority][]Issue[C])
	for _, issue := range issues {
		out[issue.Priority] = append(out[issue.Priority], issue)
	}
	return out
}

// Stats aggregates counts over an issue list. Computed independently of
// any engine, so it always agrees with DetectBatch's own summaries when
// run over the same issues.
type Stats[C ~string] struct {
	Total          int              `json:"total"`
	ByCategory     map[C]int        `json:"by_category"`
	ByPriority     map[Priority]int `json:"by_priority"`
	ByStatus       map[Status]int   `json:"by_status"`
	ActionRequired int              `json:"action_required"`
}

// CalculateStats derives Stats from an issue list.
func CalculateStats[C ~string](issues []Issue[C]) Stats[C] {
	s := Stats[C]{
		Total:      len(issues),
		ByCategory: make(map[C]int),
		ByPriority: make(map[Priority]int),
		ByStatus:   make(map[Status]int),
	}
	for _, issue := range issues {
		s.ByCategory[issue.Category]++
		s.ByPriority[issue.Priority]++
		s.ByStatus[issue.Status]++
		if issue.ActionRequired() {
			s.ActionRequired++
		}
	}
	return s
}
