package revision

import (
	"slices"
	"sort"
	"time"

	"github.com/zjrosen/reckon/internal/semver"
)

// Filter selects revisions. All set fields must match (conjunctive).
type Filter struct {
	DocumentID string
	Statuses   []Status
	CreatedBy  string

	CreatedAfter  *time.Time
	CreatedBefore *time.Time

	// Tags must all be present on a matching revision.
	Tags []string

	MinVersion *semver.Version
	MaxVersion *semver.Version
}

func (f Filter) matches(rev filterable) bool {
	if f.DocumentID != "" && rev.documentID != f.DocumentID {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, rev.status) {
		return false
	}
	if f.CreatedBy != "" && rev.createdBy != f.CreatedBy {
		return false
	}
	if f.CreatedAfter != nil && rev.createdAt.Before(*f.CreatedAfter) {
		return false
	}
	if f.CreatedBefore != nil && rev.createdAt.After(*f.CreatedBefore) {
		return false
	}
	for _, tag := range f.Tags {
		if !slices.Contains(rev.tags, tag) {
			return false
		}
	}
	if f.MinVersion != nil && semver.Compare(rev.version, *f.MinVersion) < 0 {
		return false
	}
	if f.MaxVersion != nil && semver.Compare(rev.version, *f.MaxVersion) > 0 {
		return false
	}
	return true
}

// filterable is the projection of a Revision the filter inspects, so
// matches does not need a type parameter.
type filterable struct {
	documentID string
	status     Status
	createdBy  string
	createdAt  time.Time
	tags       []string
	version    semver.Version
}

// FilterRevisions returns the revisions matching f, in input order. The
// input slice is never mutated.
func FilterRevisions[T any](revs []Revision[T], f Filter) []Revision[T] {
	out := make([]Revision[T], 0, len(revs))
	for _, rev := range revs {
		if f.matches(filterable{
			documentID: rev.DocumentID,
			status:     rev.Status,
			createdBy:  rev.CreatedBy,
			createdAt:  rev.CreatedAt,
			tags:       rev.Tags,
			version:    rev.Version,
		}) {
			out = append(out, rev)
		}
	}
	return out
}

// SortKey selects the revision sort field.
type SortKey string

const (
	SortByVersion   SortKey = "version"
	SortByCreatedAt SortKey = "created_at"
	SortByNumber    SortKey = "revision_number"
)

// SortRevisions returns a sorted copy of revs. The input slice is never
// mutated. Unknown keys sort by revision number.
func SortRevisions[T any](revs []Revision[T], key SortKey, descending bool) []Revision[T] {
	out := append([]Revision[T](nil), revs...)

	less := func(a, b Revision[T]) bool {
		switch key {
		case SortByVersion:
			return semver.Compare(a.Version, b.Version) < 0
		case SortByCreatedAt:
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.RevisionNumber < b.RevisionNumber
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
