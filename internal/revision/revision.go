package revision

import (
	"time"

	"github.com/zjrosen/reckon/internal/diff"
	"github.com/zjrosen/reckon/internal/semver"
)

// Status represents the revision lifecycle state.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusPendingReview Status = "pending_review"
	StatusApproved      Status = "approved"
	StatusPublished     Status = "published"
	StatusSuperseded    Status = "superseded"
	StatusArchived      Status = "archived"
)

// Revision is one immutable snapshot of a document. It is created once and
// never mutated; lifecycle transitions produce new values.
type Revision[T any] struct {
	ID             string         `json:"id"`
	DocumentID     string         `json:"document_id"`
	Version        semver.Version `json:"version"`
	VersionString  string         `json:"version_string"`
	RevisionNumber int            `json:"revision_number"`
	Status         Status         `json:"status"`
	Data           T              `json:"data"`

	// Changes describes how Data differs from the predecessor's data.
	// Nil for the first revision of a document.
	Changes       *diff.ChangeSet `json:"changes,omitempty"`
	ChangeSummary string          `json:"change_summary,omitempty"`

	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	ApprovedBy  string     `json:"approved_by,omitempty"`

	// PreviousRevisionID is a back-reference only; ownership of the
	// revision chain lives on the document.
	PreviousRevisionID string `json:"previous_revision_id,omitempty"`

	Tags []string       `json:"tags,omitempty"`
	Meta map[string]any `json:"meta,omitempty"`
}

// Document owns the ordered revision id list for one versioned document.
// The list is append-only, oldest first. Latest always tracks the most
// recently appended revision; Current tracks the last published revision
// and may lag behind Latest.
type Document struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	RevisionIDs   []string `json:"revision_ids"`
	RevisionCount int      `json:"revision_count"`

	LatestRevisionID string         `json:"latest_revision_id"`
	LatestVersion    semver.Version `json:"latest_version"`

	CurrentRevisionID string          `json:"current_revision_id,omitempty"`
	CurrentVersion    *semver.Version `json:"current_version,omitempty"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comparison is the result of comparing two revisions' data.
type Comparison struct {
	FromRevisionID string         `json:"from_revision_id"`
	ToRevisionID   string         `json:"to_revision_id"`
	FromVersion    semver.Version `json:"from_version"`
	ToVersion      semver.Version `json:"to_version"`
	Changes        diff.ChangeSet `json:"changes"`
	Identical      bool           `json:"identical"`
	SuggestedBump  semver.Bump    `json:"suggested_bump"`
}

// Conflict describes a detected optimistic-concurrency violation: the
// document advanced past the state the caller based its revision on.
type Conflict struct {
	DocumentID               string `json:"document_id"`
	ExpectedRevisionCount    int    `json:"expected_revision_count"`
	ActualRevisionCount      int    `json:"actual_revision_count"`
	ExpectedLatestRevisionID string `json:"expected_latest_revision_id,omitempty"`
	ActualLatestRevisionID   string `json:"actual_latest_revision_id,omitempty"`
}

// CheckConflict reports whether doc has advanced past the expected state.
// It returns nil when the expectation still holds. An empty
// expectedLatestID skips the id comparison. This is a probe, not a lock:
// callers must still serialize their own persistence.
func CheckConflict(doc Document, expectedCount int, expectedLatestID string) *Conflict {
	if doc.RevisionCount == expectedCount &&
		(expectedLatestID == "" || doc.LatestRevisionID == expectedLatestID) {
		return nil
	}
	return &Conflict{
		DocumentID:               doc.ID,
		ExpectedRevisionCount:    expectedCount,
		ActualRevisionCount:      doc.RevisionCount,
		ExpectedLatestRevisionID: expectedLatestID,
		ActualLatestRevisionID:   doc.LatestRevisionID,
	}
}
