package revision

import (
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/reckon/internal/diff"
	"github.com/zjrosen/reckon/internal/semver"
)

// Config configures an Engine. Zero values get sensible defaults: uuid ids,
// the wall clock, and diff.DefaultOptions.
type Config struct {
	// NewID generates ids for documents and revisions.
	NewID func() string

	// Now supplies timestamps. Injectable for deterministic tests.
	Now func() time.Time

	// Diff is applied to every comparison unless a caller overrides it.
	Diff diff.Options
}

// Engine creates and transitions documents and revisions. Engines are
// stateless; one instance can be shared freely.
type Engine[T any] struct {
	cfg Config
}

// NewEngine returns an engine for documents whose snapshot data is T.
func NewEngine[T any](cfg Config) *Engine[T] {
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Diff.MaxDepth == 0 {
		cfg.Diff.MaxDepth = diff.DefaultOptions().MaxDepth
	}
	return &Engine[T]{cfg: cfg}
}

// CreateDocumentOptions carries optional fields for CreateDocument.
type CreateDocumentOptions struct {
	Tags []string
	Meta map[string]any
}

// CreateDocument starts a new versioned document. The first revision is
// number 1, version 1.0.0, status draft, with no predecessor and no
// changes.
func (e *Engine[T]) CreateDocument(docType string, initial T, createdBy string, opts CreateDocumentOptions) (Document, Revision[T]) {
	now := e.cfg.Now()

	rev := Revision[T]{
		ID:             e.cfg.NewID(),
		DocumentID:     e.cfg.NewID(),
		Version:        semver.Initial(),
		RevisionNumber: 1,
		Status:         StatusDraft,
		Data:           initial,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		Tags:           opts.Tags,
		Meta:           opts.Meta,
	}
	rev.VersionString = rev.Version.String()

	doc := Document{
		ID:               rev.DocumentID,
		Type:             docType,
		RevisionIDs:      []string{rev.ID},
		RevisionCount:    1,
		LatestRevisionID: rev.ID,
		LatestVersion:    rev.Version,
		CreatedBy:        createdBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return doc, rev
}

// RevisionInput carries the caller-supplied fields for CreateRevision.
type RevisionInput[T any] struct {
	Data      T
	CreatedBy string

	// ChangeSummary overrides the generated summary when non-empty.
	ChangeSummary string

	// ForceBump overrides the significance-derived bump when non-empty.
	ForceBump semver.Bump

	// Status for the new revision; defaults to draft. Passing
	// StatusPublished publishes immediately (draft → published shortcut).
	Status Status

	Tags []string
	Meta map[string]any
}

// CreateRevision appends a new revision to doc. The change set is computed
// between prev.Data and input.Data, and the version bump derived from
// change significance unless forced. Neither argument is mutated; the
// updated document and the new revision are returned as new values.
func (e *Engine[T]) CreateRevision(doc Document, prev Revision[T], input RevisionInput[T]) (Document, Revision[T]) {
	now := e.cfg.Now()

	changes := diff.Calculate(prev.Data, input.Data, e.cfg.Diff)
	bump := input.ForceBump
	if bump == "" {
		bump = diff.SuggestBump(changes)
	}

	summary := input.ChangeSummary
	if summary == "" {
		summary = diff.Summary(changes)
	}

	status := input.Status
	if status == "" {
		status = StatusDraft
	}

	rev := Revision[T]{
		ID:                 e.cfg.NewID(),
		DocumentID:         doc.ID,
		Version:            semver.Increment(prev.Version, bump),
		RevisionNumber:     doc.RevisionCount + 1,
		Status:             status,
		Data:               input.Data,
		Changes:            &changes,
		ChangeSummary:      summary,
		CreatedBy:          input.CreatedBy,
		CreatedAt:          now,
		PreviousRevisionID: prev.ID,
		Tags:               input.Tags,
		Meta:               input.Meta,
	}
	rev.VersionString = rev.Version.String()
	if status == StatusPublished {
		rev.PublishedAt = &now
	}

	next := doc
	next.RevisionIDs = append(append([]string(nil), doc.RevisionIDs...), rev.ID)
	next.RevisionCount = doc.RevisionCount + 1
	next.LatestRevisionID = rev.ID
	next.LatestVersion = rev.Version
	next.UpdatedAt = now
	if status == StatusPublished {
		next.CurrentRevisionID = rev.ID
		v := rev.Version
		next.CurrentVersion = &v
	}
	return next, rev
}

// PublishRevision marks rev published and advances the document's current
// pointers. Publishing is the only operation that moves Current
// independently of Latest.
func (e *Engine[T]) PublishRevision(doc Document, rev Revision[T]) (Document, Revision[T]) {
	now := e.cfg.Now()

	published := rev
	published.Status = StatusPublished
	published.PublishedAt = &now

	next := doc
	next.CurrentRevisionID = rev.ID
	v := rev.Version
	next.CurrentVersion = &v
	next.UpdatedAt = now
	return next, published
}

// ApproveRevision marks rev approved.
func (e *Engine[T]) ApproveRevision(rev Revision[T], approvedBy string) Revision[T] {
	now := e.cfg.Now()

	approved := rev
	approved.Status = StatusApproved
	approved.ApprovedAt = &now
	approved.ApprovedBy = approvedBy
	return approved
}

// ArchiveRevision marks rev archived.
func (e *Engine[T]) ArchiveRevision(rev Revision[T]) Revision[T] {
	archived := rev
	archived.Status = StatusArchived
	return archived
}

// SupersedeRevision marks rev superseded, typically after a newer revision
// is published.
func (e *Engine[T]) SupersedeRevision(rev Revision[T]) Revision[T] {
	superseded := rev
	superseded.Status = StatusSuperseded
	return superseded
}

// CompareRevisions diffs the data of two revisions. A nil opts uses the
// engine's configured options. Pure and idempotent.
func (e *Engine[T]) CompareRevisions(from, to Revision[T], opts *diff.Options) Comparison {
	o := e.cfg.Diff
	if opts != nil {
		o = *opts
	}

	changes := diff.Calculate(from.Data, to.Data, o)
	return Comparison{
		FromRevisionID: from.ID,
		ToRevisionID:   to.ID,
		FromVersion:    from.Version,
		ToVersion:      to.Version,
		Changes:        changes,
		Identical:      changes.Empty(),
		SuggestedBump:  diff.SuggestBump(changes),
	}
}

// ChangeSummary renders the engine's human-readable summary for a change
// set.
func (e *Engine[T]) ChangeSummary(cs diff.ChangeSet) string {
	return diff.Summary(cs)
}
