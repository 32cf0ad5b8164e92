package detect

import "time"

// Priority represents issue urgency. Critical is the most urgent and sorts
// first under the severity ordering.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank maps a priority onto the fixed severity ordering, lower is more
// urgent. Unknown priorities rank after low.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Status represents the issue lifecycle state.
type Status string

const (
	StatusOpen         Status = "open"
	StatusAcknowledged Status = "acknowledged"
	StatusInProgress   Status = "in_progress"
	StatusResolved     Status = "resolved"
	StatusDismissed    Status = "dismissed"
)

// SourceType records how an issue came to exist.
type SourceType string

const (
	SourceAutomatic SourceType = "automatic"
	SourceManual    SourceType = "manual"
	SourceExternal  SourceType = "external"
)

// Source is issue provenance. Detector names the producing rule for
// automatic issues.
type Source struct {
	Type     SourceType `json:"type"`
	Detector string     `json:"detector,omitempty"`
}

// ObjectRef is a typed reference to a related domain object. References
// never imply ownership; resolving them is the caller's concern.
type ObjectRef struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// Issue is a detected, prioritized, actionable condition. Issues are
// created by the detection engine or by the lifecycle functions; they are
// never mutated in place.
type Issue[C ~string] struct {
	ID          string `json:"id"`
	IssueNumber string `json:"issue_number"`

	Category C        `json:"category"`
	Priority Priority `json:"priority"`
	Status   Status   `json:"status"`

	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	SuggestedAction string `json:"suggested_action,omitempty"`

	Related          []ObjectRef `json:"related,omitempty"`
	AffectedQuantity float64     `json:"affected_quantity,omitempty"`
	AffectedValue    float64     `json:"affected_value,omitempty"`

	DetectedAt time.Time `json:"detected_at"`
	DetectedBy string    `json:"detected_by,omitempty"`

	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	AcknowledgedBy string     `json:"acknowledged_by,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	StartedBy      string     `json:"started_by,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy     string     `json:"resolved_by,omitempty"`
	Resolution     string     `json:"resolution,omitempty"`
	DismissedAt    *time.Time `json:"dismissed_at,omitempty"`
	DismissedBy    string     `json:"dismissed_by,omitempty"`
	DismissReason  string     `json:"dismiss_reason,omitempty"`

	Assignee string `json:"assignee,omitempty"`

	Source     Source         `json:"source"`
	SourceData map[string]any `json:"source_data,omitempty"`
	Meta       map[string]any `json:"meta,omitempty"`
}

// ActionRequired reports whether the issue belongs in the action-required
// subset: still open and at least high priority.
func (i Issue[C]) ActionRequired() bool {
	return i.Status == StatusOpen &&
		(i.Priority == PriorityCritical || i.Priority == PriorityHigh)
}

// Acknowledge returns a copy of issue marked acknowledged by actor.
func Acknowledge[C ~string](issue Issue[C], actor string) Issue[C] {
	now := time.Now()
	next := issue
	next.Status = StatusAcknowledged
	next.AcknowledgedAt = &now
	next.AcknowledgedBy = actor
	return next
}

// Start returns a copy of issue marked in progress, assigned to actor.
func Start[C ~string](issue Issue[C], actor string) Issue[C] {
	now := time.Now()
	next := issue
	next.Status = StatusInProgress
	next.StartedAt = &now
	next.StartedBy = actor
	if next.Assignee == "" {
		next.Assignee = actor
	}
	return next
}

// Resolve returns a copy of issue marked resolved with the given
// resolution text.
func Resolve[C ~string](issue Issue[C], resolution, actor string) Issue[C] {
	now := time.Now()
	next := issue
	next.Status = StatusResolved
	next.ResolvedAt = &now
	next.ResolvedBy = actor
	next.Resolution = resolution
	return next
}

// Dismiss returns a copy of issue marked dismissed with the given reason.
func Dismiss[C ~string](issue Issue[C], reason, actor string) Issue[C] {
	now := time.Now()
	next := issue
	next.Status = StatusDismissed
	next.DismissedAt = &now
	next.DismissedBy = actor
	next.DismissReason = reason
	return next
}

// Reopen returns a copy of issue back in the open state. Resolution and
// dismissal fields are cleared so the reopened issue reads like a fresh
// one.
func Reopen[C ~string](issue Issue[C]) Issue[C] {
	next := issue
	next.Status = StatusOpen
	next.ResolvedAt = nil
	next.ResolvedBy = ""
	next.Resolution = ""
	next.DismissedAt = nil
	next.DismissedBy = ""
	next.DismissReason = ""
	return next
}
