package revision

// Merge types are data shapes only. Hosts that reconcile divergent
// revisions populate these; no resolving algorithm is implemented here.

// MergeConflict describes one path where two revisions disagree against a
// common base.
type MergeConflict struct {
	Path       string `json:"path"`
	BaseValue  any    `json:"base_value,omitempty"`
	LeftValue  any    `json:"left_value,omitempty"`
	RightValue any    `json:"right_value,omitempty"`
}

// MergeResult is the outcome of a host-performed merge of two revisions.
type MergeResult[T any] struct {
	Merged    T               `json:"merged"`
	Conflicts []MergeConflict `json:"conflicts,omitempty"`
	Clean     bool            `json:"clean"`
}
