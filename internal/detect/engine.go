package detect

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Context carries optional caller-supplied evaluation context shared by all
// rules in one detection call.
type Context map[string]any

// Result is what a rule emits for one finding. Zero-value Category and
// Priority inherit from the rule.
type Result[C ~string] struct {
	Category        C
	Priority        Priority
	Title           string
	Description     string
	SuggestedAction string

	Related          []ObjectRef
	AffectedQuantity float64
	AffectedValue    float64

	SourceData map[string]any
	Meta       map[string]any
}

// Rule is a registered detector: metadata plus a pure detection function
// mapping one input to zero or more results.
type Rule[T any, C ~string] struct {
	ID           string
	Name         string
	Category     C
	BasePriority Priority
	Enabled      bool
	Detect       func(input T, ctx Context) []Result[C]
}

// Config configures a detection engine. Zero values default to uuid ids,
// the wall clock, and initial-letter number prefixes.
type Config[C ~string] struct {
	// NewID generates issue ids.
	NewID func() string

	// Now supplies detection timestamps.
	Now func() time.Time

	// NumberPrefix derives the issue-number prefix for a category.
	NumberPrefix func(category C) string
}

// Engine evaluates registered rules against inputs. The issue-number
// counter is its only mutable state; a single instance must not be shared
// across concurrent callers.
type Engine[T any, C ~string] struct {
	cfg     Config[C]
	rules   []Rule[T, C]
	index   map[string]int
	counter int
}

// NewEngine builds an engine over the given rules. Registration order is
// preserved for evaluation.
func NewEngine[T any, C ~string](rules []Rule[T, C], cfg Config[C]) *Engine[T, C] {
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NumberPrefix == nil {
		cfg.NumberPrefix = func(category C) string {
			return defaultPrefix(string(category))
		}
	}

	e := &Engine[T, C]{
		cfg:   cfg,
		rules: append([]Rule[T, C](nil), rules...),
		index: make(map[string]int, len(rules)),
	}
	for i, r := range e.rules {
		e.index[r.ID] = i
	}
	return e
}

// defaultPrefix turns a category into an issue-number prefix: initials of
// underscore-separated words, or the first three letters of a single word.
// quality_hold becomes QH, invoice becomes INV.
func defaultPrefix(category string) string {
	parts := strings.Split(category, "_")
	if len(parts) > 1 {
		var b strings.Builder
		for _, p := range parts {
			if p != "" {
				b.WriteByte(p[0])
			}
		}
		return strings.ToUpper(b.String())
	}
	if len(category) > 3 {
		category = category[:3]
	}
	return strings.ToUpper(category)
}

// Rules returns a copy of the registry in registration order.
func (e *Engine[T, C]) Rules() []Rule[T, C] {
	return append([]Rule[T, C](nil), e.rules...)
}

// RuleByID looks up one rule.
func (e *Engine[T, C]) RuleByID(id string) (Rule[T, C], bool) {
	i, ok := e.index[id]
	if !ok {
		return Rule[T, C]{}, false
	}
	return e.rules[i], true
}

// SetRuleEnabled toggles a rule. It returns false for unknown ids rather
// than failing. The change applies from the next detection call; issues
// already produced are unaffected.
func (e *Engine[T, C]) SetRuleEnabled(id string, enabled bool) bool {
	i, ok := e.index[id]
	if !ok {
		return false
	}
	e.rules[i].Enabled = enabled
	return true
}

// selected resolves which rules a call runs: all enabled rules when
// ruleIDs is empty, otherwise the enabled subset of the named rules.
// Unknown ids are silently skipped.
func (e *Engine[T, C]) selected(ruleIDs []string) []Rule[T, C] {
	if len(ruleIDs) == 0 {
		out := make([]Rule[T, C], 0, len(e.rules))
		for _, r := range e.rules {
			if r.Enabled {
				out = append(out, r)
			}
		}
		return out
	}

	out := make([]Rule[T, C], 0, len(ruleIDs))
	for _, id := range ruleIDs {
		i, ok := e.index[id]
		if !ok || !e.rules[i].Enabled {
			continue
		}
		out = append(out, e.rules[i])
	}
	return out
}

// Detect runs the selected rules against one input and wraps every result
// into a fully-populated open Issue.
func (e *Engine[T, C]) Detect(input T, ctx Context, ruleIDs ...string) []Issue[C] {
	var issues []Issue[C]
	for _, rule := range e.selected(ruleIDs) {
		for _, res := range rule.Detect(input, ctx) {
			issues = append(issues, e.wrap(rule, res))
		}
	}
	return issues
}

func (e *Engine[T, C]) wrap(rule Rule[T, C], res Result[C]) Issue[C] {
	category := res.Category
	if category == "" {
		category = rule.Category
	}
	priority := res.Priority
	if priority == "" {
		priority = rule.BasePriority
	}

	e.counter++
	return Issue[C]{
		ID:               e.cfg.NewID(),
		IssueNumber:      fmt.Sprintf("%s-%03d", e.cfg.NumberPrefix(category), e.counter),
		Category:         category,
		Priority:         priority,
		Status:           StatusOpen,
		Title:            res.Title,
		Description:      res.Description,
		SuggestedAction:  res.SuggestedAction,
		Related:          res.Related,
		AffectedQuantity: res.AffectedQuantity,
		AffectedValue:    res.AffectedValue,
		DetectedAt:       e.cfg.Now(),
		Source:           Source{Type: SourceAutomatic, Detector: rule.ID},
		SourceData:       res.SourceData,
		Meta:             res.Meta,
	}
}

// Batch is the input to DetectBatch.
type Batch[T any] struct {
	Items   []T
	RuleIDs []string
	Context Context
}

// BatchOutput aggregates a whole batch run. ByCategory and ByPriority
// always agree with CalculateStats over Issues.
type BatchOutput[C ~string] struct {
	Issues         []Issue[C]
	ByCategory     map[C]int
	ByPriority     map[Priority]int
	ActionRequired []Issue[C]
}

// DetectBatch runs every selected enabled rule against every item. The
// issue-number counter is shared across the whole batch, so numbers
// strictly increase and never reset between items or rules.
func (e *Engine[T, C]) DetectBatch(batch Batch[T]) BatchOutput[C] {
	var issues []Issue[C]
	for _, item := range batch.Items {
		issues = append(issues, e.Detect(item, batch.Context, batch.RuleIDs...)...)
	}

	stats := CalculateStats(issues)
	out := BatchOutput[C]{
		Issues:     issues,
		ByCategory: stats.ByCategory,
		ByPriority: stats.ByPriority,
	}
	for _, issue := range issues {
		if issue.ActionRequired() {
			out.ActionRequired = append(out.ActionRequired, issue)
		}
	}
	return out
}
