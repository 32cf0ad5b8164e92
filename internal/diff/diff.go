package diff

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// Significance classifies how impactful a change is, driving version bumps.
type Significance string

const (
	SignificanceMajor Significance = "major"
	SignificanceMinor Significance = "minor"
	SignificancePatch Significance = "patch"
)

// FieldChangeType identifies the kind of field-level change.
type FieldChangeType string

const (
	FieldAdded    FieldChangeType = "added"
	FieldRemoved  FieldChangeType = "removed"
	FieldModified FieldChangeType = "modified"

	// FieldUnchanged entries are only emitted when Options.IncludeUnchanged
	// is set. They are excluded from stats.
	FieldUnchanged FieldChangeType = "unchanged"
)

// CollectionChangeType identifies the kind of array-level change.
type CollectionChangeType string

const (
	ItemAdded     CollectionChangeType = "item_added"
	ItemRemoved   CollectionChangeType = "item_removed"
	ItemModified  CollectionChangeType = "item_modified"
	ItemReordered CollectionChangeType = "reordered"
)

// FieldChange describes one field-level difference between two snapshots.
type FieldChange struct {
	Path         string          `json:"path"`
	Type         FieldChangeType `json:"type"`
	OldValue     any             `json:"old_value,omitempty"`
	NewValue     any             `json:"new_value,omitempty"`
	Significance Significance    `json:"significance"`
	Label        string          `json:"label,omitempty"`
}

// CollectionChange describes one array-level difference. For modified items
// the element's own field changes are attached as ItemChanges and also
// flattened into the ChangeSet's top-level field changes.
type CollectionChange struct {
	Path        string               `json:"path"`
	Type        CollectionChangeType `json:"type"`
	ItemID      string               `json:"item_id,omitempty"`
	Index       int                  `json:"index"`
	OldItem     any                  `json:"old_item,omitempty"`
	NewItem     any                  `json:"new_item,omitempty"`
	ItemChanges []FieldChange        `json:"item_changes,omitempty"`
}

// ChangeSet is the complete, order-independent description of every
// difference between two snapshots.
type ChangeSet struct {
	FieldChanges      []FieldChange      `json:"field_changes"`
	CollectionChanges []CollectionChange `json:"collection_changes"`
	Stats             Stats              `json:"stats"`
}

// Empty reports whether the change set describes no differences.
func (cs ChangeSet) Empty() bool {
	return cs.Stats.TotalChanges == 0
}

// Options configures a comparison.
type Options struct {
	// IgnorePaths are skipped entirely, including their subtrees.
	IgnorePaths []string

	// MajorPaths and MinorPaths assign significance by exact path match.
	// Paths absent from both lists produce patch-significance changes.
	MajorPaths []string
	MinorPaths []string

	// MaxDepth bounds recursion by path segment count. Differences below
	// the cutoff are silently not reported.
	MaxDepth int

	// IncludeUnchanged emits FieldUnchanged entries for equal leaf fields.
	IncludeUnchanged bool

	// Labels maps paths to human-readable names attached to field changes.
	Labels map[string]string
}

// DefaultOptions returns the comparison options used when a caller passes
// none.
func DefaultOptions() Options {
	return Options{MaxDepth: 10}
}

// Calculate produces the ChangeSet between two snapshots. Both inputs are
// normalized before comparison, so any JSON-representable value works:
// structs, maps, slices, scalars. Calculate never fails; values that cannot
// be normalized compare as nil.
func Calculate(oldData, newData any, opts Options) ChangeSet {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultOptions().MaxDepth
	}

	d := &differ{opts: opts}
	d.compare("", 0, Normalize(oldData), Normalize(newData))

	return ChangeSet{
		FieldChanges:      d.fields,
		CollectionChanges: d.collections,
		Stats:             ComputeStats(d.fields, d.collections),
	}
}

// Normalize converts an arbitrary value into the comparison representation
// (map[string]any, []any, and JSON scalars) via a JSON round-trip. Values
// that cannot be marshalled normalize to nil.
func Normalize(v any) any {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

type differ struct {
	opts        Options
	fields      []FieldChange
	collections []CollectionChange
}

func (d *differ) ignored(path string) bool {
	for _, p := range d.opts.IgnorePaths {
		if p == path {
			return true
		}
	}
	return false
}

func (d *differ) significance(path string) Significance {
	for _, p := range d.opts.MajorPaths {
		if p == path {
			return SignificanceMajor
		}
	}
	for _, p := range d.opts.MinorPaths {
		if p == path {
			return SignificanceMinor
		}
	}
	return SignificancePatch
}

func (d *differ) field(path string, typ FieldChangeType, oldV, newV any) {
	d.fields = append(d.fields, FieldChange{
		Path:         path,
		Type:         typ,
		OldValue:     oldV,
		NewValue:     newV,
		Significance: d.significance(path),
		Label:        d.opts.Labels[path],
	})
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// compare dispatches on the shapes of both values at path.
func (d *differ) compare(path string, depth int, oldV, newV any) {
	if path != "" && d.ignored(path) {
		return
	}
	if depth > d.opts.MaxDepth {
		return
	}

	oldMap, oldIsMap := oldV.(map[string]any)
	newMap, newIsMap := newV.(map[string]any)
	if oldIsMap && newIsMap {
		d.compareMaps(path, depth, oldMap, newMap)
		return
	}

	oldArr, oldIsArr := oldV.([]any)
	newArr, newIsArr := newV.([]any)
	if oldIsArr && newIsArr {
		d.compareCollections(path, depth, oldArr, newArr)
		return
	}

	if reflect.DeepEqual(oldV, newV) {
		if d.opts.IncludeUnchanged && path != "" {
			d.field(path, FieldUnchanged, oldV, newV)
		}
		return
	}
	d.field(path, FieldModified, oldV, newV)
}

func (d *differ) compareMaps(path string, depth int, oldMap, newMap map[string]any) {
	keys := make([]string, 0, len(oldMap)+len(newMap))
	seen := make(map[string]bool, len(oldMap)+len(newMap))
	for k := range oldMap {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range newMap {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		p := childPath(path, k)
		if d.ignored(p) {
			continue
		}

		oldChild, inOld := oldMap[k]
		newChild, inNew := newMap[k]
		switch {
		case !inOld:
			d.field(p, FieldAdded, nil, newChild)
		case !inNew:
			d.field(p, FieldRemoved, oldChild, nil)
		default:
			d.compare(p, depth+1, oldChild, newChild)
		}
	}
}

// identityOf probes an array element for an "id" or "key" property.
// Elements without one are excluded from collection diffing.
func identityOf(elem any) (string, bool) {
	m, ok := elem.(map[string]any)
	if !ok {
		return "", false
	}
	if id, ok := m["id"]; ok && id != nil {
		return fmt.Sprint(id), true
	}
	if key, ok := m["key"]; ok && key != nil {
		return fmt.Sprint(key), true
	}
	return "", false
}

type indexedItem struct {
	index int
	value any
}

func indexByIdentity(arr []any) (map[string]indexedItem, []string) {
	items := make(map[string]indexedItem)
	order := make([]string, 0, len(arr))
	for i, elem := range arr {
		id, ok := identityOf(elem)
		if !ok {
			continue
		}
		if _, dup := items[id]; dup {
			continue
		}
		items[id] = indexedItem{index: i, value: elem}
		order = append(order, id)
	}
	return items, order
}

func (d *differ) compareCollections(path string, depth int, oldArr, newArr []any) {
	oldItems, oldOrder := indexByIdentity(oldArr)
	newItems, newOrder := indexByIdentity(newArr)

	mutated := false

	for _, id := range oldOrder {
		if _, ok := newItems[id]; !ok {
			mutated = true
			d.collections = append(d.collections, CollectionChange{
				Path:    path,
				Type:    ItemRemoved,
				ItemID:  id,
				Index:   oldItems[id].index,
				OldItem: oldItems[id].value,
			})
		}
	}

	for _, id := range newOrder {
		newItem := newItems[id]
		oldItem, ok := oldItems[id]
		if !ok {
			mutated = true
			d.collections = append(d.collections, CollectionChange{
				Path:    path,
				Type:    ItemAdded,
				ItemID:  id,
				Index:   newItem.index,
				NewItem: newItem.value,
			})
			continue
		}
		if reflect.DeepEqual(oldItem.value, newItem.value) {
			continue
		}

		mutated = true
		itemChanges := d.itemChanges(path, depth, oldItem.value, newItem.value)
		d.collections = append(d.collections, CollectionChange{
			Path:        path,
			Type:        ItemModified,
			ItemID:      id,
			Index:       newItem.index,
			OldItem:     oldItem.value,
			NewItem:     newItem.value,
			ItemChanges: itemChanges,
		})
		d.fields = append(d.fields, itemChanges...)
	}

	if !mutated && !reflect.DeepEqual(oldOrder, newOrder) {
		d.collections = append(d.collections, CollectionChange{
			Path: path,
			Type: ItemReordered,
		})
	}
}

// itemChanges diffs one modified element with a nested differ. Field paths
// are rooted at the collection path so significance lookups match the same
// configured lists as scalar fields. Collection changes found inside the
// element propagate to the top-level change set.
func (d *differ) itemChanges(path string, depth int, oldItem, newItem any) []FieldChange {
	nested := &differ{opts: d.opts}
	nested.compare(path, depth, oldItem, newItem)
	d.collections = append(d.collections, nested.collections...)
	return nested.fields
}
