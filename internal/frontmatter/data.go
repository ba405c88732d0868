// Package frontmatter extracts metadata blocks from Markdown documents and
// models the extracted fields as immutable, path-addressable values.
package frontmatter

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-docmeta/internal/pathexpr"
)

// Data is an immutable key/value mapping of frontmatter fields. Instances
// are built through New or FromValue, which reject non-object top-level
// input, so a Data always carries at least one field. Accessors hand out
// deep copies; mutation helpers return new instances.
type Data struct {
	fields map[string]any
}

// New builds a Data from a field mapping. A nil map is rejected as a null
// top-level value and an empty map as fieldless frontmatter. The input is
// normalised and deep-copied, so later changes to the argument do not leak
// into the returned Data.
func New(fields map[string]any) (*Data, error) {
	if fields == nil {
		return nil, ErrNotObject
	}
	if len(fields) == 0 {
		return nil, ErrEmptyData
	}
	return &Data{fields: normalizeMap(fields)}, nil
}

// FromValue builds a Data from an arbitrary decoded value, enforcing that
// the top level is an object. Arrays, scalars, and null are rejected.
func FromValue(value any) (*Data, error) {
	switch typed := normalizeValue(value).(type) {
	case map[string]any:
		if len(typed) == 0 {
			return nil, ErrEmptyData
		}
		return &Data{fields: typed}, nil
	case nil:
		return nil, ErrNotObject
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotObject, value)
	}
}

// Get resolves a dot path (strict mode, no wildcards) against the fields and
// returns a deep copy of the value. The second return is false when the path
// is malformed or does not resolve.
func (d *Data) Get(path string) (any, bool) {
	if d == nil {
		return nil, false
	}
	expr, err := pathexpr.Parse(path)
	if err != nil {
		return nil, false
	}

	var current any = d.fields
	for _, step := range expr {
		switch step.Kind {
		case pathexpr.StepProperty:
			container, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			current, ok = container[step.Name]
			if !ok {
				return nil, false
			}
		case pathexpr.StepIndex:
			items, ok := current.([]any)
			if !ok || step.Index >= len(items) {
				return nil, false
			}
			current = items[step.Index]
		default:
			return nil, false
		}
	}
	return cloneValue(current), true
}

// Has reports whether the dot path resolves to a value.
func (d *Data) Has(path string) bool {
	_, ok := d.Get(path)
	return ok
}

// Filter returns a new Data limited to the top-level fields the predicate
// keeps. Filtering away every field is an error: an empty frontmatter is not
// representable and callers must treat it separately from "no frontmatter".
func (d *Data) Filter(keep func(key string, value any) bool) (*Data, error) {
	if d == nil || keep == nil {
		return nil, ErrEmptyData
	}

	kept := map[string]any{}
	for key, value := range d.fields {
		if keep(key, cloneValue(value)) {
			kept[key] = cloneValue(value)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: filter removed every field", ErrEmptyData)
	}
	return &Data{fields: kept}, nil
}

// WithField returns a new Data with the field set, leaving the receiver
// untouched. A nil receiver starts a fresh single-field Data.
func (d *Data) WithField(key string, value any) (*Data, error) {
	if key == "" {
		return nil, ErrFieldRequired
	}

	fields := map[string]any{}
	if d != nil {
		fields = cloneMap(d.fields)
	}
	fields[key] = normalizeValue(value)
	return &Data{fields: fields}, nil
}

// Fields returns a deep copy of the underlying mapping.
func (d *Data) Fields() map[string]any {
	if d == nil {
		return nil
	}
	return cloneMap(d.fields)
}

// Keys returns the top-level field names in sorted order.
func (d *Data) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.fields))
	for key := range d.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len reports the number of top-level fields.
func (d *Data) Len() int {
	if d == nil {
		return 0
	}
	return len(d.fields)
}
