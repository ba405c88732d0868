package aggregate

import (
	"fmt"

	"github.com/goliatone/go-docmeta/internal/pathexpr"
)

// deepMerge combines base and overlay into a new map. Keys whose values are
// mappings on both sides merge recursively; every other overlay value,
// arrays included, replaces the base value wholesale. Replacing arrays
// instead of concatenating them keeps merge results auditable: the overlay
// always states the full final value.
func deepMerge(base, overlay map[string]any) map[string]any {
	out := cloneMap(base)
	if out == nil {
		out = map[string]any{}
	}

	for key, value := range overlay {
		if existing, ok := out[key].(map[string]any); ok {
			if overlayMap, ok := value.(map[string]any); ok {
				out[key] = deepMerge(existing, overlayMap)
				continue
			}
		}
		out[key] = cloneValue(value)
	}

	return out
}

// setPath writes value at a dot path, creating intermediate container maps
// on demand. The path must be a plain property path: index and wildcard
// steps have no placement meaning. An intermediate segment that already
// holds a non-map value is a conflict.
func setPath(root map[string]any, path string, value any) error {
	expr, err := pathexpr.Parse(path)
	if err != nil {
		return fmt.Errorf("target path %q: %w", path, err)
	}

	current := root
	for i, step := range expr {
		if step.Kind != pathexpr.StepProperty {
			return fmt.Errorf("target path %q: only property steps can be set", path)
		}

		if i == len(expr)-1 {
			current[step.Name] = value
			return nil
		}

		next, ok := current[step.Name]
		if !ok {
			child := map[string]any{}
			current[step.Name] = child
			current = child
			continue
		}

		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("target path %q: segment %q holds a %T, not an object", path, step.Name, next)
		}
		current = child
	}

	return nil
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneMap(typed)
	case []any:
		return cloneSlice(typed)
	default:
		return typed
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneSlice(input []any) []any {
	if input == nil {
		return nil
	}
	out := make([]any, len(input))
	for i, value := range input {
		out[i] = cloneValue(value)
	}
	return out
}
