package aggregate

import (
	"reflect"

	"github.com/goliatone/go-docmeta/internal/pathexpr"
)

// evalQuery resolves a query expression against a nested structure. Wildcard
// steps fan out across every element of the array at that position; the
// results from each branch are flattened into a single slice in document
// order. The second return distinguishes "resolved to nothing" from
// "resolved to an empty collection".
func evalQuery(root map[string]any, expr pathexpr.Expression) ([]any, bool) {
	values := evalSteps(root, expr)
	if values == nil {
		return nil, false
	}
	return values, true
}

func evalSteps(current any, steps pathexpr.Expression) []any {
	if len(steps) == 0 {
		return []any{current}
	}

	step := steps[0]
	rest := steps[1:]

	switch step.Kind {
	case pathexpr.StepProperty:
		container, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		value, ok := container[step.Name]
		if !ok {
			return nil
		}
		return evalSteps(value, rest)

	case pathexpr.StepIndex:
		items, ok := current.([]any)
		if !ok || step.Index >= len(items) {
			return nil
		}
		return evalSteps(items[step.Index], rest)

	case pathexpr.StepWildcard:
		items, ok := current.([]any)
		if !ok {
			return nil
		}
		// A wildcard over an empty array resolves to an empty collection,
		// not to nothing: the caller still places an empty result.
		collected := []any{}
		for _, item := range items {
			collected = append(collected, evalSteps(item, rest)...)
		}
		return collected

	default:
		return nil
	}
}

// dedupe keeps the first occurrence of each value. Maps and slices compare
// by deep equality, everything else by value equality.
func dedupe(values []any) []any {
	out := make([]any, 0, len(values))
	for _, value := range values {
		if containsValue(out, value) {
			continue
		}
		out = append(out, value)
	}
	return out
}

func containsValue(haystack []any, needle any) bool {
	for _, item := range haystack {
		if valuesEqual(item, needle) {
			return true
		}
	}
	return false
}

func valuesEqual(a, b any) bool {
	switch a.(type) {
	case map[string]any, []any:
		return reflect.DeepEqual(a, b)
	default:
		return a == b
	}
}
