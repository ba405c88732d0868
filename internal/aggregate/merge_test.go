package aggregate

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeepMergeObjectsMergeArraysReplace(t *testing.T) {
	base := map[string]any{
		"config":   map[string]any{"debug": true},
		"commands": []any{"git"},
	}
	overlay := map[string]any{
		"config": map[string]any{"verbose": true},
		"tags":   []any{"cli"},
	}

	got := deepMerge(base, overlay)

	want := map[string]any{
		"config": map[string]any{
			"debug":   true,
			"verbose": true,
		},
		"commands": []any{"git"},
		"tags":     []any{"cli"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestDeepMergeOverlayArrayReplacesBaseArray(t *testing.T) {
	// Arrays never concatenate: the overlay states the full final value.
	base := map[string]any{"tags": []any{"a", "b"}}
	overlay := map[string]any{"tags": []any{"c"}}

	got := deepMerge(base, overlay)
	if diff := cmp.Diff(map[string]any{"tags": []any{"c"}}, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestDeepMergeOverlayScalarReplacesBaseObject(t *testing.T) {
	base := map[string]any{"value": map[string]any{"nested": 1}}
	overlay := map[string]any{"value": "flat"}

	got := deepMerge(base, overlay)
	if got["value"] != "flat" {
		t.Fatalf("expected overlay scalar to win, got %v", got["value"])
	}
}

func TestDeepMergeDoesNotMutateInputs(t *testing.T) {
	base := map[string]any{"config": map[string]any{"debug": true}}
	overlay := map[string]any{"config": map[string]any{"verbose": true}}

	_ = deepMerge(base, overlay)

	if _, ok := base["config"].(map[string]any)["verbose"]; ok {
		t.Fatal("base was mutated by merge")
	}
}

func TestSetPathCreatesIntermediateContainers(t *testing.T) {
	root := map[string]any{}
	if err := setPath(root, "registry.tools.commands", []any{}); err != nil {
		t.Fatalf("set path: %v", err)
	}

	want := map[string]any{
		"registry": map[string]any{
			"tools": map[string]any{
				"commands": []any{},
			},
		},
	}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("structure mismatch (-want +got):\n%s", diff)
	}
}

func TestSetPathScalarConflict(t *testing.T) {
	root := map[string]any{"tools": "not-a-container"}
	err := setPath(root, "tools.commands", []any{})
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if !strings.Contains(err.Error(), "tools") {
		t.Fatalf("expected error to name the segment, got %v", err)
	}
}

func TestSetPathRejectsIndexSteps(t *testing.T) {
	if err := setPath(map[string]any{}, "items[0].value", 1); err == nil {
		t.Fatal("expected index placement to be rejected")
	}
}
