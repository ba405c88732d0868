package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-docmeta/internal/frontmatter"
	"github.com/goliatone/go-docmeta/internal/runtimeconfig"
	"github.com/goliatone/go-docmeta/internal/schema"
)

func itemsDefinition(tb testing.TB) *schema.Definition {
	return partDefinition(tb, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"commands": map[string]any{
				"type":             "array",
				"frontmatter-part": true,
				"template-items":   "templates/command.md",
			},
		},
	})
}

func mustData(tb testing.TB, fields map[string]any) *frontmatter.Data {
	tb.Helper()
	data, err := frontmatter.New(fields)
	if err != nil {
		tb.Fatalf("build data: %v", err)
	}
	return data
}

func TestCollectPartItems(t *testing.T) {
	svc := newTestService(t, &stubFS{}, runtimeconfig.ProcessingBounds{})

	data := mustData(t, map[string]any{
		"commands": []any{
			map[string]any{"name": "list"},
			map[string]any{"name": "sync"},
		},
	})

	items, err := svc.CollectPartItems(context.Background(), data, itemsDefinition(t))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if items.Path != "commands" {
		t.Fatalf("expected commands path, got %q", items.Path)
	}
	if items.Template != "templates/command.md" {
		t.Fatalf("expected items template, got %q", items.Template)
	}
	if len(items.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items.Items))
	}
	if name, _ := items.Items[0].Get("name"); name != "list" {
		t.Fatalf("expected first item name list, got %v", name)
	}
	if len(items.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", items.Warnings)
	}
}

func TestCollectPartItemsNonArrayWarns(t *testing.T) {
	svc := newTestService(t, &stubFS{}, runtimeconfig.ProcessingBounds{})

	data := mustData(t, map[string]any{"commands": "not-an-array"})

	items, err := svc.CollectPartItems(context.Background(), data, itemsDefinition(t))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(items.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(items.Items))
	}
	if len(items.Warnings) != 1 || !strings.Contains(items.Warnings[0], "not an array") {
		t.Fatalf("expected non-array warning, got %v", items.Warnings)
	}
}

func TestCollectPartItemsSkipsInvalidElements(t *testing.T) {
	svc := newTestService(t, &stubFS{}, runtimeconfig.ProcessingBounds{})

	data := mustData(t, map[string]any{
		"commands": []any{
			map[string]any{"name": "list"},
			"stray-string",
		},
	})

	items, err := svc.CollectPartItems(context.Background(), data, itemsDefinition(t))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(items.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items.Items))
	}
	if len(items.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", items.Warnings)
	}
}

func TestCollectPartItemsNoPartMarker(t *testing.T) {
	svc := newTestService(t, &stubFS{}, runtimeconfig.ProcessingBounds{})

	def := partDefinition(t, map[string]any{"type": "object"})
	data := mustData(t, map[string]any{"title": "x"})

	_, err := svc.CollectPartItems(context.Background(), data, def)
	if !errors.Is(err, schema.ErrFrontmatterPartNotFound) {
		t.Fatalf("expected ErrFrontmatterPartNotFound, got %v", err)
	}
}
