package docmeta_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	docmeta "github.com/goliatone/go-docmeta"
)

func writeFile(tb testing.TB, root, rel, content string) string {
	tb.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("write: %v", err)
	}
	return path
}

func TestModuleTransformEndToEnd(t *testing.T) {
	root := t.TempDir()
	contentDir := filepath.Join(root, "content")

	writeFile(t, root, "content/list.md", "---\nname: list\ncategory: tech\ntags: [cli, files]\n---\n\nList documents.\n")
	writeFile(t, root, "content/sync.md", "---\nname: sync\ncategory: docs\ntags: [cli]\n---\n\nSync documents.\n")
	writeFile(t, root, "content/notes.txt", "not markdown\n")

	cfg := docmeta.DefaultConfig()
	cfg.Pipeline.ContentDir = contentDir

	module, err := docmeta.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	def, err := docmeta.ParseDefinition([]byte(`
type: object
properties:
  registry:
    type: object
    properties:
      commands:
        type: array
        frontmatter-part: true
  categories:
    type: array
    derived-from: registry.commands[].category
    unique: true
`))
	if err != nil {
		t.Fatalf("parse definition: %v", err)
	}

	result, err := module.Pipeline().Transform(context.Background(), docmeta.TransformRequest{
		Definition:     def,
		RequiredFields: []string{"name", "category"},
		BaseProperties: map[string]any{"generator": map[string]any{"version": "1.0"}},
	})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	if result.DocumentsProcessed != 2 {
		t.Fatalf("expected 2 documents, got %d", result.DocumentsProcessed)
	}

	commands, ok := result.Data.Get("registry.commands")
	if !ok {
		t.Fatalf("expected registry.commands, fields: %v", result.Data.Fields())
	}
	if entries := commands.([]any); len(entries) != 2 {
		t.Fatalf("expected 2 command entries, got %d", len(entries))
	}

	categories, ok := result.Data.Get("categories")
	if !ok {
		t.Fatal("expected derived categories")
	}
	if len(categories.([]any)) != 2 {
		t.Fatalf("expected 2 unique categories, got %v", categories)
	}

	version, ok := result.Data.Get("generator.version")
	if !ok || version != "1.0" {
		t.Fatalf("expected base properties merged, got %v", version)
	}

	output, err := module.Renderer().Render(context.Background(), result.Data, docmeta.RenderDescriptor{Format: "json"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("rendered output is not valid json: %v", err)
	}
}

func TestModuleExtractAndValidate(t *testing.T) {
	extraction, err := docmeta.Extract("---\ntitle: Hello\noptions:\n  input: [file, stdin]\n---\nBody.\n")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	input, ok := extraction.Data.Get("options.input")
	if !ok {
		t.Fatal("expected options.input")
	}
	if _, isArray := input.([]any); !isArray {
		t.Fatalf("expected array type fidelity, got %T", input)
	}

	report := docmeta.ValidateRequiredFields(extraction.Data, []string{"title", "author"})
	if report.Valid {
		t.Fatal("expected invalid report")
	}
	if len(report.Errors) != 1 {
		t.Fatalf("expected one error, got %v", report.Errors)
	}
}
