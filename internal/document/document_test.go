package document_test

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-docmeta/internal/document"
	"github.com/goliatone/go-docmeta/internal/frontmatter"
)

func TestBuild_WithYAMLFrontmatter(t *testing.T) {
	source := []byte("---\ntitle: Release Notes\nslug: notes\ntags:\n  - go\nversion: 2\n---\nBody text.\n")
	modified := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	doc, err := document.Build("content/notes.md", source, modified)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if !doc.HasFrontmatter() {
		t.Fatalf("expected frontmatter to be detected")
	}
	if doc.Format != frontmatter.FormatYAML {
		t.Fatalf("expected yaml format, got %q", doc.Format)
	}
	if doc.Body != "Body text.\n" {
		t.Fatalf("unexpected body: %q", doc.Body)
	}
	if title, _ := doc.Data.Get("title"); title != "Release Notes" {
		t.Fatalf("expected title in data, got %v", title)
	}
	if version, _ := doc.Data.Get("version"); version != int64(2) {
		t.Fatalf("expected custom field in data, got %#v", version)
	}

	if doc.Meta.Title != "Release Notes" {
		t.Fatalf("expected meta title, got %q", doc.Meta.Title)
	}
	if len(doc.Meta.Tags) != 1 || doc.Meta.Tags[0] != "go" {
		t.Fatalf("expected meta tags, got %v", doc.Meta.Tags)
	}
	if doc.Meta.Custom["version"] == nil {
		t.Fatalf("expected custom envelope field, got %v", doc.Meta.Custom)
	}

	sum := sha256.Sum256(source)
	if !bytes.Equal(doc.Checksum, sum[:]) {
		t.Fatalf("expected sha256 checksum of source")
	}
	if !doc.LastModified.Equal(modified) {
		t.Fatalf("expected modification time to be carried")
	}
}

func TestBuild_WithoutFrontmatter(t *testing.T) {
	source := []byte("# Plain document\n")

	doc, err := document.Build("content/plain.md", source, time.Time{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if doc.HasFrontmatter() {
		t.Fatalf("expected no frontmatter")
	}
	if doc.Body != string(source) {
		t.Fatalf("expected body to carry whole document")
	}
}

func TestBuild_PropagatesExtractionErrors(t *testing.T) {
	source := []byte("---\ntitle: Broken\n")

	_, err := document.Build("content/broken.md", source, time.Time{})
	if !errors.Is(err, frontmatter.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestWithField_ReturnsNewInstance(t *testing.T) {
	source := []byte("---\ntitle: Guide\n---\nBody.\n")

	doc, err := document.Build("content/guide.md", source, time.Time{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	updated, err := doc.WithField("status", "published")
	if err != nil {
		t.Fatalf("WithField returned error: %v", err)
	}

	if doc.Data.Has("status") {
		t.Fatalf("expected original document to stay untouched")
	}
	if status, _ := updated.Data.Get("status"); status != "published" {
		t.Fatalf("expected status on the copy, got %v", status)
	}
	if updated.FilePath != doc.FilePath || updated.Body != doc.Body {
		t.Fatalf("expected copy to carry file identity and body")
	}
}

func TestWithBodyHTML_CopiesInput(t *testing.T) {
	source := []byte("---\ntitle: Guide\n---\nBody.\n")

	doc, err := document.Build("content/guide.md", source, time.Time{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	html := []byte("<p>Body.</p>")
	rendered := doc.WithBodyHTML(html)
	html[0] = 'X'

	if string(rendered.BodyHTML) != "<p>Body.</p>" {
		t.Fatalf("expected html to be copied, got %q", rendered.BodyHTML)
	}
	if len(doc.BodyHTML) != 0 {
		t.Fatalf("expected original to stay without html")
	}
}

func TestSlug_FallsBackToTitle(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"explicit slug wins", "---\ntitle: Some Title\nslug: custom-slug\n---\n", "custom-slug"},
		{"title normalised", "---\ntitle: Hello World Guide\n---\n", "hello-world-guide"},
		{"no title no slug", "---\ndraft: true\n---\n", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := document.Build("content/doc.md", []byte(tc.source), time.Time{})
			if err != nil {
				t.Fatalf("Build returned error: %v", err)
			}
			if got := doc.Slug(); got != tc.want {
				t.Fatalf("expected slug %q, got %q", tc.want, got)
			}
		})
	}
}
