// Package document models a Markdown source file with its extracted
// frontmatter. Documents are treated as immutable after Build; mutation
// helpers return new instances.
package document

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/goliatone/go-docmeta/internal/frontmatter"
)

// Document is a parsed Markdown file. Data is nil when the file carries no
// frontmatter block; Body holds the content with the block stripped. Meta is
// a best-effort typed projection of common fields, while Data remains the
// authoritative value store.
type Document struct {
	FilePath     string
	Content      []byte
	Data         *frontmatter.Data
	Body         string
	BodyHTML     []byte
	Format       frontmatter.Format
	Meta         Meta
	LastModified time.Time
	Checksum     []byte
}

// Build assembles a Document from raw file contents. Extraction errors are
// returned as-is so callers can classify them (invalid format, empty block,
// parse failure) per file.
func Build(path string, source []byte, modified time.Time) (*Document, error) {
	extraction, err := frontmatter.Extract(string(source))
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", path, err)
	}

	sum := sha256.Sum256(source)

	return &Document{
		FilePath:     path,
		Content:      append([]byte(nil), source...),
		Data:         extraction.Data,
		Body:         extraction.Body,
		Format:       extraction.Format,
		Meta:         decodeMeta(source),
		LastModified: modified,
		Checksum:     sum[:],
	}, nil
}

// HasFrontmatter reports whether a frontmatter block was found.
func (d *Document) HasFrontmatter() bool {
	return d != nil && d.Data != nil
}

// WithField returns a copy of the document whose frontmatter has the field
// set. Building on a document without frontmatter starts a fresh single-field
// Data.
func (d *Document) WithField(key string, value any) (*Document, error) {
	if d == nil {
		return nil, fmt.Errorf("document: nil document")
	}

	data, err := d.Data.WithField(key, value)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", d.FilePath, err)
	}

	copied := d.clone()
	copied.Data = data
	return copied, nil
}

// WithBodyHTML returns a copy of the document carrying rendered HTML.
func (d *Document) WithBodyHTML(html []byte) *Document {
	if d == nil {
		return nil
	}
	copied := d.clone()
	copied.BodyHTML = append([]byte(nil), html...)
	return copied
}

func (d *Document) clone() *Document {
	copied := *d
	copied.Content = append([]byte(nil), d.Content...)
	copied.BodyHTML = append([]byte(nil), d.BodyHTML...)
	copied.Checksum = append([]byte(nil), d.Checksum...)
	return &copied
}
