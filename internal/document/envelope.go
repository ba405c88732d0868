package document

import (
	"bytes"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"
)

// Meta carries the common frontmatter fields most templates reach for.
// Fields outside this set land in Custom. The projection is best-effort: a
// document whose metadata cannot be decoded into the envelope keeps a zero
// Meta and remains fully usable through Data.
type Meta struct {
	Title   string         `yaml:"title"`
	Slug    string         `yaml:"slug"`
	Summary string         `yaml:"summary"`
	Tags    []string       `yaml:"tags"`
	Author  string         `yaml:"author"`
	Date    time.Time      `yaml:"date"`
	Draft   bool           `yaml:"draft"`
	Custom  map[string]any `yaml:",inline"`
}

func decodeMeta(source []byte) Meta {
	var meta Meta
	if _, err := frontmatter.Parse(bytes.NewReader(source), &meta); err != nil {
		return Meta{}
	}
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	return meta
}

// Slug returns the document's explicit slug or a normalised form of its
// title when none is set. Documents with neither produce an empty slug.
func (d *Document) Slug() string {
	if d == nil {
		return ""
	}
	if d.Meta.Slug != "" {
		return d.Meta.Slug
	}
	if d.Meta.Title == "" {
		return ""
	}
	normalized, err := slug.Normalize(d.Meta.Title)
	if err != nil || normalized == "" {
		return ""
	}
	return normalized
}
