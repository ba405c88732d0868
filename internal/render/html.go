package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-docmeta/pkg/interfaces"
)

// GoldmarkRenderer implements interfaces.HTMLRenderer using the goldmark
// engine. The renderer is stateless so a single instance can be shared
// across documents without locking.
type GoldmarkRenderer struct {
	defaults interfaces.HTMLOptions
}

// NewGoldmarkRenderer constructs a renderer with the supplied defaults.
// Callers can override behaviour per invocation through RenderWithOptions.
func NewGoldmarkRenderer(defaults interfaces.HTMLOptions) *GoldmarkRenderer {
	return &GoldmarkRenderer{defaults: defaults}
}

var _ interfaces.HTMLRenderer = (*GoldmarkRenderer)(nil)

// Render converts Markdown into HTML using the renderer's default settings.
func (r *GoldmarkRenderer) Render(markdown []byte) ([]byte, error) {
	return r.RenderWithOptions(markdown, r.defaults)
}

// RenderWithOptions converts Markdown into HTML using the provided options.
func (r *GoldmarkRenderer) RenderWithOptions(markdown []byte, opts interfaces.HTMLOptions) ([]byte, error) {
	engine := newGoldmarkEngine(opts)
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// newGoldmarkEngine builds a goldmark.Markdown from the supplied options.
// The mapping is intentionally conservative; unsupported extension names are
// ignored.
func newGoldmarkEngine(opts interfaces.HTMLOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	// Both SafeMode and Sanitize are treated as signals to avoid emitting
	// raw HTML.
	if !opts.SafeMode && !opts.Sanitize {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
	}

	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return nil
	}

	seen := map[goldmark.Extender]bool{}
	var exts []goldmark.Extender
	for _, name := range names {
		ext, ok := extensionRegistry[name]
		if !ok || seen[ext] {
			continue
		}
		seen[ext] = true
		exts = append(exts, ext)
	}
	return exts
}
