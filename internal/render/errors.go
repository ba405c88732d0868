package render

import "errors"

// ErrUnsupportedFormat indicates an output format outside json, yaml, and
// markdown.
var ErrUnsupportedFormat = errors.New("render: unsupported output format")

// ErrTemplateRequired indicates a markdown render without a template path;
// markdown output has no direct serialization form.
var ErrTemplateRequired = errors.New("render: template is required for markdown output")

// ErrTemplateFailed indicates a template that could not be loaded, parsed,
// or executed.
var ErrTemplateFailed = errors.New("render: template failed")
