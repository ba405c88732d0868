package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"
)

// ErrContentDirRequired indicates the pipeline has no content directory to scan.
var ErrContentDirRequired = errors.New("docmeta config: content directory is required")

// ErrMaxFilesInvalid rejects non-positive file ceilings.
var ErrMaxFilesInvalid = errors.New("docmeta config: bounds max files must be positive")

// ErrMaxMemoryInvalid rejects non-positive memory ceilings.
var ErrMaxMemoryInvalid = errors.New("docmeta config: bounds max memory units must be positive")

// ErrMaxDerivedInvalid rejects negative derived-field ceilings.
var ErrMaxDerivedInvalid = errors.New("docmeta config: bounds max derived fields must be zero or positive")

// ErrRenderFormatInvalid rejects output formats the renderer does not support.
var ErrRenderFormatInvalid = errors.New("docmeta config: render format is invalid")

// ErrMarkdownTemplateRequired enforces that markdown output always goes through a template.
var ErrMarkdownTemplateRequired = errors.New("docmeta config: markdown output requires a template path")

var ErrLoggingProviderRequired = errors.New("docmeta config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("docmeta config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("docmeta config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("docmeta config: logging format is invalid")

// MemoryUnitBytes is the byte size of one memory unit in ProcessingBounds.
// File sizes are rounded up to whole units when budgeting a run.
const MemoryUnitBytes = 1024

// Config aggregates pipeline behaviour, resource ceilings, and adapter
// bindings for the docmeta module. It is passed by reference at construction
// time; there is no ambient global configuration.
type Config struct {
	Enabled  bool
	Pipeline PipelineConfig
	Bounds   ProcessingBounds
	Render   RenderConfig
	HTML     HTMLConfig
	Features Features
	Logging  LoggingConfig
}

// PipelineConfig captures filesystem discovery behaviour for transformation runs.
type PipelineConfig struct {
	ContentDir string
	Pattern    string
	SchemaPath string
}

// ProcessingBounds sets the resource ceilings checked before bulk processing.
// Violations surface as a typed error before any file content is read.
type ProcessingBounds struct {
	// MaxFiles caps how many documents a single run may process.
	MaxFiles int
	// MaxMemoryUnits caps the summed document sizes, measured in MemoryUnitBytes units.
	MaxMemoryUnits int64
	// MaxDerivedFields caps how many derivation rules a schema may apply per run.
	MaxDerivedFields int
}

// RenderConfig captures output behaviour for the template renderer.
type RenderConfig struct {
	Format            string
	TemplatePath      string
	ItemsTemplatePath string
	OutputPath        string
	IncludeBodyHTML   bool
}

// HTMLConfig mirrors interfaces.HTMLOptions for runtime configuration.
type HTMLConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// Features toggles module functionality.
type Features struct {
	Logger bool
	HTML   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a flat-file content tree.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Pipeline: PipelineConfig{
			ContentDir: "content",
			Pattern:    "*.md",
		},
		Bounds: ProcessingBounds{
			MaxFiles:         1000,
			MaxMemoryUnits:   262144,
			MaxDerivedFields: 100,
		},
		Render: RenderConfig{
			Format: "json",
		},
		HTML: HTMLConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// WithDefaults fills zero-valued fields from DefaultConfig without touching
// values the caller set explicitly.
func (cfg Config) WithDefaults() (Config, error) {
	merged := cfg
	if err := mergo.Merge(&merged, DefaultConfig()); err != nil {
		return cfg, fmt.Errorf("docmeta config: applying defaults: %w", err)
	}
	return merged, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Pipeline.ContentDir) == "" {
		return ErrContentDirRequired
	}
	if cfg.Bounds.MaxFiles <= 0 {
		return ErrMaxFilesInvalid
	}
	if cfg.Bounds.MaxMemoryUnits <= 0 {
		return ErrMaxMemoryInvalid
	}
	if cfg.Bounds.MaxDerivedFields < 0 {
		return ErrMaxDerivedInvalid
	}
	if format := normalizeFormat(cfg.Render.Format); format != "" {
		if !isSupportedRenderFormat(format) {
			return fmt.Errorf("%w: %s", ErrRenderFormatInvalid, format)
		}
		if format == "markdown" && strings.TrimSpace(cfg.Render.TemplatePath) == "" {
			return ErrMarkdownTemplateRequired
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

func isSupportedRenderFormat(format string) bool {
	switch format {
	case "json", "yaml", "markdown":
		return true
	default:
		return false
	}
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
