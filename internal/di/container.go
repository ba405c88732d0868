// Package di wires configuration, logging, adapters, and services into the
// docmeta runtime. The container owns construction order; options let hosts
// replace any collaborator with their own implementation.
package di

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-docmeta/internal/adapters/fsys"
	"github.com/goliatone/go-docmeta/internal/aggregate"
	"github.com/goliatone/go-docmeta/internal/logging"
	"github.com/goliatone/go-docmeta/internal/logging/console"
	"github.com/goliatone/go-docmeta/internal/logging/gologger"
	"github.com/goliatone/go-docmeta/internal/pipeline"
	"github.com/goliatone/go-docmeta/internal/render"
	"github.com/goliatone/go-docmeta/internal/runtimeconfig"
	"github.com/goliatone/go-docmeta/pkg/interfaces"
)

// Container wires module dependencies.
type Container struct {
	cfg runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	reader         interfaces.FileReader
	lister         interfaces.FileLister
	writer         interfaces.FileWriter
	htmlRenderer   interfaces.HTMLRenderer

	aggregator aggregate.Service
	pipeline   pipeline.Service
	renderer   render.Service
}

// Option overrides a container dependency before services are constructed.
type Option func(*Container)

// WithLoggerProvider replaces the configured logging provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithFileReader replaces the filesystem reader.
func WithFileReader(reader interfaces.FileReader) Option {
	return func(c *Container) {
		if reader != nil {
			c.reader = reader
		}
	}
}

// WithFileLister replaces the filesystem lister.
func WithFileLister(lister interfaces.FileLister) Option {
	return func(c *Container) {
		if lister != nil {
			c.lister = lister
		}
	}
}

// WithFileWriter replaces the filesystem writer.
func WithFileWriter(writer interfaces.FileWriter) Option {
	return func(c *Container) {
		if writer != nil {
			c.writer = writer
		}
	}
}

// WithHTMLRenderer replaces the Markdown-to-HTML renderer.
func WithHTMLRenderer(renderer interfaces.HTMLRenderer) Option {
	return func(c *Container) {
		if renderer != nil {
			c.htmlRenderer = renderer
		}
	}
}

// WithAggregator replaces the aggregation service.
func WithAggregator(svc aggregate.Service) Option {
	return func(c *Container) {
		if svc != nil {
			c.aggregator = svc
		}
	}
}

// NewContainer validates the configuration, applies defaults, and constructs
// every service the module exposes.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	cfg, err := cfg.WithDefaults()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil {
		provider, err := buildLoggerProvider(cfg)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	if c.reader == nil || c.lister == nil || c.writer == nil {
		adapter := fsys.New()
		if c.reader == nil {
			c.reader = adapter
		}
		if c.lister == nil {
			c.lister = adapter
		}
		if c.writer == nil {
			c.writer = adapter
		}
	}

	if c.htmlRenderer == nil && cfg.Features.HTML {
		c.htmlRenderer = render.NewGoldmarkRenderer(interfaces.HTMLOptions{
			Extensions: cfg.HTML.Extensions,
			Sanitize:   cfg.HTML.Sanitize,
			HardWraps:  cfg.HTML.HardWraps,
			SafeMode:   cfg.HTML.SafeMode,
		})
	}

	if c.aggregator == nil {
		c.aggregator = aggregate.NewService(cfg.Bounds,
			aggregate.WithLogger(logging.AggregateLogger(c.loggerProvider)))
	}

	c.pipeline = pipeline.NewService(cfg, pipeline.Dependencies{
		Reader:     c.reader,
		Lister:     c.lister,
		Aggregator: c.aggregator,
		Logger:     logging.PipelineLogger(c.loggerProvider),
	})

	c.renderer = render.NewService(render.Dependencies{
		Reader: c.reader,
		Logger: logging.RenderLogger(c.loggerProvider),
	})

	return c, nil
}

// buildLoggerProvider constructs the provider named by configuration. When
// the logging feature is disabled every module logger degrades to no-op.
func buildLoggerProvider(cfg runtimeconfig.Config) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return noopProvider{}, nil
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "", "console":
		return console.NewProvider(console.Options{MinLevel: consoleLevel(cfg.Logging.Level)}), nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Logging.Provider)
	}
}

func consoleLevel(level string) *console.Level {
	var parsed console.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		parsed = console.LevelTrace
	case "debug":
		parsed = console.LevelDebug
	case "", "info":
		parsed = console.LevelInfo
	case "warn", "warning":
		parsed = console.LevelWarn
	case "error":
		parsed = console.LevelError
	case "fatal":
		parsed = console.LevelFatal
	default:
		return nil
	}
	return &parsed
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }

// Config returns the resolved runtime configuration.
func (c *Container) Config() runtimeconfig.Config { return c.cfg }

// LoggerProvider exposes the configured logging provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// FileReader exposes the configured filesystem reader.
func (c *Container) FileReader() interfaces.FileReader { return c.reader }

// FileLister exposes the configured filesystem lister.
func (c *Container) FileLister() interfaces.FileLister { return c.lister }

// FileWriter exposes the configured filesystem writer.
func (c *Container) FileWriter() interfaces.FileWriter { return c.writer }

// HTMLRenderer exposes the Markdown-to-HTML renderer, nil unless the HTML
// feature is enabled or an override was supplied.
func (c *Container) HTMLRenderer() interfaces.HTMLRenderer { return c.htmlRenderer }

// AggregateService exposes the aggregation service.
func (c *Container) AggregateService() aggregate.Service { return c.aggregator }

// PipelineService exposes the transformation pipeline.
func (c *Container) PipelineService() pipeline.Service { return c.pipeline }

// RenderService exposes the template renderer.
func (c *Container) RenderService() render.Service { return c.renderer }
