package bootstrap

import (
	"fmt"
	"io"
	"os"
	"strings"

	docmeta "github.com/goliatone/go-docmeta"
	"github.com/goliatone/go-docmeta/internal/commands"
	transformcmd "github.com/goliatone/go-docmeta/internal/commands/transform"
	"github.com/goliatone/go-docmeta/internal/di"
	"github.com/goliatone/go-docmeta/pkg/interfaces"
)

// Options captures configuration for docmeta CLI bootstraps.
type Options struct {
	ContentDir     string
	Pattern        string
	LogLevel       string
	Verbose        bool
	Output         io.Writer
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the docmeta module plus the dependency set the transform
// command handlers execute against.
type Module struct {
	Module *docmeta.Module
	Deps   transformcmd.Dependencies
	Logger interfaces.Logger
}

// BuildModule constructs a docmeta module configured for CLI operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := docmeta.DefaultConfig()
	if trimmed := strings.TrimSpace(opts.ContentDir); trimmed != "" {
		cfg.Pipeline.ContentDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Pipeline.Pattern = trimmed
	}

	cfg.Features.Logger = opts.Verbose
	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Features.Logger = true
		cfg.Logging.Level = trimmed
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := docmeta.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise docmeta module: %w", err)
	}

	container := module.Container()
	logger := commands.CommandLogger(container.LoggerProvider(), "transform")

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	return &Module{
		Module: module,
		Deps: transformcmd.Dependencies{
			Pipeline: container.PipelineService(),
			Renderer: container.RenderService(),
			Reader:   container.FileReader(),
			Writer:   container.FileWriter(),
			Logger:   logger,
			Output:   output,
		},
		Logger: logger,
	}, nil
}

// SplitFields parses a comma separated field list into a trimmed slice.
func SplitFields(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}
	return fields
}
