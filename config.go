package docmeta

import "github.com/goliatone/go-docmeta/internal/runtimeconfig"

var (
	ErrContentDirRequired       = runtimeconfig.ErrContentDirRequired
	ErrMaxFilesInvalid          = runtimeconfig.ErrMaxFilesInvalid
	ErrMaxMemoryInvalid         = runtimeconfig.ErrMaxMemoryInvalid
	ErrMaxDerivedInvalid        = runtimeconfig.ErrMaxDerivedInvalid
	ErrRenderFormatInvalid      = runtimeconfig.ErrRenderFormatInvalid
	ErrMarkdownTemplateRequired = runtimeconfig.ErrMarkdownTemplateRequired
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	PipelineConfig   = runtimeconfig.PipelineConfig
	ProcessingBounds = runtimeconfig.ProcessingBounds
	RenderConfig     = runtimeconfig.RenderConfig
	HTMLConfig       = runtimeconfig.HTMLConfig
	Features         = runtimeconfig.Features
	LoggingConfig    = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
