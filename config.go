package posts

import "github.com/goliatone/go-posts/internal/runtimeconfig"

var (
	ErrCorpusBasePathRequired     = runtimeconfig.ErrCorpusBasePathRequired
	ErrIndexDSNRequired           = runtimeconfig.ErrIndexDSNRequired
	ErrGeneratorOutputDirRequired = runtimeconfig.ErrGeneratorOutputDirRequired
	ErrGeneratorBaseURLRequired   = runtimeconfig.ErrGeneratorBaseURLRequired
	ErrFeedLimitInvalid           = runtimeconfig.ErrFeedLimitInvalid
	ErrLintFailOnInvalid          = runtimeconfig.ErrLintFailOnInvalid
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	CorpusConfig    = runtimeconfig.CorpusConfig
	MarkdownConfig  = runtimeconfig.MarkdownConfig
	LintConfig      = runtimeconfig.LintConfig
	IndexConfig     = runtimeconfig.IndexConfig
	GeneratorConfig = runtimeconfig.GeneratorConfig
	CacheConfig     = runtimeconfig.CacheConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
	Features        = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
