package staticcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-posts/internal/commands"
	"github.com/goliatone/go-posts/internal/generator"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const buildOperation = "static.build"

// ErrGeneratorFeatureDisabled is returned when the generator feature flag is disabled at runtime.
var ErrGeneratorFeatureDisabled = errors.New("static command: generator feature disabled")

var _ command.Commander[BuildSiteCommand] = (*BuildSiteHandler)(nil)

// SiteBuilder renders revision groups into site artifacts.
type SiteBuilder interface {
	Build(ctx context.Context, groups []*interfaces.RevisionGroup, opts generator.BuildOptions) (*generator.BuildResult, error)
}

// FeatureGates exposes runtime feature toggles for static site commands.
type FeatureGates struct {
	GeneratorEnabled func() bool
}

func (g FeatureGates) generatorEnabled() bool {
	if g.GeneratorEnabled == nil {
		return true
	}
	return g.GeneratorEnabled()
}

// BuildSiteHandler orchestrates static site builds via the shared command
// handler foundation.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler creates a handler bound to the supplied corpus and builder.
func NewBuildSiteHandler(corpus interfaces.CorpusService, builder SiteBuilder, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if !gates.generatorEnabled() {
			return ErrGeneratorFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		groups, err := corpus.Revisions(ctx, msg.Directory, interfaces.LoadOptions{Pattern: msg.Pattern})
		if err != nil {
			return err
		}

		result, err := builder.Build(ctx, groups, generator.BuildOptions{
			Force:              msg.Force,
			IncludeUnpublished: msg.IncludeUnpublished,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"pages":     result.PagesWritten,
				"skipped":   result.PagesSkipped,
				"feeds":     result.FeedsWritten,
				"artifacts": result.Artifacts,
				"output":    result.OutputDir,
			}).Info("static.command.build.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand](buildOperation),
		commands.WithMessageFields(func(msg BuildSiteCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Force {
				fields["force"] = true
			}
			if msg.IncludeUnpublished {
				fields["include_unpublished"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}
