package corpuscmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-posts/internal/commands"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const syncOperation = "corpus.sync"

// ErrIndexFeatureDisabled is returned when the index feature flag is disabled at runtime.
var ErrIndexFeatureDisabled = errors.New("corpus command: index feature disabled")

var _ command.Commander[SyncCorpusCommand] = (*SyncCorpusHandler)(nil)

// Syncer reconciles revision groups into persistent storage.
type Syncer interface {
	Sync(ctx context.Context, groups []*interfaces.RevisionGroup, opts interfaces.SyncOptions) (*interfaces.SyncResult, error)
}

// SyncCorpusHandler orchestrates corpus-to-index sync runs via the shared
// command handler foundation.
type SyncCorpusHandler struct {
	inner *commands.Handler[SyncCorpusCommand]
}

// NewSyncCorpusHandler creates a handler bound to the supplied corpus and sync services.
func NewSyncCorpusHandler(corpus interfaces.CorpusService, syncer Syncer, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SyncCorpusCommand]) *SyncCorpusHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SyncCorpusCommand) error {
		if !gates.indexEnabled() {
			return ErrIndexFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		groups, err := corpus.Revisions(ctx, msg.Directory, interfaces.LoadOptions{
			Pattern: msg.Pattern,
			Strict:  msg.Strict,
		})
		if err != nil {
			return err
		}

		result, err := syncer.Sync(ctx, groups, interfaces.SyncOptions{
			DryRun:         msg.DryRun,
			DeleteOrphaned: msg.DeleteOrphaned,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created": result.Created,
				"updated": result.Updated,
				"deleted": result.Deleted,
				"skipped": result.Skipped,
				"errors":  len(result.Errors),
				"dry_run": msg.DryRun,
			}).Info("corpus.command.sync.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncCorpusCommand]{
		commands.WithLogger[SyncCorpusCommand](baseLogger),
		commands.WithOperation[SyncCorpusCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncCorpusCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.DeleteOrphaned {
				fields["delete_orphaned"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncCorpusCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncCorpusHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncCorpusCommand].
func (h *SyncCorpusHandler) Execute(ctx context.Context, msg SyncCorpusCommand) error {
	return h.inner.Execute(ctx, msg)
}
