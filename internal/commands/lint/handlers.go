package lintcmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-posts/internal/commands"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const lintOperation = "lint.run"

// ErrLintIssuesFound is returned when a run surfaces issues at or above the
// configured severity threshold.
var ErrLintIssuesFound = errors.New("lint command: issues found")

var _ command.Commander[LintCorpusCommand] = (*LintCorpusHandler)(nil)

// ReportSink receives the lint report before the handler decides pass or fail.
type ReportSink func(*interfaces.Report)

// LintCorpusHandler runs the linter over a corpus directory and fails the
// command when the report crosses the severity threshold.
type LintCorpusHandler struct {
	inner *commands.Handler[LintCorpusCommand]
}

// NewLintCorpusHandler creates a handler bound to the supplied linter. The
// optional sink observes every produced report, which CLI frontends use to
// print issues.
func NewLintCorpusHandler(linter interfaces.Linter, sink ReportSink, logger interfaces.Logger, opts ...commands.HandlerOption[LintCorpusCommand]) *LintCorpusHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg LintCorpusCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		report, err := linter.LintDirectory(ctx, msg.Directory, interfaces.LintOptions{
			Disabled: msg.Disabled,
			Load:     interfaces.LoadOptions{Pattern: msg.Pattern},
		})
		if err != nil {
			return err
		}

		if sink != nil {
			sink(report)
		}

		errorCount := report.Count(interfaces.SeverityError)
		warningCount := report.Count(interfaces.SeverityWarning)
		logging.WithFields(baseLogger, map[string]any{
			"errors":   errorCount,
			"warnings": warningCount,
		}).Info("lint.command.run.completed")

		failed := errorCount > 0
		if msg.FailOn == "warning" {
			failed = failed || warningCount > 0
		}
		if failed {
			return fmt.Errorf("%w: %d errors, %d warnings", ErrLintIssuesFound, errorCount, warningCount)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[LintCorpusCommand]{
		commands.WithLogger[LintCorpusCommand](baseLogger),
		commands.WithOperation[LintCorpusCommand](lintOperation),
		commands.WithMessageFields(func(msg LintCorpusCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if len(msg.Disabled) > 0 {
				fields["disabled"] = msg.Disabled
			}
			if msg.FailOn != "" {
				fields["fail_on"] = msg.FailOn
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[LintCorpusCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LintCorpusHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[LintCorpusCommand].
func (h *LintCorpusHandler) Execute(ctx context.Context, msg LintCorpusCommand) error {
	return h.inner.Execute(ctx, msg)
}
