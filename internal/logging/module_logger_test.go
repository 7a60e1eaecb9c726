package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	if fields == nil {
		fields = map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "posts.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	// Ensure WithContext/WithFields do not panic.
	ctx := context.Background()
	logger = logger.WithContext(ctx)
	logger.Debug("noop")
}

func TestModuleLoggerAttachesModuleField(t *testing.T) {
	recorder := &recordingLogger{}
	provider := &stubProvider{logger: recorder}

	CorpusLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != "posts.corpus" {
		t.Fatalf("expected corpus module request, got %v", provider.requested)
	}
	if len(recorder.fields) != 1 {
		t.Fatalf("expected module field attachment, got %d", len(recorder.fields))
	}
	if recorder.fields[0]["module"] != "posts.corpus" {
		t.Fatalf("unexpected module field: %v", recorder.fields[0])
	}
}

func TestWithPostContextSkipsEmptyValues(t *testing.T) {
	recorder := &recordingLogger{}

	WithPostContext(recorder, "_posts/2024-01-01-intro.md", "", "update")

	if len(recorder.fields) != 1 {
		t.Fatalf("expected one fields attachment, got %d", len(recorder.fields))
	}
	fields := recorder.fields[0]
	if fields[fieldPostPath] != "_posts/2024-01-01-intro.md" {
		t.Fatalf("unexpected path field: %v", fields)
	}
	if _, ok := fields[fieldPostSlug]; ok {
		t.Fatalf("empty slug should be skipped: %v", fields)
	}
	if fields[fieldAction] != "update" {
		t.Fatalf("unexpected action field: %v", fields)
	}
}
