package corpuscmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

type stubCorpus struct {
	groups []*interfaces.RevisionGroup
	err    error

	gotDir  string
	gotOpts interfaces.LoadOptions
}

func (s *stubCorpus) Load(context.Context, string, interfaces.LoadOptions) (*interfaces.Post, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCorpus) LoadDirectory(context.Context, string, interfaces.LoadOptions) ([]*interfaces.Post, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCorpus) Render(context.Context, *interfaces.Post, interfaces.ParseOptions) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCorpus) Revisions(_ context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.RevisionGroup, error) {
	s.gotDir = dir
	s.gotOpts = opts
	return s.groups, s.err
}

type stubSyncer struct {
	result  *interfaces.SyncResult
	err     error
	gotOpts interfaces.SyncOptions
	calls   int
}

func (s *stubSyncer) Sync(_ context.Context, _ []*interfaces.RevisionGroup, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	s.calls++
	s.gotOpts = opts
	return s.result, s.err
}

func TestSyncCorpusHandlerExecutes(t *testing.T) {
	corpus := &stubCorpus{groups: []*interfaces.RevisionGroup{{Slug: "topic"}}}
	syncer := &stubSyncer{result: &interfaces.SyncResult{Created: 1}}

	handler := NewSyncCorpusHandler(corpus, syncer, nil, FeatureGates{})

	err := handler.Execute(context.Background(), SyncCorpusCommand{
		Directory:      "_posts",
		DryRun:         true,
		DeleteOrphaned: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if corpus.gotDir != "_posts" {
		t.Fatalf("unexpected directory %q", corpus.gotDir)
	}
	if syncer.calls != 1 {
		t.Fatalf("expected one sync call, got %d", syncer.calls)
	}
	if !syncer.gotOpts.DryRun || !syncer.gotOpts.DeleteOrphaned {
		t.Fatalf("sync options not propagated: %+v", syncer.gotOpts)
	}
}

func TestSyncCorpusHandlerRequiresDirectory(t *testing.T) {
	handler := NewSyncCorpusHandler(&stubCorpus{}, &stubSyncer{}, nil, FeatureGates{})

	err := handler.Execute(context.Background(), SyncCorpusCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestSyncCorpusHandlerFeatureGate(t *testing.T) {
	syncer := &stubSyncer{}
	handler := NewSyncCorpusHandler(&stubCorpus{}, syncer, nil, FeatureGates{
		IndexEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), SyncCorpusCommand{Directory: "_posts"})
	if !errors.Is(err, ErrIndexFeatureDisabled) {
		t.Fatalf("expected feature disabled error, got %v", err)
	}
	if syncer.calls != 0 {
		t.Fatal("syncer must not run when the feature is disabled")
	}
}

func TestSyncCorpusHandlerPropagatesSyncError(t *testing.T) {
	boom := errors.New("storage down")
	handler := NewSyncCorpusHandler(&stubCorpus{}, &stubSyncer{err: boom}, nil, FeatureGates{})

	err := handler.Execute(context.Background(), SyncCorpusCommand{Directory: "_posts"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped sync error, got %v", err)
	}
}
