package main

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-posts/cmd/blog/internal/bootstrap"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

type stubCorpus struct {
	gotDir string
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

func (s *stubCorpus) Revisions(_ context.Context, dir string, _ interfaces.LoadOptions) ([]*interfaces.RevisionGroup, error) {
	s.gotDir = dir
	return []*interfaces.RevisionGroup{}, nil
}

type stubSyncer struct {
	calls   int
	gotOpts interfaces.SyncOptions
}

func (s *stubSyncer) Sync(_ context.Context, _ []*interfaces.RevisionGroup, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	s.calls++
	s.gotOpts = opts
	return &interfaces.SyncResult{}, nil
}

func TestRunSyncUsesCommandHandler(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	corpus := &stubCorpus{}
	syncer := &stubSyncer{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Corpus: corpus,
			Syncer: syncer,
			Logger: logging.NoOp(),
		}, nil
	}

	if err := runSync([]string{
		"-directory", "drafts",
		"-dry-run",
	}); err != nil {
		t.Fatalf("runSync returned error: %v", err)
	}
	if corpus.gotDir != "drafts" {
		t.Fatalf("expected sync directory drafts, got %s", corpus.gotDir)
	}
	if syncer.calls != 1 {
		t.Fatalf("expected sync to be called once, got %d", syncer.calls)
	}
	if !syncer.gotOpts.DryRun {
		t.Fatal("expected dry-run to propagate to sync options")
	}
}

func TestRunSyncRequiresSyncer(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Corpus: &stubCorpus{},
			Logger: logging.NoOp(),
		}, nil
	}

	if err := runSync(nil); err == nil {
		t.Fatal("expected error when the index service is missing")
	}
}
