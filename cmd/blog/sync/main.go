package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-posts/cmd/blog/internal/bootstrap"
	corpuscmd "github.com/goliatone/go-posts/internal/commands/corpus"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSync(os.Args[1:]); err != nil {
		log.Fatalf("blog sync: %v", err)
	}
}

func runSync(args []string) error {
	fs := flag.NewFlagSet("blog-sync", flag.ExitOnError)
	basePath := fs.String("base-path", "_posts", "Path to the corpus root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering post files")
	directory := fs.String("directory", ".", "Directory to sync, relative to the corpus root")
	dsn := fs.String("dsn", "", "Index database DSN (defaults to config)")
	strict := fs.Bool("strict", false, "Reject files that break the date-title naming convention")
	dryRun := fs.Bool("dry-run", false, "Preview changes without touching the index")
	deleteOrphaned := fs.Bool("delete-orphaned", false, "Remove indexed records whose source files disappeared")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		BasePath:  *basePath,
		Pattern:   *pattern,
		Recursive: true,
		Strict:    *strict,
		DSN:       *dsn,
		Index:     true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	if module.Syncer == nil {
		return fmt.Errorf("index service not configured; ensure Features.Index is enabled")
	}

	ctx := context.Background()

	if err := module.Migrate(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	handler := corpuscmd.NewSyncCorpusHandler(module.Corpus, module.Syncer, module.Logger, corpuscmd.FeatureGates{
		IndexEnabled: func() bool { return true },
	})
	cmd := corpuscmd.SyncCorpusCommand{
		Directory:      *directory,
		Pattern:        *pattern,
		Strict:         *strict,
		DryRun:         *dryRun,
		DeleteOrphaned: *deleteOrphaned,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute sync command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "corpus sync command executed successfully")

	return nil
}
