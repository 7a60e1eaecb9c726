package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-posts/cmd/blog/internal/bootstrap"
	lintcmd "github.com/goliatone/go-posts/internal/commands/lint"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runLint(os.Args[1:]); err != nil {
		if errors.Is(err, lintcmd.ErrLintIssuesFound) {
			log.Printf("blog lint: %v", err)
			os.Exit(1)
		}
		log.Fatalf("blog lint: %v", err)
	}
}

func runLint(args []string) error {
	fs := flag.NewFlagSet("blog-lint", flag.ExitOnError)
	basePath := fs.String("base-path", "_posts", "Path to the corpus root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering post files")
	directory := fs.String("directory", ".", "Directory to lint, relative to the corpus root")
	disabled := fs.String("disabled", "", "Comma separated list of rule IDs to skip")
	schemaPath := fs.String("schema", "", "Path to a JSON schema applied to front matter")
	failOn := fs.String("fail-on", "error", "Severity that fails the run: error or warning")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		BasePath:   *basePath,
		Pattern:    *pattern,
		Recursive:  true,
		Disabled:   bootstrap.SplitList(*disabled),
		SchemaPath: *schemaPath,
		Lint:       true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	if module.Linter == nil {
		return fmt.Errorf("lint runner not configured; ensure Features.Lint is enabled")
	}

	sink := func(report *interfaces.Report) {
		for _, issue := range report.Issues {
			if issue.Line > 0 {
				fmt.Fprintf(os.Stdout, "%s: %s:%d [%s] %s\n", issue.Severity, issue.Path, issue.Line, issue.Rule, issue.Message)
				continue
			}
			fmt.Fprintf(os.Stdout, "%s: %s [%s] %s\n", issue.Severity, issue.Path, issue.Rule, issue.Message)
		}
	}

	handler := lintcmd.NewLintCorpusHandler(module.Linter, sink, module.Logger)
	cmd := lintcmd.LintCorpusCommand{
		Directory: *directory,
		Pattern:   *pattern,
		Disabled:  bootstrap.SplitList(*disabled),
		FailOn:    *failOn,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "lint command executed successfully")

	return nil
}
