package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-posts/cmd/blog/internal/bootstrap"
	staticcmd "github.com/goliatone/go-posts/internal/commands/static"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("blog build: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("blog-build", flag.ExitOnError)
	basePath := fs.String("base-path", "_posts", "Path to the corpus root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering post files")
	directory := fs.String("directory", ".", "Directory to build, relative to the corpus root")
	output := fs.String("output", "public", "Directory receiving generated artifacts")
	baseURL := fs.String("base-url", "http://localhost", "Absolute base URL for permalinks and feeds")
	siteTitle := fs.String("site-title", "Posts", "Site title used by layouts and feeds")
	siteDescription := fs.String("site-description", "", "Site description used by layouts and feeds")
	templateDir := fs.String("template-dir", "", "Directory holding layout overrides named <layout>.html.tmpl")
	force := fs.Bool("force", false, "Rebuild every page even when unchanged")
	includeUnpublished := fs.Bool("include-unpublished", false, "Render posts marked published: false")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		BasePath:        *basePath,
		Pattern:         *pattern,
		Recursive:       true,
		OutputDir:       *output,
		BaseURL:         *baseURL,
		SiteTitle:       *siteTitle,
		SiteDescription: *siteDescription,
		TemplateDir:     *templateDir,
		Generator:       true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	if module.Builder == nil {
		return fmt.Errorf("site generator not configured; ensure Features.Generator is enabled")
	}

	handler := staticcmd.NewBuildSiteHandler(module.Corpus, module.Builder, module.Logger, staticcmd.FeatureGates{
		GeneratorEnabled: func() bool { return true },
	})
	cmd := staticcmd.BuildSiteCommand{
		Directory:          *directory,
		Pattern:            *pattern,
		Force:              *force,
		IncludeUnpublished: *includeUnpublished,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute build command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "site build command executed successfully")

	return nil
}
