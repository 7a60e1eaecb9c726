package lint

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

func lintFS(files map[string]string) fstest.MapFS {
	mapFS := fstest.MapFS{}
	for name, content := range files {
		mapFS[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return mapFS
}

func runLint(t *testing.T, files map[string]string, opts interfaces.LintOptions) *interfaces.Report {
	t.Helper()

	runner := NewRunnerWithFS(lintFS(files), Config{Recursive: true})
	report, err := runner.LintDirectory(context.Background(), "_posts", opts)
	if err != nil {
		t.Fatalf("LintDirectory: %v", err)
	}
	return report
}

func findIssues(report *interfaces.Report, rule string) []interfaces.Issue {
	var matched []interfaces.Issue
	for _, issue := range report.Issues {
		if issue.Rule == rule {
			matched = append(matched, issue)
		}
	}
	return matched
}

func TestLintCleanCorpus(t *testing.T) {
	report := runLint(t, map[string]string{
		"_posts/2024-01-01-clean.md": "---\nlayout: post\ntitle: Clean\n---\nAll good here.\n",
	}, interfaces.LintOptions{})

	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", report.Issues)
	}
}

func TestLintFrontMatterParseFailure(t *testing.T) {
	report := runLint(t, map[string]string{
		"_posts/2024-01-01-broken.md": "---\ntitle: [unterminated\n---\nbody\n",
	}, interfaces.LintOptions{})

	issues := findIssues(report, RuleFrontMatterParse)
	if len(issues) != 1 {
		t.Fatalf("expected one parse issue, got %v", report.Issues)
	}
	if issues[0].Severity != interfaces.SeverityError {
		t.Fatalf("parse failures are errors, got %s", issues[0].Severity)
	}
}

func TestLintRequiredFields(t *testing.T) {
	report := runLint(t, map[string]string{
		"_posts/2024-01-01-untitled.md": "---\ncomments: true\n---\nbody\n",
	}, interfaces.LintOptions{})

	issues := findIssues(report, RuleFrontMatterRequired)
	if len(issues) != 2 {
		t.Fatalf("expected missing layout and title, got %v", issues)
	}
}

func TestLintDuplicateFrontMatter(t *testing.T) {
	report := runLint(t, map[string]string{
		"_posts/2024-01-01-doubled.md": "---\nlayout: post\ntitle: Doubled\n---\n---\nlayout: post\ntitle: Doubled\n---\nbody\n",
	}, interfaces.LintOptions{})

	if issues := findIssues(report, RuleFrontMatterDuplicate); len(issues) != 1 {
		t.Fatalf("expected duplicate front matter warning, got %v", report.Issues)
	}
}

func TestLintUnclosedFence(t *testing.T) {
	report := runLint(t, map[string]string{
		"_posts/2024-01-01-fence.md": "---\nlayout: post\ntitle: Fence\n---\n```go\nfunc main() {}\n",
	}, interfaces.LintOptions{})

	issues := findIssues(report, RuleBodyFences)
	if len(issues) != 1 {
		t.Fatalf("expected unclosed fence issue, got %v", report.Issues)
	}
	if issues[0].Line != 5 {
		t.Fatalf("expected issue at the fence opening line, got %d", issues[0].Line)
	}
}

func TestLintUnclosedHighlight(t *testing.T) {
	report := runLint(t, map[string]string{
		"_posts/2024-01-01-liquid.md": "---\nlayout: post\ntitle: Liquid\n---\n{% highlight go %}\nfunc main() {}\n",
	}, interfaces.LintOptions{})

	if issues := findIssues(report, RuleBodyFences); len(issues) != 1 {
		t.Fatalf("expected unclosed highlight issue, got %v", report.Issues)
	}
}

func TestLintInternalLinks(t *testing.T) {
	report := runLint(t, map[string]string{
		"_posts/2024-01-01-source.md": "---\nlayout: post\ntitle: Source\n---\n[good](2024-01-02-target.md) and [bad](2024-09-09-missing.md)\n",
		"_posts/2024-01-02-target.md": "---\nlayout: post\ntitle: Target\n---\nbody\n",
	}, interfaces.LintOptions{})

	issues := findIssues(report, RuleBodyLinks)
	if len(issues) != 1 {
		t.Fatalf("expected one broken link, got %v", issues)
	}
	if issues[0].Path != "_posts/2024-01-01-source.md" {
		t.Fatalf("unexpected issue path: %s", issues[0].Path)
	}
}

func TestLintExternalLinksIgnored(t *testing.T) {
	report := runLint(t, map[string]string{
		"_posts/2024-01-01-ext.md": "---\nlayout: post\ntitle: Ext\n---\n[site](https://example.com/page.md) [anchor](#section)\n",
	}, interfaces.LintOptions{})

	if issues := findIssues(report, RuleBodyLinks); len(issues) != 0 {
		t.Fatalf("external and anchor links should be ignored, got %v", issues)
	}
}

func TestLintFragileImages(t *testing.T) {
	report := runLint(t, map[string]string{
		"_posts/2024-01-01-img.md": "---\nlayout: post\ntitle: Img\n---\n![shot](https://raw.githubusercontent.com/user/repo/main/shot.png)\n![ok](/assets/shot.png)\n",
	}, interfaces.LintOptions{})

	issues := findIssues(report, RuleBodyImages)
	if len(issues) != 1 {
		t.Fatalf("expected one fragile image warning, got %v", issues)
	}
	if issues[0].Severity != interfaces.SeverityWarning {
		t.Fatalf("fragile images are warnings, got %s", issues[0].Severity)
	}
}

func TestLintFilenameConvention(t *testing.T) {
	report := runLint(t, map[string]string{
		"_posts/not-dated.md": "---\nlayout: post\ntitle: Undated\n---\nbody\n",
	}, interfaces.LintOptions{})

	if issues := findIssues(report, RuleFileName); len(issues) != 1 {
		t.Fatalf("expected filename issue, got %v", report.Issues)
	}
}

func TestLintRevisionTitleDrift(t *testing.T) {
	report := runLint(t, map[string]string{
		"_posts/2024-01-01-topic.md": "---\nlayout: post\ntitle: Topic\n---\nv1\n",
		"_posts/2024-02-01-topic.md": "---\nlayout: post\ntitle: Topic, Revised\n---\nv2\n",
	}, interfaces.LintOptions{})

	issues := findIssues(report, RuleRevisionsTitle)
	if len(issues) != 1 {
		t.Fatalf("expected title drift warning, got %v", report.Issues)
	}
	if issues[0].Path != "_posts/2024-02-01-topic.md" {
		t.Fatalf("drift should report against the canonical revision, got %s", issues[0].Path)
	}
}

func TestLintSchemaRule(t *testing.T) {
	schema := []byte(`{
		"type": "object",
		"properties": {
			"layout": {"type": "string", "enum": ["post", "page"]}
		}
	}`)

	report := runLint(t, map[string]string{
		"_posts/2024-01-01-odd.md": "---\nlayout: gallery\ntitle: Odd\n---\nbody\n",
	}, interfaces.LintOptions{Schema: schema})

	if issues := findIssues(report, RuleFrontMatterSchema); len(issues) == 0 {
		t.Fatalf("expected schema violation, got %v", report.Issues)
	}
}

func TestLintDisabledRules(t *testing.T) {
	report := runLint(t, map[string]string{
		"_posts/not-dated.md": "---\nlayout: post\ntitle: Undated\n---\nbody\n",
	}, interfaces.LintOptions{Disabled: []string{RuleFileName}})

	if issues := findIssues(report, RuleFileName); len(issues) != 0 {
		t.Fatalf("disabled rule should not run, got %v", issues)
	}
}

func TestLintReportDeterministicOrder(t *testing.T) {
	files := map[string]string{
		"_posts/2024-01-01-a.md": "---\ncomments: true\n---\nbody\n",
		"_posts/2024-01-02-b.md": "---\ncomments: true\n---\nbody\n",
	}

	first := runLint(t, files, interfaces.LintOptions{})
	second := runLint(t, files, interfaces.LintOptions{})

	if len(first.Issues) != len(second.Issues) {
		t.Fatalf("issue counts differ between runs")
	}
	for i := range first.Issues {
		if first.Issues[i] != second.Issues[i] {
			t.Fatalf("issue order differs at %d: %v vs %v", i, first.Issues[i], second.Issues[i])
		}
	}
	if len(first.Issues) > 1 && first.Issues[0].Path > first.Issues[1].Path {
		t.Fatalf("issues are not sorted by path")
	}
}
