package lint

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

const (
	RuleBodyLinks  = "body/links"
	RuleBodyImages = "body/images"
)

// markdownLink matches inline links and images; group 1 is "!" for images,
// group 3 is the destination.
var markdownLink = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)

// linksRule resolves internal relative links against the corpus: a link to
// another post must point at a file that exists.
type linksRule struct{}

func (linksRule) ID() string { return RuleBodyLinks }

func (linksRule) Check(_ context.Context, corpus *Corpus, file *File) []interfaces.Issue {
	var issues []interfaces.Issue

	for _, match := range markdownLink.FindAllSubmatchIndex(file.Source, -1) {
		isImage := string(file.Source[match[2]:match[3]]) == "!"
		if isImage {
			continue
		}
		target := string(file.Source[match[6]:match[7]])
		if !isInternalPostLink(target) {
			continue
		}

		resolved := resolveLink(file.Path, target)
		if corpus.HasPath(resolved) {
			continue
		}

		issues = append(issues, interfaces.Issue{
			Rule:     RuleBodyLinks,
			Severity: interfaces.SeverityError,
			Path:     file.Path,
			Line:     lineOf(file.Source, match[0]),
			Message:  fmt.Sprintf("internal link target does not exist: %s", target),
		})
	}

	return issues
}

// imagesRule flags image references that point at raw GitHub URLs. Those
// break whenever the upstream repository moves or the branch is deleted.
type imagesRule struct{}

func (imagesRule) ID() string { return RuleBodyImages }

func (imagesRule) Check(_ context.Context, _ *Corpus, file *File) []interfaces.Issue {
	var issues []interfaces.Issue

	for _, match := range markdownLink.FindAllSubmatchIndex(file.Source, -1) {
		isImage := string(file.Source[match[2]:match[3]]) == "!"
		if !isImage {
			continue
		}
		target := string(file.Source[match[6]:match[7]])
		if !isFragileImageHost(target) {
			continue
		}
		issues = append(issues, interfaces.Issue{
			Rule:     RuleBodyImages,
			Severity: interfaces.SeverityWarning,
			Path:     file.Path,
			Line:     lineOf(file.Source, match[0]),
			Message:  fmt.Sprintf("image served from a raw repository URL: %s", target),
		})
	}

	return issues
}

func isInternalPostLink(target string) bool {
	if target == "" || strings.HasPrefix(target, "#") {
		return false
	}
	if parsed, err := url.Parse(target); err == nil && parsed.Scheme != "" {
		return false
	}
	clean := strings.ToLower(target)
	if idx := strings.IndexAny(clean, "#?"); idx >= 0 {
		clean = clean[:idx]
	}
	return strings.HasSuffix(clean, ".md") || strings.HasSuffix(clean, ".markdown")
}

func resolveLink(fromPath, target string) string {
	if idx := strings.IndexAny(target, "#?"); idx >= 0 {
		target = target[:idx]
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(path.Dir(fromPath), target))
}

func isFragileImageHost(target string) bool {
	parsed, err := url.Parse(target)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := strings.ToLower(parsed.Host)
	if host == "raw.githubusercontent.com" || host == "raw.github.com" {
		return true
	}
	if (host == "github.com" || strings.HasSuffix(host, ".github.com")) &&
		(strings.Contains(parsed.Path, "/raw/") || strings.Contains(parsed.Path, "/blob/")) {
		return true
	}
	return false
}
