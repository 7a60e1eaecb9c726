package posts

import (
	"slices"
	"strings"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

// GroupRevisions buckets posts by slug so duplicated draft revisions of the
// same article collapse into a single group. Within a group the canonical
// revision is the one with the most recent date; ties fall back to the
// latest modification time, then the lexically greatest path so repeated
// runs stay deterministic.
func GroupRevisions(all []*interfaces.Post) []*interfaces.RevisionGroup {
	buckets := map[string][]*interfaces.Post{}
	order := []string{}

	for _, post := range all {
		if post == nil {
			continue
		}
		key := strings.TrimSpace(post.Slug)
		if key == "" {
			key = post.FilePath
		}
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], post)
	}

	slices.Sort(order)

	groups := make([]*interfaces.RevisionGroup, 0, len(order))
	for _, key := range order {
		revisions := sortRevisions(buckets[key])
		groups = append(groups, &interfaces.RevisionGroup{
			Slug:      key,
			Canonical: revisions[len(revisions)-1],
			Revisions: revisions,
		})
	}
	return groups
}

// TitleConflicts reports the distinct, non-empty titles found across a
// revision group. More than one entry means the drafts disagree.
func TitleConflicts(group *interfaces.RevisionGroup) []string {
	if group == nil {
		return nil
	}
	seen := map[string]struct{}{}
	titles := []string{}
	for _, post := range group.Revisions {
		title := strings.TrimSpace(post.FrontMatter.Title)
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	}
	return titles
}

// sortRevisions orders a revision set oldest to newest so the canonical
// entry is always the last element.
func sortRevisions(revisions []*interfaces.Post) []*interfaces.Post {
	slices.SortFunc(revisions, func(a, b *interfaces.Post) int {
		if a == nil || b == nil {
			return 0
		}
		if !a.Date.Equal(b.Date) {
			if a.Date.Before(b.Date) {
				return -1
			}
			return 1
		}
		if !a.LastModified.Equal(b.LastModified) {
			if a.LastModified.Before(b.LastModified) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.FilePath, b.FilePath)
	})
	return revisions
}
