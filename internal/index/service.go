package index

import (
	"context"
	"encoding/hex"
	"fmt"
	"maps"

	"github.com/goliatone/go-posts/internal/identity"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/pkg/interfaces"
	"github.com/google/uuid"
)

// Service reconciles the on-disk corpus into the post index. Sync results
// count every written record, posts and revisions alike.
type Service struct {
	posts     PostRepository
	revisions RevisionRepository
	logger    interfaces.Logger
}

// ServiceOption customises Service construction.
type ServiceOption func(*Service)

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the sync service over the supplied repositories.
func NewService(posts PostRepository, revisions RevisionRepository, opts ...ServiceOption) *Service {
	svc := &Service{
		posts:     posts,
		revisions: revisions,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// GetPost returns the indexed post for a slug.
func (s *Service) GetPost(ctx context.Context, slug string) (*Post, error) {
	return s.posts.GetBySlug(ctx, slug)
}

// ListPosts returns every indexed post, newest first.
func (s *Service) ListPosts(ctx context.Context) ([]*Post, error) {
	return s.posts.List(ctx)
}

// ListRevisions returns the revision records behind one post.
func (s *Service) ListRevisions(ctx context.Context, postID uuid.UUID) ([]*Revision, error) {
	return s.revisions.ListByPost(ctx, postID)
}

// Sync reconciles revision groups from the corpus into the index. Records are
// created when missing, updated when their checksum or canonical marker
// drifted, and skipped when unchanged. With DeleteOrphaned, indexed records
// whose source files disappeared are removed. DryRun reports the same counts
// without touching storage.
func (s *Service) Sync(ctx context.Context, groups []*interfaces.RevisionGroup, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	result := &interfaces.SyncResult{}

	liveSlugs := map[string]struct{}{}
	livePaths := map[string]struct{}{}

	for _, group := range groups {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if group == nil || group.Canonical == nil {
			result.Errors = append(result.Errors, ErrNilGroup)
			continue
		}

		liveSlugs[group.Slug] = struct{}{}
		for _, revision := range group.Revisions {
			livePaths[revision.FilePath] = struct{}{}
		}

		postID, err := s.syncPost(ctx, group, opts, result)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("sync post %s: %w", group.Slug, err))
			continue
		}

		for _, revision := range group.Revisions {
			canonical := revision.FilePath == group.Canonical.FilePath
			if err := s.syncRevision(ctx, postID, revision, canonical, opts, result); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("sync revision %s: %w", revision.FilePath, err))
			}
		}
	}

	if opts.DeleteOrphaned {
		if err := s.deleteOrphans(ctx, liveSlugs, livePaths, opts, result); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}

	s.logger.Info("index.sync.completed",
		"created", result.Created,
		"updated", result.Updated,
		"deleted", result.Deleted,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
		"dry_run", opts.DryRun,
	)

	return result, nil
}

func (s *Service) syncPost(ctx context.Context, group *interfaces.RevisionGroup, opts interfaces.SyncOptions, result *interfaces.SyncResult) (uuid.UUID, error) {
	record := buildPostRecord(group)

	existing, err := s.posts.GetBySlug(ctx, group.Slug)
	if err != nil {
		if !IsNotFound(err) {
			return uuid.Nil, err
		}
		result.Created++
		if opts.DryRun {
			return record.ID, nil
		}
		created, err := s.posts.Create(ctx, record)
		if err != nil {
			return uuid.Nil, err
		}
		return created.ID, nil
	}

	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	if !postChanged(existing, record) {
		result.Skipped++
		return existing.ID, nil
	}

	result.Updated++
	if opts.DryRun {
		return existing.ID, nil
	}
	if _, err := s.posts.Update(ctx, record); err != nil {
		return uuid.Nil, err
	}
	return existing.ID, nil
}

func (s *Service) syncRevision(ctx context.Context, postID uuid.UUID, post *interfaces.Post, canonical bool, opts interfaces.SyncOptions, result *interfaces.SyncResult) error {
	record := buildRevisionRecord(postID, post, canonical)

	existing, err := s.revisions.GetByPath(ctx, post.FilePath)
	if err != nil {
		if !IsNotFound(err) {
			return err
		}
		result.Created++
		if opts.DryRun {
			return nil
		}
		_, err := s.revisions.Create(ctx, record)
		return err
	}

	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	if existing.Checksum == record.Checksum && existing.Canonical == record.Canonical && existing.PostID == record.PostID {
		result.Skipped++
		return nil
	}

	result.Updated++
	if opts.DryRun {
		return nil
	}
	_, err = s.revisions.Update(ctx, record)
	return err
}

func (s *Service) deleteOrphans(ctx context.Context, liveSlugs, livePaths map[string]struct{}, opts interfaces.SyncOptions, result *interfaces.SyncResult) error {
	revisions, err := s.revisions.List(ctx)
	if err != nil {
		return fmt.Errorf("list revisions for orphan cleanup: %w", err)
	}
	for _, revision := range revisions {
		if _, live := livePaths[revision.FilePath]; live {
			continue
		}
		result.Deleted++
		if opts.DryRun {
			continue
		}
		if err := s.revisions.Delete(ctx, revision.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("delete revision %s: %w", revision.FilePath, err))
		}
	}

	posts, err := s.posts.List(ctx)
	if err != nil {
		return fmt.Errorf("list posts for orphan cleanup: %w", err)
	}
	for _, post := range posts {
		if _, live := liveSlugs[post.Slug]; live {
			continue
		}
		result.Deleted++
		if opts.DryRun {
			continue
		}
		if err := s.posts.Delete(ctx, post.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("delete post %s: %w", post.Slug, err))
		}
	}
	return nil
}

func buildPostRecord(group *interfaces.RevisionGroup) *Post {
	canonical := group.Canonical
	return &Post{
		ID:          identity.PostUUID(group.Slug),
		Slug:        group.Slug,
		Title:       canonical.FrontMatter.Title,
		Layout:      canonical.FrontMatter.Layout,
		Date:        canonical.Date,
		Published:   canonical.FrontMatter.IsPublished(),
		Excerpt:     string(canonical.Excerpt),
		FilePath:    canonical.FilePath,
		Checksum:    hex.EncodeToString(canonical.Checksum),
		FrontMatter: maps.Clone(canonical.FrontMatter.Raw),
	}
}

func buildRevisionRecord(postID uuid.UUID, post *interfaces.Post, canonical bool) *Revision {
	return &Revision{
		ID:           identity.RevisionUUID(postID, post.FilePath),
		PostID:       postID,
		FilePath:     post.FilePath,
		Title:        post.FrontMatter.Title,
		Date:         post.Date,
		Canonical:    canonical,
		Checksum:     hex.EncodeToString(post.Checksum),
		LastModified: post.LastModified,
	}
}

func postChanged(existing, next *Post) bool {
	if existing.Checksum != next.Checksum {
		return true
	}
	if existing.FilePath != next.FilePath {
		return true
	}
	if existing.Title != next.Title || existing.Layout != next.Layout {
		return true
	}
	if existing.Published != next.Published {
		return true
	}
	return false
}
