package index

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunPostRepository is the bun-backed PostRepository.
type BunPostRepository struct {
	repo repository.Repository[*Post]
}

func NewBunPostRepository(db *bun.DB) *BunPostRepository {
	return NewBunPostRepositoryWithCache(db, nil, nil)
}

func NewBunPostRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPostRepository {
	base := newPostRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunPostRepository{repo: wrapped}
}

func (r *BunPostRepository) Create(ctx context.Context, record *Post) (*Post, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("post repository create: %w", err)
	}
	return created, nil
}

func (r *BunPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "post", id.String())
	}
	return result, nil
}

func (r *BunPostRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "post", slug)
	}
	return result, nil
}

func (r *BunPostRepository) List(ctx context.Context) ([]*Post, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.date DESC")
		}),
	)
	return records, err
}

func (r *BunPostRepository) Update(ctx context.Context, record *Post) (*Post, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "post", record.Slug)
	}
	return updated, nil
}

func (r *BunPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Post{ID: id}); err != nil {
		return mapRepositoryError(err, "post", id.String())
	}
	return nil
}

// BunRevisionRepository is the bun-backed RevisionRepository.
type BunRevisionRepository struct {
	repo repository.Repository[*Revision]
}

func NewBunRevisionRepository(db *bun.DB) *BunRevisionRepository {
	return NewBunRevisionRepositoryWithCache(db, nil, nil)
}

func NewBunRevisionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRevisionRepository {
	base := newRevisionRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunRevisionRepository{repo: wrapped}
}

func (r *BunRevisionRepository) Create(ctx context.Context, record *Revision) (*Revision, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("revision repository create: %w", err)
	}
	return created, nil
}

func (r *BunRevisionRepository) GetByPath(ctx context.Context, filePath string) (*Revision, error) {
	result, err := r.repo.GetByIdentifier(ctx, filePath)
	if err != nil {
		return nil, mapRepositoryError(err, "revision", filePath)
	}
	return result, nil
}

func (r *BunRevisionRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]*Revision, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.post_id = ?", postID).
				OrderExpr("?TableAlias.date ASC")
		}),
	)
	return records, err
}

func (r *BunRevisionRepository) List(ctx context.Context) ([]*Revision, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunRevisionRepository) Update(ctx context.Context, record *Revision) (*Revision, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "revision", record.FilePath)
	}
	return updated, nil
}

func (r *BunRevisionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Revision{ID: id}); err != nil {
		return mapRepositoryError(err, "revision", id.String())
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
