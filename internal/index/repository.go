package index

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PostRepository persists the canonical view of each article.
type PostRepository interface {
	Create(ctx context.Context, record *Post) (*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
	Update(ctx context.Context, record *Post) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RevisionRepository persists the per-file revision records behind each post.
type RevisionRepository interface {
	Create(ctx context.Context, record *Revision) (*Revision, error)
	GetByPath(ctx context.Context, filePath string) (*Revision, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*Revision, error)
	List(ctx context.Context) ([]*Revision, error)
	Update(ctx context.Context, record *Revision) (*Revision, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func newPostRepository(db *bun.DB) repository.Repository[*Post] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Post]{
		NewRecord: func() *Post { return &Post{} },
		GetID: func(p *Post) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Post, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *Post) string {
			return p.Slug
		},
	})
}

func newRevisionRepository(db *bun.DB) repository.Repository[*Revision] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Revision]{
		NewRecord: func() *Revision { return &Revision{} },
		GetID: func(r *Revision) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Revision, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "file_path"
		},
		GetIdentifierValue: func(r *Revision) string {
			return r.FilePath
		},
	})
}
