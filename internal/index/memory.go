package index

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryPostRepository is an in-memory PostRepository for scaffolding and tests.
type MemoryPostRepository struct {
	mu        sync.RWMutex
	posts     map[uuid.UUID]*Post
	slugIndex map[string]uuid.UUID
}

// NewMemoryPostRepository creates an empty in-memory post repository.
func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{
		posts:     make(map[uuid.UUID]*Post),
		slugIndex: make(map[string]uuid.UUID),
	}
}

func (m *MemoryPostRepository) Create(_ context.Context, record *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePost(record)
	m.posts[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return clonePost(copied), nil
}

func (m *MemoryPostRepository) GetByID(_ context.Context, id uuid.UUID) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.posts[id]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: id.String()}
	}
	return clonePost(rec), nil
}

func (m *MemoryPostRepository) GetBySlug(_ context.Context, slug string) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: slug}
	}
	return clonePost(m.posts[id]), nil
}

func (m *MemoryPostRepository) List(_ context.Context) ([]*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Post, 0, len(m.posts))
	for _, rec := range m.posts {
		records = append(records, clonePost(rec))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	return records, nil
}

func (m *MemoryPostRepository) Update(_ context.Context, record *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.posts[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: record.ID.String()}
	}
	delete(m.slugIndex, existing.Slug)

	copied := clonePost(record)
	m.posts[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return clonePost(copied), nil
}

func (m *MemoryPostRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.posts[id]
	if !ok {
		return &NotFoundError{Resource: "post", Key: id.String()}
	}
	delete(m.slugIndex, existing.Slug)
	delete(m.posts, id)
	return nil
}

// MemoryRevisionRepository is an in-memory RevisionRepository for tests.
type MemoryRevisionRepository struct {
	mu        sync.RWMutex
	revisions map[uuid.UUID]*Revision
	pathIndex map[string]uuid.UUID
}

// NewMemoryRevisionRepository creates an empty in-memory revision repository.
func NewMemoryRevisionRepository() *MemoryRevisionRepository {
	return &MemoryRevisionRepository{
		revisions: make(map[uuid.UUID]*Revision),
		pathIndex: make(map[string]uuid.UUID),
	}
}

func (m *MemoryRevisionRepository) Create(_ context.Context, record *Revision) (*Revision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneRevision(record)
	m.revisions[copied.ID] = copied
	m.pathIndex[copied.FilePath] = copied.ID
	return cloneRevision(copied), nil
}

func (m *MemoryRevisionRepository) GetByPath(_ context.Context, filePath string) (*Revision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.pathIndex[filePath]
	if !ok {
		return nil, &NotFoundError{Resource: "revision", Key: filePath}
	}
	return cloneRevision(m.revisions[id]), nil
}

func (m *MemoryRevisionRepository) ListByPost(_ context.Context, postID uuid.UUID) ([]*Revision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := []*Revision{}
	for _, rec := range m.revisions {
		if rec.PostID == postID {
			records = append(records, cloneRevision(rec))
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

func (m *MemoryRevisionRepository) List(_ context.Context) ([]*Revision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Revision, 0, len(m.revisions))
	for _, rec := range m.revisions {
		records = append(records, cloneRevision(rec))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].FilePath < records[j].FilePath
	})
	return records, nil
}

func (m *MemoryRevisionRepository) Update(_ context.Context, record *Revision) (*Revision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.revisions[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "revision", Key: record.ID.String()}
	}
	delete(m.pathIndex, existing.FilePath)

	copied := cloneRevision(record)
	m.revisions[copied.ID] = copied
	m.pathIndex[copied.FilePath] = copied.ID
	return cloneRevision(copied), nil
}

func (m *MemoryRevisionRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.revisions[id]
	if !ok {
		return &NotFoundError{Resource: "revision", Key: id.String()}
	}
	delete(m.pathIndex, existing.FilePath)
	delete(m.revisions, id)
	return nil
}

func clonePost(record *Post) *Post {
	if record == nil {
		return nil
	}
	copied := *record
	copied.FrontMatter = maps.Clone(record.FrontMatter)
	copied.Revisions = nil
	return &copied
}

func cloneRevision(record *Revision) *Revision {
	if record == nil {
		return nil
	}
	copied := *record
	return &copied
}
