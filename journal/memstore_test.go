package journal

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/models"
)

// memStore implements PostStore, TagStore and CategoryStore in memory.
type memStore struct {
	mu         sync.Mutex
	posts      map[uuid.UUID]models.Post
	tags       map[uuid.UUID]models.Tag
	categories map[uuid.UUID]models.Category
	postTags   map[uuid.UUID][]uuid.UUID

	failReplaceTags error
	failSave        error
	createTagCalls  int
	// raceTag is inserted by the first CreateTag call before it fails with a
	// duplicate, simulating a concurrent writer.
	raceTag *models.Tag
}

func newMemStore() *memStore {
	return &memStore{
		posts:      map[uuid.UUID]models.Post{},
		tags:       map[uuid.UUID]models.Tag{},
		categories: map[uuid.UUID]models.Category{},
		postTags:   map[uuid.UUID][]uuid.UUID{},
	}
}

func (m *memStore) withRelations(p models.Post) models.Post {
	p.Tags = nil
	for _, id := range m.postTags[p.ID] {
		p.Tags = append(p.Tags, m.tags[id])
	}
	if p.CategoryID != nil {
		if c, ok := m.categories[*p.CategoryID]; ok {
			p.Category = &c
		}
	}
	return p
}

func (m *memStore) CreatePost(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.posts {
		if p.Slug == post.Slug {
			return errs.NewAlreadyExists("post")
		}
	}
	post.ID = uuid.New()
	m.posts[post.ID] = *post
	return nil
}

func (m *memStore) SavePost(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave != nil {
		return m.failSave
	}
	m.posts[post.ID] = *post
	return nil
}

func (m *memStore) DeletePost(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.posts, id)
	delete(m.postTags, id)
	return nil
}

func (m *memStore) FindPostByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, errs.NewNotFound("post")
	}
	p = m.withRelations(p)
	return &p, nil
}

func (m *memStore) FindPublishedPostBySlug(_ context.Context, slug string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.posts {
		if p.Slug == slug && p.Status == models.PostStatusPublished {
			p = m.withRelations(p)
			return &p, nil
		}
	}
	return nil, errs.NewNotFound("post")
}

func (m *memStore) published(keep func(models.Post) bool) []models.Post {
	var out []models.Post
	for _, p := range m.posts {
		if p.Status == models.PostStatusPublished && keep(p) {
			out = append(out, m.withRelations(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(*out[j].PublishedAt) })
	return out
}

func (m *memStore) ListPublishedPosts(_ context.Context, limit int) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.published(func(models.Post) bool { return true })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) ListPublishedPostsByCategorySlug(_ context.Context, slug string) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.published(func(p models.Post) bool {
		if p.CategoryID == nil {
			return false
		}
		c, ok := m.categories[*p.CategoryID]
		return ok && c.Slug == slug
	}), nil
}

func (m *memStore) ListRelatedPosts(_ context.Context, postID, categoryID uuid.UUID, limit int) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.published(func(p models.Post) bool {
		return p.ID != postID && p.CategoryID != nil && *p.CategoryID == categoryID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) ListPostsByAuthor(_ context.Context, authorID string) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Post
	for _, p := range m.posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) ListAllPosts(_ context.Context) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Post, 0, len(m.posts))
	for _, p := range m.posts {
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) IncrementViews(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return errs.NewNotFound("post")
	}
	p.Views++
	m.posts[id] = p
	return nil
}

func (m *memStore) ReplacePostTags(_ context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReplaceTags != nil {
		return m.failReplaceTags
	}
	m.postTags[postID] = append([]uuid.UUID(nil), tagIDs...)
	return nil
}

func (m *memStore) ClearDraftPublishedAt(_ context.Context) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var fixed []models.Post
	for id, p := range m.posts {
		if p.Status == models.PostStatusDraft && p.PublishedAt != nil {
			fixed = append(fixed, p)
			p.PublishedAt = nil
			m.posts[id] = p
		}
	}
	return fixed, nil
}

func (m *memStore) FindTagBySlug(_ context.Context, slug string) (*models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tags {
		if t.Slug == slug {
			return &t, nil
		}
	}
	return nil, errs.NewNotFound("tag")
}

func (m *memStore) CreateTag(_ context.Context, tag *models.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createTagCalls++
	if m.raceTag != nil {
		m.tags[m.raceTag.ID] = *m.raceTag
		m.raceTag = nil
		return errs.NewAlreadyExists("tag")
	}
	for _, t := range m.tags {
		if t.Slug == tag.Slug {
			return errs.NewAlreadyExists("tag")
		}
	}
	tag.ID = uuid.New()
	m.tags[tag.ID] = *tag
	return nil
}

func (m *memStore) ListTags(_ context.Context) ([]models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Tag, 0, len(m.tags))
	for _, t := range m.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) ListCategories(_ context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) FindCategoryByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, errs.NewNotFound("category")
	}
	return &c, nil
}

func (m *memStore) FindCategoryBySlug(_ context.Context, slug string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, errs.NewNotFound("category")
}

func (m *memStore) CreateCategory(_ context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.Slug == category.Slug {
			return errs.NewAlreadyExists("category")
		}
	}
	category.ID = uuid.New()
	m.categories[category.ID] = *category
	return nil
}

func (m *memStore) SaveCategory(_ context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = *category
	return nil
}

func (m *memStore) DeleteCategory(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return errors.New("category not found")
	}
	delete(m.categories, id)
	for pid, p := range m.posts {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
			m.posts[pid] = p
		}
	}
	return nil
}
