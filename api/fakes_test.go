package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/auth"
	"github.com/rpupo63/ambitious-journal-backend/database"
	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/journal"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/rpupo63/ambitious-journal-backend/services"
	"github.com/stretchr/testify/require"
)

const adminToken = "admin-token"

type fakeAuth struct {
	loggedOut bool
}

func (f *fakeAuth) Authenticate(r *http.Request) (auth.Session, error) {
	if r.Header.Get("Authorization") != "Bearer "+adminToken {
		return auth.Session{}, errs.NewMissingTokenError()
	}
	return auth.Session{UserID: "admin-1", Email: "editor@example.com"}, nil
}

func (f *fakeAuth) Logout(w http.ResponseWriter, r *http.Request) error {
	f.loggedOut = true
	return nil
}

type fakeJournal struct {
	posts      []models.Post
	categories []models.Category
	tags       []models.Tag
	bySlug     map[string]*models.Post
	related    []models.Post
	listErr    error

	mu         sync.Mutex
	views      []uuid.UUID
	authorIDs  []string
	created    []journal.PostInput
	updates    []journal.PostUpdate
	createErr  error
	fixed      []models.Post
	deletedIDs []uuid.UUID
}

func (f *fakeJournal) ListPublished(ctx context.Context, limit int) ([]models.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit > 0 && limit < len(f.posts) {
		return f.posts[:limit], nil
	}
	return f.posts, nil
}

func (f *fakeJournal) GetPublishedPost(ctx context.Context, slug string) (*models.Post, error) {
	if post, ok := f.bySlug[slug]; ok {
		return post, nil
	}
	return nil, errs.NewStorageError("find", "post", errs.NewNotFound("post"))
}

func (f *fakeJournal) RelatedPosts(ctx context.Context, post *models.Post, limit int) ([]models.Post, error) {
	return f.related, nil
}

func (f *fakeJournal) RecordView(ctx context.Context, id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.views = append(f.views, id)
}

func (f *fakeJournal) PostsByCategory(ctx context.Context, slug string) (*models.Category, []models.Post, error) {
	for i := range f.categories {
		if f.categories[i].Slug == slug {
			return &f.categories[i], f.posts, nil
		}
	}
	return nil, nil, errs.NewStorageError("find", "category", errs.NewNotFound("category"))
}

func (f *fakeJournal) ListCategories(ctx context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeJournal) ListTags(ctx context.Context) ([]models.Tag, error) {
	return f.tags, nil
}

func (f *fakeJournal) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	f.authorIDs = append(f.authorIDs, authorID)
	return f.posts, nil
}

func (f *fakeJournal) CreatePost(ctx context.Context, authorID string, in journal.PostInput) (*models.Post, error) {
	f.authorIDs = append(f.authorIDs, authorID)
	f.created = append(f.created, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Post{ID: uuid.New(), Title: in.Title, Slug: journal.GenerateSlug(in.Title), AuthorID: authorID}, nil
}

func (f *fakeJournal) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	for i := range f.posts {
		if f.posts[i].ID == id {
			return &f.posts[i], nil
		}
	}
	return nil, errs.NewStorageError("find", "post", errs.NewNotFound("post"))
}

func (f *fakeJournal) UpdatePost(ctx context.Context, id uuid.UUID, upd journal.PostUpdate) (*models.Post, error) {
	f.updates = append(f.updates, upd)
	return &models.Post{ID: id}, nil
}

func (f *fakeJournal) DeletePost(ctx context.Context, id uuid.UUID) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeJournal) CreateOrGetTag(ctx context.Context, name string) (*models.Tag, error) {
	return &models.Tag{ID: uuid.New(), Name: name, Slug: journal.GenerateSlug(name)}, nil
}

func (f *fakeJournal) CreateCategory(ctx context.Context, in journal.CategoryInput) (*models.Category, error) {
	return &models.Category{ID: uuid.New(), Name: in.Name, Slug: journal.GenerateSlug(in.Name)}, nil
}

func (f *fakeJournal) UpdateCategory(ctx context.Context, id uuid.UUID, upd journal.CategoryUpdate) (*models.Category, error) {
	return &models.Category{ID: id, Name: upd.Name.Value}, nil
}

func (f *fakeJournal) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeJournal) ListAll(ctx context.Context) ([]models.Post, error) {
	return f.posts, nil
}

func (f *fakeJournal) FixDrafts(ctx context.Context) ([]models.Post, error) {
	return f.fixed, nil
}

type fakeContacts struct {
	saved   []models.ContactSubmission
	filters []database.ContactFilter
	err     error
}

func (f *fakeContacts) CreateSubmission(ctx context.Context, submission *models.ContactSubmission) error {
	if f.err != nil {
		return f.err
	}
	submission.ID = uuid.New()
	submission.CreatedAt = time.Now()
	f.saved = append(f.saved, *submission)
	return nil
}

func (f *fakeContacts) ListSubmissions(ctx context.Context, filter database.ContactFilter) ([]models.ContactSubmission, error) {
	f.filters = append(f.filters, filter)
	return f.saved, nil
}

func (f *fakeContacts) UpdateSubmissionStatus(ctx context.Context, id uuid.UUID, status models.SubmissionStatus, now time.Time) (*models.ContactSubmission, error) {
	s := &models.ContactSubmission{ID: id}
	s.ApplyStatus(status, now)
	return s, nil
}

func (f *fakeContacts) SubmissionStats(ctx context.Context) (models.ContactStats, error) {
	return models.ContactStats{Total: 3, New: 1, Brand: 2, Client: 1}, nil
}

type sentEmail struct {
	subject, html, replyTo string
	recipients             []string
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (f *fakeEmail) SendEmail(ctx context.Context, subject, html, replyTo string, recipients []string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, sentEmail{subject, html, replyTo, recipients})
	return "email-1", nil
}

type fakeSMS struct {
	mu   sync.Mutex
	sent []models.ContactSubmission
}

func (f *fakeSMS) NotifyContact(ctx context.Context, submission models.ContactSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, submission)
	return nil
}

type fakeGallery struct {
	images   []models.GalleryImage
	appended []models.GalleryImage
	deleted  []uuid.UUID
	moves    []models.MoveDirection
}

func (f *fakeGallery) ListGalleryImages(ctx context.Context, featuredOnly bool) ([]models.GalleryImage, error) {
	var out []models.GalleryImage
	for _, img := range f.images {
		if !featuredOnly || img.IsFeatured {
			out = append(out, img)
		}
	}
	return out, nil
}

func (f *fakeGallery) FindGalleryImage(ctx context.Context, id uuid.UUID) (*models.GalleryImage, error) {
	for i := range f.images {
		if f.images[i].ID == id {
			return &f.images[i], nil
		}
	}
	return nil, errs.NewNotFound("gallery image")
}

func (f *fakeGallery) AppendGalleryImage(ctx context.Context, image *models.GalleryImage) error {
	image.ID = uuid.New()
	image.DisplayOrder = len(f.images)
	f.images = append(f.images, *image)
	f.appended = append(f.appended, *image)
	return nil
}

func (f *fakeGallery) SetGalleryImageFeatured(ctx context.Context, id uuid.UUID, featured bool) (*models.GalleryImage, error) {
	img, err := f.FindGalleryImage(ctx, id)
	if err != nil {
		return nil, err
	}
	img.IsFeatured = featured
	return img, nil
}

func (f *fakeGallery) DeleteGalleryImage(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeGallery) MoveGalleryImage(ctx context.Context, id uuid.UUID, direction models.MoveDirection) (bool, error) {
	f.moves = append(f.moves, direction)
	return direction == models.MoveDown, nil
}

type fakeObjects struct {
	uploads []string
	deleted []string
}

func (f *fakeObjects) GalleryKey(fileName string) string {
	return "gallery/1-abc.png"
}

func (f *fakeObjects) Upload(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error) {
	f.uploads = append(f.uploads, key)
	return "https://cdn.example.com/gallery-images/" + key, nil
}

func (f *fakeObjects) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeObjects) KeyFromURL(url string) (string, bool) {
	const prefix = "https://cdn.example.com/gallery-images/"
	if len(url) > len(prefix) && url[:len(prefix)] == prefix {
		return url[len(prefix):], true
	}
	return "", false
}

type fakeAssistant struct {
	styles []services.WritingStyle
}

func (f *fakeAssistant) Generate(ctx context.Context, requestedBy, prompt string, temperature float64) (string, error) {
	return requestedBy + ":" + prompt, nil
}

func (f *fakeAssistant) OptimizeSEO(ctx context.Context, requestedBy, title, content string) services.SEOSuggestion {
	return services.SEOSuggestion{Title: title, Description: "desc", Keywords: []string{}}
}

func (f *fakeAssistant) CheckGrammar(ctx context.Context, requestedBy, content string) string {
	return "looks good"
}

func (f *fakeAssistant) GenerateIdeas(ctx context.Context, requestedBy, topic string, count int) []services.PostIdea {
	return []services.PostIdea{{Title: topic}}
}

func (f *fakeAssistant) ImproveParagraph(ctx context.Context, requestedBy, paragraph string, style services.WritingStyle) string {
	f.styles = append(f.styles, style)
	return paragraph + "!"
}

func (f *fakeAssistant) SuggestTags(ctx context.Context, requestedBy, title, content string, maxTags int) []string {
	return []string{"style"}
}

type fakeAILogs struct {
	entries  []models.AILog
	err      error
	features []string
	limits   []int
}

func (f *fakeAILogs) ListAILogs(ctx context.Context, feature string, limit int) ([]models.AILog, error) {
	f.features = append(f.features, feature)
	f.limits = append(f.limits, limit)
	return f.entries, f.err
}

type fakeCounter struct {
	count int64
	err   error
	keys  []string
}

func (f *fakeCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return 0, f.err
	}
	f.count++
	return f.count, nil
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

type testEnv struct {
	journal   *fakeJournal
	contacts  *fakeContacts
	email     *fakeEmail
	sms       *fakeSMS
	gallery   *fakeGallery
	objects   *fakeObjects
	assistant *fakeAssistant
	aiLogs    *fakeAILogs
	auth      *fakeAuth
	deps      Dependencies
}

func newTestEnv() *testEnv {
	env := &testEnv{
		journal:   &fakeJournal{bySlug: map[string]*models.Post{}},
		contacts:  &fakeContacts{},
		email:     &fakeEmail{},
		sms:       &fakeSMS{},
		gallery:   &fakeGallery{},
		objects:   &fakeObjects{},
		assistant: &fakeAssistant{},
		aiLogs:    &fakeAILogs{},
		auth:      &fakeAuth{},
	}
	env.deps = Dependencies{
		Posts:       env.journal,
		Authoring:   env.journal,
		Taxonomy:    env.journal,
		Maintenance: env.journal,
		Gallery:     env.gallery,
		Objects:     env.objects,
		Contacts:    env.contacts,
		Email:       env.email,
		SMS:         env.sms,
		NotifyTo:    []string{"owner@example.com"},
		Assistant:   env.assistant,
		AILogs:      env.aiLogs,
		Auth:        env.auth,
		Database:    fakePinger{},
	}
	return env
}

func (env *testEnv) serve(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	router := newRouter(env.deps, withConfig(map[string]string{}), withStartupTime(time.Now()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func adminRequest(t *testing.T, method, target string, body any) *http.Request {
	req := jsonRequest(t, method, target, body)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func serveHandler(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
