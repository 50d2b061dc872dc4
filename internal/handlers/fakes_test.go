// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"seowriter/internal/generation"
	"seowriter/internal/models"
	"seowriter/internal/store"
	"seowriter/internal/wordpress"
)

// --- in-memory stores ---

type fakeArticleStore struct {
	rows map[uuid.UUID]*models.Article
	seq  int
	err  error
}

func newFakeArticleStore() *fakeArticleStore {
	return &fakeArticleStore{rows: map[uuid.UUID]*models.Article{}}
}

func (s *fakeArticleStore) add(a models.Article) *models.Article {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Slug == "" {
		a.Slug = "slug-" + a.ID.String()[:8]
	}
	s.seq++
	a.CreatedAt = time.Date(2026, 1, 1, 0, 0, s.seq, 0, time.UTC)
	s.rows[a.ID] = &a
	cp := a
	return &cp
}

func (s *fakeArticleStore) sorted() []models.Article {
	out := make([]models.Article, 0, len(s.rows))
	for _, a := range s.rows {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *fakeArticleStore) List(f models.ArticleFilter) ([]models.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Article
	for _, a := range s.sorted() {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.CategoryID != nil && (a.CategoryID == nil || *a.CategoryID != *f.CategoryID) {
			continue
		}
		if f.Search != "" && !strings.Contains(a.Title, f.Search) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *fakeArticleStore) Recent(limit int) ([]models.Article, error) {
	all := s.sorted()
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *fakeArticleStore) FindByID(id uuid.UUID) (*models.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (s *fakeArticleStore) Create(a *models.Article) (*models.Article, error) {
	for _, existing := range s.rows {
		if existing.Slug == a.Slug {
			return nil, fmt.Errorf("create article: %w", store.ErrDuplicateSlug)
		}
	}
	return s.add(*a), nil
}

func (s *fakeArticleStore) Update(a *models.Article) error {
	if _, ok := s.rows[a.ID]; !ok {
		return nil
	}
	cp := *a
	s.rows[a.ID] = &cp
	return nil
}

func (s *fakeArticleStore) Delete(id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

func (s *fakeArticleStore) Count() (int, error) { return len(s.rows), nil }

func (s *fakeArticleStore) CountByStatus() (map[models.ArticleStatus]int, error) {
	out := map[models.ArticleStatus]int{}
	for _, a := range s.rows {
		out[a.Status]++
	}
	return out, nil
}

type fakeCategoryStore struct {
	rows map[uuid.UUID]*models.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{rows: map[uuid.UUID]*models.Category{}}
}

func (s *fakeCategoryStore) List() ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range s.rows {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeCategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	c, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCategoryStore) Create(c *models.Category) (*models.Category, error) {
	for _, existing := range s.rows {
		if existing.Slug == c.Slug {
			return nil, fmt.Errorf("create category: %w", store.ErrDuplicateSlug)
		}
	}
	cp := *c
	cp.ID = uuid.New()
	if cp.Color == "" {
		cp.Color = models.DefaultCategoryColor
	}
	cp.Topics = []models.Topic{}
	s.rows[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *fakeCategoryStore) Update(c *models.Category) error {
	cp := *c
	s.rows[c.ID] = &cp
	return nil
}

func (s *fakeCategoryStore) Delete(id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

type fakeTopicStore struct {
	rows       map[uuid.UUID]*models.Topic
	categories *fakeCategoryStore
}

func (s *fakeTopicStore) List(categoryID *uuid.UUID) ([]models.Topic, error) {
	out := []models.Topic{}
	for _, t := range s.rows {
		if categoryID != nil && t.CategoryID != *categoryID {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *fakeTopicStore) FindByID(id uuid.UUID) (*models.Topic, error) {
	t, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTopicStore) Create(t *models.Topic) (*models.Topic, error) {
	if _, ok := s.categories.rows[t.CategoryID]; !ok {
		return nil, fmt.Errorf("create topic: %w", store.ErrInvalidReference)
	}
	for _, existing := range s.rows {
		if existing.Slug == t.Slug {
			return nil, fmt.Errorf("create topic: %w", store.ErrDuplicateSlug)
		}
	}
	cp := *t
	cp.ID = uuid.New()
	s.rows[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *fakeTopicStore) Update(t *models.Topic) error {
	cp := *t
	s.rows[t.ID] = &cp
	return nil
}

func (s *fakeTopicStore) Delete(id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

type fakeSettingStore struct {
	values models.Settings
	err    error
}

func (s *fakeSettingStore) All() (models.Settings, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := models.Settings{}
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}

func (s *fakeSettingStore) SetMany(values map[string]string) error {
	if s.err != nil {
		return s.err
	}
	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

type fakeLogStore struct {
	rows map[uuid.UUID][]models.GenerationLog
	err  error
}

func (s *fakeLogStore) ListForArticle(articleID uuid.UUID) ([]models.GenerationLog, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows[articleID], nil
}

// --- workflow fakes ---

type fakeGenerator struct {
	inputs    []generation.Input
	overrides []generation.Overrides
	article   *models.Article
	sources   []generation.Source
	err       error
}

func (g *fakeGenerator) Create(_ context.Context, in generation.Input) (*models.Article, error) {
	g.inputs = append(g.inputs, in)
	if g.err != nil {
		return nil, g.err
	}
	return g.article, nil
}

func (g *fakeGenerator) Regenerate(_ context.Context, id uuid.UUID, o generation.Overrides) (*models.Article, error) {
	g.overrides = append(g.overrides, o)
	if g.err != nil {
		return nil, g.err
	}
	return g.article, nil
}

func (g *fakeGenerator) SuggestSources(_ context.Context, topic string, _ []string) ([]generation.Source, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.sources, nil
}

type fakePublisher struct {
	result *wordpress.Result
	err    error
	calls  int
}

func (p *fakePublisher) Publish(_ context.Context, _ uuid.UUID) (*wordpress.Result, error) {
	p.calls++
	return p.result, p.err
}

type fakeSite struct {
	configured bool
	url        string
	pingErr    error
}

func (s *fakeSite) Configured() bool              { return s.configured }
func (s *fakeSite) BaseURL() string               { return s.url }
func (s *fakeSite) Ping(_ context.Context) error { return s.pingErr }

type fakeProviders struct {
	active    string
	available []string
}

func (p *fakeProviders) SetActive(name string) error {
	for _, n := range p.available {
		if n == name {
			p.active = name
			return nil
		}
	}
	return errors.New("not available")
}
func (p *fakeProviders) ActiveName() string  { return p.active }
func (p *fakeProviders) Available() []string { return p.available }

// --- test harness ---

type testEnv struct {
	API        *API
	Articles   *fakeArticleStore
	Categories *fakeCategoryStore
	Topics     *fakeTopicStore
	Logs       *fakeLogStore
	Settings   *fakeSettingStore
	Generator  *fakeGenerator
	Publisher  *fakePublisher
	Site       *fakeSite
	Providers  *fakeProviders
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cats := newFakeCategoryStore()
	env := &testEnv{
		Articles:   newFakeArticleStore(),
		Categories: cats,
		Topics:     &fakeTopicStore{rows: map[uuid.UUID]*models.Topic{}, categories: cats},
		Logs:       &fakeLogStore{rows: map[uuid.UUID][]models.GenerationLog{}},
		Settings:   &fakeSettingStore{values: models.Settings{}},
		Generator:  &fakeGenerator{},
		Publisher:  &fakePublisher{},
		Site:       &fakeSite{},
		Providers:  &fakeProviders{active: "openai", available: []string{"mistral", "openai"}},
	}
	env.API = New(Deps{
		Articles:   env.Articles,
		Categories: env.Categories,
		Topics:     env.Topics,
		Logs:       env.Logs,
		Settings:   env.Settings,
		Generator:  env.Generator,
		Publisher:  env.Publisher,
		WordPress:  env.Site,
		Providers:  env.Providers,
	})
	env.API.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return env
}

// do routes one request through a chi router so URL params resolve.
func do(t *testing.T, h http.HandlerFunc, method, pattern, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// decodeBody decodes the JSON response into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// errorMessage returns the "error" field of a JSON error response.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decodeBody(t, rec, &body)
	return body["error"]
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	if got := errorMessage(t, rec); got != msg {
		t.Errorf("error = %q, want %q", got, msg)
	}
}
