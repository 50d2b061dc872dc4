// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API consumed by the article studio
// front end. Every error answer has the shape {"error": "<Hebrew message>"}.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"seowriter/internal/cache"
	"seowriter/internal/generation"
	"seowriter/internal/models"
	"seowriter/internal/store"
	"seowriter/internal/wordpress"
)

// ArticleStore is the persistence the article endpoints need.
type ArticleStore interface {
	List(f models.ArticleFilter) ([]models.Article, error)
	Recent(limit int) ([]models.Article, error)
	FindByID(id uuid.UUID) (*models.Article, error)
	Create(a *models.Article) (*models.Article, error)
	Update(a *models.Article) error
	Delete(id uuid.UUID) error
	Count() (int, error)
	CountByStatus() (map[models.ArticleStatus]int, error)
}

// CategoryStore is the persistence the category endpoints need.
type CategoryStore interface {
	List() ([]models.Category, error)
	FindByID(id uuid.UUID) (*models.Category, error)
	Create(c *models.Category) (*models.Category, error)
	Update(c *models.Category) error
	Delete(id uuid.UUID) error
}

// TopicStore is the persistence the topic endpoints need.
type TopicStore interface {
	List(categoryID *uuid.UUID) ([]models.Topic, error)
	FindByID(id uuid.UUID) (*models.Topic, error)
	Create(t *models.Topic) (*models.Topic, error)
	Update(t *models.Topic) error
	Delete(id uuid.UUID) error
}

// LogStore reads the generation audit trail.
type LogStore interface {
	ListForArticle(articleID uuid.UUID) ([]models.GenerationLog, error)
}

// SettingStore reads and writes the key/value settings table.
type SettingStore interface {
	All() (models.Settings, error)
	SetMany(settings map[string]string) error
}

// Generator runs the model-backed workflows.
type Generator interface {
	Create(ctx context.Context, in generation.Input) (*models.Article, error)
	Regenerate(ctx context.Context, id uuid.UUID, o generation.Overrides) (*models.Article, error)
	SuggestSources(ctx context.Context, topic string, keywords []string) ([]generation.Source, error)
}

// Publisher pushes an article to WordPress.
type Publisher interface {
	Publish(ctx context.Context, id uuid.UUID) (*wordpress.Result, error)
}

// WordPressSite reports on the configured WordPress connection.
type WordPressSite interface {
	Configured() bool
	BaseURL() string
	Ping(ctx context.Context) error
}

// ProviderSwitcher selects the active language model provider.
type ProviderSwitcher interface {
	SetActive(name string) error
	ActiveName() string
	Available() []string
}

// Deps groups the collaborators of the API. StatsCache may be nil.
type Deps struct {
	Articles   ArticleStore
	Categories CategoryStore
	Topics     TopicStore
	Logs       LogStore
	Settings   SettingStore
	Generator  Generator
	Publisher  Publisher
	WordPress  WordPressSite
	Providers  ProviderSwitcher
	StatsCache *cache.JSONCache
}

// API holds the dependencies shared by all endpoints.
type API struct {
	articles   ArticleStore
	categories CategoryStore
	topics     TopicStore
	logs       LogStore
	settings   SettingStore
	generator  Generator
	publisher  Publisher
	wordpress  WordPressSite
	providers  ProviderSwitcher
	stats      *cache.JSONCache
	now        func() time.Time
}

// New creates the API handler group.
func New(d Deps) *API {
	return &API{
		articles:   d.Articles,
		categories: d.Categories,
		topics:     d.Topics,
		logs:       d.Logs,
		settings:   d.Settings,
		generator:  d.Generator,
		publisher:  d.Publisher,
		wordpress:  d.WordPress,
		providers:  d.Providers,
		stats:      d.StatsCache,
		now:        time.Now,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// maxBodyBytes bounds request bodies; article HTML is the largest payload.
const maxBodyBytes = 2 << 20

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	slog.Warn("invalid request body", "error", err, "path", r.URL.Path)
	writeError(w, http.StatusBadRequest, msgInvalidBody)
	return false
}

// pathID parses the {id} URL parameter, answering 400 when malformed.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// writeStoreError maps store sentinels to client errors and logs the rest.
func writeStoreError(w http.ResponseWriter, err error, msg string, args ...any) {
	switch {
	case errors.Is(err, store.ErrDuplicateSlug):
		writeError(w, http.StatusConflict, msgDuplicateSlug)
	case errors.Is(err, store.ErrInvalidReference):
		writeError(w, http.StatusBadRequest, msgInvalidReference)
	default:
		slog.Error(msg, append([]any{"error", err}, args...)...)
		writeError(w, http.StatusInternalServerError, msgServerError)
	}
}

// invalidateStats drops the cached dashboard numbers after a write.
func (a *API) invalidateStats(ctx context.Context) {
	a.stats.Invalidate(context.WithoutCancel(ctx), statsCacheKey)
}

// nullableID decodes a JSON id that may be a UUID string, "" or null.
// Set records whether the field was present at all.
type nullableID struct {
	ID  *uuid.UUID
	Set bool
}

func (n *nullableID) UnmarshalJSON(b []byte) error {
	n.Set = true
	n.ID = nil
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	n.ID = &id
	return nil
}
