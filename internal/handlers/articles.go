// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"seowriter/internal/markdown"
	"seowriter/internal/models"
	"seowriter/internal/slug"
)

// duplicateSuffix is appended to the title of a copied article.
const duplicateSuffix = " (עותק)"

// ListArticles returns articles, newest first, optionally filtered by
// status, categoryId, topicId and a title search.
func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.ArticleFilter{
		Status: models.ArticleStatus(q.Get("status")),
		Search: strings.TrimSpace(q.Get("search")),
	}
	if f.Status != "" && !f.Status.Valid() {
		writeError(w, http.StatusBadRequest, msgInvalidStatus)
		return
	}
	var ok bool
	if f.CategoryID, ok = queryID(w, q.Get("categoryId")); !ok {
		return
	}
	if f.TopicID, ok = queryID(w, q.Get("topicId")); !ok {
		return
	}

	articles, err := a.articles.List(f)
	if err != nil {
		slog.Error("list articles failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}
	writeJSON(w, http.StatusOK, articles)
}

// GetArticle returns one article with its category, topic and latest
// generation log.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	article, err := a.articles.FindByID(id)
	if err != nil {
		slog.Error("get article failed", "error", err, "article_id", id)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if article == nil {
		writeError(w, http.StatusNotFound, msgArticleNotFound)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// ListArticleLogs returns every generation log of an article, newest first.
func (a *API) ListArticleLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	article, err := a.articles.FindByID(id)
	if err != nil {
		slog.Error("load article for logs failed", "error", err, "article_id", id)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if article == nil {
		writeError(w, http.StatusNotFound, msgArticleNotFound)
		return
	}

	logs, err := a.logs.ListForArticle(id)
	if err != nil {
		slog.Error("list generation logs failed", "error", err, "article_id", id)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if logs == nil {
		logs = []models.GenerationLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

// updateArticleRequest carries a partial article update. Absent fields
// keep their stored value.
type updateArticleRequest struct {
	Title              *string               `json:"title"`
	HTMLContent        *string               `json:"htmlContent"`
	Markdown           *string               `json:"markdown"`
	Status             *models.ArticleStatus `json:"status"`
	CategoryID         nullableID            `json:"categoryId"`
	TopicID            nullableID            `json:"topicId"`
	Keywords           *[]string             `json:"keywords"`
	Sources            *[]string             `json:"sources"`
	MetaDescription    *string               `json:"metaDescription"`
	CustomInstructions *string               `json:"customInstructions"`
	WritingTopic       *string               `json:"writingTopic"`
	WordRangeMin       *int                  `json:"wordRangeMin"`
	WordRangeMax       *int                  `json:"wordRangeMax"`
}

// UpdateArticle applies a partial update. A new body (HTML or Markdown)
// replaces both content variants; a generated article whose body is edited
// without an explicit status becomes edited.
func (a *API) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	article, err := a.articles.FindByID(id)
	if err != nil {
		slog.Error("load article for update failed", "error", err, "article_id", id)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if article == nil {
		writeError(w, http.StatusNotFound, msgArticleNotFound)
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			writeError(w, http.StatusBadRequest, msgTitleRequired)
			return
		}
		if tooLong(title, maxTitleLen) {
			writeError(w, http.StatusBadRequest, msgFieldTooLong)
			return
		}
		article.Title = title
	}

	body := req.HTMLContent
	if body == nil && req.Markdown != nil {
		rendered, err := markdown.ToHTML(*req.Markdown)
		if err != nil {
			slog.Warn("markdown conversion failed", "error", err, "article_id", id)
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		rendered = strings.TrimSpace(rendered)
		body = &rendered
	}
	if body != nil {
		article.Content = *body
		article.HTMLContent = *body
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			writeError(w, http.StatusBadRequest, msgInvalidStatus)
			return
		}
		article.Status = *req.Status
	} else if body != nil && article.Status == models.ArticleStatusGenerated {
		article.Status = models.ArticleStatusEdited
	}

	if req.CategoryID.Set {
		article.CategoryID = req.CategoryID.ID
	}
	if req.TopicID.Set {
		article.TopicID = req.TopicID.ID
	}
	if req.Keywords != nil {
		if !validList(*req.Keywords) {
			writeError(w, http.StatusBadRequest, msgFieldTooLong)
			return
		}
		article.Keywords = cleanList(*req.Keywords)
	}
	if req.Sources != nil {
		if !validList(*req.Sources) {
			writeError(w, http.StatusBadRequest, msgFieldTooLong)
			return
		}
		article.Sources = cleanList(*req.Sources)
	}
	if req.MetaDescription != nil {
		if tooLong(*req.MetaDescription, maxMetaDescLen) {
			writeError(w, http.StatusBadRequest, msgFieldTooLong)
			return
		}
		article.MetaDescription = optionalText(*req.MetaDescription)
	}
	if req.CustomInstructions != nil {
		if tooLong(*req.CustomInstructions, maxInstructionsLen) {
			writeError(w, http.StatusBadRequest, msgFieldTooLong)
			return
		}
		article.CustomInstructions = optionalText(*req.CustomInstructions)
	}
	if req.WritingTopic != nil {
		article.WritingTopic = strings.TrimSpace(*req.WritingTopic)
	}
	if req.WordRangeMin != nil {
		article.WordRangeMin = *req.WordRangeMin
	}
	if req.WordRangeMax != nil {
		article.WordRangeMax = *req.WordRangeMax
	}
	if !validWordRange(article.WordRangeMin, article.WordRangeMax) {
		writeError(w, http.StatusBadRequest, msgInvalidWordRange)
		return
	}

	if err := a.articles.Update(article); err != nil {
		writeStoreError(w, err, "update article failed", "article_id", id)
		return
	}
	a.invalidateStats(r.Context())

	updated, err := a.articles.FindByID(id)
	if err != nil || updated == nil {
		// The write succeeded; answer with what we wrote.
		writeJSON(w, http.StatusOK, article)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteArticle removes an article and its generation logs.
func (a *API) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.articles.Delete(id); err != nil {
		slog.Error("delete article failed", "error", err, "article_id", id)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	a.invalidateStats(r.Context())
	slog.Info("article deleted", "article_id", id)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type duplicateRequest struct {
	ID string `json:"id"`
}

// DuplicateArticle copies an article as a new draft with a fresh slug.
// Remote post identifiers are not copied.
func (a *API) DuplicateArticle(w http.ResponseWriter, r *http.Request) {
	var req duplicateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id, err := uuid.Parse(strings.TrimSpace(req.ID))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	src, err := a.articles.FindByID(id)
	if err != nil {
		slog.Error("load article for duplicate failed", "error", err, "article_id", id)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if src == nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	title := src.Title + duplicateSuffix
	dup := &models.Article{
		Title:              title,
		Slug:               slug.WithSuffix(title, a.now()),
		Content:            src.Content,
		HTMLContent:        src.HTMLContent,
		Status:             models.ArticleStatusDraft,
		WordRangeMin:       src.WordRangeMin,
		WordRangeMax:       src.WordRangeMax,
		WritingTopic:       src.WritingTopic,
		Keywords:           src.Keywords.Clone(),
		Sources:            src.Sources.Clone(),
		CustomInstructions: src.CustomInstructions,
		MetaDescription:    src.MetaDescription,
		CategoryID:         src.CategoryID,
		TopicID:            src.TopicID,
	}

	created, err := a.articles.Create(dup)
	if err != nil {
		writeStoreError(w, err, "duplicate article failed", "article_id", id)
		return
	}
	a.invalidateStats(r.Context())
	slog.Info("article duplicated", "source_id", id, "article_id", created.ID)
	writeJSON(w, http.StatusCreated, created)
}

// queryID parses an optional id query parameter.
func queryID(w http.ResponseWriter, raw string) (*uuid.UUID, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return nil, false
	}
	return &id, true
}
