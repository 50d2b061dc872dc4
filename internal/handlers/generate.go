// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"seowriter/internal/generation"
	"seowriter/internal/store"
)

type generateRequest struct {
	Title              string     `json:"title"`
	WritingTopic       string     `json:"writingTopic"`
	WordRangeMin       int        `json:"wordRangeMin"`
	WordRangeMax       int        `json:"wordRangeMax"`
	Keywords           []string   `json:"keywords"`
	Sources            []string   `json:"sources"`
	CustomInstructions string     `json:"customInstructions"`
	MetaDescription    string     `json:"metaDescription"`
	CategoryID         nullableID `json:"categoryId"`
	TopicID            nullableID `json:"topicId"`
}

// validate returns the first client error message, or "".
func (req *generateRequest) validate() string {
	switch {
	case strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.WritingTopic) == "":
		return msgTitleTopicRequired
	case tooLong(req.Title, maxTitleLen), tooLong(req.WritingTopic, maxWritingTopicLen),
		tooLong(req.CustomInstructions, maxInstructionsLen), tooLong(req.MetaDescription, maxMetaDescLen),
		!validList(req.Keywords), !validList(req.Sources):
		return msgFieldTooLong
	case !validWordRange(req.WordRangeMin, req.WordRangeMax):
		return msgInvalidWordRange
	}
	return ""
}

// GenerateArticle writes a new article with the active model and stores it.
func (a *API) GenerateArticle(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	article, err := a.generator.Create(r.Context(), generation.Input{
		Title:              req.Title,
		WritingTopic:       req.WritingTopic,
		WordRangeMin:       req.WordRangeMin,
		WordRangeMax:       req.WordRangeMax,
		Keywords:           req.Keywords,
		Sources:            req.Sources,
		CustomInstructions: req.CustomInstructions,
		MetaDescription:    req.MetaDescription,
		CategoryID:         req.CategoryID.ID,
		TopicID:            req.TopicID.ID,
	})
	if err != nil && article == nil {
		a.writeGenerationError(w, err, msgGenerateFailed)
		return
	}
	if err != nil {
		// Only the audit log failed; the article exists and is returned.
		slog.Warn("article stored without generation log", "error", err, "article_id", article.ID)
	}

	a.invalidateStats(r.Context())
	writeJSON(w, http.StatusCreated, article)
}

type regenerateRequest struct {
	Title              *string   `json:"title"`
	WritingTopic       *string   `json:"writingTopic"`
	WordRangeMin       *int      `json:"wordRangeMin"`
	WordRangeMax       *int      `json:"wordRangeMax"`
	Keywords           *[]string `json:"keywords"`
	Sources            *[]string `json:"sources"`
	CustomInstructions *string   `json:"customInstructions"`
}

// RegenerateArticle replaces the body of an existing article with fresh
// model output. Body fields override the stored parameters.
func (a *API) RegenerateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req regenerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	article, err := a.generator.Regenerate(r.Context(), id, generation.Overrides{
		Title:              req.Title,
		WritingTopic:       req.WritingTopic,
		WordRangeMin:       req.WordRangeMin,
		WordRangeMax:       req.WordRangeMax,
		Keywords:           req.Keywords,
		Sources:            req.Sources,
		CustomInstructions: req.CustomInstructions,
	})
	if errors.Is(err, generation.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgArticleNotFound)
		return
	}
	if err != nil && article == nil {
		a.writeGenerationError(w, err, msgGenerateFailed, "article_id", id)
		return
	}
	if err != nil {
		slog.Warn("article regenerated without generation log", "error", err, "article_id", id)
	}

	a.invalidateStats(r.Context())
	writeJSON(w, http.StatusOK, article)
}

type suggestSourcesRequest struct {
	Topic    string   `json:"topic"`
	Keywords []string `json:"keywords"`
}

// SuggestSources asks the model for reference URLs about a topic.
func (a *API) SuggestSources(w http.ResponseWriter, r *http.Request) {
	var req suggestSourcesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeError(w, http.StatusBadRequest, msgTopicRequired)
		return
	}

	sources, err := a.generator.SuggestSources(r.Context(), req.Topic, req.Keywords)
	if err != nil {
		a.writeGenerationError(w, err, msgSuggestFailed)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]generation.Source{"sources": sources})
}

// writeGenerationError maps workflow errors to responses. Upstream model
// failures answer 500 with the endpoint's own message.
func (a *API) writeGenerationError(w http.ResponseWriter, err error, fallback string, args ...any) {
	switch {
	case errors.Is(err, generation.ErrInvalidWordRange):
		writeError(w, http.StatusBadRequest, msgInvalidWordRange)
	case errors.Is(err, generation.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, msgTitleTopicRequired)
	case errors.Is(err, store.ErrDuplicateSlug), errors.Is(err, store.ErrInvalidReference):
		writeStoreError(w, err, "generation failed", args...)
	default:
		slog.Error("generation failed", append([]any{"error", err}, args...)...)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
