// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"seowriter/internal/models"
	"seowriter/internal/slug"
)

// --- Categories ---

// ListCategories returns all categories with their topics and counts.
func (a *API) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := a.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	writeJSON(w, http.StatusOK, cats)
}

// GetCategory returns one category with its topics and their article counts.
func (a *API) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	cat, err := a.categories.FindByID(id)
	if err != nil {
		slog.Error("get category failed", "error", err, "category_id", id)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if cat == nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

type categoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

func (req *categoryRequest) validate() string {
	switch {
	case req.Name != nil && tooLong(*req.Name, maxNameLen),
		req.Description != nil && tooLong(*req.Description, maxDescriptionLen):
		return msgFieldTooLong
	case req.Color != nil && !validColor(strings.TrimSpace(*req.Color)):
		return msgInvalidColor
	}
	return ""
}

// CreateCategory creates a category. The slug derives from the name.
func (a *API) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		writeError(w, http.StatusBadRequest, msgCategoryNameRequired)
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	name := strings.TrimSpace(*req.Name)
	cat := &models.Category{Name: name, Slug: slug.GenerateFor("category", name)}
	if req.Description != nil {
		cat.Description = optionalText(*req.Description)
	}
	if req.Color != nil {
		cat.Color = strings.TrimSpace(*req.Color)
	}

	created, err := a.categories.Create(cat)
	if err != nil {
		writeStoreError(w, err, "create category failed", "name", name)
		return
	}
	a.invalidateStats(r.Context())
	slog.Info("category created", "category_id", created.ID, "slug", created.Slug)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateCategory applies a partial update. Renaming recomputes the slug.
func (a *API) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	cat, err := a.categories.FindByID(id)
	if err != nil {
		slog.Error("load category failed", "error", err, "category_id", id)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if cat == nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, msgCategoryNameRequired)
			return
		}
		cat.Name = name
		cat.Slug = slug.GenerateFor("category", name)
	}
	if req.Description != nil {
		cat.Description = optionalText(*req.Description)
	}
	if req.Color != nil {
		if c := strings.TrimSpace(*req.Color); c != "" {
			cat.Color = c
		}
	}

	if err := a.categories.Update(cat); err != nil {
		writeStoreError(w, err, "update category failed", "category_id", id)
		return
	}
	a.invalidateStats(r.Context())
	writeJSON(w, http.StatusOK, cat)
}

// DeleteCategory removes a category and its topics. Articles are detached.
func (a *API) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.categories.Delete(id); err != nil {
		slog.Error("delete category failed", "error", err, "category_id", id)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	a.invalidateStats(r.Context())
	slog.Info("category deleted", "category_id", id)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// --- Topics ---

// ListTopics returns topics with article counts, optionally only those of
// one category.
func (a *API) ListTopics(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := queryID(w, r.URL.Query().Get("categoryId"))
	if !ok {
		return
	}
	topics, err := a.topics.List(categoryID)
	if err != nil {
		slog.Error("list topics failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if topics == nil {
		topics = []models.Topic{}
	}
	writeJSON(w, http.StatusOK, topics)
}

// GetTopic returns one topic.
func (a *API) GetTopic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := a.topics.FindByID(id)
	if err != nil {
		slog.Error("get topic failed", "error", err, "topic_id", id)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type topicRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CategoryID  string  `json:"categoryId"`
}

// CreateTopic creates a topic under an existing category.
func (a *API) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req topicRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" || strings.TrimSpace(req.CategoryID) == "" {
		writeError(w, http.StatusBadRequest, msgTopicFieldsRequired)
		return
	}
	categoryID, err := uuid.Parse(strings.TrimSpace(req.CategoryID))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	name := strings.TrimSpace(*req.Name)
	if tooLong(name, maxNameLen) || (req.Description != nil && tooLong(*req.Description, maxDescriptionLen)) {
		writeError(w, http.StatusBadRequest, msgFieldTooLong)
		return
	}

	t := &models.Topic{Name: name, Slug: slug.GenerateFor("topic", name), CategoryID: categoryID}
	if req.Description != nil {
		t.Description = optionalText(*req.Description)
	}

	created, err := a.topics.Create(t)
	if err != nil {
		writeStoreError(w, err, "create topic failed", "category_id", categoryID)
		return
	}
	slog.Info("topic created", "topic_id", created.ID, "category_id", categoryID)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateTopic applies a partial update. Renaming recomputes the slug; the
// parent category cannot change.
func (a *API) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req topicRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := a.topics.FindByID(id)
	if err != nil {
		slog.Error("load topic failed", "error", err, "topic_id", id)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, msgNameRequired)
			return
		}
		if tooLong(name, maxNameLen) {
			writeError(w, http.StatusBadRequest, msgFieldTooLong)
			return
		}
		t.Name = name
		t.Slug = slug.GenerateFor("topic", name)
	}
	if req.Description != nil {
		if tooLong(*req.Description, maxDescriptionLen) {
			writeError(w, http.StatusBadRequest, msgFieldTooLong)
			return
		}
		t.Description = optionalText(*req.Description)
	}

	if err := a.topics.Update(t); err != nil {
		writeStoreError(w, err, "update topic failed", "topic_id", id)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTopic removes a topic. Articles are detached.
func (a *API) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.topics.Delete(id); err != nil {
		slog.Error("delete topic failed", "error", err, "topic_id", id)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	slog.Info("topic deleted", "topic_id", id)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
