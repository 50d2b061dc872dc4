// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"seowriter/internal/models"
)

const (
	statsCacheKey  = "dashboard"
	recentArticles = 10
)

// categoryCount is one row of the per-category breakdown.
type categoryCount struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// Stats is the dashboard summary.
type Stats struct {
	TotalArticles  int                             `json:"totalArticles"`
	ByStatus       map[models.ArticleStatus]int    `json:"byStatus"`
	StatusLabels   map[models.ArticleStatus]string `json:"statusLabels"`
	ByCategory     []categoryCount                 `json:"byCategory"`
	RecentArticles []models.Article                `json:"recentArticles"`
}

// GetStats returns article totals, a status and category breakdown and the
// most recent articles. The result is cached briefly.
func (a *API) GetStats(w http.ResponseWriter, r *http.Request) {
	var stats Stats
	if a.stats.Get(r.Context(), statsCacheKey, &stats) {
		writeJSON(w, http.StatusOK, stats)
		return
	}

	total, err := a.articles.Count()
	if err != nil {
		slog.Error("count articles failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	counts, err := a.articles.CountByStatus()
	if err != nil {
		slog.Error("count articles by status failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	cats, err := a.categories.List()
	if err != nil {
		slog.Error("list categories for stats failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	recent, err := a.articles.Recent(recentArticles)
	if err != nil {
		slog.Error("load recent articles failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	stats = Stats{
		TotalArticles:  total,
		ByStatus:       make(map[models.ArticleStatus]int, 4),
		StatusLabels:   make(map[models.ArticleStatus]string, 4),
		ByCategory:     []categoryCount{},
		RecentArticles: recent,
	}
	for _, s := range []models.ArticleStatus{
		models.ArticleStatusDraft, models.ArticleStatusGenerated,
		models.ArticleStatusEdited, models.ArticleStatusPublished,
	} {
		stats.ByStatus[s] = counts[s]
		stats.StatusLabels[s] = s.Label()
	}
	for _, c := range cats {
		if c.ArticleCount > 0 {
			stats.ByCategory = append(stats.ByCategory, categoryCount{Name: c.Name, Color: c.Color, Count: c.ArticleCount})
		}
	}
	if stats.RecentArticles == nil {
		stats.RecentArticles = []models.Article{}
	}

	a.stats.Set(r.Context(), statsCacheKey, stats)
	writeJSON(w, http.StatusOK, stats)
}
