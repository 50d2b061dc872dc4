// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"seowriter/internal/models"
)

func TestGetStats(t *testing.T) {
	env := newTestEnv(t)

	busy := uuid.New()
	env.Categories.rows[busy] = &models.Category{ID: busy, Name: "שיווק", Color: "#ff0000", ArticleCount: 2}
	idle := uuid.New()
	env.Categories.rows[idle] = &models.Category{ID: idle, Name: "ריק", Color: "#00ff00"}

	for i := 0; i < 12; i++ {
		status := models.ArticleStatusDraft
		if i%3 == 0 {
			status = models.ArticleStatusGenerated
		}
		env.Articles.add(models.Article{Title: "מאמר", Status: status})
	}

	rec := do(t, env.API.GetStats, http.MethodGet, "/api/stats", "/api/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got Stats
	decodeBody(t, rec, &got)

	if got.TotalArticles != 12 {
		t.Errorf("total = %d", got.TotalArticles)
	}
	want := map[models.ArticleStatus]int{
		models.ArticleStatusDraft:     8,
		models.ArticleStatusGenerated: 4,
		models.ArticleStatusEdited:    0,
		models.ArticleStatusPublished: 0,
	}
	if len(got.ByStatus) != len(want) {
		t.Errorf("byStatus has %d keys, want every status", len(got.ByStatus))
	}
	for s, n := range want {
		if got.ByStatus[s] != n {
			t.Errorf("byStatus[%s] = %d, want %d", s, got.ByStatus[s], n)
		}
	}
	if got.StatusLabels[models.ArticleStatusPublished] != "פורסם" || got.StatusLabels[models.ArticleStatusDraft] != "טיוטה" {
		t.Errorf("statusLabels = %v", got.StatusLabels)
	}
	if len(got.ByCategory) != 1 || got.ByCategory[0].Name != "שיווק" || got.ByCategory[0].Count != 2 {
		t.Errorf("byCategory = %+v", got.ByCategory)
	}
	if len(got.RecentArticles) != recentArticles {
		t.Errorf("recent = %d, want %d", len(got.RecentArticles), recentArticles)
	}
}

func TestGetStatsEmpty(t *testing.T) {
	env := newTestEnv(t)
	rec := do(t, env.API.GetStats, http.MethodGet, "/api/stats", "/api/stats", "")

	var raw map[string]any
	decodeBody(t, rec, &raw)
	if _, ok := raw["byCategory"].([]any); !ok {
		t.Errorf("byCategory = %v, want empty array", raw["byCategory"])
	}
	if _, ok := raw["recentArticles"].([]any); !ok {
		t.Errorf("recentArticles = %v, want empty array", raw["recentArticles"])
	}
}
