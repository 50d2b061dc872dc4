// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"seowriter/internal/models"
)

func TestGenerationLogStore(t *testing.T) {
	db := testDB(t)
	as := NewArticleStore(db)
	s := NewGenerationLogStore(db)

	a, err := as.Create(newTestArticle("logged"))
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	t.Cleanup(func() { cleanArticles(t, db, a.ID) })

	if latest, err := s.LatestForArticle(a.ID); err != nil || latest != nil {
		t.Fatalf("expected no log yet, got %v, %v", latest, err)
	}

	first, err := s.Create(&models.GenerationLog{ArticleID: a.ID, Prompt: "first", Model: "gpt-4o", TokensUsed: 100, DurationMS: 1500})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.TokensUsed != 100 || first.DurationMS != 1500 {
		t.Errorf("usage not persisted: %+v", first)
	}
	if _, err := db.Exec(`UPDATE generation_logs SET created_at = created_at - INTERVAL '1 minute' WHERE id = $1`, first.ID); err != nil {
		t.Fatalf("backdate: %v", err)
	}
	if _, err := s.Create(&models.GenerationLog{ArticleID: a.ID, Prompt: "second", Model: "gpt-4o"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	latest, err := s.LatestForArticle(a.ID)
	if err != nil || latest == nil {
		t.Fatalf("LatestForArticle: %v", err)
	}
	if latest.Prompt != "second" {
		t.Errorf("latest prompt: got %q, want second", latest.Prompt)
	}

	all, err := s.ListForArticle(a.ID)
	if err != nil {
		t.Fatalf("ListForArticle: %v", err)
	}
	if len(all) != 2 || all[0].Prompt != "second" {
		t.Errorf("list order: %+v", all)
	}

	found, _ := as.FindByID(a.ID)
	if found.LatestLog == nil || found.LatestLog.Prompt != "second" {
		t.Errorf("FindByID should attach the latest log: %+v", found.LatestLog)
	}
}
