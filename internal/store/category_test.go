// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"seowriter/internal/models"
)

func TestCategoryStoreCreateDefaultsColor(t *testing.T) {
	db := testDB(t)
	c := testCategory(t, db, "צבע "+uniq())

	if c.Color != models.DefaultCategoryColor {
		t.Errorf("color: got %q, want %q", c.Color, models.DefaultCategoryColor)
	}
	if c.Topics == nil {
		t.Error("Topics should be an empty slice, not nil")
	}
}

func TestCategoryStoreDuplicateSlug(t *testing.T) {
	db := testDB(t)
	c := testCategory(t, db, "כפול "+uniq())

	_, err := NewCategoryStore(db).Create(&models.Category{Name: "other", Slug: c.Slug})
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Errorf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestCategoryStoreFindWithTopicsAndCounts(t *testing.T) {
	db := testDB(t)
	cs := NewCategoryStore(db)
	ts := NewTopicStore(db)
	as := NewArticleStore(db)
	c := testCategory(t, db, "טכנולוגיה "+uniq())

	topic, err := ts.Create(&models.Topic{Name: "בינה מלאכותית", Slug: "ai-" + uniq(), CategoryID: c.ID})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}

	a := newTestArticle("counted")
	a.CategoryID = &c.ID
	a.TopicID = &topic.ID
	created, err := as.Create(a)
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	t.Cleanup(func() { cleanArticles(t, db, created.ID) })

	found, err := cs.FindByID(c.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.ArticleCount != 1 || found.TopicCount != 1 {
		t.Errorf("counts: articles=%d topics=%d", found.ArticleCount, found.TopicCount)
	}
	if len(found.Topics) != 1 || found.Topics[0].ArticleCount != 1 {
		t.Errorf("topics: %+v", found.Topics)
	}

	all, err := cs.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var listed *models.Category
	for i := range all {
		if all[i].ID == c.ID {
			listed = &all[i]
		}
	}
	if listed == nil {
		t.Fatal("category missing from List")
	}
	if listed.ArticleCount != 1 || len(listed.Topics) != 1 {
		t.Errorf("listed counts: articles=%d topics=%d", listed.ArticleCount, len(listed.Topics))
	}

	byCat, err := ts.List(&c.ID)
	if err != nil {
		t.Fatalf("TopicStore.List: %v", err)
	}
	if len(byCat) != 1 || byCat[0].Category == nil || byCat[0].Category.Name != c.Name {
		t.Errorf("topics by category: %+v", byCat)
	}
}

func TestCategoryStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	c := testCategory(t, db, "ישן "+uniq())

	c.Name = "חדש"
	c.Slug = "renamed-" + uniq()
	c.Color = "#ff0000"
	if err := s.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, _ := s.FindByID(c.ID)
	if found.Name != "חדש" || found.Slug != c.Slug || found.Color != "#ff0000" {
		t.Errorf("update not persisted: %+v", found)
	}
}

func TestCategoryStoreDeleteDetachesArticles(t *testing.T) {
	db := testDB(t)
	cs := NewCategoryStore(db)
	ts := NewTopicStore(db)
	as := NewArticleStore(db)

	c, err := cs.Create(&models.Category{Name: "זמני", Slug: "temp-" + uniq()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	topic, err := ts.Create(&models.Topic{Name: "נושא", Slug: "topic-" + uniq(), CategoryID: c.ID})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}

	a := newTestArticle("survivor")
	a.CategoryID = &c.ID
	a.TopicID = &topic.ID
	created, err := as.Create(a)
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	t.Cleanup(func() { cleanArticles(t, db, created.ID) })

	if err := cs.Delete(c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if got, _ := ts.FindByID(topic.ID); got != nil {
		t.Error("topic should be deleted with its category")
	}
	found, err := as.FindByID(created.ID)
	if err != nil || found == nil {
		t.Fatalf("article should survive: %v", err)
	}
	if found.CategoryID != nil || found.TopicID != nil {
		t.Errorf("article should be detached: category=%v topic=%v", found.CategoryID, found.TopicID)
	}
}

func TestTopicStoreCRUD(t *testing.T) {
	db := testDB(t)
	s := NewTopicStore(db)
	c := testCategory(t, db, "נושאים "+uniq())

	desc := "תיאור"
	created, err := s.Create(&models.Topic{Name: "קידום", Slug: "seo-" + uniq(), Description: &desc, CategoryID: c.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created.Name = "קידום אורגני"
	created.Slug = "organic-" + uniq()
	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}
	found, err := s.FindByID(created.ID)
	if err != nil || found == nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Name != "קידום אורגני" || *found.Description != desc {
		t.Errorf("update not persisted: %+v", found)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := s.FindByID(created.ID); got != nil {
		t.Error("topic should be gone")
	}
}

func TestTopicStoreInvalidCategory(t *testing.T) {
	db := testDB(t)
	_, err := NewTopicStore(db).Create(&models.Topic{Name: "x", Slug: "x-" + uniq(), CategoryID: uuid.New()})
	if !errors.Is(err, ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
}
