// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"seowriter/internal/models"
)

// TopicStore manages topics in the database.
type TopicStore struct {
	db *sql.DB
}

// NewTopicStore returns a new TopicStore.
func NewTopicStore(db *sql.DB) *TopicStore {
	return &TopicStore{db: db}
}

const topicColumns = `id, name, slug, description, category_id, created_at, updated_at`

func scanTopic(scanner interface{ Scan(...any) error }) (*models.Topic, error) {
	var t models.Topic
	err := scanner.Scan(
		&t.ID, &t.Name, &t.Slug, &t.Description, &t.CategoryID,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns topics newest first, optionally restricted to one category,
// with article counts and the owning category attached.
func (s *TopicStore) List(categoryID *uuid.UUID) ([]models.Topic, error) {
	return listTopics(s.db, categoryID)
}

func listTopics(db *sql.DB, categoryID *uuid.UUID) ([]models.Topic, error) {
	query := `
		SELECT t.id, t.name, t.slug, t.description, t.category_id, t.created_at, t.updated_at,
		       c.name, c.color,
		       (SELECT COUNT(*) FROM articles a WHERE a.topic_id = t.id) AS article_count
		FROM topics t
		JOIN categories c ON c.id = t.category_id`
	var args []any
	if categoryID != nil {
		query += ` WHERE t.category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY t.created_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	items := []models.Topic{}
	for rows.Next() {
		var (
			t   models.Topic
			ref models.CategoryRef
		)
		err := rows.Scan(
			&t.ID, &t.Name, &t.Slug, &t.Description, &t.CategoryID,
			&t.CreatedAt, &t.UpdatedAt, &ref.Name, &ref.Color, &t.ArticleCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		ref.ID = t.CategoryID
		t.Category = &ref
		items = append(items, t)
	}
	return items, rows.Err()
}

// FindByID retrieves a topic by ID. Returns nil if not found.
func (s *TopicStore) FindByID(id uuid.UUID) (*models.Topic, error) {
	row := s.db.QueryRow(`SELECT `+topicColumns+` FROM topics WHERE id = $1`, id)
	t, err := scanTopic(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find topic by id: %w", err)
	}
	return t, nil
}

// Create inserts a new topic under its category.
func (s *TopicStore) Create(t *models.Topic) (*models.Topic, error) {
	row := s.db.QueryRow(`
		INSERT INTO topics (name, slug, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+topicColumns,
		t.Name, t.Slug, t.Description, t.CategoryID,
	)
	result, err := scanTopic(row)
	if err != nil {
		return nil, fmt.Errorf("create topic: %w", translate(err))
	}
	return result, nil
}

// Update modifies a topic's name, slug and description.
func (s *TopicStore) Update(t *models.Topic) error {
	_, err := s.db.Exec(`
		UPDATE topics SET name = $1, slug = $2, description = $3, updated_at = NOW()
		WHERE id = $4
	`, t.Name, t.Slug, t.Description, t.ID)
	if err != nil {
		return fmt.Errorf("update topic: %w", translate(err))
	}
	return nil
}

// Delete removes a topic. Articles that referenced it are detached.
func (s *TopicStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	return nil
}
