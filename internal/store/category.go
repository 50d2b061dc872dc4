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

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, description, color, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories, newest first, with article and topic
// counts and their topics attached.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.slug, c.description, c.color, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM articles a WHERE a.category_id = c.id) AS article_count,
		       (SELECT COUNT(*) FROM topics t WHERE t.category_id = c.id) AS topic_count
		FROM categories c
		ORDER BY c.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := []models.Category{}
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var c models.Category
		err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color,
			&c.CreatedAt, &c.UpdatedAt, &c.ArticleCount, &c.TopicCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Topics = []models.Topic{}
		index[c.ID] = len(items)
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	topics, err := listTopics(s.db, nil)
	if err != nil {
		return nil, err
	}
	for _, t := range topics {
		if i, ok := index[t.CategoryID]; ok {
			items[i].Topics = append(items[i].Topics, t)
		}
	}
	return items, nil
}

// FindByID retrieves a category with its topics. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}

	c.Topics, err = listTopics(s.db, &id)
	if err != nil {
		return nil, err
	}
	c.TopicCount = len(c.Topics)
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM articles WHERE category_id = $1`, id).Scan(&c.ArticleCount); err != nil {
		return nil, fmt.Errorf("count category articles: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it. An empty color falls back
// to the default swatch.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	if c.Color == "" {
		c.Color = models.DefaultCategoryColor
	}
	row := s.db.QueryRow(`
		INSERT INTO categories (name, slug, description, color)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.Color,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", translate(err))
	}
	result.Topics = []models.Topic{}
	return result, nil
}

// Update modifies an existing category.
func (s *CategoryStore) Update(c *models.Category) error {
	_, err := s.db.Exec(`
		UPDATE categories SET
			name = $1, slug = $2, description = $3, color = $4, updated_at = NOW()
		WHERE id = $5
	`, c.Name, c.Slug, c.Description, c.Color, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", translate(err))
	}
	return nil
}

// Delete removes a category. Its topics are deleted with it and its
// articles are detached (category_id and topic_id set to NULL).
func (s *CategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
