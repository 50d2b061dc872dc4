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

const logColumns = `id, article_id, prompt, model, tokens_used, duration_ms, created_at`

// GenerationLogStore appends and reads the generation audit trail. Rows
// are never updated after insert.
type GenerationLogStore struct {
	db *sql.DB
}

// NewGenerationLogStore creates a new GenerationLogStore.
func NewGenerationLogStore(db *sql.DB) *GenerationLogStore {
	return &GenerationLogStore{db: db}
}

func scanLog(scanner interface{ Scan(...any) error }) (*models.GenerationLog, error) {
	var l models.GenerationLog
	err := scanner.Scan(&l.ID, &l.ArticleID, &l.Prompt, &l.Model, &l.TokensUsed, &l.DurationMS, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts a new log entry.
func (s *GenerationLogStore) Create(l *models.GenerationLog) (*models.GenerationLog, error) {
	row := s.db.QueryRow(`
		INSERT INTO generation_logs (article_id, prompt, model, tokens_used, duration_ms)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+logColumns,
		l.ArticleID, l.Prompt, l.Model, l.TokensUsed, l.DurationMS,
	)
	created, err := scanLog(row)
	if err != nil {
		return nil, fmt.Errorf("create generation log: %w", translate(err))
	}
	return created, nil
}

// LatestForArticle returns the most recent log of an article, or nil.
func (s *GenerationLogStore) LatestForArticle(articleID uuid.UUID) (*models.GenerationLog, error) {
	return latestLog(s.db, articleID)
}

func latestLog(db *sql.DB, articleID uuid.UUID) (*models.GenerationLog, error) {
	row := db.QueryRow(`
		SELECT `+logColumns+` FROM generation_logs
		WHERE article_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, articleID)
	l, err := scanLog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest generation log: %w", err)
	}
	return l, nil
}

// ListForArticle returns every log of an article, newest first.
func (s *GenerationLogStore) ListForArticle(articleID uuid.UUID) ([]models.GenerationLog, error) {
	rows, err := s.db.Query(`
		SELECT `+logColumns+` FROM generation_logs
		WHERE article_id = $1
		ORDER BY created_at DESC`, articleID)
	if err != nil {
		return nil, fmt.Errorf("list generation logs: %w", err)
	}
	defer rows.Close()

	var items []models.GenerationLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan generation log: %w", err)
		}
		items = append(items, *l)
	}
	return items, rows.Err()
}
