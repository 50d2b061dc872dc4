// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"seowriter/internal/models"
	"seowriter/internal/wordcount"
)

// ArticleStore handles all article-related database operations.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// articleColumns is qualified with the "a" alias used by every query.
const articleColumns = `a.id, a.title, a.slug, a.content, a.html_content, a.status,
	a.word_count, a.word_range_min, a.word_range_max, a.writing_topic,
	a.keywords, a.sources, a.custom_instructions, a.meta_description,
	a.category_id, a.topic_id, a.wp_post_id, a.wp_url, a.published_at,
	a.created_at, a.updated_at`

// articleWithRefs adds the slim category/topic projections.
const articleWithRefs = articleColumns + `, c.name, c.color, t.name
	FROM articles a
	LEFT JOIN categories c ON c.id = a.category_id
	LEFT JOIN topics t ON t.id = a.topic_id`

func articleDest(a *models.Article) []any {
	return []any{
		&a.ID, &a.Title, &a.Slug, &a.Content, &a.HTMLContent, &a.Status,
		&a.WordCount, &a.WordRangeMin, &a.WordRangeMax, &a.WritingTopic,
		&a.Keywords, &a.Sources, &a.CustomInstructions, &a.MetaDescription,
		&a.CategoryID, &a.TopicID, &a.WPPostID, &a.WPURL, &a.PublishedAt,
		&a.CreatedAt, &a.UpdatedAt,
	}
}

// scanArticle scans a row holding articleColumns only.
func scanArticle(scanner interface{ Scan(...any) error }) (*models.Article, error) {
	var a models.Article
	if err := scanner.Scan(articleDest(&a)...); err != nil {
		return nil, err
	}
	return &a, nil
}

// scanArticleWithRefs scans a row produced by articleWithRefs.
func scanArticleWithRefs(scanner interface{ Scan(...any) error }) (*models.Article, error) {
	var (
		a                        models.Article
		catName, catColor, topic sql.NullString
	)
	dest := append(articleDest(&a), &catName, &catColor, &topic)
	if err := scanner.Scan(dest...); err != nil {
		return nil, err
	}
	if a.CategoryID != nil && catName.Valid {
		a.Category = &models.CategoryRef{ID: *a.CategoryID, Name: catName.String, Color: catColor.String}
	}
	if a.TopicID != nil && topic.Valid {
		a.Topic = &models.TopicRef{ID: *a.TopicID, Name: topic.String}
	}
	return &a, nil
}

// List returns articles matching the filter, newest first. Search is a
// case-insensitive substring match on the title.
func (s *ArticleStore) List(f models.ArticleFilter) ([]models.Article, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Status != "" {
		add("a.status = $%d", f.Status)
	}
	if f.CategoryID != nil {
		add("a.category_id = $%d", *f.CategoryID)
	}
	if f.TopicID != nil {
		add("a.topic_id = $%d", *f.TopicID)
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		add(`a.title ILIKE '%%' || $%d || '%%' ESCAPE '\'`, escapeLike(q))
	}

	query := `SELECT ` + articleWithRefs
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY a.created_at DESC`

	return s.query(query, args...)
}

// Recent returns the newest articles, up to limit.
func (s *ArticleStore) Recent(limit int) ([]models.Article, error) {
	return s.query(`SELECT `+articleWithRefs+` ORDER BY a.created_at DESC LIMIT $1`, limit)
}

func (s *ArticleStore) query(query string, args ...any) ([]models.Article, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	items := []models.Article{}
	for rows.Next() {
		a, err := scanArticleWithRefs(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// FindByID retrieves an article with its category, topic and latest
// generation log. Returns nil if not found.
func (s *ArticleStore) FindByID(id uuid.UUID) (*models.Article, error) {
	row := s.db.QueryRow(`SELECT `+articleWithRefs+` WHERE a.id = $1`, id)
	a, err := scanArticleWithRefs(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}

	a.LatestLog, err = latestLog(s.db, id)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new article. The word count is derived from the HTML
// body; any value set by the caller is ignored.
func (s *ArticleStore) Create(a *models.Article) (*models.Article, error) {
	a.WordCount = wordcount.Count(a.BestContent())
	if a.Status == models.ArticleStatusPublished && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}

	row := s.db.QueryRow(`
		INSERT INTO articles AS a (
			title, slug, content, html_content, status, word_count,
			word_range_min, word_range_max, writing_topic, keywords, sources,
			custom_instructions, meta_description, category_id, topic_id, published_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING `+articleColumns,
		a.Title, a.Slug, a.Content, a.HTMLContent, a.Status, a.WordCount,
		a.WordRangeMin, a.WordRangeMax, a.WritingTopic, a.Keywords, a.Sources,
		a.CustomInstructions, a.MetaDescription, a.CategoryID, a.TopicID, a.PublishedAt,
	)
	created, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", translate(err))
	}
	return created, nil
}

// Update writes every editable field of an existing article. The word
// count is recomputed and published_at is stamped on the first transition
// to published. Remote post identifiers are left to MarkPublished.
func (s *ArticleStore) Update(a *models.Article) error {
	a.WordCount = wordcount.Count(a.BestContent())
	if a.Status == models.ArticleStatusPublished && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}

	_, err := s.db.Exec(`
		UPDATE articles SET
			title = $1, content = $2, html_content = $3, status = $4, word_count = $5,
			word_range_min = $6, word_range_max = $7, writing_topic = $8,
			keywords = $9, sources = $10, custom_instructions = $11,
			meta_description = $12, category_id = $13, topic_id = $14,
			published_at = $15, updated_at = NOW()
		WHERE id = $16
	`, a.Title, a.Content, a.HTMLContent, a.Status, a.WordCount,
		a.WordRangeMin, a.WordRangeMax, a.WritingTopic,
		a.Keywords, a.Sources, a.CustomInstructions,
		a.MetaDescription, a.CategoryID, a.TopicID,
		a.PublishedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", translate(err))
	}
	return nil
}

// ApplyGenerated replaces the body of an existing article with freshly
// generated content together with the parameters that produced it, and
// resets the status to generated. Returns the updated row, or nil if the
// article no longer exists.
func (s *ArticleStore) ApplyGenerated(a *models.Article) (*models.Article, error) {
	count := wordcount.Count(a.BestContent())

	row := s.db.QueryRow(`
		UPDATE articles AS a SET
			title = $1, content = $2, html_content = $3, status = $4, word_count = $5,
			word_range_min = $6, word_range_max = $7, writing_topic = $8,
			keywords = $9, sources = $10, custom_instructions = $11,
			updated_at = NOW()
		WHERE a.id = $12
		RETURNING `+articleColumns,
		a.Title, a.Content, a.HTMLContent, models.ArticleStatusGenerated, count,
		a.WordRangeMin, a.WordRangeMax, a.WritingTopic,
		a.Keywords, a.Sources, a.CustomInstructions, a.ID,
	)
	updated, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("apply generated content: %w", err)
	}
	return updated, nil
}

// MarkPublished records the remote post id and edit URL and flips the
// article to published.
func (s *ArticleStore) MarkPublished(id uuid.UUID, wpPostID, wpURL string) error {
	_, err := s.db.Exec(`
		UPDATE articles SET
			wp_post_id = $1, wp_url = $2, status = $3,
			published_at = COALESCE(published_at, NOW()), updated_at = NOW()
		WHERE id = $4
	`, wpPostID, wpURL, models.ArticleStatusPublished, id)
	if err != nil {
		return fmt.Errorf("mark article published: %w", err)
	}
	return nil
}

// Delete removes an article. Its generation logs go with it (ON DELETE CASCADE).
func (s *ArticleStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// Count returns the total number of articles.
func (s *ArticleStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of articles in each status. Statuses
// without articles are absent from the map.
func (s *ArticleStore) CountByStatus() (map[models.ArticleStatus]int, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM articles GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count articles by status: %w", err)
	}
	defer rows.Close()

	out := make(map[models.ArticleStatus]int)
	for rows.Next() {
		var (
			status models.ArticleStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
