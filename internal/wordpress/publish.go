// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package wordpress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"seowriter/internal/models"
)

var (
	// ErrArticleNotFound is returned when the article to publish does not exist.
	ErrArticleNotFound = errors.New("article not found")
	// ErrAlreadyPublished is returned when the article already has a remote post.
	ErrAlreadyPublished = errors.New("article already published")
	// ErrPublishInProgress is returned when another request holds the publish lock.
	ErrPublishInProgress = errors.New("publish already in progress")
	// ErrWriteBackFailed is returned together with a Result when the remote
	// draft exists but the article row could not be updated.
	ErrWriteBackFailed = errors.New("remote draft created but article not updated")
)

// lockTTL bounds how long a crashed publish can block retries.
const lockTTL = 2 * time.Minute

// ArticleRepository loads articles and records the remote post.
type ArticleRepository interface {
	FindByID(id uuid.UUID) (*models.Article, error)
	MarkPublished(id uuid.UUID, wpPostID, wpURL string) error
}

// Locker guards an article against concurrent publishes.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

// Result describes a successful publish.
type Result struct {
	PostID     int64    `json:"wpPostId"`
	EditURL    string   `json:"editUrl"`
	PreviewURL string   `json:"previewUrl"`
	Skipped    []string `json:"skipped,omitempty"`
}

// Publisher pushes articles to WordPress as drafts.
type Publisher struct {
	client   *Client
	articles ArticleRepository
	locker   Locker
}

// NewPublisher creates a publisher. locker may be nil.
func NewPublisher(client *Client, articles ArticleRepository, locker Locker) *Publisher {
	return &Publisher{client: client, articles: articles, locker: locker}
}

// Publish creates a draft post for the article, resolving its category and
// keyword tags by name first. Taxonomy failures are collected in
// Result.Skipped; a failed post creation returns *APIError. When the post
// exists but the write-back fails, both the Result and ErrWriteBackFailed
// are returned.
func (p *Publisher) Publish(ctx context.Context, id uuid.UUID) (*Result, error) {
	if !p.client.Configured() {
		return nil, ErrNotConfigured
	}

	var keepLock bool
	if p.locker != nil {
		key := "publish:" + id.String()
		token, ok, err := p.locker.Acquire(ctx, key, lockTTL)
		switch {
		case err != nil:
			slog.Warn("publish lock unavailable, continuing without it", "error", err, "article_id", id)
		case !ok:
			return nil, ErrPublishInProgress
		default:
			defer func() {
				if keepLock {
					return
				}
				if err := p.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
					slog.Warn("failed to release publish lock", "error", err, "article_id", id)
				}
			}()
		}
	}

	// Loaded under the lock so a finished concurrent publish is visible.
	a, err := p.articles.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("load article: %w", err)
	}
	if a == nil {
		return nil, ErrArticleNotFound
	}
	if a.IsPublished() {
		return nil, ErrAlreadyPublished
	}

	res := &Result{}
	post := PostInput{
		Title:   a.Title,
		Content: a.BestContent(),
		Status:  "draft",
	}

	if a.Category != nil && strings.TrimSpace(a.Category.Name) != "" {
		name := a.Category.Name
		termID, err := p.findOrCreate(ctx, name, p.client.SearchCategories, p.client.CreateCategory)
		if err != nil {
			slog.Warn("skipping wordpress category", "error", err, "article_id", id, "category", name)
			res.Skipped = append(res.Skipped, "category:"+name)
		} else {
			post.Categories = []int64{termID}
		}
	}

	seenKeyword := make(map[string]bool, len(a.Keywords))
	seenTag := make(map[int64]bool, len(a.Keywords))
	for _, kw := range a.Keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" || seenKeyword[strings.ToLower(kw)] {
			continue
		}
		seenKeyword[strings.ToLower(kw)] = true

		termID, err := p.findOrCreate(ctx, kw, p.client.SearchTags, p.client.CreateTag)
		if err != nil {
			slog.Warn("skipping wordpress tag", "error", err, "article_id", id, "tag", kw)
			res.Skipped = append(res.Skipped, "tag:"+kw)
			continue
		}
		if !seenTag[termID] {
			seenTag[termID] = true
			post.Tags = append(post.Tags, termID)
		}
	}

	created, err := p.client.CreatePost(ctx, post)
	if err != nil {
		slog.Error("wordpress post creation failed", "error", err, "article_id", id)
		return nil, err
	}

	res.PostID = created.ID
	res.EditURL = p.client.EditURL(created.ID)
	res.PreviewURL = created.Link

	if err := p.markPublished(id, created.ID, res.EditURL); err != nil {
		// The lock is left to expire: a retry within lockTTL gets
		// ErrPublishInProgress instead of a second remote post.
		keepLock = true
		slog.Error("remote draft created but local record not updated",
			"error", err, "article_id", id, "wp_post_id", created.ID)
		return res, fmt.Errorf("%w: %w", ErrWriteBackFailed, err)
	}

	slog.Info("article published to wordpress",
		"article_id", id, "wp_post_id", created.ID, "skipped", len(res.Skipped))
	return res, nil
}

// markPublished writes the remote ids back, retrying once.
func (p *Publisher) markPublished(id uuid.UUID, postID int64, editURL string) error {
	wpID := strconv.FormatInt(postID, 10)
	err := p.articles.MarkPublished(id, wpID, editURL)
	if err == nil {
		return nil
	}
	slog.Warn("write-back after publish failed, retrying", "error", err, "article_id", id)
	if err := p.articles.MarkPublished(id, wpID, editURL); err != nil {
		return fmt.Errorf("mark published: %w", err)
	}
	return nil
}

type (
	searchFunc func(ctx context.Context, name string) ([]Term, error)
	createFunc func(ctx context.Context, name string) (*Term, error)
)

// findOrCreate reuses the first search hit, otherwise creates the term.
func (p *Publisher) findOrCreate(ctx context.Context, name string, search searchFunc, create createFunc) (int64, error) {
	found, err := search(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("search %q: %w", name, err)
	}
	if len(found) > 0 {
		return found[0].ID, nil
	}
	term, err := create(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("create %q: %w", name, err)
	}
	return term.ID, nil
}
