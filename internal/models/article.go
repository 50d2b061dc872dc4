// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ArticleStatus represents the lifecycle state of an article.
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusGenerated ArticleStatus = "generated"
	ArticleStatusEdited    ArticleStatus = "edited"
	ArticleStatusPublished ArticleStatus = "published"
)

// Valid reports whether s is one of the known lifecycle states.
func (s ArticleStatus) Valid() bool {
	switch s {
	case ArticleStatusDraft, ArticleStatusGenerated, ArticleStatusEdited, ArticleStatusPublished:
		return true
	}
	return false
}

// Label returns the Hebrew display label used by the admin UI.
func (s ArticleStatus) Label() string {
	switch s {
	case ArticleStatusDraft:
		return "טיוטה"
	case ArticleStatusGenerated:
		return "נוצר"
	case ArticleStatusEdited:
		return "נערך"
	case ArticleStatusPublished:
		return "פורסם"
	}
	return string(s)
}

// Article is one piece of generated or edited SEO content. The body is kept
// twice: Content holds the plain variant and HTMLContent the rich one. Both
// are written together and WordCount is always derived from HTMLContent.
type Article struct {
	ID                 uuid.UUID     `json:"id"`
	Title              string        `json:"title"`
	Slug               string        `json:"slug"`
	Content            string        `json:"content"`
	HTMLContent        string        `json:"htmlContent"`
	Status             ArticleStatus `json:"status"`
	WordCount          int           `json:"wordCount"`
	WordRangeMin       int           `json:"wordRangeMin"`
	WordRangeMax       int           `json:"wordRangeMax"`
	WritingTopic       string        `json:"writingTopic"`
	Keywords           StringList    `json:"keywords"`
	Sources            StringList    `json:"sources"`
	CustomInstructions *string       `json:"customInstructions"`
	MetaDescription    *string       `json:"metaDescription"`
	CategoryID         *uuid.UUID    `json:"categoryId"`
	TopicID            *uuid.UUID    `json:"topicId"`
	WPPostID           *string       `json:"wpPostId"`
	WPURL              *string       `json:"wpUrl"`
	PublishedAt        *time.Time    `json:"publishedAt"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`

	// Virtual fields populated by store methods.
	Category  *CategoryRef   `json:"category,omitempty"`
	Topic     *TopicRef      `json:"topic,omitempty"`
	LatestLog *GenerationLog `json:"latestLog,omitempty"`
}

// IsPublished returns true once the article has been pushed to the remote CMS.
func (a *Article) IsPublished() bool {
	return a.WPPostID != nil && *a.WPPostID != ""
}

// BestContent returns the rich HTML body, falling back to the plain one.
func (a *Article) BestContent() string {
	if a.HTMLContent != "" {
		return a.HTMLContent
	}
	return a.Content
}

// CategoryRef is the slim category projection embedded in article listings.
type CategoryRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

// TopicRef is the slim topic projection embedded in article listings.
type TopicRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ArticleFilter narrows article listings. Zero values are ignored.
type ArticleFilter struct {
	Status     ArticleStatus
	CategoryID *uuid.UUID
	TopicID    *uuid.UUID
	Search     string
}

// GenerationLog is the immutable audit record of one generation call.
type GenerationLog struct {
	ID         uuid.UUID `json:"id"`
	ArticleID  uuid.UUID `json:"articleId"`
	Prompt     string    `json:"prompt"`
	Model      string    `json:"model"`
	TokensUsed int64     `json:"tokensUsed"`
	DurationMS int64     `json:"duration"`
	CreatedAt  time.Time `json:"createdAt"`
}
