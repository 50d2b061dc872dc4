// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#6366f1"

// Category is the top level of the two-level article taxonomy.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Virtual fields populated by store methods.
	Topics       []Topic `json:"topics,omitempty"`
	ArticleCount int     `json:"articleCount"`
	TopicCount   int     `json:"topicCount"`
}

// Topic belongs to exactly one Category and groups articles beneath it.
type Topic struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CategoryID  uuid.UUID `json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Virtual fields populated by store methods.
	Category     *CategoryRef `json:"category,omitempty"`
	ArticleCount int          `json:"articleCount"`
}
