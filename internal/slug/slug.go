// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
// Hebrew letters are kept as-is so that Hebrew titles produce readable slugs.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	// whitespace matches runs of any whitespace, turned into a single hyphen.
	whitespace = regexp.MustCompile(`\s+`)
	// disallowed matches anything that isn't a word char, hyphen, or Hebrew.
	disallowed = regexp.MustCompile(`[^\w\-\x{0590}-\x{05FF}]+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// now is swapped in tests.
var now = time.Now

// Generate creates a URL-friendly slug from the given string.
// Example: "מדריך SEO 2024" → "מדריך-seo-2024". When nothing survives the
// stripping, a timestamped "article-<millis>" slug is returned instead.
func Generate(s string) string {
	return GenerateFor("article", s)
}

// GenerateFor is Generate with kind as the fallback prefix, so an empty
// category name becomes "category-<millis>".
func GenerateFor(kind, s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = whitespace.ReplaceAllString(result, "-")
	result = disallowed.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if result == "" {
		return fmt.Sprintf("%s-%d", kind, now().UnixMilli())
	}
	return result
}

// WithSuffix returns the slug for s followed by a millisecond timestamp,
// used for article slugs that must not collide across regenerations and
// duplicates.
func WithSuffix(s string, t time.Time) string {
	return fmt.Sprintf("%s-%d", Generate(s), t.UnixMilli())
}
