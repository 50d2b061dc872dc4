// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package wordcount measures article length the same way the editor shows
// it: markup and HTML entities are ignored, whitespace separates words.
package wordcount

import (
	"regexp"
	"strings"
)

var (
	tags     = regexp.MustCompile(`<[^>]*>`)
	entities = regexp.MustCompile(`&[^;]+;`)
)

// Strip replaces every tag and entity with a single space, leaving only the
// readable text. Whitespace is not normalized.
func Strip(html string) string {
	text := tags.ReplaceAllString(html, " ")
	return entities.ReplaceAllString(text, " ")
}

// Count returns the number of whitespace-separated words in the visible
// text of html. Hebrew, Latin and digits all count as words.
func Count(html string) int {
	return len(strings.Fields(Strip(html)))
}
