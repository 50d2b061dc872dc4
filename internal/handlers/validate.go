package handlers

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Length limits for user-supplied fields, counted in runes.
const (
	maxTitleLen        = 300
	maxNameLen         = 200
	maxDescriptionLen  = 2_000
	maxMetaDescLen     = 500
	maxInstructionsLen = 5_000
	maxWritingTopicLen = 5_000
	maxListItems       = 50
	maxListItemLen     = 500
	maxWordRange       = 10_000
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

// validList checks a keyword or source list.
func validList(items []string) bool {
	if len(items) > maxListItems {
		return false
	}
	for _, it := range items {
		if tooLong(it, maxListItemLen) {
			return false
		}
	}
	return true
}

// validWordRange accepts zero values (use defaults) and otherwise requires
// 0 < min <= max within bounds.
func validWordRange(min, max int) bool {
	if min < 0 || max < 0 || min > maxWordRange || max > maxWordRange {
		return false
	}
	if min > 0 && max > 0 && min > max {
		return false
	}
	return true
}

func validColor(c string) bool {
	return c == "" || hexColor.MatchString(c)
}

// optionalText trims s and returns nil when empty.
func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// cleanList trims entries and drops blanks, keeping order.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
