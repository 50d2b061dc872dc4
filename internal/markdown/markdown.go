// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts Markdown source text into HTML using goldmark.
// Raw HTML is passed through unchanged, so model output that mixes both
// formats still renders.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
		),
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

// htmlTag detects whether a string already carries block-level markup.
var htmlTag = regexp.MustCompile(`(?i)<(h[2-6]|p|ul|ol|li|blockquote|strong|em|a)[\s>]`)

// ToHTML converts Markdown source into HTML.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// StripFences removes a surrounding ``` fence (with or without a language
// tag) that models like to wrap HTML answers in.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.Index(s, "\n"); nl != -1 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// NormalizeGenerated turns raw model output into article HTML. Fenced
// output is unwrapped; output with no recognizable HTML is treated as
// Markdown and rendered.
func NormalizeGenerated(s string) (string, error) {
	s = StripFences(s)
	if s == "" || htmlTag.MatchString(s) {
		return s, nil
	}
	out, err := ToHTML(s)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
