// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package prompt assembles the instructions sent to the language model.
// Everything here is pure string construction: the same Params always
// produce the same Prompt.
package prompt

import (
	"fmt"
	"strings"
)

// logSeparator joins the system and user parts in the audit log.
const logSeparator = "\n\n---\n\n"

// Params are the user-facing inputs of one article generation.
type Params struct {
	Title              string
	WritingTopic       string
	WordRangeMin       int
	WordRangeMax       int
	Keywords           []string
	Sources            []string
	CustomInstructions string
	// Addendum is the site-wide extra instruction from settings.
	Addendum string
}

// Prompt is the two-role instruction pair.
type Prompt struct {
	System string
	User   string
}

// Full returns the prompt as stored in the generation log.
func (p Prompt) Full() string {
	return p.System + logSeparator + p.User
}

// baseRules are the fixed style and markup constraints. The word range is
// filled in by Article.
const baseRules = `אתה כותב תוכן מקצועי בעברית. כתוב מאמר איכותי, מקצועי ומעמיק.

כללים חשובים:
- כתוב בעברית טבעית ומקצועית. אל תישמע כמו AI.
- אסור להשתמש בביטויים: "בעידן הדיגיטלי", "בעולם המודרני", "ללא ספק", "חשוב לציין"
- אסור אימוג'י
- אל תפתח עם הקדמה גנרית. תתחיל ישר לעניין.
- טון: חד, מקצועי, בקיא בתחום, מרתק
- השתמש בכותרות משנה (H2, H3) לארגון התוכן
- שלב את מילות המפתח באופן טבעי - לא stuffing
- כמות מילים: בין %d ל-%d מילים
- הפלט חייב להיות HTML נקי (לא markdown)
- השתמש בתגיות: <h2>, <h3>, <p>, <ul>, <li>, <ol>, <strong>, <em>, <blockquote>, <a>
- אל תכלול כותרת ראשית (h1) - הכותרת הראשית מנוהלת בנפרד
- אל תכלול DOCTYPE, html, head או body - רק את תוכן המאמר`

// BannedPhrases are the filler expressions the model is told to avoid.
var BannedPhrases = []string{"בעידן הדיגיטלי", "בעולם המודרני", "ללא ספק", "חשוב לציין"}

// Article builds the generation prompt. Optional sections are appended only
// when their input is non-empty.
func Article(p Params) Prompt {
	var sys strings.Builder
	fmt.Fprintf(&sys, baseRules, p.WordRangeMin, p.WordRangeMax)

	sources := nonEmpty(p.Sources)
	keywords := nonEmpty(p.Keywords)

	if len(sources) > 0 {
		sys.WriteString("\n- אם יש מקורות, התייחס אליהם באופן טבעי בטקסט")
	}
	if len(keywords) > 0 {
		sys.WriteString("\nמילות מפתח לשלב באופן טבעי: ")
		sys.WriteString(strings.Join(keywords, ", "))
	}
	if len(sources) > 0 {
		sys.WriteString("\nמקורות מידע לעיון והתייחסות:")
		for _, s := range sources {
			sys.WriteString("\n- ")
			sys.WriteString(s)
		}
	}
	if c := strings.TrimSpace(p.CustomInstructions); c != "" {
		sys.WriteString("\nהנחיות נוספות מהמשתמש: ")
		sys.WriteString(c)
	}
	if a := strings.TrimSpace(p.Addendum); a != "" {
		sys.WriteString("\n")
		sys.WriteString(a)
	}

	user := fmt.Sprintf("כתוב מאמר בנושא: \"%s\"\n\nתיאור הנושא: %s\n\nכתוב את המאמר המלא ב-HTML נקי.",
		p.Title, p.WritingTopic)

	return Prompt{System: sys.String(), User: user}
}

const sourcesSystem = `אתה עוזר מחקר. בהינתן נושא, הצע 5-8 מקורות מידע רלוונטיים באינטרנט (כתובות URL אמיתיות של אתרים מוכרים).
החזר JSON בפורמט: { "sources": [{ "url": "...", "title": "...", "description": "..." }] }
הצע מקורות מגוונים: אתרי חדשות, בלוגים מקצועיים, מאמרים אקדמיים, אתרים ממשלתיים.
העדף מקורות בעברית כשקיימים, אבל גם מקורות באנגלית רלוונטיים.
חשוב: החזר רק JSON תקין, בלי טקסט נוסף.`

// SourceSuggestion builds the prompt asking the model for reference URLs
// about topic. The response is expected in JSON mode.
func SourceSuggestion(topic string, keywords []string) Prompt {
	user := "נושא: " + topic
	if kw := nonEmpty(keywords); len(kw) > 0 {
		user += "\nמילות מפתח קשורות: " + strings.Join(kw, ", ")
	}
	return Prompt{System: sourcesSystem, User: user}
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
