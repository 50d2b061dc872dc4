// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"seowriter/internal/ai"
	"seowriter/internal/markdown"
	"seowriter/internal/prompt"
)

// Source is one reference suggested by the model.
type Source struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SuggestSources asks the model for reference material about topic.
// Entries without a URL are dropped.
func (s *Service) SuggestSources(ctx context.Context, topic string, keywords []string) ([]Source, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}

	p := prompt.SourceSuggestion(topic, keywords)
	completion, err := s.llm.Complete(ctx, ai.Request{
		System:      p.System,
		User:        p.User,
		Temperature: ai.SuggestionTemperature,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("suggest sources: %w", err)
	}

	text := markdown.StripFences(completion.Text)
	if text == "" {
		return []Source{}, nil
	}

	var parsed struct {
		Sources []Source `json:"sources"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("decode suggested sources: %w", err)
	}

	out := make([]Source, 0, len(parsed.Sources))
	for _, src := range parsed.Sources {
		if strings.TrimSpace(src.URL) == "" {
			continue
		}
		out = append(out, src)
	}
	return out, nil
}
