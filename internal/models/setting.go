// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// Setting keys understood by the generation workflow.
const (
	SettingDefaultWordMin = "default_word_min"
	SettingDefaultWordMax = "default_word_max"
	SettingPromptAddendum = "default_prompt_addendum"
)

// Setting represents a single configuration key-value pair.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settings is a convenience map for accessing settings by key.
type Settings map[string]string

// Get returns the value for a key, or the fallback if the key doesn't exist.
func (s Settings) Get(key, fallback string) string {
	if v, ok := s[key]; ok && v != "" {
		return v
	}
	return fallback
}

// GenerationDefaults is the typed view over the settings table consumed by
// the generation workflow.
type GenerationDefaults struct {
	WordRangeMin   int    `koanf:"default_word_min"`
	WordRangeMax   int    `koanf:"default_word_max"`
	PromptAddendum string `koanf:"default_prompt_addendum"`
}

// DefaultGenerationDefaults returns the built-in values used when the
// settings table has no overrides.
func DefaultGenerationDefaults() GenerationDefaults {
	return GenerationDefaults{
		WordRangeMin: 700,
		WordRangeMax: 1000,
	}
}

// Defaults decodes the generation defaults out of the flat settings map.
// Empty or missing values keep the built-in defaults; a min/max pair that
// is inverted or non-positive is rejected.
func (s Settings) Defaults() (GenerationDefaults, error) {
	base := DefaultGenerationDefaults()
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		SettingDefaultWordMin: base.WordRangeMin,
		SettingDefaultWordMax: base.WordRangeMax,
		SettingPromptAddendum: base.PromptAddendum,
	}, "."), nil); err != nil {
		return base, fmt.Errorf("load setting defaults: %w", err)
	}

	overrides := make(map[string]any)
	for _, key := range []string{SettingDefaultWordMin, SettingDefaultWordMax, SettingPromptAddendum} {
		if v := s.Get(key, ""); v != "" {
			overrides[key] = v
		}
	}
	if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
		return base, fmt.Errorf("load setting overrides: %w", err)
	}

	var out GenerationDefaults
	if err := k.Unmarshal("", &out); err != nil {
		return base, fmt.Errorf("decode settings: %w", err)
	}
	if out.WordRangeMin <= 0 || out.WordRangeMax < out.WordRangeMin {
		return base, fmt.Errorf("invalid word range %d-%d", out.WordRangeMin, out.WordRangeMax)
	}
	return out, nil
}
