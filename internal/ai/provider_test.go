// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestProvidersLive runs one short Hebrew completion against each real API.
// Every provider is skipped unless its API key is set.
func TestProvidersLive(t *testing.T) {
	tests := []struct {
		name     string
		keyEnv   string
		modelEnv string
		model    string
	}{
		{"openai", "OPENAI_API_KEY", "OPENAI_MODEL", DefaultModel},
		{"claude", "CLAUDE_API_KEY", "CLAUDE_MODEL", "claude-sonnet-4-6"},
		{"gemini", "GEMINI_API_KEY", "GEMINI_MODEL", "gemini-2.5-pro"},
		{"mistral", "MISTRAL_API_KEY", "MISTRAL_MODEL", "mistral-large-latest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := os.Getenv(tt.keyEnv)
			if key == "" {
				t.Skipf("%s not set", tt.keyEnv)
			}
			model := tt.model
			if m := os.Getenv(tt.modelEnv); m != "" {
				model = m
			}

			reg := NewRegistry(tt.name, map[string]ProviderConfig{
				tt.name: {APIKey: key, Model: model},
			})

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			got, err := reg.Complete(ctx, Request{
				System:      "ענה במשפט קצר אחד.",
				User:        "כמה זה 2+2?",
				Temperature: GenerationTemperature,
				MaxTokens:   100,
			})
			if err != nil {
				t.Fatalf("Complete failed: %v", err)
			}
			if got.Text == "" {
				t.Fatal("Complete returned empty text")
			}
			t.Logf("%s response (%d tokens): %s", tt.name, got.TokensUsed, got.Text)
		})
	}
}
