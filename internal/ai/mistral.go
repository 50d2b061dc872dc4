// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

// newMistral creates a new Mistral provider. Mistral exposes an
// OpenAI-compatible API at a different base URL.
func newMistral(cfg ProviderConfig) *chatProvider {
	if cfg.Model == "" {
		cfg.Model = "mistral-large-latest"
	}
	return newChatProvider("mistral", "https://api.mistral.ai/v1", cfg)
}
