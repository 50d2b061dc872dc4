// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"seowriter/internal/models"
)

// GetSettings returns every stored setting as a flat key/value map.
func (a *API) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.settings.All()
	if err != nil {
		slog.Error("load settings failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if settings == nil {
		settings = models.Settings{}
	}
	writeJSON(w, http.StatusOK, settings)
}

// numericSettings must hold positive integers.
var numericSettings = map[string]bool{
	models.SettingDefaultWordMin: true,
	models.SettingDefaultWordMax: true,
}

// UpdateSettings upserts every key of the body. Non-string JSON values are
// stored in their literal form.
func (a *API) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	if !decodeJSON(w, r, &raw) {
		return
	}

	values := make(map[string]string, len(raw))
	for key, msg := range raw {
		key = strings.TrimSpace(key)
		if key == "" {
			writeError(w, http.StatusBadRequest, msgInvalidSetting)
			return
		}
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			s = string(msg)
		}
		s = strings.TrimSpace(s)
		if numericSettings[key] && s != "" {
			if n, err := strconv.Atoi(s); err != nil || n <= 0 || n > maxWordRange {
				writeError(w, http.StatusBadRequest, msgInvalidSetting)
				return
			}
		}
		values[key] = s
	}

	if ok, err := a.validWordDefaults(values); err != nil {
		slog.Error("load settings failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	} else if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidSetting)
		return
	}

	if err := a.settings.SetMany(values); err != nil {
		slog.Error("save settings failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	slog.Info("settings updated", "keys", len(values))
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// validWordDefaults reports whether the word range that results from
// applying updates on top of the stored settings has min <= max.
func (a *API) validWordDefaults(updates map[string]string) (bool, error) {
	_, minSet := updates[models.SettingDefaultWordMin]
	_, maxSet := updates[models.SettingDefaultWordMax]
	if !minSet && !maxSet {
		return true, nil
	}
	stored, err := a.settings.All()
	if err != nil {
		return false, err
	}
	merged := models.Settings{}
	for k, v := range stored {
		merged[k] = v
	}
	for k, v := range updates {
		merged[k] = v
	}
	base := models.DefaultGenerationDefaults()
	lo, _ := strconv.Atoi(merged.Get(models.SettingDefaultWordMin, strconv.Itoa(base.WordRangeMin)))
	hi, _ := strconv.Atoi(merged.Get(models.SettingDefaultWordMax, strconv.Itoa(base.WordRangeMax)))
	return lo <= hi, nil
}

// WordPressStatus reports whether the configured WordPress credentials work.
func (a *API) WordPressStatus(w http.ResponseWriter, r *http.Request) {
	if a.wordpress == nil || !a.wordpress.Configured() {
		writeJSON(w, http.StatusOK, map[string]any{"connected": false, "url": ""})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	connected := true
	if err := a.wordpress.Ping(ctx); err != nil {
		slog.Warn("wordpress connection check failed", "error", err)
		connected = false
	}
	writeJSON(w, http.StatusOK, map[string]any{"connected": connected, "url": a.wordpress.BaseURL()})
}

type providerResponse struct {
	Active    string   `json:"active"`
	Available []string `json:"available"`
}

// GetAIProvider returns the active model provider and the available ones.
func (a *API) GetAIProvider(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, providerResponse{
		Active:    a.providers.ActiveName(),
		Available: a.providers.Available(),
	})
}

// SetAIProvider switches the active model provider at runtime.
func (a *API) SetAIProvider(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Provider string `json:"provider"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	name := strings.TrimSpace(req.Provider)
	if err := a.providers.SetActive(name); err != nil {
		slog.Warn("failed to switch ai provider", "provider", name, "error", err)
		writeError(w, http.StatusBadRequest, msgProviderUnavailable)
		return
	}
	slog.Info("ai provider switched", "provider", name)
	a.GetAIProvider(w, r)
}
