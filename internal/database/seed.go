// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"

	"seowriter/internal/models"
)

// Seed writes the built-in generation defaults into the settings table.
// Existing keys are left untouched so values edited by the user survive
// restarts.
func Seed(db *sql.DB) error {
	d := models.DefaultGenerationDefaults()
	defaults := map[string]string{
		models.SettingDefaultWordMin: strconv.Itoa(d.WordRangeMin),
		models.SettingDefaultWordMax: strconv.Itoa(d.WordRangeMax),
		models.SettingPromptAddendum: d.PromptAddendum,
	}

	inserted := 0
	for key, value := range defaults {
		res, err := db.Exec(`
			INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO NOTHING`, key, value)
		if err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if inserted == 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}
	slog.Info("database seeded with default settings", "count", inserted)
	return nil
}
