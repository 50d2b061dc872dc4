// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"seowriter/internal/models"
)

func TestSettingStore(t *testing.T) {
	db := testDB(t)
	s := NewSettingStore(db)

	keys := []string{models.SettingDefaultWordMin, models.SettingDefaultWordMax, models.SettingPromptAddendum, "test_only_key"}
	saved := map[string]string{}
	for _, k := range keys {
		var v string
		if err := db.QueryRow(`SELECT value FROM settings WHERE key = $1`, k).Scan(&v); err == nil {
			saved[k] = v
		}
	}
	t.Cleanup(func() {
		for _, k := range keys {
			if v, ok := saved[k]; ok {
				s.Set(k, v)
			} else {
				db.Exec(`DELETE FROM settings WHERE key = $1`, k)
			}
		}
	})

	if got, err := s.Get("test_only_key", "fallback"); err != nil || got != "fallback" {
		t.Errorf("Get missing: got %q, %v", got, err)
	}
	if err := s.Set("test_only_key", "value"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := s.Get("test_only_key", "fallback"); got != "value" {
		t.Errorf("Get after Set: got %q", got)
	}

	err := s.SetMany(map[string]string{
		models.SettingDefaultWordMin: "500",
		models.SettingDefaultWordMax: "900",
		models.SettingPromptAddendum: "כתוב בטון אישי",
	})
	if err != nil {
		t.Fatalf("SetMany: %v", err)
	}

	all, err := s.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if all["test_only_key"] != "value" {
		t.Errorf("All missing key: %v", all)
	}

	d, err := s.Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	if d.WordRangeMin != 500 || d.WordRangeMax != 900 || d.PromptAddendum != "כתוב בטון אישי" {
		t.Errorf("Defaults: got %+v", d)
	}
}
