package handlers

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValidWordRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		want     bool
	}{
		{"both unset", 0, 0, true},
		{"only min", 500, 0, true},
		{"only max", 0, 900, true},
		{"ordered", 700, 1000, true},
		{"equal", 800, 800, true},
		{"inverted", 1000, 700, false},
		{"negative", -1, 700, false},
		{"above bound", 700, 10_001, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validWordRange(tt.min, tt.max); got != tt.want {
				t.Errorf("validWordRange(%d, %d) = %v, want %v", tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestValidList(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  bool
	}{
		{"nil", nil, true},
		{"hebrew keywords", []string{"קידום אתרים", "שיווק"}, true},
		{"too many items", make([]string, maxListItems+1), false},
		{"item too long", []string{strings.Repeat("א", maxListItemLen+1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validList(tt.items); got != tt.want {
				t.Errorf("validList = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTooLongCountsRunes(t *testing.T) {
	// 300 Hebrew letters are 600 bytes but still within the title limit.
	if tooLong(strings.Repeat("ש", maxTitleLen), maxTitleLen) {
		t.Error("title at the limit should be accepted")
	}
	if !tooLong(strings.Repeat("ש", maxTitleLen+1), maxTitleLen) {
		t.Error("title above the limit should be rejected")
	}
}

func TestValidColor(t *testing.T) {
	for _, c := range []string{"", "#fff", "#6366F1"} {
		if !validColor(c) {
			t.Errorf("validColor(%q) = false", c)
		}
	}
	for _, c := range []string{"red", "#ggg", "6366f1", "#12345"} {
		if validColor(c) {
			t.Errorf("validColor(%q) = true", c)
		}
	}
}

func TestCleanListAndOptionalText(t *testing.T) {
	got := cleanList([]string{" seo ", "", "  ", "תוכן"})
	if len(got) != 2 || got[0] != "seo" || got[1] != "תוכן" {
		t.Errorf("cleanList = %q", got)
	}
	if optionalText("   ") != nil {
		t.Error("blank text should be nil")
	}
	if p := optionalText(" meta "); p == nil || *p != "meta" {
		t.Errorf("optionalText = %v", p)
	}
}

func TestNullableID(t *testing.T) {
	var req struct {
		CategoryID nullableID `json:"categoryId"`
		TopicID    nullableID `json:"topicId"`
	}

	t.Run("absent fields are unset", func(t *testing.T) {
		req.CategoryID, req.TopicID = nullableID{}, nullableID{}
		if err := json.Unmarshal([]byte(`{}`), &req); err != nil {
			t.Fatal(err)
		}
		if req.CategoryID.Set || req.TopicID.Set {
			t.Error("absent fields should not be marked set")
		}
	})

	t.Run("null and empty clear", func(t *testing.T) {
		if err := json.Unmarshal([]byte(`{"categoryId":null,"topicId":""}`), &req); err != nil {
			t.Fatal(err)
		}
		if !req.CategoryID.Set || req.CategoryID.ID != nil {
			t.Errorf("null: %+v", req.CategoryID)
		}
		if !req.TopicID.Set || req.TopicID.ID != nil {
			t.Errorf("empty: %+v", req.TopicID)
		}
	})

	t.Run("uuid is parsed", func(t *testing.T) {
		const id = "0b0c6a43-5f0e-4c5b-9a7e-1f2d3c4b5a69"
		if err := json.Unmarshal([]byte(`{"categoryId":"`+id+`"}`), &req); err != nil {
			t.Fatal(err)
		}
		if req.CategoryID.ID == nil || req.CategoryID.ID.String() != id {
			t.Errorf("got %+v", req.CategoryID)
		}
	})

	t.Run("malformed id fails", func(t *testing.T) {
		if err := json.Unmarshal([]byte(`{"categoryId":"nope"}`), &req); err == nil {
			t.Error("expected error")
		}
	})
}
