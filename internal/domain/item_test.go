package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestItem_TableName(t *testing.T) {
	if got := (Item{}).TableName(); got != "items" {
		t.Fatalf("TableName: got %q want %q", got, "items")
	}
}

func TestItem_JSONShape(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	it := Item{ID: 7, Name: "Widget", CreatedAt: ts, UpdatedAt: ts}

	b, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	for _, key := range []string{`"id":7`, `"name":"Widget"`, `"created_at"`, `"updated_at"`} {
		if !strings.Contains(s, key) {
			t.Fatalf("JSON missing %s: %s", key, s)
		}
	}
}
