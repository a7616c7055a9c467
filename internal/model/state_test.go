package model

import (
	"encoding/json"
	"testing"
)

func TestAppStateSetLastOpened(t *testing.T) {
	now := "2025-03-01T09:00:00.000000Z"
	later := "2025-03-01T10:00:00.000000Z"
	s := NewAppState(now)

	if s.LastVaultID != nil || s.LastCanvasID != nil {
		t.Fatal("fresh state should have nil pointers")
	}

	s.SetLastOpened("v1", "c1", later)
	if s.LastVaultID == nil || *s.LastVaultID != "v1" {
		t.Errorf("LastVaultID = %v, want v1", s.LastVaultID)
	}
	if s.LastCanvasID == nil || *s.LastCanvasID != "c1" {
		t.Errorf("LastCanvasID = %v, want c1", s.LastCanvasID)
	}
	if s.UpdatedAt != later {
		t.Errorf("UpdatedAt = %q, want %q", s.UpdatedAt, later)
	}

	// Empty vault ID leaves the stored vault untouched.
	s.SetLastOpened("", "c2", later)
	if *s.LastVaultID != "v1" {
		t.Errorf("LastVaultID = %q, want v1 untouched", *s.LastVaultID)
	}
	if *s.LastCanvasID != "c2" {
		t.Errorf("LastCanvasID = %q, want c2", *s.LastCanvasID)
	}
}

func TestAppStateJSONNulls(t *testing.T) {
	s := NewAppState("2025-03-01T09:00:00.000000Z")

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatal(err)
	}
	if v, ok := doc["last_vault_id"]; !ok || v != nil {
		t.Errorf("last_vault_id = %v, want explicit null", v)
	}
	if doc["version"] != AppStateVersion {
		t.Errorf("version = %v, want %q", doc["version"], AppStateVersion)
	}
}

func TestAppStateUnmarshalDefaults(t *testing.T) {
	var s AppState
	if err := json.Unmarshal([]byte(`{"last_vault_id":"v1"}`), &s); err != nil {
		t.Fatal(err)
	}
	if s.Version != AppStateVersion {
		t.Errorf("Version = %q, want %q", s.Version, AppStateVersion)
	}
	if s.LastVaultID == nil || *s.LastVaultID != "v1" {
		t.Errorf("LastVaultID = %v, want v1", s.LastVaultID)
	}
	if s.LastCanvasID != nil {
		t.Errorf("LastCanvasID = %v, want nil", s.LastCanvasID)
	}
}
