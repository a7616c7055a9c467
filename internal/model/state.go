package model

import "encoding/json"

// AppStateVersion is the current app-state schema version.
const AppStateVersion = "1.0.0"

// AppState is the single-record "last opened" pointer stored in data.json,
// used to restore the session on launch.
type AppState struct {
	LastVaultID  *string `json:"last_vault_id"`
	LastCanvasID *string `json:"last_canvas_id"`
	UpdatedAt    string  `json:"updated_at"`
	Version      string  `json:"version"`
}

// NewAppState returns an empty state at the current version.
func NewAppState(now string) *AppState {
	return &AppState{UpdatedAt: now, Version: AppStateVersion}
}

func (s *AppState) UnmarshalJSON(b []byte) error {
	type alias AppState
	a := alias{Version: AppStateVersion}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*s = AppState(a)
	return nil
}

// Touch advances the modification timestamp.
func (s *AppState) Touch(now string) { s.UpdatedAt = now }

// SetLastOpened overwrites only the IDs actually supplied; an empty string
// leaves the stored value untouched.
func (s *AppState) SetLastOpened(vaultID, canvasID, now string) {
	if vaultID != "" {
		v := vaultID
		s.LastVaultID = &v
	}
	if canvasID != "" {
		c := canvasID
		s.LastCanvasID = &c
	}
	s.Touch(now)
}

// SetLastVault records the last opened vault.
func (s *AppState) SetLastVault(vaultID, now string) {
	s.SetLastOpened(vaultID, "", now)
}

// SetLastCanvas records the last opened canvas.
func (s *AppState) SetLastCanvas(canvasID, now string) {
	s.SetLastOpened("", canvasID, now)
}
