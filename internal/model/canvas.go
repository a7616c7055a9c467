package model

import (
	"encoding/json"
	"slices"
)

// CanvasMeta is the canvas metadata stored in .mosaic/meta.json.
type CanvasMeta struct {
	ID          string   `json:"id"`
	VaultID     string   `json:"vault_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	Version     string   `json:"version"`
}

// NewCanvasMeta creates current-schema canvas metadata with both timestamps
// set to now.
func NewCanvasMeta(id, vaultID, name, description, now string) *CanvasMeta {
	return &CanvasMeta{
		ID:          id,
		VaultID:     vaultID,
		Name:        name,
		Description: description,
		Tags:        []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     SchemaVersion,
	}
}

// Touch advances the modification timestamp.
func (m *CanvasMeta) Touch(now string) { m.UpdatedAt = now }

// AddTag appends a tag if not already present. Touches on change.
func (m *CanvasMeta) AddTag(tag, now string) {
	if slices.Contains(m.Tags, tag) {
		return
	}
	m.Tags = append(m.Tags, tag)
	m.Touch(now)
}

// RemoveTag removes a tag if present. Touches on change.
func (m *CanvasMeta) RemoveTag(tag, now string) {
	i := slices.Index(m.Tags, tag)
	if i < 0 {
		return
	}
	m.Tags = slices.Delete(m.Tags, i, i+1)
	m.Touch(now)
}

func (m *CanvasMeta) UnmarshalJSON(b []byte) error {
	type alias CanvasMeta
	a := alias{Version: SchemaVersion}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	*m = CanvasMeta(a)
	return nil
}

// CanvasInfo is the composed canvas view returned to callers.
type CanvasInfo struct {
	ID          string   `json:"id"`
	VaultID     string   `json:"vault_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Path        string   `json:"path"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	Tags        []string `json:"tags"`
}

// CanvasInfoFromMeta builds a CanvasInfo from metadata plus the resolved path.
func CanvasInfoFromMeta(m *CanvasMeta, path string) *CanvasInfo {
	return &CanvasInfo{
		ID:          m.ID,
		VaultID:     m.VaultID,
		Name:        m.Name,
		Description: m.Description,
		Path:        path,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Tags:        m.Tags,
	}
}

// CanvasRef is a lightweight canvas reference for lists.
type CanvasRef struct {
	ID      string `json:"id"`
	VaultID string `json:"vault_id"`
	Name    string `json:"name"`
	Path    string `json:"path"`
}

// Ref returns the lightweight reference for this canvas.
func (i *CanvasInfo) Ref() CanvasRef {
	return CanvasRef{ID: i.ID, VaultID: i.VaultID, Name: i.Name, Path: i.Path}
}

// DefaultCanvasMode is the editing mode a canvas starts in.
const DefaultCanvasMode = "select"

// Viewport is the visible region of a canvas.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// CanvasUIState is the ephemeral per-canvas UI state stored in
// .mosaic/state.json. Not versioned; always safe to default when absent.
type CanvasUIState struct {
	Viewport      Viewport `json:"viewport"`
	SelectedNodes []string `json:"selected_nodes"`
	SelectedEdges []string `json:"selected_edges"`
	CanvasMode    string   `json:"canvas_mode"`
	UpdatedAt     string   `json:"updated_at"`
}

// DefaultCanvasUIState returns the state a fresh canvas starts with:
// origin viewport at zoom 1.0, empty selections, select mode.
func DefaultCanvasUIState() *CanvasUIState {
	return &CanvasUIState{
		Viewport:      Viewport{X: 0, Y: 0, Zoom: 1.0},
		SelectedNodes: []string{},
		SelectedEdges: []string{},
		CanvasMode:    DefaultCanvasMode,
	}
}

// Touch advances the modification timestamp.
func (s *CanvasUIState) Touch(now string) { s.UpdatedAt = now }

func (s *CanvasUIState) UnmarshalJSON(b []byte) error {
	type alias CanvasUIState
	a := alias(*DefaultCanvasUIState())
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*s = CanvasUIState(a)
	return nil
}
