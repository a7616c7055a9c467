// Package model defines the persisted records of the mosaic layer. All
// structs serialize to snake_case JSON; where the on-disk schema has
// non-zero defaults, UnmarshalJSON pre-fills them so absent fields read
// back as their documented values.
package model

import "encoding/json"

// SchemaVersion is the current vault/canvas/workspace schema version.
const SchemaVersion = "2.0.0"

// VaultMeta is the vault metadata stored in vault.json.
type VaultMeta struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	Version     string `json:"version"`
}

// NewVaultMeta creates current-schema vault metadata with both timestamps
// set to now.
func NewVaultMeta(id, name, description, now string) *VaultMeta {
	return &VaultMeta{
		ID:          id,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     SchemaVersion,
	}
}

// Touch advances the modification timestamp.
func (m *VaultMeta) Touch(now string) { m.UpdatedAt = now }

func (m *VaultMeta) UnmarshalJSON(b []byte) error {
	type alias VaultMeta
	a := alias{Version: SchemaVersion}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*m = VaultMeta(a)
	return nil
}

// VaultInfo is the composed vault view returned to callers.
type VaultInfo struct {
	ID          string `json:"id"`
	Path        string `json:"path"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	CanvasCount int    `json:"canvas_count"`
}

// VaultInfoFromMeta builds a VaultInfo from metadata plus resolved path and
// canvas count.
func VaultInfoFromMeta(m *VaultMeta, path string, canvasCount int) *VaultInfo {
	return &VaultInfo{
		ID:          m.ID,
		Path:        path,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CanvasCount: canvasCount,
	}
}

// VaultRef is a lightweight vault reference for lists.
type VaultRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Ref returns the lightweight reference for this vault.
func (i *VaultInfo) Ref() VaultRef {
	return VaultRef{ID: i.ID, Name: i.Name, Path: i.Path}
}
