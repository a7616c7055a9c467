package model

import (
	"encoding/json"
	"sort"
)

// DefaultMaxHistoryItems caps each history collection.
const DefaultMaxHistoryItems = 50

// VaultHistoryEntry is one vault in the most-recently-used ledger.
type VaultHistoryEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Path       string `json:"path"`
	LastOpened string `json:"last_opened"`
	OpenCount  int    `json:"open_count"`
	AddedAt    string `json:"added_at"`
}

// CanvasHistoryEntry is one canvas in the most-recently-used ledger.
type CanvasHistoryEntry struct {
	ID         string `json:"id"`
	VaultID    string `json:"vault_id"`
	Name       string `json:"name"`
	Path       string `json:"path"`
	LastOpened string `json:"last_opened"`
	OpenCount  int    `json:"open_count"`
	AddedAt    string `json:"added_at"`
}

// AppHistory is the capped MRU index stored in history.json. It references
// entity IDs but is not transactionally linked to the entity files.
type AppHistory struct {
	Vaults   []VaultHistoryEntry  `json:"vaults"`
	Canvases []CanvasHistoryEntry `json:"canvases"`
	MaxItems int                  `json:"max_items"`
}

// NewAppHistory returns an empty history with the given cap. A cap of zero
// or less falls back to DefaultMaxHistoryItems.
func NewAppHistory(maxItems int) *AppHistory {
	if maxItems <= 0 {
		maxItems = DefaultMaxHistoryItems
	}
	return &AppHistory{
		Vaults:   []VaultHistoryEntry{},
		Canvases: []CanvasHistoryEntry{},
		MaxItems: maxItems,
	}
}

func (h *AppHistory) UnmarshalJSON(b []byte) error {
	type alias AppHistory
	a := alias{MaxItems: DefaultMaxHistoryItems}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.Vaults == nil {
		a.Vaults = []VaultHistoryEntry{}
	}
	if a.Canvases == nil {
		a.Canvases = []CanvasHistoryEntry{}
	}
	*h = AppHistory(a)
	return nil
}

// TrackVault upserts a vault entry by ID: an existing entry has its mutable
// fields refreshed and its open count incremented, otherwise a new entry is
// appended with open count 1. The collection is then re-sorted by last
// opened descending and truncated to the cap.
func (h *AppHistory) TrackVault(id, name, path, now string) {
	found := false
	for i := range h.Vaults {
		if h.Vaults[i].ID == id {
			h.Vaults[i].Name = name
			h.Vaults[i].Path = path
			h.Vaults[i].LastOpened = now
			h.Vaults[i].OpenCount++
			found = true
			break
		}
	}
	if !found {
		h.Vaults = append(h.Vaults, VaultHistoryEntry{
			ID:         id,
			Name:       name,
			Path:       path,
			LastOpened: now,
			OpenCount:  1,
			AddedAt:    now,
		})
	}

	sort.SliceStable(h.Vaults, func(i, j int) bool {
		return h.Vaults[i].LastOpened > h.Vaults[j].LastOpened
	})
	if len(h.Vaults) > h.MaxItems {
		h.Vaults = h.Vaults[:h.MaxItems]
	}
}

// TrackCanvas upserts a canvas entry by ID with the same MRU semantics as
// TrackVault.
func (h *AppHistory) TrackCanvas(id, vaultID, name, path, now string) {
	found := false
	for i := range h.Canvases {
		if h.Canvases[i].ID == id {
			h.Canvases[i].Name = name
			h.Canvases[i].Path = path
			h.Canvases[i].LastOpened = now
			h.Canvases[i].OpenCount++
			found = true
			break
		}
	}
	if !found {
		h.Canvases = append(h.Canvases, CanvasHistoryEntry{
			ID:         id,
			VaultID:    vaultID,
			Name:       name,
			Path:       path,
			LastOpened: now,
			OpenCount:  1,
			AddedAt:    now,
		})
	}

	sort.SliceStable(h.Canvases, func(i, j int) bool {
		return h.Canvases[i].LastOpened > h.Canvases[j].LastOpened
	})
	if len(h.Canvases) > h.MaxItems {
		h.Canvases = h.Canvases[:h.MaxItems]
	}
}

// RemoveVault removes the vault entry and cascades to every canvas entry
// owned by it.
func (h *AppHistory) RemoveVault(vaultID string) {
	vaults := h.Vaults[:0]
	for _, v := range h.Vaults {
		if v.ID != vaultID {
			vaults = append(vaults, v)
		}
	}
	h.Vaults = vaults

	canvases := h.Canvases[:0]
	for _, c := range h.Canvases {
		if c.VaultID != vaultID {
			canvases = append(canvases, c)
		}
	}
	h.Canvases = canvases
}

// RemoveCanvas removes only that canvas entry.
func (h *AppHistory) RemoveCanvas(canvasID string) {
	canvases := h.Canvases[:0]
	for _, c := range h.Canvases {
		if c.ID != canvasID {
			canvases = append(canvases, c)
		}
	}
	h.Canvases = canvases
}

// RecentVaults returns up to limit entries, most recently opened first.
// A limit of zero or less yields no entries.
func (h *AppHistory) RecentVaults(limit int) []VaultHistoryEntry {
	if limit < 0 {
		limit = 0
	}
	if limit > len(h.Vaults) {
		limit = len(h.Vaults)
	}
	out := make([]VaultHistoryEntry, limit)
	copy(out, h.Vaults[:limit])
	return out
}

// RecentCanvases returns up to limit entries, most recently opened first,
// optionally filtered by owning vault (empty vaultID means no filter).
// A limit of zero or less yields no entries.
func (h *AppHistory) RecentCanvases(vaultID string, limit int) []CanvasHistoryEntry {
	out := []CanvasHistoryEntry{}
	if limit <= 0 {
		return out
	}
	for _, c := range h.Canvases {
		if vaultID != "" && c.VaultID != vaultID {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}

// FindVault returns the vault entry with the given ID, or nil.
func (h *AppHistory) FindVault(vaultID string) *VaultHistoryEntry {
	for i := range h.Vaults {
		if h.Vaults[i].ID == vaultID {
			return &h.Vaults[i]
		}
	}
	return nil
}

// FindCanvas returns the canvas entry with the given ID, or nil.
func (h *AppHistory) FindCanvas(canvasID string) *CanvasHistoryEntry {
	for i := range h.Canvases {
		if h.Canvases[i].ID == canvasID {
			return &h.Canvases[i]
		}
	}
	return nil
}
