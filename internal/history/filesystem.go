// Package history implements the most-recently-used ledger of vault and
// canvas entries. The filesystem store keeps the whole ledger in one JSON
// file and rewrites it on every change; the memory store backs tests and
// scratch sessions.
package history

import (
	"path/filepath"

	"mosaic-go/internal/fsx"
	"mosaic-go/internal/model"
	"mosaic-go/internal/mosaic"
)

// HistoryFileName is the ledger file under the app data directory.
const HistoryFileName = "history.json"

// FilesystemStore persists the history ledger in <dataDir>/history.json.
type FilesystemStore struct {
	path     string
	maxItems int
	clock    mosaic.Clock
}

// NewFilesystemStore creates a history store under dataDir. maxItems caps
// each collection for newly created ledgers; an existing ledger keeps its
// persisted cap.
func NewFilesystemStore(dataDir string, maxItems int, clock mosaic.Clock) *FilesystemStore {
	return &FilesystemStore{
		path:     filepath.Join(dataDir, HistoryFileName),
		maxItems: maxItems,
		clock:    clock,
	}
}

// Load reads the ledger, returning an empty one when the file is absent.
func (s *FilesystemStore) Load() (*model.AppHistory, error) {
	if !fsx.Exists(s.path) {
		return model.NewAppHistory(s.maxItems), nil
	}
	var h model.AppHistory
	if err := fsx.ReadJSON(s.path, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Save rewrites the whole ledger.
func (s *FilesystemStore) Save(h *model.AppHistory) error {
	return fsx.WriteJSON(s.path, h)
}

// TrackVault upserts a vault entry and persists the ledger.
func (s *FilesystemStore) TrackVault(id, name, path string) error {
	return s.mutate(func(h *model.AppHistory) {
		h.TrackVault(id, name, path, mosaic.Timestamp(s.clock.Now()))
	})
}

// TrackCanvas upserts a canvas entry and persists the ledger.
func (s *FilesystemStore) TrackCanvas(id, vaultID, name, path string) error {
	return s.mutate(func(h *model.AppHistory) {
		h.TrackCanvas(id, vaultID, name, path, mosaic.Timestamp(s.clock.Now()))
	})
}

// RemoveVault removes a vault entry and its canvas entries.
func (s *FilesystemStore) RemoveVault(vaultID string) error {
	return s.mutate(func(h *model.AppHistory) {
		h.RemoveVault(vaultID)
	})
}

// RemoveCanvas removes a canvas entry.
func (s *FilesystemStore) RemoveCanvas(canvasID string) error {
	return s.mutate(func(h *model.AppHistory) {
		h.RemoveCanvas(canvasID)
	})
}

// RecentVaults returns up to limit entries, most recent first.
func (s *FilesystemStore) RecentVaults(limit int) ([]model.VaultHistoryEntry, error) {
	h, err := s.Load()
	if err != nil {
		return nil, err
	}
	return h.RecentVaults(limit), nil
}

// RecentCanvases returns up to limit entries, optionally vault-filtered.
func (s *FilesystemStore) RecentCanvases(vaultID string, limit int) ([]model.CanvasHistoryEntry, error) {
	h, err := s.Load()
	if err != nil {
		return nil, err
	}
	return h.RecentCanvases(vaultID, limit), nil
}

// FindVault returns the vault entry with the given ID, or nil.
func (s *FilesystemStore) FindVault(vaultID string) (*model.VaultHistoryEntry, error) {
	h, err := s.Load()
	if err != nil {
		return nil, err
	}
	return h.FindVault(vaultID), nil
}

// FindCanvas returns the canvas entry with the given ID, or nil.
func (s *FilesystemStore) FindCanvas(canvasID string) (*model.CanvasHistoryEntry, error) {
	h, err := s.Load()
	if err != nil {
		return nil, err
	}
	return h.FindCanvas(canvasID), nil
}

func (s *FilesystemStore) mutate(apply func(*model.AppHistory)) error {
	h, err := s.Load()
	if err != nil {
		return err
	}
	apply(h)
	return s.Save(h)
}

// Compile-time check that FilesystemStore implements mosaic.HistoryStore.
var _ mosaic.HistoryStore = (*FilesystemStore)(nil)
