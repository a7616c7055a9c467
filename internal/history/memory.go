package history

import (
	"sync"

	"mosaic-go/internal/model"
	"mosaic-go/internal/mosaic"
)

// MemoryStore keeps the history ledger in memory. Used by tests and by
// sessions that should leave no trace on disk.
type MemoryStore struct {
	mu    sync.Mutex
	h     *model.AppHistory
	clock mosaic.Clock
}

// NewMemoryStore creates an in-memory history store.
func NewMemoryStore(maxItems int, clock mosaic.Clock) *MemoryStore {
	return &MemoryStore{h: model.NewAppHistory(maxItems), clock: clock}
}

// Load returns a copy of the ledger.
func (s *MemoryStore) Load() (*model.AppHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// Save replaces the ledger.
func (s *MemoryStore) Save(h *model.AppHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h = h
	return nil
}

func (s *MemoryStore) TrackVault(id, name, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h.TrackVault(id, name, path, mosaic.Timestamp(s.clock.Now()))
	return nil
}

func (s *MemoryStore) TrackCanvas(id, vaultID, name, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h.TrackCanvas(id, vaultID, name, path, mosaic.Timestamp(s.clock.Now()))
	return nil
}

func (s *MemoryStore) RemoveVault(vaultID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h.RemoveVault(vaultID)
	return nil
}

func (s *MemoryStore) RemoveCanvas(canvasID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h.RemoveCanvas(canvasID)
	return nil
}

func (s *MemoryStore) RecentVaults(limit int) ([]model.VaultHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.RecentVaults(limit), nil
}

func (s *MemoryStore) RecentCanvases(vaultID string, limit int) ([]model.CanvasHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.RecentCanvases(vaultID, limit), nil
}

func (s *MemoryStore) FindVault(vaultID string) (*model.VaultHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.h.FindVault(vaultID); e != nil {
		out := *e
		return &out, nil
	}
	return nil, nil
}

func (s *MemoryStore) FindCanvas(canvasID string) (*model.CanvasHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.h.FindCanvas(canvasID); e != nil {
		out := *e
		return &out, nil
	}
	return nil, nil
}

func (s *MemoryStore) snapshot() *model.AppHistory {
	out := &model.AppHistory{
		Vaults:   make([]model.VaultHistoryEntry, len(s.h.Vaults)),
		Canvases: make([]model.CanvasHistoryEntry, len(s.h.Canvases)),
		MaxItems: s.h.MaxItems,
	}
	copy(out.Vaults, s.h.Vaults)
	copy(out.Canvases, s.h.Canvases)
	return out
}

// Compile-time check that MemoryStore implements mosaic.HistoryStore.
var _ mosaic.HistoryStore = (*MemoryStore)(nil)
