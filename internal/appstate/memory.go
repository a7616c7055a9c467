package appstate

import (
	"sync"

	"mosaic-go/internal/model"
	"mosaic-go/internal/mosaic"
)

// MemoryStore keeps the app state in memory. Used by tests and by sessions
// that should leave no trace on disk.
type MemoryStore struct {
	mu    sync.Mutex
	state *model.AppState
	clock mosaic.Clock
}

// NewMemoryStore creates an in-memory app state store.
func NewMemoryStore(clock mosaic.Clock) *MemoryStore {
	return &MemoryStore{
		state: model.NewAppState(mosaic.Timestamp(clock.Now())),
		clock: clock,
	}
}

// Load returns a copy of the record.
func (s *MemoryStore) Load() (*model.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := *s.state
	return &out, nil
}

// Save replaces the record, stamping updated_at.
func (s *MemoryStore) Save(state *model.AppState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state.Touch(mosaic.Timestamp(s.clock.Now()))
	copied := *state
	s.state = &copied
	return nil
}

// UpdateLastOpened overwrites only the IDs actually supplied.
func (s *MemoryStore) UpdateLastOpened(vaultID, canvasID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetLastOpened(vaultID, canvasID, mosaic.Timestamp(s.clock.Now()))
	return nil
}

// Compile-time check that MemoryStore implements mosaic.StateStore.
var _ mosaic.StateStore = (*MemoryStore)(nil)
