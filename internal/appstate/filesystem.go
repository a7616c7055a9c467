// Package appstate implements the single-record "last opened" pointer used
// to restore the session on launch.
package appstate

import (
	"path/filepath"

	"mosaic-go/internal/fsx"
	"mosaic-go/internal/model"
	"mosaic-go/internal/mosaic"
)

// StateFileName is the app state file under the app data directory.
const StateFileName = "data.json"

// FilesystemStore persists the app state in <dataDir>/data.json.
type FilesystemStore struct {
	path  string
	clock mosaic.Clock
}

// NewFilesystemStore creates an app state store under dataDir.
func NewFilesystemStore(dataDir string, clock mosaic.Clock) *FilesystemStore {
	return &FilesystemStore{
		path:  filepath.Join(dataDir, StateFileName),
		clock: clock,
	}
}

// Load reads the state, returning a default record when the file is absent.
func (s *FilesystemStore) Load() (*model.AppState, error) {
	if !fsx.Exists(s.path) {
		return model.NewAppState(mosaic.Timestamp(s.clock.Now())), nil
	}
	var state model.AppState
	if err := fsx.ReadJSON(s.path, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Save overwrites the record, stamping updated_at.
func (s *FilesystemStore) Save(state *model.AppState) error {
	state.Touch(mosaic.Timestamp(s.clock.Now()))
	return fsx.WriteJSON(s.path, state)
}

// UpdateLastOpened overwrites only the IDs actually supplied; an empty
// string leaves the stored value untouched.
func (s *FilesystemStore) UpdateLastOpened(vaultID, canvasID string) error {
	state, err := s.Load()
	if err != nil {
		return err
	}
	state.SetLastOpened(vaultID, canvasID, mosaic.Timestamp(s.clock.Now()))
	return fsx.WriteJSON(s.path, state)
}

// Compile-time check that FilesystemStore implements mosaic.StateStore.
var _ mosaic.StateStore = (*FilesystemStore)(nil)
