// Package vault implements the filesystem-backed vault entity store. A
// directory is a vault iff its vault.json parses; identity lives in the
// metadata file, never in the path.
package vault

import (
	"fmt"

	"mosaic-go/internal/fsx"
	"mosaic-go/internal/model"
	"mosaic-go/internal/mosaic"
)

// Store reads and writes vault metadata under caller-supplied roots.
type Store struct {
	clock mosaic.Clock
	idgen mosaic.IDGenerator
}

// NewStore creates a vault store.
func NewStore(clock mosaic.Clock, idgen mosaic.IDGenerator) *Store {
	return &Store{clock: clock, idgen: idgen}
}

// Create initializes a new vault at root: full directory tree, fresh UUID,
// metadata with created_at = updated_at = now. Fails with ErrAlreadyExists
// when a current-schema metadata file is already present. The default
// canvas is composed by the service layer, not here.
func (s *Store) Create(root, name, description string) (*model.VaultInfo, error) {
	paths := mosaic.NewVaultPaths(root)
	if paths.IsValid() {
		return nil, fmt.Errorf("%w: vault at %s", mosaic.ErrAlreadyExists, root)
	}

	if err := paths.CreateAll(); err != nil {
		return nil, err
	}

	now := mosaic.Timestamp(s.clock.Now())
	meta := model.NewVaultMeta(s.idgen.New(), name, description, now)
	if err := fsx.WriteJSON(paths.VaultJSON, meta); err != nil {
		return nil, err
	}

	return model.VaultInfoFromMeta(meta, root, 0), nil
}

// Open reads the vault at root. Fails with ErrVaultNotFound when no
// current-schema metadata file exists; it never migrates. The canvas count
// is the number of immediate subdirectories of the canvases folder, without
// validating each one.
func (s *Store) Open(root string) (*model.VaultInfo, error) {
	paths := mosaic.NewVaultPaths(root)
	if !paths.IsValid() {
		return nil, fmt.Errorf("%w: %s", mosaic.ErrVaultNotFound, root)
	}

	var meta model.VaultMeta
	if err := fsx.ReadJSON(paths.VaultJSON, &meta); err != nil {
		return nil, err
	}

	return model.VaultInfoFromMeta(&meta, root, s.countCanvases(paths.Canvases)), nil
}

// Rename updates the vault's display name and updated_at. The directory is
// left in place; vault folder names are the caller's concern.
func (s *Store) Rename(root, newName string) (*model.VaultInfo, error) {
	return s.update(root, func(meta *model.VaultMeta) {
		meta.Name = newName
	})
}

// UpdateDescription updates the vault's description and updated_at.
func (s *Store) UpdateDescription(root, description string) (*model.VaultInfo, error) {
	return s.update(root, func(meta *model.VaultMeta) {
		meta.Description = description
	})
}

// IsValid reports whether the current-schema metadata file exists at root.
func (s *Store) IsValid(root string) bool {
	return mosaic.NewVaultPaths(root).IsValid()
}

// GetInfo is like Open but returns (nil, nil) when root is not a valid
// vault.
func (s *Store) GetInfo(root string) (*model.VaultInfo, error) {
	if !s.IsValid(root) {
		return nil, nil
	}
	return s.Open(root)
}

// VaultID returns the vault's ID, or "" when root is not a valid vault.
func (s *Store) VaultID(root string) (string, error) {
	paths := mosaic.NewVaultPaths(root)
	if !paths.IsValid() {
		return "", nil
	}
	var meta model.VaultMeta
	if err := fsx.ReadJSON(paths.VaultJSON, &meta); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func (s *Store) update(root string, mutate func(*model.VaultMeta)) (*model.VaultInfo, error) {
	paths := mosaic.NewVaultPaths(root)
	if !paths.IsValid() {
		return nil, fmt.Errorf("%w: %s", mosaic.ErrVaultNotFound, root)
	}

	var meta model.VaultMeta
	if err := fsx.ReadJSON(paths.VaultJSON, &meta); err != nil {
		return nil, err
	}

	mutate(&meta)
	meta.Touch(mosaic.Timestamp(s.clock.Now()))

	if err := fsx.WriteJSON(paths.VaultJSON, &meta); err != nil {
		return nil, err
	}

	return model.VaultInfoFromMeta(&meta, root, s.countCanvases(paths.Canvases)), nil
}

func (s *Store) countCanvases(canvasesDir string) int {
	dirs, err := fsx.ListSubdirs(canvasesDir)
	if err != nil {
		return 0
	}
	return len(dirs)
}

// Compile-time check that Store implements mosaic.VaultStore.
var _ mosaic.VaultStore = (*Store)(nil)
