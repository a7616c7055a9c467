package mosaic

import (
	"fmt"

	"mosaic-go/internal/model"
)

// DefaultCanvasName is the name given to the canvas created inside every
// new vault.
const DefaultCanvasName = "Untitled"

// Service is the orchestration layer coordinating the entity stores with
// the history index and app state, the way the GUI command layer drives the
// core. History and app state are updated as side effects of successful
// entity operations; they are not transactionally linked to the entity
// files.
type Service struct {
	vaults    VaultStore
	canvases  CanvasStore
	workspace WorkspaceStore
	history   HistoryStore
	state     StateStore
	migrator  Migrator
	logger    Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(vaults VaultStore, canvases CanvasStore, workspace WorkspaceStore, history HistoryStore, state StateStore, migrator Migrator, logger Logger) *Service {
	return &Service{
		vaults:    vaults,
		canvases:  canvases,
		workspace: workspace,
		history:   history,
		state:     state,
		migrator:  migrator,
		logger:    logger,
	}
}

// CreateVault creates a vault at root with one default canvas inside it,
// tracks it in history, and records it as the last opened vault.
func (s *Service) CreateVault(root, name, description string) (*model.VaultInfo, error) {
	info, err := s.vaults.Create(root, name, description)
	if err != nil {
		return nil, err
	}

	paths := NewVaultPaths(root)
	if _, err := s.canvases.Create(paths.Canvases, info.ID, DefaultCanvasName, ""); err != nil {
		return nil, fmt.Errorf("creating default canvas: %w", err)
	}
	info.CanvasCount = 1

	if err := s.trackVault(info); err != nil {
		return nil, err
	}

	s.logger.Info("vault created", "id", info.ID, "path", info.Path)
	return info, nil
}

// OpenVault opens the vault at root, tracks it in history, and records it
// as the last opened vault. It never migrates; see MigrateVault.
func (s *Service) OpenVault(root string) (*model.VaultInfo, error) {
	info, err := s.vaults.Open(root)
	if err != nil {
		return nil, err
	}
	if err := s.trackVault(info); err != nil {
		return nil, err
	}
	s.logger.Debug("vault opened", "id", info.ID, "path", info.Path)
	return info, nil
}

// RenameVault updates the vault's display name. The directory itself is
// not renamed.
func (s *Service) RenameVault(root, newName string) (*model.VaultInfo, error) {
	info, err := s.vaults.Rename(root, newName)
	if err != nil {
		return nil, err
	}
	s.logger.Info("vault renamed", "id", info.ID, "name", newName)
	return info, nil
}

// UpdateVaultDescription updates the vault's description.
func (s *Service) UpdateVaultDescription(root, description string) (*model.VaultInfo, error) {
	return s.vaults.UpdateDescription(root, description)
}

// IsValidVault reports whether root holds a current-schema vault.
func (s *Service) IsValidVault(root string) bool {
	return s.vaults.IsValid(root)
}

// GetVaultInfo returns the vault info, or nil when root is not a valid
// vault.
func (s *Service) GetVaultInfo(root string) (*model.VaultInfo, error) {
	return s.vaults.GetInfo(root)
}

// MigrateVault explicitly upgrades a legacy vault metadata file in place.
func (s *Service) MigrateVault(root string) (*model.VaultInfo, error) {
	info, err := s.migrator.MigrateVault(root)
	if err != nil {
		return nil, err
	}
	s.logger.Info("vault migrated", "id", info.ID, "path", info.Path)
	return info, nil
}

// VaultNeedsMigration reports whether the vault metadata at root is still
// in a legacy format.
func (s *Service) VaultNeedsMigration(root string) bool {
	return s.migrator.VaultNeedsMigration(root)
}

// CreateCanvas creates a canvas inside the vault at vaultRoot, tracks it in
// history, and records it as the last opened canvas.
func (s *Service) CreateCanvas(vaultRoot, name, description string) (*model.CanvasInfo, error) {
	vaultID, err := s.vaults.VaultID(vaultRoot)
	if err != nil {
		return nil, err
	}
	if vaultID == "" {
		return nil, fmt.Errorf("%w: %s", ErrVaultNotFound, vaultRoot)
	}

	paths := NewVaultPaths(vaultRoot)
	info, err := s.canvases.Create(paths.Canvases, vaultID, name, description)
	if err != nil {
		return nil, err
	}
	if err := s.trackCanvas(info); err != nil {
		return nil, err
	}
	s.logger.Info("canvas created", "id", info.ID, "path", info.Path)
	return info, nil
}

// OpenCanvas opens the canvas at root (migrating a legacy canvas in place
// first), tracks it in history, and records it as the last opened canvas.
func (s *Service) OpenCanvas(root string) (*model.CanvasInfo, error) {
	info, err := s.canvases.Open(root)
	if err != nil {
		return nil, err
	}
	if err := s.trackCanvas(info); err != nil {
		return nil, err
	}
	s.logger.Debug("canvas opened", "id", info.ID, "path", info.Path)
	return info, nil
}

// ListCanvases lists the canvases of the vault at vaultRoot, most recently
// updated first. Unreadable canvases are skipped.
func (s *Service) ListCanvases(vaultRoot string) ([]*model.CanvasInfo, error) {
	paths := NewVaultPaths(vaultRoot)
	return s.canvases.List(paths.Canvases)
}

// RenameCanvas updates the canvas name and best-effort renames its folder.
func (s *Service) RenameCanvas(root, newName string) (*model.CanvasInfo, error) {
	info, err := s.canvases.Rename(root, newName)
	if err != nil {
		return nil, err
	}
	s.logger.Info("canvas renamed", "id", info.ID, "name", newName, "path", info.Path)
	return info, nil
}

// DeleteCanvas removes the canvas directory tree and, when the canvas ID
// could be recovered, its history entry.
func (s *Service) DeleteCanvas(root string) error {
	id, err := s.canvases.Delete(root)
	if err != nil {
		return err
	}
	if id != "" {
		if err := s.history.RemoveCanvas(id); err != nil {
			return fmt.Errorf("removing canvas from history: %w", err)
		}
	}
	s.logger.Info("canvas deleted", "id", id, "path", root)
	return nil
}

// UpdateCanvasTags replaces the canvas tag set.
func (s *Service) UpdateCanvasTags(root string, tags []string) (*model.CanvasInfo, error) {
	return s.canvases.UpdateTags(root, tags)
}

// AddCanvasTag appends one tag to the canvas.
func (s *Service) AddCanvasTag(root, tag string) (*model.CanvasInfo, error) {
	return s.canvases.AddTag(root, tag)
}

// RemoveCanvasTag removes one tag from the canvas.
func (s *Service) RemoveCanvasTag(root, tag string) (*model.CanvasInfo, error) {
	return s.canvases.RemoveTag(root, tag)
}

// UpdateCanvasDescription updates the canvas description.
func (s *Service) UpdateCanvasDescription(root, description string) (*model.CanvasInfo, error) {
	return s.canvases.UpdateDescription(root, description)
}

// LoadCanvasState loads the per-canvas UI state, defaulting when absent.
func (s *Service) LoadCanvasState(root string) (*model.CanvasUIState, error) {
	return s.canvases.LoadState(root)
}

// SaveCanvasState overwrites the per-canvas UI state.
func (s *Service) SaveCanvasState(root string, state *model.CanvasUIState) error {
	return s.canvases.SaveState(root, state)
}

// Workspace returns the workspace document store.
func (s *Service) Workspace() WorkspaceStore { return s.workspace }

// RecentVaults returns up to limit history entries, most recent first.
func (s *Service) RecentVaults(limit int) ([]model.VaultHistoryEntry, error) {
	return s.history.RecentVaults(limit)
}

// RecentCanvases returns up to limit history entries, most recent first,
// optionally filtered by owning vault.
func (s *Service) RecentCanvases(vaultID string, limit int) ([]model.CanvasHistoryEntry, error) {
	return s.history.RecentCanvases(vaultID, limit)
}

// RemoveVaultFromHistory removes a vault entry and cascades to its canvas
// entries. The vault directory itself is the caller's to remove.
func (s *Service) RemoveVaultFromHistory(vaultID string) error {
	return s.history.RemoveVault(vaultID)
}

// AppState returns the persisted session pointer, defaulted when absent.
func (s *Service) AppState() (*model.AppState, error) {
	return s.state.Load()
}

func (s *Service) trackVault(info *model.VaultInfo) error {
	if err := s.history.TrackVault(info.ID, info.Name, info.Path); err != nil {
		return fmt.Errorf("tracking vault in history: %w", err)
	}
	if err := s.state.UpdateLastOpened(info.ID, ""); err != nil {
		return fmt.Errorf("updating app state: %w", err)
	}
	return nil
}

func (s *Service) trackCanvas(info *model.CanvasInfo) error {
	if err := s.history.TrackCanvas(info.ID, info.VaultID, info.Name, info.Path); err != nil {
		return fmt.Errorf("tracking canvas in history: %w", err)
	}
	if err := s.state.UpdateLastOpened(info.VaultID, info.ID); err != nil {
		return fmt.Errorf("updating app state: %w", err)
	}
	return nil
}
