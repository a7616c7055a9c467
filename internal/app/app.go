// Package app is the application layer between the CLI and the mosaic
// service: it constructs all dependencies from config, exposes operations
// that accept raw string paths, and owns the log file lifecycle.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mosaic-go/internal/appstate"
	"mosaic-go/internal/canvas"
	"mosaic-go/internal/config"
	"mosaic-go/internal/history"
	"mosaic-go/internal/migrate"
	"mosaic-go/internal/model"
	"mosaic-go/internal/mosaic"
	"mosaic-go/internal/vault"
	"mosaic-go/internal/workspace"
)

// MosaicApp wires the stores, migration engine and service together from a
// Config. The caller must call Close when done.
type MosaicApp struct {
	cfg     *config.Config
	service *mosaic.Service
	logFile *os.File
}

// NewMosaicApp creates a fully wired MosaicApp from the given config.
// operation identifies the CLI command being run (e.g. "CreateVault").
func NewMosaicApp(cfg *config.Config, operation string) (*MosaicApp, error) {
	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	log := &slogAdapter{l: logger.With("operation", operation)}

	clock := mosaic.RealClock{}
	idgen := mosaic.UUIDGenerator{}

	historyStore, err := history.NewStoreFromConfig(cfg.History, cfg.DataDir, clock)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating history store: %w", err)
	}

	stateStore, err := appstate.NewStoreFromConfig(cfg.State, cfg.DataDir, clock)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating state store: %w", err)
	}

	engine := migrate.NewEngine(clock, idgen, log)
	svc := mosaic.NewService(
		vault.NewStore(clock, idgen),
		canvas.NewStore(clock, idgen, engine, log),
		workspace.NewStore(),
		historyStore,
		stateStore,
		engine,
		log,
	)

	return &MosaicApp{cfg: cfg, service: svc, logFile: logFile}, nil
}

// Service exposes the underlying orchestration service.
func (a *MosaicApp) Service() *mosaic.Service { return a.service }

// CreateVault creates a vault (with its default canvas) at the given path.
func (a *MosaicApp) CreateVault(rawPath, name, description string) (*model.VaultInfo, error) {
	root, err := resolve(rawPath)
	if err != nil {
		return nil, err
	}
	return a.service.CreateVault(root, name, description)
}

// OpenVault opens the vault at the given path.
func (a *MosaicApp) OpenVault(rawPath string) (*model.VaultInfo, error) {
	root, err := resolve(rawPath)
	if err != nil {
		return nil, err
	}
	return a.service.OpenVault(root)
}

// RenameVault updates the vault's display name.
func (a *MosaicApp) RenameVault(rawPath, newName string) (*model.VaultInfo, error) {
	root, err := resolve(rawPath)
	if err != nil {
		return nil, err
	}
	return a.service.RenameVault(root, newName)
}

// UpdateVaultDescription updates the vault's description.
func (a *MosaicApp) UpdateVaultDescription(rawPath, description string) (*model.VaultInfo, error) {
	root, err := resolve(rawPath)
	if err != nil {
		return nil, err
	}
	return a.service.UpdateVaultDescription(root, description)
}

// MigrateVault explicitly upgrades a legacy vault in place.
func (a *MosaicApp) MigrateVault(rawPath string) (*model.VaultInfo, error) {
	root, err := resolve(rawPath)
	if err != nil {
		return nil, err
	}
	return a.service.MigrateVault(root)
}

// ListCanvases lists the canvases of the vault at the given path.
func (a *MosaicApp) ListCanvases(rawPath string) ([]*model.CanvasInfo, error) {
	root, err := resolve(rawPath)
	if err != nil {
		return nil, err
	}
	return a.service.ListCanvases(root)
}

// CreateCanvas creates a canvas inside the vault at the given path.
func (a *MosaicApp) CreateCanvas(vaultPath, name, description string) (*model.CanvasInfo, error) {
	root, err := resolve(vaultPath)
	if err != nil {
		return nil, err
	}
	return a.service.CreateCanvas(root, name, description)
}

// OpenCanvas opens (and if needed migrates) the canvas at the given path.
func (a *MosaicApp) OpenCanvas(rawPath string) (*model.CanvasInfo, error) {
	root, err := resolve(rawPath)
	if err != nil {
		return nil, err
	}
	return a.service.OpenCanvas(root)
}

// RenameCanvas updates the canvas name and best-effort renames its folder.
func (a *MosaicApp) RenameCanvas(rawPath, newName string) (*model.CanvasInfo, error) {
	root, err := resolve(rawPath)
	if err != nil {
		return nil, err
	}
	return a.service.RenameCanvas(root, newName)
}

// DeleteCanvas removes the canvas at the given path and its history entry.
func (a *MosaicApp) DeleteCanvas(rawPath string) error {
	root, err := resolve(rawPath)
	if err != nil {
		return err
	}
	return a.service.DeleteCanvas(root)
}

// UpdateCanvasTags replaces the canvas tag set.
func (a *MosaicApp) UpdateCanvasTags(rawPath string, tags []string) (*model.CanvasInfo, error) {
	root, err := resolve(rawPath)
	if err != nil {
		return nil, err
	}
	return a.service.UpdateCanvasTags(root, tags)
}

// AddCanvasTag appends one tag to the canvas.
func (a *MosaicApp) AddCanvasTag(rawPath, tag string) (*model.CanvasInfo, error) {
	root, err := resolve(rawPath)
	if err != nil {
		return nil, err
	}
	return a.service.AddCanvasTag(root, tag)
}

// RemoveCanvasTag removes one tag from the canvas.
func (a *MosaicApp) RemoveCanvasTag(rawPath, tag string) (*model.CanvasInfo, error) {
	root, err := resolve(rawPath)
	if err != nil {
		return nil, err
	}
	return a.service.RemoveCanvasTag(root, tag)
}

// UpdateCanvasDescription updates the canvas description.
func (a *MosaicApp) UpdateCanvasDescription(rawPath, description string) (*model.CanvasInfo, error) {
	root, err := resolve(rawPath)
	if err != nil {
		return nil, err
	}
	return a.service.UpdateCanvasDescription(root, description)
}

// RecentVaults returns up to limit history entries, most recent first.
func (a *MosaicApp) RecentVaults(limit int) ([]model.VaultHistoryEntry, error) {
	return a.service.RecentVaults(limit)
}

// RecentCanvases returns up to limit history entries, optionally filtered
// by owning vault.
func (a *MosaicApp) RecentCanvases(vaultID string, limit int) ([]model.CanvasHistoryEntry, error) {
	return a.service.RecentCanvases(vaultID, limit)
}

// AppState returns the persisted session pointer.
func (a *MosaicApp) AppState() (*model.AppState, error) {
	return a.service.AppState()
}

// Close releases the log file.
func (a *MosaicApp) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}

// resolve turns a raw CLI path into an absolute one. The path may not exist
// yet (vault create), so resolution uses filepath.Abs only.
func resolve(rawPath string) (string, error) {
	abs, err := filepath.Abs(rawPath)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}
