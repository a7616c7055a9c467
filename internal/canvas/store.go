// Package canvas implements the filesystem-backed canvas entity store.
// Identity is carried by the metadata file, never by the folder name;
// folder names only need to be unique within the vault's canvases
// directory.
package canvas

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"mosaic-go/internal/fsx"
	"mosaic-go/internal/model"
	"mosaic-go/internal/mosaic"
)

// Store reads and writes canvas metadata, UI state and the initial
// workspace document under caller-supplied roots.
type Store struct {
	clock    mosaic.Clock
	idgen    mosaic.IDGenerator
	migrator mosaic.Migrator
	logger   mosaic.Logger
}

// NewStore creates a canvas store. Open delegates legacy canvases to the
// migrator.
func NewStore(clock mosaic.Clock, idgen mosaic.IDGenerator, migrator mosaic.Migrator, logger mosaic.Logger) *Store {
	return &Store{clock: clock, idgen: idgen, migrator: migrator, logger: logger}
}

// Create initializes a new canvas under canvasesDir. The folder name is the
// sanitized display name; on collision the first free _1, _2, ... suffix is
// taken. Writes metadata, a default UI state, and an empty workspace.
func (s *Store) Create(canvasesDir, vaultID, name, description string) (*model.CanvasInfo, error) {
	root := s.resolveFolder(canvasesDir, mosaic.SanitizeName(name))
	paths := mosaic.NewCanvasPaths(root)

	if err := paths.CreateAll(); err != nil {
		return nil, err
	}

	now := mosaic.Timestamp(s.clock.Now())
	meta := model.NewCanvasMeta(s.idgen.New(), vaultID, name, description, now)

	if err := fsx.WriteJSON(paths.MetaJSON, meta); err != nil {
		return nil, err
	}
	if err := fsx.WriteJSON(paths.StateJSON, model.DefaultCanvasUIState()); err != nil {
		return nil, err
	}
	if err := fsx.WriteJSON(paths.WorkspaceJSON, model.NewWorkspaceData()); err != nil {
		return nil, err
	}

	return model.CanvasInfoFromMeta(meta, root), nil
}

// Open reads the canvas at root. A legacy canvas (flat canvas.json, no
// current-schema metadata) is migrated in place first. Fails with
// ErrCanvasNotFound when neither format is present.
func (s *Store) Open(root string) (*model.CanvasInfo, error) {
	paths := mosaic.NewCanvasPaths(root)

	if paths.IsValidV2() {
		var meta model.CanvasMeta
		if err := fsx.ReadJSON(paths.MetaJSON, &meta); err != nil {
			return nil, err
		}
		return model.CanvasInfoFromMeta(&meta, root), nil
	}

	if paths.IsValidV1() {
		return s.migrator.MigrateCanvas(root)
	}

	return nil, fmt.Errorf("%w: %s", mosaic.ErrCanvasNotFound, root)
}

// List opens every immediate subdirectory of canvasesDir, sorted by
// updated_at descending. A canvas that fails to open is skipped, not
// reported; one corrupt canvas must not abort listing the rest.
func (s *Store) List(canvasesDir string) ([]*model.CanvasInfo, error) {
	subdirs, err := fsx.ListSubdirs(canvasesDir)
	if err != nil {
		return nil, err
	}

	infos := []*model.CanvasInfo{}
	for _, dir := range subdirs {
		info, err := s.Open(dir)
		if err != nil {
			s.logger.Debug("skipping unreadable canvas", "path", dir, "error", err)
			continue
		}
		infos = append(infos, info)
	}

	// Fixed-width timestamps, so string order is chronological order.
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].UpdatedAt > infos[j].UpdatedAt
	})
	return infos, nil
}

// Rename updates the canvas name (migrating first if needed) and then
// renames the folder to the sanitized new name — but only when the target
// differs and no folder of that name exists. The folder rename happens
// after the metadata write; the returned info reflects the final path.
func (s *Store) Rename(root, newName string) (*model.CanvasInfo, error) {
	if _, err := s.Open(root); err != nil {
		return nil, err
	}

	paths := mosaic.NewCanvasPaths(root)
	var meta model.CanvasMeta
	if err := fsx.ReadJSON(paths.MetaJSON, &meta); err != nil {
		return nil, err
	}
	meta.Name = newName
	meta.Touch(mosaic.Timestamp(s.clock.Now()))
	if err := fsx.WriteJSON(paths.MetaJSON, &meta); err != nil {
		return nil, err
	}

	finalRoot := root
	target := filepath.Join(filepath.Dir(root), mosaic.SanitizeName(newName))
	if target != root && !fsx.Exists(target) {
		if err := os.Rename(root, target); err != nil {
			return nil, fmt.Errorf("renaming canvas folder: %w", err)
		}
		finalRoot = target
	}

	return model.CanvasInfoFromMeta(&meta, finalRoot), nil
}

// Delete removes the canvas directory tree, first attempting to recover the
// canvas ID for history cleanup. ID recovery failing never blocks the
// deletion; the ID is "" in that case.
func (s *Store) Delete(root string) (string, error) {
	id := s.canvasID(root)
	if err := os.RemoveAll(root); err != nil {
		return "", fmt.Errorf("deleting canvas %s: %w", root, err)
	}
	return id, nil
}

// UpdateTags replaces the tag set. Requires current-schema metadata; a
// legacy-only canvas fails with ErrCanvasNotFound rather than migrating.
func (s *Store) UpdateTags(root string, tags []string) (*model.CanvasInfo, error) {
	return s.update(root, func(meta *model.CanvasMeta) {
		meta.Tags = tags
	})
}

// AddTag appends a single tag when not already present. Unlike UpdateTags,
// the timestamp only advances when the tag set actually changes.
func (s *Store) AddTag(root, tag string) (*model.CanvasInfo, error) {
	return s.mutateTags(root, func(meta *model.CanvasMeta, now string) {
		meta.AddTag(tag, now)
	})
}

// RemoveTag removes a single tag when present, with AddTag's timestamp
// semantics.
func (s *Store) RemoveTag(root, tag string) (*model.CanvasInfo, error) {
	return s.mutateTags(root, func(meta *model.CanvasMeta, now string) {
		meta.RemoveTag(tag, now)
	})
}

// UpdateDescription updates the description with the same preconditions as
// UpdateTags.
func (s *Store) UpdateDescription(root, description string) (*model.CanvasInfo, error) {
	return s.update(root, func(meta *model.CanvasMeta) {
		meta.Description = description
	})
}

// LoadState returns the per-canvas UI state, or the default state when the
// file is absent.
func (s *Store) LoadState(root string) (*model.CanvasUIState, error) {
	paths := mosaic.NewCanvasPaths(root)
	if !fsx.Exists(paths.StateJSON) {
		return model.DefaultCanvasUIState(), nil
	}
	var state model.CanvasUIState
	if err := fsx.ReadJSON(paths.StateJSON, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState overwrites the UI state wholesale, stamping updated_at and
// ensuring the hidden metadata directory exists first.
func (s *Store) SaveState(root string, state *model.CanvasUIState) error {
	paths := mosaic.NewCanvasPaths(root)
	if err := fsx.EnsureDir(paths.Mosaic); err != nil {
		return err
	}

	saved := *state
	saved.Touch(mosaic.Timestamp(s.clock.Now()))
	if err := fsx.WriteJSON(paths.StateJSON, &saved); err != nil {
		return fmt.Errorf("%w: %w", mosaic.ErrStateSaveFailed, err)
	}
	return nil
}

func (s *Store) update(root string, mutate func(*model.CanvasMeta)) (*model.CanvasInfo, error) {
	paths := mosaic.NewCanvasPaths(root)
	if !paths.IsValidV2() {
		return nil, fmt.Errorf("%w: %s", mosaic.ErrCanvasNotFound, root)
	}

	var meta model.CanvasMeta
	if err := fsx.ReadJSON(paths.MetaJSON, &meta); err != nil {
		return nil, err
	}

	mutate(&meta)
	meta.Touch(mosaic.Timestamp(s.clock.Now()))

	if err := fsx.WriteJSON(paths.MetaJSON, &meta); err != nil {
		return nil, err
	}
	return model.CanvasInfoFromMeta(&meta, root), nil
}

// mutateTags is like update but hands the clock to the mutation, which
// decides for itself whether to touch updated_at.
func (s *Store) mutateTags(root string, apply func(*model.CanvasMeta, string)) (*model.CanvasInfo, error) {
	paths := mosaic.NewCanvasPaths(root)
	if !paths.IsValidV2() {
		return nil, fmt.Errorf("%w: %s", mosaic.ErrCanvasNotFound, root)
	}

	var meta model.CanvasMeta
	if err := fsx.ReadJSON(paths.MetaJSON, &meta); err != nil {
		return nil, err
	}

	apply(&meta, mosaic.Timestamp(s.clock.Now()))

	if err := fsx.WriteJSON(paths.MetaJSON, &meta); err != nil {
		return nil, err
	}
	return model.CanvasInfoFromMeta(&meta, root), nil
}

// resolveFolder finds the first free folder name, scanning name, name_1,
// name_2, ... sequentially. O(n) in prior collisions; fine under the
// single-process model.
func (s *Store) resolveFolder(canvasesDir, folderName string) string {
	candidate := filepath.Join(canvasesDir, folderName)
	if !fsx.Exists(candidate) {
		return candidate
	}
	for i := 1; ; i++ {
		candidate = filepath.Join(canvasesDir, fmt.Sprintf("%s_%d", folderName, i))
		if !fsx.Exists(candidate) {
			return candidate
		}
	}
}

// canvasID reads the canvas ID from current-schema metadata, best effort.
func (s *Store) canvasID(root string) string {
	paths := mosaic.NewCanvasPaths(root)
	if !paths.IsValidV2() {
		return ""
	}
	var meta model.CanvasMeta
	if err := fsx.ReadJSON(paths.MetaJSON, &meta); err != nil {
		return ""
	}
	return meta.ID
}

// Compile-time check that Store implements mosaic.CanvasStore.
var _ mosaic.CanvasStore = (*Store)(nil)
