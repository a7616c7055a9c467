// Package migrate upgrades legacy on-disk layouts to the current schema.
// Migrations are additive: the upgrade writes current-schema files in place
// and never deletes the legacy record.
package migrate

import (
	"fmt"
	"path/filepath"

	"mosaic-go/internal/fsx"
	"mosaic-go/internal/model"
	"mosaic-go/internal/mosaic"
)

// vaultStep is one link in the ordered vault migration chain. A document
// whose version sorts below To gets Apply run on it; future schema bumps
// append further steps rather than growing per-field presence checks.
type vaultStep struct {
	To    string
	Apply func(e *Engine, root string) error
}

var vaultChain = []vaultStep{
	{To: model.SchemaVersion, Apply: (*Engine).vaultV1ToV2},
}

// Engine performs in-place schema upgrades for vaults and canvases.
type Engine struct {
	clock  mosaic.Clock
	idgen  mosaic.IDGenerator
	logger mosaic.Logger
}

// NewEngine creates a migration engine.
func NewEngine(clock mosaic.Clock, idgen mosaic.IDGenerator, logger mosaic.Logger) *Engine {
	return &Engine{clock: clock, idgen: idgen, logger: logger}
}

// MigrateVault walks the vault chain over the metadata file at root. The
// legacy and current vault metadata share one file path, so the upgrade is
// in-place field addition, not a file move. Assigning the missing ID is
// idempotent: a second run finds the ID already present and keeps it.
func (e *Engine) MigrateVault(root string) (*model.VaultInfo, error) {
	paths := mosaic.NewVaultPaths(root)
	if !fsx.Exists(paths.VaultJSON) {
		return nil, fmt.Errorf("%w: %s", mosaic.ErrVaultNotFound, root)
	}

	for _, step := range vaultChain {
		if err := step.Apply(e, root); err != nil {
			return nil, fmt.Errorf("%w: vault %s to %s: %w", mosaic.ErrMigrationFailed, root, step.To, err)
		}
	}

	var meta model.VaultMeta
	if err := fsx.ReadJSON(paths.VaultJSON, &meta); err != nil {
		return nil, err
	}

	canvases, err := fsx.ListSubdirs(paths.Canvases)
	if err != nil {
		canvases = nil
	}
	return model.VaultInfoFromMeta(&meta, root, len(canvases)), nil
}

// vaultV1ToV2 reads the metadata as an open document, injects the missing
// identity fields, and stamps the current version. updated_at always
// advances on this path.
func (e *Engine) vaultV1ToV2(root string) error {
	paths := mosaic.NewVaultPaths(root)

	var doc map[string]any
	if err := fsx.ReadJSON(paths.VaultJSON, &doc); err != nil {
		return err
	}

	if _, ok := doc["id"]; !ok {
		doc["id"] = e.idgen.New()
	}
	if _, ok := doc["description"]; !ok {
		doc["description"] = ""
	}
	doc["version"] = model.SchemaVersion
	doc["updated_at"] = mosaic.Timestamp(e.clock.Now())

	return fsx.WriteJSON(paths.VaultJSON, doc)
}

// MigrateCanvas upgrades a legacy canvas (flat canvas.json in the root) to
// the current layout. The vault back-reference is recovered from the
// grandparent's vault.json; when that lookup fails a placeholder UUID is
// minted instead of failing the migration. The legacy file is left in
// place, and an existing state file is never clobbered.
func (e *Engine) MigrateCanvas(root string) (*model.CanvasInfo, error) {
	paths := mosaic.NewCanvasPaths(root)

	if err := fsx.EnsureDir(paths.Mosaic); err != nil {
		return nil, fmt.Errorf("%w: %w", mosaic.ErrMigrationFailed, err)
	}

	now := mosaic.Timestamp(e.clock.Now())

	var id, name string
	if fsx.Exists(paths.LegacyJSON) {
		var doc map[string]any
		if err := fsx.ReadJSON(paths.LegacyJSON, &doc); err != nil {
			return nil, fmt.Errorf("%w: %w", mosaic.ErrMigrationFailed, err)
		}
		id = stringField(doc, "id")
		name = stringField(doc, "name")
	}
	if id == "" {
		id = e.idgen.New()
	}
	if name == "" {
		if fsx.Exists(paths.LegacyJSON) {
			name = mosaic.DefaultCanvasName
		} else {
			name = filepath.Base(root)
		}
	}

	vaultID, ok := e.vaultIDForCanvas(root)
	if !ok {
		vaultID = e.idgen.New()
		e.logger.Warn("canvas migration could not resolve owning vault, using placeholder id",
			"path", root, "vault_id", vaultID)
	}

	meta := model.NewCanvasMeta(id, vaultID, name, "", now)
	if err := fsx.WriteJSON(paths.MetaJSON, meta); err != nil {
		return nil, fmt.Errorf("%w: %w", mosaic.ErrMigrationFailed, err)
	}

	if !fsx.Exists(paths.StateJSON) {
		if err := fsx.WriteJSON(paths.StateJSON, model.DefaultCanvasUIState()); err != nil {
			return nil, fmt.Errorf("%w: %w", mosaic.ErrMigrationFailed, err)
		}
	}

	e.logger.Info("canvas migrated", "id", id, "path", root)
	return model.CanvasInfoFromMeta(meta, root), nil
}

// VaultNeedsMigration reports whether the vault metadata at root is missing
// an ID or not at the current version. An unreadable file also reports
// true.
func (e *Engine) VaultNeedsMigration(root string) bool {
	paths := mosaic.NewVaultPaths(root)

	var doc map[string]any
	if err := fsx.ReadJSON(paths.VaultJSON, &doc); err != nil {
		return true
	}
	if _, ok := doc["id"]; !ok {
		return true
	}
	return stringField(doc, "version") != model.SchemaVersion
}

// CanvasNeedsMigration reports whether root holds a legacy canvas without
// current-schema metadata.
func (e *Engine) CanvasNeedsMigration(root string) bool {
	paths := mosaic.NewCanvasPaths(root)
	return !paths.IsValidV2() && paths.IsValidV1()
}

// vaultIDForCanvas reads <root>/../../vault.json and extracts its id.
func (e *Engine) vaultIDForCanvas(canvasRoot string) (string, bool) {
	vaultRoot := filepath.Dir(filepath.Dir(canvasRoot))
	vaultJSON := filepath.Join(vaultRoot, mosaic.VaultMetaFile)
	if !fsx.Exists(vaultJSON) {
		return "", false
	}

	var doc map[string]any
	if err := fsx.ReadJSON(vaultJSON, &doc); err != nil {
		return "", false
	}
	id := stringField(doc, "id")
	return id, id != ""
}

func stringField(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}

// Compile-time check that Engine implements mosaic.Migrator.
var _ mosaic.Migrator = (*Engine)(nil)
