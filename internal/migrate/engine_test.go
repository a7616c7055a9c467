package migrate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mosaic-go/internal/fsx"
	"mosaic-go/internal/model"
	"mosaic-go/internal/mosaic"
	"mosaic-go/internal/testutil"
)

func newTestEngine() *Engine {
	return NewEngine(testutil.FixedClock(), testutil.NewStubIDGenerator(), mosaic.NewNopLogger())
}

func writeLegacyVault(t *testing.T, root string, doc map[string]any) {
	t.Helper()
	if err := fsx.WriteJSON(mosaic.NewVaultPaths(root).VaultJSON, doc); err != nil {
		t.Fatal(err)
	}
}

func TestMigrateVault(t *testing.T) {
	engine := newTestEngine()
	root := t.TempDir()
	writeLegacyVault(t, root, map[string]any{
		"name":       "Old Vault",
		"created_at": "2024-01-01T00:00:00.000000Z",
	})

	info, err := engine.MigrateVault(root)
	if err != nil {
		t.Fatalf("MigrateVault() error: %v", err)
	}
	if info.ID == "" {
		t.Error("migration did not assign an ID")
	}
	if info.Name != "Old Vault" {
		t.Errorf("Name = %q, want legacy name preserved", info.Name)
	}
	if info.CreatedAt != "2024-01-01T00:00:00.000000Z" {
		t.Errorf("CreatedAt = %q, want legacy value preserved", info.CreatedAt)
	}

	var meta model.VaultMeta
	if err := fsx.ReadJSON(mosaic.NewVaultPaths(root).VaultJSON, &meta); err != nil {
		t.Fatal(err)
	}
	if meta.Version != model.SchemaVersion {
		t.Errorf("Version = %q, want %q", meta.Version, model.SchemaVersion)
	}
}

func TestMigrateVaultIdempotentID(t *testing.T) {
	engine := newTestEngine()
	root := t.TempDir()
	writeLegacyVault(t, root, map[string]any{"name": "V"})

	first, err := engine.MigrateVault(root)
	if err != nil {
		t.Fatal(err)
	}
	second, err := engine.MigrateVault(root)
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Errorf("second run minted a new ID: %q vs %q", second.ID, first.ID)
	}
}

func TestMigrateVaultPreservesExistingID(t *testing.T) {
	engine := newTestEngine()
	root := t.TempDir()
	writeLegacyVault(t, root, map[string]any{"id": "keep-me", "name": "V"})

	info, err := engine.MigrateVault(root)
	if err != nil {
		t.Fatal(err)
	}
	if info.ID != "keep-me" {
		t.Errorf("ID = %q, want existing ID kept", info.ID)
	}
}

func TestMigrateVaultMissing(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.MigrateVault(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, mosaic.ErrVaultNotFound) {
		t.Errorf("expected ErrVaultNotFound, got %v", err)
	}
}

func TestMigrateVaultCorrupt(t *testing.T) {
	engine := newTestEngine()
	root := t.TempDir()
	paths := mosaic.NewVaultPaths(root)
	if err := fsx.EnsureDir(root); err != nil {
		t.Fatal(err)
	}
	if err := writeRaw(paths.VaultJSON, "{broken"); err != nil {
		t.Fatal(err)
	}

	_, err := engine.MigrateVault(root)
	if !errors.Is(err, mosaic.ErrMigrationFailed) {
		t.Errorf("expected ErrMigrationFailed, got %v", err)
	}
}

func TestVaultNeedsMigration(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name string
		doc  map[string]any
		want bool
	}{
		{"missing id", map[string]any{"name": "V", "version": model.SchemaVersion}, true},
		{"old version", map[string]any{"id": "x", "name": "V", "version": "1.0.0"}, true},
		{"no version", map[string]any{"id": "x", "name": "V"}, true},
		{"current", map[string]any{"id": "x", "name": "V", "version": model.SchemaVersion}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeLegacyVault(t, root, tt.doc)
			if got := engine.VaultNeedsMigration(root); got != tt.want {
				t.Errorf("VaultNeedsMigration() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("unreadable", func(t *testing.T) {
		if !engine.VaultNeedsMigration(t.TempDir()) {
			t.Error("missing metadata should report needing migration")
		}
	})
}

func TestMigrateCanvasRecoversVaultID(t *testing.T) {
	engine := newTestEngine()
	vaultRoot := t.TempDir()
	writeLegacyVault(t, vaultRoot, map[string]any{"id": "vault-123", "name": "V"})

	canvasRoot := filepath.Join(vaultRoot, mosaic.CanvasDirName, "Notes")
	if err := fsx.EnsureDir(canvasRoot); err != nil {
		t.Fatal(err)
	}
	legacy := map[string]any{"id": "canvas-1", "name": "Notes"}
	if err := fsx.WriteJSON(mosaic.NewCanvasPaths(canvasRoot).LegacyJSON, legacy); err != nil {
		t.Fatal(err)
	}

	info, err := engine.MigrateCanvas(canvasRoot)
	if err != nil {
		t.Fatalf("MigrateCanvas() error: %v", err)
	}
	if info.VaultID != "vault-123" {
		t.Errorf("VaultID = %q, want recovered from owning vault", info.VaultID)
	}
	if info.ID != "canvas-1" || info.Name != "Notes" {
		t.Errorf("info = %+v, want legacy identity preserved", info)
	}
}

func TestMigrateCanvasPlaceholderVaultID(t *testing.T) {
	engine := newTestEngine()
	// No vault.json two levels up.
	canvasRoot := filepath.Join(t.TempDir(), "canvases", "Orphan")
	if err := fsx.EnsureDir(canvasRoot); err != nil {
		t.Fatal(err)
	}
	if err := fsx.WriteJSON(mosaic.NewCanvasPaths(canvasRoot).LegacyJSON, map[string]any{"id": "c"}); err != nil {
		t.Fatal(err)
	}

	info, err := engine.MigrateCanvas(canvasRoot)
	if err != nil {
		t.Fatalf("MigrateCanvas() error: %v", err)
	}
	if info.VaultID == "" {
		t.Error("placeholder vault ID should be minted, not left empty")
	}
}

func TestMigrateCanvasKeepsLegacyFile(t *testing.T) {
	engine := newTestEngine()
	canvasRoot := filepath.Join(t.TempDir(), "canvases", "Notes")
	if err := fsx.EnsureDir(canvasRoot); err != nil {
		t.Fatal(err)
	}
	paths := mosaic.NewCanvasPaths(canvasRoot)
	if err := fsx.WriteJSON(paths.LegacyJSON, map[string]any{"id": "c", "name": "Notes"}); err != nil {
		t.Fatal(err)
	}

	if _, err := engine.MigrateCanvas(canvasRoot); err != nil {
		t.Fatal(err)
	}
	if !fsx.Exists(paths.LegacyJSON) {
		t.Error("legacy canvas.json must survive migration")
	}
	if !fsx.Exists(paths.MetaJSON) {
		t.Error("migration did not write current-schema metadata")
	}
}

func TestMigrateCanvasPreservesExistingState(t *testing.T) {
	engine := newTestEngine()
	canvasRoot := filepath.Join(t.TempDir(), "canvases", "Notes")
	paths := mosaic.NewCanvasPaths(canvasRoot)
	if err := fsx.EnsureDir(paths.Mosaic); err != nil {
		t.Fatal(err)
	}
	if err := fsx.WriteJSON(paths.LegacyJSON, map[string]any{"id": "c"}); err != nil {
		t.Fatal(err)
	}

	existing := model.DefaultCanvasUIState()
	existing.Viewport = model.Viewport{X: 42, Y: 7, Zoom: 3}
	if err := fsx.WriteJSON(paths.StateJSON, existing); err != nil {
		t.Fatal(err)
	}

	if _, err := engine.MigrateCanvas(canvasRoot); err != nil {
		t.Fatal(err)
	}

	var state model.CanvasUIState
	if err := fsx.ReadJSON(paths.StateJSON, &state); err != nil {
		t.Fatal(err)
	}
	if state.Viewport != existing.Viewport {
		t.Errorf("state clobbered: %+v, want %+v", state.Viewport, existing.Viewport)
	}
}

func TestMigrateCanvasBareDirectory(t *testing.T) {
	engine := newTestEngine()
	canvasRoot := filepath.Join(t.TempDir(), "canvases", "My Folder")
	if err := fsx.EnsureDir(canvasRoot); err != nil {
		t.Fatal(err)
	}

	info, err := engine.MigrateCanvas(canvasRoot)
	if err != nil {
		t.Fatalf("MigrateCanvas() error: %v", err)
	}
	if info.Name != "My Folder" {
		t.Errorf("Name = %q, want folder name when no legacy metadata", info.Name)
	}
	if info.ID == "" {
		t.Error("a fresh ID should be minted")
	}
}

func TestCanvasNeedsMigration(t *testing.T) {
	engine := newTestEngine()

	t.Run("legacy only", func(t *testing.T) {
		root := t.TempDir()
		if err := fsx.WriteJSON(mosaic.NewCanvasPaths(root).LegacyJSON, map[string]any{}); err != nil {
			t.Fatal(err)
		}
		if !engine.CanvasNeedsMigration(root) {
			t.Error("legacy-only canvas should need migration")
		}
	})

	t.Run("already migrated", func(t *testing.T) {
		root := t.TempDir()
		paths := mosaic.NewCanvasPaths(root)
		if err := fsx.WriteJSON(paths.LegacyJSON, map[string]any{}); err != nil {
			t.Fatal(err)
		}
		if err := fsx.WriteJSON(paths.MetaJSON, map[string]any{}); err != nil {
			t.Fatal(err)
		}
		if engine.CanvasNeedsMigration(root) {
			t.Error("migrated canvas should not need migration again")
		}
	})

	t.Run("neither format", func(t *testing.T) {
		if engine.CanvasNeedsMigration(t.TempDir()) {
			t.Error("empty directory is not a migratable canvas")
		}
	})
}

func writeRaw(path, content string) error {
	if err := fsx.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
