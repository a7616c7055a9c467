package mosaic

import (
	"fmt"
	"os"
	"path/filepath"
)

// On-disk names shared by the path resolvers.
const (
	VaultMetaFile   = "vault.json"
	CanvasDirName   = "canvases"
	MosaicDirName   = ".mosaic"
	MetaFileName    = "meta.json"
	StateFileName   = "state.json"
	WorkspaceFile   = "workspace.json"
	LegacyMetaFile  = "canvas.json"
	VaultConfigName = ".mosaicflow"
)

// VaultPaths derives the fixed set of paths a vault uses from its root
// directory. Purely computed; only CreateAll touches the filesystem.
type VaultPaths struct {
	Root        string
	VaultJSON   string
	Canvases    string
	Assets      string
	Attachments string
	Config      string
}

// NewVaultPaths resolves the standard paths under a vault root.
func NewVaultPaths(root string) VaultPaths {
	return VaultPaths{
		Root:        root,
		VaultJSON:   filepath.Join(root, VaultMetaFile),
		Canvases:    filepath.Join(root, CanvasDirName),
		Assets:      filepath.Join(root, "assets"),
		Attachments: filepath.Join(root, "attachments"),
		Config:      filepath.Join(root, VaultConfigName),
	}
}

// IsValid reports whether the current-schema metadata file exists at the root.
func (p VaultPaths) IsValid() bool {
	_, err := os.Stat(p.VaultJSON)
	return err == nil
}

// CreateAll creates the full vault directory tree. Idempotent; existing
// directories are not an error. Never touches files.
func (p VaultPaths) CreateAll() error {
	for _, dir := range []string{p.Root, p.Canvases, p.Assets, p.Attachments, p.Config} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating vault directory %s: %w", dir, err)
		}
	}
	return nil
}

// CanvasPaths derives the fixed set of paths a canvas uses from its root
// directory. The nodes/edges/images/attachments directories are reserved
// for future binary asset storage and are currently unused.
type CanvasPaths struct {
	Root          string
	Mosaic        string
	MetaJSON      string
	StateJSON     string
	WorkspaceJSON string
	LegacyJSON    string
	Nodes         string
	Edges         string
	Images        string
	Attachments   string
}

// NewCanvasPaths resolves the standard paths under a canvas root.
func NewCanvasPaths(root string) CanvasPaths {
	mosaicDir := filepath.Join(root, MosaicDirName)
	return CanvasPaths{
		Root:          root,
		Mosaic:        mosaicDir,
		MetaJSON:      filepath.Join(mosaicDir, MetaFileName),
		StateJSON:     filepath.Join(mosaicDir, StateFileName),
		WorkspaceJSON: filepath.Join(root, WorkspaceFile),
		LegacyJSON:    filepath.Join(root, LegacyMetaFile),
		Nodes:         filepath.Join(root, "nodes"),
		Edges:         filepath.Join(root, "edges"),
		Images:        filepath.Join(root, "images"),
		Attachments:   filepath.Join(root, "attachments"),
	}
}

// IsValidV2 reports whether the current-schema metadata file exists.
func (p CanvasPaths) IsValidV2() bool {
	_, err := os.Stat(p.MetaJSON)
	return err == nil
}

// IsValidV1 reports whether the legacy flat metadata file exists.
func (p CanvasPaths) IsValidV1() bool {
	_, err := os.Stat(p.LegacyJSON)
	return err == nil
}

// CreateAll creates the full canvas directory tree. Idempotent.
func (p CanvasPaths) CreateAll() error {
	for _, dir := range []string{p.Root, p.Mosaic, p.Nodes, p.Edges, p.Images, p.Attachments} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating canvas directory %s: %w", dir, err)
		}
	}
	return nil
}
