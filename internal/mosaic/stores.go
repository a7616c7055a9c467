package mosaic

import "mosaic-go/internal/model"

// VaultStore owns the lifecycle of vault metadata at a root directory. It
// never creates the default canvas; Service composes that on CreateVault.
type VaultStore interface {
	// Create fails with ErrAlreadyExists when a current-schema metadata
	// file is already present at root.
	Create(root, name, description string) (*model.VaultInfo, error)
	// Open fails with ErrVaultNotFound when no current-schema metadata
	// file exists. It never migrates.
	Open(root string) (*model.VaultInfo, error)
	// Rename updates the display name only; the directory is not renamed.
	Rename(root, newName string) (*model.VaultInfo, error)
	UpdateDescription(root, description string) (*model.VaultInfo, error)
	// IsValid is an existence check only; it never fails.
	IsValid(root string) bool
	// GetInfo is like Open but returns (nil, nil) when the root is not a
	// valid vault.
	GetInfo(root string) (*model.VaultInfo, error)
	// VaultID returns the vault's ID, or "" when the root is not a valid
	// vault.
	VaultID(root string) (string, error)
}

// CanvasStore owns the lifecycle of canvas metadata and UI state.
type CanvasStore interface {
	// Create derives a sanitized folder name from name, resolving
	// collisions with _1, _2, ... suffixes.
	Create(canvasesDir, vaultID, name, description string) (*model.CanvasInfo, error)
	// Open reads current-schema metadata, migrating a legacy canvas in
	// place first if needed. Fails with ErrCanvasNotFound when neither
	// format is present.
	Open(root string) (*model.CanvasInfo, error)
	// List opens every immediate subdirectory, silently skipping any that
	// fail, sorted by updated_at descending.
	List(canvasesDir string) ([]*model.CanvasInfo, error)
	// Rename updates metadata and then best-effort renames the folder to
	// the sanitized new name.
	Rename(root, newName string) (*model.CanvasInfo, error)
	// Delete removes the canvas tree, returning the canvas ID when it
	// could be read beforehand ("" otherwise). ID recovery failing never
	// blocks deletion.
	Delete(root string) (string, error)
	UpdateTags(root string, tags []string) (*model.CanvasInfo, error)
	// AddTag and RemoveTag change one tag at a time; a no-op (tag already
	// present / already absent) leaves updated_at alone.
	AddTag(root, tag string) (*model.CanvasInfo, error)
	RemoveTag(root, tag string) (*model.CanvasInfo, error)
	UpdateDescription(root, description string) (*model.CanvasInfo, error)
	// LoadState returns the default state when the file is absent.
	LoadState(root string) (*model.CanvasUIState, error)
	SaveState(root string, state *model.CanvasUIState) error
}

// WorkspaceStore reads and writes the node/edge graph document of a canvas.
type WorkspaceStore interface {
	// Load returns an empty document with default settings when the file
	// is absent.
	Load(root string) (*model.WorkspaceData, error)
	Save(root string, data *model.WorkspaceData) error
	// UpdateNodes and UpdateEdges replace the whole collection.
	UpdateNodes(root string, nodes []model.WorkspaceNode) error
	UpdateEdges(root string, edges []model.WorkspaceEdge) error
	AddNode(root string, node model.WorkspaceNode) error
	// RemoveNode cascades removal of every edge touching the node.
	RemoveNode(root, nodeID string) error
	AddEdge(root string, edge model.WorkspaceEdge) error
	RemoveEdge(root, edgeID string) error
	// BatchUpdate applies all removals (nodes then edges) before all
	// additions (nodes then edges) in a single load/save cycle.
	BatchUpdate(root string, nodesToAdd []model.WorkspaceNode, nodesToRemove []string, edgesToAdd []model.WorkspaceEdge, edgesToRemove []string) error
}

// HistoryStore is the capped most-recently-used ledger of vault and canvas
// entries.
type HistoryStore interface {
	Load() (*model.AppHistory, error)
	Save(h *model.AppHistory) error
	TrackVault(id, name, path string) error
	TrackCanvas(id, vaultID, name, path string) error
	// RemoveVault cascades to the vault's canvas entries.
	RemoveVault(vaultID string) error
	RemoveCanvas(canvasID string) error
	RecentVaults(limit int) ([]model.VaultHistoryEntry, error)
	// RecentCanvases filters by owning vault when vaultID is non-empty.
	RecentCanvases(vaultID string, limit int) ([]model.CanvasHistoryEntry, error)
	FindVault(vaultID string) (*model.VaultHistoryEntry, error)
	FindCanvas(canvasID string) (*model.CanvasHistoryEntry, error)
}

// StateStore is the single-record last-opened pointer.
type StateStore interface {
	Load() (*model.AppState, error)
	Save(s *model.AppState) error
	// UpdateLastOpened overwrites only the IDs actually supplied; an
	// empty string leaves the stored value untouched.
	UpdateLastOpened(vaultID, canvasID string) error
}

// Migrator upgrades legacy on-disk layouts to the current schema in place.
type Migrator interface {
	MigrateVault(root string) (*model.VaultInfo, error)
	MigrateCanvas(root string) (*model.CanvasInfo, error)
	VaultNeedsMigration(root string) bool
	CanvasNeedsMigration(root string) bool
}
