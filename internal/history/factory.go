package history

import (
	"fmt"

	"mosaic-go/internal/config"
	"mosaic-go/internal/mosaic"
)

// NewStoreFromConfig creates a history store based on the config Type.
// An empty Type defaults to "filesystem".
func NewStoreFromConfig(cfg config.HistoryConfig, dataDir string, clock mosaic.Clock) (mosaic.HistoryStore, error) {
	switch cfg.Type {
	case "filesystem", "":
		return NewFilesystemStore(dataDir, cfg.MaxItems, clock), nil
	case "memory":
		return NewMemoryStore(cfg.MaxItems, clock), nil
	default:
		return nil, fmt.Errorf("unknown history store type: %s", cfg.Type)
	}
}
