package appstate

import (
	"fmt"

	"mosaic-go/internal/config"
	"mosaic-go/internal/mosaic"
)

// NewStoreFromConfig creates an app state store based on the config Type.
// An empty Type defaults to "filesystem".
func NewStoreFromConfig(cfg config.StateConfig, dataDir string, clock mosaic.Clock) (mosaic.StateStore, error) {
	switch cfg.Type {
	case "filesystem", "":
		return NewFilesystemStore(dataDir, clock), nil
	case "memory":
		return NewMemoryStore(clock), nil
	default:
		return nil, fmt.Errorf("unknown state store type: %s", cfg.Type)
	}
}
