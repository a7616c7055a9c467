package appstate

import (
	"testing"

	"mosaic-go/internal/config"
	"mosaic-go/internal/testutil"
)

func TestNewStoreFromConfig(t *testing.T) {
	clock := testutil.FixedClock()

	tests := []struct {
		name    string
		cfg     config.StateConfig
		wantErr bool
	}{
		{"filesystem", config.StateConfig{Type: "filesystem"}, false},
		{"empty defaults to filesystem", config.StateConfig{}, false},
		{"memory", config.StateConfig{Type: "memory"}, false},
		{"unknown", config.StateConfig{Type: "sqlite"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStoreFromConfig(tt.cfg, t.TempDir(), clock)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if store == nil {
				t.Error("store is nil")
			}
		})
	}
}
