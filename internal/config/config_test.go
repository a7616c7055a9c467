package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/home/user/.local/share/mosaic")

	if cfg.DataDir != filepath.Join(cfg.BaseDir, "data") {
		t.Errorf("DataDir = %q, want data under base dir", cfg.DataDir)
	}
	if cfg.LogDir != filepath.Join(cfg.BaseDir, "log") {
		t.Errorf("LogDir = %q, want log under base dir", cfg.LogDir)
	}
	if cfg.History.Type != "filesystem" || cfg.History.MaxItems != 50 {
		t.Errorf("History = %+v, want filesystem with 50 items", cfg.History)
	}
	if cfg.State.Type != "filesystem" {
		t.Errorf("State = %+v, want filesystem", cfg.State)
	}
}

func TestManagerRoundTrip(t *testing.T) {
	m := &Manager{}
	orig := NewConfig("/base")
	orig.History.Type = "memory"
	orig.History.MaxItems = 7

	var buf bytes.Buffer
	if err := m.Write(&buf, orig); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if *got != *orig {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, orig)
	}
}

func TestManagerReadInvalid(t *testing.T) {
	m := &Manager{}
	if _, err := m.Read(strings.NewReader("not [valid toml")); err == nil {
		t.Error("expected error for invalid toml")
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mosaic.toml")
	cfg := NewConfig("/base")

	if err := Init(path, cfg); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	got, err := ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile() error: %v", err)
	}
	if *got != *cfg {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
}

func TestInitRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mosaic.toml")
	cfg := NewConfig("/base")

	if err := Init(path, cfg); err != nil {
		t.Fatal(err)
	}
	if err := Init(path, cfg); err == nil {
		t.Error("expected error when config already exists")
	}
}

func TestReadFromFileMissing(t *testing.T) {
	if _, err := ReadFromFile(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
