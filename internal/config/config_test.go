package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MaxStorageVariables != DefaultMaxStorageVariables {
		t.Fatalf("MaxStorageVariables = %d, want %d", cfg.MaxStorageVariables, DefaultMaxStorageVariables)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load(missing) = %+v, want Default()", cfg)
	}
}

func TestLoadOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vyzzer.yaml")
	content := "max_storage_variables: 4\nseed: 42\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxStorageVariables != 4 || cfg.Seed != 42 {
		t.Fatalf("Load = %+v, want MaxStorageVariables=4 Seed=42", cfg)
	}
	if cfg.MaxFunctions != DefaultMaxFunctions {
		t.Fatalf("MaxFunctions = %d, want default %d (unset in file)", cfg.MaxFunctions, DefaultMaxFunctions)
	}
}
