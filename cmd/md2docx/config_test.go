package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "md2docx.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
output:
  dir: build/docs
polish:
  command: fmt-md --fast
workers: 4
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Output.Dir != "build/docs" {
		t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, "build/docs")
	}
	if cfg.Polish.Command != "fmt-md --fast" {
		t.Errorf("Polish.Command = %q, want %q", cfg.Polish.Command, "fmt-md --fast")
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
}

func TestLoadConfig_NotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfig_UnknownKeyRejected(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "workerss: 4\n")

	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigParse for unknown key", err)
	}
}

func TestLoadConfig_WorkersFloor(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "workers: 0\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers = %d, want floor of 1", cfg.Workers)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "md2docx.yaml")
	if err := WriteDefaultConfig(path); err != nil {
		t.Fatalf("WriteDefaultConfig() error = %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() of generated config error = %v", err)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers = %d, want default 1", cfg.Workers)
	}

	// A second write must not clobber the existing file.
	if err := WriteDefaultConfig(path); err == nil {
		t.Error("WriteDefaultConfig() overwrote an existing config")
	}
}
