package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shoebox/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.toml")

	cfg, resolved, exists, err := config.Load(missing)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing config file")
	}
	if resolved != missing {
		t.Fatalf("expected resolved path %q, got %q", missing, resolved)
	}
	if cfg.Ingest.FlushInterval != 25 {
		t.Fatalf("expected default flush interval 25, got %d", cfg.Ingest.FlushInterval)
	}
	if cfg.ExifTool.Binary != "exiftool" {
		t.Fatalf("expected default exiftool binary, got %q", cfg.ExifTool.Binary)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected console log format, got %q", cfg.Logging.Format)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
catalog_dir = "` + filepath.Join(dir, "catalog") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[ingest]
image_extensions = [".JPG", "png", "png"]
video_extensions = ["MOV"]
flush_interval = 10

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if len(cfg.Ingest.ImageExtensions) != 2 {
		t.Fatalf("expected deduplicated image extensions, got %v", cfg.Ingest.ImageExtensions)
	}
	if cfg.Ingest.ImageExtensions[0] != "jpg" {
		t.Fatalf("expected lower-cased dot-stripped extension, got %q", cfg.Ingest.ImageExtensions[0])
	}
	if cfg.Ingest.VideoExtensions[0] != "mov" {
		t.Fatalf("expected lower-cased video extension, got %q", cfg.Ingest.VideoExtensions[0])
	}
	if cfg.Ingest.FlushInterval != 10 {
		t.Fatalf("expected flush interval 10, got %d", cfg.Ingest.FlushInterval)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging values, got %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestLoadRejectsOverlappingExtensionSets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[ingest]
image_extensions = ["jpg", "shared"]
video_extensions = ["shared"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected validation error for overlapping extension sets")
	}
	if !strings.Contains(err.Error(), "shared") {
		t.Fatalf("expected error to name the overlapping extension, got %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CatalogDir = filepath.Join(dir, "catalog")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, sub := range []string{"catalog", "logs"} {
		info, err := os.Stat(filepath.Join(dir, sub))
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s to exist", sub)
		}
	}
}

func TestCatalogPaths(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.CatalogDir = "/var/lib/shoebox"
	if cfg.CatalogPath() != "/var/lib/shoebox/catalog.db" {
		t.Fatalf("unexpected catalog path: %s", cfg.CatalogPath())
	}
	if cfg.LockPath() != "/var/lib/shoebox/catalog.lock" {
		t.Fatalf("unexpected lock path: %s", cfg.LockPath())
	}
}
