package preflight

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"shoebox/internal/services"
	"shoebox/internal/testsupport"
)

func TestCheckDirectoryAccessOK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccessNotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccessNotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFreeSpace(t *testing.T) {
	result := CheckFreeSpace(t.TempDir(), 1)
	if !result.Passed {
		t.Fatalf("expected at least 1 GiB free in tmp, got: %s", result.Detail)
	}

	result = CheckFreeSpace(t.TempDir(), 0)
	if !result.Passed {
		t.Fatal("expected disabled minimum to pass")
	}
}

func TestCheckExiftool(t *testing.T) {
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "exiftool")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	if result := CheckExiftool(stub); !result.Passed {
		t.Fatalf("expected stub binary to pass, got: %s", result.Detail)
	}
	if result := CheckExiftool("definitely-not-exiftool"); result.Passed {
		t.Fatal("expected missing binary to fail")
	}
}

func TestRunAllAndEvaluate(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "exiftool")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	cfg.ExifTool.Binary = stub
	cfg.Ingest.MinFreeGiB = 0

	results := RunAll(cfg, t.TempDir())
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if err := Evaluate(results); err != nil {
		t.Fatalf("expected all checks to pass: %v", err)
	}

	results = RunAll(cfg, filepath.Join(t.TempDir(), "missing"))
	err := Evaluate(results)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(nil, "/tmp"); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}
