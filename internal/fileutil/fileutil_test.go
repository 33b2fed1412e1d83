package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"shoebox/internal/fileutil"
)

func TestCopyPreservingTimes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dst := filepath.Join(dir, "dest", "2023-05", "copy.jpg")
	if err := os.WriteFile(src, []byte("image bytes"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	mtime := time.Date(2023, 5, 1, 10, 0, 0, 0, time.Local)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatalf("chtimes source: %v", err)
	}

	if err := fileutil.CopyPreservingTimes(src, dst); err != nil {
		t.Fatalf("CopyPreservingTimes failed: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(data) != "image bytes" {
		t.Fatalf("unexpected destination content %q", data)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat destination: %v", err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Fatalf("expected preserved mtime %v, got %v", mtime, info.ModTime())
	}

	if _, err := os.Stat(dst + ".partial"); !os.IsNotExist(err) {
		t.Fatal("expected temporary file to be cleaned up")
	}
}

func TestCopyPreservingTimesMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := fileutil.CopyPreservingTimes(filepath.Join(dir, "absent"), filepath.Join(dir, "out"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "out")); !os.IsNotExist(statErr) {
		t.Fatal("expected no destination file after failed copy")
	}
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present")
	if err := os.WriteFile(present, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	ok, err := fileutil.PathExists(present)
	if err != nil || !ok {
		t.Fatalf("expected present file, ok=%v err=%v", ok, err)
	}

	ok, err = fileutil.PathExists(filepath.Join(dir, "absent"))
	if err != nil || ok {
		t.Fatalf("expected absent file, ok=%v err=%v", ok, err)
	}
}
