package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shoebox/internal/logging"
)

func TestNewConsoleWritesComponentPrefix(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Level:       "debug",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "ingest")
	logger.Info("file cataloged", logging.String(logging.FieldPath, "/src/a b.jpg"), logging.Int("size", 42))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "INFO ingest: file cataloged") {
		t.Fatalf("expected component prefix in output, got %q", line)
	}
	if !strings.Contains(line, `path="/src/a b.jpg"`) {
		t.Fatalf("expected quoted path attr, got %q", line)
	}
	if !strings.Contains(line, "size=42") {
		t.Fatalf("expected size attr, got %q", line)
	}
}

func TestNewJSONFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "json",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Warn("dedup hit", logging.String(logging.FieldFingerprint, "abc123"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	for _, fragment := range []string{`"level":"warn"`, `"msg":"dedup hit"`, `"fingerprint":"abc123"`} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %s in JSON output, got %q", fragment, line)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Level:       "warn",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("should be dropped")
	logger.Error("should remain")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "should be dropped") {
		t.Fatal("info line leaked through warn level")
	}
	if !strings.Contains(string(data), "should remain") {
		t.Fatal("error line missing")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Info("discarded")
	logger.Error("also discarded", logging.Error(os.ErrNotExist))
}
