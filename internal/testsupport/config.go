package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"shoebox/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.CatalogDir = filepath.Join(base, "catalog")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.ExifTool.TimeoutSeconds = 5

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithFlushInterval overrides the batch commit cadence on the test config.
func WithFlushInterval(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ingest.FlushInterval = n
	}
}

// WithExiftoolBinary points the config at a specific metadata binary.
func WithExiftoolBinary(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.ExifTool.Binary = path
	}
}

// WithStubbedExiftool writes a stub exiftool that emits the provided JSON and
// points the config at it.
func WithStubbedExiftool(payload string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		target := filepath.Join(binDir, "exiftool")
		script := "#!/bin/sh\ncat <<'EOF'\n" + payload + "\nEOF\n"
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			b.t.Fatalf("write stub exiftool: %v", err)
		}
		b.cfg.ExifTool.Binary = target
	}
}
