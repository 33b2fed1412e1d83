package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shoebox/internal/services"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := "[paths]\n" +
		"catalog_dir = \"" + filepath.Join(base, "catalog") + "\"\n" +
		"log_dir = \"" + filepath.Join(base, "logs") + "\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	output, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(output, target) {
		t.Fatalf("expected output to mention %s, got %q", target, output)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config on disk: %v", err)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	cfgPath := writeTestConfig(t)

	output, err := runCommand(t, "--config", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(output, "flush_interval") || !strings.Contains(output, "exiftool") {
		t.Fatalf("unexpected config show output: %q", output)
	}
}

func TestDevicesEmptyCatalog(t *testing.T) {
	cfgPath := writeTestConfig(t)

	output, err := runCommand(t, "--config", cfgPath, "devices")
	if err != nil {
		t.Fatalf("devices: %v", err)
	}
	if !strings.Contains(output, "No devices registered") {
		t.Fatalf("unexpected devices output: %q", output)
	}
}

func TestRunsEmptyCatalog(t *testing.T) {
	cfgPath := writeTestConfig(t)

	output, err := runCommand(t, "--config", cfgPath, "runs")
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if !strings.Contains(output, "No ingest runs recorded") {
		t.Fatalf("unexpected runs output: %q", output)
	}
}

func TestScanWithoutDestinationNonInteractive(t *testing.T) {
	cfgPath := writeTestConfig(t)
	source := t.TempDir()

	_, err := runCommand(t, "--config", cfgPath, "scan-directory", source)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error without a destination root, got %v", err)
	}
}

func TestVerifyWithoutDestination(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := runCommand(t, "--config", cfgPath, "verify")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error without a destination root, got %v", err)
	}
}

func TestShowUnknownPath(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := runCommand(t, "--config", cfgPath, "show", "nope/2023-01/nope.jpg")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
