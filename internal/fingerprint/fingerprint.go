// Package fingerprint computes content fingerprints for media files.
//
// A fingerprint is the lower-case hex SHA-256 digest of a file's bytes,
// computed by streaming fixed-size chunks so arbitrarily large videos never
// get buffered whole. Identical bytes always produce identical fingerprints
// regardless of filename or metadata.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// chunkSize is the read buffer used while streaming file contents.
const chunkSize = 64 * 1024

// File streams the file at path through SHA-256 and returns the hex digest.
// A read error mid-stream propagates; there is no retry.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for fingerprint: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(hasher, f, buf); err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Verify recomputes the fingerprint of path and reports whether it matches
// want. The recomputed value is returned for reporting.
func Verify(path, want string) (bool, string, error) {
	got, err := File(path)
	if err != nil {
		return false, "", err
	}
	return got == want, got, nil
}
