package exiftool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"shoebox/internal/services"
)

// ErrAmbiguousTag indicates the same tag was reported more than once with
// conflicting values. Extraction for that file fails.
var ErrAmbiguousTag = errors.New("ambiguous metadata tag")

// Tags holds the normalized tag-to-value mapping extracted from one file.
// Group prefixes are stripped; values are opaque strings.
type Tags map[string]string

// String returns the value for a tag name. Absence surfaces as a typed
// not-found error rather than an empty value.
func (t Tags) String(name string) (string, error) {
	value, ok := t[name]
	if !ok {
		return "", fmt.Errorf("%w: metadata tag %q", services.ErrNotFound, name)
	}
	return value, nil
}

// Has reports whether the tag is present.
func (t Tags) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// Client executes the exiftool binary and decodes its JSON output.
type Client struct {
	binary  string
	timeout time.Duration
}

// NewClient constructs a Client for the given binary. An empty binary falls
// back to "exiftool" on PATH.
func NewClient(binary string, timeout time.Duration) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "exiftool"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{binary: binary, timeout: timeout}
}

// Extract runs exiftool against the provided path and returns the flattened
// tag mapping. The same bare tag reported by two groups with different values
// is an ambiguous-metadata error.
func (c *Client) Extract(ctx context.Context, path string) (Tags, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrExternalTool, "exiftool", "extract", "empty path", nil)
	}

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, c.binary, "-json", "-G0", "--", path)
	output, err := cmd.Output()
	if err != nil {
		detail := commandErrorDetail(err)
		return nil, services.Wrap(services.ErrExternalTool, "exiftool", "extract", detail, err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(output, &decoded); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "exiftool", "parse output", "invalid JSON payload", err)
	}
	if len(decoded) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "exiftool", "parse output", "empty result set", nil)
	}

	return flatten(decoded[0])
}

// flatten strips group prefixes from grouped tag names. A bare tag seen twice
// with conflicting values makes the whole extraction fail.
func flatten(raw map[string]any) (Tags, error) {
	tags := make(Tags, len(raw))
	for key, value := range raw {
		name := key
		if idx := strings.LastIndex(key, ":"); idx >= 0 {
			name = key[idx+1:]
		}
		if name == "" || name == "SourceFile" {
			continue
		}
		rendered := renderValue(value)
		if existing, ok := tags[name]; ok && existing != rendered {
			return nil, fmt.Errorf("%w: %q reported as both %q and %q", ErrAmbiguousTag, name, existing, rendered)
		}
		tags[name] = rendered
	}
	return tags, nil
}

func renderValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func commandErrorDetail(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		if stderr != "" {
			return stderr
		}
		return exitErr.String()
	}
	return "command failed"
}
