package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMetadata marks per-file fatal metadata problems: missing required
	// tags, ambiguous duplicate tags, timestamp parse failures.
	ErrMetadata = errors.New("metadata error")
	// ErrExternalTool marks failures of external binaries such as exiftool.
	ErrExternalTool = errors.New("external tool error")
	// ErrConfiguration marks missing or unusable configuration, including an
	// unresolved destination root and non-interactive device classification.
	ErrConfiguration = errors.New("configuration error")
	// ErrIntegrity marks store uniqueness violations that reach the store
	// layer despite the pre-checks. These indicate a logic defect.
	ErrIntegrity = errors.New("integrity error")
	// ErrNotFound marks typed key-not-found lookups (metadata tags, catalog rows).
	ErrNotFound = errors.New("not found")
	// ErrTransient marks everything else.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short classification label for logging.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMetadata):
		return "metadata"
	case errors.Is(err, ErrExternalTool):
		return "external_tool"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrIntegrity):
		return "integrity"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "transient"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
