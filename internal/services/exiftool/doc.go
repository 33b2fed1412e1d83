// Package exiftool wraps the exiftool binary behind a normalized tag lookup.
//
// The underlying tool is treated as a black box: it is executed once per file
// with JSON output enabled, group prefixes are stripped, and the resulting
// mapping is handed to callers as opaque strings. Conflicting duplicate tags
// fail extraction for the whole file.
package exiftool
