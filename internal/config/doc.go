// Package config loads, normalizes, and validates shoebox configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and keeps the image/video extension sets
// disjoint so kind classification stays unambiguous. The Config type
// centralizes every knob the CLI needs in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
