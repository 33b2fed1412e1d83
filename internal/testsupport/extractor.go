package testsupport

import (
	"context"

	"shoebox/internal/services/exiftool"
)

// Extractor returns canned metadata tags without invoking any binary.
type Extractor struct {
	Tags   exiftool.Tags
	ByPath map[string]exiftool.Tags
	Err    error
	Calls  int
}

// Extract implements the media extractor contract with canned data.
func (e *Extractor) Extract(_ context.Context, path string) (exiftool.Tags, error) {
	e.Calls++
	if e.Err != nil {
		return nil, e.Err
	}
	if e.ByPath != nil {
		if tags, ok := e.ByPath[path]; ok {
			return tags, nil
		}
	}
	return e.Tags, nil
}
