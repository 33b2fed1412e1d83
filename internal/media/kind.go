package media

import (
	"path/filepath"
	"strings"
)

// Kind is the coarse file classification derived from the extension.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindImage
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unrecognized"
	}
}

// Classifier buckets files into image, video, or unrecognized by lower-cased
// extension. The two extension sets are disjoint; config validation enforces
// that before a classifier is ever built.
type Classifier struct {
	images map[string]struct{}
	videos map[string]struct{}
}

// NewClassifier builds a classifier from extension lists without leading dots.
func NewClassifier(imageExtensions, videoExtensions []string) Classifier {
	c := Classifier{
		images: make(map[string]struct{}, len(imageExtensions)),
		videos: make(map[string]struct{}, len(videoExtensions)),
	}
	for _, ext := range imageExtensions {
		c.images[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	for _, ext := range videoExtensions {
		c.videos[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return c
}

// Classify returns the kind for a file path.
func (c Classifier) Classify(path string) Kind {
	ext := NormalizedExtension(path)
	if ext == "" {
		return KindUnrecognized
	}
	if _, ok := c.images[ext]; ok {
		return KindImage
	}
	if _, ok := c.videos[ext]; ok {
		return KindVideo
	}
	return KindUnrecognized
}

// NormalizedExtension returns the lower-cased extension without the dot.
func NormalizedExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
