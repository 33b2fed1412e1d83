package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for values that would break ingestion.
func (c *Config) Validate() error {
	var problems []string

	// Image and video sets drive kind classification and must stay disjoint.
	imageSet := make(map[string]struct{}, len(c.Ingest.ImageExtensions))
	for _, ext := range c.Ingest.ImageExtensions {
		imageSet[ext] = struct{}{}
	}
	for _, ext := range c.Ingest.VideoExtensions {
		if _, ok := imageSet[ext]; ok {
			problems = append(problems, fmt.Sprintf("ingest: extension %q listed as both image and video", ext))
		}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level: unsupported value %q", c.Logging.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
