package preflight

import (
	"fmt"
	"strings"

	"shoebox/internal/config"
	"shoebox/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check that applies before scanning into destRoot.
func RunAll(cfg *config.Config, destRoot string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Destination root", destRoot),
		CheckFreeSpace(destRoot, cfg.Ingest.MinFreeGiB),
		CheckExiftool(cfg.ExiftoolBinary()),
	}
	return results
}

// Evaluate converts failed results into a single configuration error.
func Evaluate(results []Result) error {
	var failures []string
	for _, result := range results {
		if !result.Passed {
			failures = append(failures, fmt.Sprintf("%s: %s", result.Name, result.Detail))
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return services.Wrap(services.ErrConfiguration, "preflight", "run",
		strings.Join(failures, "; "), nil)
}
