// Package verify audits the catalog against the destination tree. Rows whose
// destination file no longer exists are pruned; with checksums enabled the
// destination content is re-hashed and mismatches are flagged without
// touching the row, since drifted content still exists.
package verify

import (
	"context"
	"log/slog"
	"path/filepath"

	"shoebox/internal/catalog"
	"shoebox/internal/fileutil"
	"shoebox/internal/fingerprint"
	"shoebox/internal/logging"
)

// Mismatch flags a destination file whose content no longer matches its
// cataloged fingerprint.
type Mismatch struct {
	CanonicalPath   string
	WantFingerprint string
	GotFingerprint  string
}

// Report summarizes one verification pass.
type Report struct {
	Checked    int
	Pruned     []string
	Mismatches []Mismatch
}

// Clean reports whether the pass found nothing to prune or flag.
func (r *Report) Clean() bool {
	return len(r.Pruned) == 0 && len(r.Mismatches) == 0
}

// Verifier cross-checks catalog rows against the destination filesystem.
type Verifier struct {
	store    *catalog.Store
	destRoot string
	logger   *slog.Logger
}

// New builds a verifier rooted at the destination directory.
func New(store *catalog.Store, destRoot string, logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Verifier{store: store, destRoot: destRoot, logger: logger}
}

// Run walks every cataloged canonical path. Missing destination files prune
// their rows. When checksums is true the surviving files are re-hashed and
// compared against the stored fingerprint.
func (v *Verifier) Run(ctx context.Context, checksums bool) (*Report, error) {
	paths, err := v.store.CanonicalPaths(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, canonicalPath := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Checked++
		destination := filepath.Join(v.destRoot, filepath.FromSlash(canonicalPath))

		exists, err := fileutil.PathExists(destination)
		if err != nil {
			return nil, err
		}
		if !exists {
			if err := v.store.DeleteByPath(ctx, canonicalPath); err != nil {
				return nil, err
			}
			report.Pruned = append(report.Pruned, canonicalPath)
			v.logger.Warn("destination missing, catalog row pruned",
				logging.String("canonical_path", canonicalPath))
			continue
		}

		if !checksums {
			continue
		}
		entry, err := v.store.EntryForPath(ctx, canonicalPath)
		if err != nil {
			return nil, err
		}
		match, got, err := fingerprint.Verify(destination, entry.Fingerprint)
		if err != nil {
			return nil, err
		}
		if !match {
			report.Mismatches = append(report.Mismatches, Mismatch{
				CanonicalPath:   canonicalPath,
				WantFingerprint: entry.Fingerprint,
				GotFingerprint:  got,
			})
			v.logger.Error("fingerprint drift",
				logging.String("canonical_path", canonicalPath),
				logging.String("want", entry.Fingerprint),
				logging.String("got", got))
		}
	}

	v.logger.Info("verification finished",
		logging.Int("checked", report.Checked),
		logging.Int("pruned", len(report.Pruned)),
		logging.Int("mismatches", len(report.Mismatches)))
	return report, nil
}
