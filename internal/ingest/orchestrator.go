package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"shoebox/internal/catalog"
	"shoebox/internal/config"
	"shoebox/internal/devices"
	"shoebox/internal/fileutil"
	"shoebox/internal/logging"
	"shoebox/internal/media"
	"shoebox/internal/services"
)

// Orchestrator owns one scan over a source tree.
type Orchestrator struct {
	store      *catalog.Store
	registry   *devices.Registry
	extractor  media.Extractor
	classifier media.Classifier
	destRoot   string
	logger     *slog.Logger
}

// New builds an orchestrator. The destination root must already be resolved
// from the catalog settings.
func New(cfg *config.Config, store *catalog.Store, registry *devices.Registry, extractor media.Extractor, destRoot string, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		store:      store,
		registry:   registry,
		extractor:  extractor,
		classifier: media.NewClassifier(cfg.Ingest.ImageExtensions, cfg.Ingest.VideoExtensions),
		destRoot:   destRoot,
		logger:     logger,
	}
}

// Scan walks root and ingests every recognized media file. It records an
// ingest run, returns its final state, and aborts on the first per-file fatal
// error, discarding catalog writes since the last flush.
func (o *Orchestrator) Scan(ctx context.Context, root string) (*catalog.Run, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "ingest", "scan",
			fmt.Sprintf("source directory %q", root), err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrConfiguration, "ingest", "scan",
			fmt.Sprintf("source %q is not a directory", root), nil)
	}

	run, err := o.store.StartRun(ctx, root)
	if err != nil {
		return nil, err
	}
	o.logger.Info("scan started",
		logging.String(logging.FieldRunID, run.ID),
		logging.String(logging.FieldPath, root))

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		if entry.IsDir() {
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		run.FilesSeen++
		return o.processFile(ctx, path, run)
	})

	if walkErr != nil {
		o.store.Abort()
		run.Status = catalog.RunStatusFailed
		run.ErrorMessage = walkErr.Error()
		if finishErr := o.store.FinishRun(ctx, run); finishErr != nil {
			o.logger.Warn("recording failed run", logging.Error(finishErr))
		}
		o.logger.Error("scan aborted",
			logging.String(logging.FieldRunID, run.ID),
			logging.Error(walkErr))
		return run, walkErr
	}

	if err := o.store.Flush(ctx); err != nil {
		run.Status = catalog.RunStatusFailed
		run.ErrorMessage = err.Error()
		if finishErr := o.store.FinishRun(ctx, run); finishErr != nil {
			o.logger.Warn("recording failed run", logging.Error(finishErr))
		}
		return run, err
	}

	run.Status = catalog.RunStatusCompleted
	if err := o.store.FinishRun(ctx, run); err != nil {
		return run, err
	}
	o.logger.Info("scan completed",
		logging.String(logging.FieldRunID, run.ID),
		logging.Int64("seen", run.FilesSeen),
		logging.Int64("skipped", run.FilesSkipped),
		logging.Int64("duplicates", run.Duplicates),
		logging.Int64("copied", run.FilesCopied),
		logging.Int64("cataloged", run.FilesCataloged))
	return run, nil
}

func (o *Orchestrator) processFile(ctx context.Context, path string, run *catalog.Run) error {
	descriptor := media.NewDescriptor(path, o.classifier, o.extractor)
	if descriptor.Kind() == media.KindUnrecognized {
		run.FilesSkipped++
		o.logger.Debug("skipping unrecognized file", logging.String(logging.FieldPath, path))
		return nil
	}

	model, err := descriptor.DeviceModel(ctx)
	if err != nil {
		return err
	}
	deviceMake, err := descriptor.DeviceMake(ctx)
	if err != nil {
		return err
	}
	device, err := o.registry.Resolve(ctx, deviceMake, model)
	if err != nil {
		return err
	}

	fp, err := descriptor.Fingerprint()
	if err != nil {
		return services.Wrap(services.ErrMetadata, "ingest", "fingerprint",
			fmt.Sprintf("hashing %s", path), err)
	}
	seen, err := o.store.ContainsFingerprint(ctx, fp)
	if err != nil {
		return err
	}
	if seen {
		run.Duplicates++
		o.logger.Info("duplicate content, not copied",
			logging.String(logging.FieldPath, path),
			logging.String(logging.FieldFingerprint, fp))
		return nil
	}

	canonicalPath, err := descriptor.CanonicalPath(ctx, device.ShortName)
	if err != nil {
		return err
	}
	taken, err := o.store.CanonicalPathTaken(ctx, canonicalPath)
	if err != nil {
		return err
	}
	if taken {
		// Same device, same second, different content. The colliding file
		// loses and the scan continues.
		run.Duplicates++
		o.logger.Warn("canonical path collision, not copied",
			logging.String(logging.FieldPath, path),
			logging.String("canonical_path", canonicalPath))
		return nil
	}

	destination := filepath.Join(o.destRoot, filepath.FromSlash(canonicalPath))
	onDisk, err := fileutil.PathExists(destination)
	if err != nil {
		return err
	}
	if onDisk {
		o.logger.Info("destination already present, copy skipped",
			logging.String(logging.FieldPath, destination))
	} else {
		if err := fileutil.CopyPreservingTimes(path, destination); err != nil {
			return services.Wrap(services.ErrTransient, "ingest", "copy",
				fmt.Sprintf("copying %s to %s", path, destination), err)
		}
		run.FilesCopied++
	}

	size, err := descriptor.Size()
	if err != nil {
		return err
	}
	captured, err := descriptor.CaptureTimestamp(ctx)
	if err != nil {
		return err
	}
	entry := &catalog.Entry{
		OriginalFilename: descriptor.OriginalFilename(),
		CanonicalPath:    canonicalPath,
		Fingerprint:      fp,
		SizeBytes:        size,
		CaptureTimestamp: captured,
		DeviceID:         device.ID,
	}
	inserted, err := o.store.InsertEntry(ctx, entry)
	if err != nil {
		return err
	}
	if !inserted {
		run.Duplicates++
		return nil
	}
	run.FilesCataloged++
	o.logger.Info("cataloged",
		logging.String(logging.FieldPath, path),
		logging.String("canonical_path", canonicalPath),
		logging.String(logging.FieldDevice, device.ShortName))
	return nil
}
