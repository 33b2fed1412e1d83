package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shoebox/internal/fingerprint"
	"shoebox/internal/services"
	"shoebox/internal/services/exiftool"
)

// Metadata tag names as exiftool reports them.
const (
	tagModel            = "Model"
	tagMake             = "Make"
	tagDateTimeOriginal = "DateTimeOriginal"
	tagCreateDate       = "CreateDate"
)

// captureTimeLayout is the fixed timestamp format carried in source metadata.
// The value is naive local time; no timezone conversion is applied.
const captureTimeLayout = "2006:01:02 15:04:05"

// Extractor supplies the tag mapping for a file.
type Extractor interface {
	Extract(ctx context.Context, path string) (exiftool.Tags, error)
}

// Descriptor wraps one file on disk and derives its properties lazily, caching
// each for the descriptor's lifetime. A descriptor is owned by a single
// goroutine for the duration of processing one file.
type Descriptor struct {
	path      string
	kind      Kind
	extractor Extractor

	tags     exiftool.Tags
	tagsErr  error
	tagsDone bool

	fp     string
	fpErr  error
	fpDone bool

	size     int64
	sizeErr  error
	sizeDone bool
}

// NewDescriptor builds a descriptor for path, classified by the provided
// classifier.
func NewDescriptor(path string, classifier Classifier, extractor Extractor) *Descriptor {
	return &Descriptor{
		path:      path,
		kind:      classifier.Classify(path),
		extractor: extractor,
	}
}

// Path returns the source file path.
func (d *Descriptor) Path() string {
	return d.path
}

// Kind returns the extension-based classification.
func (d *Descriptor) Kind() Kind {
	return d.kind
}

// OriginalFilename returns the source basename.
func (d *Descriptor) OriginalFilename() string {
	return filepath.Base(d.path)
}

// Extension returns the lower-cased extension without the dot.
func (d *Descriptor) Extension() string {
	return NormalizedExtension(d.path)
}

// Fingerprint computes and caches the content hash.
func (d *Descriptor) Fingerprint() (string, error) {
	if !d.fpDone {
		d.fp, d.fpErr = fingerprint.File(d.path)
		d.fpDone = true
	}
	return d.fp, d.fpErr
}

// Size returns the file size in bytes.
func (d *Descriptor) Size() (int64, error) {
	if !d.sizeDone {
		info, err := os.Stat(d.path)
		if err != nil {
			d.sizeErr = fmt.Errorf("stat %s: %w", d.path, err)
		} else {
			d.size = info.Size()
		}
		d.sizeDone = true
	}
	return d.size, d.sizeErr
}

func (d *Descriptor) metadata(ctx context.Context) (exiftool.Tags, error) {
	if !d.tagsDone {
		d.tags, d.tagsErr = d.extractor.Extract(ctx, d.path)
		d.tagsDone = true
	}
	return d.tags, d.tagsErr
}

// DeviceModel returns the device model metadata tag.
func (d *Descriptor) DeviceModel(ctx context.Context) (string, error) {
	return d.requiredTag(ctx, tagModel)
}

// DeviceMake returns the device make metadata tag.
func (d *Descriptor) DeviceMake(ctx context.Context) (string, error) {
	return d.requiredTag(ctx, tagMake)
}

func (d *Descriptor) requiredTag(ctx context.Context, name string) (string, error) {
	tags, err := d.metadata(ctx)
	if err != nil {
		return "", err
	}
	value, err := tags.String(name)
	if err != nil {
		return "", services.Wrap(services.ErrMetadata, "media", "required-tag",
			fmt.Sprintf("%s: required tag %s", d.OriginalFilename(), name), err)
	}
	return value, nil
}

// CaptureTimestamp parses the capture time from metadata. Images carry it in
// DateTimeOriginal, videos in CreateDate.
func (d *Descriptor) CaptureTimestamp(ctx context.Context) (time.Time, error) {
	name := tagDateTimeOriginal
	if d.kind == KindVideo {
		name = tagCreateDate
	}
	raw, err := d.requiredTag(ctx, name)
	if err != nil {
		return time.Time{}, err
	}
	parsed, err := time.ParseInLocation(captureTimeLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, services.Wrap(services.ErrMetadata, "media", "capture-timestamp",
			fmt.Sprintf("%s: tag %s holds %q, want %s", d.OriginalFilename(), name, raw, captureTimeLayout), err)
	}
	return parsed, nil
}

// CanonicalPath derives the destination-relative path for this file once its
// device short name is known.
func (d *Descriptor) CanonicalPath(ctx context.Context, shortName string) (string, error) {
	captured, err := d.CaptureTimestamp(ctx)
	if err != nil {
		return "", err
	}
	return CanonicalPath(shortName, captured, d.Extension()), nil
}

// CanonicalPath is the deterministic naming function: short name bucket,
// month directory, second-resolution timestamp with the short name and
// lower-cased extension.
func CanonicalPath(shortName string, captured time.Time, ext string) string {
	return fmt.Sprintf("%s/%s/%s.%s.%s",
		shortName,
		captured.Format("2006-01"),
		captured.Format("2006-01-02 15.04.05"),
		shortName,
		ext)
}
