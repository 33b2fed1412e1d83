package media_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"shoebox/internal/media"
	"shoebox/internal/services"
	"shoebox/internal/services/exiftool"
	"shoebox/internal/testsupport"
)

func testClassifier() media.Classifier {
	return media.NewClassifier([]string{"jpg", "arw"}, []string{"mp4", "mov"})
}

func TestClassifierBucketsByExtension(t *testing.T) {
	c := testClassifier()

	cases := map[string]media.Kind{
		"photo.jpg":      media.KindImage,
		"PHOTO.JPG":      media.KindImage,
		"raw.ARW":        media.KindImage,
		"clip.mp4":       media.KindVideo,
		"clip.MOV":       media.KindVideo,
		"notes.txt":      media.KindUnrecognized,
		"no_extension":   media.KindUnrecognized,
		"archive.tar.gz": media.KindUnrecognized,
	}
	for path, want := range cases {
		if got := c.Classify(path); got != want {
			t.Fatalf("Classify(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestDescriptorMetadataAccessors(t *testing.T) {
	extractor := &testsupport.Extractor{Tags: exiftool.Tags{
		"Model":            "ILCE-7M3",
		"Make":             "Sony",
		"DateTimeOriginal": "2023:05:01 10:00:00",
	}}
	d := media.NewDescriptor("/src/photo.jpg", testClassifier(), extractor)
	ctx := context.Background()

	model, err := d.DeviceModel(ctx)
	if err != nil {
		t.Fatalf("DeviceModel: %v", err)
	}
	if model != "ILCE-7M3" {
		t.Fatalf("unexpected model %q", model)
	}
	deviceMake, err := d.DeviceMake(ctx)
	if err != nil {
		t.Fatalf("DeviceMake: %v", err)
	}
	if deviceMake != "Sony" {
		t.Fatalf("unexpected make %q", deviceMake)
	}
	captured, err := d.CaptureTimestamp(ctx)
	if err != nil {
		t.Fatalf("CaptureTimestamp: %v", err)
	}
	want := time.Date(2023, 5, 1, 10, 0, 0, 0, time.Local)
	if !captured.Equal(want) {
		t.Fatalf("capture timestamp %v, want %v", captured, want)
	}

	if extractor.Calls != 1 {
		t.Fatalf("expected a single extraction, got %d", extractor.Calls)
	}
}

func TestDescriptorVideoUsesCreateDate(t *testing.T) {
	extractor := &testsupport.Extractor{Tags: exiftool.Tags{
		"Model":      "Pixel 8 Pro",
		"Make":       "Google",
		"CreateDate": "2024:01:15 18:45:30",
	}}
	d := media.NewDescriptor("/src/clip.mp4", testClassifier(), extractor)

	captured, err := d.CaptureTimestamp(context.Background())
	if err != nil {
		t.Fatalf("CaptureTimestamp: %v", err)
	}
	want := time.Date(2024, 1, 15, 18, 45, 30, 0, time.Local)
	if !captured.Equal(want) {
		t.Fatalf("capture timestamp %v, want %v", captured, want)
	}
}

func TestDescriptorMissingTagIsMetadataError(t *testing.T) {
	extractor := &testsupport.Extractor{Tags: exiftool.Tags{"Make": "Sony"}}
	d := media.NewDescriptor("/src/photo.jpg", testClassifier(), extractor)

	_, err := d.DeviceModel(context.Background())
	if !errors.Is(err, services.ErrMetadata) {
		t.Fatalf("expected metadata error, got %v", err)
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found cause to be preserved, got %v", err)
	}
}

func TestDescriptorTimestampParseFailure(t *testing.T) {
	extractor := &testsupport.Extractor{Tags: exiftool.Tags{
		"Model":            "ILCE-7M3",
		"Make":             "Sony",
		"DateTimeOriginal": "May 1st 2023",
	}}
	d := media.NewDescriptor("/src/photo.jpg", testClassifier(), extractor)

	_, err := d.CaptureTimestamp(context.Background())
	if !errors.Is(err, services.ErrMetadata) {
		t.Fatalf("expected metadata error for malformed timestamp, got %v", err)
	}
}

func TestDescriptorFingerprintAndSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	testsupport.WriteFile(t, path, "image-bytes")

	d := media.NewDescriptor(path, testClassifier(), &testsupport.Extractor{})
	fp, err := d.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if fp == "" {
		t.Fatal("expected non-empty fingerprint")
	}
	again, err := d.Fingerprint()
	if err != nil || again != fp {
		t.Fatalf("expected cached fingerprint, got %q err %v", again, err)
	}

	size, err := d.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size != int64(len("image-bytes")) {
		t.Fatalf("unexpected size %d", size)
	}
}

func TestCanonicalPath(t *testing.T) {
	captured := time.Date(2023, 5, 1, 10, 0, 0, 0, time.Local)
	got := media.CanonicalPath("abc", captured, "jpg")
	want := "abc/2023-05/2023-05-01 10.00.00.abc.jpg"
	if got != want {
		t.Fatalf("CanonicalPath = %q, want %q", got, want)
	}
}

func TestDescriptorCanonicalPath(t *testing.T) {
	extractor := &testsupport.Extractor{Tags: exiftool.Tags{
		"Model":            "ABC123",
		"Make":             "Example",
		"DateTimeOriginal": "2023:05:01 10:00:00",
	}}
	d := media.NewDescriptor("/src/Photo.JPG", testClassifier(), extractor)

	got, err := d.CanonicalPath(context.Background(), "abc")
	if err != nil {
		t.Fatalf("CanonicalPath: %v", err)
	}
	if got != "abc/2023-05/2023-05-01 10.00.00.abc.jpg" {
		t.Fatalf("unexpected canonical path %q", got)
	}
}
