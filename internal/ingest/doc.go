// Package ingest walks a source tree and drives each discovered file through
// classification, device resolution, deduplication, copy, and cataloging.
//
// The pipeline is sequential and blocking. A file moves through the states
// Discovered, Classified (or Skipped for unrecognized extensions),
// DeviceResolved, Deduplicated (or Rejected as a duplicate), Copied, and
// Cataloged. The first per-file fatal error aborts the whole scan: the open
// catalog batch is rolled back, so only work committed at earlier flush
// points survives. Cancellation is honored between files, never mid-file.
package ingest
