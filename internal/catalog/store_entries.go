package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shoebox/internal/services"
)

// ContainsFingerprint reports whether a fingerprint is already cataloged,
// including entries buffered in the open batch.
func (s *Store) ContainsFingerprint(ctx context.Context, fingerprint string) (bool, error) {
	row := s.q().QueryRowContext(ctx, "SELECT COUNT(1) FROM media WHERE fingerprint = ?", fingerprint)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("query fingerprint: %w", err)
	}
	return count > 0, nil
}

// CanonicalPathTaken reports whether a canonical path is already claimed by a
// cataloged entry, including entries buffered in the open batch.
func (s *Store) CanonicalPathTaken(ctx context.Context, canonicalPath string) (bool, error) {
	row := s.q().QueryRowContext(ctx, "SELECT COUNT(1) FROM media WHERE canonical_path = ?", canonicalPath)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("query canonical path: %w", err)
	}
	return count > 0, nil
}

// InsertEntry buffers a media record. It returns false without error when the
// fingerprint is already cataloged, so callers can treat races between the
// pre-check and the insert as ordinary duplicates. A canonical path collision
// is an integrity failure; callers are expected to have resolved paths first.
func (s *Store) InsertEntry(ctx context.Context, entry *Entry) (bool, error) {
	q, err := s.beginBatch(ctx)
	if err != nil {
		return false, err
	}
	now := time.Now()
	result, err := q.ExecContext(ctx,
		`INSERT INTO media (original_filename, canonical_path, fingerprint, size_bytes, capture_timestamp, device_id, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.OriginalFilename, entry.CanonicalPath, entry.Fingerprint, entry.SizeBytes,
		formatCaptureTime(entry.CaptureTimestamp), entry.DeviceID, formatTimestamp(now))
	if err != nil {
		if isUniqueViolation(err, "media.fingerprint") {
			return false, nil
		}
		if isUniqueViolation(err, "media.canonical_path") {
			return false, services.Wrap(services.ErrIntegrity, "catalog", "insert-entry",
				fmt.Sprintf("canonical path %q already cataloged", entry.CanonicalPath), err)
		}
		return false, fmt.Errorf("insert media entry: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("media insert id: %w", err)
	}
	entry.ID = id
	entry.CreatedAt = now
	if err := s.noteInsert(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// CanonicalPaths streams every cataloged canonical path in path order.
func (s *Store) CanonicalPaths(ctx context.Context) ([]string, error) {
	rows, err := s.q().QueryContext(ctx, "SELECT canonical_path FROM media ORDER BY canonical_path")
	if err != nil {
		return nil, fmt.Errorf("list canonical paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scan canonical path: %w", err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate canonical paths: %w", err)
	}
	return paths, nil
}

// EntryForPath returns the entry cataloged at a canonical path with its
// device, or a typed not-found error.
func (s *Store) EntryForPath(ctx context.Context, canonicalPath string) (*EntryWithDevice, error) {
	row := s.q().QueryRowContext(ctx,
		`SELECT m.id, m.original_filename, m.canonical_path, m.fingerprint, m.size_bytes, m.capture_timestamp, m.device_id, m.created_at,
                d.id, d.model, d.short_name, d.make, d.description, d.created_at
         FROM media m JOIN device d ON d.id = m.device_id
         WHERE m.canonical_path = ?`, canonicalPath)

	var (
		result           EntryWithDevice
		captureTimestamp string
		entryCreated     string
		deviceCreated    string
	)
	err := row.Scan(
		&result.Entry.ID, &result.OriginalFilename, &result.CanonicalPath, &result.Fingerprint,
		&result.SizeBytes, &captureTimestamp, &result.DeviceID, &entryCreated,
		&result.Device.ID, &result.Device.Model, &result.Device.ShortName,
		&result.Device.Make, &result.Device.Description, &deviceCreated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.Wrap(services.ErrNotFound, "catalog", "entry-for-path",
				fmt.Sprintf("no entry cataloged at %q", canonicalPath), nil)
		}
		return nil, fmt.Errorf("query entry for path: %w", err)
	}
	if parsed, parseErr := parseCaptureTime(captureTimestamp); parseErr == nil {
		result.CaptureTimestamp = parsed
	}
	if parsed, parseErr := parseTimestamp(entryCreated); parseErr == nil {
		result.Entry.CreatedAt = parsed
	}
	if parsed, parseErr := parseTimestamp(deviceCreated); parseErr == nil {
		result.Device.CreatedAt = parsed
	}
	return &result, nil
}

// DeleteByPath removes the entry cataloged at a canonical path. The write is
// immediate, not batched; verification repairs must survive regardless of scan
// batch state.
func (s *Store) DeleteByPath(ctx context.Context, canonicalPath string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM media WHERE canonical_path = ?", canonicalPath)
	if err != nil {
		return fmt.Errorf("delete media entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete media entry rows: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "catalog", "delete-by-path",
			fmt.Sprintf("no entry cataloged at %q", canonicalPath), nil)
	}
	return nil
}

// CountEntries returns the number of cataloged media entries.
func (s *Store) CountEntries(ctx context.Context) (int64, error) {
	row := s.q().QueryRowContext(ctx, "SELECT COUNT(1) FROM media")
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count media entries: %w", err)
	}
	return count, nil
}
