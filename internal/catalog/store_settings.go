package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shoebox/internal/services"
)

// Destination returns the configured destination root, or a typed not-found
// error when the catalog has never been initialized with one.
func (s *Store) Destination(ctx context.Context) (string, error) {
	row := s.q().QueryRowContext(ctx, "SELECT value FROM settings WHERE setting = ?", DestinationSetting)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", services.Wrap(services.ErrNotFound, "catalog", "destination", "destination root is not set", nil)
		}
		return "", fmt.Errorf("query destination: %w", err)
	}
	return value, nil
}

// SetDestination stores the destination root, replacing any previous value.
// The write is immediate, not batched; destination changes are rare and must
// survive a later scan abort.
func (s *Store) SetDestination(ctx context.Context, root string) error {
	if root == "" {
		return services.Wrap(services.ErrConfiguration, "catalog", "set-destination", "destination root must not be empty", nil)
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO settings (setting, value) VALUES (?, ?) ON CONFLICT(setting) DO UPDATE SET value = excluded.value",
		DestinationSetting, root)
	if err != nil {
		return fmt.Errorf("set destination: %w", err)
	}
	return nil
}
