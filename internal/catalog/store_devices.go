package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shoebox/internal/services"
)

const deviceColumns = "id, model, short_name, make, description, created_at"

func scanDevice(row interface{ Scan(...any) error }) (Device, error) {
	var (
		device    Device
		createdAt string
	)
	if err := row.Scan(&device.ID, &device.Model, &device.ShortName, &device.Make, &device.Description, &createdAt); err != nil {
		return Device{}, err
	}
	if parsed, err := parseTimestamp(createdAt); err == nil {
		device.CreatedAt = parsed
	}
	return device, nil
}

// DeviceByModel looks up a device by its exact metadata model string.
func (s *Store) DeviceByModel(ctx context.Context, model string) (*Device, error) {
	row := s.q().QueryRowContext(ctx, "SELECT "+deviceColumns+" FROM device WHERE model = ?", model)
	device, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query device by model: %w", err)
	}
	return &device, nil
}

// DeviceByID fetches a device row by primary key.
func (s *Store) DeviceByID(ctx context.Context, id int64) (*Device, error) {
	row := s.q().QueryRowContext(ctx, "SELECT "+deviceColumns+" FROM device WHERE id = ?", id)
	device, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.Wrap(services.ErrNotFound, "catalog", "device-by-id", fmt.Sprintf("no device with id %d", id), nil)
		}
		return nil, fmt.Errorf("query device by id: %w", err)
	}
	return &device, nil
}

// InsertDevice registers a new device. Short names and model strings are both
// unique; collisions surface as configuration errors so the caller can prompt
// again. The write is flushed immediately: classification answers come from a
// human and must survive a later scan abort.
func (s *Store) InsertDevice(ctx context.Context, device *Device) error {
	if device.Model == "" || device.ShortName == "" {
		return services.Wrap(services.ErrConfiguration, "catalog", "insert-device", "device model and short name are required", nil)
	}
	now := time.Now()
	result, err := s.q().ExecContext(ctx,
		"INSERT INTO device (model, short_name, make, description, created_at) VALUES (?, ?, ?, ?, ?)",
		device.Model, device.ShortName, device.Make, device.Description, formatTimestamp(now))
	if err != nil {
		if isUniqueViolation(err, "device.short_name") {
			return services.Wrap(services.ErrConfiguration, "catalog", "insert-device",
				fmt.Sprintf("short name %q is already assigned to another device", device.ShortName), err)
		}
		if isUniqueViolation(err, "device.model") {
			return services.Wrap(services.ErrConfiguration, "catalog", "insert-device",
				fmt.Sprintf("device model %q is already registered", device.Model), err)
		}
		return fmt.Errorf("insert device: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("device insert id: %w", err)
	}
	device.ID = id
	device.CreatedAt = now
	return s.Flush(ctx)
}

// ShortNameTaken reports whether a short name is already assigned.
func (s *Store) ShortNameTaken(ctx context.Context, shortName string) (bool, error) {
	row := s.q().QueryRowContext(ctx, "SELECT COUNT(1) FROM device WHERE short_name = ?", shortName)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("query short name: %w", err)
	}
	return count > 0, nil
}

// ListDevices returns all registered devices ordered by short name.
func (s *Store) ListDevices(ctx context.Context) ([]Device, error) {
	rows, err := s.q().QueryContext(ctx, "SELECT "+deviceColumns+" FROM device ORDER BY short_name")
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	var devices []Device
	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		devices = append(devices, device)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate devices: %w", err)
	}
	return devices, nil
}
