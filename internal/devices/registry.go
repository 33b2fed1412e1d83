package devices

import (
	"context"
	"fmt"
	"log/slog"

	"shoebox/internal/catalog"
	"shoebox/internal/logging"
	"shoebox/internal/services"
)

// Resolver classifies a device model the registry has never seen. The
// production implementation prompts a human; tests supply canned answers.
type Resolver interface {
	Classify(ctx context.Context, deviceMake, model string) (shortName, description string, err error)
}

// Registry resolves device models to persisted devices, creating entries
// through the resolver on first sight.
type Registry struct {
	store    *catalog.Store
	resolver Resolver
	logger   *slog.Logger
}

// NewRegistry builds a registry over the catalog store.
func NewRegistry(store *catalog.Store, resolver Resolver, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Registry{store: store, resolver: resolver, logger: logger}
}

// Resolve returns the device for a model, classifying and persisting it first
// if the model has never been seen. A model is classified at most once; later
// calls hit the catalog.
func (r *Registry) Resolve(ctx context.Context, deviceMake, model string) (*catalog.Device, error) {
	if model == "" {
		return nil, services.Wrap(services.ErrMetadata, "devices", "resolve", "device model is empty", nil)
	}
	device, err := r.store.DeviceByModel(ctx, model)
	if err != nil {
		return nil, err
	}
	if device != nil {
		return device, nil
	}

	r.logger.Info("unseen device model, classifying",
		logging.String(logging.FieldDevice, model),
		logging.String("make", deviceMake))

	shortName, description, err := r.resolver.Classify(ctx, deviceMake, model)
	if err != nil {
		return nil, err
	}

	device = &catalog.Device{
		Model:       model,
		ShortName:   shortName,
		Make:        deviceMake,
		Description: description,
	}
	if err := r.store.InsertDevice(ctx, device); err != nil {
		return nil, err
	}
	r.logger.Info("device registered",
		logging.String(logging.FieldDevice, model),
		logging.String("short_name", shortName))
	return device, nil
}

// Exists reports whether a model is already registered.
func (r *Registry) Exists(ctx context.Context, model string) (bool, error) {
	device, err := r.store.DeviceByModel(ctx, model)
	if err != nil {
		return false, err
	}
	return device != nil, nil
}

// ShortNameByModel returns the short name for a registered model.
func (r *Registry) ShortNameByModel(ctx context.Context, model string) (string, error) {
	device, err := r.store.DeviceByModel(ctx, model)
	if err != nil {
		return "", err
	}
	if device == nil {
		return "", services.Wrap(services.ErrNotFound, "devices", "short-name",
			fmt.Sprintf("no device registered for model %q", model), nil)
	}
	return device.ShortName, nil
}

// ByID returns a registered device by its row id.
func (r *Registry) ByID(ctx context.Context, id int64) (*catalog.Device, error) {
	return r.store.DeviceByID(ctx, id)
}
