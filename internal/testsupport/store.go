package testsupport

import (
	"context"
	"testing"

	"shoebox/internal/catalog"
	"shoebox/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewDevice registers a device for tests using the provided store.
func NewDevice(t testing.TB, store *catalog.Store, model, shortName string) *catalog.Device {
	t.Helper()

	device := &catalog.Device{Model: model, ShortName: shortName}
	if err := store.InsertDevice(context.Background(), device); err != nil {
		t.Fatalf("store.InsertDevice: %v", err)
	}
	return device
}
