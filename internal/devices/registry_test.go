package devices_test

import (
	"context"
	"errors"
	"testing"

	"shoebox/internal/devices"
	"shoebox/internal/services"
	"shoebox/internal/testsupport"
)

func TestResolveClassifiesOnce(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	resolver := &testsupport.Resolver{ShortName: "a7iii", Description: "Sony A7 III"}
	registry := devices.NewRegistry(store, resolver, nil)
	ctx := context.Background()

	device, err := registry.Resolve(ctx, "Sony", "ILCE-7M3")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if device.ShortName != "a7iii" || device.Make != "Sony" || device.Description != "Sony A7 III" {
		t.Fatalf("unexpected device %+v", device)
	}

	again, err := registry.Resolve(ctx, "Sony", "ILCE-7M3")
	if err != nil {
		t.Fatalf("Resolve again: %v", err)
	}
	if again.ID != device.ID {
		t.Fatalf("expected the persisted device, got %+v", again)
	}
	if resolver.Calls != 1 {
		t.Fatalf("expected exactly one classification, got %d", resolver.Calls)
	}
}

func TestResolveEmptyModel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	registry := devices.NewRegistry(store, &testsupport.Resolver{ShortName: "x"}, nil)

	_, err := registry.Resolve(context.Background(), "Sony", "")
	if !errors.Is(err, services.ErrMetadata) {
		t.Fatalf("expected metadata error for empty model, got %v", err)
	}
}

func TestResolvePropagatesResolverError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	cause := services.Wrap(services.ErrConfiguration, "devices", "classify", "no terminal", nil)
	registry := devices.NewRegistry(store, &testsupport.Resolver{Err: cause}, nil)

	_, err := registry.Resolve(context.Background(), "Sony", "ILCE-7M3")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected resolver error to propagate, got %v", err)
	}

	exists, err := registry.Exists(context.Background(), "ILCE-7M3")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Fatal("failed classification must not register the device")
	}
}

func TestShortNameByModel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.NewDevice(t, store, "Pixel 8 Pro", "pixel8")
	registry := devices.NewRegistry(store, &testsupport.Resolver{}, nil)
	ctx := context.Background()

	shortName, err := registry.ShortNameByModel(ctx, "Pixel 8 Pro")
	if err != nil {
		t.Fatalf("ShortNameByModel: %v", err)
	}
	if shortName != "pixel8" {
		t.Fatalf("unexpected short name %q", shortName)
	}

	_, err = registry.ShortNameByModel(ctx, "unknown")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found for unknown model, got %v", err)
	}
}

func TestByID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	device := testsupport.NewDevice(t, store, "ILCE-7M3", "a7iii")
	registry := devices.NewRegistry(store, &testsupport.Resolver{}, nil)
	ctx := context.Background()

	got, err := registry.ByID(ctx, device.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if got.Model != "ILCE-7M3" {
		t.Fatalf("unexpected device %+v", got)
	}

	_, err = registry.ByID(ctx, device.ID+100)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found for unknown id, got %v", err)
	}
}
