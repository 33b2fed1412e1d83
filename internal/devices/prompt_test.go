package devices_test

import (
	"context"
	"strings"
	"testing"

	"shoebox/internal/devices"
)

type fakeShortNames struct {
	taken map[string]bool
}

func (f fakeShortNames) ShortNameTaken(_ context.Context, shortName string) (bool, error) {
	return f.taken[shortName], nil
}

func TestPromptClassifiesDevice(t *testing.T) {
	input := strings.NewReader("A7III\nMy main camera\ny\n")
	var output strings.Builder
	resolver := devices.NewPromptResolver(input, &output, fakeShortNames{})

	shortName, description, err := resolver.Classify(context.Background(), "Sony", "ILCE-7M3")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if shortName != "a7iii" {
		t.Fatalf("expected lower-cased short name, got %q", shortName)
	}
	if description != "My main camera" {
		t.Fatalf("unexpected description %q", description)
	}
	if !strings.Contains(output.String(), "Model: ILCE-7M3") {
		t.Fatalf("prompt output missing model: %q", output.String())
	}
}

func TestPromptDefaultsDescription(t *testing.T) {
	input := strings.NewReader("a7iii\n\n\n")
	var output strings.Builder
	resolver := devices.NewPromptResolver(input, &output, fakeShortNames{})

	_, description, err := resolver.Classify(context.Background(), "SONY", "ILCE-7M3")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if description != "Sony Ilce-7M3" {
		t.Fatalf("unexpected suggested description %q", description)
	}
}

func TestPromptRejectsInvalidAndTakenShortNames(t *testing.T) {
	input := strings.NewReader("has space\npixel8\npixel8b\ndesc\ny\n")
	var output strings.Builder
	resolver := devices.NewPromptResolver(input, &output, fakeShortNames{taken: map[string]bool{"pixel8": true}})

	shortName, _, err := resolver.Classify(context.Background(), "Google", "Pixel 8 Pro")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if shortName != "pixel8b" {
		t.Fatalf("unexpected short name %q", shortName)
	}
	if !strings.Contains(output.String(), "already assigned") {
		t.Fatalf("expected taken short name message, got %q", output.String())
	}
	if !strings.Contains(output.String(), "may only contain") {
		t.Fatalf("expected validation message, got %q", output.String())
	}
}

func TestPromptReclassifiesOnRejection(t *testing.T) {
	input := strings.NewReader("wrong\nd1\nn\nright\nd2\ny\n")
	var output strings.Builder
	resolver := devices.NewPromptResolver(input, &output, fakeShortNames{})

	shortName, description, err := resolver.Classify(context.Background(), "Sony", "ILCE-7M3")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if shortName != "right" || description != "d2" {
		t.Fatalf("expected second round answers, got %q %q", shortName, description)
	}
}
