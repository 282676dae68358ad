package settings

import (
	"context"
	"testing"

	"costmanager/internal/store/memory"
)

func TestRatesURLDefaultsToEmpty(t *testing.T) {
	svc := NewService(memory.New())

	url, err := svc.RatesURL(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if url != "" {
		t.Fatalf("expected empty override, got %q", url)
	}
}

func TestSetRatesURLTrims(t *testing.T) {
	svc := NewService(memory.New())
	ctx := context.Background()

	if err := svc.SetRatesURL(ctx, "  https://example.com/rates.json\n"); err != nil {
		t.Fatalf("set: %v", err)
	}
	url, _ := svc.RatesURL(ctx)
	if url != "https://example.com/rates.json" {
		t.Fatalf("expected trimmed url, got %q", url)
	}
}

func TestSetBlankClearsOverride(t *testing.T) {
	svc := NewService(memory.New())
	ctx := context.Background()

	svc.SetRatesURL(ctx, "https://example.com/rates.json")
	if err := svc.SetRatesURL(ctx, "   "); err != nil {
		t.Fatalf("set blank: %v", err)
	}
	if url, _ := svc.RatesURL(ctx); url != "" {
		t.Fatalf("expected cleared override, got %q", url)
	}
}

func TestReset(t *testing.T) {
	svc := NewService(memory.New())
	ctx := context.Background()

	svc.SetRatesURL(ctx, "https://example.com/rates.json")
	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if url, _ := svc.RatesURL(ctx); url != "" {
		t.Fatalf("expected cleared override, got %q", url)
	}
}
