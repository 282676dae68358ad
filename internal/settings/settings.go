// Package settings persists small per-installation preferences, currently
// only the exchange-rates URL override.
package settings

import (
	"context"
	"fmt"
	"strings"
)

// RatesURLKey is the settings key holding the user's rates URL override.
const RatesURLKey = "ratesUrl"

// Store is a durable key-value settings store. An absent key reads as the
// empty string.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Service exposes typed accessors over the raw key-value store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// RatesURL returns the saved override, or "" when none is set ("" means
// "use the default URL").
func (s *Service) RatesURL(ctx context.Context) (string, error) {
	url, err := s.store.Get(ctx, RatesURLKey)
	if err != nil {
		return "", fmt.Errorf("read rates url: %w", err)
	}
	return strings.TrimSpace(url), nil
}

// SetRatesURL saves an override. A blank value clears it instead.
func (s *Service) SetRatesURL(ctx context.Context, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return s.Reset(ctx)
	}
	if err := s.store.Set(ctx, RatesURLKey, url); err != nil {
		return fmt.Errorf("save rates url: %w", err)
	}
	return nil
}

// Reset removes the override so the default URL applies again.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Delete(ctx, RatesURLKey); err != nil {
		return fmt.Errorf("reset rates url: %w", err)
	}
	return nil
}
