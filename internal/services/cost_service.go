// Package services orchestrates cost operations across the durable store
// and the optional event pipeline.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"costmanager/internal/core"
	"costmanager/internal/events"
	"costmanager/internal/store"
)

// CostService writes costs durably and then announces them. The durable
// write decides the outcome: a failed event publish is logged and swallowed
// so the caller still gets the stored record.
type CostService struct {
	costs     store.CostStore
	publisher *events.Publisher
}

func NewCostService(costs store.CostStore, publisher *events.Publisher) *CostService {
	return &CostService{costs: costs, publisher: publisher}
}

// CreateCost appends the cost and emits a cost-created event.
func (s *CostService) CreateCost(ctx context.Context, cost core.NewCost) (core.CostRecord, error) {
	rec, err := s.costs.AddCost(ctx, cost)
	if err != nil {
		return core.CostRecord{}, fmt.Errorf("save cost: %w", err)
	}

	if err := s.publisher.PublishCostCreated(ctx, rec.ID, rec.Year, rec.Month); err != nil {
		slog.ErrorContext(ctx, "Failed to publish cost created event",
			"id", rec.ID, "error", err)
		// The cost is saved; the event pipeline is best-effort.
	}

	return rec, nil
}

func (s *CostService) Close() error {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			return fmt.Errorf("close publisher: %w", err)
		}
	}
	return nil
}
