package store

import (
	"context"

	"costmanager/internal/core"
)

// Ports for durable cost persistence. Implementations: storage (SQLite)
// and store/memory (tests, memory backend).
type (
	// CostStore is an append-only collection of cost records. Records are
	// stamped with their creation date at insert and never updated or
	// deleted afterwards.
	CostStore interface {
		// AddCost validates the input, stamps the date fields, assigns a
		// unique id and appends the record durably.
		AddCost(ctx context.Context, cost core.NewCost) (core.CostRecord, error)

		// QueryByYearMonth returns all records stamped with exactly the
		// given year and month, in insertion order. Empty slice if none.
		QueryByYearMonth(ctx context.Context, year, month int) ([]core.CostRecord, error)

		// QueryAll returns every stored record.
		QueryAll(ctx context.Context) ([]core.CostRecord, error)
	}
)
