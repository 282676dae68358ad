// Package reports composes cost-store queries with freshly fetched exchange
// rates to produce the monthly, per-category and yearly report shapes.
package reports

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"costmanager/internal/core"
	"costmanager/internal/store"
)

// RateSource yields a validated exchange-rate table. An empty url selects
// the default endpoint.
type RateSource interface {
	Fetch(ctx context.Context, url string) (core.RateTable, error)
}

// Builder produces reports in a caller-chosen currency. It holds no state
// beyond its two collaborators: rates are fetched anew on every call and
// never cached, so each report reflects the latest table.
type Builder struct {
	costs store.CostStore
	rates RateSource
}

func NewBuilder(costs store.CostStore, rates RateSource) *Builder {
	return &Builder{costs: costs, rates: rates}
}

// gather runs the store query and the rate fetch concurrently. The two have
// no dependency on each other, so overlapping them saves the slower of the
// two round trips.
func (b *Builder) gather(ctx context.Context, ratesURL string,
	query func(context.Context) ([]core.CostRecord, error)) ([]core.CostRecord, core.RateTable, error) {

	var (
		records []core.CostRecord
		table   core.RateTable
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = query(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		table, err = b.rates.Fetch(gctx, ratesURL)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return records, table, nil
}

// MonthlyReport returns the itemized report for a year and month. Each line
// carries the sum converted into currency; the grand total sums the
// converted lines and is rounded once at the end.
func (b *Builder) MonthlyReport(ctx context.Context, year, month int, currency core.Currency, ratesURL string) (core.MonthlyReport, error) {
	records, table, err := b.gather(ctx, ratesURL, func(ctx context.Context) ([]core.CostRecord, error) {
		return b.costs.QueryByYearMonth(ctx, year, month)
	})
	if err != nil {
		return core.MonthlyReport{}, err
	}

	views := make([]core.CostRecordView, len(records))
	var total float64
	for i, rec := range records {
		converted, err := core.Convert(rec.Sum, rec.Currency, currency, table)
		if err != nil {
			return core.MonthlyReport{}, fmt.Errorf("convert cost %d: %w", rec.ID, err)
		}
		views[i] = core.CostRecordView{
			Sum:         converted,
			Currency:    rec.Currency,
			Category:    rec.Category,
			Description: rec.Description,
			Date:        rec.Date,
		}
		total += converted
	}

	slog.DebugContext(ctx, "Monthly report built",
		"year", year, "month", month, "currency", currency, "costs", len(views))

	return core.MonthlyReport{
		Year:  year,
		Month: month,
		Costs: views,
		Total: core.ReportTotal{Currency: currency, Total: core.Round2(total)},
	}, nil
}

// CategoryTotalsForMonth returns per-category converted totals for a year
// and month. Buckets are rounded once at the end, not per addition.
func (b *Builder) CategoryTotalsForMonth(ctx context.Context, year, month int, currency core.Currency, ratesURL string) (core.CategoryTotals, error) {
	records, table, err := b.gather(ctx, ratesURL, func(ctx context.Context) ([]core.CostRecord, error) {
		return b.costs.QueryByYearMonth(ctx, year, month)
	})
	if err != nil {
		return nil, err
	}

	totals := core.CategoryTotals{}
	for _, rec := range records {
		converted, err := core.Convert(rec.Sum, rec.Currency, currency, table)
		if err != nil {
			return nil, fmt.Errorf("convert cost %d: %w", rec.ID, err)
		}
		totals[rec.Category] += converted
	}
	for category, sum := range totals {
		totals[category] = core.Round2(sum)
	}
	return totals, nil
}

// YearTotals returns one converted total per month of the given year,
// January first. Months with no records stay 0. Each slot is rounded once
// after accumulation.
func (b *Builder) YearTotals(ctx context.Context, year int, currency core.Currency, ratesURL string) (core.YearTotals, error) {
	records, table, err := b.gather(ctx, ratesURL, b.costs.QueryAll)
	if err != nil {
		return core.YearTotals{}, err
	}

	var totals core.YearTotals
	for _, rec := range records {
		if rec.Year != year {
			continue
		}
		converted, err := core.Convert(rec.Sum, rec.Currency, currency, table)
		if err != nil {
			return core.YearTotals{}, fmt.Errorf("convert cost %d: %w", rec.ID, err)
		}
		totals[rec.Month-1] += converted
	}
	for i := range totals {
		totals[i] = core.Round2(totals[i])
	}
	return totals, nil
}
