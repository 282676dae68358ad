// Package storage implements the durable SQLite-backed cost store and
// settings store.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"costmanager/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists cost records and settings in a single local
// SQLite file. The costs table is append-only: no update or delete
// statements exist for it.
type SQLiteRepository struct {
	db *sql.DB

	now func() time.Time
}

// NewSQLiteRepository opens (or creates) the database at dbPath and brings
// the schema up to date. Failures to open the engine surface as
// core.ErrStorageUnavailable.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: create db directory: %v", core.ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite database: %v", core.ErrStorageUnavailable, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", core.ErrStorageUnavailable, err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: run migrations: %v", core.ErrStorageUnavailable, err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) ready() error {
	if r == nil || r.db == nil {
		return core.ErrNotOpen
	}
	return nil
}

// AddCost implements store.CostStore.
func (r *SQLiteRepository) AddCost(ctx context.Context, cost core.NewCost) (core.CostRecord, error) {
	if err := r.ready(); err != nil {
		return core.CostRecord{}, err
	}
	if err := cost.Validate(); err != nil {
		return core.CostRecord{}, err
	}

	rec := core.Stamp(cost, r.now())

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO costs (sum, currency, category, description, year, month, day, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Sum, string(rec.Currency), rec.Category, rec.Description,
		rec.Year, rec.Month, rec.Date.Day, rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return core.CostRecord{}, fmt.Errorf("insert cost: %w", err)
	}

	rec.ID, err = res.LastInsertId()
	if err != nil {
		return core.CostRecord{}, fmt.Errorf("read inserted id: %w", err)
	}

	slog.InfoContext(ctx, "Cost saved to SQLite",
		"id", rec.ID,
		"sum", rec.Sum,
		"currency", rec.Currency,
		"category", rec.Category,
		"year", rec.Year,
		"month", rec.Month)

	return rec, nil
}

// QueryByYearMonth implements store.CostStore. The by_year_month index
// backs this lookup; ordering by id preserves insertion order.
func (r *SQLiteRepository) QueryByYearMonth(ctx context.Context, year, month int) ([]core.CostRecord, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sum, currency, category, description, year, month, day, created_at
		 FROM costs WHERE year = ? AND month = ? ORDER BY id`,
		year, month)
	if err != nil {
		return nil, fmt.Errorf("query costs by year and month: %w", err)
	}
	defer rows.Close()

	return scanCosts(rows)
}

// QueryAll implements store.CostStore.
func (r *SQLiteRepository) QueryAll(ctx context.Context) ([]core.CostRecord, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sum, currency, category, description, year, month, day, created_at
		 FROM costs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query all costs: %w", err)
	}
	defer rows.Close()

	return scanCosts(rows)
}

func scanCosts(rows *sql.Rows) ([]core.CostRecord, error) {
	records := []core.CostRecord{}
	for rows.Next() {
		var (
			rec       core.CostRecord
			currency  string
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.Sum, &currency, &rec.Category,
			&rec.Description, &rec.Year, &rec.Month, &rec.Date.Day, &createdAt); err != nil {
			return nil, fmt.Errorf("scan cost row: %w", err)
		}
		rec.Currency = core.Currency(currency)
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		rec.CreatedAt = ts
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cost rows: %w", err)
	}
	return records, nil
}

// Get implements settings.Store. Absent keys read as "".
func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	if err := r.ready(); err != nil {
		return "", err
	}

	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read setting %s: %w", key, err)
	}
	return value, nil
}

// Set implements settings.Store.
func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	if err := r.ready(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	return nil
}

// Delete implements settings.Store.
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if err := r.ready(); err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}
