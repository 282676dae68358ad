package core

import (
	"errors"
	"strings"
	"time"
)

const (
	USD  Currency = "USD"
	ILS  Currency = "ILS"
	GBP  Currency = "GBP"
	EURO Currency = "EURO"
)

// SupportedCurrencies lists every accepted currency code. The order is fixed:
// rate-table validation reports the first missing code in this order.
var SupportedCurrencies = []Currency{USD, ILS, GBP, EURO}

type (
	Currency string

	// DateParts holds the day-of-month display metadata nested under the
	// record's Date field. The shape is kept for compatibility with
	// existing consumers of the costs collection.
	DateParts struct {
		Day int `json:"day"`
	}

	// NewCost is the caller-supplied part of a cost record. Year, month,
	// day and the creation instant are stamped by the store at insert.
	NewCost struct {
		Sum         float64  `json:"sum"`
		Currency    Currency `json:"currency"`
		Category    string   `json:"category"`
		Description string   `json:"description"`
	}

	// CostRecord is a persisted cost entry. Year and month are derived
	// once at creation and never recomputed.
	CostRecord struct {
		ID          int64     `json:"id"`
		Sum         float64   `json:"sum"`
		Currency    Currency  `json:"currency"`
		Category    string    `json:"category"`
		Description string    `json:"description"`
		Year        int       `json:"year"`
		Month       int       `json:"month"` // 1-12
		Date        DateParts `json:"Date"`
		CreatedAt   time.Time `json:"createdAt"`
	}
)

var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrNotOpen            = errors.New("cost store is not open")
	ErrInvalidSum         = errors.New("invalid sum")
	ErrInvalidCurrency    = errors.New("unsupported currency")
	ErrEmptyCategory      = errors.New("empty category")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
)

// IsSupported reports whether c is one of the accepted currency codes.
func (c Currency) IsSupported() bool {
	for _, cur := range SupportedCurrencies {
		if c == cur {
			return true
		}
	}
	return false
}

func (nc NewCost) Validate() error {
	if nc.Sum <= 0 {
		return ErrInvalidSum
	}
	if !nc.Currency.IsSupported() {
		return ErrInvalidCurrency
	}
	if strings.TrimSpace(nc.Category) == "" {
		return ErrEmptyCategory
	}
	if len(nc.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if strings.TrimSpace(nc.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// Stamp fills the time-derived fields of a record from the creation instant.
func Stamp(nc NewCost, now time.Time) CostRecord {
	return CostRecord{
		Sum:         nc.Sum,
		Currency:    nc.Currency,
		Category:    strings.TrimSpace(nc.Category),
		Description: strings.TrimSpace(nc.Description),
		Year:        now.Year(),
		Month:       int(now.Month()),
		Date:        DateParts{Day: now.Day()},
		CreatedAt:   now,
	}
}
