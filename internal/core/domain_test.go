package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewCostValidate(t *testing.T) {
	valid := NewCost{Sum: 12.5, Currency: USD, Category: "FOOD", Description: "lunch"}

	cases := []struct {
		name   string
		mutate func(*NewCost)
		want   error
	}{
		{"valid", func(*NewCost) {}, nil},
		{"zero sum", func(c *NewCost) { c.Sum = 0 }, ErrInvalidSum},
		{"negative sum", func(c *NewCost) { c.Sum = -3 }, ErrInvalidSum},
		{"unknown currency", func(c *NewCost) { c.Currency = "EUR" }, ErrInvalidCurrency},
		{"blank category", func(c *NewCost) { c.Category = "  " }, ErrEmptyCategory},
		{"blank description", func(c *NewCost) { c.Description = "" }, ErrEmptyDescription},
		{"long description", func(c *NewCost) { c.Description = strings.Repeat("x", 201) }, ErrDescriptionTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cost := valid
			tc.mutate(&cost)
			err := cost.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestStampDerivesDateFields(t *testing.T) {
	now := time.Date(2024, time.March, 7, 15, 4, 5, 0, time.UTC)
	rec := Stamp(NewCost{Sum: 9.99, Currency: ILS, Category: " FOOD ", Description: " lunch "}, now)

	if rec.Year != 2024 || rec.Month != 3 || rec.Date.Day != 7 {
		t.Fatalf("unexpected date stamp: year=%d month=%d day=%d", rec.Year, rec.Month, rec.Date.Day)
	}
	if !rec.CreatedAt.Equal(now) {
		t.Fatalf("createdAt not preserved: %v", rec.CreatedAt)
	}
	if rec.Category != "FOOD" || rec.Description != "lunch" {
		t.Fatalf("fields not trimmed: %q %q", rec.Category, rec.Description)
	}
}

func TestCurrencyIsSupported(t *testing.T) {
	for _, cur := range SupportedCurrencies {
		if !cur.IsSupported() {
			t.Fatalf("%s should be supported", cur)
		}
	}
	for _, cur := range []Currency{"EUR", "JPY", "", "usd"} {
		if cur.IsSupported() {
			t.Fatalf("%s should not be supported", cur)
		}
	}
}
