package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"costmanager/internal/core"
	"costmanager/internal/rates"
)

// reportParams holds the query parameters shared by all report endpoints.
type reportParams struct {
	Year     int
	Month    int
	Currency core.Currency
	RatesURL string
}

// parseReportParams extracts year/month/currency/ratesUrl from the query
// string. Year and month default to the current date, currency to USD.
func parseReportParams(r *http.Request) (reportParams, error) {
	now := time.Now()
	params := reportParams{
		Year:     now.Year(),
		Month:    int(now.Month()),
		Currency: core.USD,
		RatesURL: strings.TrimSpace(r.URL.Query().Get("ratesUrl")),
	}

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return params, fmt.Errorf("invalid year %q", v)
		}
		params.Year = y
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return params, fmt.Errorf("invalid month %q", v)
		}
		params.Month = m
	}
	if v := strings.TrimSpace(r.URL.Query().Get("currency")); v != "" {
		cur := core.Currency(v)
		if !cur.IsSupported() {
			return params, fmt.Errorf("unsupported currency %q", v)
		}
		params.Currency = cur
	}

	return params, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeDomainError maps the error taxonomy onto HTTP statuses: caller input
// problems are 4xx, upstream rate-endpoint problems are 502, storage
// problems are 503.
func writeDomainError(w http.ResponseWriter, err error) {
	var (
		ve *core.ValidationError
		ne *rates.NetworkError
		pe *rates.ParseError
	)
	switch {
	case errors.Is(err, core.ErrNotOpen), errors.Is(err, core.ErrStorageUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	case errors.As(err, &ne), errors.As(err, &pe), errors.As(err, &ve):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrInvalidSum), errors.Is(err, core.ErrInvalidCurrency),
		errors.Is(err, core.ErrEmptyCategory), errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrDescriptionTooLong):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
