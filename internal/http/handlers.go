package http

import (
	"encoding/json"
	"net/http"
	"time"

	"costmanager/internal/core"
)

// SuggestedCategories is the fixed list offered by the add-cost form. The
// store accepts any category string; this list is a suggestion only.
var SuggestedCategories = []string{
	"FOOD",
	"TRANSPORTATION",
	"EDUCATION",
	"HEALTHCARE",
	"ENTERTAINMENT",
	"UTILITIES",
	"HOUSING",
	"SHOPPING",
	"TRAVEL",
	"CAR",
	"OTHER",
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]string)

	// A settings read exercises the durable store end to end.
	if _, err := s.settings.RatesURL(r.Context()); err != nil {
		checks["store"] = "failed: " + err.Error()
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["store"] = "ok"
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleCosts accepts a new cost entry. The server stamps the date fields
// and assigns the id; the response body is the stored record.
func (s *Server) handleCosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var cost core.NewCost
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&cost); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	cost.Category = sanitizeInput(cost.Category)
	cost.Description = sanitizeInput(cost.Description)

	rec, err := s.costs.CreateCost(r.Context(), cost)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// handleCategories returns the suggested category taxonomy.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": SuggestedCategories,
		"currencies": core.SupportedCurrencies,
	})
}

// handleMonthlyReport serves the itemized monthly report.
func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	params, err := parseReportParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ratesURL, err := s.resolveRatesURL(r, params.RatesURL)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	report, err := s.builder.MonthlyReport(r.Context(), params.Year, params.Month, params.Currency, ratesURL)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleCategoryTotals serves per-category totals for one month (pie chart
// data).
func (s *Server) handleCategoryTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	params, err := parseReportParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ratesURL, err := s.resolveRatesURL(r, params.RatesURL)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	totals, err := s.builder.CategoryTotalsForMonth(r.Context(), params.Year, params.Month, params.Currency, ratesURL)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"year":     params.Year,
		"month":    params.Month,
		"currency": params.Currency,
		"totals":   totals,
	})
}

// handleYearTotals serves one total per month of a year (bar chart data).
func (s *Server) handleYearTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	params, err := parseReportParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ratesURL, err := s.resolveRatesURL(r, params.RatesURL)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	totals, err := s.builder.YearTotals(r.Context(), params.Year, params.Currency, ratesURL)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"year":     params.Year,
		"currency": params.Currency,
		"totals":   totals,
	})
}

// handleRatesURL reads, saves or resets the persisted rates URL override.
func (s *Server) handleRatesURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		url, err := s.settings.RatesURL(ctx)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": url})

	case http.MethodPut:
		var body struct {
			URL string `json:"url"`
		}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<12)).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
			return
		}
		if err := s.settings.SetRatesURL(ctx, body.URL); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": sanitizeInput(body.URL)})

	case http.MethodDelete:
		if err := s.settings.Reset(ctx); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": ""})

	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// resolveRatesURL picks the rates endpoint for a report request: an explicit
// query parameter wins, then the persisted override, then the deployment
// override; empty selects the fetcher's default.
func (s *Server) resolveRatesURL(r *http.Request, fromQuery string) (string, error) {
	if fromQuery != "" {
		return fromQuery, nil
	}
	saved, err := s.settings.RatesURL(r.Context())
	if err != nil {
		return "", err
	}
	if saved != "" {
		return saved, nil
	}
	return s.DefaultRatesURL, nil
}
