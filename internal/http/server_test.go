package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"costmanager/internal/core"
	"costmanager/internal/rates"
	"costmanager/internal/reports"
	"costmanager/internal/services"
	"costmanager/internal/settings"
	"costmanager/internal/store/memory"
)

func ratesEndpoint(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T, at time.Time) (*Server, *memory.Store) {
	t.Helper()
	st := memory.NewAt(func() time.Time { return at })
	builder := reports.NewBuilder(st, rates.New(nil))
	srv := NewServer(":0", services.NewCostService(st, nil), builder, settings.NewService(st))
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv, st
}

func doJSON(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthAndReady(t *testing.T) {
	srv, _ := newTestServer(t, time.Now())

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := doJSON(t, srv, http.MethodGet, path, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestCreateCost(t *testing.T) {
	srv, _ := newTestServer(t, time.Date(2024, time.June, 5, 12, 0, 0, 0, time.UTC))

	rr := doJSON(t, srv, http.MethodPost, "/api/costs",
		`{"sum":12.5,"currency":"USD","category":"FOOD","description":"lunch"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var rec core.CostRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rec.ID == 0 || rec.Sum != 12.5 || rec.Year != 2024 || rec.Month != 6 {
		t.Fatalf("unexpected record: %+v", rec)
	}

	// Wrong method
	if rr := doJSON(t, srv, http.MethodGet, "/api/costs", ""); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
	// Malformed body
	if rr := doJSON(t, srv, http.MethodPost, "/api/costs", `{"sum":`); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	// Domain validation
	if rr := doJSON(t, srv, http.MethodPost, "/api/costs",
		`{"sum":-1,"currency":"USD","category":"FOOD","description":"x"}`); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if rr := doJSON(t, srv, http.MethodPost, "/api/costs",
		`{"sum":5,"currency":"EUR","category":"FOOD","description":"x"}`); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unsupported currency, got %d", rr.Code)
	}
}

func TestMonthlyReportEndpoint(t *testing.T) {
	endpoint := ratesEndpoint(t, `{"USD":1,"GBP":0.8,"EURO":0.9,"ILS":3.5}`)
	srv, _ := newTestServer(t, time.Date(2024, time.June, 5, 12, 0, 0, 0, time.UTC))

	doJSON(t, srv, http.MethodPost, "/api/costs",
		`{"sum":100,"currency":"USD","category":"FOOD","description":"groceries"}`)
	doJSON(t, srv, http.MethodPost, "/api/costs",
		`{"sum":80,"currency":"GBP","category":"TRAVEL","description":"train"}`)

	rr := doJSON(t, srv, http.MethodGet,
		"/api/reports/month?year=2024&month=6&currency=USD&ratesUrl="+endpoint.URL, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var report core.MonthlyReport
	if err := json.Unmarshal(rr.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report.Costs) != 2 || report.Total.Total != 200 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestMonthlyReportBadParams(t *testing.T) {
	srv, _ := newTestServer(t, time.Now())

	for _, target := range []string{
		"/api/reports/month?month=13",
		"/api/reports/month?year=abc",
		"/api/reports/month?currency=JPY",
	} {
		if rr := doJSON(t, srv, http.MethodGet, target, ""); rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rr.Code)
		}
	}
}

func TestReportPropagatesRateFailures(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(failing.Close)

	srv, _ := newTestServer(t, time.Now())
	rr := doJSON(t, srv, http.MethodGet, "/api/reports/month?ratesUrl="+failing.URL, "")
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}

	invalid := ratesEndpoint(t, `{"USD":1,"GBP":0.8}`)
	rr = doJSON(t, srv, http.MethodGet, "/api/reports/month?ratesUrl="+invalid.URL, "")
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for invalid table, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "missing currency") {
		t.Fatalf("expected validation message, got %s", rr.Body.String())
	}
}

func TestCategoryTotalsEndpoint(t *testing.T) {
	endpoint := ratesEndpoint(t, `{"USD":1,"GBP":0.8,"EURO":0.9,"ILS":3.5}`)
	srv, _ := newTestServer(t, time.Date(2024, time.June, 5, 12, 0, 0, 0, time.UTC))

	doJSON(t, srv, http.MethodPost, "/api/costs",
		`{"sum":10,"currency":"USD","category":"FOOD","description":"a"}`)
	doJSON(t, srv, http.MethodPost, "/api/costs",
		`{"sum":20,"currency":"USD","category":"FOOD","description":"b"}`)

	rr := doJSON(t, srv, http.MethodGet,
		"/api/reports/categories?year=2024&month=6&currency=USD&ratesUrl="+endpoint.URL, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Totals map[string]float64 `json:"totals"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Totals["FOOD"] != 30 {
		t.Fatalf("expected FOOD=30, got %v", resp.Totals)
	}
}

func TestYearTotalsEndpoint(t *testing.T) {
	endpoint := ratesEndpoint(t, `{"USD":1,"GBP":0.8,"EURO":0.9,"ILS":3.5}`)
	srv, _ := newTestServer(t, time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC))

	doJSON(t, srv, http.MethodPost, "/api/costs",
		`{"sum":50,"currency":"USD","category":"CAR","description":"fuel"}`)

	rr := doJSON(t, srv, http.MethodGet,
		"/api/reports/year?year=2024&currency=USD&ratesUrl="+endpoint.URL, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Totals []float64 `json:"totals"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Totals) != 12 {
		t.Fatalf("expected 12 slots, got %d", len(resp.Totals))
	}
	if resp.Totals[2] != 50 {
		t.Fatalf("expected March=50, got %v", resp.Totals)
	}
}

func TestRatesURLSettingsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, time.Now())

	// Default: empty override
	rr := doJSON(t, srv, http.MethodGet, "/api/settings/rates-url", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"url":""`) {
		t.Fatalf("unexpected default: %d %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, srv, http.MethodPut, "/api/settings/rates-url", `{"url":"https://example.com/r.json"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("put: %d %s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, srv, http.MethodGet, "/api/settings/rates-url", "")
	if !strings.Contains(rr.Body.String(), "https://example.com/r.json") {
		t.Fatalf("expected saved url, got %s", rr.Body.String())
	}

	rr = doJSON(t, srv, http.MethodDelete, "/api/settings/rates-url", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: %d", rr.Code)
	}
	rr = doJSON(t, srv, http.MethodGet, "/api/settings/rates-url", "")
	if !strings.Contains(rr.Body.String(), `"url":""`) {
		t.Fatalf("expected cleared url, got %s", rr.Body.String())
	}

	if rr := doJSON(t, srv, http.MethodPost, "/api/settings/rates-url", "{}"); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestSavedOverrideUsedByReports(t *testing.T) {
	endpoint := ratesEndpoint(t, `{"USD":1,"GBP":0.8,"EURO":0.9,"ILS":3.5}`)
	srv, _ := newTestServer(t, time.Date(2024, time.June, 5, 12, 0, 0, 0, time.UTC))

	doJSON(t, srv, http.MethodPut, "/api/settings/rates-url", `{"url":"`+endpoint.URL+`"}`)

	// No ratesUrl parameter: the saved override must be used.
	rr := doJSON(t, srv, http.MethodGet, "/api/reports/month?year=2024&month=6&currency=GBP", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 via saved override, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, time.Now())

	rr := doJSON(t, srv, http.MethodGet, "/api/categories", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "FOOD") || !strings.Contains(rr.Body.String(), "EURO") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}
