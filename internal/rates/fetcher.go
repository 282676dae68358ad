// Package rates fetches and validates exchange-rate tables from a remote
// JSON endpoint.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"costmanager/internal/core"
)

// DefaultURL is used when no override is configured. The endpoint must
// return a JSON object of the shape {"USD":1,"GBP":0.8,"EURO":0.9,"ILS":3.5};
// extra fields are ignored.
const DefaultURL = "https://cost-manager-sy6v.onrender.com/rates.json"

const fetchTimeout = 10 * time.Second

// Doer performs a single HTTP request. *http.Client satisfies it; tests
// substitute a fake.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NetworkError reports an unreachable endpoint or a non-success status.
type NetworkError struct {
	URL    string
	Status string
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch exchange rates from %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch exchange rates from %s: unexpected status %s", e.URL, e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a response body that is not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "parse exchange rates: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// Fetcher retrieves rate tables over HTTP. Tables are never cached: every
// call issues a fresh request so reports always use the latest rates.
type Fetcher struct {
	client Doer
}

// New creates a Fetcher backed by the given HTTP client. A nil client gets
// a default one with a request timeout.
func New(client Doer) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &Fetcher{client: client}
}

// Fetch retrieves and validates a rate table. An empty or whitespace-only
// url selects DefaultURL; anything else is trimmed and used as-is.
func (f *Fetcher) Fetch(ctx context.Context, url string) (core.RateTable, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		url = DefaultURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &NetworkError{URL: url, Status: resp.Status}
	}

	// Decode into a loosely-typed map so extra fields pass through
	// harmlessly. A supported code carrying a non-numeric value is a
	// validation failure, not a parse failure.
	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &ParseError{Err: err}
	}

	table := make(core.RateTable, len(core.SupportedCurrencies))
	for _, cur := range core.SupportedCurrencies {
		rate, ok := raw[string(cur)].(float64)
		if !ok {
			return nil, &core.ValidationError{Msg: fmt.Sprintf("missing currency %s", cur)}
		}
		table[cur] = rate
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "Exchange rates fetched", "url", url, "currencies", len(table))
	return table, nil
}
