package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"CrossWatch/internal/collector"
	"CrossWatch/internal/model"
	"CrossWatch/internal/strategy"
	"CrossWatch/internal/watchlist"
)

func fixtureBars(closes []float64) []model.OHLCV {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, cl := range closes {
		bars[i] = model.OHLCV{Time: base.AddDate(0, 0, i), Close: cl}
	}
	return bars
}

func newTestServer(t *testing.T, fetcher collector.Fetcher, seed string) *Server {
	t.Helper()
	wl, err := watchlist.NewStore(filepath.Join(t.TempDir(), "watchlist.json"), seed)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	col := collector.NewCollector(fetcher, 1, 2, strategy.MethodSMA, 365, 1440)
	return NewServer(col, wl, 0)
}

func postForm(t *testing.T, s *Server, path, symbol string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"symbol": {symbol}}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

func getJSON(t *testing.T, s *Server, path string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s response: %v (body %q)", path, err, rec.Body.String())
		}
	}
	return rec
}

func TestAddStock(t *testing.T) {
	s := newTestServer(t, &collector.MockFetcher{Price: 100}, "")

	rec := postForm(t, s, "/add_stock", "reliance.ns")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Added RELIANCE.NS") {
		t.Errorf("body: %s", rec.Body.String())
	}

	// Duplicate add fails with 400 and leaves the store unchanged.
	rec = postForm(t, s, "/add_stock", "RELIANCE.NS")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate add: expected 400, got %d", rec.Code)
	}
	var wl map[string][]string
	getJSON(t, s, "/api/watchlist", &wl)
	if len(wl["watchlist"]) != 1 {
		t.Errorf("watchlist changed after failed add: %v", wl)
	}
}

func TestAddStock_EmptySymbol(t *testing.T) {
	s := newTestServer(t, &collector.MockFetcher{}, "")
	rec := postForm(t, s, "/add_stock", "   ")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Symbol is required") {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestRemoveStock(t *testing.T) {
	s := newTestServer(t, &collector.MockFetcher{}, "AAPL,MSFT")

	rec := postForm(t, s, "/remove_stock", "aapl")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = postForm(t, s, "/remove_stock", "TSLA")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing symbol: expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "TSLA not found") {
		t.Errorf("body: %s", rec.Body.String())
	}

	var wl map[string][]string
	getJSON(t, s, "/api/watchlist", &wl)
	if got := wl["watchlist"]; len(got) != 1 || got[0] != "MSFT" {
		t.Errorf("watchlist after remove: %v", got)
	}
}

func TestSignalEndpoint(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Price:      101,
		DailyData:  fixtureBars([]float64{100, 99, 101}),
		HourlyData: fixtureBars([]float64{100, 100, 100}),
	}
	s := newTestServer(t, fetcher, "")

	var resp struct {
		Symbol string   `json:"symbol"`
		Price  *float64 `json:"price"`
		Daily  struct {
			Signal   string `json:"signal"`
			Interval string `json:"interval"`
			AsOf     string `json:"as_of"`
		} `json:"daily"`
		Hourly struct {
			Signal string `json:"signal"`
		} `json:"hourly"`
	}
	rec := getJSON(t, s, "/api/signal/infy.ns", &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp.Symbol != "INFY.NS" {
		t.Errorf("symbol not normalized: %q", resp.Symbol)
	}
	if resp.Price == nil || *resp.Price != 101 {
		t.Errorf("price: %v", resp.Price)
	}
	if resp.Daily.Signal != "golden_cross" {
		t.Errorf("daily signal: %q", resp.Daily.Signal)
	}
	if resp.Daily.Interval != "1d" {
		t.Errorf("daily interval: %q", resp.Daily.Interval)
	}
	if resp.Daily.AsOf == "" {
		t.Error("as_of missing")
	}
	if resp.Hourly.Signal != "no_crossover" {
		t.Errorf("hourly signal: %q", resp.Hourly.Signal)
	}
}

func TestSignalEndpoint_SourceDown(t *testing.T) {
	s := newTestServer(t, &collector.MockFetcher{Err: collector.ErrDataUnavailable}, "")

	var resp struct {
		Price *float64 `json:"price"`
		Daily struct {
			Signal string `json:"signal"`
		} `json:"daily"`
	}
	rec := getJSON(t, s, "/api/signal/NOPE", &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp.Price != nil {
		t.Errorf("price must be null when the source fails, got %v", *resp.Price)
	}
	if resp.Daily.Signal != "insufficient_data" {
		t.Errorf("expected insufficient_data, got %q", resp.Daily.Signal)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &collector.MockFetcher{}, "")
	var resp map[string]string
	rec := getJSON(t, s, "/health", &resp)
	if rec.Code != http.StatusOK || resp["status"] != "healthy" {
		t.Errorf("health: %d %v", rec.Code, resp)
	}
}

func TestDashboard(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Price:      250.5,
		DailyData:  fixtureBars([]float64{100, 99, 101}),
		HourlyData: fixtureBars([]float64{100, 100, 100}),
	}
	s := newTestServer(t, fetcher, "TSLA")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "TSLA") || !strings.Contains(body, "250.50") {
		t.Errorf("dashboard missing row data: %s", body)
	}
	if !strings.Contains(body, "golden_cross") {
		t.Errorf("dashboard missing signal: %s", body)
	}
}

func TestAPIIndex(t *testing.T) {
	s := newTestServer(t, &collector.MockFetcher{}, "")
	var resp map[string]interface{}
	rec := getJSON(t, s, "/api", &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := resp["endpoints"]; !ok {
		t.Errorf("missing endpoints list: %v", resp)
	}
}
