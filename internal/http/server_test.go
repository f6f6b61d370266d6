package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"akfinance/internal/cache"
	"akfinance/internal/config"
	"akfinance/internal/core"
	"akfinance/internal/ledgerapi"
	"akfinance/internal/log"
	"akfinance/internal/services"
	"akfinance/internal/settings"
)

type stubFetcher struct {
	page *ledgerapi.Page
}

func (f *stubFetcher) FetchPage(ctx context.Context, page, size int) (*ledgerapi.Page, error) {
	return f.page, nil
}

func newTestServer(t *testing.T) *Server {
	return newTestServerWithLimit(t, 1000)
}

func newTestServerWithLimit(t *testing.T, requestsPerMinute int) *Server {
	t.Helper()

	cfg := &config.Config{
		Port:               "0",
		RateLimitPerMinute: requestsPerMinute,
		LedgerPageSize:     20,
		MaxPrincipal:       50_000_000,
		MaxRatePercent:     100,
		MaxTermMonths:      480,
		MaxHorizonYears:    40,
		MaxContribution:    500_000,
	}
	logger := log.New(log.DefaultConfig())

	fetcher := &stubFetcher{page: &ledgerapi.Page{
		Content: []core.Transaction{
			{ID: "t2", Type: core.TxExpense, Amount: 25000},
			{ID: "t1", Type: core.TxIncome, Amount: 80000},
		},
		Number: 0, Size: 20, TotalElements: 2, TotalPages: 1, First: true, Last: true,
	}}

	return NewServer(
		cfg,
		services.NewCalculatorService(cfg, logger),
		services.NewBalanceSheetService(nil, logger),
		services.NewLedgerService(fetcher, cache.NewLRUCache[*services.LedgerPage](8, time.Minute), logger),
		settings.NewMemoryStore(),
		logger,
	)
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "203.0.113.1:1000"
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Shutdown(context.Background())

	if rec := doJSON(t, srv, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200", rec.Code)
	}
	if rec := doJSON(t, srv, http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Fatalf("readyz status = %d, want 200", rec.Code)
	}
}

func TestRateLimitFromConfig(t *testing.T) {
	srv := newTestServerWithLimit(t, 2)
	defer srv.Shutdown(context.Background())

	for i := 0; i < 2; i++ {
		if rec := doJSON(t, srv, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rec.Code)
		}
	}
	if rec := doJSON(t, srv, http.MethodGet, "/healthz", ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status after limit = %d, want 429", rec.Code)
	}
}

func TestMortgageEndpoint(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Shutdown(context.Background())

	rec := doJSON(t, srv, http.MethodPost, "/api/calc/mortgage",
		`{"propertyPrice": 5000000, "downPayment": 1000000, "annualRate": 12, "termMonths": 240}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res services.MortgageResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Principal != 4_000_000 {
		t.Errorf("Principal = %v, want 4000000", res.Principal)
	}
	if len(res.Schedule) != 240 {
		t.Errorf("len(Schedule) = %d, want 240", len(res.Schedule))
	}
}

func TestMortgageEndpointRejectsInvalid(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Shutdown(context.Background())

	tests := []struct {
		name string
		body string
	}{
		{"negative rate", `{"propertyPrice": 100000, "annualRate": -1, "termMonths": 120}`},
		{"unknown field", `{"propertyPrice": 100000, "annualRate": 10, "termMonths": 120, "bogus": 1}`},
		{"malformed json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/calc/mortgage", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestSheetLifecycleOverAPI(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Shutdown(context.Background())

	rec := doJSON(t, srv, http.MethodPost, "/api/sheets", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created sheetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if len(created.Rows) != 4 {
		t.Fatalf("seeded rows = %d, want 4", len(created.Rows))
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/sheets/"+created.ID+"/rows",
		`{"label": "Bonus", "kind": "income", "amount": "20000,50"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add row status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var added map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &added); err != nil {
		t.Fatalf("decode add response: %v", err)
	}

	rec = doJSON(t, srv, http.MethodPatch, "/api/sheets/"+created.ID+"/rows/"+added["id"],
		`{"amount": "30000"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("update row status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPatch, "/api/sheets/"+created.ID+"/rows/"+added["id"],
		`{"label": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank label status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/sheets/"+created.ID+"/balance",
		`{"startingBalance": "1000"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("set starting balance status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/sheets/"+created.ID+"/balance", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("balance status = %d", rec.Code)
	}
	var balance struct {
		Totals struct {
			Income float64 `json:"income"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &balance); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	if balance.Totals.Income != 110000 {
		t.Errorf("Income = %v, want 110000", balance.Totals.Income)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/sheets/"+created.ID+"/rows/"+added["id"], "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete row status = %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodDelete, "/api/sheets/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete sheet status = %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodGet, "/api/sheets/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted sheet status = %d, want 404", rec.Code)
	}
}

func TestOverdraftStartingBalance(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Shutdown(context.Background())

	rec := doJSON(t, srv, http.MethodPost, "/api/sheets", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create sheet status = %d", rec.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode sheet: %v", err)
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/sheets/"+created.ID+"/balance",
		`{"startingBalance": "-5000"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("set overdraft balance status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/sheets/"+created.ID+"/balance", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("balance status = %d", rec.Code)
	}
	var balance struct {
		Totals struct {
			StartingBalance float64 `json:"startingBalance"`
			Total           float64 `json:"total"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &balance); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	if balance.Totals.StartingBalance != -5000 {
		t.Errorf("StartingBalance = %v, want -5000", balance.Totals.StartingBalance)
	}
	if balance.Totals.Total != 30000 {
		t.Errorf("Total = %v, want 30000", balance.Totals.Total)
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/sheets/"+created.ID+"/balance",
		`{"startingBalance": "--1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed balance status = %d, want 400", rec.Code)
	}
}

func TestLedgerEndpoint(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Shutdown(context.Background())

	rec := doJSON(t, srv, http.MethodGet, "/api/ledger?page=0&size=20", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var page services.LedgerPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Transactions) != 2 {
		t.Fatalf("transactions = %d, want 2", len(page.Transactions))
	}
	// Newest first: expense shows the balance after both entries.
	if page.Transactions[0].RunningBalance != 55000 {
		t.Errorf("first RunningBalance = %v, want 55000", page.Transactions[0].RunningBalance)
	}

	if rec := doJSON(t, srv, http.MethodGet, "/api/ledger?page=-1", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("negative page status = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, srv, http.MethodGet, "/api/ledger?size=500", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("oversized page status = %d, want 400", rec.Code)
	}
}

func TestSettingsEndpoints(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Shutdown(context.Background())

	rec := doJSON(t, srv, http.MethodGet, "/api/settings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get settings status = %d", rec.Code)
	}
	var current settings.Settings
	if err := json.Unmarshal(rec.Body.Bytes(), &current); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if current.Theme != "light" {
		t.Errorf("default theme = %q, want light", current.Theme)
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/settings",
		`{"theme": "dark", "displayName": "Anna", "currency": "EUR", "locale": "de-DE"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("put settings status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/settings", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &current); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if current.Theme != "dark" || current.DisplayName != "Anna" {
		t.Errorf("settings not persisted: %+v", current)
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/settings", `{"theme": "neon", "currency": "EUR"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid settings status = %d, want 400", rec.Code)
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Shutdown(context.Background())

	rec := doJSON(t, srv, http.MethodGet, "/healthz", "")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q, want nosniff", got)
	}
}
