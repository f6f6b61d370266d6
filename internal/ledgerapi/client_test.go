package ledgerapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientFetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/transactions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "1" {
			t.Errorf("page = %q, want 1", got)
		}
		if got := r.URL.Query().Get("size"); got != "20" {
			t.Errorf("size = %q, want 20", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"content": [
				{"id": "t1", "type": "INCOME", "amount": 80000, "occurredAt": "2026-01-15T00:00:00Z"},
				{"id": "t2", "type": "EXPENSE", "amount": 25000, "occurredAt": "2026-01-10T00:00:00Z"}
			],
			"number": 1, "size": 20, "totalElements": 42, "totalPages": 3,
			"first": false, "last": false
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	p, err := c.FetchPage(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(p.Content) != 2 {
		t.Fatalf("len(Content) = %d, want 2", len(p.Content))
	}
	if p.Content[0].ID != "t1" || p.Content[0].Amount != 80000 {
		t.Fatalf("unexpected first transaction: %+v", p.Content[0])
	}
	if p.TotalElements != 42 || p.TotalPages != 3 {
		t.Fatalf("unexpected page metadata: %+v", p)
	}
}

func TestClientFetchPageUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.FetchPage(context.Background(), 0, 20); err == nil {
		t.Fatalf("expected error on upstream 502")
	}
}

func TestClientFetchPageRejectsBadArgs(t *testing.T) {
	c := NewClient("http://localhost:0", time.Second)
	if _, err := c.FetchPage(context.Background(), -1, 20); err == nil {
		t.Fatalf("expected error for negative page")
	}
	if _, err := c.FetchPage(context.Background(), 0, 0); err == nil {
		t.Fatalf("expected error for zero size")
	}
}
