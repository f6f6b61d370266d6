// Package http exposes the calculator, balance sheet, ledger, and
// settings operations as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"akfinance/internal/config"
	"akfinance/internal/log"
	"akfinance/internal/middleware/ratelimit"
	"akfinance/internal/middleware/security"
	"akfinance/internal/middleware/trace"
	"akfinance/internal/services"
	"akfinance/internal/settings"
)

// Server wires handlers, middleware, and graceful shutdown.
type Server struct {
	http.Server

	calc     *services.CalculatorService
	sheetSvc *services.BalanceSheetService
	ledgers  *services.LedgerService
	store    settings.Store
	logger   *log.Logger

	pageSize     int
	limiter      *ratelimit.Limiter
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(
	cfg *config.Config,
	calc *services.CalculatorService,
	sheetSvc *services.BalanceSheetService,
	ledgers *services.LedgerService,
	store settings.Store,
	logger *log.Logger,
) *Server {
	mux := http.NewServeMux()

	pageSize := cfg.LedgerPageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	limiterCfg := ratelimit.DefaultConfig()
	if cfg.RateLimitPerMinute > 0 {
		limiterCfg.RequestsPerMinute = cfg.RateLimitPerMinute
	}

	s := &Server{
		calc:     calc,
		sheetSvc: sheetSvc,
		ledgers:  ledgers,
		store:    store,
		logger:   logger.WithComponent(log.ComponentHTTP),
		pageSize: pageSize,
		limiter:  ratelimit.NewLimiter(limiterCfg),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/calc/mortgage", s.handleMortgage)
	mux.HandleFunc("POST /api/calc/credit", s.handleCredit)
	mux.HandleFunc("POST /api/calc/investment", s.handleInvestment)

	mux.HandleFunc("POST /api/sheets", s.handleCreateSheet)
	mux.HandleFunc("GET /api/sheets", s.handleListSheets)
	mux.HandleFunc("GET /api/sheets/{id}", s.handleGetSheet)
	mux.HandleFunc("DELETE /api/sheets/{id}", s.handleDeleteSheet)
	mux.HandleFunc("POST /api/sheets/{id}/rows", s.handleAddRow)
	mux.HandleFunc("PATCH /api/sheets/{id}/rows/{rowID}", s.handleUpdateRow)
	mux.HandleFunc("DELETE /api/sheets/{id}/rows/{rowID}", s.handleDeleteRow)
	mux.HandleFunc("GET /api/sheets/{id}/balance", s.handleSheetBalance)
	mux.HandleFunc("PUT /api/sheets/{id}/balance", s.handleSetStartingBalance)
	mux.HandleFunc("POST /api/sheets/{id}/export", s.handleExportSheet)

	mux.HandleFunc("GET /api/ledger", s.handleLedgerPage)

	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", s.handlePutSettings)

	detector := security.NewDetector()
	tracer := trace.NewMiddleware(detector.ExtractClientIP, logger)

	var handler http.Handler = mux
	handler = s.limiter.Middleware(detector.ExtractClientIP)(handler)
	handler = security.Headers(handler)
	handler = tracer.Middleware(handler)

	s.Server = http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}
	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
