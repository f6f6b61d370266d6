package services

import (
	"context"
	"fmt"

	"akfinance/internal/cache"
	"akfinance/internal/core"
	"akfinance/internal/ledger"
	"akfinance/internal/ledgerapi"
	"akfinance/internal/log"
	"akfinance/internal/metrics"
)

// LedgerPage is one page of transaction history annotated with running
// balances, plus the page's own totals.
type LedgerPage struct {
	Transactions  []ledger.Annotated[core.Transaction] `json:"transactions"`
	Number        int                                  `json:"number"`
	Size          int                                  `json:"size"`
	TotalElements int64                                `json:"totalElements"`
	TotalPages    int                                  `json:"totalPages"`
	First         bool                                 `json:"first"`
	Last          bool                                 `json:"last"`
	PageIncome    float64                              `json:"pageIncome"`
	PageExpense   float64                              `json:"pageExpense"`
	PageNet       float64                              `json:"pageNet"`
}

// LedgerService fetches transaction pages from the upstream service,
// annotates them with running balances, and caches the result.
type LedgerService struct {
	fetcher ledgerapi.Fetcher
	pages   cache.Cache[*LedgerPage]
	logger  *log.Logger
}

func NewLedgerService(fetcher ledgerapi.Fetcher, pages cache.Cache[*LedgerPage], logger *log.Logger) *LedgerService {
	return &LedgerService{
		fetcher: fetcher,
		pages:   pages,
		logger:  logger.WithComponent(log.ComponentLedger),
	}
}

// Page returns one annotated page of history, newest first.
//
// Pages arrive newest first, so balances are reconciled in reverse with
// a zero baseline local to the page. The oldest visible entry therefore
// starts from zero regardless of earlier history; carrying a true
// balance across pages would need the upstream service to expose one.
func (s *LedgerService) Page(ctx context.Context, page, size int) (*LedgerPage, error) {
	key := cacheKey(page, size)
	if cached, ok := s.pages.Get(key); ok {
		metrics.CacheHits.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.CacheHits.WithLabelValues("miss").Inc()

	raw, err := s.fetcher.FetchPage(ctx, page, size)
	if err != nil {
		metrics.LedgerFetches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch ledger page: %w", err)
	}
	metrics.LedgerFetches.WithLabelValues("ok").Inc()

	annotated := ledger.Reconcile(0, raw.Content, ledger.Reverse)

	var income, expense float64
	for _, tx := range raw.Content {
		switch tx.Type {
		case core.TxIncome:
			income += tx.Amount
		case core.TxExpense:
			expense += tx.Amount
		}
	}

	result := &LedgerPage{
		Transactions:  annotated,
		Number:        raw.Number,
		Size:          raw.Size,
		TotalElements: raw.TotalElements,
		TotalPages:    raw.TotalPages,
		First:         raw.First,
		Last:          raw.Last,
		PageIncome:    core.Round2(income),
		PageExpense:   core.Round2(expense),
		PageNet:       core.Round2(income - expense),
	}

	s.pages.Set(key, result)
	s.logger.DebugContext(ctx, "fetched ledger page",
		log.FieldPage, page,
		log.FieldPageSize, size,
		"transactions", len(annotated))

	return result, nil
}

// Invalidate drops every cached page. Called when a transaction change
// event arrives from the broker.
func (s *LedgerService) Invalidate() {
	removed := s.pages.DeletePrefix("ledger:")
	if removed > 0 {
		s.logger.Info("invalidated cached ledger pages", "removed", removed)
	}
}

func cacheKey(page, size int) string {
	return fmt.Sprintf("ledger:%d:%d", page, size)
}
