package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"akfinance/internal/core"
	"akfinance/internal/export"
	"akfinance/internal/ledger"
	"akfinance/internal/log"
)

// BalanceSheetService keeps the in-memory registry of balance sheets
// and mediates all row edits so sheets never hold invalid rows.
type BalanceSheetService struct {
	mu       sync.RWMutex
	sheets   map[string]*ledger.BalanceSheet
	exporter export.Exporter
	logger   *log.Logger
}

// NewBalanceSheetService creates the registry. exporter may be nil when
// no spreadsheet is configured.
func NewBalanceSheetService(exporter export.Exporter, logger *log.Logger) *BalanceSheetService {
	return &BalanceSheetService{
		sheets:   make(map[string]*ledger.BalanceSheet),
		exporter: exporter,
		logger:   logger.WithComponent(log.ComponentSheet),
	}
}

// CreateSheet registers a new sheet seeded with the starter rows users
// expect to edit rather than start from a blank slate.
func (s *BalanceSheetService) CreateSheet() (*ledger.BalanceSheet, error) {
	id := uuid.NewString()
	sheet := ledger.NewBalanceSheet(id)

	seed := []core.CashFlowEntry{
		{ID: uuid.NewString(), Label: "Salary", Kind: core.Income, Amount: 80000},
		{ID: uuid.NewString(), Label: "Rent", Kind: core.Expense, Amount: 25000, Category: "Housing"},
		{ID: uuid.NewString(), Label: "Groceries", Kind: core.Expense, Amount: 15000, Category: "Food"},
		{ID: uuid.NewString(), Label: "Transport", Kind: core.Expense, Amount: 5000, Category: "Transport"},
	}
	for _, e := range seed {
		if err := sheet.AddRow(e); err != nil {
			return nil, fmt.Errorf("seed sheet: %w", err)
		}
	}

	snapshot := sheet.Clone()

	s.mu.Lock()
	s.sheets[id] = sheet
	s.mu.Unlock()

	s.logger.Info("created balance sheet", log.FieldSheetID, id)
	return snapshot, nil
}

// Sheet returns a point-in-time copy of the sheet with the given ID.
// Callers read the copy without holding the registry lock, so later row
// edits never race or show through.
func (s *BalanceSheetService) Sheet(id string) (*ledger.BalanceSheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sheet, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return sheet.Clone(), nil
}

// lookup must be called with s.mu held.
func (s *BalanceSheetService) lookup(id string) (*ledger.BalanceSheet, error) {
	sheet, ok := s.sheets[id]
	if !ok {
		return nil, fmt.Errorf("sheet %s: %w", id, core.ErrNotFound)
	}
	return sheet, nil
}

// ListSheets returns the IDs of all registered sheets.
func (s *BalanceSheetService) ListSheets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sheets))
	for id := range s.sheets {
		ids = append(ids, id)
	}
	return ids
}

// DeleteSheet removes a sheet from the registry.
func (s *BalanceSheetService) DeleteSheet(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sheets[id]; !ok {
		return fmt.Errorf("sheet %s: %w", id, core.ErrNotFound)
	}
	delete(s.sheets, id)
	s.logger.Info("deleted balance sheet", log.FieldSheetID, id)
	return nil
}

// AddRow validates and appends a row, assigning it a fresh ID.
func (s *BalanceSheetService) AddRow(sheetID string, e core.CashFlowEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet, err := s.lookup(sheetID)
	if err != nil {
		return "", err
	}

	e.ID = uuid.NewString()
	if err := sheet.AddRow(e); err != nil {
		return "", err
	}

	s.logger.Debug("added row",
		log.FieldSheetID, sheetID,
		log.FieldRowID, e.ID,
		log.FieldEntryKind, string(e.Kind))
	return e.ID, nil
}

// UpdateRow applies the given field updates to one row. The row is only
// replaced when every intermediate state stays valid.
func (s *BalanceSheetService) UpdateRow(sheetID, rowID string, updates ...ledger.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet, err := s.lookup(sheetID)
	if err != nil {
		return err
	}
	if err := sheet.UpdateRow(rowID, updates...); err != nil {
		return err
	}

	s.logger.Debug("updated row", log.FieldSheetID, sheetID, log.FieldRowID, rowID)
	return nil
}

// DeleteRow removes one row from a sheet.
func (s *BalanceSheetService) DeleteRow(sheetID, rowID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet, err := s.lookup(sheetID)
	if err != nil {
		return err
	}
	if err := sheet.DeleteRow(rowID); err != nil {
		return err
	}

	s.logger.Debug("deleted row", log.FieldSheetID, sheetID, log.FieldRowID, rowID)
	return nil
}

// SetStartingBalance replaces the balance the reconciliation starts from.
func (s *BalanceSheetService) SetStartingBalance(sheetID string, balance float64) error {
	if !core.IsFinite(balance) {
		return fmt.Errorf("%w: starting balance must be finite", core.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sheet, err := s.lookup(sheetID)
	if err != nil {
		return err
	}
	sheet.StartingBalance = balance

	s.logger.Debug("set starting balance", log.FieldSheetID, sheetID, log.FieldAmount, balance)
	return nil
}

// Reconciled returns the sheet's rows annotated with running balances.
func (s *BalanceSheetService) Reconciled(sheetID string) ([]ledger.Annotated[core.CashFlowEntry], ledger.Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sheet, err := s.lookup(sheetID)
	if err != nil {
		return nil, ledger.Totals{}, err
	}
	return sheet.Reconciled(), sheet.Totals(), nil
}

// Export writes a sheet out through the configured exporter.
func (s *BalanceSheetService) Export(ctx context.Context, sheetID string) error {
	if s.exporter == nil {
		return fmt.Errorf("export is not configured")
	}

	// Sheet hands back a snapshot, so the export call never races row
	// edits and never holds the registry lock over the network.
	sheet, err := s.Sheet(sheetID)
	if err != nil {
		return err
	}

	if err := s.exporter.Export(ctx, sheet); err != nil {
		return fmt.Errorf("export sheet %s: %w", sheetID, err)
	}

	s.logger.Info("exported balance sheet",
		log.FieldSheetID, sheetID,
		log.FieldOperation, log.OpExport)
	return nil
}
