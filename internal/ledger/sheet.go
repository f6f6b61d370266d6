package ledger

import (
	"fmt"

	"akfinance/internal/core"
)

type updateOp int

const (
	opSetLabel updateOp = iota
	opSetAmount
	opSetKind
	opSetCategory
)

// Update is a tagged mutation applied to a balance-sheet row through the
// sheet's reducer. Rows are never mutated field-by-field from outside, so
// an invalid intermediate state can never reach the reconciler.
type Update struct {
	op       updateOp
	label    string
	amount   float64
	kind     core.EntryKind
	category string
}

func SetLabel(label string) Update      { return Update{op: opSetLabel, label: label} }
func SetAmount(amount float64) Update   { return Update{op: opSetAmount, amount: amount} }
func SetKind(kind core.EntryKind) Update { return Update{op: opSetKind, kind: kind} }
func SetCategory(category string) Update {
	return Update{op: opSetCategory, category: category}
}

// BalanceSheet is the manual income/expense table: a starting balance and
// an ordered, mutable list of rows. It lives only in session memory and is
// owned by a single screen instance; callers serialize access (see
// services.BalanceSheetService).
type BalanceSheet struct {
	ID              string
	StartingBalance float64

	rows []core.CashFlowEntry
}

// NewBalanceSheet returns an empty sheet with the given ID.
func NewBalanceSheet(id string) *BalanceSheet {
	return &BalanceSheet{ID: id}
}

// AddRow validates and appends a row.
func (s *BalanceSheet) AddRow(e core.CashFlowEntry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("add row: %w", err)
	}
	s.rows = append(s.rows, e)
	return nil
}

// UpdateRow applies the tagged updates to the row with the given ID. Each
// update is validated as it is applied; the row is replaced only if every
// step keeps it valid, otherwise the sheet is unchanged.
func (s *BalanceSheet) UpdateRow(id string, updates ...Update) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("update row %s: %w", id, core.ErrNotFound)
	}

	row := s.rows[idx]
	for _, u := range updates {
		row = apply(row, u)
		if err := row.Validate(); err != nil {
			return fmt.Errorf("update row %s: %w", id, err)
		}
	}
	s.rows[idx] = row
	return nil
}

// DeleteRow removes the row with the given ID.
func (s *BalanceSheet) DeleteRow(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete row %s: %w", id, core.ErrNotFound)
	}
	s.rows = append(s.rows[:idx], s.rows[idx+1:]...)
	return nil
}

// Clone returns a deep copy of the sheet.
func (s *BalanceSheet) Clone() *BalanceSheet {
	return &BalanceSheet{
		ID:              s.ID,
		StartingBalance: s.StartingBalance,
		rows:            s.Rows(),
	}
}

// Rows returns a copy of the current rows in order.
func (s *BalanceSheet) Rows() []core.CashFlowEntry {
	out := make([]core.CashFlowEntry, len(s.rows))
	copy(out, s.rows)
	return out
}

// Reconciled returns every row annotated with the running balance after
// it, computed forward from the starting balance.
func (s *BalanceSheet) Reconciled() []Annotated[core.CashFlowEntry] {
	return Reconcile(s.StartingBalance, s.rows, Forward)
}

// Totals are the headline aggregates of the balance-sheet screen.
type Totals struct {
	StartingBalance float64 `json:"startingBalance"`
	Income          float64 `json:"income"`
	Expense         float64 `json:"expense"`
	Net             float64 `json:"net"`
	Total           float64 `json:"total"`
}

// Totals sums the current rows: Net is monthly income minus expense, Total
// is the starting balance plus Net.
func (s *BalanceSheet) Totals() Totals {
	t := Totals{StartingBalance: s.StartingBalance}
	for _, r := range s.rows {
		if r.Kind == core.Income {
			t.Income += r.Amount
		} else {
			t.Expense += r.Amount
		}
	}
	t.Net = t.Income - t.Expense
	t.Total = s.StartingBalance + t.Net
	return t
}

func (s *BalanceSheet) indexOf(id string) int {
	for i, r := range s.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func apply(e core.CashFlowEntry, u Update) core.CashFlowEntry {
	switch u.op {
	case opSetLabel:
		e.Label = u.label
	case opSetAmount:
		e.Amount = u.amount
	case opSetKind:
		e.Kind = u.kind
	case opSetCategory:
		e.Category = u.category
	}
	return e
}
