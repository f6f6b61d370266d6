package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  EntryKind = "income"
	Expense EntryKind = "expense"
)

const (
	TxIncome   TransactionType = "INCOME"
	TxExpense  TransactionType = "EXPENSE"
	TxTransfer TransactionType = "TRANSFER"
)

type (
	// EntryKind is the kind of a manual balance-sheet row.
	EntryKind string

	// TransactionType is the kind of an upstream ledger transaction.
	TransactionType string

	// CashFlowEntry is one row of the manual balance sheet.
	CashFlowEntry struct {
		ID       string    `json:"id"`
		Label    string    `json:"label"`
		Kind     EntryKind `json:"kind"`
		Amount   float64   `json:"amount"`
		Category string    `json:"category,omitempty"`
	}

	// CategoryRef is the category projection attached to a ledger transaction.
	CategoryRef struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color,omitempty"`
	}

	// Transaction is a read-only projection of an upstream ledger record.
	Transaction struct {
		ID         string          `json:"id"`
		Type       TransactionType `json:"type"`
		Amount     float64         `json:"amount"`
		OccurredAt time.Time       `json:"occurredAt"`
		Category   *CategoryRef    `json:"category,omitempty"`
		Note       string          `json:"note,omitempty"`
	}

	// AmortizationRow is one period of a loan payment schedule.
	AmortizationRow struct {
		Period           int     `json:"period"`
		Payment          float64 `json:"payment"`
		PrincipalPortion float64 `json:"principalPortion"`
		InterestPortion  float64 `json:"interestPortion"`
		RemainingBalance float64 `json:"remainingBalance"`
	}

	// YearlyProjection is one year of a compounding simulation.
	YearlyProjection struct {
		Year             int     `json:"year"`
		EndingBalance    float64 `json:"endingBalance"`
		TotalContributed float64 `json:"totalContributed"`
		Profit           float64 `json:"profit"`
	}

	// Flow is anything that moves the running balance by a signed amount.
	Flow interface {
		SignedEffect() float64
	}
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidKind   = errors.New("invalid entry kind")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyLabel    = errors.New("empty label")
	ErrNotFound      = errors.New("not found")
)

// Valid reports whether the kind is one of the two balance-sheet kinds.
func (k EntryKind) Valid() bool {
	return k == Income || k == Expense
}

// Valid reports whether the type is a known ledger transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TxIncome, TxExpense, TxTransfer:
		return true
	}
	return false
}

// SignedEffect returns the entry's contribution to a running balance.
func (e CashFlowEntry) SignedEffect() float64 {
	if e.Kind == Income {
		return e.Amount
	}
	return -e.Amount
}

// SignedEffect returns the transaction's contribution to a running balance.
// Transfers move money between own accounts and net to zero, matching
// double-entry semantics.
func (t Transaction) SignedEffect() float64 {
	switch t.Type {
	case TxIncome:
		return t.Amount
	case TxExpense:
		return -t.Amount
	default:
		return 0
	}
}

func (e CashFlowEntry) Validate() error {
	if len(strings.TrimSpace(e.Label)) == 0 {
		return ErrEmptyLabel
	}
	if len(e.Label) > 200 {
		return errors.New("label too long (max 200 characters)")
	}
	if !e.Kind.Valid() {
		return ErrInvalidKind
	}
	if !IsFinite(e.Amount) || e.Amount < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidKind
	}
	if !IsFinite(t.Amount) || t.Amount < 0 {
		return ErrInvalidAmount
	}
	if t.OccurredAt.IsZero() {
		return errors.New("occurredAt cannot be zero")
	}
	return nil
}
