// Package ledger implements running-balance reconciliation over ordered
// cash flows, shared by the manual balance sheet and the transaction feed.
package ledger

import "akfinance/internal/core"

const (
	// Forward traverses entries oldest to newest as given.
	Forward Direction = "forward"

	// Reverse is for newest-first lists such as the paginated transaction
	// feed: entries are reversed to chronological order, reconciled
	// forward, and the annotated results reversed back for display.
	Reverse Direction = "reverse"
)

// Direction declares the traversal order of the entry list.
type Direction string

// Valid reports whether the direction is known.
func (d Direction) Valid() bool {
	return d == Forward || d == Reverse
}

// Annotated pairs an entry with the running balance after applying its
// signed effect.
type Annotated[T core.Flow] struct {
	Entry          T       `json:"entry"`
	RunningBalance float64 `json:"runningBalance"`
}

// Reconcile computes a running balance over entries starting from
// startingBalance. Income adds, expense subtracts, and transfers net to
// zero (see core.Transaction.SignedEffect).
//
// The identity finalRunning - startingBalance == sum of signed effects
// holds in both directions up to floating-point tolerance.
func Reconcile[T core.Flow](startingBalance float64, entries []T, dir Direction) []Annotated[T] {
	if dir == Reverse {
		chronological := reversed(entries)
		annotated := Reconcile(startingBalance, chronological, Forward)
		return reversedAnnotated(annotated)
	}

	out := make([]Annotated[T], 0, len(entries))
	running := startingBalance
	for _, e := range entries {
		running += e.SignedEffect()
		out = append(out, Annotated[T]{Entry: e, RunningBalance: running})
	}
	return out
}

func reversed[T any](in []T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

func reversedAnnotated[T core.Flow](in []Annotated[T]) []Annotated[T] {
	out := make([]Annotated[T], len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
