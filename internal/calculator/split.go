package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Share is one participant's part of an expense.
type Share struct {
	Participant string
	Amount      decimal.Decimal
}

// Split is the result of dividing an amount equally.
type Split struct {
	// PerHead is amount / len(participants), rounded to two places.
	PerHead decimal.Decimal

	// Shares lists PerHead for every participant, in input order.
	Shares []Share

	// Total is PerHead × len(participants). It can differ from the input
	// amount by a few cents; no remainder is redistributed.
	Total decimal.Decimal
}

// EqualSplit divides amount equally among participants.
// Each share is rounded independently (e.g. 100.00 / 3 → 33.33, total 99.99).
func EqualSplit(amount decimal.Decimal, participants []string) (*Split, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}

	n := decimal.NewFromInt(int64(len(participants)))
	perHead := amount.Div(n).Round(2)

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{Participant: p, Amount: perHead}
	}

	return &Split{
		PerHead: perHead,
		Shares:  shares,
		Total:   perHead.Mul(n),
	}, nil
}

// Preview is EqualSplit for form previews: invalid input yields a zero
// per-head value and no shares instead of an error.
func Preview(amount decimal.Decimal, participants []string) *Split {
	s, err := EqualSplit(amount, participants)
	if err != nil {
		return &Split{PerHead: decimal.Zero, Total: decimal.Zero}
	}
	return s
}
