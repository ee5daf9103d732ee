package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitMode is the policy for dividing an expense's cost.
type SplitMode string

const (
	// SplitEqualAll divides the cost among every group member.
	SplitEqualAll      SplitMode = "equal_all"
	// SplitEqualSelected divides the cost among an explicit subset.
	SplitEqualSelected SplitMode = "equal_selected"
)

// Valid reports whether m is a known split mode.
func (m SplitMode) Valid() bool {
	return m == SplitEqualAll || m == SplitEqualSelected
}

// Expense represents a purchase recorded in a group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	GroupID string `json:"groupId"`

	Title string `json:"title"`

	// Amount is the positive total in reais, rounded to two places.
	Amount decimal.Decimal `json:"amount"`

	// Buyer is the member who made the purchase.
	Buyer string `json:"buyer"`

	// Payer is the member who should be paid back.
	Payer string `json:"payer"`

	Split SplitMode `json:"split"`

	// Participants is the resolved list of members sharing the cost:
	// all members under SplitEqualAll, the selection otherwise.
	Participants []string `json:"participants"`

	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
	PixKey      string `json:"pixKey,omitempty"`
	Location    string `json:"location,omitempty"`

	// DateISO is the expense date as sent by the client. Lists sort on it
	// lexically.
	DateISO string `json:"dateISO"`

	// ProofURL references the uploaded payment receipt, if any.
	ProofURL string `json:"proofUrl,omitempty"`

	// Paid only ever moves from false to true.
	Paid bool `json:"paid"`

	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy of e.
func (e *Expense) Clone() *Expense {
	c := *e
	c.Participants = append([]string(nil), e.Participants...)
	return &c
}
