package calculator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ExpenseForBalance holds what balance calculation needs from an expense.
type ExpenseForBalance struct {
	Amount       decimal.Decimal
	Payer        string
	Participants []string
	Paid         bool
}

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	Member     string
	NetBalance decimal.Decimal // Positive = is owed money, negative = owes money
	TotalOwed  decimal.Decimal // Sum of this member's pending shares
	TotalDue   decimal.Decimal // Sum of pending shares owed to this member
}

// DebtEdge represents a debt from one member to another.
type DebtEdge struct {
	From   string // Member who owes
	To     string // Member who is owed
	Amount decimal.Decimal
}

// CalculateGroupBalances computes who owes whom across pending expenses.
//
// For every unpaid expense each participant other than the payer owes their
// equal share to the payer. Paid expenses are settled and ignored.
// Debts are then simplified by greedily matching debtors with creditors.
func CalculateGroupBalances(expenses []ExpenseForBalance) ([]MemberBalance, []DebtEdge, error) {
	balances := make(map[string]*MemberBalance)
	get := func(member string) *MemberBalance {
		b, ok := balances[member]
		if !ok {
			b = &MemberBalance{Member: member}
			balances[member] = b
		}
		return b
	}

	for _, e := range expenses {
		if e.Paid || e.Payer == "" {
			continue
		}

		split, err := EqualSplit(e.Amount, e.Participants)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to calculate split: %w", err)
		}

		payer := get(e.Payer)
		for _, share := range split.Shares {
			if share.Participant == e.Payer {
				continue
			}
			debtor := get(share.Participant)
			debtor.TotalOwed = debtor.TotalOwed.Add(share.Amount)
			payer.TotalDue = payer.TotalDue.Add(share.Amount)
		}
	}

	members := make([]string, 0, len(balances))
	for m, b := range balances {
		b.NetBalance = b.TotalDue.Sub(b.TotalOwed)
		members = append(members, m)
	}
	sort.Strings(members)

	memberBalances := make([]MemberBalance, 0, len(members))
	var creditors, debtors []string
	remaining := make(map[string]decimal.Decimal, len(members))
	for _, m := range members {
		b := balances[m]
		memberBalances = append(memberBalances, *b)
		switch {
		case b.NetBalance.IsPositive():
			creditors = append(creditors, m)
			remaining[m] = b.NetBalance
		case b.NetBalance.IsNegative():
			debtors = append(debtors, m)
			remaining[m] = b.NetBalance.Neg()
		}
	}

	// Greedy matching: settle each debtor against creditors in order.
	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := debtors[i], creditors[j]

		amount := decimal.Min(remaining[debtor], remaining[creditor])
		if amount.IsPositive() {
			edges = append(edges, DebtEdge{From: debtor, To: creditor, Amount: amount})
		}

		remaining[debtor] = remaining[debtor].Sub(amount)
		remaining[creditor] = remaining[creditor].Sub(amount)

		if !remaining[debtor].IsPositive() {
			i++
		}
		if !remaining[creditor].IsPositive() {
			j++
		}
	}

	return memberBalances, edges, nil
}
