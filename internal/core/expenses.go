package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acerto/acerto/internal/activity"
	"github.com/acerto/acerto/internal/apperr"
	"github.com/acerto/acerto/internal/calculator"
	"github.com/acerto/acerto/internal/email"
	"github.com/acerto/acerto/internal/ids"
	"github.com/acerto/acerto/internal/models"
	"github.com/acerto/acerto/internal/storage"
)

// ExpenseInput is the data for a new expense. An empty Split means
// equal_all; an empty DateISO means now.
type ExpenseInput struct {
	Title        string
	Amount       decimal.Decimal
	Buyer        string
	Payer        string
	Split        models.SplitMode
	Participants []string
	Category     string
	Subcategory  string
	PixKey       string
	Location     string
	DateISO      string
	ProofURL     string
	Paid         bool
}

// ExpenseService records purchases and their payment state.
type ExpenseService struct {
	store storage.Store
	clock ids.Clock
}

func NewExpenseService(store storage.Store, clock ids.Clock) *ExpenseService {
	return &ExpenseService{store: store, clock: clock}
}

// List returns the group's expenses, most recent date first. Expenses on
// the same date keep the order they were recorded in.
func (s *ExpenseService) List(ctx context.Context, groupID string) ([]*models.Expense, error) {
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].DateISO > expenses[j].DateISO
	})
	return expenses, nil
}

// Get returns a single expense.
func (s *ExpenseService) Get(ctx context.Context, expenseID string) (*models.Expense, error) {
	e, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, lookup(err, msgExpenseNotFound)
	}
	return e, nil
}

// Create validates and stores a new expense in the group. Checks run in a
// fixed order and the first failure is returned.
func (s *ExpenseService) Create(ctx context.Context, groupID string, in ExpenseInput) (*models.Expense, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.Validation("Informe o título da despesa.")
	}
	amount := calculator.RoundCents(in.Amount)
	if !amount.IsPositive() {
		return nil, apperr.Validation("Valor inválido.")
	}

	var expense *models.Expense
	err := s.store.Atomic(ctx, func(tx storage.Store) error {
		group, err := tx.GetGroup(ctx, groupID)
		if err != nil {
			return lookup(err, msgGroupNotFound)
		}

		buyer := email.Canonical(in.Buyer)
		if !group.HasMember(buyer) {
			return apperr.Validation("Comprador não faz parte do grupo.")
		}
		payer := email.Canonical(in.Payer)
		if !group.HasMember(payer) {
			return apperr.Validation("Pagador não faz parte do grupo.")
		}

		split, participants, err := resolveParticipants(group, in.Split, in.Participants)
		if err != nil {
			return err
		}

		category := strings.TrimSpace(in.Category)
		subcategory := strings.TrimSpace(in.Subcategory)
		if category != "" && !models.IsCategory(category) {
			return apperr.Validation("Categoria inválida.")
		}
		if subcategory != "" && !models.IsSubcategory(category, subcategory) {
			return apperr.Validation("Subcategoria inválida para a categoria.")
		}

		date := strings.TrimSpace(in.DateISO)
		if date == "" {
			date = s.clock().Format(time.RFC3339)
		}
		proof := strings.TrimSpace(in.ProofURL)

		expense = &models.Expense{
			ID:           ids.New(),
			GroupID:      groupID,
			Title:        title,
			Amount:       amount,
			Buyer:        buyer,
			Payer:        payer,
			Split:        split,
			Participants: participants,
			Category:     category,
			Subcategory:  subcategory,
			PixKey:       strings.TrimSpace(in.PixKey),
			Location:     strings.TrimSpace(in.Location),
			DateISO:      date,
			ProofURL:     proof,
			Paid:         in.Paid || proof != "",
			CreatedAt:    s.clock(),
		}
		if err := tx.CreateExpense(ctx, expense); err != nil {
			return fmt.Errorf("failed to create expense: %w", err)
		}

		if err := appendLog(ctx, tx, s.clock, groupID, activity.ExpenseCreated(expense)); err != nil {
			return err
		}
		if expense.Paid {
			return appendLog(ctx, tx, s.clock, groupID, activity.PaymentConfirmed(expense))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Expense created",
		"group_id", groupID,
		"expense_id", expense.ID,
		"amount", expense.Amount.StringFixed(2),
		"participants_count", len(expense.Participants),
		"paid", expense.Paid,
	)
	return expense, nil
}

// resolveParticipants applies the split mode to the requested selection.
func resolveParticipants(group *models.Group, mode models.SplitMode, selected []string) (models.SplitMode, []string, error) {
	switch mode {
	case models.SplitEqualAll, "":
		return models.SplitEqualAll, group.MemberEmails(), nil
	case models.SplitEqualSelected:
		var out []string
		seen := make(map[string]bool, len(selected))
		for _, p := range selected {
			p = email.Canonical(p)
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
		if len(out) == 0 {
			return "", nil, apperr.Validation("Selecione ao menos 1 participante para dividir.")
		}
		for _, p := range out {
			if !group.HasMember(p) {
				return "", nil, apperr.Validation("Participante inválido na divisão.")
			}
		}
		return models.SplitEqualSelected, out, nil
	default:
		return "", nil, apperr.Validation("Modo de divisão inválido.")
	}
}

// Remove deletes an expense. Removing a missing expense is not an error
// and logs nothing.
func (s *ExpenseService) Remove(ctx context.Context, expenseID string) error {
	var removed *models.Expense
	err := s.store.Atomic(ctx, func(tx storage.Store) error {
		e, err := tx.GetExpense(ctx, expenseID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get expense: %w", err)
		}
		if err := tx.DeleteExpense(ctx, expenseID); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		removed = e
		return appendLog(ctx, tx, s.clock, e.GroupID, activity.ExpenseRemoved(e))
	})
	if err != nil {
		return err
	}

	if removed != nil {
		slog.Info("Expense removed", "group_id", removed.GroupID, "expense_id", expenseID)
	}
	return nil
}

// MarkPaid confirms payment of an expense on behalf of actor. Marking an
// already paid expense is allowed and logged again.
func (s *ExpenseService) MarkPaid(ctx context.Context, expenseID, actor string) (*models.Expense, error) {
	return s.settle(ctx, expenseID, func(e *models.Expense) (activity.Event, error) {
		return activity.MarkedPaid(e, email.Canonical(actor)), nil
	})
}

// UpdateProof attaches a receipt reference, which also confirms payment.
func (s *ExpenseService) UpdateProof(ctx context.Context, expenseID, ref, actor string) (*models.Expense, error) {
	ref = strings.TrimSpace(ref)
	return s.settle(ctx, expenseID, func(e *models.Expense) (activity.Event, error) {
		if ref == "" {
			return activity.Event{}, apperr.Validation("Selecione um comprovante.")
		}
		e.ProofURL = ref
		return activity.ProofAttached(e, email.Canonical(actor)), nil
	})
}

// settle looks the expense up, lets apply validate and change it, then
// marks it paid and logs the event apply returns.
func (s *ExpenseService) settle(ctx context.Context, expenseID string, apply func(e *models.Expense) (activity.Event, error)) (*models.Expense, error) {
	var expense *models.Expense
	err := s.store.Atomic(ctx, func(tx storage.Store) error {
		var err error
		if expense, err = tx.GetExpense(ctx, expenseID); err != nil {
			return lookup(err, msgExpenseNotFound)
		}

		ev, err := apply(expense)
		if err != nil {
			return err
		}
		expense.Paid = true
		if err := tx.UpdateExpense(ctx, expense); err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}
		return appendLog(ctx, tx, s.clock, expense.GroupID, ev)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Expense paid", "group_id", expense.GroupID, "expense_id", expenseID, "proof", expense.ProofURL != "")
	return expense, nil
}

// Preview computes the per-head share shown before an expense is saved.
func (s *ExpenseService) Preview(amount decimal.Decimal, participants []string) *calculator.Split {
	return calculator.Preview(calculator.RoundCents(amount), participants)
}

// Balances reports what each member owes or is owed across the group's
// unpaid expenses, and the transfers that settle them.
func (s *ExpenseService) Balances(ctx context.Context, groupID string) ([]calculator.MemberBalance, []calculator.DebtEdge, error) {
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	in := make([]calculator.ExpenseForBalance, len(expenses))
	for i, e := range expenses {
		in[i] = calculator.ExpenseForBalance{
			Amount:       e.Amount,
			Payer:        e.Payer,
			Participants: e.Participants,
			Paid:         e.Paid,
		}
	}
	return calculator.CalculateGroupBalances(in)
}
