package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/acerto/acerto/internal/models"
)

const expenseColumns = "id, group_id, title, amount, buyer, payer, split, category, subcategory, pix_key, location, date_iso, proof_url, paid, created_at"

// CreateExpense persists a new expense and its participants.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	return s.transact(ctx, func(tx *SQLiteStore) error {
		_, err := tx.q.ExecContext(ctx,
			"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			expense.ID,
			expense.GroupID,
			expense.Title,
			expense.Amount.StringFixed(2),
			expense.Buyer,
			expense.Payer,
			string(expense.Split),
			expense.Category,
			expense.Subcategory,
			expense.PixKey,
			expense.Location,
			expense.DateISO,
			expense.ProofURL,
			boolInt(expense.Paid),
			toUnix(expense.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		// Insert participants
		for i, p := range expense.Participants {
			_, err = tx.q.ExecContext(ctx,
				"INSERT INTO expense_participants (expense_id, email, position) VALUES (?, ?, ?)",
				expense.ID, p, i,
			)
			if err != nil {
				return fmt.Errorf("failed to insert participant: %w", err)
			}
		}
		return nil
	})
}

// GetExpense retrieves an expense by ID, including its participants.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	row := s.q.QueryRowContext(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE id = ?", expenseID)
	expense, err := scanExpense(row)
	if err != nil {
		return nil, lookupErr(err, "expense", expenseID)
	}

	if expense.Participants, err = s.participants(ctx, expenseID); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpensesByGroup returns the group's expenses in insertion order.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE group_id = ? ORDER BY seq",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if expense.Participants, err = s.participants(ctx, expense.ID); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// UpdateExpense rewrites the mutable payment fields of an expense.
// Participants are fixed at creation.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	return s.exec(ctx, "expense", expense.ID,
		"UPDATE expenses SET title = ?, proof_url = ?, paid = ? WHERE id = ?",
		expense.Title,
		expense.ProofURL,
		boolInt(expense.Paid),
		expense.ID,
	)
}

// DeleteExpense removes an expense and, by cascade, its participants.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	return s.exec(ctx, "expense", expenseID, "DELETE FROM expenses WHERE id = ?", expenseID)
}

func (s *SQLiteStore) participants(ctx context.Context, expenseID string) ([]string, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT email FROM expense_participants WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

func scanExpense(row scanner) (*models.Expense, error) {
	var (
		expense   models.Expense
		amount    string
		split     string
		createdAt int64
	)
	err := row.Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.Title,
		&amount,
		&expense.Buyer,
		&expense.Payer,
		&split,
		&expense.Category,
		&expense.Subcategory,
		&expense.PixKey,
		&expense.Location,
		&expense.DateISO,
		&expense.ProofURL,
		&expense.Paid,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if expense.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}
	expense.Split = models.SplitMode(split)
	expense.CreatedAt = fromUnix(createdAt)
	return &expense, nil
}
