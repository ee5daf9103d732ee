package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/acerto/acerto/internal/apperr"
	"github.com/acerto/acerto/internal/calculator"
	"github.com/acerto/acerto/internal/core"
	"github.com/acerto/acerto/internal/middleware"
	"github.com/acerto/acerto/internal/models"
	"github.com/acerto/acerto/internal/proofs"
	"github.com/acerto/acerto/pkg/api"
	"github.com/acerto/acerto/pkg/api/apiconnect"
)

var _ apiconnect.ExpenseServiceHandler = (*ExpenseService)(nil)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	groups   *core.GroupService
	expenses *core.ExpenseService
	proofs   proofs.Store
	logger   *slog.Logger
}

// NewExpenseService creates an ExpenseService; uploaded receipts go to
// proofStore.
func NewExpenseService(groups *core.GroupService, expenses *core.ExpenseService, proofStore proofs.Store, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{groups: groups, expenses: expenses, proofs: proofStore, logger: logger}
}

// ListExpenses returns the expenses of one of the caller's groups.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	ownerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ListExpenses request received", "group_id", req.Msg.GroupID)

	if _, err := s.groups.Get(ctx, ownerID, req.Msg.GroupID); err != nil {
		return nil, fail(s.logger, "ListExpenses", err, "group_id", req.Msg.GroupID)
	}
	expenses, err := s.expenses.List(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, fail(s.logger, "ListExpenses", err, "group_id", req.Msg.GroupID)
	}

	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toExpense(e)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// CreateExpense records a purchase in one of the caller's groups.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	ownerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	msg := req.Msg
	s.logger.Info("CreateExpense request received",
		"group_id", msg.GroupID,
		"amount", msg.Amount,
		"split", msg.Split,
	)

	if _, err := s.groups.Get(ctx, ownerID, msg.GroupID); err != nil {
		return nil, fail(s.logger, "CreateExpense", err, "group_id", msg.GroupID)
	}

	// An unparseable amount is reported by the core as an invalid value,
	// after the title check.
	amount, _ := calculator.ParseAmount(msg.Amount)
	expense, err := s.expenses.Create(ctx, msg.GroupID, core.ExpenseInput{
		Title:        msg.Title,
		Amount:       amount,
		Buyer:        msg.Buyer,
		Payer:        msg.Payer,
		Split:        models.SplitMode(msg.Split),
		Participants: msg.Participants,
		Category:     msg.Category,
		Subcategory:  msg.Subcategory,
		PixKey:       msg.PixKey,
		Location:     msg.Location,
		DateISO:      msg.DateISO,
		ProofURL:     msg.ProofURL,
		Paid:         msg.Paid,
	})
	if err != nil {
		return nil, fail(s.logger, "CreateExpense", err, "group_id", msg.GroupID)
	}
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toExpense(expense)}), nil
}

// DeleteExpense removes an expense. Deleting a missing expense succeeds.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	ownerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseID)

	_, err = s.owned(ctx, ownerID, req.Msg.ExpenseID)
	if errors.Is(err, apperr.ErrNotFound) {
		return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
	}
	if err != nil {
		return nil, fail(s.logger, "DeleteExpense", err, "expense_id", req.Msg.ExpenseID)
	}

	if err := s.expenses.Remove(ctx, req.Msg.ExpenseID); err != nil {
		return nil, fail(s.logger, "DeleteExpense", err, "expense_id", req.Msg.ExpenseID)
	}
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// MarkPaid confirms payment of an expense on behalf of the caller.
func (s *ExpenseService) MarkPaid(ctx context.Context, req *connect.Request[api.MarkPaidRequest]) (*connect.Response[api.MarkPaidResponse], error) {
	ownerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("MarkPaid request received", "expense_id", req.Msg.ExpenseID)

	if _, err := s.owned(ctx, ownerID, req.Msg.ExpenseID); err != nil {
		return nil, fail(s.logger, "MarkPaid", err, "expense_id", req.Msg.ExpenseID)
	}
	expense, err := s.expenses.MarkPaid(ctx, req.Msg.ExpenseID, middleware.GetEmail(ctx))
	if err != nil {
		return nil, fail(s.logger, "MarkPaid", err, "expense_id", req.Msg.ExpenseID)
	}
	return connect.NewResponse(&api.MarkPaidResponse{Expense: toExpense(expense)}), nil
}

// UpdateProof attaches an existing receipt reference to an expense.
func (s *ExpenseService) UpdateProof(ctx context.Context, req *connect.Request[api.UpdateProofRequest]) (*connect.Response[api.UpdateProofResponse], error) {
	ownerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("UpdateProof request received", "expense_id", req.Msg.ExpenseID)

	if _, err := s.owned(ctx, ownerID, req.Msg.ExpenseID); err != nil {
		return nil, fail(s.logger, "UpdateProof", err, "expense_id", req.Msg.ExpenseID)
	}
	expense, err := s.expenses.UpdateProof(ctx, req.Msg.ExpenseID, req.Msg.ProofURL, middleware.GetEmail(ctx))
	if err != nil {
		return nil, fail(s.logger, "UpdateProof", err, "expense_id", req.Msg.ExpenseID)
	}
	return connect.NewResponse(&api.UpdateProofResponse{Expense: toExpense(expense)}), nil
}

// UploadProof stores a receipt file and attaches its reference.
func (s *ExpenseService) UploadProof(ctx context.Context, req *connect.Request[api.UploadProofRequest]) (*connect.Response[api.UploadProofResponse], error) {
	ownerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("UploadProof request received",
		"expense_id", req.Msg.ExpenseID,
		"content_type", req.Msg.ContentType,
		"size", len(req.Msg.Data),
	)

	if _, err := s.owned(ctx, ownerID, req.Msg.ExpenseID); err != nil {
		return nil, fail(s.logger, "UploadProof", err, "expense_id", req.Msg.ExpenseID)
	}
	ref, err := s.proofs.Put(ctx, req.Msg.ExpenseID, req.Msg.ContentType, req.Msg.Data)
	if err != nil {
		return nil, fail(s.logger, "UploadProof", err, "expense_id", req.Msg.ExpenseID)
	}
	expense, err := s.expenses.UpdateProof(ctx, req.Msg.ExpenseID, ref, middleware.GetEmail(ctx))
	if err != nil {
		return nil, fail(s.logger, "UploadProof", err, "expense_id", req.Msg.ExpenseID)
	}
	return connect.NewResponse(&api.UploadProofResponse{Expense: toExpense(expense)}), nil
}

// PreviewSplit computes the per-head share for a form that has not been
// saved. Invalid input yields zeros rather than an error.
func (s *ExpenseService) PreviewSplit(_ context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	amount, _ := calculator.ParseAmount(req.Msg.Amount)
	split := s.expenses.Preview(amount, req.Msg.Participants)

	shares := make([]api.Share, len(split.Shares))
	for i, sh := range split.Shares {
		shares[i] = api.Share{Participant: sh.Participant, Amount: sh.Amount.StringFixed(2)}
	}
	return connect.NewResponse(&api.PreviewSplitResponse{
		PerHead: split.PerHead.StringFixed(2),
		Total:   split.Total.StringFixed(2),
		Shares:  shares,
	}), nil
}

// GetBalances reports who owes whom across the group's unpaid expenses.
func (s *ExpenseService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	ownerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("GetBalances request received", "group_id", req.Msg.GroupID)

	if _, err := s.groups.Get(ctx, ownerID, req.Msg.GroupID); err != nil {
		return nil, fail(s.logger, "GetBalances", err, "group_id", req.Msg.GroupID)
	}
	balances, debts, err := s.expenses.Balances(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, fail(s.logger, "GetBalances", err, "group_id", req.Msg.GroupID)
	}

	resp := &api.GetBalancesResponse{
		Balances: make([]api.Balance, len(balances)),
		Debts:    make([]api.Debt, len(debts)),
	}
	for i, b := range balances {
		resp.Balances[i] = api.Balance{
			Member: b.Member,
			Net:    b.NetBalance.StringFixed(2),
			Owes:   b.TotalOwed.StringFixed(2),
			IsOwed: b.TotalDue.StringFixed(2),
		}
	}
	for i, d := range debts {
		resp.Debts[i] = api.Debt{From: d.From, To: d.To, Amount: d.Amount.StringFixed(2)}
	}
	return connect.NewResponse(resp), nil
}

// ListCategories returns the category map offered by the expense form.
func (s *ExpenseService) ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	names := models.Categories()
	out := make([]api.Category, len(names))
	for i, name := range names {
		out[i] = api.Category{Name: name, Subcategories: models.Subcategories(name)}
	}
	return connect.NewResponse(&api.ListCategoriesResponse{Categories: out}), nil
}

// owned loads an expense if it belongs to one of ownerID's groups. Expenses
// of other owners are reported as missing.
func (s *ExpenseService) owned(ctx context.Context, ownerID, expenseID string) (*models.Expense, error) {
	expense, err := s.expenses.Get(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.groups.Get(ctx, ownerID, expense.GroupID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("Despesa não encontrada.")
		}
		return nil, err
	}
	return expense, nil
}
