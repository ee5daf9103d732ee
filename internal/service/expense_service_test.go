package service

import (
	"context"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acerto/acerto/pkg/api"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func createExpense(t *testing.T, c *clients, req *api.CreateExpenseRequest) *api.Expense {
	t.Helper()
	resp, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(req))
	require.NoError(t, err)
	return resp.Msg.Expense
}

func TestCreateExpense(t *testing.T) {
	srv := setupTestServer(t)
	ana := srv.signup(t, "ana@example.com")
	group := ana.createGroup(t, "Praia", "ana@example.com", "bia@example.com", "caio@example.com")

	expense := createExpense(t, ana, &api.CreateExpenseRequest{
		GroupID:  group.ID,
		Title:    "Pizza",
		Amount:   "100,00",
		Buyer:    "ana@example.com",
		Payer:    "BIA@example.com",
		Category: "Alimentação",
	})
	assert.Equal(t, "100.00", expense.Amount)
	assert.Equal(t, "33.33", expense.PerHead)
	assert.Equal(t, "equal_all", expense.Split)
	assert.Equal(t, "bia@example.com", expense.Payer)
	assert.Len(t, expense.Participants, 3)
	assert.False(t, expense.Paid)
	assert.NotEmpty(t, expense.DateISO)
}

func TestCreateExpenseValidation(t *testing.T) {
	srv := setupTestServer(t)
	ana := srv.signup(t, "ana@example.com")
	group := ana.createGroup(t, "Praia", "ana@example.com", "bia@example.com")

	tests := []struct {
		name string
		req  *api.CreateExpenseRequest
		msg  string
	}{
		{
			name: "blank title before bad amount",
			req:  &api.CreateExpenseRequest{Title: " ", Amount: "abc"},
			msg:  "Informe o título da despesa.",
		},
		{
			name: "unparseable amount",
			req:  &api.CreateExpenseRequest{Title: "Pizza", Amount: "abc"},
			msg:  "Valor inválido.",
		},
		{
			name: "buyer outside group",
			req:  &api.CreateExpenseRequest{Title: "Pizza", Amount: "10", Buyer: "zed@example.com", Payer: "ana@example.com"},
			msg:  "Comprador não faz parte do grupo.",
		},
		{
			name: "empty selection",
			req:  &api.CreateExpenseRequest{Title: "Pizza", Amount: "10", Buyer: "ana@example.com", Payer: "ana@example.com", Split: "equal_selected"},
			msg:  "Selecione ao menos 1 participante para dividir.",
		},
		{
			name: "unknown split",
			req:  &api.CreateExpenseRequest{Title: "Pizza", Amount: "10", Buyer: "ana@example.com", Payer: "ana@example.com", Split: "by_weight"},
			msg:  "Modo de divisão inválido.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.GroupID = group.ID
			_, err := ana.expenses.CreateExpense(context.Background(), connect.NewRequest(tt.req))
			requireCode(t, err, connect.CodeInvalidArgument, tt.msg)
		})
	}
}

func TestMarkPaidAndProofs(t *testing.T) {
	srv := setupTestServer(t)
	ana := srv.signup(t, "ana@example.com")
	ctx := context.Background()
	group := ana.createGroup(t, "Praia", "ana@example.com", "bia@example.com")
	expense := createExpense(t, ana, &api.CreateExpenseRequest{
		GroupID: group.ID, Title: "Gelo", Amount: "20", Buyer: "ana@example.com", Payer: "bia@example.com",
	})

	paid, err := ana.expenses.MarkPaid(ctx, connect.NewRequest(&api.MarkPaidRequest{ExpenseID: expense.ID}))
	require.NoError(t, err)
	assert.True(t, paid.Msg.Expense.Paid)

	_, err = ana.expenses.UpdateProof(ctx, connect.NewRequest(&api.UpdateProofRequest{ExpenseID: expense.ID, ProofURL: "  "}))
	requireCode(t, err, connect.CodeInvalidArgument, "Selecione um comprovante.")

	uploaded, err := ana.expenses.UploadProof(ctx, connect.NewRequest(&api.UploadProofRequest{
		ExpenseID: expense.ID,
		Data:      pngHeader,
	}))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uploaded.Msg.Expense.ProofURL, "data:image/png;base64,"))

	_, err = ana.expenses.UploadProof(ctx, connect.NewRequest(&api.UploadProofRequest{
		ExpenseID:   expense.ID,
		ContentType: "text/plain",
		Data:        []byte("hello"),
	}))
	requireCode(t, err, connect.CodeInvalidArgument, "Formato de comprovante não suportado.")

	_, err = ana.expenses.MarkPaid(ctx, connect.NewRequest(&api.MarkPaidRequest{ExpenseID: "missing"}))
	requireCode(t, err, connect.CodeNotFound, "Despesa não encontrada.")
}

func TestExpensesRequireOwnership(t *testing.T) {
	srv := setupTestServer(t)
	ana := srv.signup(t, "ana@example.com")
	bia := srv.signup(t, "bia@example.com")
	ctx := context.Background()
	group := ana.createGroup(t, "Praia", "ana@example.com", "bia@example.com")
	expense := createExpense(t, ana, &api.CreateExpenseRequest{
		GroupID: group.ID, Title: "Gelo", Amount: "20", Buyer: "ana@example.com", Payer: "bia@example.com",
	})

	_, err := bia.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupID: group.ID}))
	requireCode(t, err, connect.CodeNotFound, "Grupo não encontrado.")

	_, err = bia.expenses.MarkPaid(ctx, connect.NewRequest(&api.MarkPaidRequest{ExpenseID: expense.ID}))
	requireCode(t, err, connect.CodeNotFound, "Despesa não encontrada.")

	// Deleting someone else's expense looks like deleting a missing one.
	_, err = bia.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseID: expense.ID}))
	require.NoError(t, err)

	list, err := ana.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupID: group.ID}))
	require.NoError(t, err)
	assert.Len(t, list.Msg.Expenses, 1)
}

func TestDeleteExpenseIsIdempotent(t *testing.T) {
	srv := setupTestServer(t)
	ana := srv.signup(t, "ana@example.com")
	ctx := context.Background()
	group := ana.createGroup(t, "Praia", "ana@example.com")
	expense := createExpense(t, ana, &api.CreateExpenseRequest{
		GroupID: group.ID, Title: "Gelo", Amount: "20", Buyer: "ana@example.com", Payer: "ana@example.com",
	})

	for i := 0; i < 2; i++ {
		_, err := ana.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseID: expense.ID}))
		require.NoError(t, err)
	}

	list, err := ana.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupID: group.ID}))
	require.NoError(t, err)
	assert.Empty(t, list.Msg.Expenses)
}

func TestPreviewSplit(t *testing.T) {
	srv := setupTestServer(t)
	anon := srv.as("", "")
	ctx := context.Background()

	resp, err := anon.expenses.PreviewSplit(ctx, connect.NewRequest(&api.PreviewSplitRequest{
		Amount:       "100",
		Participants: []string{"a", "b", "c"},
	}))
	require.NoError(t, err)
	assert.Equal(t, "33.33", resp.Msg.PerHead)
	assert.Equal(t, "99.99", resp.Msg.Total)
	assert.Len(t, resp.Msg.Shares, 3)

	resp, err = anon.expenses.PreviewSplit(ctx, connect.NewRequest(&api.PreviewSplitRequest{Amount: "abc"}))
	require.NoError(t, err)
	assert.Equal(t, "0.00", resp.Msg.PerHead)
	assert.Empty(t, resp.Msg.Shares)
}

func TestGetBalances(t *testing.T) {
	srv := setupTestServer(t)
	ana := srv.signup(t, "ana@example.com")
	group := ana.createGroup(t, "Praia", "ana@example.com", "bia@example.com")
	createExpense(t, ana, &api.CreateExpenseRequest{
		GroupID: group.ID, Title: "Gelo", Amount: "20", Buyer: "ana@example.com", Payer: "ana@example.com",
	})

	resp, err := ana.expenses.GetBalances(context.Background(), connect.NewRequest(&api.GetBalancesRequest{GroupID: group.ID}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Debts, 1)
	assert.Equal(t, api.Debt{From: "bia@example.com", To: "ana@example.com", Amount: "10.00"}, resp.Msg.Debts[0])
}

func TestListCategories(t *testing.T) {
	srv := setupTestServer(t)
	resp, err := srv.as("", "").expenses.ListCategories(context.Background(), connect.NewRequest(&api.ListCategoriesRequest{}))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Msg.Categories)
	for _, c := range resp.Msg.Categories {
		assert.NotEmpty(t, c.Name)
	}
}
