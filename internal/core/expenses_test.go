package core

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acerto/acerto/internal/apperr"
	"github.com/acerto/acerto/internal/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreateExpenseValidationOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner", "Praia", "a@x.com", "b@x.com")

	valid := func() ExpenseInput {
		return ExpenseInput{
			Title:        "Pizza",
			Amount:       dec("60"),
			Buyer:        "a@x.com",
			Payer:        "b@x.com",
			Split:        models.SplitEqualSelected,
			Participants: []string{"a@x.com"},
		}
	}

	tests := []struct {
		name    string
		groupID string
		mutate  func(in *ExpenseInput)
		kind    apperr.Kind
		msg     string
	}{
		// Title is checked before everything else, even a missing group.
		{"blank title", "missing", func(in *ExpenseInput) { in.Title = " " }, apperr.KindValidation, "Informe o título da despesa."},
		{"zero amount", "missing", func(in *ExpenseInput) { in.Amount = decimal.Zero }, apperr.KindValidation, "Valor inválido."},
		{"negative amount", g.ID, func(in *ExpenseInput) { in.Amount = dec("-5") }, apperr.KindValidation, "Valor inválido."},
		{"amount rounds to zero", g.ID, func(in *ExpenseInput) { in.Amount = dec("0.004") }, apperr.KindValidation, "Valor inválido."},
		{"missing group", "missing", func(in *ExpenseInput) {}, apperr.KindNotFound, "Grupo não encontrado."},
		{"buyer outside group", g.ID, func(in *ExpenseInput) { in.Buyer = "z@x.com"; in.Payer = "z@x.com" }, apperr.KindValidation, "Comprador não faz parte do grupo."},
		{"payer outside group", g.ID, func(in *ExpenseInput) { in.Payer = "z@x.com" }, apperr.KindValidation, "Pagador não faz parte do grupo."},
		{"empty selection", g.ID, func(in *ExpenseInput) { in.Participants = nil }, apperr.KindValidation, "Selecione ao menos 1 participante para dividir."},
		{"blank selection", g.ID, func(in *ExpenseInput) { in.Participants = []string{"  "} }, apperr.KindValidation, "Selecione ao menos 1 participante para dividir."},
		{"participant outside group", g.ID, func(in *ExpenseInput) { in.Participants = []string{"a@x.com", "z@x.com"} }, apperr.KindValidation, "Participante inválido na divisão."},
		{"unknown split mode", g.ID, func(in *ExpenseInput) { in.Split = "weighted" }, apperr.KindValidation, "Modo de divisão inválido."},
		{"unknown category", g.ID, func(in *ExpenseInput) { in.Category = "Lazer" }, apperr.KindValidation, "Categoria inválida."},
		{"subcategory of another category", g.ID, func(in *ExpenseInput) { in.Category = "Transporte"; in.Subcategory = "Comida" }, apperr.KindValidation, "Subcategoria inválida para a categoria."},
		{"subcategory without category", g.ID, func(in *ExpenseInput) { in.Subcategory = "Comida" }, apperr.KindValidation, "Subcategoria inválida para a categoria."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			_, err := f.expenses.Create(ctx, tt.groupID, in)
			requireKind(t, err, tt.kind, tt.msg)
		})
	}

	// Nothing was stored or logged by the failures.
	expenses, err := f.expenses.List(ctx, g.ID)
	require.NoError(t, err)
	assert.Empty(t, expenses)
	assert.Len(t, f.messages(t, g.ID), 1)

	// The same request with one valid participant succeeds.
	e, err := f.expenses.Create(ctx, g.ID, valid())
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com"}, e.Participants)
}

func TestCreateExpenseEqualAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner", "Praia", "a@x.com", "b@x.com", "c@x.com")

	e, err := f.expenses.Create(ctx, g.ID, ExpenseInput{
		Title:        " Gasolina ida ",
		Amount:       dec("150.004"),
		Buyer:        " A@X.com",
		Payer:        "b@x.com",
		Split:        models.SplitEqualAll,
		Participants: []string{"a@x.com"}, // ignored under equal_all
		Category:     "Transporte",
		Subcategory:  "Gasolina",
		Location:     "Posto Shell",
	})
	require.NoError(t, err)

	assert.Equal(t, "Gasolina ida", e.Title)
	assert.True(t, dec("150").Equal(e.Amount))
	assert.Equal(t, "a@x.com", e.Buyer)
	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, e.Participants)
	assert.False(t, e.Paid)
	assert.NotEmpty(t, e.DateISO)

	assert.Equal(t, []string{
		`a@x.com comprou "Gasolina ida" [Transporte/Gasolina] no Posto Shell por R$ 150.00 — pendente para b@x.com entre todos.`,
		"Grupo criado: Praia.",
	}, f.messages(t, g.ID))

	// Empty split mode defaults to equal_all.
	e2, err := f.expenses.Create(ctx, g.ID, ExpenseInput{Title: "Água", Amount: dec("9"), Buyer: "a@x.com", Payer: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, models.SplitEqualAll, e2.Split)
	assert.Len(t, e2.Participants, 3)
}

func TestCreateExpenseWithProofIsPaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner", "Praia", "a@x.com", "b@x.com")

	e, err := f.expenses.Create(ctx, g.ID, ExpenseInput{
		Title:        "Pizza",
		Amount:       dec("60.5"),
		Buyer:        "a@x.com",
		Payer:        "b@x.com",
		Split:        models.SplitEqualSelected,
		Participants: []string{"A@x.com", "a@x.com", "b@x.com"},
		ProofURL:     "data:image/png;base64,AAAA",
	})
	require.NoError(t, err)
	assert.True(t, e.Paid)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, e.Participants)

	assert.Equal(t, []string{
		`Pagamento confirmado para "Pizza".`,
		`a@x.com comprou "Pizza" por R$ 60.50 (pago) para b@x.com entre 2 participante(s).`,
		"Grupo criado: Praia.",
	}, f.messages(t, g.ID))
}

func TestUpdateProofConfirmsPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner", "Praia", "a@x.com", "b@x.com")

	e, err := f.expenses.Create(ctx, g.ID, ExpenseInput{Title: "Pizza", Amount: dec("60"), Buyer: "a@x.com", Payer: "b@x.com"})
	require.NoError(t, err)
	require.False(t, e.Paid)

	_, err = f.expenses.UpdateProof(ctx, e.ID, "  ", "a@x.com")
	requireKind(t, err, apperr.KindValidation, "Selecione um comprovante.")
	unchanged, err := f.expenses.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, unchanged.Paid)

	// A missing expense is reported before a blank reference.
	_, err = f.expenses.UpdateProof(ctx, "missing", "", "a@x.com")
	requireKind(t, err, apperr.KindNotFound, "Despesa não encontrada.")

	updated, err := f.expenses.UpdateProof(ctx, e.ID, "https://cdn/proof.png", "A@x.com")
	require.NoError(t, err)
	assert.True(t, updated.Paid)
	assert.Equal(t, "https://cdn/proof.png", updated.ProofURL)

	stored, err := f.expenses.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, stored.Paid)
	assert.Equal(t, "https://cdn/proof.png", stored.ProofURL)

	msgs := f.messages(t, g.ID)
	require.Len(t, msgs, 3)
	assert.Equal(t, `a@x.com anexou comprovante PIX para "Pizza" (pagamento confirmado).`, msgs[0])
	assert.Contains(t, msgs[1], `comprou "Pizza"`)

	_, err = f.expenses.UpdateProof(ctx, "missing", "ref", "a@x.com")
	requireKind(t, err, apperr.KindNotFound, "Despesa não encontrada.")
}

func TestMarkPaidIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner", "Praia", "a@x.com", "b@x.com")

	e, err := f.expenses.Create(ctx, g.ID, ExpenseInput{Title: "Pizza", Amount: dec("60"), Buyer: "a@x.com", Payer: "b@x.com"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		paid, err := f.expenses.MarkPaid(ctx, e.ID, "b@x.com")
		require.NoError(t, err)
		assert.True(t, paid.Paid)
	}

	msgs := f.messages(t, g.ID)
	assert.Equal(t, "b@x.com marcou como pago: Pizza.", msgs[0])
	assert.Equal(t, "b@x.com marcou como pago: Pizza.", msgs[1])

	_, err = f.expenses.MarkPaid(ctx, "missing", "b@x.com")
	requireKind(t, err, apperr.KindNotFound, "Despesa não encontrada.")
}

func TestRemoveExpenseIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner", "Praia", "a@x.com")

	e, err := f.expenses.Create(ctx, g.ID, ExpenseInput{Title: "Pizza", Amount: dec("60"), Buyer: "a@x.com", Payer: "a@x.com"})
	require.NoError(t, err)

	require.NoError(t, f.expenses.Remove(ctx, e.ID))
	require.NoError(t, f.expenses.Remove(ctx, e.ID))

	msgs := f.messages(t, g.ID)
	require.Len(t, msgs, 3)
	assert.Equal(t, "Despesa removida: Pizza.", msgs[0])

	_, err = f.expenses.Get(ctx, e.ID)
	requireKind(t, err, apperr.KindNotFound, "Despesa não encontrada.")
}

func TestListExpensesByDateDescending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner", "Praia", "a@x.com")

	for _, in := range []struct{ title, date string }{
		{"old", "2025-01-10"},
		{"new-1", "2025-02-01"},
		{"mid", "2025-01-20"},
		{"new-2", "2025-02-01"},
	} {
		_, err := f.expenses.Create(ctx, g.ID, ExpenseInput{Title: in.title, Amount: dec("1"), Buyer: "a@x.com", Payer: "a@x.com", DateISO: in.date})
		require.NoError(t, err)
	}

	list, err := f.expenses.List(ctx, g.ID)
	require.NoError(t, err)
	var titles []string
	for _, e := range list {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"new-1", "new-2", "mid", "old"}, titles)
}

func TestPreviewRoundsPerHead(t *testing.T) {
	f := newFixture(t)

	s := f.expenses.Preview(dec("100.00"), []string{"a@x.com", "b@x.com", "c@x.com"})
	assert.Equal(t, "33.33", s.PerHead.StringFixed(2))
	assert.Equal(t, "99.99", s.Total.StringFixed(2))

	empty := f.expenses.Preview(dec("100"), nil)
	assert.True(t, empty.PerHead.IsZero())
}

func TestBalances(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner", "Praia", "a@x.com", "b@x.com", "c@x.com")

	_, err := f.expenses.Create(ctx, g.ID, ExpenseInput{Title: "Casa", Amount: dec("90"), Buyer: "a@x.com", Payer: "a@x.com"})
	require.NoError(t, err)
	paid, err := f.expenses.Create(ctx, g.ID, ExpenseInput{Title: "Pizza", Amount: dec("30"), Buyer: "b@x.com", Payer: "b@x.com"})
	require.NoError(t, err)
	_, err = f.expenses.MarkPaid(ctx, paid.ID, "a@x.com")
	require.NoError(t, err)

	balances, debts, err := f.expenses.Balances(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, balances, 3)
	assert.Equal(t, "a@x.com", balances[0].Member)
	assert.Equal(t, "60.00", balances[0].NetBalance.StringFixed(2))

	require.Len(t, debts, 2)
	for _, d := range debts {
		assert.Equal(t, "a@x.com", d.To)
		assert.Equal(t, "30.00", d.Amount.StringFixed(2))
	}
}
