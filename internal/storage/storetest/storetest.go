// Package storetest holds the behaviour every storage.Store must share.
// Backends call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acerto/acerto/internal/models"
	"github.com/acerto/acerto/internal/storage"
)

// Opener returns a fresh, empty store. The caller closes it.
type Opener func(t *testing.T) storage.Store

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// Run exercises the full repository contract against stores from open.
func Run(t *testing.T, open Opener) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Store)
	}{
		{"GroupRoundTrip", testGroupRoundTrip},
		{"ListGroupsByOwner", testListGroupsByOwner},
		{"UpdateGroupReplacesMembers", testUpdateGroup},
		{"MissingRecordsWrapErrNotFound", testNotFound},
		{"ExpenseRoundTrip", testExpenseRoundTrip},
		{"LogsNewestFirst", testLogsNewestFirst},
		{"InvitesInsertionOrder", testInvites},
		{"DeleteGroupCascades", testDeleteGroupCascades},
		{"AtomicRollsBack", testAtomicRollsBack},
		{"AtomicCommits", testAtomicCommits},
		{"Users", testUsers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := open(t)
			t.Cleanup(func() { s.Close() })
			tt.fn(t, s)
		})
	}
}

func newGroup(id, owner, name string, members ...string) *models.Group {
	g := &models.Group{
		ID:        id,
		Name:      name,
		OwnerID:   owner,
		CreatedAt: base,
		UpdatedAt: base,
	}
	for _, m := range members {
		g.Members = append(g.Members, models.Member{Email: m})
	}
	return g
}

func newExpense(id, groupID, title, date string) *models.Expense {
	return &models.Expense{
		ID:           id,
		GroupID:      groupID,
		Title:        title,
		Amount:       decimal.RequireFromString("42.50"),
		Buyer:        "a@x.com",
		Payer:        "b@x.com",
		Split:        models.SplitEqualSelected,
		Participants: []string{"a@x.com", "b@x.com"},
		DateISO:      date,
		CreatedAt:    base,
	}
}

func newLog(id, groupID, message string) *models.LogEntry {
	return &models.LogEntry{
		ID:        id,
		GroupID:   groupID,
		Kind:      models.EventUnclassified,
		Message:   message,
		CreatedAt: base,
	}
}

func testGroupRoundTrip(t *testing.T, s storage.Store) {
	ctx := context.Background()
	eventAt := base.Add(48 * time.Hour)

	g := newGroup("g1", "owner", "Viagem SP", "a@x.com", "b@x.com")
	g.Description = "fim de semana"
	g.EventAt = &eventAt
	g.Members[1].Invited = true
	require.NoError(t, s.CreateGroup(ctx, g))

	got, err := s.GetGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "Viagem SP", got.Name)
	assert.Equal(t, "fim de semana", got.Description)
	assert.Equal(t, "owner", got.OwnerID)
	assert.Equal(t, []models.Member{{Email: "a@x.com"}, {Email: "b@x.com", Invited: true}}, got.Members)
	require.NotNil(t, got.EventAt)
	assert.True(t, eventAt.Equal(*got.EventAt))
	assert.True(t, base.Equal(got.CreatedAt))

	// The stored copy is independent of the caller's value.
	g.Members[0].Email = "changed@x.com"
	again, err := s.GetGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", again.Members[0].Email)
}

func testListGroupsByOwner(t *testing.T, s storage.Store) {
	ctx := context.Background()
	require.NoError(t, s.CreateGroup(ctx, newGroup("g1", "ana", "Praia", "a@x.com")))
	require.NoError(t, s.CreateGroup(ctx, newGroup("g2", "bia", "Serra", "b@x.com")))
	require.NoError(t, s.CreateGroup(ctx, newGroup("g3", "ana", "Show", "a@x.com")))

	groups, err := s.ListGroupsByOwner(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "g1", groups[0].ID)
	assert.Equal(t, "g3", groups[1].ID)

	none, err := s.ListGroupsByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testUpdateGroup(t *testing.T, s storage.Store) {
	ctx := context.Background()
	g := newGroup("g1", "ana", "Praia", "a@x.com", "b@x.com")
	require.NoError(t, s.CreateGroup(ctx, g))

	g.Name = "Praia 2025"
	g.Members = []models.Member{{Email: "c@x.com"}}
	g.UpdatedAt = base.Add(time.Hour)
	require.NoError(t, s.UpdateGroup(ctx, g))

	got, err := s.GetGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "Praia 2025", got.Name)
	assert.Equal(t, []models.Member{{Email: "c@x.com"}}, got.Members)
	assert.True(t, base.Add(time.Hour).Equal(got.UpdatedAt))
}

func testNotFound(t *testing.T, s storage.Store) {
	ctx := context.Background()

	_, err := s.GetGroup(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.GetExpense(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.GetInviteByToken(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.GetUserByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, s.UpdateGroup(ctx, newGroup("missing", "ana", "X")), storage.ErrNotFound)
	assert.ErrorIs(t, s.DeleteGroup(ctx, "missing"), storage.ErrNotFound)
	assert.ErrorIs(t, s.DeleteExpense(ctx, "missing"), storage.ErrNotFound)
}

func testExpenseRoundTrip(t *testing.T, s storage.Store) {
	ctx := context.Background()
	require.NoError(t, s.CreateGroup(ctx, newGroup("g1", "ana", "Praia", "a@x.com", "b@x.com")))

	e := newExpense("e1", "g1", "Pizza", "2025-03-01")
	e.Category = "Alimentação"
	e.Subcategory = "Comida"
	e.PixKey = "a@x.com"
	e.Location = "Centro"
	require.NoError(t, s.CreateExpense(ctx, e))
	require.NoError(t, s.CreateExpense(ctx, newExpense("e2", "g1", "Uber", "2025-03-02")))

	got, err := s.GetExpense(ctx, "e1")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("42.50").Equal(got.Amount))
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, got.Participants)
	assert.Equal(t, "Alimentação", got.Category)
	assert.Equal(t, "Comida", got.Subcategory)
	assert.Equal(t, "Centro", got.Location)
	assert.Equal(t, models.SplitEqualSelected, got.Split)
	assert.False(t, got.Paid)

	got.Paid = true
	got.ProofURL = "data:image/png;base64,AAAA"
	require.NoError(t, s.UpdateExpense(ctx, got))

	updated, err := s.GetExpense(ctx, "e1")
	require.NoError(t, err)
	assert.True(t, updated.Paid)
	assert.Equal(t, "data:image/png;base64,AAAA", updated.ProofURL)

	list, err := s.ListExpensesByGroup(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "e1", list[0].ID)
	assert.Equal(t, "e2", list[1].ID)

	require.NoError(t, s.DeleteExpense(ctx, "e1"))
	_, err = s.GetExpense(ctx, "e1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testLogsNewestFirst(t *testing.T, s storage.Store) {
	ctx := context.Background()
	require.NoError(t, s.CreateGroup(ctx, newGroup("g1", "ana", "Praia", "a@x.com")))

	// Identical timestamps still keep insertion order.
	for _, id := range []string{"l1", "l2", "l3"} {
		require.NoError(t, s.AppendLog(ctx, newLog(id, "g1", "entry "+id)))
	}

	entry := newLog("l4", "g1", "Grupo criado: Praia.")
	entry.Kind = models.EventGroupCreated
	entry.Payload = models.EventPayload{GroupName: "Praia"}
	require.NoError(t, s.AppendLog(ctx, entry))

	logs, err := s.ListLogs(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, logs, 4)

	var ids []string
	for _, l := range logs {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"l4", "l3", "l2", "l1"}, ids)
	assert.Equal(t, models.EventGroupCreated, logs[0].Kind)
	assert.Equal(t, "Praia", logs[0].Payload.GroupName)
}

func testInvites(t *testing.T, s storage.Store) {
	ctx := context.Background()
	require.NoError(t, s.CreateGroup(ctx, newGroup("g1", "ana", "Praia", "a@x.com")))

	expires := base.Add(24 * time.Hour)
	require.NoError(t, s.CreateInvite(ctx, &models.Invite{ID: "i1", GroupID: "g1", Token: "tok1", CreatedAt: base}))
	require.NoError(t, s.CreateInvite(ctx, &models.Invite{ID: "i2", GroupID: "g1", Token: "tok2", CreatedAt: base, ExpiresAt: &expires}))

	invites, err := s.ListInvites(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, invites, 2)
	assert.Equal(t, "i1", invites[0].ID)
	assert.Nil(t, invites[0].ExpiresAt)
	require.NotNil(t, invites[1].ExpiresAt)
	assert.True(t, expires.Equal(*invites[1].ExpiresAt))

	inv, err := s.GetInviteByToken(ctx, "tok2")
	require.NoError(t, err)
	assert.Equal(t, "i2", inv.ID)
	assert.Equal(t, "g1", inv.GroupID)
}

func testDeleteGroupCascades(t *testing.T, s storage.Store) {
	ctx := context.Background()
	require.NoError(t, s.CreateGroup(ctx, newGroup("g1", "ana", "Praia", "a@x.com", "b@x.com")))
	require.NoError(t, s.CreateGroup(ctx, newGroup("g2", "ana", "Serra", "a@x.com", "b@x.com")))

	for _, gid := range []string{"g1", "g2"} {
		require.NoError(t, s.CreateExpense(ctx, newExpense("e-"+gid, gid, "Pizza", "2025-03-01")))
		require.NoError(t, s.CreateInvite(ctx, &models.Invite{ID: "i-" + gid, GroupID: gid, Token: "t-" + gid, CreatedAt: base}))
		require.NoError(t, s.AppendLog(ctx, newLog("l-"+gid, gid, "Convite gerado.")))
	}

	require.NoError(t, s.DeleteGroup(ctx, "g1"))

	expenses, err := s.ListExpensesByGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Empty(t, expenses)
	invites, err := s.ListInvites(ctx, "g1")
	require.NoError(t, err)
	assert.Empty(t, invites)
	logs, err := s.ListLogs(ctx, "g1")
	require.NoError(t, err)
	assert.Empty(t, logs)

	_, err = s.GetExpense(ctx, "e-g1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// The sibling group is untouched.
	expenses, err = s.ListExpensesByGroup(ctx, "g2")
	require.NoError(t, err)
	assert.Len(t, expenses, 1)
	logs, err = s.ListLogs(ctx, "g2")
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func testAtomicRollsBack(t *testing.T, s storage.Store) {
	ctx := context.Background()
	require.NoError(t, s.CreateGroup(ctx, newGroup("g1", "ana", "Praia", "a@x.com")))

	boom := errors.New("boom")
	err := s.Atomic(ctx, func(tx storage.Store) error {
		if err := tx.CreateExpense(ctx, newExpense("e1", "g1", "Pizza", "2025-03-01")); err != nil {
			return err
		}
		if err := tx.AppendLog(ctx, newLog("l1", "g1", "partial")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	expenses, err := s.ListExpensesByGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Empty(t, expenses)
	logs, err := s.ListLogs(ctx, "g1")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func testAtomicCommits(t *testing.T, s storage.Store) {
	ctx := context.Background()

	err := s.Atomic(ctx, func(tx storage.Store) error {
		if err := tx.CreateGroup(ctx, newGroup("g1", "ana", "Praia", "a@x.com")); err != nil {
			return err
		}
		// Reads inside the unit see its own writes, and nesting runs inline.
		return tx.Atomic(ctx, func(inner storage.Store) error {
			g, err := inner.GetGroup(ctx, "g1")
			if err != nil {
				return err
			}
			return inner.AppendLog(ctx, newLog("l1", g.ID, "Grupo criado: Praia."))
		})
	})
	require.NoError(t, err)

	_, err = s.GetGroup(ctx, "g1")
	require.NoError(t, err)
	logs, err := s.ListLogs(ctx, "g1")
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func testUsers(t *testing.T, s storage.Store) {
	ctx := context.Background()
	u := models.NewUser("u1", "ana@x.com", "Ana", "hash", base)
	require.NoError(t, s.CreateUser(ctx, u))

	assert.Error(t, s.CreateUser(ctx, models.NewUser("u2", "ana@x.com", "Outra", "hash", base)))

	byEmail, err := s.GetUserByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)
	assert.Equal(t, "Ana", byEmail.Name)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := s.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", byID.Email)

	_, err = s.GetUserByID(ctx, "u2")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
