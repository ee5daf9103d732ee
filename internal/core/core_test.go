package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/acerto/acerto/internal/apperr"
	"github.com/acerto/acerto/internal/ids"
	"github.com/acerto/acerto/internal/models"
	"github.com/acerto/acerto/internal/storage"
	"github.com/acerto/acerto/internal/storage/memory"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeClock advances one second per call unless pinned.
type fakeClock struct {
	now    time.Time
	pinned bool
}

func (c *fakeClock) Now() time.Time {
	if !c.pinned {
		c.now = c.now.Add(time.Second)
	}
	return c.now
}

type fixture struct {
	store    storage.Store
	clock    *fakeClock
	groups   *GroupService
	invites  *InviteService
	expenses *ExpenseService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	t.Cleanup(func() { store.Close() })

	clock := &fakeClock{now: base}
	var c ids.Clock = clock.Now
	return &fixture{
		store:    store,
		clock:    clock,
		groups:   NewGroupService(store, c),
		invites:  NewInviteService(store, c, 24*time.Hour),
		expenses: NewExpenseService(store, c),
	}
}

func (f *fixture) group(t *testing.T, owner, name string, members ...string) *models.Group {
	t.Helper()
	var ms []models.Member
	for _, m := range members {
		ms = append(ms, models.Member{Email: m})
	}
	g, err := f.groups.Create(context.Background(), owner, GroupInput{Name: name, Members: ms})
	require.NoError(t, err)
	return g
}

func (f *fixture) messages(t *testing.T, groupID string) []string {
	t.Helper()
	logs, err := f.store.ListLogs(context.Background(), groupID)
	require.NoError(t, err)
	out := make([]string, len(logs))
	for i, l := range logs {
		out[i] = l.Message
	}
	return out
}

func requireKind(t *testing.T, err error, kind apperr.Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperr.KindOf(err), "error: %v", err)
	if msg != "" {
		require.EqualError(t, err, msg)
	}
}
