// Package memory provides an in-memory implementation of storage.Store.
// It is the reference backend used by tests and by `acerto serve` when no
// database is configured. Data lives only as long as the Store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/acerto/acerto/internal/models"
	"github.com/acerto/acerto/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store is a process-local store guarded by a single mutex.
type Store struct {
	mu sync.Mutex
	t  *tables
}

// tables holds the rows. Elements are replaced on write, never mutated in
// place, so a shallow copy of the slices is a consistent snapshot.
type tables struct {
	groups   []*models.Group
	invites  []*models.Invite
	expenses []*models.Expense
	logs     []*models.LogEntry // newest first
	users    []*models.User
}

func (t *tables) snapshot() *tables {
	return &tables{
		groups:   append([]*models.Group(nil), t.groups...),
		invites:  append([]*models.Invite(nil), t.invites...),
		expenses: append([]*models.Expense(nil), t.expenses...),
		logs:     append([]*models.LogEntry(nil), t.logs...),
		users:    append([]*models.User(nil), t.users...),
	}
}

// New creates an empty store.
func New() *Store {
	return &Store{t: &tables{}}
}

// Close drops all data.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t = &tables{}
	return nil
}

// Atomic runs fn while holding the store lock, restoring the previous state
// if fn fails.
func (s *Store) Atomic(ctx context.Context, fn func(tx storage.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.t.snapshot()
	if err := fn(&view{t: s.t}); err != nil {
		s.t = before
		return err
	}
	return nil
}

// with runs fn on a view under the lock.
func (s *Store) with(fn func(v *view) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&view{t: s.t})
}

func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	return s.with(func(v *view) error { return v.CreateGroup(ctx, group) })
}

func (s *Store) GetGroup(ctx context.Context, groupID string) (g *models.Group, err error) {
	err = s.with(func(v *view) error {
		g, err = v.GetGroup(ctx, groupID)
		return err
	})
	return g, err
}

func (s *Store) ListGroupsByOwner(ctx context.Context, ownerID string) (gs []*models.Group, err error) {
	err = s.with(func(v *view) error {
		gs, err = v.ListGroupsByOwner(ctx, ownerID)
		return err
	})
	return gs, err
}

func (s *Store) UpdateGroup(ctx context.Context, group *models.Group) error {
	return s.with(func(v *view) error { return v.UpdateGroup(ctx, group) })
}

func (s *Store) DeleteGroup(ctx context.Context, groupID string) error {
	return s.with(func(v *view) error { return v.DeleteGroup(ctx, groupID) })
}

func (s *Store) CreateInvite(ctx context.Context, invite *models.Invite) error {
	return s.with(func(v *view) error { return v.CreateInvite(ctx, invite) })
}

func (s *Store) ListInvites(ctx context.Context, groupID string) (is []*models.Invite, err error) {
	err = s.with(func(v *view) error {
		is, err = v.ListInvites(ctx, groupID)
		return err
	})
	return is, err
}

func (s *Store) GetInviteByToken(ctx context.Context, token string) (i *models.Invite, err error) {
	err = s.with(func(v *view) error {
		i, err = v.GetInviteByToken(ctx, token)
		return err
	})
	return i, err
}

func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	return s.with(func(v *view) error { return v.CreateExpense(ctx, expense) })
}

func (s *Store) GetExpense(ctx context.Context, expenseID string) (e *models.Expense, err error) {
	err = s.with(func(v *view) error {
		e, err = v.GetExpense(ctx, expenseID)
		return err
	})
	return e, err
}

func (s *Store) ListExpensesByGroup(ctx context.Context, groupID string) (es []*models.Expense, err error) {
	err = s.with(func(v *view) error {
		es, err = v.ListExpensesByGroup(ctx, groupID)
		return err
	})
	return es, err
}

func (s *Store) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	return s.with(func(v *view) error { return v.UpdateExpense(ctx, expense) })
}

func (s *Store) DeleteExpense(ctx context.Context, expenseID string) error {
	return s.with(func(v *view) error { return v.DeleteExpense(ctx, expenseID) })
}

func (s *Store) AppendLog(ctx context.Context, entry *models.LogEntry) error {
	return s.with(func(v *view) error { return v.AppendLog(ctx, entry) })
}

func (s *Store) ListLogs(ctx context.Context, groupID string) (ls []*models.LogEntry, err error) {
	err = s.with(func(v *view) error {
		ls, err = v.ListLogs(ctx, groupID)
		return err
	})
	return ls, err
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.with(func(v *view) error { return v.CreateUser(ctx, user) })
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (u *models.User, err error) {
	err = s.with(func(v *view) error {
		u, err = v.GetUserByEmail(ctx, email)
		return err
	})
	return u, err
}

func (s *Store) GetUserByID(ctx context.Context, id string) (u *models.User, err error) {
	err = s.with(func(v *view) error {
		u, err = v.GetUserByID(ctx, id)
		return err
	})
	return u, err
}

func notFound(what, id string) error {
	return fmt.Errorf("%s %s: %w", what, id, storage.ErrNotFound)
}
