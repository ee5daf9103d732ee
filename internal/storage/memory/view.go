package memory

import (
	"context"
	"fmt"

	"github.com/acerto/acerto/internal/models"
	"github.com/acerto/acerto/internal/storage"
)

var _ storage.Store = (*view)(nil)

// view operates on the tables without locking. The owning Store holds the
// lock for the view's lifetime.
type view struct {
	t *tables
}

func (v *view) Atomic(ctx context.Context, fn func(tx storage.Store) error) error {
	return fn(v)
}

func (v *view) Close() error { return nil }

func (v *view) CreateGroup(ctx context.Context, group *models.Group) error {
	for _, g := range v.t.groups {
		if g.ID == group.ID {
			return fmt.Errorf("group %s already exists", group.ID)
		}
	}
	v.t.groups = append(v.t.groups, group.Clone())
	return nil
}

func (v *view) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	for _, g := range v.t.groups {
		if g.ID == groupID {
			return g.Clone(), nil
		}
	}
	return nil, notFound("group", groupID)
}

func (v *view) ListGroupsByOwner(ctx context.Context, ownerID string) ([]*models.Group, error) {
	var out []*models.Group
	for _, g := range v.t.groups {
		if g.OwnerID == ownerID {
			out = append(out, g.Clone())
		}
	}
	return out, nil
}

func (v *view) UpdateGroup(ctx context.Context, group *models.Group) error {
	for i, g := range v.t.groups {
		if g.ID == group.ID {
			v.t.groups[i] = group.Clone()
			return nil
		}
	}
	return notFound("group", group.ID)
}

func (v *view) DeleteGroup(ctx context.Context, groupID string) error {
	idx := -1
	for i, g := range v.t.groups {
		if g.ID == groupID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return notFound("group", groupID)
	}
	v.t.groups = append(v.t.groups[:idx:idx], v.t.groups[idx+1:]...)

	v.t.expenses = filter(v.t.expenses, func(e *models.Expense) bool { return e.GroupID != groupID })
	v.t.invites = filter(v.t.invites, func(i *models.Invite) bool { return i.GroupID != groupID })
	v.t.logs = filter(v.t.logs, func(l *models.LogEntry) bool { return l.GroupID != groupID })
	return nil
}

func (v *view) CreateInvite(ctx context.Context, invite *models.Invite) error {
	c := *invite
	v.t.invites = append(v.t.invites, &c)
	return nil
}

func (v *view) ListInvites(ctx context.Context, groupID string) ([]*models.Invite, error) {
	var out []*models.Invite
	for _, i := range v.t.invites {
		if i.GroupID == groupID {
			c := *i
			out = append(out, &c)
		}
	}
	return out, nil
}

func (v *view) GetInviteByToken(ctx context.Context, token string) (*models.Invite, error) {
	for _, i := range v.t.invites {
		if i.Token == token {
			c := *i
			return &c, nil
		}
	}
	return nil, notFound("invite", token)
}

func (v *view) CreateExpense(ctx context.Context, expense *models.Expense) error {
	v.t.expenses = append(v.t.expenses, expense.Clone())
	return nil
}

func (v *view) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	for _, e := range v.t.expenses {
		if e.ID == expenseID {
			return e.Clone(), nil
		}
	}
	return nil, notFound("expense", expenseID)
}

func (v *view) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	var out []*models.Expense
	for _, e := range v.t.expenses {
		if e.GroupID == groupID {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

func (v *view) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	for i, e := range v.t.expenses {
		if e.ID == expense.ID {
			v.t.expenses[i] = expense.Clone()
			return nil
		}
	}
	return notFound("expense", expense.ID)
}

func (v *view) DeleteExpense(ctx context.Context, expenseID string) error {
	before := len(v.t.expenses)
	v.t.expenses = filter(v.t.expenses, func(e *models.Expense) bool { return e.ID != expenseID })
	if len(v.t.expenses) == before {
		return notFound("expense", expenseID)
	}
	return nil
}

// AppendLog prepends, keeping the slice newest first.
func (v *view) AppendLog(ctx context.Context, entry *models.LogEntry) error {
	c := *entry
	v.t.logs = append([]*models.LogEntry{&c}, v.t.logs...)
	return nil
}

func (v *view) ListLogs(ctx context.Context, groupID string) ([]*models.LogEntry, error) {
	var out []*models.LogEntry
	for _, l := range v.t.logs {
		if l.GroupID == groupID {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

func (v *view) CreateUser(ctx context.Context, user *models.User) error {
	for _, u := range v.t.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with email %s already exists", user.Email)
		}
	}
	c := *user
	v.t.users = append(v.t.users, &c)
	return nil
}

func (v *view) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range v.t.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, notFound("user", email)
}

func (v *view) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range v.t.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, notFound("user", id)
}

// filter returns a new slice holding the elements for which keep is true.
func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, x := range in {
		if keep(x) {
			out = append(out, x)
		}
	}
	return out
}
