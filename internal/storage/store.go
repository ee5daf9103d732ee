// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/acerto/acerto/internal/models"
)

// ErrNotFound is returned (possibly wrapped) when a lookup matches nothing.
var ErrNotFound = errors.New("record not found")

// GroupStore persists groups and their members.
type GroupStore interface {
	// CreateGroup persists a new group. ID and timestamps must be set.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID regardless of owner.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByOwner returns all groups owned by ownerID in insertion order.
	ListGroupsByOwner(ctx context.Context, ownerID string) ([]*models.Group, error)

	// UpdateGroup replaces an existing group, including its members.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group together with its expenses, invites and
	// log entries.
	DeleteGroup(ctx context.Context, groupID string) error
}

// InviteStore persists invites. Invites are never updated.
type InviteStore interface {
	CreateInvite(ctx context.Context, invite *models.Invite) error

	// ListInvites returns the group's invites in insertion order.
	ListInvites(ctx context.Context, groupID string) ([]*models.Invite, error)

	GetInviteByToken(ctx context.Context, token string) (*models.Invite, error)
}

// ExpenseStore persists expenses.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup returns the group's expenses in insertion order.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// UpdateExpense persists an expense's title and payment state (paid,
	// proof). Participants are fixed at creation.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	DeleteExpense(ctx context.Context, expenseID string) error
}

// LogStore persists the append-only activity feed.
type LogStore interface {
	AppendLog(ctx context.Context, entry *models.LogEntry) error

	// ListLogs returns the group's entries newest first by insertion order.
	ListLogs(ctx context.Context, groupID string) ([]*models.LogEntry, error)
}

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store defines the full repository contract.
// This abstraction allows swapping storage backends (in-memory, SQLite, ...)
// without changing the service layer.
type Store interface {
	GroupStore
	InviteStore
	ExpenseStore
	LogStore
	UserStore

	// Atomic runs fn against a view of the store in which every read and
	// write happens as one unit: either all writes are kept or, if fn
	// returns an error, none are. Calling Atomic on such a view runs fn
	// directly.
	Atomic(ctx context.Context, fn func(tx Store) error) error

	// Close releases any resources held by the store.
	Close() error
}
