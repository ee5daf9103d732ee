package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/acerto/acerto/internal/models"
)

const groupColumns = "id, owner_id, name, description, event_at, created_at, updated_at"

// CreateGroup persists a new group with its members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	return s.transact(ctx, func(tx *SQLiteStore) error {
		_, err := tx.q.ExecContext(ctx, "INSERT INTO groups ("+groupColumns+", name_key) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			group.ID,
			group.OwnerID,
			group.Name,
			group.Description,
			toNullUnix(group.EventAt),
			toUnix(group.CreatedAt),
			toUnix(group.UpdatedAt),
			nameKey(group.Name),
		)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}
		return tx.insertMembers(ctx, group)
	})
}

// GetGroup retrieves a group by ID, including its members.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	row := s.q.QueryRowContext(ctx, "SELECT "+groupColumns+" FROM groups WHERE id = ?", groupID)
	group, err := scanGroup(row)
	if err != nil {
		return nil, lookupErr(err, "group", groupID)
	}

	if group.Members, err = s.members(ctx, groupID); err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroupsByOwner returns the owner's groups in insertion order.
func (s *SQLiteStore) ListGroupsByOwner(ctx context.Context, ownerID string) ([]*models.Group, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT "+groupColumns+" FROM groups WHERE owner_id = ? ORDER BY seq",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	// Members are loaded after the group rows are closed; the pool has a
	// single connection.
	for _, group := range groups {
		if group.Members, err = s.members(ctx, group.ID); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// UpdateGroup replaces a group's fields and its member list.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, group *models.Group) error {
	return s.transact(ctx, func(tx *SQLiteStore) error {
		err := tx.exec(ctx, "group", group.ID,
			"UPDATE groups SET name = ?, name_key = ?, description = ?, event_at = ?, updated_at = ? WHERE id = ?",
			group.Name,
			nameKey(group.Name),
			group.Description,
			toNullUnix(group.EventAt),
			toUnix(group.UpdatedAt),
			group.ID,
		)
		if err != nil {
			return err
		}

		if _, err := tx.q.ExecContext(ctx, "DELETE FROM group_members WHERE group_id = ?", group.ID); err != nil {
			return fmt.Errorf("failed to clear members: %w", err)
		}
		return tx.insertMembers(ctx, group)
	})
}

// DeleteGroup removes a group. Members, invites, expenses and logs go with
// it through ON DELETE CASCADE.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	return s.exec(ctx, "group", groupID, "DELETE FROM groups WHERE id = ?", groupID)
}

func (s *SQLiteStore) insertMembers(ctx context.Context, group *models.Group) error {
	for i, m := range group.Members {
		_, err := s.q.ExecContext(ctx,
			"INSERT INTO group_members (group_id, email, invited, position) VALUES (?, ?, ?, ?)",
			group.ID, m.Email, boolInt(m.Invited), i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) members(ctx context.Context, groupID string) ([]models.Member, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT email, invited FROM group_members WHERE group_id = ? ORDER BY position",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.Email, &m.Invited); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGroup(row scanner) (*models.Group, error) {
	var (
		group              models.Group
		eventAt            sql.NullInt64
		createdAt, updated int64
	)
	if err := row.Scan(&group.ID, &group.OwnerID, &group.Name, &group.Description, &eventAt, &createdAt, &updated); err != nil {
		return nil, err
	}
	group.EventAt = fromNullUnix(eventAt)
	group.CreatedAt = fromUnix(createdAt)
	group.UpdatedAt = fromUnix(updated)
	return &group, nil
}

// nameKey backs the per-owner uniqueness constraint on group names.
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
