package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/acerto/acerto/internal/models"
)

// CreateInvite persists a new invite.
func (s *SQLiteStore) CreateInvite(ctx context.Context, invite *models.Invite) error {
	_, err := s.q.ExecContext(ctx,
		"INSERT INTO group_invites (id, group_id, token, created_at, expires_at) VALUES (?, ?, ?, ?, ?)",
		invite.ID,
		invite.GroupID,
		invite.Token,
		toUnix(invite.CreatedAt),
		toNullUnix(invite.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert invite: %w", err)
	}
	return nil
}

// ListInvites returns the group's invites in insertion order.
func (s *SQLiteStore) ListInvites(ctx context.Context, groupID string) ([]*models.Invite, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT id, group_id, token, created_at, expires_at FROM group_invites WHERE group_id = ? ORDER BY seq",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	defer rows.Close()

	var invites []*models.Invite
	for rows.Next() {
		invite, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		invites = append(invites, invite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invites: %w", err)
	}
	return invites, nil
}

// GetInviteByToken retrieves the invite carrying token.
func (s *SQLiteStore) GetInviteByToken(ctx context.Context, token string) (*models.Invite, error) {
	row := s.q.QueryRowContext(ctx,
		"SELECT id, group_id, token, created_at, expires_at FROM group_invites WHERE token = ?",
		token,
	)
	invite, err := scanInvite(row)
	if err != nil {
		return nil, lookupErr(err, "invite", token)
	}
	return invite, nil
}

func scanInvite(row scanner) (*models.Invite, error) {
	var (
		invite    models.Invite
		createdAt int64
		expiresAt sql.NullInt64
	)
	if err := row.Scan(&invite.ID, &invite.GroupID, &invite.Token, &createdAt, &expiresAt); err != nil {
		return nil, err
	}
	invite.CreatedAt = fromUnix(createdAt)
	invite.ExpiresAt = fromNullUnix(expiresAt)
	return &invite, nil
}
