package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/acerto/acerto/internal/models"
)

// AppendLog adds an entry to the group's activity feed.
func (s *SQLiteStore) AppendLog(ctx context.Context, entry *models.LogEntry) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode log payload: %w", err)
	}

	_, err = s.q.ExecContext(ctx,
		"INSERT INTO group_logs (id, group_id, kind, payload, message, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		entry.ID,
		entry.GroupID,
		string(entry.Kind),
		string(payload),
		entry.Message,
		toUnix(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert log: %w", err)
	}
	return nil
}

// ListLogs returns the group's entries newest first. Ordering uses the
// insertion sequence, so entries sharing a timestamp stay ordered.
func (s *SQLiteStore) ListLogs(ctx context.Context, groupID string) ([]*models.LogEntry, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT id, group_id, kind, payload, message, created_at FROM group_logs WHERE group_id = ? ORDER BY seq DESC",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	defer rows.Close()

	var entries []*models.LogEntry
	for rows.Next() {
		var (
			entry     models.LogEntry
			kind      string
			payload   string
			createdAt int64
		)
		if err := rows.Scan(&entry.ID, &entry.GroupID, &kind, &payload, &entry.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &entry.Payload); err != nil {
			return nil, fmt.Errorf("failed to decode log payload: %w", err)
		}
		entry.Kind = models.EventKind(kind)
		entry.CreatedAt = fromUnix(createdAt)
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate logs: %w", err)
	}
	return entries, nil
}
