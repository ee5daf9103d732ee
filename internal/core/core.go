// Package core implements the group, invite and expense services.
//
// Every operation reads, validates and writes inside a single
// storage.Store.Atomic unit, so a failed validation never leaves a partial
// write behind and concurrent requests cannot interleave.
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/acerto/acerto/internal/activity"
	"github.com/acerto/acerto/internal/apperr"
	"github.com/acerto/acerto/internal/ids"
	"github.com/acerto/acerto/internal/models"
	"github.com/acerto/acerto/internal/storage"
)

const (
	msgGroupNotFound   = "Grupo não encontrado."
	msgExpenseNotFound = "Despesa não encontrada."
	msgInviteInvalid   = "Convite inválido ou expirado."
)

// appendLog records ev in the group's activity feed.
func appendLog(ctx context.Context, tx storage.Store, clock ids.Clock, groupID string, ev activity.Event) error {
	entry := &models.LogEntry{
		ID:        ids.New(),
		GroupID:   groupID,
		Kind:      ev.Kind,
		Payload:   ev.Payload,
		Message:   ev.Message(),
		CreatedAt: clock(),
	}
	if err := tx.AppendLog(ctx, entry); err != nil {
		return fmt.Errorf("failed to append log: %w", err)
	}
	return nil
}

// lookup maps storage.ErrNotFound to a NotFound error carrying msg.
func lookup(err error, msg string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(msg)
	}
	return err
}
