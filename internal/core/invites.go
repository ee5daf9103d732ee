package core

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/acerto/acerto/internal/activity"
	"github.com/acerto/acerto/internal/apperr"
	"github.com/acerto/acerto/internal/ids"
	"github.com/acerto/acerto/internal/models"
	"github.com/acerto/acerto/internal/storage"
)

// InviteService issues and resolves join links. Callers authorize the
// owner before Create.
type InviteService struct {
	store storage.Store
	clock ids.Clock
	ttl   time.Duration
}

// NewInviteService creates the service. A ttl of zero issues invites that
// never expire.
func NewInviteService(store storage.Store, clock ids.Clock, ttl time.Duration) *InviteService {
	return &InviteService{store: store, clock: clock, ttl: ttl}
}

// Create issues a new invite for the group.
func (s *InviteService) Create(ctx context.Context, groupID string) (*models.Invite, error) {
	var invite *models.Invite
	err := s.store.Atomic(ctx, func(tx storage.Store) error {
		if _, err := tx.GetGroup(ctx, groupID); err != nil {
			return lookup(err, msgGroupNotFound)
		}

		now := s.clock()
		invite = &models.Invite{
			ID:        ids.New(),
			GroupID:   groupID,
			Token:     ids.Token(),
			CreatedAt: now,
		}
		if s.ttl > 0 {
			expires := now.Add(s.ttl)
			invite.ExpiresAt = &expires
		}

		if err := tx.CreateInvite(ctx, invite); err != nil {
			return fmt.Errorf("failed to create invite: %w", err)
		}
		return appendLog(ctx, tx, s.clock, groupID, activity.InviteCreated())
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Invite created", "group_id", groupID, "invite_id", invite.ID)
	return invite, nil
}

// List returns the group's invites in the order they were issued.
func (s *InviteService) List(ctx context.Context, groupID string) ([]*models.Invite, error) {
	invites, err := s.store.ListInvites(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, nil
}

// Resolve looks up a join link. Unknown and expired tokens are reported
// the same way.
func (s *InviteService) Resolve(ctx context.Context, token string) (*models.Invite, *models.Group, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil, apperr.NotFound(msgInviteInvalid)
	}

	invite, err := s.store.GetInviteByToken(ctx, token)
	if err != nil {
		return nil, nil, lookup(err, msgInviteInvalid)
	}
	if invite.Expired(s.clock()) {
		return nil, nil, apperr.NotFound(msgInviteInvalid)
	}

	group, err := s.store.GetGroup(ctx, invite.GroupID)
	if err != nil {
		return nil, nil, lookup(err, msgInviteInvalid)
	}
	return invite, group, nil
}

// Link builds the shareable URL for token.
func Link(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/invite/" + url.PathEscape(token)
}
