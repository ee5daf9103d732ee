package core

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/acerto/acerto/internal/activity"
	"github.com/acerto/acerto/internal/apperr"
	"github.com/acerto/acerto/internal/email"
	"github.com/acerto/acerto/internal/ids"
	"github.com/acerto/acerto/internal/models"
	"github.com/acerto/acerto/internal/storage"
)

// GroupInput is the data for a new group.
type GroupInput struct {
	Name        string
	Description string
	Members     []models.Member
	EventAt     *time.Time
}

// GroupPatch is a partial update. Nil fields are left unchanged; a non-nil
// Members replaces the whole member list.
type GroupPatch struct {
	Name         *string
	Description  *string
	Members      []models.Member
	EventAt      *time.Time
	ClearEventAt bool
}

// GroupService manages an owner's groups.
type GroupService struct {
	store storage.Store
	clock ids.Clock
}

func NewGroupService(store storage.Store, clock ids.Clock) *GroupService {
	return &GroupService{store: store, clock: clock}
}

// List returns the owner's groups whose name contains search, ignoring
// case, sorted the way a Brazilian Portuguese reader expects.
func (s *GroupService) List(ctx context.Context, ownerID, search string) ([]*models.Group, error) {
	groups, err := s.store.ListGroupsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]*models.Group, 0, len(groups))
	for _, g := range groups {
		if strings.Contains(strings.ToLower(g.Name), needle) {
			out = append(out, g)
		}
	}

	// Collators are not safe for concurrent use.
	col := collate.New(language.BrazilianPortuguese, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out, nil
}

// Create validates and stores a new group owned by ownerID.
func (s *GroupService) Create(ctx context.Context, ownerID string, in GroupInput) (*models.Group, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("Informe o nome do grupo.")
	}

	var group *models.Group
	err := s.store.Atomic(ctx, func(tx storage.Store) error {
		if err := checkNameFree(ctx, tx, ownerID, "", name); err != nil {
			return err
		}

		members := email.NormalizeMembers(in.Members)
		if len(members) == 0 {
			return apperr.Validation("Adicione pelo menos 1 membro por e-mail.")
		}

		now := s.clock()
		group = &models.Group{
			ID:          ids.New(),
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			OwnerID:     ownerID,
			Members:     members,
			EventAt:     in.EventAt,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.CreateGroup(ctx, group); err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}
		return appendLog(ctx, tx, s.clock, group.ID, activity.GroupCreated(name))
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "owner_id", ownerID, "members_count", len(group.Members))
	return group, nil
}

// Get returns the group if ownerID owns it.
func (s *GroupService) Get(ctx context.Context, ownerID, groupID string) (*models.Group, error) {
	return getOwned(ctx, s.store, ownerID, groupID)
}

// Update applies patch to one of the owner's groups.
func (s *GroupService) Update(ctx context.Context, ownerID, groupID string, patch GroupPatch) (*models.Group, error) {
	var group *models.Group
	err := s.store.Atomic(ctx, func(tx storage.Store) error {
		var err error
		if group, err = getOwned(ctx, tx, ownerID, groupID); err != nil {
			return err
		}

		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return apperr.Validation("Informe o nome do grupo.")
			}
			if err := checkNameFree(ctx, tx, ownerID, groupID, name); err != nil {
				return err
			}
			group.Name = name
		}
		if patch.Members != nil {
			members := email.NormalizeMembers(patch.Members)
			if len(members) == 0 {
				return apperr.Validation("Adicione pelo menos 1 membro por e-mail.")
			}
			group.Members = members
		}
		if patch.Description != nil {
			group.Description = strings.TrimSpace(*patch.Description)
		}
		switch {
		case patch.ClearEventAt:
			group.EventAt = nil
		case patch.EventAt != nil:
			group.EventAt = patch.EventAt
		}
		group.UpdatedAt = s.clock()

		if err := tx.UpdateGroup(ctx, group); err != nil {
			return fmt.Errorf("failed to update group: %w", err)
		}
		return appendLog(ctx, tx, s.clock, group.ID, activity.GroupUpdated(group.Name))
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Group updated", "group_id", group.ID, "owner_id", ownerID)
	return group, nil
}

// Remove deletes one of the owner's groups with its expenses, invites and
// activity.
func (s *GroupService) Remove(ctx context.Context, ownerID, groupID string) error {
	err := s.store.Atomic(ctx, func(tx storage.Store) error {
		if _, err := getOwned(ctx, tx, ownerID, groupID); err != nil {
			return err
		}
		if err := tx.DeleteGroup(ctx, groupID); err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Group removed", "group_id", groupID, "owner_id", ownerID)
	return nil
}

// Activity returns one of the owner's group logs, newest first.
func (s *GroupService) Activity(ctx context.Context, ownerID, groupID string) ([]*models.LogEntry, error) {
	if _, err := getOwned(ctx, s.store, ownerID, groupID); err != nil {
		return nil, err
	}
	logs, err := s.store.ListLogs(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	return logs, nil
}

// getOwned hides groups of other owners behind the same NotFound error as
// missing ones.
func getOwned(ctx context.Context, st storage.GroupStore, ownerID, groupID string) (*models.Group, error) {
	group, err := st.GetGroup(ctx, groupID)
	if err != nil {
		return nil, lookup(err, msgGroupNotFound)
	}
	if group.OwnerID != ownerID {
		return nil, apperr.NotFound(msgGroupNotFound)
	}
	return group, nil
}

// checkNameFree fails with a Conflict if another of the owner's groups,
// other than exceptID, already uses name.
func checkNameFree(ctx context.Context, st storage.GroupStore, ownerID, exceptID, name string) error {
	groups, err := st.ListGroupsByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}
	for _, g := range groups {
		if g.ID != exceptID && strings.EqualFold(strings.TrimSpace(g.Name), name) {
			return apperr.Conflict("Já existe um grupo com este nome.")
		}
	}
	return nil
}
