package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/acerto/acerto/internal/activity"
	"github.com/acerto/acerto/internal/core"
	"github.com/acerto/acerto/internal/email"
	"github.com/acerto/acerto/internal/ids"
	"github.com/acerto/acerto/internal/models"
	"github.com/acerto/acerto/pkg/api"
	"github.com/acerto/acerto/pkg/api/apiconnect"
)

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService
type GroupService struct {
	groups *core.GroupService
	clock  ids.Clock
	logger *slog.Logger
}

// NewGroupService creates a new GroupService on top of the core group service.
func NewGroupService(groups *core.GroupService, clock ids.Clock, logger *slog.Logger) *GroupService {
	return &GroupService{groups: groups, clock: clock, logger: logger}
}

// ListGroups returns the caller's groups, optionally filtered by name.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	ownerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ListGroups request received", "owner_id", ownerID, "search", req.Msg.Search)

	groups, err := s.groups.List(ctx, ownerID, req.Msg.Search)
	if err != nil {
		return nil, fail(s.logger, "ListGroups", err, "owner_id", ownerID)
	}

	now := s.clock()
	out := make([]*api.Group, len(groups))
	for i, g := range groups {
		out[i] = toGroup(g, now)
	}
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// GetGroup retrieves one of the caller's groups by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	ownerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, err := s.groups.Get(ctx, ownerID, req.Msg.GroupID)
	if err != nil {
		return nil, fail(s.logger, "GetGroup", err, "group_id", req.Msg.GroupID)
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: toGroup(group, s.clock())}), nil
}

// CreateGroup creates a new group owned by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	ownerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	members := fromMembers(req.Msg.Members)
	members = append(members, email.MembersFromEmails(email.SplitInput(req.Msg.MemberEmails))...)

	group, err := s.groups.Create(ctx, ownerID, core.GroupInput{
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		Members:     members,
		EventAt:     req.Msg.EventAt,
	})
	if err != nil {
		return nil, fail(s.logger, "CreateGroup", err, "name", req.Msg.Name)
	}
	return connect.NewResponse(&api.CreateGroupResponse{Group: toGroup(group, s.clock())}), nil
}

// UpdateGroup applies a partial update to one of the caller's groups.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	ownerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("UpdateGroup request received", "group_id", req.Msg.GroupID)

	group, err := s.groups.Update(ctx, ownerID, req.Msg.GroupID, core.GroupPatch{
		Name:         req.Msg.Name,
		Description:  req.Msg.Description,
		Members:      patchMembers(req.Msg.Members),
		EventAt:      req.Msg.EventAt,
		ClearEventAt: req.Msg.ClearEventAt,
	})
	if err != nil {
		return nil, fail(s.logger, "UpdateGroup", err, "group_id", req.Msg.GroupID)
	}
	return connect.NewResponse(&api.UpdateGroupResponse{Group: toGroup(group, s.clock())}), nil
}

// DeleteGroup removes one of the caller's groups.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	ownerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	if err := s.groups.Remove(ctx, ownerID, req.Msg.GroupID); err != nil {
		return nil, fail(s.logger, "DeleteGroup", err, "group_id", req.Msg.GroupID)
	}
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

func toGroup(g *models.Group, now time.Time) *api.Group {
	out := &api.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		OwnerID:     g.OwnerID,
		Members:     toMembers(g.Members),
		EventAt:     g.EventAt,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
	if g.EventAt != nil {
		out.Countdown = activity.Countdown(now, *g.EventAt)
	}
	return out
}
