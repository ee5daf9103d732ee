package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/acerto/acerto/internal/core"
	"github.com/acerto/acerto/pkg/api"
	"github.com/acerto/acerto/pkg/api/apiconnect"
)

var _ apiconnect.InviteServiceHandler = (*InviteService)(nil)

// InviteService implements the Connect InviteService.
type InviteService struct {
	groups  *core.GroupService
	invites *core.InviteService
	baseURL string
	logger  *slog.Logger
}

// NewInviteService creates an InviteService whose links point at baseURL.
func NewInviteService(groups *core.GroupService, invites *core.InviteService, baseURL string, logger *slog.Logger) *InviteService {
	return &InviteService{groups: groups, invites: invites, baseURL: baseURL, logger: logger}
}

// CreateInvite issues a new join link for one of the caller's groups.
func (s *InviteService) CreateInvite(ctx context.Context, req *connect.Request[api.CreateInviteRequest]) (*connect.Response[api.CreateInviteResponse], error) {
	ownerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CreateInvite request received", "group_id", req.Msg.GroupID)

	if _, err := s.groups.Get(ctx, ownerID, req.Msg.GroupID); err != nil {
		return nil, fail(s.logger, "CreateInvite", err, "group_id", req.Msg.GroupID)
	}
	invite, err := s.invites.Create(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, fail(s.logger, "CreateInvite", err, "group_id", req.Msg.GroupID)
	}

	return connect.NewResponse(&api.CreateInviteResponse{
		Invite: toInvite(invite, core.Link(s.baseURL, invite.Token)),
	}), nil
}

// ListInvites returns the invites issued for one of the caller's groups.
func (s *InviteService) ListInvites(ctx context.Context, req *connect.Request[api.ListInvitesRequest]) (*connect.Response[api.ListInvitesResponse], error) {
	ownerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ListInvites request received", "group_id", req.Msg.GroupID)

	if _, err := s.groups.Get(ctx, ownerID, req.Msg.GroupID); err != nil {
		return nil, fail(s.logger, "ListInvites", err, "group_id", req.Msg.GroupID)
	}
	invites, err := s.invites.List(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, fail(s.logger, "ListInvites", err, "group_id", req.Msg.GroupID)
	}

	out := make([]*api.Invite, len(invites))
	for i, inv := range invites {
		out[i] = toInvite(inv, core.Link(s.baseURL, inv.Token))
	}
	return connect.NewResponse(&api.ListInvitesResponse{Invites: out}), nil
}

// ResolveInvite describes the group behind a join link. It needs no
// authentication.
func (s *InviteService) ResolveInvite(ctx context.Context, req *connect.Request[api.ResolveInviteRequest]) (*connect.Response[api.ResolveInviteResponse], error) {
	s.logger.Info("ResolveInvite request received")

	resp, err := s.Resolve(ctx, req.Msg.Token)
	if err != nil {
		return nil, fail(s.logger, "ResolveInvite", err)
	}
	return connect.NewResponse(resp), nil
}

// Resolve is ResolveInvite without the Connect envelope, for the plain
// HTTP join route. Errors are returned as domain errors.
func (s *InviteService) Resolve(ctx context.Context, token string) (*api.ResolveInviteResponse, error) {
	invite, group, err := s.invites.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return &api.ResolveInviteResponse{
		GroupID:      group.ID,
		GroupName:    group.Name,
		Description:  group.Description,
		MembersCount: len(group.Members),
		EventAt:      group.EventAt,
		ExpiresAt:    invite.ExpiresAt,
	}, nil
}
