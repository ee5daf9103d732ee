package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/acerto/acerto/internal/activity"
	"github.com/acerto/acerto/internal/core"
	"github.com/acerto/acerto/internal/ids"
	"github.com/acerto/acerto/pkg/api"
	"github.com/acerto/acerto/pkg/api/apiconnect"
)

var _ apiconnect.ActivityServiceHandler = (*ActivityService)(nil)

// ActivityService implements the Connect ActivityService.
type ActivityService struct {
	groups *core.GroupService
	clock  ids.Clock
	logger *slog.Logger
}

func NewActivityService(groups *core.GroupService, clock ids.Clock, logger *slog.Logger) *ActivityService {
	return &ActivityService{groups: groups, clock: clock, logger: logger}
}

// ListActivity returns a group's feed, newest first, ready for display.
func (s *ActivityService) ListActivity(ctx context.Context, req *connect.Request[api.ListActivityRequest]) (*connect.Response[api.ListActivityResponse], error) {
	ownerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ListActivity request received", "group_id", req.Msg.GroupID)

	logs, err := s.groups.Activity(ctx, ownerID, req.Msg.GroupID)
	if err != nil {
		return nil, fail(s.logger, "ListActivity", err, "group_id", req.Msg.GroupID)
	}

	now := s.clock()
	out := make([]*api.ActivityEntry, len(logs))
	for i, entry := range logs {
		out[i] = toActivity(activity.Render(entry, now), entry)
	}
	return connect.NewResponse(&api.ListActivityResponse{Entries: out}), nil
}
