package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/acerto/acerto/pkg/api"
)

// InviteServiceName is the fully-qualified name of the InviteService.
const InviteServiceName = "acerto.v1.InviteService"

// Procedure paths of the InviteService.
const (
	InviteServiceCreateInviteProcedure  = "/acerto.v1.InviteService/CreateInvite"
	InviteServiceListInvitesProcedure   = "/acerto.v1.InviteService/ListInvites"
	InviteServiceResolveInviteProcedure = "/acerto.v1.InviteService/ResolveInvite"
)

// InviteServiceHandler issues and resolves invite links.
type InviteServiceHandler interface {
	CreateInvite(context.Context, *connect.Request[api.CreateInviteRequest]) (*connect.Response[api.CreateInviteResponse], error)
	ListInvites(context.Context, *connect.Request[api.ListInvitesRequest]) (*connect.Response[api.ListInvitesResponse], error)
	ResolveInvite(context.Context, *connect.Request[api.ResolveInviteRequest]) (*connect.Response[api.ResolveInviteResponse], error)
}

// NewInviteServiceHandler builds an HTTP handler for svc and returns it with the
// path it should be mounted on.
func NewInviteServiceHandler(svc InviteServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + InviteServiceName + "/", route(map[string]http.Handler{
		InviteServiceCreateInviteProcedure:  connect.NewUnaryHandler(InviteServiceCreateInviteProcedure, svc.CreateInvite, opts...),
		InviteServiceListInvitesProcedure:   connect.NewUnaryHandler(InviteServiceListInvitesProcedure, svc.ListInvites, opts...),
		InviteServiceResolveInviteProcedure: connect.NewUnaryHandler(InviteServiceResolveInviteProcedure, svc.ResolveInvite, opts...),
	})
}

// InviteServiceClient is a client for the InviteService.
type InviteServiceClient interface {
	CreateInvite(context.Context, *connect.Request[api.CreateInviteRequest]) (*connect.Response[api.CreateInviteResponse], error)
	ListInvites(context.Context, *connect.Request[api.ListInvitesRequest]) (*connect.Response[api.ListInvitesResponse], error)
	ResolveInvite(context.Context, *connect.Request[api.ResolveInviteRequest]) (*connect.Response[api.ResolveInviteResponse], error)
}

// NewInviteServiceClient returns a client for the service served at baseURL.
func NewInviteServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) InviteServiceClient {
	baseURL = trimBase(baseURL)
	opts = clientOptions(opts)
	return &inviteServiceClient{
		createInvite:  connect.NewClient[api.CreateInviteRequest, api.CreateInviteResponse](httpClient, baseURL+InviteServiceCreateInviteProcedure, opts...),
		listInvites:   connect.NewClient[api.ListInvitesRequest, api.ListInvitesResponse](httpClient, baseURL+InviteServiceListInvitesProcedure, opts...),
		resolveInvite: connect.NewClient[api.ResolveInviteRequest, api.ResolveInviteResponse](httpClient, baseURL+InviteServiceResolveInviteProcedure, opts...),
	}
}

type inviteServiceClient struct {
	createInvite  *connect.Client[api.CreateInviteRequest, api.CreateInviteResponse]
	listInvites   *connect.Client[api.ListInvitesRequest, api.ListInvitesResponse]
	resolveInvite *connect.Client[api.ResolveInviteRequest, api.ResolveInviteResponse]
}

func (c *inviteServiceClient) CreateInvite(ctx context.Context, req *connect.Request[api.CreateInviteRequest]) (*connect.Response[api.CreateInviteResponse], error) {
	return c.createInvite.CallUnary(ctx, req)
}

func (c *inviteServiceClient) ListInvites(ctx context.Context, req *connect.Request[api.ListInvitesRequest]) (*connect.Response[api.ListInvitesResponse], error) {
	return c.listInvites.CallUnary(ctx, req)
}

func (c *inviteServiceClient) ResolveInvite(ctx context.Context, req *connect.Request[api.ResolveInviteRequest]) (*connect.Response[api.ResolveInviteResponse], error) {
	return c.resolveInvite.CallUnary(ctx, req)
}

// UnimplementedInviteServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedInviteServiceHandler struct{}

func (UnimplementedInviteServiceHandler) CreateInvite(context.Context, *connect.Request[api.CreateInviteRequest]) (*connect.Response[api.CreateInviteResponse], error) {
	return nil, unimplemented(InviteServiceCreateInviteProcedure)
}

func (UnimplementedInviteServiceHandler) ListInvites(context.Context, *connect.Request[api.ListInvitesRequest]) (*connect.Response[api.ListInvitesResponse], error) {
	return nil, unimplemented(InviteServiceListInvitesProcedure)
}

func (UnimplementedInviteServiceHandler) ResolveInvite(context.Context, *connect.Request[api.ResolveInviteRequest]) (*connect.Response[api.ResolveInviteResponse], error) {
	return nil, unimplemented(InviteServiceResolveInviteProcedure)
}
