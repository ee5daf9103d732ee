package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/acerto/acerto/pkg/api"
)

// ActivityServiceName is the fully-qualified name of the ActivityService.
const ActivityServiceName = "acerto.v1.ActivityService"

// Procedure paths of the ActivityService.
const (
	ActivityServiceListActivityProcedure = "/acerto.v1.ActivityService/ListActivity"
)

// ActivityServiceHandler serves a group's activity feed.
type ActivityServiceHandler interface {
	ListActivity(context.Context, *connect.Request[api.ListActivityRequest]) (*connect.Response[api.ListActivityResponse], error)
}

// NewActivityServiceHandler builds an HTTP handler for svc and returns it with the
// path it should be mounted on.
func NewActivityServiceHandler(svc ActivityServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ActivityServiceName + "/", route(map[string]http.Handler{
		ActivityServiceListActivityProcedure: connect.NewUnaryHandler(ActivityServiceListActivityProcedure, svc.ListActivity, opts...),
	})
}

// ActivityServiceClient is a client for the ActivityService.
type ActivityServiceClient interface {
	ListActivity(context.Context, *connect.Request[api.ListActivityRequest]) (*connect.Response[api.ListActivityResponse], error)
}

// NewActivityServiceClient returns a client for the service served at baseURL.
func NewActivityServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ActivityServiceClient {
	baseURL = trimBase(baseURL)
	opts = clientOptions(opts)
	return &activityServiceClient{
		listActivity: connect.NewClient[api.ListActivityRequest, api.ListActivityResponse](httpClient, baseURL+ActivityServiceListActivityProcedure, opts...),
	}
}

type activityServiceClient struct {
	listActivity *connect.Client[api.ListActivityRequest, api.ListActivityResponse]
}

func (c *activityServiceClient) ListActivity(ctx context.Context, req *connect.Request[api.ListActivityRequest]) (*connect.Response[api.ListActivityResponse], error) {
	return c.listActivity.CallUnary(ctx, req)
}

// UnimplementedActivityServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedActivityServiceHandler struct{}

func (UnimplementedActivityServiceHandler) ListActivity(context.Context, *connect.Request[api.ListActivityRequest]) (*connect.Response[api.ListActivityResponse], error) {
	return nil, unimplemented(ActivityServiceListActivityProcedure)
}
