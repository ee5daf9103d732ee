package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/acerto/acerto/pkg/api"
)

// AuthServiceName is the fully-qualified name of the AuthService.
const AuthServiceName = "acerto.v1.AuthService"

// Procedure paths of the AuthService.
const (
	AuthServiceSignupProcedure = "/acerto.v1.AuthService/Signup"
	AuthServiceLoginProcedure  = "/acerto.v1.AuthService/Login"
	AuthServiceMeProcedure     = "/acerto.v1.AuthService/Me"
)

// AuthServiceHandler signs users up and in.
type AuthServiceHandler interface {
	Signup(context.Context, *connect.Request[api.SignupRequest]) (*connect.Response[api.AuthResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error)
	Me(context.Context, *connect.Request[api.MeRequest]) (*connect.Response[api.MeResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for svc and returns it with the
// path it should be mounted on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + AuthServiceName + "/", route(map[string]http.Handler{
		AuthServiceSignupProcedure: connect.NewUnaryHandler(AuthServiceSignupProcedure, svc.Signup, opts...),
		AuthServiceLoginProcedure:  connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
		AuthServiceMeProcedure:     connect.NewUnaryHandler(AuthServiceMeProcedure, svc.Me, opts...),
	})
}

// AuthServiceClient is a client for the AuthService.
type AuthServiceClient interface {
	Signup(context.Context, *connect.Request[api.SignupRequest]) (*connect.Response[api.AuthResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error)
	Me(context.Context, *connect.Request[api.MeRequest]) (*connect.Response[api.MeResponse], error)
}

// NewAuthServiceClient returns a client for the service served at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = trimBase(baseURL)
	opts = clientOptions(opts)
	return &authServiceClient{
		signup: connect.NewClient[api.SignupRequest, api.AuthResponse](httpClient, baseURL+AuthServiceSignupProcedure, opts...),
		login:  connect.NewClient[api.LoginRequest, api.AuthResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		me:     connect.NewClient[api.MeRequest, api.MeResponse](httpClient, baseURL+AuthServiceMeProcedure, opts...),
	}
}

type authServiceClient struct {
	signup *connect.Client[api.SignupRequest, api.AuthResponse]
	login  *connect.Client[api.LoginRequest, api.AuthResponse]
	me     *connect.Client[api.MeRequest, api.MeResponse]
}

func (c *authServiceClient) Signup(ctx context.Context, req *connect.Request[api.SignupRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.signup.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) Me(ctx context.Context, req *connect.Request[api.MeRequest]) (*connect.Response[api.MeResponse], error) {
	return c.me.CallUnary(ctx, req)
}

// UnimplementedAuthServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAuthServiceHandler struct{}

func (UnimplementedAuthServiceHandler) Signup(context.Context, *connect.Request[api.SignupRequest]) (*connect.Response[api.AuthResponse], error) {
	return nil, unimplemented(AuthServiceSignupProcedure)
}

func (UnimplementedAuthServiceHandler) Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	return nil, unimplemented(AuthServiceLoginProcedure)
}

func (UnimplementedAuthServiceHandler) Me(context.Context, *connect.Request[api.MeRequest]) (*connect.Response[api.MeResponse], error) {
	return nil, unimplemented(AuthServiceMeProcedure)
}
