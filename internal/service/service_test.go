package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"

	"github.com/acerto/acerto/internal/auth"
	"github.com/acerto/acerto/internal/core"
	"github.com/acerto/acerto/internal/ids"
	"github.com/acerto/acerto/internal/middleware"
	"github.com/acerto/acerto/internal/proofs"
	"github.com/acerto/acerto/internal/storage/memory"
	"github.com/acerto/acerto/pkg/api"
	"github.com/acerto/acerto/pkg/api/apiconnect"
	"github.com/acerto/acerto/pkg/logging"
)

const testPassword = "Segredo123"

// testServer runs every service behind the auth interceptor.
type testServer struct {
	url  string
	auth apiconnect.AuthServiceClient
}

// clients is one signed-in user's view of the API.
type clients struct {
	email    string
	groups   apiconnect.GroupServiceClient
	invites  apiconnect.InviteServiceClient
	expenses apiconnect.ExpenseServiceClient
	activity apiconnect.ActivityServiceClient
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.New()
	t.Cleanup(func() { store.Close() })

	var clock ids.Clock = ids.SystemClock
	logger := logging.New(io.Discard, slog.LevelError, true)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour, clock)

	groups := core.NewGroupService(store, clock)
	invites := core.NewInviteService(store, clock, 24*time.Hour)
	expenses := core.NewExpenseService(store, clock)

	opts := connect.WithInterceptors(middleware.Authenticate(jwtManager, PublicProcedures...))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(auth.NewPasswordAuthenticator(store, clock), store, jwtManager, logger), opts))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(groups, clock, logger), opts))
	mux.Handle(apiconnect.NewInviteServiceHandler(
		NewInviteService(groups, invites, "https://acerto.test", logger), opts))
	mux.Handle(apiconnect.NewExpenseServiceHandler(
		NewExpenseService(groups, expenses, proofs.NewInline(1<<20), logger), opts))
	mux.Handle(apiconnect.NewActivityServiceHandler(NewActivityService(groups, clock, logger), opts))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testServer{
		url:  server.URL,
		auth: apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
	}
}

// signup registers addr and returns clients carrying its session token.
func (s *testServer) signup(t *testing.T, addr string) *clients {
	t.Helper()
	resp, err := s.auth.Signup(context.Background(), connect.NewRequest(&api.SignupRequest{
		Name:            "Teste",
		Email:           addr,
		Password:        testPassword,
		ConfirmPassword: testPassword,
		AcceptTerms:     true,
	}))
	require.NoError(t, err)
	return s.as(addr, resp.Msg.Token)
}

func (s *testServer) as(addr, token string) *clients {
	opts := connect.WithInterceptors(bearer(token))
	return &clients{
		email:    addr,
		groups:   apiconnect.NewGroupServiceClient(http.DefaultClient, s.url, opts),
		invites:  apiconnect.NewInviteServiceClient(http.DefaultClient, s.url, opts),
		expenses: apiconnect.NewExpenseServiceClient(http.DefaultClient, s.url, opts),
		activity: apiconnect.NewActivityServiceClient(http.DefaultClient, s.url, opts),
	}
}

func bearer(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token != "" {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}
}

func (c *clients) createGroup(t *testing.T, name string, members ...string) *api.Group {
	t.Helper()
	ms := make([]api.Member, len(members))
	for i, m := range members {
		ms[i] = api.Member{Email: m}
	}
	resp, err := c.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:    name,
		Members: ms,
	}))
	require.NoError(t, err)
	return resp.Msg.Group
}

func requireCode(t *testing.T, err error, code connect.Code, msg string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, connect.CodeOf(err), "error: %v", err)
	if msg != "" {
		var connectErr *connect.Error
		require.ErrorAs(t, err, &connectErr)
		require.Equal(t, msg, connectErr.Message())
	}
}
