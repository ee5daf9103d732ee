package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acerto/acerto/internal/config"
	"github.com/acerto/acerto/internal/proofs"
	"github.com/acerto/acerto/internal/storage/memory"
	"github.com/acerto/acerto/pkg/api"
	"github.com/acerto/acerto/pkg/api/apiconnect"
	"github.com/acerto/acerto/pkg/logging"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Addr: ":0", PublicBaseURL: "https://acerto.test"},
		Store:     config.StoreConfig{Kind: config.StoreMemory},
		JWT:       config.JWTConfig{Secret: "test-secret", TTL: time.Hour},
		Invite:    config.InviteConfig{TTL: time.Hour},
		RateLimit: config.RateLimitConfig{RPS: 1000, Burst: 1000},
		Proofs:    config.ProofsConfig{Kind: config.ProofsInline, MaxBytes: 1 << 20},
	}
}

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store := memory.New()
	t.Cleanup(func() { store.Close() })

	cfg := testConfig()
	logger := logging.New(io.Discard, slog.LevelError, true)
	server := httptest.NewServer(newHandler(ctx, cfg, store, proofs.NewInline(cfg.Proofs.MaxBytes), logger))
	t.Cleanup(server.Close)
	return server
}

func TestHealthz(t *testing.T) {
	server := startServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestInviteRoute(t *testing.T) {
	server := startServer(t)
	ctx := context.Background()

	authClient := apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL)
	signup, err := authClient.Signup(ctx, connect.NewRequest(&api.SignupRequest{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "Segredo123",
		ConfirmPassword: "Segredo123",
		AcceptTerms:     true,
	}))
	require.NoError(t, err)

	withToken := connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+signup.Msg.Token)
			return next(ctx, req)
		}
	}))
	groups := apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL, withToken)
	invites := apiconnect.NewInviteServiceClient(http.DefaultClient, server.URL, withToken)

	group, err := groups.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{
		Name:         "Praia",
		MemberEmails: "bia@example.com",
	}))
	require.NoError(t, err)
	invite, err := invites.CreateInvite(ctx, connect.NewRequest(&api.CreateInviteRequest{GroupID: group.Msg.Group.ID}))
	require.NoError(t, err)

	resp, err := http.Get(server.URL + "/invite/" + invite.Msg.Invite.Token)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.ResolveInviteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Praia", body.GroupName)
	assert.Equal(t, 1, body.MembersCount)

	missing, err := http.Get(server.URL + "/invite/unknown")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	server := startServer(t)

	categories := apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL)
	_, err := categories.ListCategories(context.Background(), connect.NewRequest(&api.ListCategoriesRequest{}))
	require.NoError(t, err)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(out), `acerto_rpc_requests_total{code="ok",procedure="/acerto.v1.ExpenseService/ListCategories"} 1`)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "acerto version "+Version+"\n", out.String())
}
