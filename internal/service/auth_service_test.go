package service

import (
	"context"
	"net/http"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acerto/acerto/pkg/api"
	"github.com/acerto/acerto/pkg/api/apiconnect"
)

func TestSignupLoginAndMe(t *testing.T) {
	srv := setupTestServer(t)
	ctx := context.Background()

	signup, err := srv.auth.Signup(ctx, connect.NewRequest(&api.SignupRequest{
		Name:            "Ana",
		Email:           " Ana@Example.com ",
		Password:        testPassword,
		ConfirmPassword: testPassword,
		AcceptTerms:     true,
	}))
	require.NoError(t, err)
	assert.NotEmpty(t, signup.Msg.Token)
	assert.Equal(t, "ana@example.com", signup.Msg.User.Email)

	login, err := srv.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "ana@example.com",
		Password: testPassword,
	}))
	require.NoError(t, err)
	assert.Equal(t, signup.Msg.User.ID, login.Msg.User.ID)

	authed := apiconnect.NewAuthServiceClient(http.DefaultClient, srv.url, connect.WithInterceptors(bearer(login.Msg.Token)))
	me, err := authed.Me(ctx, connect.NewRequest(&api.MeRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Msg.User.Name)
}

func TestSignupErrors(t *testing.T) {
	srv := setupTestServer(t)
	ctx := context.Background()
	srv.signup(t, "ana@example.com")

	tests := []struct {
		name string
		req  *api.SignupRequest
		code connect.Code
		msg  string
	}{
		{
			name: "weak password",
			req:  &api.SignupRequest{Name: "Bia", Email: "bia@example.com", Password: "fraca", ConfirmPassword: "fraca", AcceptTerms: true},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "terms not accepted",
			req:  &api.SignupRequest{Name: "Bia", Email: "bia@example.com", Password: testPassword, ConfirmPassword: testPassword},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "duplicate email",
			req:  &api.SignupRequest{Name: "Ana", Email: "ANA@example.com", Password: testPassword, ConfirmPassword: testPassword, AcceptTerms: true},
			code: connect.CodeAlreadyExists,
			msg:  "Este e-mail já está cadastrado.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.auth.Signup(ctx, connect.NewRequest(tt.req))
			requireCode(t, err, tt.code, tt.msg)
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	srv := setupTestServer(t)
	srv.signup(t, "ana@example.com")

	_, err := srv.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Email:    "ana@example.com",
		Password: "Errada999",
	}))
	requireCode(t, err, connect.CodeUnauthenticated, "E-mail ou senha inválidos.")
}

func TestProtectedCallsNeedToken(t *testing.T) {
	srv := setupTestServer(t)
	ctx := context.Background()

	anon := srv.as("", "")
	_, err := anon.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	requireCode(t, err, connect.CodeUnauthenticated, "")

	forged := srv.as("", "not-a-jwt")
	_, err = forged.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	requireCode(t, err, connect.CodeUnauthenticated, "")

	// Public procedures go through without a token.
	_, err = anon.expenses.ListCategories(ctx, connect.NewRequest(&api.ListCategoriesRequest{}))
	require.NoError(t, err)
}
