package service

import (
	"context"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acerto/acerto/pkg/api"
)

func TestCreateAndResolveInvite(t *testing.T) {
	srv := setupTestServer(t)
	ana := srv.signup(t, "ana@example.com")
	ctx := context.Background()
	group := ana.createGroup(t, "Praia", "bia@example.com", "caio@example.com")

	created, err := ana.invites.CreateInvite(ctx, connect.NewRequest(&api.CreateInviteRequest{GroupID: group.ID}))
	require.NoError(t, err)
	invite := created.Msg.Invite
	assert.Equal(t, "https://acerto.test/invite/"+invite.Token, invite.Link)
	require.NotNil(t, invite.ExpiresAt)

	list, err := ana.invites.ListInvites(ctx, connect.NewRequest(&api.ListInvitesRequest{GroupID: group.ID}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Invites, 1)
	assert.Equal(t, invite.Token, list.Msg.Invites[0].Token)

	// Resolving is public.
	anon := srv.as("", "")
	resolved, err := anon.invites.ResolveInvite(ctx, connect.NewRequest(&api.ResolveInviteRequest{Token: " " + invite.Token + " "}))
	require.NoError(t, err)
	assert.Equal(t, group.ID, resolved.Msg.GroupID)
	assert.Equal(t, "Praia", resolved.Msg.GroupName)
	assert.Equal(t, 2, resolved.Msg.MembersCount)
}

func TestResolveUnknownInvite(t *testing.T) {
	srv := setupTestServer(t)
	anon := srv.as("", "")

	for _, token := range []string{"", "nope", strings.Repeat("a", 32)} {
		_, err := anon.invites.ResolveInvite(context.Background(), connect.NewRequest(&api.ResolveInviteRequest{Token: token}))
		requireCode(t, err, connect.CodeNotFound, "Convite inválido ou expirado.")
	}
}

func TestInvitesRequireOwnership(t *testing.T) {
	srv := setupTestServer(t)
	ana := srv.signup(t, "ana@example.com")
	bia := srv.signup(t, "bia@example.com")
	ctx := context.Background()
	group := ana.createGroup(t, "Praia", "bia@example.com")

	_, err := bia.invites.CreateInvite(ctx, connect.NewRequest(&api.CreateInviteRequest{GroupID: group.ID}))
	requireCode(t, err, connect.CodeNotFound, "Grupo não encontrado.")

	_, err = bia.invites.ListInvites(ctx, connect.NewRequest(&api.ListInvitesRequest{GroupID: group.ID}))
	requireCode(t, err, connect.CodeNotFound, "Grupo não encontrado.")
}
