package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acerto/acerto/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	srv := setupTestServer(t)
	ana := srv.signup(t, "ana@example.com")

	eventAt := time.Now().Add(48 * time.Hour).UTC()
	resp, err := ana.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:         "  Praia  ",
		Members:      []api.Member{{Email: "Bia@Example.com", Invited: true}},
		MemberEmails: "caio@example.com; bia@example.com\ninvalido",
		EventAt:      &eventAt,
	}))
	require.NoError(t, err)

	group := resp.Msg.Group
	assert.NotEmpty(t, group.ID)
	assert.Equal(t, "Praia", group.Name)
	assert.Equal(t, []api.Member{
		{Email: "bia@example.com", Invited: true},
		{Email: "caio@example.com"},
	}, group.Members)
	assert.Contains(t, group.Countdown, "falta 1d")
}

func TestCreateGroupValidation(t *testing.T) {
	srv := setupTestServer(t)
	ana := srv.signup(t, "ana@example.com")
	ctx := context.Background()
	ana.createGroup(t, "Praia", "bia@example.com")

	_, err := ana.groups.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{
		Name:         "Sítio",
		MemberEmails: "sem-arroba",
	}))
	requireCode(t, err, connect.CodeInvalidArgument, "Adicione pelo menos 1 membro por e-mail.")

	_, err = ana.groups.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{
		Name:    "PRAIA",
		Members: []api.Member{{Email: "bia@example.com"}},
	}))
	requireCode(t, err, connect.CodeAlreadyExists, "Já existe um grupo com este nome.")
}

func TestListGroupsIsPerOwner(t *testing.T) {
	srv := setupTestServer(t)
	ana := srv.signup(t, "ana@example.com")
	bia := srv.signup(t, "bia@example.com")
	ctx := context.Background()

	ana.createGroup(t, "Zebra", "x@example.com")
	ana.createGroup(t, "Ônibus", "x@example.com")
	ana.createGroup(t, "abacate", "x@example.com")
	bia.createGroup(t, "Praia", "x@example.com")

	resp, err := ana.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	require.NoError(t, err)
	var names []string
	for _, g := range resp.Msg.Groups {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"abacate", "Ônibus", "Zebra"}, names)

	resp, err = ana.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{Search: "ZEB"}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Groups, 1)
	assert.Equal(t, "Zebra", resp.Msg.Groups[0].Name)
}

func TestGetGroupHidesOtherOwners(t *testing.T) {
	srv := setupTestServer(t)
	ana := srv.signup(t, "ana@example.com")
	bia := srv.signup(t, "bia@example.com")
	group := ana.createGroup(t, "Praia", "bia@example.com")

	_, err := bia.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupID: group.ID}))
	requireCode(t, err, connect.CodeNotFound, "Grupo não encontrado.")

	_, err = bia.groups.DeleteGroup(context.Background(), connect.NewRequest(&api.DeleteGroupRequest{GroupID: group.ID}))
	requireCode(t, err, connect.CodeNotFound, "Grupo não encontrado.")
}

func TestUpdateGroup(t *testing.T) {
	srv := setupTestServer(t)
	ana := srv.signup(t, "ana@example.com")
	ctx := context.Background()
	group := ana.createGroup(t, "Praia", "bia@example.com")

	name := "Praia 2025"
	resp, err := ana.groups.UpdateGroup(ctx, connect.NewRequest(&api.UpdateGroupRequest{
		GroupID: group.ID,
		Name:    &name,
	}))
	require.NoError(t, err)
	assert.Equal(t, "Praia 2025", resp.Msg.Group.Name)
	// Members were not sent, so they are kept.
	assert.Equal(t, group.Members, resp.Msg.Group.Members)

	_, err = ana.groups.UpdateGroup(ctx, connect.NewRequest(&api.UpdateGroupRequest{
		GroupID: group.ID,
		Members: &[]api.Member{},
	}))
	requireCode(t, err, connect.CodeInvalidArgument, "Adicione pelo menos 1 membro por e-mail.")

	// The rejected update left the group and its feed alone.
	got, err := ana.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: group.ID}))
	require.NoError(t, err)
	assert.Equal(t, group.Members, got.Msg.Group.Members)

	replaced, err := ana.groups.UpdateGroup(ctx, connect.NewRequest(&api.UpdateGroupRequest{
		GroupID: group.ID,
		Members: &[]api.Member{{Email: " CAIO@example.com "}},
	}))
	require.NoError(t, err)
	assert.Equal(t, []api.Member{{Email: "caio@example.com"}}, replaced.Msg.Group.Members)
}

func TestUpdateGroupMembersOnTheWire(t *testing.T) {
	var req api.UpdateGroupRequest
	require.NoError(t, json.Unmarshal([]byte(`{"groupId":"g1","members":[]}`), &req))
	require.NotNil(t, req.Members)
	assert.Empty(t, *req.Members)

	req = api.UpdateGroupRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"groupId":"g1"}`), &req))
	assert.Nil(t, req.Members)

	raw, err := json.Marshal(&api.UpdateGroupRequest{GroupID: "g1", Members: &[]api.Member{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"groupId":"g1","members":[]}`, string(raw))
}

func TestDeleteGroup(t *testing.T) {
	srv := setupTestServer(t)
	ana := srv.signup(t, "ana@example.com")
	ctx := context.Background()
	group := ana.createGroup(t, "Praia", "bia@example.com")

	_, err := ana.groups.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{GroupID: group.ID}))
	require.NoError(t, err)

	_, err = ana.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: group.ID}))
	requireCode(t, err, connect.CodeNotFound, "Grupo não encontrado.")
}
