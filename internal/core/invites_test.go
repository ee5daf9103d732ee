package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acerto/acerto/internal/apperr"
)

func TestCreateInvite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner", "Praia", "a@x.com")

	first, err := f.invites.Create(ctx, g.ID)
	require.NoError(t, err)
	second, err := f.invites.Create(ctx, g.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, first.Token)
	assert.NotEqual(t, first.Token, second.Token)
	assert.NotContains(t, first.Token, "-")
	require.NotNil(t, first.ExpiresAt)
	assert.Equal(t, first.CreatedAt.Add(24*time.Hour), *first.ExpiresAt)

	invites, err := f.invites.List(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, invites, 2)
	assert.Equal(t, first.ID, invites[0].ID)
	assert.Equal(t, second.ID, invites[1].ID)

	assert.Equal(t, []string{"Convite gerado.", "Convite gerado.", "Grupo criado: Praia."}, f.messages(t, g.ID))

	_, err = f.invites.Create(ctx, "missing")
	requireKind(t, err, apperr.KindNotFound, "Grupo não encontrado.")
}

func TestInviteWithoutTTLNeverExpires(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner", "Praia", "a@x.com")

	svc := NewInviteService(f.store, f.clock.Now, 0)
	inv, err := svc.Create(ctx, g.ID)
	require.NoError(t, err)
	assert.Nil(t, inv.ExpiresAt)

	f.clock.now = f.clock.now.Add(365 * 24 * time.Hour)
	_, _, err = svc.Resolve(ctx, inv.Token)
	assert.NoError(t, err)
}

func TestResolveInvite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "owner", "Praia", "a@x.com")

	inv, err := f.invites.Create(ctx, g.ID)
	require.NoError(t, err)

	gotInvite, gotGroup, err := f.invites.Resolve(ctx, " "+inv.Token+" ")
	require.NoError(t, err)
	assert.Equal(t, inv.ID, gotInvite.ID)
	assert.Equal(t, "Praia", gotGroup.Name)

	for _, token := range []string{"", "unknown"} {
		_, _, err = f.invites.Resolve(ctx, token)
		requireKind(t, err, apperr.KindNotFound, "Convite inválido ou expirado.")
	}

	f.clock.now = inv.ExpiresAt.Add(time.Nanosecond)
	f.clock.pinned = true
	_, _, err = f.invites.Resolve(ctx, inv.Token)
	requireKind(t, err, apperr.KindNotFound, "Convite inválido ou expirado.")
}

func TestLink(t *testing.T) {
	assert.Equal(t, "https://acerto.app/invite/abc123", Link("https://acerto.app/", "abc123"))
	assert.Equal(t, "http://localhost:8080/invite/a%2Fb", Link("http://localhost:8080", "a/b"))
}
