package api

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/config"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repotest"
	"github.com/dmitrijs2005/gophnotes/internal/server/rest"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"
)

// newServer runs the real HTTP stack over a migrated SQLite database.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	db := repotest.OpenSQLite(t)
	m, err := repomanager.NewSQLiteRepositoryManager(db)
	require.NoError(t, err)

	hasher, err := auth.NewBcryptHasher(4)
	require.NoError(t, err)
	codec, err := auth.NewTokenCodec([]byte("e2e-secret"))
	require.NoError(t, err)

	log := logging.NewNop()
	cfg := &config.Config{AccessTokenValidityDuration: time.Hour}
	srv := rest.NewServer(":0", log,
		services.NewUserService(db, m, hasher, codec, cfg),
		services.NewNoteService(db, m),
		auth.NewGate(codec, log))

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestEndToEnd(t *testing.T) {
	ts := newServer(t)
	ctx := context.Background()

	alice := New(ts.URL, 5*time.Second)
	require.NoError(t, alice.Ping(ctx))

	s, err := alice.Register(ctx, "alice", "Alice@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", s.Email)
	assert.NotEmpty(t, s.Token)

	_, err = New(ts.URL, time.Second).Register(ctx, "alice2", "alice@example.com", "secret2")
	assert.ErrorIs(t, err, common.ErrDuplicateIdentifier)

	_, err = New(ts.URL, time.Second).Login(ctx, "alice@example.com", "wrong-pw")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	_, err = New(ts.URL, time.Second).Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	me, err := alice.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.UserName)

	n, err := alice.CreateNote(ctx, "Shopping", "buy MILK")
	require.NoError(t, err)
	_, err = alice.CreateNote(ctx, "Ideas", "write a book")
	require.NoError(t, err)

	found, err := alice.SearchNotes(ctx, "milk")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, n.ID, found[0].ID)

	all, err := alice.SearchNotes(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	updated, err := alice.UpdateNote(ctx, n.ID, "Shopping list", "buy milk and eggs")
	require.NoError(t, err)
	assert.Equal(t, "Shopping list", updated.Title)

	bob := New(ts.URL, 5*time.Second)
	_, err = bob.Register(ctx, "bob", "bob@example.com", "secret3")
	require.NoError(t, err)

	_, err = bob.GetNote(ctx, n.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, bob.DeleteNote(ctx, n.ID), common.ErrNotFound)
	bobs, err := bob.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, bobs)

	require.NoError(t, alice.DeleteNote(ctx, n.ID))
	_, err = alice.GetNote(ctx, n.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	relogged := New(ts.URL, 5*time.Second)
	_, err = relogged.Login(ctx, "ALICE@example.com", "secret1")
	require.NoError(t, err)
	left, err := relogged.ListNotes(ctx)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}
