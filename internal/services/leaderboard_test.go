package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardOrdersByPoints(t *testing.T) {
	game, _, _ := newTestGame(t)
	ctx := context.Background()

	for _, p := range []struct{ address, name string }{
		{"alice", "Alice"},
		{"bob", "Bob"},
		{"carol", "Carol"},
	} {
		_, err := game.Register(ctx, p.address, p.name)
		require.NoError(t, err)
		_, err = game.PlayRound(ctx, p.address, 1)
		require.NoError(t, err)
	}

	_, err := game.CertifyRound(ctx, adminAddress, "alice", 1, 30)
	require.NoError(t, err)
	_, err = game.CertifyRound(ctx, adminAddress, "bob", 1, 80)
	require.NoError(t, err)
	_, err = game.CertifyRound(ctx, adminAddress, "carol", 1, 55)
	require.NoError(t, err)

	entries, err := game.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Bob", entries[0].Name)
	assert.Equal(t, int64(80), entries[0].Point)
	assert.Equal(t, 1, entries[0].Rank)

	assert.Equal(t, "Carol", entries[1].Name)
	assert.Equal(t, 2, entries[1].Rank)

	assert.Equal(t, "Alice", entries[2].Name)
	assert.Equal(t, "alice", entries[2].Address)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestLeaderboardTiesKeepRegistrationOrder(t *testing.T) {
	game, _, _ := newTestGame(t)
	ctx := context.Background()

	for _, address := range []string{"first", "second", "third"} {
		_, err := game.Register(ctx, address, address)
		require.NoError(t, err)
		_, err = game.PlayRound(ctx, address, 1)
		require.NoError(t, err)
		_, err = game.CertifyRound(ctx, adminAddress, address, 1, 40)
		require.NoError(t, err)
	}

	entries, err := game.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "first", entries[0].Address)
	assert.Equal(t, "second", entries[1].Address)
	assert.Equal(t, "third", entries[2].Address)
}

func TestLeaderboardIsReadOnly(t *testing.T) {
	game, store, _ := newTestGame(t)
	ctx := context.Background()

	_, err := game.Register(ctx, "alice", "Alice")
	require.NoError(t, err)

	before, err := store.GetAccount("alice")
	require.NoError(t, err)

	_, err = game.Leaderboard(ctx)
	require.NoError(t, err)

	after, err := store.GetAccount("alice")
	require.NoError(t, err)
	assert.Equal(t, before, after)

	players, err := store.ListPlayers()
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, players)
}

func TestLeaderboardEmpty(t *testing.T) {
	game, _, _ := newTestGame(t)

	entries, err := game.Leaderboard(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
