package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hero-quest-backend/internal/models"
	"hero-quest-backend/internal/services"
	"hero-quest-backend/internal/testutil"
)

const (
	baseTime     = int64(1_700_000_000_000)
	adminAddress = "admin-1"
)

func newTestGame(t *testing.T) (*services.GameService, *testutil.MemStore, *testutil.FixedClock) {
	t.Helper()

	store := testutil.NewMemStore()
	clock := testutil.NewFixedClock(baseTime)
	game := services.NewGameService(store, clock)

	require.NoError(t, game.BootstrapAdmin(context.Background(), adminAddress))

	return game, store, clock
}

// checkInvariants asserts the account-level invariants that must hold
// after every operation.
func checkInvariants(t *testing.T, account *models.PlayerAccount) {
	t.Helper()

	assert.GreaterOrEqual(t, account.Credits, int64(0), "credits must never go negative")

	for n := 1; n <= models.NumRounds; n++ {
		round := account.Round(n)
		if round.Certified {
			assert.True(t, round.Played, "certified round %d must be played", n)
		}
		if n > 1 && round.Played {
			assert.True(t, account.Round(n-1).Certified,
				"playing round %d requires round %d certified", n, n-1)
		}
		if round.TreasureOpened {
			assert.True(t, round.Certified,
				"opened treasure of round %d requires certification", n)
		}
	}

	assert.Equal(t, account.Round(3).Certified, account.GameFinished,
		"game_finished must track round 3 certification")
}

func TestFullProgressionScenario(t *testing.T) {
	game, store, _ := newTestGame(t)
	ctx := context.Background()

	account, err := game.Register(ctx, "alice", "Alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), account.Credits)
	assert.Equal(t, "Alice", account.Name)
	checkInvariants(t, account)

	// Round 1 play consumes the starting credit.
	account, err = game.PlayRound(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), account.Credits)
	assert.True(t, account.Round(1).Played)
	assert.Equal(t, baseTime, account.Round(1).PlayTime)
	assert.Equal(t, 1, account.CurrentRound)
	checkInvariants(t, account)

	// Round 2 is locked until round 1 is certified; the gating failure
	// wins even with an empty balance.
	_, err = game.PlayRound(ctx, "alice", 2)
	assert.ErrorIs(t, err, models.ErrPreviousRoundNotCertified)

	account, err = game.CertifyRound(ctx, adminAddress, "alice", 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), account.Point)
	assert.True(t, account.Round(1).Certified)
	assert.Equal(t, baseTime, account.Round(1).FinishTime)
	checkInvariants(t, account)

	// With round 1 certified the blocker is now the empty balance.
	_, err = game.PlayRound(ctx, "alice", 2)
	assert.ErrorIs(t, err, models.ErrInsufficientCredits)

	account, err = game.AdminGrantCredit(ctx, adminAddress, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(10), account.Credits)

	account, err = game.PlayRound(ctx, "alice", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(9), account.Credits)
	assert.Equal(t, 2, account.CurrentRound)
	checkInvariants(t, account)

	// Round 3 still gated on round 2 certification.
	_, err = game.PlayRound(ctx, "alice", 3)
	assert.ErrorIs(t, err, models.ErrPreviousRoundNotCertified)

	account, err = game.CertifyRound(ctx, adminAddress, "alice", 2, 70)
	require.NoError(t, err)
	assert.Equal(t, int64(120), account.Point)
	assert.False(t, account.GameFinished)

	account, err = game.PlayRound(ctx, "alice", 3)
	require.NoError(t, err)
	checkInvariants(t, account)

	account, err = game.CertifyRound(ctx, adminAddress, "alice", 3, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(220), account.Point)
	assert.True(t, account.GameFinished)
	checkInvariants(t, account)

	stored, err := store.GetAccount("alice")
	require.NoError(t, err)
	checkInvariants(t, stored)
}

func TestRegisterDuplicate(t *testing.T) {
	game, _, _ := newTestGame(t)
	ctx := context.Background()

	_, err := game.Register(ctx, "alice", "Alice")
	require.NoError(t, err)

	_, err = game.Register(ctx, "alice", "Alice Again")
	assert.ErrorIs(t, err, models.ErrAccountExists)
}

func TestPlayRoundWithoutCreditsLeavesStateUnchanged(t *testing.T) {
	game, store, _ := newTestGame(t)
	ctx := context.Background()

	_, err := game.Register(ctx, "alice", "Alice")
	require.NoError(t, err)
	_, err = game.PlayRound(ctx, "alice", 1)
	require.NoError(t, err)

	before, err := store.GetAccount("alice")
	require.NoError(t, err)

	_, err = game.PlayRound(ctx, "alice", 1)
	assert.ErrorIs(t, err, models.ErrInsufficientCredits)

	after, err := store.GetAccount("alice")
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed play must not mutate the account")
}

func TestPlayRoundReplayAllowed(t *testing.T) {
	game, _, clock := newTestGame(t)
	ctx := context.Background()

	_, err := game.Register(ctx, "alice", "Alice")
	require.NoError(t, err)
	_, err = game.AdminGrantCredit(ctx, adminAddress, "alice")
	require.NoError(t, err)

	account, err := game.PlayRound(ctx, "alice", 1)
	require.NoError(t, err)
	firstPlayTime := account.Round(1).PlayTime
	creditsAfterFirst := account.Credits

	// A replay is permitted: it costs another credit and refreshes the
	// play time.
	clock.Advance(5_000)
	account, err = game.PlayRound(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, creditsAfterFirst-1, account.Credits)
	assert.Equal(t, firstPlayTime+5_000, account.Round(1).PlayTime)
	checkInvariants(t, account)
}

func TestPlayRoundUnknownAccount(t *testing.T) {
	game, _, _ := newTestGame(t)

	_, err := game.PlayRound(context.Background(), "nobody", 1)
	assert.ErrorIs(t, err, models.ErrAccountNotFound)
}

func TestPlayRoundInvalidNumber(t *testing.T) {
	game, _, _ := newTestGame(t)
	ctx := context.Background()

	_, err := game.Register(ctx, "alice", "Alice")
	require.NoError(t, err)

	for _, n := range []int{0, 4, -1} {
		_, err = game.PlayRound(ctx, "alice", n)
		assert.ErrorIs(t, err, models.ErrInvalidRound, "round %d", n)
	}
}

func TestCertifyRequiresAdmin(t *testing.T) {
	game, _, _ := newTestGame(t)
	ctx := context.Background()

	_, err := game.Register(ctx, "alice", "Alice")
	require.NoError(t, err)
	_, err = game.PlayRound(ctx, "alice", 1)
	require.NoError(t, err)

	_, err = game.CertifyRound(ctx, "alice", "alice", 1, 50)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = game.AdminGrantCredit(ctx, "alice", "alice")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestCertifyUnplayedRound(t *testing.T) {
	game, _, _ := newTestGame(t)
	ctx := context.Background()

	_, err := game.Register(ctx, "alice", "Alice")
	require.NoError(t, err)

	_, err = game.CertifyRound(ctx, adminAddress, "alice", 1, 50)
	assert.ErrorIs(t, err, models.ErrRoundNotPlayed)

	// Round 2 was never played either; certification order cannot be
	// skipped ahead of play.
	_, err = game.CertifyRound(ctx, adminAddress, "alice", 2, 50)
	assert.ErrorIs(t, err, models.ErrRoundNotPlayed)
}

func TestClaimPeriodicCredit(t *testing.T) {
	game, _, clock := newTestGame(t)
	ctx := context.Background()

	_, err := game.Register(ctx, "alice", "Alice")
	require.NoError(t, err)

	// First claim is always eligible.
	account, err := game.ClaimPeriodicCredit(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1+services.ClaimCreditAmount), account.Credits)
	assert.Equal(t, baseTime, account.LastClaimTime)

	// A second claim inside the cooldown fails.
	clock.Advance(services.ClaimCooldownMillis - 1)
	_, err = game.ClaimPeriodicCredit(ctx, "alice")
	assert.ErrorIs(t, err, models.ErrTooEarlyToClaim)

	// Exactly at the cooldown boundary it succeeds again.
	clock.Advance(1)
	account, err = game.ClaimPeriodicCredit(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1+2*services.ClaimCreditAmount), account.Credits)
	assert.Equal(t, baseTime+services.ClaimCooldownMillis, account.LastClaimTime)
}

func TestAdminGrantCreditHasNoCooldown(t *testing.T) {
	game, _, _ := newTestGame(t)
	ctx := context.Background()

	_, err := game.Register(ctx, "alice", "Alice")
	require.NoError(t, err)

	account, err := game.AdminGrantCredit(ctx, adminAddress, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1+services.GrantCreditAmount), account.Credits)

	account, err = game.AdminGrantCredit(ctx, adminAddress, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1+2*services.GrantCreditAmount), account.Credits)
}

func TestOpenTreasure(t *testing.T) {
	game, _, _ := newTestGame(t)
	ctx := context.Background()

	_, err := game.Register(ctx, "alice", "Alice")
	require.NoError(t, err)

	// Treasure is locked until the round is certified.
	_, _, err = game.OpenTreasure(ctx, "alice", 1)
	assert.ErrorIs(t, err, models.ErrPreviousRoundNotCertified)

	_, err = game.PlayRound(ctx, "alice", 1)
	require.NoError(t, err)
	_, err = game.CertifyRound(ctx, adminAddress, "alice", 1, 50)
	require.NoError(t, err)

	reward, account, err := game.OpenTreasure(ctx, "alice", 1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, reward, int64(1))
	assert.LessOrEqual(t, reward, int64(10))
	assert.Equal(t, reward, account.Gold)
	assert.True(t, account.Round(1).TreasureOpened)
	checkInvariants(t, account)

	// Second open fails and pays nothing.
	_, _, err = game.OpenTreasure(ctx, "alice", 1)
	assert.ErrorIs(t, err, models.ErrTreasureAlreadyOpened)

	info, err := game.GetPlayerInfo(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, reward, info.Gold)
}

func TestOpenTreasureRoundTwoRange(t *testing.T) {
	game, _, _ := newTestGame(t)
	ctx := context.Background()

	_, err := game.Register(ctx, "alice", "Alice")
	require.NoError(t, err)
	_, err = game.AdminGrantCredit(ctx, adminAddress, "alice")
	require.NoError(t, err)

	_, err = game.PlayRound(ctx, "alice", 1)
	require.NoError(t, err)
	_, err = game.CertifyRound(ctx, adminAddress, "alice", 1, 10)
	require.NoError(t, err)
	_, err = game.PlayRound(ctx, "alice", 2)
	require.NoError(t, err)
	_, err = game.CertifyRound(ctx, adminAddress, "alice", 2, 20)
	require.NoError(t, err)

	reward, account, err := game.OpenTreasure(ctx, "alice", 2)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, reward, int64(5))
	assert.LessOrEqual(t, reward, int64(15))
	checkInvariants(t, account)
}

func TestOpenTreasureRoundThreeInvalid(t *testing.T) {
	game, _, _ := newTestGame(t)
	ctx := context.Background()

	_, err := game.Register(ctx, "alice", "Alice")
	require.NoError(t, err)

	_, _, err = game.OpenTreasure(ctx, "alice", 3)
	assert.ErrorIs(t, err, models.ErrInvalidRound)
}

func TestOpenTreasureDeterminism(t *testing.T) {
	ctx := context.Background()

	// Two independent systems with the same clock must pay the same
	// reward to the same address.
	run := func() int64 {
		game, _, _ := newTestGame(t)
		_, err := game.Register(ctx, "alice", "Alice")
		require.NoError(t, err)
		_, err = game.PlayRound(ctx, "alice", 1)
		require.NoError(t, err)
		_, err = game.CertifyRound(ctx, adminAddress, "alice", 1, 10)
		require.NoError(t, err)

		reward, _, err := game.OpenTreasure(ctx, "alice", 1)
		require.NoError(t, err)
		return reward
	}

	assert.Equal(t, run(), run())
}

func TestGetPlayerCredit(t *testing.T) {
	game, _, _ := newTestGame(t)
	ctx := context.Background()

	_, err := game.Register(ctx, "alice", "Alice")
	require.NoError(t, err)

	credits, err := game.GetPlayerCredit(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(services.StartingCredits), credits)

	_, err = game.GetPlayerCredit(ctx, "nobody")
	assert.ErrorIs(t, err, models.ErrAccountNotFound)
}

func TestLedgerRecordsEconomyMutations(t *testing.T) {
	game, _, _ := newTestGame(t)
	ctx := context.Background()

	_, err := game.Register(ctx, "alice", "Alice")
	require.NoError(t, err)
	_, err = game.PlayRound(ctx, "alice", 1)
	require.NoError(t, err)
	_, err = game.CertifyRound(ctx, adminAddress, "alice", 1, 50)
	require.NoError(t, err)

	entries, err := game.GetLedger(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	kinds := map[models.LedgerType]bool{}
	for _, entry := range entries {
		kinds[entry.Type] = true
		assert.Equal(t, "alice", entry.Address)
	}
	assert.True(t, kinds[models.LedgerTypeRegister])
	assert.True(t, kinds[models.LedgerTypePlay])
	assert.True(t, kinds[models.LedgerTypeCertify])
}
