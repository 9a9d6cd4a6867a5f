package services

import (
	"context"
	"fmt"
	"sync"

	"hero-quest-backend/internal/models"
)

const (
	StartingCredits   = 1
	ClaimCreditAmount = 3
	GrantCreditAmount = 10

	// ClaimCooldownMillis is the periodic credit cooldown: 24 hours.
	ClaimCooldownMillis int64 = 86_400_000
)

// GameService drives each player's quest: three rounds, each played with a
// credit, certified by an admin, and (rounds 1 and 2) paying a one-time
// treasure. Operations on the same account are serialized by a per-address
// mutex; unrelated accounts proceed concurrently. Preconditions are checked
// before anything is written, so a failed operation leaves no partial state.
type GameService struct {
	store       Store
	clock       Clock
	broadcaster Broadcaster

	locks sync.Map // address -> *sync.Mutex
}

func NewGameService(store Store, clock Clock) *GameService {
	return &GameService{
		store: store,
		clock: clock,
	}
}

func (g *GameService) SetBroadcaster(b Broadcaster) {
	g.broadcaster = b
}

func (g *GameService) lockAccount(address string) func() {
	v, _ := g.locks.LoadOrStore(address, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// BootstrapAdmin seeds the admin set with the deployer address. Membership
// is fixed afterwards; there is no add or revoke operation.
func (g *GameService) BootstrapAdmin(ctx context.Context, address string) error {
	if address == "" {
		return fmt.Errorf("admin address is required")
	}
	return g.store.AddAdmin(address)
}

// IsAuthorized reports whether the caller may certify rounds and grant
// bonus credits.
func (g *GameService) IsAuthorized(ctx context.Context, caller string) (bool, error) {
	return g.store.IsAdmin(caller)
}

func (g *GameService) requireAdmin(caller string) error {
	admin, err := g.store.IsAdmin(caller)
	if err != nil {
		return fmt.Errorf("failed to check admin set: %v", err)
	}
	if !admin {
		return models.ErrUnauthorized
	}
	return nil
}

// Register creates the caller's account with one starting credit and
// appends the address to the player registry. Each address registers at
// most once.
func (g *GameService) Register(ctx context.Context, address, name string) (*models.PlayerAccount, error) {
	unlock := g.lockAccount(address)
	defer unlock()

	now := g.clock.NowMillis()

	account := &models.PlayerAccount{
		Address:   address,
		Name:      name,
		Credits:   StartingCredits,
		CreatedAt: now,
	}

	if err := g.store.CreateAccount(account); err != nil {
		return nil, err
	}

	g.recordLedger(account, models.LedgerTypeRegister, 0, models.LedgerEntry{
		CreditsDelta: StartingCredits,
		Description:  fmt.Sprintf("Registered as %s", name),
	})

	return account, nil
}

// PlayRound consumes one credit and marks round n as played. Round 1 has
// no ordering precondition; rounds 2 and 3 require the previous round to
// be certified first. Replaying an already-played round is allowed: it
// consumes another credit and overwrites the play time.
func (g *GameService) PlayRound(ctx context.Context, address string, n int) (*models.PlayerAccount, error) {
	if !models.ValidRound(n) {
		return nil, models.ErrInvalidRound
	}

	unlock := g.lockAccount(address)
	defer unlock()

	account, err := g.store.GetAccount(address)
	if err != nil {
		return nil, err
	}

	// Ordering is checked ahead of credits: an out-of-order attempt
	// reports the gating failure even with an empty balance.
	if n > 1 && !account.Round(n-1).Certified {
		return nil, models.ErrPreviousRoundNotCertified
	}
	if account.Credits <= 0 {
		return nil, models.ErrInsufficientCredits
	}

	now := g.clock.NowMillis()

	account.Credits--
	round := account.Round(n)
	round.Played = true
	round.PlayTime = now
	account.CurrentRound = n

	if err := g.store.SaveAccount(account); err != nil {
		return nil, fmt.Errorf("failed to save account: %v", err)
	}

	g.recordLedger(account, models.LedgerTypePlay, n, models.LedgerEntry{
		CreditsDelta: -1,
		Description:  fmt.Sprintf("Played round %d", n),
	})

	if g.broadcaster != nil {
		g.broadcaster.BroadcastRoundPlayed(address, n, account.Credits)
	}

	return account, nil
}

// CertifyRound is admin-only. It confirms the target's played round n,
// stamps the finish time, awards the supplied points, and on round 3 marks
// the whole game finished.
func (g *GameService) CertifyRound(ctx context.Context, caller, target string, n int, points int64) (*models.PlayerAccount, error) {
	if !models.ValidRound(n) {
		return nil, models.ErrInvalidRound
	}
	if err := g.requireAdmin(caller); err != nil {
		return nil, err
	}

	unlock := g.lockAccount(target)
	defer unlock()

	account, err := g.store.GetAccount(target)
	if err != nil {
		return nil, err
	}

	round := account.Round(n)
	if !round.Played {
		return nil, models.ErrRoundNotPlayed
	}

	now := g.clock.NowMillis()

	round.Certified = true
	round.FinishTime = now
	account.Point += points
	if n == models.NumRounds {
		account.GameFinished = true
	}

	if err := g.store.SaveAccount(account); err != nil {
		return nil, fmt.Errorf("failed to save account: %v", err)
	}

	g.recordLedger(account, models.LedgerTypeCertify, n, models.LedgerEntry{
		PointDelta:  points,
		Description: fmt.Sprintf("Round %d certified for %d points", n, points),
	})

	if g.broadcaster != nil {
		g.broadcaster.BroadcastRoundCertified(target, n, points, account.GameFinished)
	}

	return account, nil
}

// OpenTreasure pays out the one-time treasure of round n (1 or 2). The
// round must be certified and the treasure untouched.
func (g *GameService) OpenTreasure(ctx context.Context, address string, n int) (int64, *models.PlayerAccount, error) {
	if !models.ValidTreasureRound(n) {
		return 0, nil, models.ErrInvalidRound
	}

	unlock := g.lockAccount(address)
	defer unlock()

	account, err := g.store.GetAccount(address)
	if err != nil {
		return 0, nil, err
	}

	round := account.Round(n)
	if !round.Certified {
		return 0, nil, models.ErrPreviousRoundNotCertified
	}
	if round.TreasureOpened {
		return 0, nil, models.ErrTreasureAlreadyOpened
	}

	now := g.clock.NowMillis()
	reward := treasureReward(address, now, n)

	account.Gold += reward
	round.TreasureOpened = true

	if err := g.store.SaveAccount(account); err != nil {
		return 0, nil, fmt.Errorf("failed to save account: %v", err)
	}

	g.recordLedger(account, models.LedgerTypeTreasure, n, models.LedgerEntry{
		GoldDelta:   reward,
		Description: fmt.Sprintf("Opened round %d treasure for %d gold", n, reward),
	})

	if g.broadcaster != nil {
		g.broadcaster.BroadcastTreasureOpened(address, n, reward, account.Gold)
	}

	return reward, account, nil
}

// ClaimPeriodicCredit adds 3 credits once per 24 hours. LastClaimTime
// starts at zero, so the first claim always succeeds.
func (g *GameService) ClaimPeriodicCredit(ctx context.Context, address string) (*models.PlayerAccount, error) {
	unlock := g.lockAccount(address)
	defer unlock()

	account, err := g.store.GetAccount(address)
	if err != nil {
		return nil, err
	}

	now := g.clock.NowMillis()
	if now-account.LastClaimTime < ClaimCooldownMillis {
		return nil, models.ErrTooEarlyToClaim
	}

	account.Credits += ClaimCreditAmount
	account.LastClaimTime = now

	if err := g.store.SaveAccount(account); err != nil {
		return nil, fmt.Errorf("failed to save account: %v", err)
	}

	g.recordLedger(account, models.LedgerTypeClaim, 0, models.LedgerEntry{
		CreditsDelta: ClaimCreditAmount,
		Description:  "Claimed periodic credits",
	})

	if g.broadcaster != nil {
		g.broadcaster.BroadcastCreditsChanged(address, account.Credits)
	}

	return account, nil
}

// AdminGrantCredit is admin-only and adds 10 credits to the target with no
// cooldown.
func (g *GameService) AdminGrantCredit(ctx context.Context, caller, target string) (*models.PlayerAccount, error) {
	if err := g.requireAdmin(caller); err != nil {
		return nil, err
	}

	unlock := g.lockAccount(target)
	defer unlock()

	account, err := g.store.GetAccount(target)
	if err != nil {
		return nil, err
	}

	account.Credits += GrantCreditAmount

	if err := g.store.SaveAccount(account); err != nil {
		return nil, fmt.Errorf("failed to save account: %v", err)
	}

	g.recordLedger(account, models.LedgerTypeGrant, 0, models.LedgerEntry{
		CreditsDelta: GrantCreditAmount,
		Description:  fmt.Sprintf("Bonus credits granted by %s", caller),
	})

	if g.broadcaster != nil {
		g.broadcaster.BroadcastCreditsChanged(target, account.Credits)
	}

	return account, nil
}

// GetPlayerInfo returns the public projection of an account. Credits are
// not part of it.
func (g *GameService) GetPlayerInfo(ctx context.Context, address string) (*models.PlayerInfo, error) {
	account, err := g.store.GetAccount(address)
	if err != nil {
		return nil, err
	}
	return account.Info(), nil
}

// GetPlayerCredit returns the current credit balance.
func (g *GameService) GetPlayerCredit(ctx context.Context, address string) (int64, error) {
	account, err := g.store.GetAccount(address)
	if err != nil {
		return 0, err
	}
	return account.Credits, nil
}

// GetLedger returns the most recent economy ledger entries for an account.
func (g *GameService) GetLedger(ctx context.Context, address string, limit int64) ([]*models.LedgerEntry, error) {
	return g.store.GetLedger(address, limit)
}

func (g *GameService) recordLedger(account *models.PlayerAccount, kind models.LedgerType, round int, deltas models.LedgerEntry) {
	entry := &models.LedgerEntry{
		ID:           models.GenerateLedgerID(),
		Address:      account.Address,
		Type:         kind,
		Round:        round,
		CreditsDelta: deltas.CreditsDelta,
		GoldDelta:    deltas.GoldDelta,
		PointDelta:   deltas.PointDelta,
		CreditsAfter: account.Credits,
		Description:  deltas.Description,
		CreatedAt:    g.clock.NowMillis(),
	}

	// The ledger is an audit trail; a failed append never rolls back the
	// operation it describes.
	if err := g.store.AppendLedger(entry); err != nil {
		return
	}
}
