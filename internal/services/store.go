package services

import (
	"time"

	"hero-quest-backend/internal/models"
)

// Store is the keyed record store behind the game service. RedisService is
// the production implementation; tests use testutil.MemStore.
type Store interface {
	// GetAccount returns models.ErrAccountNotFound for unknown addresses.
	GetAccount(address string) (*models.PlayerAccount, error)
	SaveAccount(account *models.PlayerAccount) error

	// CreateAccount stores a new account and appends its address to the
	// player registry in one atomic step. Returns models.ErrAccountExists
	// if the address is already registered.
	CreateAccount(account *models.PlayerAccount) error

	// ListPlayers returns every registered address in registration order.
	ListPlayers() ([]string, error)

	// GetAccounts bulk-fetches accounts, preserving input order and
	// skipping addresses with no record.
	GetAccounts(addresses []string) ([]*models.PlayerAccount, error)

	IsAdmin(address string) (bool, error)
	AddAdmin(address string) error

	AppendLedger(entry *models.LedgerEntry) error
	GetLedger(address string, limit int64) ([]*models.LedgerEntry, error)
}

// Clock supplies the millisecond timestamps recorded on accounts. The
// treasure reward derivation depends on it, so tests inject a fixed one.
type Clock interface {
	NowMillis() int64
}

type systemClock struct{}

func (systemClock) NowMillis() int64 { return time.Now().UnixMilli() }

func SystemClock() Clock { return systemClock{} }
