// Package testutil provides an in-memory implementation of the game store
// for use in tests across the module. Never import this in production code.
package testutil

import (
	"sort"
	"sync"

	"hero-quest-backend/internal/models"
)

// MemStore is a thread-safe in-memory services.Store for tests.
type MemStore struct {
	mu       sync.RWMutex
	accounts map[string]models.PlayerAccount
	registry []string
	admins   map[string]bool
	ledger   map[string][]models.LedgerEntry
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		accounts: make(map[string]models.PlayerAccount),
		admins:   make(map[string]bool),
		ledger:   make(map[string][]models.LedgerEntry),
	}
}

func (m *MemStore) GetAccount(address string) (*models.PlayerAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[address]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	cp := account
	return &cp, nil
}

func (m *MemStore) SaveAccount(account *models.PlayerAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.Address] = *account
	return nil
}

func (m *MemStore) CreateAccount(account *models.PlayerAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.Address]; ok {
		return models.ErrAccountExists
	}
	m.accounts[account.Address] = *account
	m.registry = append(m.registry, account.Address)
	return nil
}

func (m *MemStore) ListPlayers() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.registry))
	copy(out, m.registry)
	return out, nil
}

func (m *MemStore) GetAccounts(addresses []string) ([]*models.PlayerAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.PlayerAccount
	for _, address := range addresses {
		account, ok := m.accounts[address]
		if !ok {
			continue
		}
		cp := account
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemStore) IsAdmin(address string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.admins[address], nil
}

func (m *MemStore) AddAdmin(address string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admins[address] = true
	return nil
}

func (m *MemStore) AppendLedger(entry *models.LedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger[entry.Address] = append(m.ledger[entry.Address], *entry)
	return nil
}

func (m *MemStore) GetLedger(address string, limit int64) ([]*models.LedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := m.ledger[address]
	out := make([]*models.LedgerEntry, 0, len(entries))
	for i := range entries {
		cp := entries[i]
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FixedClock is a manually advanced services.Clock.
type FixedClock struct {
	mu  sync.Mutex
	now int64
}

// NewFixedClock starts the clock at the given unix-millisecond instant.
func NewFixedClock(now int64) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) NowMillis() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d milliseconds.
func (c *FixedClock) Advance(d int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

// Set jumps the clock to an absolute instant.
func (c *FixedClock) Set(now int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
