package services

import (
	"context"
	"fmt"
	"sort"

	"hero-quest-backend/internal/models"
)

// Leaderboard ranks every registered player by points, descending. Ties
// keep registration order. It is a read-only projection; nothing is
// mutated.
func (g *GameService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	addresses, err := g.store.ListPlayers()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate players: %v", err)
	}

	accounts, err := g.store.GetAccounts(addresses)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %v", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(accounts))
	for _, account := range accounts {
		entries = append(entries, models.LeaderboardEntry{
			Name:    account.Name,
			Address: account.Address,
			Point:   account.Point,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Point > entries[j].Point
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}
