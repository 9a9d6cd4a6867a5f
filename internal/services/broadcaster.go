package services

type Broadcaster interface {
	BroadcastRoundPlayed(address string, round int, creditsLeft int64)
	BroadcastRoundCertified(address string, round int, points int64, finished bool)
	BroadcastTreasureOpened(address string, round int, reward int64, gold int64)
	BroadcastCreditsChanged(address string, credits int64)
}
