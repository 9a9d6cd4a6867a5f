package models

const (
	// NumRounds is the fixed length of the quest.
	NumRounds = 3
	// TreasureRounds rounds carry a one-time treasure reward.
	TreasureRounds = 2
)

// RoundState tracks one round of a player's quest. Played and Certified
// only ever transition false -> true.
type RoundState struct {
	Played         bool  `json:"played" redis:"played"`
	Certified      bool  `json:"certified" redis:"certified"`
	TreasureOpened bool  `json:"treasure_opened" redis:"treasure_opened"`
	PlayTime       int64 `json:"play_time" redis:"play_time"`
	FinishTime     int64 `json:"finish_time" redis:"finish_time"`
}

// PlayerAccount is the per-player record. Address is the unique key and
// never changes after registration. All timestamps are unix milliseconds.
type PlayerAccount struct {
	Address     string `json:"address" redis:"address"`
	Name        string `json:"name" redis:"name"`
	HeroesOwned int64  `json:"heroes_owned" redis:"heroes_owned"`

	Credits int64 `json:"credits" redis:"credits"`
	Gold    int64 `json:"gold" redis:"gold"`
	Point   int64 `json:"point" redis:"point"`

	Rounds [NumRounds]RoundState `json:"rounds" redis:"rounds"`

	CurrentRound  int   `json:"current_round" redis:"current_round"`
	GameFinished  bool  `json:"game_finished" redis:"game_finished"`
	LastClaimTime int64 `json:"last_claim_time" redis:"last_claim_time"`

	CreatedAt int64 `json:"created_at" redis:"created_at"`
}

// Round returns the state of round n (1-based). Callers must validate n
// with ValidRound first.
func (a *PlayerAccount) Round(n int) *RoundState {
	return &a.Rounds[n-1]
}

// Info projects the account's public fields. Credits are deliberately
// excluded; they are only visible through the credit endpoint.
func (a *PlayerAccount) Info() *PlayerInfo {
	return &PlayerInfo{
		Address:      a.Address,
		Name:         a.Name,
		HeroesOwned:  a.HeroesOwned,
		Gold:         a.Gold,
		Point:        a.Point,
		Rounds:       a.Rounds,
		CurrentRound: a.CurrentRound,
		GameFinished: a.GameFinished,
		CreatedAt:    a.CreatedAt,
	}
}

// PlayerInfo is the public read projection of a PlayerAccount.
type PlayerInfo struct {
	Address      string                `json:"address"`
	Name         string                `json:"name"`
	HeroesOwned  int64                 `json:"heroes_owned"`
	Gold         int64                 `json:"gold"`
	Point        int64                 `json:"point"`
	Rounds       [NumRounds]RoundState `json:"rounds"`
	CurrentRound int                   `json:"current_round"`
	GameFinished bool                  `json:"game_finished"`
	CreatedAt    int64                 `json:"created_at"`
}

// LeaderboardEntry is one row of the points ranking.
type LeaderboardEntry struct {
	Rank    int    `json:"rank"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Point   int64  `json:"point"`
}

// ValidRound reports whether n names one of the three quest rounds.
func ValidRound(n int) bool {
	return n >= 1 && n <= NumRounds
}

// ValidTreasureRound reports whether round n carries a treasure.
func ValidTreasureRound(n int) bool {
	return n >= 1 && n <= TreasureRounds
}
