package models

type LoginRequest struct {
	Address string `json:"address" binding:"required"`
}

type RegisterRequest struct {
	Name string `json:"name" binding:"required"`
}

type CertifyRequest struct {
	Address string `json:"address" binding:"required"`
	Points  int64  `json:"points"`
}

type GrantCreditRequest struct {
	Address string `json:"address" binding:"required"`
}

type PlayRoundResponse struct {
	Round        int   `json:"round"`
	PlayTime     int64 `json:"play_time"`
	CreditsLeft  int64 `json:"credits_left"`
	CurrentRound int   `json:"current_round"`
}

type TreasureResponse struct {
	Round  int   `json:"round"`
	Reward int64 `json:"reward"`
	Gold   int64 `json:"gold"`
}

type ClaimResponse struct {
	Credits       int64 `json:"credits"`
	LastClaimTime int64 `json:"last_claim_time"`
}
