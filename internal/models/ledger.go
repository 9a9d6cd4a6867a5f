package models

type LedgerType string

const (
	LedgerTypeRegister LedgerType = "register"
	LedgerTypePlay     LedgerType = "play"
	LedgerTypeCertify  LedgerType = "certify"
	LedgerTypeTreasure LedgerType = "treasure"
	LedgerTypeClaim    LedgerType = "claim"
	LedgerTypeGrant    LedgerType = "grant"
)

// LedgerEntry is an append-only record of one economy mutation on an
// account: a play debit, a credit claim or grant, a treasure reward, or a
// certification award.
type LedgerEntry struct {
	ID      string     `json:"id" redis:"id"`
	Address string     `json:"address" redis:"address"`
	Type    LedgerType `json:"type" redis:"type"`
	Round   int        `json:"round,omitempty" redis:"round"`

	CreditsDelta int64 `json:"credits_delta" redis:"credits_delta"`
	GoldDelta    int64 `json:"gold_delta" redis:"gold_delta"`
	PointDelta   int64 `json:"point_delta" redis:"point_delta"`
	CreditsAfter int64 `json:"credits_after" redis:"credits_after"`

	Description string `json:"description" redis:"description"`
	CreatedAt   int64  `json:"created_at" redis:"created_at"`
}
