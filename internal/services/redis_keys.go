package services

import "time"

const (
	KeyUserSession   = "user:%s:session:%s"
	KeyAccount       = "account:%s"
	KeyPlayerList    = "players"
	KeyAdminSet      = "admins"
	KeyLedgerEntry   = "ledger:%s"
	KeyAccountLedger = "account:%s:ledger"
	KeyRateLimit     = "ratelimit:%s:%s"

	TTLUserSession = 24 * time.Hour
	TTLLedgerEntry = 30 * 24 * time.Hour // 30 days

	DefaultRateLimitPlay  = 30 // Max 30 play attempts per minute
	DefaultRateLimitClaim = 10 // Max 10 claim attempts per minute
)
