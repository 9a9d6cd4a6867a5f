package models

import "errors"

// Operation failures. Every operation either applies all of its effects or
// returns one of these with the account untouched.
var (
	// ErrUnauthorized means the caller is not a member of the admin set.
	ErrUnauthorized = errors.New("caller is not authorized")

	// ErrAccountNotFound means no account is registered under the address.
	ErrAccountNotFound = errors.New("player account not found")

	// ErrAccountExists means a registration hit an already-taken address.
	ErrAccountExists = errors.New("player account already exists")

	// ErrInvalidRound means the round number is outside the quest.
	ErrInvalidRound = errors.New("invalid round number")

	// ErrRoundAlreadyPlayed is reserved. Replaying a round is currently
	// allowed: it consumes another credit and overwrites the play time.
	ErrRoundAlreadyPlayed = errors.New("round already played")

	// ErrPreviousRoundNotCertified means play or treasure-open was
	// attempted before the prerequisite round was certified.
	ErrPreviousRoundNotCertified = errors.New("previous round not certified")

	// ErrRoundNotPlayed means certification was attempted before play.
	ErrRoundNotPlayed = errors.New("round not played")

	// ErrInsufficientCredits means the credit balance is zero at play time.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrTreasureAlreadyOpened means the round's treasure was taken before.
	ErrTreasureAlreadyOpened = errors.New("treasure already opened")

	// ErrTooEarlyToClaim means the daily credit cooldown has not elapsed.
	ErrTooEarlyToClaim = errors.New("too early to claim credits")
)
