package services

import (
	"crypto/sha256"
	"encoding/binary"
)

// Treasure reward spans per round: round 1 pays 1-10 gold, round 2 pays
// 5-15 gold.
const (
	treasureSpanRound1 = 10
	treasureBaseRound1 = 1
	treasureSpanRound2 = 11
	treasureBaseRound2 = 5
)

// treasureReward derives the one-time reward for a round's treasure. The
// seed is sha256 over the raw address bytes followed by the timestamp as
// 8 big-endian bytes; the first 8 digest bytes are folded big-endian into
// a uint64 and reduced modulo the round's span.
//
// Both inputs are observable by whoever schedules the call, so this is
// pseudo-random rather than unpredictable. The byte layout is fixed:
// changing it changes every reward.
func treasureReward(address string, now int64, round int) int64 {
	buf := make([]byte, 0, len(address)+8)
	buf = append(buf, address...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(now))

	digest := sha256.Sum256(buf)
	seed := binary.BigEndian.Uint64(digest[:8])

	switch round {
	case 1:
		return int64(seed%treasureSpanRound1) + treasureBaseRound1
	case 2:
		return int64(seed%treasureSpanRound2) + treasureBaseRound2
	}

	return 0
}
