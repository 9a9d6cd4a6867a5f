package services

import "testing"

func TestTreasureRewardDeterminism(t *testing.T) {
	// Fixed address and timestamp must always yield the same reward.
	cases := []struct {
		address string
		now     int64
		round   int
		want    int64
	}{
		{"alice", 1_700_000_000_000, 1, 4},
		{"alice", 1_700_000_000_000, 2, 14},
		{"bob", 1_700_000_000_000, 1, 9},
		{"bob", 1_700_000_000_000, 2, 11},
		{"alice", 1_700_000_000_001, 1, 1},
		{"alice", 1_700_000_000_001, 2, 12},
	}

	for _, tc := range cases {
		got := treasureReward(tc.address, tc.now, tc.round)
		if got != tc.want {
			t.Errorf("treasureReward(%q, %d, %d) = %d, want %d",
				tc.address, tc.now, tc.round, got, tc.want)
		}

		again := treasureReward(tc.address, tc.now, tc.round)
		if again != got {
			t.Errorf("treasureReward is not deterministic: %d then %d", got, again)
		}
	}
}

func TestTreasureRewardRanges(t *testing.T) {
	addresses := []string{"alice", "bob", "carol", "dave", "erin", "frank"}

	for _, address := range addresses {
		for now := int64(1_700_000_000_000); now < 1_700_000_000_200; now++ {
			r1 := treasureReward(address, now, 1)
			if r1 < 1 || r1 > 10 {
				t.Fatalf("round 1 reward %d for %s@%d out of [1,10]", r1, address, now)
			}

			r2 := treasureReward(address, now, 2)
			if r2 < 5 || r2 > 15 {
				t.Fatalf("round 2 reward %d for %s@%d out of [5,15]", r2, address, now)
			}
		}
	}
}

func TestTreasureRewardUnknownRound(t *testing.T) {
	if got := treasureReward("alice", 1_700_000_000_000, 3); got != 0 {
		t.Errorf("round 3 has no treasure, got reward %d", got)
	}
}
