package assignment

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// checkDerangement verifies the structural invariants of a pairing: every
// participant appears exactly once as santa and once as recipient, and
// nobody is paired with themselves.
func checkDerangement(t *testing.T, participants []uint, pairs []Pair) {
	t.Helper()

	if len(pairs) != len(participants) {
		t.Fatalf("got %d pairs for %d participants", len(pairs), len(participants))
	}

	want := make(map[uint]bool, len(participants))
	for _, p := range participants {
		want[p] = true
	}

	santas := make(map[uint]bool, len(pairs))
	recipients := make(map[uint]bool, len(pairs))
	for _, p := range pairs {
		if p.Santa == p.Recipient {
			t.Errorf("participant %d assigned to themselves", p.Santa)
		}
		if !want[p.Santa] {
			t.Errorf("unknown santa %d", p.Santa)
		}
		if !want[p.Recipient] {
			t.Errorf("unknown recipient %d", p.Recipient)
		}
		if santas[p.Santa] {
			t.Errorf("santa %d appears twice", p.Santa)
		}
		if recipients[p.Recipient] {
			t.Errorf("recipient %d appears twice", p.Recipient)
		}
		santas[p.Santa] = true
		recipients[p.Recipient] = true
	}
}

func TestGeneratePairing(t *testing.T) {
	tests := []struct {
		name         string
		participants []uint
	}{
		{"two participants", []uint{1, 2}},
		{"three participants", []uint{7, 8, 9}},
		{"ten participants", []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, err := GeneratePairing(tt.participants, nil, newTestRNG())
			if err != nil {
				t.Fatalf("GeneratePairing: %v", err)
			}
			checkDerangement(t, tt.participants, pairs)
		})
	}
}

func TestGeneratePairingTooFewParticipants(t *testing.T) {
	for _, participants := range [][]uint{nil, {}, {1}} {
		if _, err := GeneratePairing(participants, nil, newTestRNG()); !errors.Is(err, ErrInsufficientParticipants) {
			t.Errorf("GeneratePairing(%v) err = %v, want ErrInsufficientParticipants", participants, err)
		}
	}
}

func TestGeneratePairingTwoParticipantsIsForced(t *testing.T) {
	// With two people the only derangement is the swap
	pairs, err := GeneratePairing([]uint{10, 20}, nil, newTestRNG())
	if err != nil {
		t.Fatalf("GeneratePairing: %v", err)
	}
	got := map[uint]uint{}
	for _, p := range pairs {
		got[p.Santa] = p.Recipient
	}
	if got[10] != 20 || got[20] != 10 {
		t.Errorf("pairing = %v, want forced swap", got)
	}
}

func TestGeneratePairingHonorsExclusions(t *testing.T) {
	participants := []uint{1, 2, 3, 4, 5, 6}
	exclude := ExclusionSet{
		1: {2: true},
		2: {1: true},
		3: {4: true},
	}

	// Run several seeds so a lucky shuffle does not hide a violation
	for seed := int64(0); seed < 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		pairs, err := GeneratePairing(participants, exclude, rng)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		checkDerangement(t, participants, pairs)
		for _, p := range pairs {
			if exclude.excluded(p.Santa, p.Recipient) {
				t.Errorf("seed %d: excluded pairing %d→%d produced", seed, p.Santa, p.Recipient)
			}
		}
	}
}

func TestGeneratePairingInfeasibleExclusionsStillPair(t *testing.T) {
	// Both possible derangements of two people are excluded; the generator
	// must fall back and still return a valid derangement rather than spin.
	participants := []uint{1, 2}
	exclude := ExclusionSet{
		1: {2: true},
		2: {1: true},
	}

	pairs, err := GeneratePairing(participants, exclude, newTestRNG())
	if err != nil {
		t.Fatalf("GeneratePairing: %v", err)
	}
	checkDerangement(t, participants, pairs)
}

func TestGeneratePairingDeterministicForSeed(t *testing.T) {
	participants := []uint{1, 2, 3, 4, 5}

	first, err := GeneratePairing(participants, nil, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("GeneratePairing: %v", err)
	}
	second, err := GeneratePairing(participants, nil, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("GeneratePairing: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed produced different pairings: %v vs %v", first, second)
		}
	}
}

func TestRepairExclusionsSwapsOut(t *testing.T) {
	pairs := []Pair{
		{Santa: 1, Recipient: 2},
		{Santa: 2, Recipient: 1},
		{Santa: 3, Recipient: 4},
		{Santa: 4, Recipient: 3},
	}
	exclude := ExclusionSet{1: {2: true}}

	repairExclusions(pairs, exclude)

	participants := []uint{1, 2, 3, 4}
	checkDerangement(t, participants, pairs)
	for _, p := range pairs {
		if exclude.excluded(p.Santa, p.Recipient) {
			t.Errorf("excluded pairing %d→%d survived repair", p.Santa, p.Recipient)
		}
	}
}
