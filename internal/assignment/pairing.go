package assignment

import (
	"errors"
	"math/rand"

	"github.com/gwsanta/secret-santa-backend/internal/metrics"
)

// maxShuffleAttempts bounds rejection sampling. Pure rejection has an
// unbounded worst case for small N, so after the cap the generator falls
// back to a rotation of the shuffled list, which is fixpoint-free for N≥2.
const maxShuffleAttempts = 1000

var ErrInsufficientParticipants = errors.New("at least 2 participants required for pairing")

// Pair is one santa→recipient edge of the derangement
type Pair struct {
	Santa     uint
	Recipient uint
}

// ExclusionSet marks santa→recipient pairings to avoid, keyed by santa.
// Typically loaded from prior events so the same two users are not matched
// twice. Avoidance is best effort: an infeasible exclusion is dropped for
// the affected pair rather than failing the whole batch.
type ExclusionSet map[uint]map[uint]bool

func (e ExclusionSet) excluded(santa, recipient uint) bool {
	if e == nil {
		return false
	}
	return e[santa][recipient]
}

// GeneratePairing produces a complete derangement of the participants:
// every participant gives to exactly one other and receives from exactly
// one other, never themselves.
func GeneratePairing(participants []uint, exclude ExclusionSet, rng *rand.Rand) ([]Pair, error) {
	n := len(participants)
	if n < 2 {
		return nil, ErrInsufficientParticipants
	}

	metrics.PairingRuns.Inc()

	perm := make([]uint, n)
	copy(perm, participants)

	for attempt := 0; attempt < maxShuffleAttempts; attempt++ {
		rng.Shuffle(n, func(i, j int) {
			perm[i], perm[j] = perm[j], perm[i]
		})

		if ok := validPermutation(participants, perm, exclude); ok {
			pairs := make([]Pair, n)
			for i := range participants {
				pairs[i] = Pair{Santa: participants[i], Recipient: perm[i]}
			}
			return pairs, nil
		}
		metrics.PairingRetries.Inc()
	}

	// Constructive fallback: shuffle once more and close the cycle by
	// pairing each position with the next one.
	metrics.PairingFallbacks.Inc()

	cycle := make([]uint, n)
	copy(cycle, participants)
	rng.Shuffle(n, func(i, j int) {
		cycle[i], cycle[j] = cycle[j], cycle[i]
	})

	pairs := make([]Pair, n)
	for i := range cycle {
		pairs[i] = Pair{Santa: cycle[i], Recipient: cycle[(i+1)%n]}
	}

	repairExclusions(pairs, exclude)
	return pairs, nil
}

// validPermutation accepts a candidate with no fixed point and no excluded
// pairing
func validPermutation(participants, perm []uint, exclude ExclusionSet) bool {
	for i := range participants {
		if participants[i] == perm[i] {
			return false
		}
		if exclude.excluded(participants[i], perm[i]) {
			return false
		}
	}
	return true
}

// repairExclusions tries to swap recipients between pairs so that excluded
// pairings disappear without breaking the derangement. A pair with no legal
// swap keeps its excluded recipient — avoidance is not a strict guarantee.
func repairExclusions(pairs []Pair, exclude ExclusionSet) {
	if exclude == nil {
		return
	}

	for i := range pairs {
		if !exclude.excluded(pairs[i].Santa, pairs[i].Recipient) {
			continue
		}

		for j := range pairs {
			if i == j {
				continue
			}
			ri, rj := pairs[j].Recipient, pairs[i].Recipient
			if ri == pairs[i].Santa || rj == pairs[j].Santa {
				continue
			}
			if exclude.excluded(pairs[i].Santa, ri) || exclude.excluded(pairs[j].Santa, rj) {
				continue
			}
			pairs[i].Recipient, pairs[j].Recipient = ri, rj
			break
		}
	}
}
