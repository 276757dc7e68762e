package scheduler

import (
	"math/rand"

	"github.com/google/uuid"
)

// WeightedCard pairs a candidate card with its sampling weight.
type WeightedCard struct {
	CardID uuid.UUID
	Weight float64
}

// WeightedShuffle returns a full permutation of the given entries, drawn by
// repeated weighted sampling without replacement: each step draws uniformly
// in [0, totalRemainingWeight), scans the remaining entries accumulating
// weight, emits the entry whose cumulative weight exceeds the draw, and
// removes it. Entries with greater weight therefore have greater expected
// selection rank, but every permutation remains possible.
//
// If the remaining total weight ever reaches zero (all remaining weights
// are zero or negative), the remaining entries are drawn uniformly instead
// of dividing by zero. The input slice is not modified.
//
// The scan is O(n²) in the worst case, which is acceptable for bounded
// study-session candidate sets.
func WeightedShuffle(entries []WeightedCard, rng *rand.Rand) []WeightedCard {
	if len(entries) <= 1 {
		out := make([]WeightedCard, len(entries))
		copy(out, entries)
		return out
	}

	remaining := make([]WeightedCard, len(entries))
	copy(remaining, entries)

	total := 0.0
	for _, e := range remaining {
		if e.Weight > 0 {
			total += e.Weight
		}
	}

	out := make([]WeightedCard, 0, len(remaining))
	for len(remaining) > 0 {
		var pick int
		if total > 0 {
			draw := rng.Float64() * total
			acc := 0.0
			pick = len(remaining) - 1 // float accumulation can land just short of total
			for i, e := range remaining {
				if e.Weight > 0 {
					acc += e.Weight
				}
				if draw < acc {
					pick = i
					break
				}
			}
		} else {
			// Degenerate weights: fall back to a uniform draw.
			pick = rng.Intn(len(remaining))
		}

		chosen := remaining[pick]
		out = append(out, chosen)

		if chosen.Weight > 0 {
			total -= chosen.Weight
		}
		if total < 0 {
			total = 0
		}

		remaining[pick] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}

	return out
}
