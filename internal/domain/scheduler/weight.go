package scheduler

// MasteryWeight converts an effective priority and a mastery score into a
// sampling weight.
//
// The weight is strictly increasing in priority for a fixed mastery, and
// strictly decreasing in mastery for a fixed priority, so weaker cards are
// drawn more often at equal priority while higher base priority still
// dominates. The result is strictly positive for every valid input: a fully
// mastered card keeps a nonzero chance of selection.
//
// Mastery is clamped into [0,1]; callers pass 0 for cards that have never
// been studied, which yields the maximal boost.
func MasteryWeight(priority int, mastery float64, params *Params) float64 {
	if mastery < 0 {
		mastery = 0
	}
	if mastery > 1 {
		mastery = 1
	}

	if priority < 1 {
		priority = 1
	}

	return float64(priority) * (1 + params.MasteryBoost*(1-mastery))
}
