package scheduler

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/recallhq/recall-api/internal/domain"
)

// VirtualDeck is a named, computed selection mode applied to a learner's
// accessible pool, as opposed to a user-curated deck. The empty value is
// the default blended mode.
type VirtualDeck string

// Possible virtual deck modes
const (
	VirtualDeckNone           VirtualDeck = ""
	VirtualDeckDueToday       VirtualDeck = "due_today"
	VirtualDeckNeedsAttention VirtualDeck = "needs_attention"
	VirtualDeckCompanyFocus   VirtualDeck = "company_focus"
)

// ErrInvalidVirtualDeck is returned when a request carries an unknown
// virtual deck token.
var ErrInvalidVirtualDeck = errors.New("invalid virtual deck mode")

// Valid reports whether the mode is a member of the closed enumeration.
func (v VirtualDeck) Valid() bool {
	switch v {
	case VirtualDeckNone, VirtualDeckDueToday, VirtualDeckNeedsAttention, VirtualDeckCompanyFocus:
		return true
	default:
		return false
	}
}

// ParseVirtualDeck converts a request token into a VirtualDeck.
func ParseVirtualDeck(s string) (VirtualDeck, error) {
	mode := VirtualDeck(s)
	if !mode.Valid() {
		return "", ErrInvalidVirtualDeck
	}
	return mode, nil
}

// Candidates is the outcome of narrowing a learner's accessible pool down
// to the cards eligible for weighted selection, together with the due/new
// counts computed over the full pool before any narrowing.
type Candidates struct {
	IDs      []uuid.UUID
	TotalDue int
	TotalNew int
}

// BuildCandidates computes the due set over the resolved pool and then
// narrows the pool according to the virtual deck mode.
//
// The pool is the learner's already-resolved accessible card set (explicit
// deck members, or owned plus shared cards with any category filter applied
// upstream); progress holds each learner-card record keyed by card ID, with
// missing entries meaning "never studied". categoryFiltered reports whether
// a category filter was applied when the pool was resolved.
//
// TotalDue and TotalNew always describe the full pool: TotalNew is the pool
// size minus the due count. An empty pool yields an empty Candidates with
// zero counts. A nonempty pool whose narrowed set is empty still reports
// the pool counts.
func BuildCandidates(
	pool []uuid.UUID,
	progress map[uuid.UUID]*domain.Progress,
	mode VirtualDeck,
	limit int,
	categoryFiltered bool,
	now time.Time,
	params *Params,
) Candidates {
	if len(pool) == 0 {
		return Candidates{}
	}

	dueIDs := make([]uuid.UUID, 0, len(pool))
	for _, id := range pool {
		if IsDue(progress[id], now) {
			dueIDs = append(dueIDs, id)
		}
	}

	totalDue := len(dueIDs)
	totalNew := len(pool) - totalDue

	candidates := Candidates{
		TotalDue: totalDue,
		TotalNew: totalNew,
	}

	switch mode {
	case VirtualDeckDueToday:
		// Strict: never include a card that is not due.
		candidates.IDs = dueIDs

	case VirtualDeckNeedsAttention:
		weak := make([]uuid.UUID, 0, len(pool))
		for _, id := range pool {
			p := progress[id]
			if p != nil && p.MasteryScore < params.WeakMasteryCeiling &&
				p.ExposureCount >= params.MinExposures {
				weak = append(weak, id)
			}
		}
		if len(weak) == 0 {
			// Never return an empty session while the pool has content.
			candidates.IDs = pool
		} else {
			candidates.IDs = weak
		}

	case VirtualDeckCompanyFocus:
		if categoryFiltered {
			// Category filtering already happened during pool resolution.
			candidates.IDs = pool
		} else {
			candidates.IDs = blendedCandidates(pool, dueIDs, totalNew, limit, params)
		}

	default:
		candidates.IDs = blendedCandidates(pool, dueIDs, totalNew, limit, params)
	}

	return candidates
}

// blendedCandidates implements the default mode: due cards only, unless too
// few are due for the requested session size and unstudied cards exist to
// fill it, in which case the whole pool becomes eligible.
func blendedCandidates(
	pool, dueIDs []uuid.UUID,
	newCount, limit int,
	params *Params,
) []uuid.UUID {
	threshold := int(math.Ceil(float64(limit) * params.DueThresholdRatio))
	if len(dueIDs) < threshold && newCount > 0 {
		return pool
	}
	return dueIDs
}
