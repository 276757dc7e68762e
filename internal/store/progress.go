package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/recallhq/recall-api/internal/domain"
)

// ProgressStore defines persistence for per-learner spaced repetition state.
type ProgressStore interface {
	// GetForCards bulk-loads the learner's progress records for the given
	// cards, keyed by card ID. Cards the learner has never studied are
	// absent from the map; absence is meaningful (the card is new) and is
	// never an error.
	GetForCards(
		ctx context.Context,
		learnerID uuid.UUID,
		cardIDs []uuid.UUID,
	) (map[uuid.UUID]*domain.Progress, error)

	// Upsert inserts or replaces the progress record for the record's
	// (learner, card) pair. Used by the review flow after a card is
	// answered; the scheduler itself only reads.
	Upsert(ctx context.Context, progress *domain.Progress) error
}
