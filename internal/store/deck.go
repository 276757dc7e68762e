package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/recallhq/recall-api/internal/domain"
)

// DeckStore defines deck lookup for session requests that name an explicit deck.
type DeckStore interface {
	// GetForLearner retrieves a deck by ID, scoped to the owning learner and
	// tenant. Returns ErrDeckNotFound when the deck does not exist or is not
	// owned by the learner within the tenant; ownership failures are
	// indistinguishable from absence by design.
	GetForLearner(ctx context.Context, deckID, learnerID, tenantID uuid.UUID) (*domain.Deck, error)

	// GetCardIDs returns the member card IDs of a deck in stable insertion order.
	GetCardIDs(ctx context.Context, deckID uuid.UUID) ([]uuid.UUID, error)
}
