package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/recallhq/recall-api/internal/domain"
)

// CardStore defines the read surface the session scheduler needs over the
// tenant's card library. Card creation and editing belong to the content
// management flows and are not part of this interface.
type CardStore interface {
	// FindOwnedIDs returns the IDs of cards the learner owns within the
	// tenant, optionally restricted to the given categories. A nil or empty
	// categoryIDs slice means no category filter.
	FindOwnedIDs(
		ctx context.Context,
		learnerID, tenantID uuid.UUID,
		categoryIDs []uuid.UUID,
	) ([]uuid.UUID, error)

	// FindSharedIDs returns the IDs of cards shared with the learner via
	// access grants within the tenant, filtered the same way as FindOwnedIDs.
	FindSharedIDs(
		ctx context.Context,
		learnerID, tenantID uuid.UUID,
		categoryIDs []uuid.UUID,
	) ([]uuid.UUID, error)

	// GetByIDs bulk-loads cards by ID, keyed by card ID. Cards that do not
	// exist are simply absent from the result; callers decide whether a
	// missing entry is an error. The returned cards carry the denormalized
	// CategoryName for display.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Card, error)
}
