package study

import (
	"context"

	"github.com/google/uuid"
	"github.com/recallhq/recall-api/internal/domain"
)

// fakeCardStore is a function-field fake for store.CardStore. Nil funcs
// return empty results so tests only wire what they exercise.
type fakeCardStore struct {
	FindOwnedIDsFunc  func(ctx context.Context, learnerID, tenantID uuid.UUID, categoryIDs []uuid.UUID) ([]uuid.UUID, error)
	FindSharedIDsFunc func(ctx context.Context, learnerID, tenantID uuid.UUID, categoryIDs []uuid.UUID) ([]uuid.UUID, error)
	GetByIDsFunc      func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Card, error)

	findOwnedCalls int
	getByIDsCalls  int
}

func (f *fakeCardStore) FindOwnedIDs(
	ctx context.Context,
	learnerID, tenantID uuid.UUID,
	categoryIDs []uuid.UUID,
) ([]uuid.UUID, error) {
	f.findOwnedCalls++
	if f.FindOwnedIDsFunc != nil {
		return f.FindOwnedIDsFunc(ctx, learnerID, tenantID, categoryIDs)
	}
	return nil, nil
}

func (f *fakeCardStore) FindSharedIDs(
	ctx context.Context,
	learnerID, tenantID uuid.UUID,
	categoryIDs []uuid.UUID,
) ([]uuid.UUID, error) {
	if f.FindSharedIDsFunc != nil {
		return f.FindSharedIDsFunc(ctx, learnerID, tenantID, categoryIDs)
	}
	return nil, nil
}

func (f *fakeCardStore) GetByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) (map[uuid.UUID]*domain.Card, error) {
	f.getByIDsCalls++
	if f.GetByIDsFunc != nil {
		return f.GetByIDsFunc(ctx, ids)
	}
	return map[uuid.UUID]*domain.Card{}, nil
}

type fakeDeckStore struct {
	GetForLearnerFunc func(ctx context.Context, deckID, learnerID, tenantID uuid.UUID) (*domain.Deck, error)
	GetCardIDsFunc    func(ctx context.Context, deckID uuid.UUID) ([]uuid.UUID, error)
}

func (f *fakeDeckStore) GetForLearner(
	ctx context.Context,
	deckID, learnerID, tenantID uuid.UUID,
) (*domain.Deck, error) {
	if f.GetForLearnerFunc != nil {
		return f.GetForLearnerFunc(ctx, deckID, learnerID, tenantID)
	}
	return &domain.Deck{ID: deckID}, nil
}

func (f *fakeDeckStore) GetCardIDs(ctx context.Context, deckID uuid.UUID) ([]uuid.UUID, error) {
	if f.GetCardIDsFunc != nil {
		return f.GetCardIDsFunc(ctx, deckID)
	}
	return nil, nil
}

type fakeProgressStore struct {
	GetForCardsFunc func(ctx context.Context, learnerID uuid.UUID, cardIDs []uuid.UUID) (map[uuid.UUID]*domain.Progress, error)
	UpsertFunc      func(ctx context.Context, progress *domain.Progress) error

	getForCardsCalls int
}

func (f *fakeProgressStore) GetForCards(
	ctx context.Context,
	learnerID uuid.UUID,
	cardIDs []uuid.UUID,
) (map[uuid.UUID]*domain.Progress, error) {
	f.getForCardsCalls++
	if f.GetForCardsFunc != nil {
		return f.GetForCardsFunc(ctx, learnerID, cardIDs)
	}
	return map[uuid.UUID]*domain.Progress{}, nil
}

func (f *fakeProgressStore) Upsert(ctx context.Context, progress *domain.Progress) error {
	if f.UpsertFunc != nil {
		return f.UpsertFunc(ctx, progress)
	}
	return nil
}

type fakePriorityStore struct {
	GetAdminPrioritiesFunc func(ctx context.Context, tenantID uuid.UUID, categoryIDs []uuid.UUID) (map[uuid.UUID]int, error)
	GetUserPrioritiesFunc  func(ctx context.Context, tenantID, learnerID uuid.UUID, categoryIDs []uuid.UUID) (map[uuid.UUID]int, error)
	GetOverrideModeFunc    func(ctx context.Context, tenantID uuid.UUID) (domain.OverrideMode, error)
}

func (f *fakePriorityStore) GetAdminPriorities(
	ctx context.Context,
	tenantID uuid.UUID,
	categoryIDs []uuid.UUID,
) (map[uuid.UUID]int, error) {
	if f.GetAdminPrioritiesFunc != nil {
		return f.GetAdminPrioritiesFunc(ctx, tenantID, categoryIDs)
	}
	return map[uuid.UUID]int{}, nil
}

func (f *fakePriorityStore) GetUserPriorities(
	ctx context.Context,
	tenantID, learnerID uuid.UUID,
	categoryIDs []uuid.UUID,
) (map[uuid.UUID]int, error) {
	if f.GetUserPrioritiesFunc != nil {
		return f.GetUserPrioritiesFunc(ctx, tenantID, learnerID, categoryIDs)
	}
	return map[uuid.UUID]int{}, nil
}

func (f *fakePriorityStore) GetOverrideMode(
	ctx context.Context,
	tenantID uuid.UUID,
) (domain.OverrideMode, error) {
	if f.GetOverrideModeFunc != nil {
		return f.GetOverrideModeFunc(ctx, tenantID)
	}
	return domain.DefaultOverrideMode, nil
}
