package study

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallhq/recall-api/internal/domain"
	"github.com/recallhq/recall-api/internal/domain/scheduler"
	"github.com/recallhq/recall-api/internal/store"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// newTestService wires the fakes into a service with deterministic time and
// randomness.
func newTestService(
	cards *fakeCardStore,
	decks *fakeDeckStore,
	progress *fakeProgressStore,
	priorities *fakePriorityStore,
) *serviceImpl {
	svc := NewService(cards, decks, progress, priorities, scheduler.NewDefaultParams(), nil).(*serviceImpl)
	svc.timeFunc = func() time.Time { return testNow }
	svc.newRNG = func() *rand.Rand { return rand.New(rand.NewSource(42)) }
	return svc
}

// fixtureCards builds n cards in a single category and returns them keyed by
// ID alongside the ID slice in creation order.
func fixtureCards(t *testing.T, tenantID uuid.UUID, n int) ([]uuid.UUID, map[uuid.UUID]*domain.Card) {
	t.Helper()
	categoryID := uuid.New()
	ids := make([]uuid.UUID, 0, n)
	cards := make(map[uuid.UUID]*domain.Card, n)
	for i := 0; i < n; i++ {
		id := uuid.New()
		ids = append(ids, id)
		cards[id] = &domain.Card{
			ID:           id,
			TenantID:     tenantID,
			OwnerID:      uuid.New(),
			CategoryID:   categoryID,
			CategoryName: "Biology",
			Question:     "q",
			Answer:       "a",
			Difficulty:   3,
		}
	}
	return ids, cards
}

// dueProgress returns a progress record that is due at testNow.
func dueProgress(learnerID, cardID uuid.UUID) *domain.Progress {
	return &domain.Progress{
		LearnerID:      learnerID,
		CardID:         cardID,
		LastReviewedAt: testNow.Add(-48 * time.Hour),
		NextDueAt:      testNow.Add(-time.Hour),
		ExposureCount:  3,
		MasteryScore:   0.5,
	}
}

// futureProgress returns a progress record not yet due at testNow.
func futureProgress(learnerID, cardID uuid.UUID) *domain.Progress {
	return &domain.Progress{
		LearnerID:      learnerID,
		CardID:         cardID,
		LastReviewedAt: testNow.Add(-time.Hour),
		NextDueAt:      testNow.Add(72 * time.Hour),
		ExposureCount:  5,
		MasteryScore:   0.9,
	}
}

func TestBuildSessionValidation(t *testing.T) {
	t.Parallel()

	learnerID := uuid.New()
	tenantID := uuid.New()

	tests := []struct {
		name    string
		req     SessionRequest
		wantErr error
	}{
		{
			name:    "missing tenant",
			req:     SessionRequest{LearnerID: learnerID, Limit: 25},
			wantErr: ErrMissingTenant,
		},
		{
			name:    "missing learner",
			req:     SessionRequest{TenantID: tenantID, Limit: 25},
			wantErr: ErrMissingLearner,
		},
		{
			name:    "zero limit",
			req:     SessionRequest{LearnerID: learnerID, TenantID: tenantID},
			wantErr: ErrInvalidLimit,
		},
		{
			name:    "negative limit",
			req:     SessionRequest{LearnerID: learnerID, TenantID: tenantID, Limit: -3},
			wantErr: ErrInvalidLimit,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestService(&fakeCardStore{}, &fakeDeckStore{}, &fakeProgressStore{}, &fakePriorityStore{})
			result, err := svc.BuildSession(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
		})
	}
}

func TestBuildSessionDeckNotFound(t *testing.T) {
	t.Parallel()

	deckID := uuid.New()
	decks := &fakeDeckStore{
		GetForLearnerFunc: func(ctx context.Context, deckID, learnerID, tenantID uuid.UUID) (*domain.Deck, error) {
			return nil, store.ErrDeckNotFound
		},
	}
	svc := newTestService(&fakeCardStore{}, decks, &fakeProgressStore{}, &fakePriorityStore{})

	result, err := svc.BuildSession(context.Background(), SessionRequest{
		LearnerID: uuid.New(),
		TenantID:  uuid.New(),
		DeckID:    &deckID,
		Limit:     25,
	})
	assert.ErrorIs(t, err, ErrDeckNotFound)
	assert.Nil(t, result)
}

func TestBuildSessionEmptyPoolShortCircuits(t *testing.T) {
	t.Parallel()

	cards := &fakeCardStore{}
	progress := &fakeProgressStore{}
	svc := newTestService(cards, &fakeDeckStore{}, progress, &fakePriorityStore{})

	result, err := svc.BuildSession(context.Background(), SessionRequest{
		LearnerID: uuid.New(),
		TenantID:  uuid.New(),
		Limit:     25,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Cards)
	assert.Zero(t, result.TotalDue)
	assert.Zero(t, result.TotalNew)

	// No progress or card loads happen when nothing is accessible.
	assert.Zero(t, progress.getForCardsCalls)
	assert.Zero(t, cards.getByIDsCalls)
}

func TestBuildSessionBlendedFlow(t *testing.T) {
	t.Parallel()

	learnerID := uuid.New()
	tenantID := uuid.New()
	ids, cardMap := fixtureCards(t, tenantID, 10)

	// 4 due, 6 never studied.
	progressMap := map[uuid.UUID]*domain.Progress{}
	for _, id := range ids[:4] {
		progressMap[id] = dueProgress(learnerID, id)
	}

	cards := &fakeCardStore{
		FindOwnedIDsFunc: func(ctx context.Context, learnerID, tenantID uuid.UUID, categoryIDs []uuid.UUID) ([]uuid.UUID, error) {
			return ids, nil
		},
		GetByIDsFunc: func(ctx context.Context, requested []uuid.UUID) (map[uuid.UUID]*domain.Card, error) {
			return cardMap, nil
		},
	}
	progress := &fakeProgressStore{
		GetForCardsFunc: func(ctx context.Context, learnerID uuid.UUID, cardIDs []uuid.UUID) (map[uuid.UUID]*domain.Progress, error) {
			return progressMap, nil
		},
	}
	svc := newTestService(cards, &fakeDeckStore{}, progress, &fakePriorityStore{})

	result, err := svc.BuildSession(context.Background(), SessionRequest{
		LearnerID: learnerID,
		TenantID:  tenantID,
		Limit:     25,
	})
	require.NoError(t, err)

	// 4 due < ceil(25*0.6) and new cards exist, so the whole pool is
	// eligible and fits the limit.
	assert.Len(t, result.Cards, 10)
	assert.Equal(t, 4, result.TotalDue)
	assert.Equal(t, 6, result.TotalNew)

	seen := make(map[uuid.UUID]struct{})
	for _, card := range result.Cards {
		require.NotNil(t, card)
		_, dup := seen[card.ID]
		assert.False(t, dup, "card %s returned twice", card.ID)
		seen[card.ID] = struct{}{}
		assert.Contains(t, cardMap, card.ID)
	}
}

func TestBuildSessionRespectsLimit(t *testing.T) {
	t.Parallel()

	learnerID := uuid.New()
	tenantID := uuid.New()
	ids, cardMap := fixtureCards(t, tenantID, 10)

	// All due, so a strict due session has 10 candidates.
	progressMap := map[uuid.UUID]*domain.Progress{}
	for _, id := range ids {
		progressMap[id] = dueProgress(learnerID, id)
	}

	cards := &fakeCardStore{
		FindOwnedIDsFunc: func(ctx context.Context, learnerID, tenantID uuid.UUID, categoryIDs []uuid.UUID) ([]uuid.UUID, error) {
			return ids, nil
		},
		GetByIDsFunc: func(ctx context.Context, requested []uuid.UUID) (map[uuid.UUID]*domain.Card, error) {
			return cardMap, nil
		},
	}
	progress := &fakeProgressStore{
		GetForCardsFunc: func(ctx context.Context, learnerID uuid.UUID, cardIDs []uuid.UUID) (map[uuid.UUID]*domain.Progress, error) {
			return progressMap, nil
		},
	}
	svc := newTestService(cards, &fakeDeckStore{}, progress, &fakePriorityStore{})

	result, err := svc.BuildSession(context.Background(), SessionRequest{
		LearnerID: learnerID,
		TenantID:  tenantID,
		Limit:     3,
	})
	require.NoError(t, err)
	assert.Len(t, result.Cards, 3)
	assert.Equal(t, 10, result.TotalDue)
	assert.Equal(t, 0, result.TotalNew)
}

func TestBuildSessionDueTodayStrict(t *testing.T) {
	t.Parallel()

	learnerID := uuid.New()
	tenantID := uuid.New()
	ids, cardMap := fixtureCards(t, tenantID, 6)

	// 2 due, 3 scheduled in the future, 1 never studied.
	progressMap := map[uuid.UUID]*domain.Progress{
		ids[0]: dueProgress(learnerID, ids[0]),
		ids[1]: dueProgress(learnerID, ids[1]),
		ids[2]: futureProgress(learnerID, ids[2]),
		ids[3]: futureProgress(learnerID, ids[3]),
		ids[4]: futureProgress(learnerID, ids[4]),
	}

	cards := &fakeCardStore{
		FindOwnedIDsFunc: func(ctx context.Context, learnerID, tenantID uuid.UUID, categoryIDs []uuid.UUID) ([]uuid.UUID, error) {
			return ids, nil
		},
		GetByIDsFunc: func(ctx context.Context, requested []uuid.UUID) (map[uuid.UUID]*domain.Card, error) {
			return cardMap, nil
		},
	}
	progress := &fakeProgressStore{
		GetForCardsFunc: func(ctx context.Context, learnerID uuid.UUID, cardIDs []uuid.UUID) (map[uuid.UUID]*domain.Progress, error) {
			return progressMap, nil
		},
	}
	svc := newTestService(cards, &fakeDeckStore{}, progress, &fakePriorityStore{})

	result, err := svc.BuildSession(context.Background(), SessionRequest{
		LearnerID:   learnerID,
		TenantID:    tenantID,
		VirtualDeck: scheduler.VirtualDeckDueToday,
		Limit:       25,
	})
	require.NoError(t, err)

	// Only the due cards plus the never-studied one (due by absence).
	require.Len(t, result.Cards, 3)
	got := map[uuid.UUID]struct{}{}
	for _, card := range result.Cards {
		got[card.ID] = struct{}{}
	}
	assert.Contains(t, got, ids[0])
	assert.Contains(t, got, ids[1])
	assert.Contains(t, got, ids[5])
	assert.Equal(t, 3, result.TotalDue)
	assert.Equal(t, 3, result.TotalNew)
}

func TestBuildSessionDeckPath(t *testing.T) {
	t.Parallel()

	learnerID := uuid.New()
	tenantID := uuid.New()
	deckID := uuid.New()
	ids, cardMap := fixtureCards(t, tenantID, 4)

	cards := &fakeCardStore{
		GetByIDsFunc: func(ctx context.Context, requested []uuid.UUID) (map[uuid.UUID]*domain.Card, error) {
			return cardMap, nil
		},
	}
	decks := &fakeDeckStore{
		GetForLearnerFunc: func(ctx context.Context, gotDeck, gotLearner, gotTenant uuid.UUID) (*domain.Deck, error) {
			assert.Equal(t, deckID, gotDeck)
			assert.Equal(t, learnerID, gotLearner)
			assert.Equal(t, tenantID, gotTenant)
			return &domain.Deck{ID: deckID, TenantID: gotTenant, OwnerID: gotLearner, Name: "midterm"}, nil
		},
		GetCardIDsFunc: func(ctx context.Context, gotDeck uuid.UUID) ([]uuid.UUID, error) {
			return ids, nil
		},
	}
	svc := newTestService(cards, decks, &fakeProgressStore{}, &fakePriorityStore{})

	result, err := svc.BuildSession(context.Background(), SessionRequest{
		LearnerID: learnerID,
		TenantID:  tenantID,
		DeckID:    &deckID,
		Limit:     25,
	})
	require.NoError(t, err)

	// No progress at all: every member is new and due by absence.
	assert.Len(t, result.Cards, 4)
	assert.Equal(t, 4, result.TotalDue)
	assert.Equal(t, 0, result.TotalNew)

	// The owned/shared union is never consulted on the deck path.
	assert.Zero(t, cards.findOwnedCalls)
}

func TestBuildSessionMergesOwnedAndShared(t *testing.T) {
	t.Parallel()

	learnerID := uuid.New()
	tenantID := uuid.New()
	ids, cardMap := fixtureCards(t, tenantID, 5)

	cards := &fakeCardStore{
		FindOwnedIDsFunc: func(ctx context.Context, learnerID, tenantID uuid.UUID, categoryIDs []uuid.UUID) ([]uuid.UUID, error) {
			return ids[:3], nil
		},
		FindSharedIDsFunc: func(ctx context.Context, learnerID, tenantID uuid.UUID, categoryIDs []uuid.UUID) ([]uuid.UUID, error) {
			// Overlaps with owned on ids[2].
			return ids[2:], nil
		},
		GetByIDsFunc: func(ctx context.Context, requested []uuid.UUID) (map[uuid.UUID]*domain.Card, error) {
			assert.Len(t, requested, 5, "duplicates must be dropped from the union")
			return cardMap, nil
		},
	}
	svc := newTestService(cards, &fakeDeckStore{}, &fakeProgressStore{}, &fakePriorityStore{})

	result, err := svc.BuildSession(context.Background(), SessionRequest{
		LearnerID: learnerID,
		TenantID:  tenantID,
		Limit:     25,
	})
	require.NoError(t, err)
	assert.Len(t, result.Cards, 5)
	assert.Equal(t, 5, result.TotalDue)
	assert.Equal(t, 0, result.TotalNew)
}

func TestBuildSessionDropsCardsMissingFromLoad(t *testing.T) {
	t.Parallel()

	learnerID := uuid.New()
	tenantID := uuid.New()
	ids, cardMap := fixtureCards(t, tenantID, 5)

	// Simulate a stale membership row: one candidate no longer exists.
	delete(cardMap, ids[4])

	cards := &fakeCardStore{
		FindOwnedIDsFunc: func(ctx context.Context, learnerID, tenantID uuid.UUID, categoryIDs []uuid.UUID) ([]uuid.UUID, error) {
			return ids, nil
		},
		GetByIDsFunc: func(ctx context.Context, requested []uuid.UUID) (map[uuid.UUID]*domain.Card, error) {
			return cardMap, nil
		},
	}
	svc := newTestService(cards, &fakeDeckStore{}, &fakeProgressStore{}, &fakePriorityStore{})

	result, err := svc.BuildSession(context.Background(), SessionRequest{
		LearnerID: learnerID,
		TenantID:  tenantID,
		Limit:     25,
	})
	require.NoError(t, err)
	assert.Len(t, result.Cards, 4)
	for _, card := range result.Cards {
		assert.NotEqual(t, ids[4], card.ID)
	}
}

func TestBuildSessionEmptyCandidatesStillReportsCounts(t *testing.T) {
	t.Parallel()

	learnerID := uuid.New()
	tenantID := uuid.New()
	ids, _ := fixtureCards(t, tenantID, 3)

	// Everything scheduled for the future: due_today narrows to nothing.
	progressMap := map[uuid.UUID]*domain.Progress{}
	for _, id := range ids {
		progressMap[id] = futureProgress(learnerID, id)
	}

	cards := &fakeCardStore{
		FindOwnedIDsFunc: func(ctx context.Context, learnerID, tenantID uuid.UUID, categoryIDs []uuid.UUID) ([]uuid.UUID, error) {
			return ids, nil
		},
	}
	progress := &fakeProgressStore{
		GetForCardsFunc: func(ctx context.Context, learnerID uuid.UUID, cardIDs []uuid.UUID) (map[uuid.UUID]*domain.Progress, error) {
			return progressMap, nil
		},
	}
	svc := newTestService(cards, &fakeDeckStore{}, progress, &fakePriorityStore{})

	result, err := svc.BuildSession(context.Background(), SessionRequest{
		LearnerID:   learnerID,
		TenantID:    tenantID,
		VirtualDeck: scheduler.VirtualDeckDueToday,
		Limit:       25,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Cards)
	assert.Equal(t, 0, result.TotalDue)
	assert.Equal(t, 3, result.TotalNew)

	// Card and priority loads are skipped when nothing is eligible.
	assert.Zero(t, cards.getByIDsCalls)
}

func TestBuildSessionStoreErrorWrapped(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection reset")
	cards := &fakeCardStore{
		FindOwnedIDsFunc: func(ctx context.Context, learnerID, tenantID uuid.UUID, categoryIDs []uuid.UUID) ([]uuid.UUID, error) {
			return nil, storeErr
		},
	}
	svc := newTestService(cards, &fakeDeckStore{}, &fakeProgressStore{}, &fakePriorityStore{})

	result, err := svc.BuildSession(context.Background(), SessionRequest{
		LearnerID: uuid.New(),
		TenantID:  uuid.New(),
		Limit:     25,
	})
	require.Error(t, err)
	assert.Nil(t, result)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "build_session", svcErr.Operation)
	assert.ErrorIs(t, err, storeErr)
}
