package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/recallhq/recall-api/internal/domain"
	"github.com/recallhq/recall-api/internal/domain/scheduler"
	"github.com/recallhq/recall-api/internal/platform/logger"
	"github.com/recallhq/recall-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	cardStore     store.CardStore
	deckStore     store.DeckStore
	progressStore store.ProgressStore
	priorityStore store.PriorityStore
	params        *scheduler.Params
	logger        *slog.Logger

	// Injectable for testing
	timeFunc func() time.Time
	newRNG   func() *rand.Rand
}

// NewService creates a new study session Service.
func NewService(
	cardStore store.CardStore,
	deckStore store.DeckStore,
	progressStore store.ProgressStore,
	priorityStore store.PriorityStore,
	params *scheduler.Params,
	logger *slog.Logger,
) Service {
	// Validate inputs
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if deckStore == nil {
		panic("deckStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if priorityStore == nil {
		panic("priorityStore cannot be nil")
	}
	if params == nil {
		params = scheduler.NewDefaultParams()
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		cardStore:     cardStore,
		deckStore:     deckStore,
		progressStore: progressStore,
		priorityStore: priorityStore,
		params:        params,
		logger:        logger.With(slog.String("component", "study_service")),
		timeFunc:      func() time.Time { return time.Now().UTC() },
		newRNG: func() *rand.Rand {
			// Fresh source per call so repeated sessions over the same
			// inputs produce different orderings.
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// BuildSession implements Service.BuildSession.
func (s *serviceImpl) BuildSession(
	ctx context.Context,
	req SessionRequest,
) (*SessionResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if req.TenantID == uuid.Nil {
		return nil, ErrMissingTenant
	}
	if req.LearnerID == uuid.Nil {
		return nil, ErrMissingLearner
	}
	if req.Limit <= 0 {
		return nil, ErrInvalidLimit
	}

	log.Debug("building study session",
		slog.String("learner_id", req.LearnerID.String()),
		slog.String("tenant_id", req.TenantID.String()),
		slog.String("virtual_deck", string(req.VirtualDeck)),
		slog.Int("limit", req.Limit))

	pool, err := s.resolvePool(ctx, req)
	if err != nil {
		if errors.Is(err, ErrDeckNotFound) {
			return nil, err
		}
		log.Error("failed to resolve card pool",
			slog.String("error", err.Error()),
			slog.String("learner_id", req.LearnerID.String()))
		return nil, NewBuildSessionError("failed to resolve card pool", err)
	}

	// Nothing accessible: short-circuit before any further loads.
	if len(pool) == 0 {
		log.Debug("card pool is empty",
			slog.String("learner_id", req.LearnerID.String()))
		return &SessionResult{Cards: []*domain.Card{}}, nil
	}

	progress, err := s.progressStore.GetForCards(ctx, req.LearnerID, pool)
	if err != nil {
		log.Error("failed to load progress records",
			slog.String("error", err.Error()),
			slog.String("learner_id", req.LearnerID.String()))
		return nil, NewBuildSessionError("failed to load progress records", err)
	}

	now := s.timeFunc()
	categoryFiltered := len(req.CategoryIDs) > 0
	candidates := scheduler.BuildCandidates(
		pool, progress, req.VirtualDeck, req.Limit, categoryFiltered, now, s.params)

	result := &SessionResult{
		Cards:    []*domain.Card{},
		TotalDue: candidates.TotalDue,
		TotalNew: candidates.TotalNew,
	}

	// A nonempty pool can still narrow to nothing (e.g. strict due_today
	// with no due cards); the counts over the pool are still reported.
	if len(candidates.IDs) == 0 {
		return result, nil
	}

	weighted, cards, err := s.weighCandidates(ctx, req, candidates.IDs, progress)
	if err != nil {
		log.Error("failed to weigh session candidates",
			slog.String("error", err.Error()),
			slog.String("learner_id", req.LearnerID.String()))
		return nil, NewBuildSessionError("failed to weigh session candidates", err)
	}

	permutation := scheduler.WeightedShuffle(weighted, s.newRNG())

	batchSize := req.Limit
	if len(permutation) < batchSize {
		batchSize = len(permutation)
	}
	for _, entry := range permutation[:batchSize] {
		result.Cards = append(result.Cards, cards[entry.CardID])
	}

	log.Debug("study session assembled",
		slog.String("learner_id", req.LearnerID.String()),
		slog.Int("batch_size", len(result.Cards)),
		slog.Int("total_due", result.TotalDue),
		slog.Int("total_new", result.TotalNew))

	return result, nil
}

// resolvePool resolves the card pool the request names: an explicit deck's
// members, or the union of the learner's owned and shared cards with any
// category filter applied.
func (s *serviceImpl) resolvePool(
	ctx context.Context,
	req SessionRequest,
) ([]uuid.UUID, error) {
	if req.DeckID != nil {
		deck, err := s.deckStore.GetForLearner(ctx, *req.DeckID, req.LearnerID, req.TenantID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return nil, ErrDeckNotFound
			}
			return nil, fmt.Errorf("failed to get deck: %w", err)
		}
		ids, err := s.deckStore.GetCardIDs(ctx, deck.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get deck cards: %w", err)
		}
		return ids, nil
	}

	owned, err := s.cardStore.FindOwnedIDs(ctx, req.LearnerID, req.TenantID, req.CategoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find owned cards: %w", err)
	}
	shared, err := s.cardStore.FindSharedIDs(ctx, req.LearnerID, req.TenantID, req.CategoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find shared cards: %w", err)
	}

	// Union, owned first, dropping duplicates from the shared set.
	seen := make(map[uuid.UUID]struct{}, len(owned)+len(shared))
	pool := make([]uuid.UUID, 0, len(owned)+len(shared))
	for _, id := range owned {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			pool = append(pool, id)
		}
	}
	for _, id := range shared {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			pool = append(pool, id)
		}
	}
	return pool, nil
}

// weighCandidates bulk-loads the candidate cards and the category priority
// settings, then computes each candidate's sampling weight. Candidates
// missing from the loaded card map are dropped rather than failing the
// session.
func (s *serviceImpl) weighCandidates(
	ctx context.Context,
	req SessionRequest,
	candidateIDs []uuid.UUID,
	progress map[uuid.UUID]*domain.Progress,
) ([]scheduler.WeightedCard, map[uuid.UUID]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardStore.GetByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cards: %w", err)
	}

	categorySet := make(map[uuid.UUID]struct{}, len(cards))
	categoryIDs := make([]uuid.UUID, 0, len(cards))
	for _, card := range cards {
		if _, ok := categorySet[card.CategoryID]; !ok {
			categorySet[card.CategoryID] = struct{}{}
			categoryIDs = append(categoryIDs, card.CategoryID)
		}
	}

	adminPriorities, err := s.priorityStore.GetAdminPriorities(ctx, req.TenantID, categoryIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load admin priorities: %w", err)
	}
	userPriorities, err := s.priorityStore.GetUserPriorities(
		ctx, req.TenantID, req.LearnerID, categoryIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load learner priorities: %w", err)
	}
	mode, err := s.priorityStore.GetOverrideMode(ctx, req.TenantID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load override mode: %w", err)
	}

	weighted := make([]scheduler.WeightedCard, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		card, ok := cards[id]
		if !ok {
			// Stale membership rows can reference deleted cards; a smaller
			// session beats a failed one.
			log.Debug("candidate card missing from loaded set, dropping",
				slog.String("card_id", id.String()))
			continue
		}

		var admin, user *int
		if p, ok := adminPriorities[card.CategoryID]; ok {
			admin = &p
		}
		if p, ok := userPriorities[card.CategoryID]; ok {
			user = &p
		}
		priority := scheduler.ResolvePriority(admin, user, mode, s.params)

		mastery := 0.0
		if prog := progress[id]; prog != nil {
			mastery = prog.MasteryScore
		}

		weighted = append(weighted, scheduler.WeightedCard{
			CardID: id,
			Weight: scheduler.MasteryWeight(priority, mastery, s.params),
		})
	}

	return weighted, cards, nil
}
