package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/recallhq/recall-api/internal/domain"
	"github.com/recallhq/recall-api/internal/platform/logger"
	"github.com/recallhq/recall-api/internal/store"
)

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the DeckStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// GetForLearner implements store.DeckStore.GetForLearner
// Returns store.ErrDeckNotFound if the deck does not exist or is not owned
// by the learner within the tenant. The two cases are indistinguishable so
// deck existence does not leak across learners.
func (s *PostgresDeckStore) GetForLearner(
	ctx context.Context,
	deckID, learnerID, tenantID uuid.UUID,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving deck for learner",
		slog.String("deck_id", deckID.String()),
		slog.String("learner_id", learnerID.String()))

	query := `
		SELECT id, tenant_id, owner_id, name, created_at, updated_at
		FROM decks
		WHERE id = $1 AND owner_id = $2 AND tenant_id = $3
	`

	var deck domain.Deck
	err := s.db.QueryRowContext(ctx, query, deckID, learnerID, tenantID).Scan(
		&deck.ID,
		&deck.TenantID,
		&deck.OwnerID,
		&deck.Name,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found for learner",
				slog.String("deck_id", deckID.String()),
				slog.String("learner_id", learnerID.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, err
	}

	return &deck, nil
}

// GetCardIDs implements store.DeckStore.GetCardIDs
// Returns the member card IDs in their stored position order. An empty deck
// yields an empty slice, not an error.
func (s *PostgresDeckStore) GetCardIDs(
	ctx context.Context,
	deckID uuid.UUID,
) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT card_id
		FROM deck_cards
		WHERE deck_id = $1
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query, deckID)
	if err != nil {
		log.Error("failed to query deck cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan deck card row", slog.String("error", err.Error()))
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("loaded deck member cards",
		slog.String("deck_id", deckID.String()),
		slog.Int("count", len(ids)))
	return ids, nil
}
