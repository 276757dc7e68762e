package postgres

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/recallhq/recall-api/internal/domain"
	"github.com/recallhq/recall-api/internal/platform/logger"
	"github.com/recallhq/recall-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// FindOwnedIDs implements store.CardStore.FindOwnedIDs
func (s *PostgresCardStore) FindOwnedIDs(
	ctx context.Context,
	learnerID, tenantID uuid.UUID,
	categoryIDs []uuid.UUID,
) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id
		FROM cards
		WHERE owner_id = $1 AND tenant_id = $2
	`
	args := []interface{}{learnerID, tenantID}
	if len(categoryIDs) > 0 {
		query += ` AND category_id = ANY($3::uuid[])`
		args = append(args, uuidStrings(categoryIDs))
	}
	query += ` ORDER BY created_at`

	ids, err := s.queryIDs(ctx, query, args...)
	if err != nil {
		log.Error("failed to find owned cards",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.String("tenant_id", tenantID.String()))
		return nil, err
	}

	log.Debug("found owned cards",
		slog.String("learner_id", learnerID.String()),
		slog.Int("count", len(ids)))
	return ids, nil
}

// FindSharedIDs implements store.CardStore.FindSharedIDs
func (s *PostgresCardStore) FindSharedIDs(
	ctx context.Context,
	learnerID, tenantID uuid.UUID,
	categoryIDs []uuid.UUID,
) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT c.id
		FROM cards c
		JOIN card_shares cs ON cs.card_id = c.id
		WHERE cs.learner_id = $1 AND c.tenant_id = $2
	`
	args := []interface{}{learnerID, tenantID}
	if len(categoryIDs) > 0 {
		query += ` AND c.category_id = ANY($3::uuid[])`
		args = append(args, uuidStrings(categoryIDs))
	}
	query += ` ORDER BY c.created_at`

	ids, err := s.queryIDs(ctx, query, args...)
	if err != nil {
		log.Error("failed to find shared cards",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.String("tenant_id", tenantID.String()))
		return nil, err
	}

	log.Debug("found shared cards",
		slog.String("learner_id", learnerID.String()),
		slog.Int("count", len(ids)))
	return ids, nil
}

// GetByIDs implements store.CardStore.GetByIDs
// Cards that do not exist are absent from the result map; this is not an error.
func (s *PostgresCardStore) GetByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) (map[uuid.UUID]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards := make(map[uuid.UUID]*domain.Card, len(ids))
	if len(ids) == 0 {
		return cards, nil
	}

	query := `
		SELECT c.id, c.tenant_id, c.owner_id, c.category_id, cat.name,
		       c.question, c.answer, c.tags, c.difficulty, c.created_at, c.updated_at
		FROM cards c
		JOIN categories cat ON cat.id = c.category_id
		WHERE c.id = ANY($1::uuid[])
	`

	rows, err := s.db.QueryContext(ctx, query, uuidStrings(ids))
	if err != nil {
		log.Error("failed to query cards by IDs",
			slog.String("error", err.Error()),
			slog.Int("count", len(ids)))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	for rows.Next() {
		var card domain.Card
		var tags []byte

		err := rows.Scan(
			&card.ID,
			&card.TenantID,
			&card.OwnerID,
			&card.CategoryID,
			&card.CategoryName,
			&card.Question,
			&card.Answer,
			&tags,
			&card.Difficulty,
			&card.CreatedAt,
			&card.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan card row", slog.String("error", err.Error()))
			return nil, err
		}

		if len(tags) > 0 {
			if err := json.Unmarshal(tags, &card.Tags); err != nil {
				log.Error("failed to unmarshal card tags",
					slog.String("error", err.Error()),
					slog.String("card_id", card.ID.String()))
				return nil, err
			}
		}

		cards[card.ID] = &card
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("loaded cards by IDs",
		slog.Int("requested", len(ids)),
		slog.Int("found", len(cards)))
	return cards, nil
}

// queryIDs runs a query whose result set is a single uuid column.
func (s *PostgresCardStore) queryIDs(
	ctx context.Context,
	query string,
	args ...interface{},
) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
