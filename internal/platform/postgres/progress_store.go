package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/recallhq/recall-api/internal/domain"
	"github.com/recallhq/recall-api/internal/platform/logger"
	"github.com/recallhq/recall-api/internal/store"
)

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the ProgressStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// GetForCards implements store.ProgressStore.GetForCards
// Cards the learner has never studied are absent from the returned map.
func (s *PostgresProgressStore) GetForCards(
	ctx context.Context,
	learnerID uuid.UUID,
	cardIDs []uuid.UUID,
) (map[uuid.UUID]*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	records := make(map[uuid.UUID]*domain.Progress, len(cardIDs))
	if len(cardIDs) == 0 {
		return records, nil
	}

	query := `
		SELECT learner_id, card_id, last_reviewed_at, next_due_at,
		       exposure_count, mastery_score, created_at, updated_at
		FROM progress
		WHERE learner_id = $1 AND card_id = ANY($2::uuid[])
	`

	rows, err := s.db.QueryContext(ctx, query, learnerID, uuidStrings(cardIDs))
	if err != nil {
		log.Error("failed to query progress records",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	for rows.Next() {
		var p domain.Progress
		var lastReviewedAt sql.NullTime

		err := rows.Scan(
			&p.LearnerID,
			&p.CardID,
			&lastReviewedAt,
			&p.NextDueAt,
			&p.ExposureCount,
			&p.MasteryScore,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan progress row", slog.String("error", err.Error()))
			return nil, err
		}

		if lastReviewedAt.Valid {
			p.LastReviewedAt = lastReviewedAt.Time
		}

		records[p.CardID] = &p
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("loaded progress records",
		slog.String("learner_id", learnerID.String()),
		slog.Int("requested", len(cardIDs)),
		slog.Int("found", len(records)))
	return records, nil
}

// Upsert implements store.ProgressStore.Upsert
// It inserts or replaces the record for the (learner, card) pair.
// Returns validation errors from the domain Progress if data is invalid.
// Returns store.ErrInvalidEntity if the learner or card does not exist.
func (s *PostgresProgressStore) Upsert(ctx context.Context, progress *domain.Progress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("progress validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("learner_id", progress.LearnerID.String()),
			slog.String("card_id", progress.CardID.String()))
		return err
	}

	query := `
		INSERT INTO progress (learner_id, card_id, last_reviewed_at, next_due_at,
		                      exposure_count, mastery_score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (learner_id, card_id) DO UPDATE SET
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			next_due_at = EXCLUDED.next_due_at,
			exposure_count = EXCLUDED.exposure_count,
			mastery_score = EXCLUDED.mastery_score,
			updated_at = EXCLUDED.updated_at
	`

	var lastReviewedAt sql.NullTime
	if !progress.LastReviewedAt.IsZero() {
		lastReviewedAt = sql.NullTime{Time: progress.LastReviewedAt, Valid: true}
	}

	_, err := s.db.ExecContext(
		ctx,
		query,
		progress.LearnerID,
		progress.CardID,
		lastReviewedAt,
		progress.NextDueAt,
		progress.ExposureCount,
		progress.MasteryScore,
		progress.CreatedAt,
		progress.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode {
			log.Warn("foreign key violation during progress upsert",
				slog.String("error", err.Error()),
				slog.String("learner_id", progress.LearnerID.String()),
				slog.String("card_id", progress.CardID.String()))
			return fmt.Errorf("%w: learner or card does not exist", store.ErrInvalidEntity)
		}

		log.Error("failed to upsert progress",
			slog.String("error", err.Error()),
			slog.String("learner_id", progress.LearnerID.String()),
			slog.String("card_id", progress.CardID.String()))
		return err
	}

	log.Debug("progress upserted",
		slog.String("learner_id", progress.LearnerID.String()),
		slog.String("card_id", progress.CardID.String()),
		slog.Int("exposure_count", progress.ExposureCount))
	return nil
}
