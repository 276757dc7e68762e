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

// PostgresPriorityStore implements the store.PriorityStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPriorityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPriorityStore creates a new PostgreSQL implementation of the PriorityStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresPriorityStore(db store.DBTX, logger *slog.Logger) *PostgresPriorityStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPriorityStore{
		db:     db,
		logger: logger.With(slog.String("component", "priority_store")),
	}
}

// Ensure PostgresPriorityStore implements store.PriorityStore interface
var _ store.PriorityStore = (*PostgresPriorityStore)(nil)

// GetAdminPriorities implements store.PriorityStore.GetAdminPriorities
// Admin settings are the rows with a NULL learner_id.
func (s *PostgresPriorityStore) GetAdminPriorities(
	ctx context.Context,
	tenantID uuid.UUID,
	categoryIDs []uuid.UUID,
) (map[uuid.UUID]int, error) {
	query := `
		SELECT category_id, priority
		FROM category_priorities
		WHERE tenant_id = $1 AND learner_id IS NULL AND category_id = ANY($2::uuid[])
	`
	return s.queryPriorities(ctx, query, tenantID, categoryIDs)
}

// GetUserPriorities implements store.PriorityStore.GetUserPriorities
func (s *PostgresPriorityStore) GetUserPriorities(
	ctx context.Context,
	tenantID, learnerID uuid.UUID,
	categoryIDs []uuid.UUID,
) (map[uuid.UUID]int, error) {
	query := `
		SELECT category_id, priority
		FROM category_priorities
		WHERE tenant_id = $1 AND learner_id = $3 AND category_id = ANY($2::uuid[])
	`
	return s.queryPriorities(ctx, query, tenantID, categoryIDs, learnerID)
}

// GetOverrideMode implements store.PriorityStore.GetOverrideMode
// Tenants without a settings row get the default mode. An unrecognized
// stored value also falls back to the default rather than failing the
// session.
func (s *PostgresPriorityStore) GetOverrideMode(
	ctx context.Context,
	tenantID uuid.UUID,
) (domain.OverrideMode, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT override_mode
		FROM priority_settings
		WHERE tenant_id = $1
	`

	var raw string
	err := s.db.QueryRowContext(ctx, query, tenantID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DefaultOverrideMode, nil
		}
		log.Error("failed to get override mode",
			slog.String("error", err.Error()),
			slog.String("tenant_id", tenantID.String()))
		return "", err
	}

	mode, err := domain.ParseOverrideMode(raw)
	if err != nil {
		log.Warn("unrecognized override mode in settings, using default",
			slog.String("tenant_id", tenantID.String()),
			slog.String("override_mode", raw))
		return domain.DefaultOverrideMode, nil
	}

	return mode, nil
}

// queryPriorities runs a query whose result set is (category_id, priority)
// pairs and collects them into a map.
func (s *PostgresPriorityStore) queryPriorities(
	ctx context.Context,
	query string,
	tenantID uuid.UUID,
	categoryIDs []uuid.UUID,
	extraArgs ...interface{},
) (map[uuid.UUID]int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	priorities := make(map[uuid.UUID]int, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return priorities, nil
	}

	args := append([]interface{}{tenantID, uuidStrings(categoryIDs)}, extraArgs...)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query category priorities",
			slog.String("error", err.Error()),
			slog.String("tenant_id", tenantID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	for rows.Next() {
		var categoryID uuid.UUID
		var priority int
		if err := rows.Scan(&categoryID, &priority); err != nil {
			log.Error("failed to scan priority row", slog.String("error", err.Error()))
			return nil, err
		}
		priorities[categoryID] = priority
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return priorities, nil
}
