package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/recallhq/recall-api/internal/domain"
)

// PriorityStore defines access to category priority settings and the
// tenant-wide override policy.
type PriorityStore interface {
	// GetAdminPriorities returns the admin-set priority per category for
	// the tenant, keyed by category ID. Categories without an admin setting
	// are absent from the map.
	GetAdminPriorities(
		ctx context.Context,
		tenantID uuid.UUID,
		categoryIDs []uuid.UUID,
	) (map[uuid.UUID]int, error)

	// GetUserPriorities returns the learner-set priority per category for
	// the tenant, keyed by category ID. Categories the learner never
	// prioritized are absent from the map.
	GetUserPriorities(
		ctx context.Context,
		tenantID, learnerID uuid.UUID,
		categoryIDs []uuid.UUID,
	) (map[uuid.UUID]int, error)

	// GetOverrideMode returns the tenant's priority override policy.
	// Tenants that never configured one get domain.DefaultOverrideMode.
	GetOverrideMode(ctx context.Context, tenantID uuid.UUID) (domain.OverrideMode, error)
}
