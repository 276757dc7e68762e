package domain

import (
	"errors"

	"github.com/google/uuid"
)

// OverrideMode is a tenant-level policy deciding how admin-set and
// learner-set category priorities combine into one effective priority.
type OverrideMode string

// Possible override mode values
const (
	OverrideModeUserWins  OverrideMode = "USER_OVERRIDES_ADMIN"
	OverrideModeAdminWins OverrideMode = "ADMIN_OVERRIDES_USER"
	OverrideModeAdminOnly OverrideMode = "ADMIN_ONLY"
	OverrideModeUserOnly  OverrideMode = "USER_ONLY"
)

// DefaultOverrideMode applies when a tenant has never configured a policy.
const DefaultOverrideMode = OverrideModeUserWins

// Priority scale bounds for category priorities.
const (
	MinPriority = 1
	MaxPriority = 10
)

// Common validation errors for priorities
var (
	ErrInvalidOverrideMode    = errors.New("invalid priority override mode")
	ErrPriorityOutOfRange     = errors.New("priority must be between 1 and 10")
	ErrPriorityCategoryEmpty  = errors.New("priority category ID cannot be empty")
	ErrPriorityTenantIDEmpty  = errors.New("priority tenant ID cannot be empty")
	ErrPriorityLearnerIDEmpty = errors.New("priority learner ID cannot be empty")
)

// Valid reports whether the mode is one of the four known policies.
func (m OverrideMode) Valid() bool {
	switch m {
	case OverrideModeUserWins, OverrideModeAdminWins, OverrideModeAdminOnly, OverrideModeUserOnly:
		return true
	default:
		return false
	}
}

// ParseOverrideMode converts a stored string into an OverrideMode,
// falling back to the tenant default for empty input.
func ParseOverrideMode(s string) (OverrideMode, error) {
	if s == "" {
		return DefaultOverrideMode, nil
	}

	mode := OverrideMode(s)
	if !mode.Valid() {
		return "", ErrInvalidOverrideMode
	}
	return mode, nil
}

// CategoryPriority is one actor's priority setting for a category within a
// tenant. LearnerID is nil for admin-set priorities and non-nil for
// learner-set ones.
type CategoryPriority struct {
	TenantID   uuid.UUID  `json:"tenant_id"`
	CategoryID uuid.UUID  `json:"category_id"`
	LearnerID  *uuid.UUID `json:"learner_id,omitempty"`
	Priority   int        `json:"priority"`
}

// Validate checks if the CategoryPriority has valid data.
func (p *CategoryPriority) Validate() error {
	if p.TenantID == uuid.Nil {
		return ErrPriorityTenantIDEmpty
	}

	if p.CategoryID == uuid.Nil {
		return ErrPriorityCategoryEmpty
	}

	if p.LearnerID != nil && *p.LearnerID == uuid.Nil {
		return ErrPriorityLearnerIDEmpty
	}

	if p.Priority < MinPriority || p.Priority > MaxPriority {
		return ErrPriorityOutOfRange
	}

	return nil
}
