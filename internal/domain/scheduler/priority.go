package scheduler

import (
	"github.com/recallhq/recall-api/internal/domain"
)

// ResolvePriority combines an admin-set and a learner-set category priority
// under the tenant's override mode into a single effective priority.
//
// A nil pointer means that actor never set a priority for the category.
// When the mode leaves no applicable setting, the configured default
// priority applies. The result is always within [1,10]; out-of-range stored
// values are clamped rather than rejected since the scheduler treats its
// inputs as immutable snapshots it cannot repair.
func ResolvePriority(admin, user *int, mode domain.OverrideMode, params *Params) int {
	var result int

	switch mode {
	case domain.OverrideModeAdminOnly:
		if admin != nil {
			result = *admin
		} else {
			result = params.DefaultPriority
		}

	case domain.OverrideModeUserOnly:
		if user != nil {
			result = *user
		} else {
			result = params.DefaultPriority
		}

	case domain.OverrideModeAdminWins:
		switch {
		case admin != nil:
			result = *admin
		case user != nil:
			result = *user
		default:
			result = params.DefaultPriority
		}

	case domain.OverrideModeUserWins:
		switch {
		case user != nil:
			result = *user
		case admin != nil:
			result = *admin
		default:
			result = params.DefaultPriority
		}

	default:
		// Unknown modes behave like the tenant default policy.
		return ResolvePriority(admin, user, domain.DefaultOverrideMode, params)
	}

	return clampPriority(result)
}

func clampPriority(p int) int {
	if p < domain.MinPriority {
		return domain.MinPriority
	}
	if p > domain.MaxPriority {
		return domain.MaxPriority
	}
	return p
}
