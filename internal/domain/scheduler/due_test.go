package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/recallhq/recall-api/internal/domain"
)

func TestIsDue(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	progressDueAt := func(due time.Time) *domain.Progress {
		return &domain.Progress{
			LearnerID: uuid.New(),
			CardID:    uuid.New(),
			NextDueAt: due,
		}
	}

	testCases := []struct {
		name     string
		progress *domain.Progress
		expected bool
	}{
		{
			name:     "absent progress is always due",
			progress: nil,
			expected: true,
		},
		{
			name:     "due in the past",
			progress: progressDueAt(now.Add(-24 * time.Hour)),
			expected: true,
		},
		{
			name:     "due exactly now",
			progress: progressDueAt(now),
			expected: true,
		},
		{
			name:     "due in the future",
			progress: progressDueAt(now.Add(time.Hour)),
			expected: false,
		},
		{
			name:     "zero-value due timestamp",
			progress: progressDueAt(time.Time{}),
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsDue(tc.progress, now); got != tc.expected {
				t.Errorf("IsDue() = %v, want %v", got, tc.expected)
			}
		})
	}
}
