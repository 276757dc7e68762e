package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Progress
var (
	ErrEmptyProgressLearnerID = errors.New("progress learner ID cannot be empty")
	ErrEmptyProgressCardID    = errors.New("progress card ID cannot be empty")
	ErrInvalidExposureCount   = errors.New("exposure count must be greater than or equal to 0")
	ErrInvalidMasteryScore    = errors.New("mastery score must be in [0,1]")
)

// Progress tracks a learner's spaced repetition state for a specific card.
// At most one record exists per (learner, card) pair; absence of a record
// means the card has never been studied and is treated as immediately due.
type Progress struct {
	LearnerID      uuid.UUID `json:"learner_id"`
	CardID         uuid.UUID `json:"card_id"`
	LastReviewedAt time.Time `json:"last_reviewed_at"` // When the card was last reviewed
	NextDueAt      time.Time `json:"next_due_at"`      // When the card becomes due again
	ExposureCount  int       `json:"exposure_count"`   // Total number of reviews
	MasteryScore   float64   `json:"mastery_score"`    // Retention estimate in [0,1]
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewProgress creates a fresh progress record for a learner and card.
// Initial settings make the card available for review immediately.
func NewProgress(learnerID, cardID uuid.UUID) (*Progress, error) {
	now := time.Now().UTC()
	progress := &Progress{
		LearnerID:      learnerID,
		CardID:         cardID,
		LastReviewedAt: time.Time{}, // Zero time
		NextDueAt:      now,         // Due immediately
		ExposureCount:  0,
		MasteryScore:   0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the Progress has valid data.
// Returns an error if any field fails validation.
func (p *Progress) Validate() error {
	if p.LearnerID == uuid.Nil {
		return ErrEmptyProgressLearnerID
	}

	if p.CardID == uuid.Nil {
		return ErrEmptyProgressCardID
	}

	if p.ExposureCount < 0 {
		return ErrInvalidExposureCount
	}

	if p.MasteryScore < 0 || p.MasteryScore > 1 {
		return ErrInvalidMasteryScore
	}

	return nil
}
