package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardTenantIDEmpty is returned when a card's tenant ID is empty or nil.
	ErrCardTenantIDEmpty = errors.New("card tenant ID cannot be empty")

	// ErrCardOwnerIDEmpty is returned when a card's owner ID is empty or nil.
	ErrCardOwnerIDEmpty = errors.New("card owner ID cannot be empty")

	// ErrCardCategoryIDEmpty is returned when a card's category ID is empty or nil.
	ErrCardCategoryIDEmpty = errors.New("card category ID cannot be empty")

	// ErrCardQuestionEmpty is returned when a card's question text is empty.
	ErrCardQuestionEmpty = errors.New("card question cannot be empty")

	// ErrCardDifficultyInvalid is returned when a card's difficulty is outside [1,5].
	ErrCardDifficultyInvalid = errors.New("card difficulty must be between 1 and 5")
)

// Difficulty bounds for cards.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Card represents a flashcard belonging to a tenant's content library.
// CategoryName is a denormalized read-model field populated by store joins
// for display purposes; it is never persisted on the card row itself.
type Card struct {
	ID           uuid.UUID `json:"id"`
	TenantID     uuid.UUID `json:"tenant_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	Tags         []string  `json:"tags,omitempty"`
	Difficulty   int       `json:"difficulty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewCard creates a new Card owned by the given learner within a tenant.
// It generates a new UUID for the card ID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewCard(
	tenantID, ownerID, categoryID uuid.UUID,
	question, answer string,
	tags []string,
	difficulty int,
) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:         uuid.New(),
		TenantID:   tenantID,
		OwnerID:    ownerID,
		CategoryID: categoryID,
		Question:   question,
		Answer:     answer,
		Tags:       tags,
		Difficulty: difficulty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.TenantID == uuid.Nil {
		return ErrCardTenantIDEmpty
	}

	if c.OwnerID == uuid.Nil {
		return ErrCardOwnerIDEmpty
	}

	if c.CategoryID == uuid.Nil {
		return ErrCardCategoryIDEmpty
	}

	if c.Question == "" {
		return ErrCardQuestionEmpty
	}

	if c.Difficulty < MinDifficulty || c.Difficulty > MaxDifficulty {
		return ErrCardDifficultyInvalid
	}

	return nil
}
