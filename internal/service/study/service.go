// Package study assembles study sessions: it resolves the learner's
// accessible card pool, asks the scheduler which cards are eligible, and
// returns a weighted, shuffled batch together with due/new counts.
package study

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/recallhq/recall-api/internal/domain"
	"github.com/recallhq/recall-api/internal/domain/scheduler"
)

// SessionRequest describes one study-session request. Exactly one of DeckID
// or the category/virtual-deck fields is typically set; when DeckID is
// present the other filters are ignored.
type SessionRequest struct {
	LearnerID   uuid.UUID
	TenantID    uuid.UUID
	DeckID      *uuid.UUID
	CategoryIDs []uuid.UUID
	VirtualDeck scheduler.VirtualDeck
	Limit       int
}

// SessionResult is the assembled session: the selected cards in study order
// plus the due/new counts over the learner's full pool before any
// virtual-deck narrowing.
type SessionResult struct {
	Cards    []*domain.Card
	TotalDue int
	TotalNew int
}

// Service builds study sessions for learners.
type Service interface {
	// BuildSession resolves the card pool named by the request, narrows it
	// through the scheduler, and returns up to Limit cards in weighted
	// shuffle order.
	//
	// Returns:
	//   - (*SessionResult, nil): the session, possibly with an empty card
	//     list when nothing is eligible
	//   - (nil, ErrDeckNotFound): the deck does not exist or is not owned
	//     by the learner within the tenant
	//   - (nil, ErrMissingTenant / ErrMissingLearner / ErrInvalidLimit):
	//     the request is malformed
	BuildSession(ctx context.Context, req SessionRequest) (*SessionResult, error)
}

// Common error types for the study service
var (
	// ErrMissingTenant indicates the request carries no tenant identity.
	ErrMissingTenant = errors.New("missing tenant context")

	// ErrMissingLearner indicates the request carries no learner identity.
	ErrMissingLearner = errors.New("missing learner identity")

	// ErrInvalidLimit indicates the requested session size is zero or negative.
	ErrInvalidLimit = errors.New("session limit must be positive")

	// ErrDeckNotFound indicates the requested deck does not exist or is not
	// accessible to the learner. Ownership failures are deliberately
	// indistinguishable from absence.
	ErrDeckNotFound = errors.New("deck not found")
)

// ServiceError wraps errors from the study service with additional context.
// This allows consumers to differentiate between different types of service
// errors using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "build_session")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewBuildSessionError returns a new ServiceError for the build_session operation.
func NewBuildSessionError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "build_session",
		Message:   message,
		Err:       err,
	}
}
