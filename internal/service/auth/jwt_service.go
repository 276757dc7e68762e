// Package auth validates the access tokens minted by the platform's
// identity service. Registration, login, and refresh flows live upstream;
// this service only needs to establish the learner and tenant identity
// behind a request.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for issuing and validating JWT access tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the given learner
	// within a tenant. Primarily used by tests and tooling; production
	// tokens come from the identity service sharing the same secret.
	GenerateToken(ctx context.Context, learnerID, tenantID uuid.UUID) (string, error)

	// ValidateToken validates the provided access token string and extracts
	// the claims. Returns the claims with the learner and tenant identity
	// if the token is valid, or an error if validation fails (expired,
	// invalid signature, wrong type, missing tenant).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated identity carried by an access token.
type Claims struct {
	// LearnerID is the unique identifier of the learner the token was issued for.
	LearnerID uuid.UUID `json:"uid,omitempty"`

	// TenantID identifies the tenant the learner is acting within.
	TenantID uuid.UUID `json:"tid,omitempty"`

	// TokenType indicates the purpose of the token; only "access" is accepted.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
