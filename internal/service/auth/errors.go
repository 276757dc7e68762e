package auth

import "errors"

// Common authentication errors.
var (
	// ErrInvalidToken is returned when a token is malformed, carries an
	// invalid signature, or fails validation for any non-specific reason.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token's expiry is in the past.
	ErrExpiredToken = errors.New("token expired")

	// ErrTokenNotYetValid is returned when a token's not-before is in the future.
	ErrTokenNotYetValid = errors.New("token not yet valid")

	// ErrWrongTokenType is returned when a token is valid but not an access token.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrMissingTenantClaim is returned when a valid token carries no tenant ID.
	ErrMissingTenantClaim = errors.New("token missing tenant claim")
)
