package auth

import "staffhub/internal/domain/models"

// JWTVerifier validates bearer tokens and extracts tenant claims. The
// middleware depends on this interface, not the JWKS implementation, so
// tests can substitute a static verifier.
type JWTVerifier interface {
	// VerifyToken parses and validates a token string. Invalid, expired
	// or mis-scoped tokens return an error.
	VerifyToken(tokenString string) (*models.TenantClaims, error)

	// Close releases verifier resources on shutdown.
	Close() error
}
