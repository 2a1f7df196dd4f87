// Package auth provides JWT-based authentication for defectdesk-engine.
// It validates bearer tokens issued by the authentication provider and
// exposes the resulting actor identity to downstream handlers via the
// request context.
package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/defectdesk/defectdesk-engine/pkg/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// ClaimsKey is the context key for storing JWT claims.
	ClaimsKey contextKey = "claims"
	// TokenKey is the context key for storing the raw JWT token string.
	TokenKey contextKey = "token"
)

// Claims represents the JWT claims structure issued by the authentication
// provider. It embeds RegisteredClaims for standard JWT fields
// (sub, exp, iat) and adds the actor's role and username. The subject is
// the user's UUID.
type Claims struct {
	jwt.RegisteredClaims
	Role     models.Role `json:"role"`
	Username string      `json:"username,omitempty"`
}

// GetClaims retrieves JWT claims from the request context.
// Returns nil and false if claims are not present.
func GetClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*Claims)
	return claims, ok
}

// GetToken retrieves the raw JWT token string from the request context.
// Returns empty string and false if token is not present.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}
