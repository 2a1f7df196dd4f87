package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/defectdesk/defectdesk-engine/pkg/apperrors"
	"github.com/defectdesk/defectdesk-engine/pkg/models"
)

// Actor is the authenticated identity performing an operation. It is the
// explicit session-context object: created by the middleware when a token
// validates, discarded when the request ends.
type Actor struct {
	UserID   uuid.UUID
	Role     models.Role
	Username string
}

// GetActor extracts the authenticated actor from JWT claims in the context.
// Returns false if the request is unauthenticated or the subject is not a
// valid UUID.
func GetActor(ctx context.Context) (Actor, bool) {
	claims, ok := GetClaims(ctx)
	if !ok || claims == nil {
		return Actor{}, false
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Actor{}, false
	}

	return Actor{
		UserID:   userID,
		Role:     claims.Role,
		Username: claims.Username,
	}, true
}

// RequireActor extracts the authenticated actor from context and returns
// ErrUnauthenticated if not found. Use this in services where an actor is
// required.
func RequireActor(ctx context.Context) (Actor, error) {
	actor, ok := GetActor(ctx)
	if !ok {
		return Actor{}, fmt.Errorf("%w: no actor in context", apperrors.ErrUnauthenticated)
	}
	return actor, nil
}

// WithActor returns a context carrying claims for the given actor.
// Intended for tests and internal calls that bypass the HTTP middleware.
func WithActor(ctx context.Context, actor Actor) context.Context {
	claims := &Claims{
		Role:     actor.Role,
		Username: actor.Username,
	}
	claims.Subject = actor.UserID.String()
	return context.WithValue(ctx, ClaimsKey, claims)
}
