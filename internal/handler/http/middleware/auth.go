package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/jwt"
)

type actorKey struct{}

// AuthRequired accepts verified access tokens and stores their actor in the request context.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, user.ErrInvalidActor)
			return
		}

		tokenType, ok := claims["type"].(string)
		if tokenType != "access" || !ok {
			response.HandleError(w, user.ErrInvalidActor)
			return
		}

		actor, err := jwt.ActorFromClaims(claims)
		if err != nil {
			response.HandleError(w, user.ErrInvalidActor)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor user.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor stored by AuthRequired.
func ActorFromContext(ctx context.Context) (user.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(user.Actor)
	return actor, ok
}
