package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	actor := user.Actor{ID: "hr-1", Name: "Meera", Role: user.RoleHR}

	token, expiresAt, err := svc.GenerateAccessToken(actor)
	require.NoError(t, err)
	assert.NotZero(t, expiresAt)

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := parsed.AsMap(context.Background())
	require.NoError(t, err)

	got, err := ActorFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, actor, got)
}

func TestGenerateAccessToken_BadExpiry(t *testing.T) {
	svc := NewJWTService("test-secret", "forever")

	_, _, err := svc.GenerateAccessToken(user.Actor{ID: "a", Role: user.RoleAdmin})
	assert.Error(t, err)
}

func TestSSEToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	actor := user.Actor{ID: "admin-1", Name: "Kiran", Role: user.RoleAdmin}

	token, expiresIn, err := svc.GenerateSSEToken(actor)
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	got, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, actor, got)

	access, _, err := svc.GenerateAccessToken(actor)
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err, "access tokens are not accepted as SSE tokens")

	other := NewJWTService("other-secret", "1h")
	_, err = other.ValidateSSEToken(token)
	assert.Error(t, err)
}

func TestActorFromClaims(t *testing.T) {
	_, err := ActorFromClaims(map[string]interface{}{"user_id": "u1", "role": "superuser"})
	assert.ErrorIs(t, err, ErrInvalidClaims)

	_, err = ActorFromClaims(map[string]interface{}{"role": "hr"})
	assert.ErrorIs(t, err, ErrInvalidClaims)

	actor, err := ActorFromClaims(map[string]interface{}{"user_id": "u1", "role": "employee"})
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, actor.Role)
}
