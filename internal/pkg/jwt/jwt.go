package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
)

const (
	tokenTypeAccess = "access"
	tokenTypeSSE    = "sse"
	sseTokenTTL     = 5 * time.Minute
)

var ErrInvalidClaims = errors.New("token is missing actor claims")

type Service interface {
	GenerateAccessToken(actor user.Actor) (token string, expiresAt int64, err error)
	GenerateSSEToken(actor user.Actor) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (user.Actor, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(actor user.Actor) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(actorClaims(actor, tokenTypeAccess, expiresAt))
	return tokenString, expiresAt, err
}

// GenerateSSEToken generates a short-lived token for SSE connections, which cannot send headers
func (j *JWTService) GenerateSSEToken(actor user.Actor) (token string, expiresIn int, err error) {
	expiresAt := time.Now().Add(sseTokenTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(actorClaims(actor, tokenTypeSSE, expiresAt))
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(sseTokenTTL.Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns its actor
func (j *JWTService) ValidateSSEToken(tokenString string) (user.Actor, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return user.Actor{}, err
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return user.Actor{}, err
	}
	if claims["type"] != tokenTypeSSE {
		return user.Actor{}, jwt.ErrInvalidJWT()
	}

	return ActorFromClaims(claims)
}

// ActorFromClaims reads user_id, name and role from verified token claims.
func ActorFromClaims(claims map[string]interface{}) (user.Actor, error) {
	id, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	name, _ := claims["name"].(string)

	if id == "" || !user.IsValidRole(role) {
		return user.Actor{}, ErrInvalidClaims
	}

	return user.Actor{ID: id, Name: name, Role: user.Role(role)}, nil
}

func actorClaims(actor user.Actor, tokenType string, expiresAt int64) map[string]interface{} {
	return map[string]interface{}{
		"user_id": actor.ID,
		"name":    actor.Name,
		"role":    string(actor.Role),
		"type":    tokenType,
		"exp":     expiresAt,
	}
}
