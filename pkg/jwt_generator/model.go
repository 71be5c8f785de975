package jwt_generator

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	SessionLifetimeDefault    = 7 * 24 * time.Hour
	SessionLifetimeRememberMe = 30 * 24 * time.Hour
)

var (
	ErrMalformedToken     = errors.New("jwt token is malformed or has invalid signature")
	ErrAmbiguousIssuer    = errors.New("ambiguous jwt token issuer")
	ErrTokenExpired       = errors.New("expired jwt token")
	ErrTokenNotStarted    = errors.New("jwt token is not started")
	ErrRefreshGracePassed = errors.New("jwt token expired beyond refresh grace period")
)

type Claims struct {
	UserId     string `json:"userId"`
	Email      string `json:"email"`
	UserType   string `json:"userType"`
	RememberMe bool   `json:"rememberMe"`
	jwt.RegisteredClaims
}

// Clock returns the current time. Tests replace it to move tokens through their lifetime.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}
