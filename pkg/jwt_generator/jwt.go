package jwt_generator

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"renthouse-auth/pkg/config"
)

//go:generate mockgen -source=jwt.go -destination=mocks/mock_jwt.go -package=mocks

type JwtGenerator interface {
	GenerateToken(userId, email, userType string, rememberMe bool) (string, error)
	VerifyToken(rawJwtToken string) (*Claims, error)
	// VerifyRefreshableToken accepts a token whose only defect is having
	// expired less than the configured grace period ago.
	VerifyRefreshableToken(rawJwtToken string) (*Claims, error)
	SessionLifetime(rememberMe bool) time.Duration
}

type jwtGenerator struct {
	secret       []byte
	issuer       string
	refreshGrace time.Duration
	now          Clock
	parser       *jwt.Parser
}

func NewJwtGenerator(jwtConfig config.JwtConfig) (JwtGenerator, error) {
	return NewJwtGeneratorWithClock(jwtConfig, SystemClock)
}

func NewJwtGeneratorWithClock(jwtConfig config.JwtConfig, clock Clock) (JwtGenerator, error) {
	if len(jwtConfig.Secret) < config.MinJwtSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", config.MinJwtSecretLength)
	}

	issuer := jwtConfig.Issuer
	if issuer == "" {
		issuer = config.DefaultJwtIssuer
	}

	return &jwtGenerator{
		secret:       jwtConfig.Secret,
		issuer:       issuer,
		refreshGrace: jwtConfig.RefreshGrace,
		now:          clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

func (jwtGenerator *jwtGenerator) SessionLifetime(rememberMe bool) time.Duration {
	if rememberMe {
		return SessionLifetimeRememberMe
	}
	return SessionLifetimeDefault
}

func (jwtGenerator *jwtGenerator) GenerateToken(userId, email, userType string, rememberMe bool) (string, error) {
	now := jwtGenerator.now()
	claims := Claims{
		UserId:     userId,
		Email:      email,
		UserType:   userType,
		RememberMe: rememberMe,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userId,
			Issuer:    jwtGenerator.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtGenerator.SessionLifetime(rememberMe))),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(jwtGenerator.secret)
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

func (jwtGenerator *jwtGenerator) VerifyToken(rawJwtToken string) (*Claims, error) {
	claims, err := jwtGenerator.parse(rawJwtToken)
	if err != nil {
		return nil, err
	}

	now := jwtGenerator.now()
	if !claims.VerifyExpiresAt(now, true) {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

func (jwtGenerator *jwtGenerator) VerifyRefreshableToken(rawJwtToken string) (*Claims, error) {
	claims, err := jwtGenerator.parse(rawJwtToken)
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt == nil {
		return nil, ErrTokenExpired
	}

	now := jwtGenerator.now()
	if claims.VerifyExpiresAt(now, true) {
		return claims, nil
	}

	if now.Sub(claims.ExpiresAt.Time) > jwtGenerator.refreshGrace {
		return nil, ErrRefreshGracePassed
	}

	return claims, nil
}

// parse checks signature, algorithm, issuer and not-before. Expiry is left to the callers.
func (jwtGenerator *jwtGenerator) parse(rawJwtToken string) (*Claims, error) {
	var claims Claims

	_, err := jwtGenerator.parser.ParseWithClaims(rawJwtToken, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("jwt token is not valid signature")
		}

		return jwtGenerator.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedToken, err.Error())
	}

	isValidIssuer := claims.VerifyIssuer(jwtGenerator.issuer, true)
	if !isValidIssuer {
		return nil, ErrAmbiguousIssuer
	}

	isTokenStarted := claims.VerifyNotBefore(jwtGenerator.now(), true)
	if !isTokenStarted {
		return nil, ErrTokenNotStarted
	}

	if claims.UserId == "" || claims.Email == "" {
		return nil, ErrMalformedToken
	}

	return &claims, nil
}
