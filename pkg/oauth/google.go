package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"google.golang.org/api/idtoken"

	"renthouse-auth/pkg/config"
)

// IdTokenValidator has the signature of idtoken.Validate.
type IdTokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type googleProvider struct {
	clientId string
	validate IdTokenValidator
}

func NewGoogleProvider(googleConfig config.GoogleConfig) Provider {
	return NewGoogleProviderWithValidator(googleConfig, idtoken.Validate)
}

func NewGoogleProviderWithValidator(googleConfig config.GoogleConfig, validate IdTokenValidator) Provider {
	return &googleProvider{
		clientId: googleConfig.ClientId,
		validate: validate,
	}
}

func (p *googleProvider) Name() string {
	return ProviderGoogle
}

func (p *googleProvider) Verify(ctx context.Context, token string) (*Profile, error) {
	if token == "" {
		return nil, ErrTokenRejected
	}

	payload, err := p.validate(ctx, token, p.clientId)
	if err != nil {
		if isTransportError(err) {
			return nil, fmt.Errorf("google token verification failed: %w", err)
		}
		return nil, errors.Join(ErrTokenRejected, err)
	}

	email := stringClaim(payload.Claims, "email")
	if email == "" {
		return nil, ErrEmailNotShared
	}

	// Accounts are merged by email, so an unverified address could take over another account.
	if !boolClaim(payload.Claims, "email_verified") {
		return nil, fmt.Errorf("%w: email is not verified", ErrTokenRejected)
	}

	return &Profile{
		Id:      payload.Subject,
		Email:   NormalizeEmail(email),
		Name:    stringClaim(payload.Claims, "name"),
		Picture: stringClaim(payload.Claims, "picture"),
	}, nil
}

// isTransportError reports failures to reach Google, such as fetching its signing certs.
func isTransportError(err error) bool {
	var urlError *url.Error
	var netError net.Error
	return errors.As(err, &urlError) ||
		errors.As(err, &netError) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

func stringClaim(claims map[string]interface{}, key string) string {
	value, _ := claims[key].(string)
	return value
}

func boolClaim(claims map[string]interface{}, key string) bool {
	switch value := claims[key].(type) {
	case bool:
		return value
	case string:
		parsed, _ := strconv.ParseBool(value)
		return parsed
	default:
		return false
	}
}
