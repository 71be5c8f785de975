package oauth

import (
	"context"
	"errors"
	"strings"
)

const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

var (
	// ErrTokenRejected means the provider refused the token; the caller is not authenticated.
	ErrTokenRejected = errors.New("provider rejected token")
	// ErrEmailNotShared means the token is valid but the account did not grant email access.
	ErrEmailNotShared = errors.New("provider profile has no email")
)

// Profile is the identity a provider vouches for after a successful verification.
type Profile struct {
	Id      string
	Email   string
	Name    string
	Picture string
}

//go:generate mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks

type Provider interface {
	Name() string
	Verify(ctx context.Context, token string) (*Profile, error)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
