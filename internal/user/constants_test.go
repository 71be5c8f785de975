//go:build unit || integration

package user

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renthouse-auth/pkg/cerror"
)

const (
	TestUserId       = "0b6e1f0e-2d7c-4c5b-9a43-7f3f5a1c2d90"
	TestEmail        = "tenant@renthouse.com.bd"
	TestPassword     = "s3cret-pass"
	TestFirstName    = "Rahim"
	TestLastName     = "Uddin"
	TestPhoneNumber  = "+8801712345678"
	TestNidNumber    = "1234567890"
	TestToken        = "header.payload.signature"
	TestProviderId   = "109876543210"
	TestProfileImage = "https://lh3.googleusercontent.com/a/photo.jpg"
)

var TestNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testClock() time.Time {
	return TestNow
}

func assertCustomError(t *testing.T, err error, httpStatusCode int, message string) {
	t.Helper()

	var cerr *cerror.CustomError
	require.True(t, errors.As(err, &cerr), "expected custom error, got %v", err)
	assert.Equal(t, httpStatusCode, cerr.HttpStatusCode)
	assert.Equal(t, message, cerr.ClientMessage())
}
