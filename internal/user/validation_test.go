//go:build unit

package user

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renthouse-auth/pkg/cerror"
)

func TestValidator_Struct(t *testing.T) {
	validator := NewValidator()

	t.Run("should accept valid payload", func(t *testing.T) {
		err := validator.Struct(RegisterPayload{
			FirstName:   TestFirstName,
			Email:       TestEmail,
			PhoneNumber: TestPhoneNumber,
			NidNumber:   TestNidNumber,
			Password:    TestPassword,
			UserType:    UserTypeAgent,
		})

		assert.NoError(t, err)
	})

	t.Run("should accept every nid length", func(t *testing.T) {
		for _, nidNumber := range []string{"1234567890", "1234567890123", "12345678901234567"} {
			err := validator.Struct(RegisterPayload{Email: TestEmail, Password: TestPassword, NidNumber: nidNumber})
			assert.NoError(t, err, nidNumber)
		}
	})

	t.Run("should reject malformed fields with field names from json tags", func(t *testing.T) {
		testCases := map[string]RegisterPayload{
			"phoneNumber": {Email: TestEmail, Password: TestPassword, PhoneNumber: "01712-345678"},
			"nidNumber":   {Email: TestEmail, Password: TestPassword, NidNumber: "123456789012"},
			"userType":    {Email: TestEmail, Password: TestPassword, UserType: UserTypeAdmin},
			"firstName":   {Email: TestEmail, Password: TestPassword, FirstName: strings.Repeat("a", 51)},
			"password":    {Email: TestEmail, Password: "12345"},
			"email":       {Email: TestInvalidMail, Password: TestPassword},
		}

		for field, payload := range testCases {
			err := validator.Struct(payload)

			var cerr *cerror.CustomError
			require.True(t, errors.As(err, &cerr), field)
			assert.Equal(t, cerror.MessageValidationFailed, cerr.Message)
			assert.Len(t, cerr.Fields, 1, field)
			assert.Contains(t, cerr.Fields, field)
		}
	})

	t.Run("should describe rule in message", func(t *testing.T) {
		err := validator.Struct(RegisterPayload{})

		var cerr *cerror.CustomError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, map[string]string{
			"email":    "is required",
			"password": "is required",
		}, cerr.Fields)
	})
}

func TestNormalizeRegisterPayload(t *testing.T) {
	payload := RegisterPayload{
		FirstName:   "  Rahim ",
		Email:       " Tenant@RentHouse.COM.bd",
		PhoneNumber: " +8801712345678 ",
		UserType:    " Owner",
	}

	normalizeRegisterPayload(&payload)

	assert.Equal(t, "Rahim", payload.FirstName)
	assert.Equal(t, TestEmail, payload.Email)
	assert.Equal(t, TestPhoneNumber, payload.PhoneNumber)
	assert.Equal(t, UserTypeOwner, payload.UserType)
}

func TestDuplicateKeyIndex(t *testing.T) {
	testCases := map[string]string{
		"E11000 duplicate key error collection: renthouse.users index: email_unique dup key: { email: \"a@b.c\" }":             IndexEmail,
		"E11000 duplicate key error collection: renthouse.users index: nidNumber_unique dup key: { nidNumber: \"1234567890\" }": IndexNidNumber,
		"E11000 duplicate key error collection: renthouse.users index: phoneNumber_unique dup key: { phoneNumber: \"+880\" }":    IndexPhoneNumber,
		"E11000 duplicate key error collection: renthouse.users index: _id_ dup key: { _id: \"x\" }":                             "",
	}

	for message, expected := range testCases {
		assert.Equal(t, expected, duplicateKeyIndex(errors.New(message)))
	}
}
