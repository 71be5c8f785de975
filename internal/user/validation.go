package user

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"renthouse-auth/pkg/cerror"
	"renthouse-auth/pkg/oauth"
)

var (
	phoneNumberPattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	// Bangladesh NIDs are 10 (smart card), 13 or 17 (legacy) digits long.
	nidNumberPattern = regexp.MustCompile(`^([0-9]{10}|[0-9]{13}|[0-9]{17})$`)
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneNumberPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("nid", func(fl validator.FieldLevel) bool {
		return nidNumberPattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: validate}
}

// Struct reports every violated field at once.
func (v *Validator) Struct(payload interface{}) error {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return cerror.ErrorBadRequest.WithFields(zap.Error(err))
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = describe(fieldError)
	}

	return cerror.NewError(
		fiber.StatusBadRequest,
		"request payload validation failed",
		zap.Any("fields", fields),
	).
		SetSeverity(zapcore.WarnLevel).
		SetMessage(cerror.MessageValidationFailed).
		SetFields(fields)
}

func describe(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fieldError.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldError.Param())
	case "phone":
		return "must be a valid phone number"
	case "nid":
		return "must be a 10, 13 or 17 digit NID number"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fieldError.Param(), " ", ", "))
	default:
		return "is invalid"
	}
}

func normalizeRegisterPayload(payload *RegisterPayload) {
	payload.Email = oauth.NormalizeEmail(payload.Email)
	payload.FirstName = strings.TrimSpace(payload.FirstName)
	payload.LastName = strings.TrimSpace(payload.LastName)
	payload.PhoneNumber = strings.TrimSpace(payload.PhoneNumber)
	payload.NidNumber = strings.TrimSpace(payload.NidNumber)
	payload.UserType = strings.ToLower(strings.TrimSpace(payload.UserType))
}
