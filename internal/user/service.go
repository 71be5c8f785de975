package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"

	"renthouse-auth/pkg/cerror"
	"renthouse-auth/pkg/jwt_generator"
	"renthouse-auth/pkg/logger"
	"renthouse-auth/pkg/oauth"
)

//go:generate mockgen -source=service.go -destination=mock_service_test.go -package=user

type Service interface {
	Register(ctx context.Context, payload *RegisterPayload) (*UserDocument, error)
	Login(ctx context.Context, payload *LoginPayload) (*Session, error)
	LoginWithProvider(ctx context.Context, provider, token string, rememberMe bool) (*Session, error)
	RefreshToken(ctx context.Context, rawToken string) (*Session, error)
	GetUser(ctx context.Context, userId string) (*UserDocument, error)
}

type service struct {
	userRepository Repository
	jwtGenerator   jwt_generator.JwtGenerator
	providers      map[string]oauth.Provider
	now            jwt_generator.Clock
	hashCost       int

	dummyHashOnce sync.Once
	dummyHash     []byte
}

// NewService skips nil providers, so a login through an unconfigured provider answers 503.
func NewService(
	userRepository Repository,
	jwtGenerator jwt_generator.JwtGenerator,
	providers ...oauth.Provider,
) Service {
	return newService(userRepository, jwtGenerator, jwt_generator.SystemClock, PasswordHashCost, providers...)
}

func newService(
	userRepository Repository,
	jwtGenerator jwt_generator.JwtGenerator,
	clock jwt_generator.Clock,
	hashCost int,
	providers ...oauth.Provider,
) *service {
	providerMap := make(map[string]oauth.Provider, len(providers))
	for _, provider := range providers {
		if provider != nil {
			providerMap[provider.Name()] = provider
		}
	}

	return &service{
		userRepository: userRepository,
		jwtGenerator:   jwtGenerator,
		providers:      providerMap,
		now:            clock,
		hashCost:       hashCost,
	}
}

func (s *service) Register(ctx context.Context, payload *RegisterPayload) (*UserDocument, error) {
	normalizeRegisterPayload(payload)

	uniqueFields := []struct {
		field string
		value string
		index string
	}{
		{FieldEmail, payload.Email, IndexEmail},
		{FieldNidNumber, payload.NidNumber, IndexNidNumber},
		{FieldPhoneNumber, payload.PhoneNumber, IndexPhoneNumber},
	}
	for _, uniqueField := range uniqueFields {
		if uniqueField.value == "" {
			continue
		}

		isTaken, err := s.userRepository.IsFieldTaken(ctx, uniqueField.field, uniqueField.value)
		if err != nil {
			return nil, err
		}
		if isTaken {
			return nil, conflictError(uniqueField.index)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), s.hashCost)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate hash from password",
			zap.Error(err),
		)
	}

	userType := payload.UserType
	if userType == "" {
		userType = UserTypeUser
	}

	now := s.now()
	user := &UserDocument{
		Id:           uuid.New().String(),
		Email:        payload.Email,
		Password:     string(hashedPassword),
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Name:         strings.TrimSpace(payload.FirstName + " " + payload.LastName),
		UserType:     userType,
		AuthProvider: AuthProviderLocal,
		PhoneNumber:  payload.PhoneNumber,
		NidNumber:    payload.NidNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.userRepository.InsertUser(ctx, user)
	if err != nil {
		var duplicateKeyError *DuplicateKeyError
		if errors.As(err, &duplicateKeyError) {
			return nil, conflictError(duplicateKeyError.Index)
		}
		return nil, err
	}

	return user, nil
}

func (s *service) Login(ctx context.Context, payload *LoginPayload) (*Session, error) {
	email := oauth.NormalizeEmail(payload.Email)

	user, err := s.userRepository.FindUserWithEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user == nil || user.Password == "" {
		// Unknown accounts still pay for one comparison.
		_ = bcrypt.CompareHashAndPassword(s.timingHash(), []byte(payload.Password))
		return nil, cerror.ErrorInvalidCredentials.WithFields(zap.String("email", email))
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password))
	if err != nil {
		return nil, cerror.ErrorInvalidCredentials.WithFields(zap.String("userId", user.Id))
	}

	now := s.now()
	err = s.userRepository.RecordLogin(ctx, user.Id, now)
	if err != nil {
		logger.FromContext(ctx).Warnw("failed to record login metadata", zap.String("userId", user.Id), zap.Error(err))
	} else {
		user.LoginCount++
		user.LastLogin = &now
	}

	return s.newSession(user, false)
}

func (s *service) LoginWithProvider(ctx context.Context, providerName, token string, rememberMe bool) (*Session, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		return nil, cerror.NewError(
			fiber.StatusServiceUnavailable,
			"authentication provider is not configured",
			zap.String("provider", providerName),
		).
			SetSeverity(zapcore.WarnLevel).
			SetMessage(fmt.Sprintf(MessageProviderDisabled, providerTitle(providerName)))
	}

	profile, err := provider.Verify(ctx, token)
	if err != nil {
		return nil, providerError(providerName, err)
	}

	user, err := s.userRepository.FindUserWithEmail(ctx, profile.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		var isCreated bool
		user, isCreated, err = s.createProviderUser(ctx, providerName, profile)
		if err != nil {
			return nil, err
		}
		if isCreated {
			return s.newSession(user, rememberMe)
		}
	}

	s.attachProvider(ctx, user, providerName, profile)
	return s.newSession(user, rememberMe)
}

func (s *service) RefreshToken(ctx context.Context, rawToken string) (*Session, error) {
	if rawToken == "" {
		return nil, cerror.ErrorMissingToken
	}

	claims, err := s.jwtGenerator.VerifyRefreshableToken(rawToken)
	if err != nil {
		return nil, cerror.ErrorInvalidToken.WithFields(zap.Error(err))
	}

	user, err := s.userRepository.TouchSession(ctx, claims.UserId, claims.Email, s.now())
	if err != nil {
		return nil, err
	}

	return s.newSession(user, claims.RememberMe)
}

func (s *service) GetUser(ctx context.Context, userId string) (*UserDocument, error) {
	return s.userRepository.FindUserWithId(ctx, userId)
}

// createProviderUser reports isCreated=false when a concurrent request inserted the
// same email first; the stored user is returned instead.
func (s *service) createProviderUser(
	ctx context.Context,
	providerName string,
	profile *oauth.Profile,
) (*UserDocument, bool, error) {
	now := s.now()
	user := &UserDocument{
		Id:           uuid.New().String(),
		Email:        profile.Email,
		Name:         profile.Name,
		ProfileImage: profile.Picture,
		UserType:     UserTypeUser,
		AuthProvider: providerName,
		LoginCount:   1,
		LastLogin:    &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	setProviderId(user, providerName, profile.Id)

	err := s.userRepository.InsertUser(ctx, user)
	if err == nil {
		return user, true, nil
	}

	var duplicateKeyError *DuplicateKeyError
	if !errors.As(err, &duplicateKeyError) {
		return nil, false, err
	}

	existingUser, err := s.userRepository.FindUserWithEmail(ctx, profile.Email)
	if err != nil {
		return nil, false, err
	}
	if existingUser == nil {
		return nil, false, cerror.NewError(
			fiber.StatusInternalServerError,
			"user is missing after duplicate key error",
			zap.String("index", duplicateKeyError.Index),
			zap.Error(duplicateKeyError),
		)
	}

	return existingUser, false, nil
}

// attachProvider never fails the login. A lost update only costs bookkeeping.
func (s *service) attachProvider(ctx context.Context, user *UserDocument, providerName string, profile *oauth.Profile) {
	now := s.now()
	err := s.userRepository.AttachProvider(ctx, user.Id, ProviderAttachment{
		Provider:     providerName,
		ProviderId:   profile.Id,
		ProfileImage: profile.Picture,
		At:           now,
	})
	if err != nil {
		logger.FromContext(ctx).Warnw(
			"failed to attach provider to user",
			zap.String("userId", user.Id),
			zap.String("provider", providerName),
			zap.Error(err),
		)
		return
	}

	setProviderId(user, providerName, profile.Id)
	if profile.Picture != "" {
		user.ProfileImage = profile.Picture
	}
	user.LoginCount++
	if user.LastLogin == nil || now.After(*user.LastLogin) {
		user.LastLogin = &now
	}
}

func (s *service) newSession(user *UserDocument, rememberMe bool) (*Session, error) {
	token, err := s.jwtGenerator.GenerateToken(user.Id, user.Email, user.UserType, rememberMe)
	if err != nil {
		return nil, cerror.ErrorGenerateToken.WithFields(zap.String("userId", user.Id), zap.Error(err))
	}

	return &Session{
		User:  user,
		Token: token,
	}, nil
}

func (s *service) timingHash() []byte {
	s.dummyHashOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.New().String()), s.hashCost)
	})
	return s.dummyHash
}

func conflictError(index string) error {
	message, ok := conflictMessages[index]
	if !ok {
		message = MessageUserExists
	}

	return cerror.NewError(
		fiber.StatusBadRequest,
		"user already exists",
		zap.String("index", index),
	).
		SetSeverity(zapcore.WarnLevel).
		SetMessage(message)
}

func providerError(providerName string, err error) error {
	switch {
	case errors.Is(err, oauth.ErrEmailNotShared):
		return cerror.NewError(
			fiber.StatusBadRequest,
			"provider profile has no email",
			zap.String("provider", providerName),
		).
			SetSeverity(zapcore.WarnLevel).
			SetMessage(MessageEmailRequired)
	case errors.Is(err, oauth.ErrTokenRejected):
		return cerror.ErrorInvalidToken.WithFields(zap.String("provider", providerName), zap.Error(err))
	default:
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while verify provider token",
			zap.String("provider", providerName),
			zap.Error(err),
		)
	}
}

func setProviderId(user *UserDocument, providerName, providerId string) {
	switch providerName {
	case AuthProviderGoogle:
		user.GoogleId = providerId
	case AuthProviderFacebook:
		user.FacebookId = providerId
	}
}

func providerTitle(providerName string) string {
	if providerName == "" {
		return "Provider"
	}
	return strings.ToUpper(providerName[:1]) + providerName[1:]
}
