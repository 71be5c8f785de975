package user

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"renthouse-auth/pkg/cerror"
	"renthouse-auth/pkg/jwt_generator"
	"renthouse-auth/pkg/logger"
	"renthouse-auth/pkg/server"
	"renthouse-auth/pkg/session"
)

type handler struct {
	userService  Service
	jwtGenerator jwt_generator.JwtGenerator
	validator    *Validator
	rateLimiter  fiber.Handler
}

// NewHandler mounts rateLimiter in front of the public auth endpoints; nil disables it.
func NewHandler(userService Service, jwtGenerator jwt_generator.JwtGenerator, rateLimiter fiber.Handler) server.Handler {
	if rateLimiter == nil {
		rateLimiter = func(ctx *fiber.Ctx) error {
			return ctx.Next()
		}
	}

	return &handler{
		userService:  userService,
		jwtGenerator: jwtGenerator,
		validator:    NewValidator(),
		rateLimiter:  rateLimiter,
	}
}

func (h *handler) RegisterRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")
	auth.Post("/register", h.rateLimiter, h.Register)
	auth.Post("/login", h.rateLimiter, h.Login)
	auth.Post("/google", h.rateLimiter, h.GoogleLogin)
	auth.Post("/facebook", h.rateLimiter, h.FacebookLogin)
	auth.Post("/refresh", h.rateLimiter, h.RefreshToken)
	auth.Get("/me", session.Middleware(h.jwtGenerator), h.Me)

	users := app.Group("/api/users", session.Middleware(h.jwtGenerator), session.RequireRole(UserTypeAdmin))
	users.Get("/:userId", h.GetUser)
}

func (h *handler) Register(ctx *fiber.Ctx) error {
	log := logger.With(ctx, zap.String("eventName", "registerWithEmail"))

	var payload RegisterPayload
	err := ctx.BodyParser(&payload)
	if err != nil {
		return cerror.ErrorBadRequest.WithFields(zap.Error(err))
	}

	normalizeRegisterPayload(&payload)
	err = h.validator.Struct(payload)
	if err != nil {
		return err
	}

	user, err := h.userService.Register(ctx.Context(), &payload)
	if err != nil {
		return err
	}

	log.Infow(logger.EventFinishedSuccessfully, zap.String("userId", user.Id))
	return ctx.
		Status(fiber.StatusCreated).
		JSON(SessionResponse{
			Message: MessageRegistered,
			User:    user,
		})
}

func (h *handler) Login(ctx *fiber.Ctx) error {
	log := logger.With(ctx, zap.String("eventName", "loginWithEmail"))

	var payload LoginPayload
	err := ctx.BodyParser(&payload)
	if err != nil {
		return cerror.ErrorBadRequest.WithFields(zap.Error(err))
	}

	payload.Email = strings.TrimSpace(payload.Email)
	userSession, err := h.userService.Login(ctx.Context(), &payload)
	if err != nil {
		return err
	}

	log.Infow(logger.EventFinishedSuccessfully, zap.String("userId", userSession.User.Id))
	return ctx.
		Status(fiber.StatusOK).
		JSON(SessionResponse{
			Message: MessageLoginSuccessful,
			User:    userSession.User,
			Token:   userSession.Token,
		})
}

func (h *handler) GoogleLogin(ctx *fiber.Ctx) error {
	logger.With(ctx, zap.String("eventName", "loginWithGoogle"))

	var payload GoogleLoginPayload
	err := ctx.BodyParser(&payload)
	if err != nil {
		return cerror.ErrorBadRequest.WithFields(zap.Error(err))
	}

	err = h.validator.Struct(payload)
	if err != nil {
		return err
	}

	return h.providerLogin(ctx, AuthProviderGoogle, payload.Token, payload.RememberMe)
}

func (h *handler) FacebookLogin(ctx *fiber.Ctx) error {
	logger.With(ctx, zap.String("eventName", "loginWithFacebook"))

	var payload FacebookLoginPayload
	err := ctx.BodyParser(&payload)
	if err != nil {
		return cerror.ErrorBadRequest.WithFields(zap.Error(err))
	}

	err = h.validator.Struct(payload)
	if err != nil {
		return err
	}

	return h.providerLogin(ctx, AuthProviderFacebook, payload.AccessToken, payload.RememberMe)
}

func (h *handler) providerLogin(ctx *fiber.Ctx, provider, token string, rememberMe bool) error {
	userSession, err := h.userService.LoginWithProvider(ctx.Context(), provider, token, rememberMe)
	if err != nil {
		return err
	}

	logger.FromContext(ctx.Context()).Infow(
		logger.EventFinishedSuccessfully,
		zap.String("userId", userSession.User.Id),
		zap.Bool("rememberMe", rememberMe),
	)
	return ctx.
		Status(fiber.StatusOK).
		JSON(SessionResponse{
			Message: MessageLoginSuccessful,
			User:    userSession.User,
			Token:   userSession.Token,
		})
}

func (h *handler) RefreshToken(ctx *fiber.Ctx) error {
	log := logger.With(ctx, zap.String("eventName", "refreshToken"))

	token := session.BearerToken(ctx)
	if token == "" {
		return cerror.ErrorMissingToken
	}

	userSession, err := h.userService.RefreshToken(ctx.Context(), token)
	if err != nil {
		return err
	}

	log.Infow(logger.EventFinishedSuccessfully, zap.String("userId", userSession.User.Id))
	return ctx.
		Status(fiber.StatusOK).
		JSON(SessionResponse{
			Message: MessageTokenRefreshed,
			User:    userSession.User,
			Token:   userSession.Token,
		})
}

func (h *handler) Me(ctx *fiber.Ctx) error {
	log := logger.With(ctx, zap.String("eventName", "getCurrentUser"))

	claims, ok := session.ClaimsFromCtx(ctx)
	if !ok {
		return cerror.ErrorMissingToken
	}

	user, err := h.userService.GetUser(ctx.Context(), claims.UserId)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(SessionResponse{
			User: user,
		})
}

func (h *handler) GetUser(ctx *fiber.Ctx) error {
	log := logger.With(ctx, zap.String("eventName", "getUserById"))

	userId := ctx.Params("userId")
	user, err := h.userService.GetUser(ctx.Context(), userId)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(SessionResponse{
			User: user,
		})
}
