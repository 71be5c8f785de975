package main

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"renthouse-auth/internal/user"
	"renthouse-auth/pkg/config"
	"renthouse-auth/pkg/jwt_generator"
	"renthouse-auth/pkg/logger"
	"renthouse-auth/pkg/oauth"
	"renthouse-auth/pkg/ratelimit"
	"renthouse-auth/pkg/server"
)

const mongodbConnectTimeout = 10 * time.Second

func main() {
	logWithProductionConfig, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	log := logWithProductionConfig.Sugar()
	defer func(l *zap.Logger) {
		_ = l.Sync()
	}(logWithProductionConfig)

	isAtRemote := os.Getenv(config.IsAtRemote)
	if isAtRemote == "" {
		err = godotenv.Load()
		if err != nil {
			log.Warnw(
				"failed to load .env file",
				zap.Error(err),
			)
		}
	}

	cfg, err := config.ReadConfig()
	if err != nil {
		panic(err)
	}
	cfg.Print()

	var jwtGenerator jwt_generator.JwtGenerator
	jwtGenerator, err = jwt_generator.NewJwtGenerator(cfg.Jwt)
	if err != nil {
		log.Fatalw(
			"failed to create jwt generator",
			zap.Error(err),
		)
	}

	ctx := logger.InjectContext(context.Background(), log)
	mongoDbClient, err := setupMongodbClient(ctx, cfg)
	if err != nil {
		log.Fatalw(
			"failed to setup mongodb client",
			zap.Error(err),
		)
	}

	defer func(client *mongo.Client, ctx context.Context) {
		err := client.Disconnect(ctx)
		if err != nil {
			log.Errorw(
				"failed to disconnect mongodb client",
				zap.Error(err),
			)
		}
	}(mongoDbClient, ctx)

	userRepository := user.NewRepository(mongoDbClient, cfg.Mongodb)
	err = userRepository.CreateIndexes(ctx)
	if err != nil {
		log.Fatalw(
			"failed to create user indexes",
			zap.Error(err),
		)
	}

	var googleProvider, facebookProvider oauth.Provider
	if cfg.Google.Enabled() {
		googleProvider = oauth.NewGoogleProvider(cfg.Google)
	} else {
		log.Infow("google login is disabled", zap.String("reason", "client id is not defined"))
	}
	if cfg.Facebook.Enabled() {
		facebookProvider = oauth.NewFacebookProvider(cfg.Facebook)
	} else {
		log.Infow("facebook login is disabled", zap.String("reason", "app credentials are not defined"))
	}

	redisClient := ratelimit.NewRedisClient(cfg.RateLimit, log)
	if redisClient != nil {
		defer func(client *redis.Client) {
			_ = client.Close()
		}(redisClient)
	}
	rateLimiter := ratelimit.Middleware(cfg.RateLimit, redisClient)

	userService := user.NewService(userRepository, jwtGenerator, googleProvider, facebookProvider)
	userHandler := user.NewHandler(userService, jwtGenerator, rateLimiter)

	var handlers []server.Handler
	handlers = append(handlers, userHandler)
	srv := server.NewServer(cfg, handlers, log)
	srv.RegisterRoutes()

	if isAtRemote == "" {
		err = srv.Start()
		if err != nil {
			log.Errorw(
				"server stopped",
				zap.Error(err),
			)
		}
	} else {
		lambda.Start(srv.LambdaProxyHandler)
	}
}

func setupMongodbClient(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	mongodbServerAPIOptions := options.ServerAPI(options.ServerAPIVersion1)
	clientOptions := options.Client().
		ApplyURI(cfg.Mongodb.Uri).
		SetServerAPIOptions(mongodbServerAPIOptions)
	if cfg.Mongodb.Username != "" {
		clientOptions.SetAuth(options.Credential{
			Username: cfg.Mongodb.Username,
			Password: cfg.Mongodb.Password,
		})
	}

	connectCtx, cancel := context.WithTimeout(ctx, mongodbConnectTimeout)
	defer cancel()

	mongodbClient, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, err
	}

	err = mongodbClient.Ping(connectCtx, nil)
	if err != nil {
		_ = mongodbClient.Disconnect(ctx)
		return nil, err
	}

	return mongodbClient, nil
}
