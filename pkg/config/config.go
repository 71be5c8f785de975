package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kr/pretty"
)

func ReadConfig() (*Config, error) {
	serverPort := os.Getenv(ServerPort)
	if serverPort == "" {
		serverPort = DefaultServerPort
		fmt.Println("server port environment variable is empty its declared 8080 by default")
	}

	mongodbConfig, err := ReadMongoDbConfig()
	if err != nil {
		return nil, err
	}

	jwtConfig, err := ReadJwtConfig()
	if err != nil {
		return nil, err
	}

	facebookConfig, err := ReadFacebookConfig()
	if err != nil {
		return nil, err
	}

	rateLimitConfig, err := ReadRateLimitConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort: serverPort,
		Mongodb:    mongodbConfig,
		Jwt:        jwtConfig,
		Google:     ReadGoogleConfig(),
		Facebook:   facebookConfig,
		RateLimit:  rateLimitConfig,
	}, nil
}

// Print writes the configuration to stdout with every secret masked.
func (c *Config) Print() {
	masked := *c
	masked.Mongodb.Password = mask(masked.Mongodb.Password)
	masked.Mongodb.Uri = maskUriCredentials(masked.Mongodb.Uri)
	masked.Jwt.Secret = []byte(maskedValue)
	masked.Facebook.AppSecret = mask(masked.Facebook.AppSecret)
	masked.RateLimit.RedisPassword = mask(masked.RateLimit.RedisPassword)

	_, _ = pretty.Println(masked)
}

func ReadMongoDbConfig() (MongodbConfig, error) {
	mongodbUri := os.Getenv(MongodbUri)
	if mongodbUri == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbUri)
	}

	mongodbDatabase := os.Getenv(MongodbDatabase)
	if mongodbDatabase == "" {
		mongodbDatabase = DefaultMongodbDatabase
	}

	mongodbUserCollection := os.Getenv(MongodbUserCollection)
	if mongodbUserCollection == "" {
		mongodbUserCollection = DefaultUserCollection
	}

	return MongodbConfig{
		Uri:      mongodbUri,
		Username: os.Getenv(MongodbUsername),
		Password: os.Getenv(MongodbPassword),
		Database: mongodbDatabase,
		Collections: map[string]string{
			MongodbUserCollection: mongodbUserCollection,
		},
	}, nil
}

func ReadJwtConfig() (JwtConfig, error) {
	secret := os.Getenv(JwtSecret)
	if secret == "" {
		return JwtConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, JwtSecret)
	}

	if len(secret) < MinJwtSecretLength {
		return JwtConfig{}, fmt.Errorf(
			EnvironmentVariableInvalid,
			JwtSecret,
			fmt.Errorf("must be at least %d bytes long", MinJwtSecretLength),
		)
	}

	issuer := os.Getenv(JwtIssuer)
	if issuer == "" {
		issuer = DefaultJwtIssuer
	}

	refreshGrace, err := durationFromEnv(JwtRefreshGrace, DefaultJwtRefreshGrace)
	if err != nil {
		return JwtConfig{}, err
	}

	return JwtConfig{
		Secret:       []byte(secret),
		Issuer:       issuer,
		RefreshGrace: refreshGrace,
	}, nil
}

func ReadGoogleConfig() GoogleConfig {
	return GoogleConfig{
		ClientId: os.Getenv(GoogleClientId),
	}
}

func ReadFacebookConfig() (FacebookConfig, error) {
	appId := os.Getenv(FacebookAppId)
	appSecret := os.Getenv(FacebookAppSecret)
	if appId != "" && appSecret == "" {
		return FacebookConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, FacebookAppSecret)
	}
	if appId == "" && appSecret != "" {
		return FacebookConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, FacebookAppId)
	}

	graphUrl := os.Getenv(FacebookGraphUrl)
	if graphUrl == "" {
		graphUrl = DefaultFacebookGraphUrl
	}

	return FacebookConfig{
		AppId:     appId,
		AppSecret: appSecret,
		GraphUrl:  strings.TrimSuffix(graphUrl, "/"),
	}, nil
}

func ReadRateLimitConfig() (RateLimitConfig, error) {
	redisDb := 0
	if rawRedisDb := os.Getenv(RedisDb); rawRedisDb != "" {
		parsed, err := strconv.Atoi(rawRedisDb)
		if err != nil {
			return RateLimitConfig{}, fmt.Errorf(EnvironmentVariableInvalid, RedisDb, err)
		}
		redisDb = parsed
	}

	capacity := DefaultRateLimitCapacity
	if rawCapacity := os.Getenv(RateLimitCapacity); rawCapacity != "" {
		parsed, err := strconv.Atoi(rawCapacity)
		if err != nil || parsed < 1 {
			return RateLimitConfig{}, fmt.Errorf(
				EnvironmentVariableInvalid,
				RateLimitCapacity,
				fmt.Errorf("must be a positive integer"),
			)
		}
		capacity = parsed
	}

	refillInterval, err := durationFromEnv(RateLimitRefillInterval, DefaultRateLimitInterval)
	if err != nil {
		return RateLimitConfig{}, err
	}

	return RateLimitConfig{
		RedisAddr:      os.Getenv(RedisAddr),
		RedisPassword:  os.Getenv(RedisPassword),
		RedisDb:        redisDb,
		Capacity:       capacity,
		RefillInterval: refillInterval,
		Prefix:         "rl:auth",
	}, nil
}

func durationFromEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf(EnvironmentVariableInvalid, key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf(EnvironmentVariableInvalid, key, fmt.Errorf("must be positive"))
	}

	return parsed, nil
}

func mask(value string) string {
	if value == "" {
		return ""
	}
	return maskedValue
}

func maskUriCredentials(uri string) string {
	schemeEnd := strings.Index(uri, "://")
	at := strings.LastIndex(uri, "@")
	if schemeEnd == -1 || at == -1 || at < schemeEnd {
		return uri
	}
	return uri[:schemeEnd+3] + maskedValue + uri[at:]
}
