package config

import "time"

// #nosec
const (
	EnvironmentVariableNotDefined = "%s variable is not defined"
	EnvironmentVariableInvalid    = "%s variable is invalid: %w"

	IsAtRemote = "IS_AT_REMOTE"
	ServerPort = "SERVER_PORT"

	MongodbUri            = "MONGODB_URI"
	MongodbUsername       = "MONGODB_USERNAME"
	MongodbPassword       = "MONGODB_PASSWORD"
	MongodbDatabase       = "MONGODB_DATABASE"
	MongodbUserCollection = "MONGODB_USER_COLLECTION"

	JwtSecret       = "JWT_SECRET"
	JwtIssuer       = "JWT_ISSUER"
	JwtRefreshGrace = "JWT_REFRESH_GRACE"

	GoogleClientId = "GOOGLE_CLIENT_ID"

	FacebookAppId     = "FACEBOOK_APP_ID"
	FacebookAppSecret = "FACEBOOK_APP_SECRET"
	FacebookGraphUrl  = "FACEBOOK_GRAPH_URL"

	RedisAddr                = "REDIS_ADDR"
	RedisPassword            = "REDIS_PASSWORD"
	RedisDb                  = "REDIS_DB"
	RateLimitCapacity        = "RATE_LIMIT_CAPACITY"
	RateLimitRefillInterval  = "RATE_LIMIT_REFILL_INTERVAL"
	DefaultServerPort        = "8080"
	DefaultMongodbDatabase   = "renthouse"
	DefaultUserCollection    = "users"
	DefaultJwtIssuer         = "renthouse-bd"
	DefaultJwtRefreshGrace   = 30 * 24 * time.Hour
	DefaultFacebookGraphUrl  = "https://graph.facebook.com"
	DefaultRateLimitCapacity = 20
	DefaultRateLimitInterval = 3 * time.Second

	MinJwtSecretLength = 32
	maskedValue        = "********"
)

type Config struct {
	ServerPort string
	Mongodb    MongodbConfig
	Jwt        JwtConfig
	Google     GoogleConfig
	Facebook   FacebookConfig
	RateLimit  RateLimitConfig
}

type MongodbConfig struct {
	Uri         string
	Username    string
	Password    string
	Database    string
	Collections map[string]string
}

type JwtConfig struct {
	Secret       []byte
	Issuer       string
	RefreshGrace time.Duration
}

// GoogleConfig is disabled when ClientId is empty.
type GoogleConfig struct {
	ClientId string
}

// FacebookConfig is disabled when the app credentials are empty.
type FacebookConfig struct {
	AppId     string
	AppSecret string
	GraphUrl  string
}

type RateLimitConfig struct {
	RedisAddr      string
	RedisPassword  string
	RedisDb        int
	Capacity       int
	RefillInterval time.Duration
	Prefix         string
}

func (c GoogleConfig) Enabled() bool {
	return c.ClientId != ""
}

func (c FacebookConfig) Enabled() bool {
	return c.AppId != "" && c.AppSecret != ""
}

func (c RateLimitConfig) Enabled() bool {
	return c.RedisAddr != ""
}
