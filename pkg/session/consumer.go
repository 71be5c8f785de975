package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"renthouse-auth/pkg/jwt_generator"
)

const (
	RefreshPath          = "/api/auth/refresh"
	DefaultRefreshWindow = 24 * time.Hour
	consumerTimeout      = 10 * time.Second
)

var (
	ErrNoSession      = errors.New("no session token held")
	ErrSessionExpired = errors.New("session token can not be refreshed anymore")
)

type refreshResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Consumer holds the session token of one client and keeps it fresh through the refresh endpoint.
// It is safe for concurrent use.
type Consumer struct {
	mu            sync.Mutex
	baseUrl       string
	refreshWindow time.Duration
	client        *fiber.Client
	parser        *jwt.Parser
	now           jwt_generator.Clock

	token     string
	expiresAt time.Time
}

func NewConsumer(baseUrl string, refreshWindow time.Duration) *Consumer {
	if refreshWindow <= 0 {
		refreshWindow = DefaultRefreshWindow
	}

	return &Consumer{
		baseUrl:       strings.TrimSuffix(baseUrl, "/"),
		refreshWindow: refreshWindow,
		client: &fiber.Client{
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		},
		parser: jwt.NewParser(),
		now:    jwt_generator.SystemClock,
	}
}

// SetToken stores a token received from a login or registration response.
// The signature is not checked here; the server does that on every request.
func (c *Consumer) SetToken(token string) error {
	expiresAt, err := c.expiry(token)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
	c.expiresAt = expiresAt
	return nil
}

// Token returns the held token, refreshing it first when it is inside the refresh window.
func (c *Consumer) Token() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == "" {
		return "", ErrNoSession
	}

	if c.now().Add(c.refreshWindow).Before(c.expiresAt) {
		return c.token, nil
	}

	if err := c.refreshLocked(); err != nil {
		return "", err
	}
	return c.token, nil
}

func (c *Consumer) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == "" {
		return ErrNoSession
	}
	return c.refreshLocked()
}

// Authorize attaches the bearer header to an outgoing request.
func (c *Consumer) Authorize(agent *fiber.Agent) error {
	token, err := c.Token()
	if err != nil {
		return err
	}

	agent.Set(fiber.HeaderAuthorization, bearerPrefix+token)
	return nil
}

func (c *Consumer) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = ""
	c.expiresAt = time.Time{}
}

func (c *Consumer) refreshLocked() error {
	agent := c.client.Post(c.baseUrl + RefreshPath)
	agent.Set(fiber.HeaderAuthorization, bearerPrefix+c.token)
	agent.Timeout(consumerTimeout)

	var response refreshResponse
	statusCode, _, errs := agent.Struct(&response)

	switch {
	case statusCode == fiber.StatusUnauthorized || statusCode == fiber.StatusNotFound:
		c.token = ""
		c.expiresAt = time.Time{}
		return ErrSessionExpired
	case len(errs) > 0:
		return fmt.Errorf("session refresh failed: %w", errors.Join(errs...))
	case statusCode != fiber.StatusOK:
		return fmt.Errorf("session refresh answered with status %d", statusCode)
	}

	expiresAt, err := c.expiry(response.Token)
	if err != nil {
		return err
	}

	c.token = response.Token
	c.expiresAt = expiresAt
	return nil
}

func (c *Consumer) expiry(token string) (time.Time, error) {
	var claims jwt_generator.Claims
	if _, _, err := c.parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("session token is malformed: %w", err)
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("session token has no expiry")
	}

	return claims.ExpiresAt.Time, nil
}
