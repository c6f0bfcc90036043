package gatekeeper

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/morbidleague/deadpool/internal/domain/account"
	"github.com/morbidleague/deadpool/internal/platform/resilience"
	"github.com/morbidleague/deadpool/internal/usecase"
)

var errGatekeeperTransient = crerr.New("gatekeeper transient failure")

// CircuitBreakerConfig re-exports the platform breaker config so callers can
// configure the client without importing the resilience package.
type CircuitBreakerConfig = resilience.CircuitBreakerConfig

const (
	defaultPrincipalCacheTTL     = 30 * time.Second
	defaultPrincipalCacheEntries = 4096
)

// Client verifies bearer tokens against the gatekeeper identity service's
// introspection endpoint. Verified principals are cached briefly so a burst
// of admin requests does not hammer introspection.
type Client struct {
	httpClient     *http.Client
	introspectURL  string
	adminKey       string
	logger         *slog.Logger
	cache          *inMemoryPrincipalCache
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(httpClient *http.Client, baseURL, introspectPath, adminKey string, breakerCfg CircuitBreakerConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	cfg := resilience.NormalizeCircuitBreakerConfig(breakerCfg)

	return &Client{
		httpClient:     httpClient,
		introspectURL:  buildURL(baseURL, introspectPath),
		adminKey:       strings.TrimSpace(adminKey),
		logger:         logger,
		cache:          newInMemoryPrincipalCache(defaultPrincipalCacheTTL, defaultPrincipalCacheEntries),
		breaker:        resilience.NewCircuitBreaker(cfg.FailureThreshold, cfg.OpenTimeout, cfg.HalfOpenMaxReq),
		circuitEnabled: cfg.Enabled,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (account.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return account.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	cacheKey := hashToken(token)
	if principal, ok := c.cache.Get(cacheKey); ok {
		return principal, nil
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "gatekeeper circuit breaker rejected request", "state", c.breaker.State())
			return account.Principal{}, fmt.Errorf("%w: gatekeeper is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	principal, err := c.introspect(ctx, token)
	c.recordCircuitResult(err)
	if err != nil {
		if stderrors.Is(err, errGatekeeperTransient) {
			return account.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return account.Principal{}, err
	}

	c.cache.Set(cacheKey, principal)
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (account.Principal, error) {
	payload := introspectRequest{Token: token}
	encoded, err := sonic.Marshal(payload)
	if err != nil {
		return account.Principal{}, crerr.Wrap(err, "marshal introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return account.Principal{}, crerr.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}

	if c.logger.Enabled(ctx, slog.LevelDebug) {
		c.logger.DebugContext(ctx, "gatekeeper introspection request",
			"curl_preview", buildIntrospectCurlPreview(c.introspectURL, c.adminKey != ""),
		)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return account.Principal{}, fmt.Errorf("%w: request introspection: %v", errGatekeeperTransient, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return account.Principal{}, fmt.Errorf("%w: read introspect response: %v", errGatekeeperTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return account.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		// Forbidden means our admin key was rejected, a deployment problem
		// rather than a bad caller token.
		c.logger.ErrorContext(ctx, "gatekeeper rejected admin credentials")
		return account.Principal{}, fmt.Errorf("%w: introspection forbidden", errGatekeeperTransient)
	case resp.StatusCode >= http.StatusInternalServerError:
		return account.Principal{}, fmt.Errorf("%w: introspection failed with status %d", errGatekeeperTransient, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		c.logger.WarnContext(ctx, "gatekeeper introspection non-200", "status_code", resp.StatusCode)
		return account.Principal{}, crerr.Newf("introspection failed with status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return account.Principal{}, crerr.Wrap(err, "unmarshal introspect response")
	}

	if !decoded.Active {
		return account.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return account.Principal{}, crerr.New("invalid introspect response: user_id is empty")
	}

	return account.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
		Roles:  decoded.Roles,
	}, nil
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if isCircuitFailure(err) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool     `json:"active"`
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}
