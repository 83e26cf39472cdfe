// Package au provides the HTTP client for the Athletes Unlimited stats proxy.
//
// Every request goes through proxy.php with the real API path in the
// request query parameter. Inner query separators are sent pre-encoded as
// %26 and most endpoints carry a k=<unix seconds> cache-busting key.
// Rate limiting is handled via a token bucket limiter.
package au

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Client is the HTTP client for all AU endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	cache      Cache
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithCache serves repeated requests from c.
func WithCache(c Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(cl *Client) { cl.httpClient = hc }
}

// NewClient creates an AU HTTP client with rate limiting.
func NewClient(baseURL, userAgent string, requestsPerMinute int, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned for any non-200 response.
type StatusError struct {
	Status int
	Path   string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("AU %s returned %d: %s", e.Path, e.Status, e.Body)
}

// --------------------------------------------------------------------------
// Endpoints
// --------------------------------------------------------------------------

// GameStats fetches the by-game stat payload for game number gameNum
// (1-based, in season order) of a season.
func (c *Client) GameStats(ctx context.Context, sport string, seasonID, gameNum int, statTypes []string) (map[string]any, error) {
	if gameNum < 1 {
		return nil, fmt.Errorf("game number must be at least 1, got %d", gameNum)
	}
	if len(statTypes) == 0 {
		return nil, fmt.Errorf("no stat types for %s", sport)
	}
	parts := make([]string, len(statTypes))
	for i, st := range statTypes {
		parts[i] = "statType=" + st
	}
	path := fmt.Sprintf("/api/stats/%s/v1/%d/by-game/%d?%s", sport, seasonID, gameNum, strings.Join(parts, "%26"))
	return c.getObject(ctx, path, true)
}

// PlayByPlay fetches the play-by-play payload for a vendor game id.
func (c *Client) PlayByPlay(ctx context.Context, sport string, seasonID, gameID int) (map[string]any, error) {
	path := fmt.Sprintf("/api/play-by-play/%s/v1/event/%d/game/%d", sport, seasonID, gameID)
	return c.getObject(ctx, path, true)
}

// Season is one entry of the seasons listing.
type Season struct {
	SeasonID int   `json:"seasonId"`
	GameIDs  []int `json:"gameIds"`
}

// Seasons lists every season the vendor knows for a sport.
func (c *Client) Seasons(ctx context.Context, sport string) ([]Season, error) {
	path := fmt.Sprintf("api/seasons/%s/v1", sport)
	body, err := c.get(ctx, path, false)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Data []Season `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode seasons: %w", err)
	}
	return resp.Data, nil
}

// GameIDs returns the vendor game ids of one season, in schedule order.
func (c *Client) GameIDs(ctx context.Context, sport string, seasonID int) ([]int, error) {
	seasons, err := c.Seasons(ctx, sport)
	if err != nil {
		return nil, err
	}
	for _, s := range seasons {
		if s.SeasonID == seasonID {
			return s.GameIDs, nil
		}
	}
	return nil, fmt.Errorf("season id %d not listed for %s", seasonID, sport)
}

// --------------------------------------------------------------------------
// Transport
// --------------------------------------------------------------------------

func (c *Client) getObject(ctx context.Context, path string, withKey bool) (map[string]any, error) {
	body, err := c.get(ctx, path, withKey)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return payload, nil
}

// get performs a rate-limited GET through the proxy. Cached bodies skip both
// the limiter and the network.
func (c *Client) get(ctx context.Context, path string, withKey bool) ([]byte, error) {
	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, path)
		if err != nil {
			c.logger.Warn("AU cache read failed", "path", path, "error", err)
		} else if ok {
			return body, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(path, withKey), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Status: resp.StatusCode, Path: path, Body: truncate(body, 200)}
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, path, body); err != nil {
			c.logger.Warn("AU cache write failed", "path", path, "error", err)
		}
	}
	return body, nil
}

func (c *Client) requestURL(path string, withKey bool) string {
	u := c.baseURL + "?request=" + path
	if !withKey {
		return u
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "%26"
	}
	return u + sep + "k=" + strconv.FormatInt(c.now().Unix(), 10)
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
