package eafc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/club"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/match"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/member"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/logging"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/resilience"
	"github.com/neatway/proclubs-stats-sub000/internal/usecase"
)

const (
	defaultBaseURL = "https://proclubs.ea.com/api/fc"

	// The provider rejects requests without browser-looking headers.
	headerUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	headerReferer   = "https://proclubs.ea.com/"
	headerOrigin    = "https://proclubs.ea.com"

	maxBodyBytes = 4 << 20
)

var errEAFCTransient = crerr.New("ea transient failure")

// Transport issues one GET and reports status plus body. The default is
// net/http; an edge relay implementation can be injected when the
// provider blocks the service's egress IPs.
type Transport interface {
	Get(ctx context.Context, fullURL string, headers map[string]string) (int, []byte, error)
}

type ClientConfig struct {
	Transport      Transport
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	transport      Transport
	baseURL        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	transport := cfg.Transport
	if transport == nil {
		httpClient := cfg.HTTPClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: cfg.Timeout}
		}
		if httpClient.Timeout <= 0 {
			httpClient.Timeout = 15 * time.Second
		}
		transport = &httpTransport{client: httpClient}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		transport:      transport,
		baseURL:        baseURL,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type httpTransport struct {
	client *http.Client
}

func (t *httpTransport) Get(ctx context.Context, fullURL string, headers map[string]string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
	if readErr != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", readErr)
	}
	return resp.StatusCode, raw, nil
}

func (c *Client) ClubInfo(ctx context.Context, platform, clubID string) (*club.Info, error) {
	raw, err := c.fetch(ctx, "/clubs/info", url.Values{"platform": {platform}, "clubIds": {clubID}})
	if err != nil {
		return nil, fmt.Errorf("fetch club info club_id=%s: %w", clubID, err)
	}
	record := ExtractClubInfo(raw, clubID)
	return NormalizeClubInfo(record, clubID), nil
}

func (c *Client) ClubStats(ctx context.Context, platform, clubID string) (*club.Stats, error) {
	raw, err := c.fetch(ctx, "/clubs/overallStats", url.Values{"platform": {platform}, "clubIds": {clubID}})
	if err != nil {
		return nil, fmt.Errorf("fetch club stats club_id=%s: %w", clubID, err)
	}
	record := ExtractClubInfo(raw, clubID)
	return NormalizeClubStats(record, clubID), nil
}

func (c *Client) ClubMembers(ctx context.Context, platform, clubID string) ([]member.Member, error) {
	raw, err := c.fetch(ctx, "/members/stats", url.Values{"platform": {platform}, "clubId": {clubID}})
	if err != nil {
		return nil, fmt.Errorf("fetch club members club_id=%s: %w", clubID, err)
	}
	return NormalizeMembers(raw), nil
}

func (c *Client) ClubMatches(ctx context.Context, platform, clubID, matchType string) ([]match.Match, error) {
	if matchType == "" {
		matchType = "leagueMatch"
	}
	raw, err := c.fetch(ctx, "/clubs/matches", url.Values{
		"platform":  {platform},
		"clubIds":   {clubID},
		"matchType": {matchType},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch club matches club_id=%s: %w", clubID, err)
	}
	return NormalizeMatches(raw), nil
}

func (c *Client) SearchClubs(ctx context.Context, platform, name string) ([]club.Info, error) {
	raw, err := c.fetch(ctx, "/allTimeLeaderboard/search", url.Values{"platform": {platform}, "clubName": {name}})
	if err != nil {
		return nil, fmt.Errorf("search clubs name=%s: %w", name, err)
	}

	var payload any
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}
	items, ok := payload.([]any)
	if !ok {
		return nil, nil
	}
	clubs := make([]club.Info, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if info := NormalizeClubInfo(record, ""); info != nil {
			clubs = append(clubs, *info)
		}
	}
	return clubs, nil
}

// SearchPlayers resolves a player by name. The provider has no stable
// endpoint for this query, so it walks the candidate list and takes the
// first body that parses.
func (c *Client) SearchPlayers(ctx context.Context, platform, name string) ([]member.Member, error) {
	query := url.Values{"platform": {platform}, "memberName": {name}}.Encode()
	candidates := []string{
		c.baseURL + "/members/search?" + query,
		c.baseURL + "/allTimeLeaderboard/search?" + url.Values{"platform": {platform}, "playerName": {name}}.Encode(),
		c.baseURL + "/members/career/search?" + query,
	}
	raw, err := c.firstSuccess(ctx, "player search", candidates)
	if err != nil {
		return nil, err
	}
	return NormalizeMembers(raw), nil
}

// PlayerCareer resolves one persona's career stat line, walking the
// candidate endpoint list the same way as SearchPlayers.
func (c *Client) PlayerCareer(ctx context.Context, platform, personaID string) (*member.Member, error) {
	candidates := []string{
		c.baseURL + "/members/career/stats?" + url.Values{"platform": {platform}, "personaId": {personaID}}.Encode(),
		c.baseURL + "/playerStats?" + url.Values{"platform": {platform}, "playerId": {personaID}}.Encode(),
		c.baseURL + "/members/stats?" + url.Values{"platform": {platform}, "personaId": {personaID}}.Encode(),
	}
	raw, err := c.firstSuccess(ctx, "player career", candidates)
	if err != nil {
		return nil, err
	}
	items := NormalizeMembers(raw)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: persona_id=%s", usecase.ErrNotFound, personaID)
	}
	career := items[0]
	if career.PersonaID == "" {
		career.PersonaID = personaID
	}
	return &career, nil
}

// firstSuccess tries each candidate URL exactly once, in order, and
// returns the first 2xx, non-empty, JSON-parsable body. Individual
// failures are swallowed; only total exhaustion is reported, as one
// aggregated error.
func (c *Client) firstSuccess(ctx context.Context, label string, candidates []string) ([]byte, error) {
	var lastErr error
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		raw, err := c.doRaw(ctx, candidate)
		if err != nil {
			lastErr = err
			continue
		}
		if len(raw) == 0 || !sonic.Valid(raw) {
			lastErr = fmt.Errorf("candidate returned unusable body url=%s", candidate)
			continue
		}
		return raw, nil
	}
	c.logger.WarnContext(ctx, "all provider candidates exhausted", "query", label, "candidates", len(candidates), "error", lastErr)
	return nil, fmt.Errorf("%w: no provider endpoint answered %s query", usecase.ErrDependencyUnavailable, label)
}

func (c *Client) fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	return c.doRaw(ctx, fullURL)
}

func (c *Client) doRaw(ctx context.Context, fullURL string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "ea circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errEAFCTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	status, raw, err := c.transport.Get(ctx, fullURL, map[string]string{
		"User-Agent": headerUserAgent,
		"Referer":    headerReferer,
		"Origin":     headerOrigin,
		"Accept":     "application/json",
	})
	if err != nil {
		err = fmt.Errorf("%w: send request: %v", errEAFCTransient, err)
		c.logger.WarnContext(ctx, "ea request failed", "url", fullURL, "error", err)
		return nil, err
	}
	if status < 200 || status >= 300 {
		if isRetryableStatus(status) {
			err = fmt.Errorf("%w: provider status=%d body=%s", errEAFCTransient, status, abbreviateBody(raw))
		} else {
			err = fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(raw))
		}
		c.logger.WarnContext(ctx, "ea request failed", "url", fullURL, "status", status)
		return nil, err
	}
	return raw, nil
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
