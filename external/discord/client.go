// Package discord wraps the Discord OAuth2 code-exchange flow and the
// identity endpoint used to build local accounts.
package discord

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/neatway/proclubs-stats-sub000/internal/platform/logging"
	"github.com/neatway/proclubs-stats-sub000/internal/usecase"
)

const (
	defaultAPIBaseURL = "https://discord.com/api/v10"
	defaultAuthURL    = "https://discord.com/oauth2/authorize"
	oauthScope        = "identify"
)

var errDiscordTransient = crerr.New("discord transient failure")

type ClientConfig struct {
	HTTPClient   *http.Client
	APIBaseURL   string
	AuthorizeURL string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Timeout      time.Duration
	Logger       *logging.Logger
}

type Client struct {
	httpClient   *http.Client
	apiBaseURL   string
	authorizeURL string
	clientID     string
	clientSecret string
	redirectURI  string
	logger       *logging.Logger
}

// Token is the OAuth2 token response subset the service uses.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// User is the Discord identity record behind /users/@me.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	apiBaseURL := strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
	}
	authorizeURL := strings.TrimSpace(cfg.AuthorizeURL)
	if authorizeURL == "" {
		authorizeURL = defaultAuthURL
	}

	return &Client{
		httpClient:   httpClient,
		apiBaseURL:   apiBaseURL,
		authorizeURL: authorizeURL,
		clientID:     strings.TrimSpace(cfg.ClientID),
		clientSecret: strings.TrimSpace(cfg.ClientSecret),
		redirectURI:  strings.TrimSpace(cfg.RedirectURI),
		logger:       logger,
	}
}

// AuthorizeURL builds the login redirect target for the given CSRF
// state value.
func (c *Client) AuthorizeURL(state string) string {
	values := url.Values{
		"client_id":     {c.clientID},
		"redirect_uri":  {c.redirectURI},
		"response_type": {"code"},
		"scope":         {oauthScope},
		"state":         {state},
	}
	return c.authorizeURL + "?" + values.Encode()
}

// ExchangeCode trades an authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (Token, error) {
	if strings.TrimSpace(code) == "" {
		return Token{}, fmt.Errorf("%w: authorization code is required", usecase.ErrInvalidInput)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendField := func(key, value string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte('&')
		}
		_, _ = buf.WriteString(key)
		_ = buf.WriteByte('=')
		_, _ = buf.WriteString(url.QueryEscape(value))
	}
	appendField("client_id", c.clientID)
	appendField("client_secret", c.clientSecret)
	appendField("grant_type", "authorization_code")
	appendField("code", code)
	appendField("redirect_uri", c.redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBaseURL+"/oauth2/token", strings.NewReader(buf.String()))
	if err != nil {
		return Token{}, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token Token
	if err := c.doJSON(ctx, req, &token); err != nil {
		return Token{}, fmt.Errorf("exchange oauth code: %w", err)
	}
	if token.AccessToken == "" {
		return Token{}, fmt.Errorf("%w: token response missing access_token", usecase.ErrUnauthorized)
	}
	return token, nil
}

// Authenticate runs the full code exchange and returns the identity
// used to build a local account. Transient Discord failures are mapped
// to ErrDependencyUnavailable so callers can answer 503 instead of 500.
func (c *Client) Authenticate(ctx context.Context, code string) (usecase.OAuthIdentity, error) {
	token, err := c.ExchangeCode(ctx, code)
	if err != nil {
		return usecase.OAuthIdentity{}, classifyAuthError(err)
	}
	identity, err := c.FetchUser(ctx, token.AccessToken)
	if err != nil {
		return usecase.OAuthIdentity{}, classifyAuthError(err)
	}
	return usecase.OAuthIdentity{
		ProviderUserID: identity.ID,
		Username:       identity.Username,
		AvatarHash:     identity.Avatar,
	}, nil
}

// FetchUser loads the identity behind an access token.
func (c *Client) FetchUser(ctx context.Context, accessToken string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/users/@me", nil)
	if err != nil {
		return User{}, fmt.Errorf("build identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var identity User
	if err := c.doJSON(ctx, req, &identity); err != nil {
		return User{}, fmt.Errorf("fetch discord identity: %w", err)
	}
	if identity.ID == "" {
		return User{}, fmt.Errorf("%w: identity response missing id", usecase.ErrUnauthorized)
	}
	return identity, nil
}

func (c *Client) doJSON(ctx context.Context, req *http.Request, target any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: send request: %v", errDiscordTransient, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read response body: %v", errDiscordTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: discord rejected the request status=%d", usecase.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("%w: discord status=%d", errDiscordTransient, resp.StatusCode)
		}
		return fmt.Errorf("discord status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode discord payload: %w", err)
	}
	return nil
}

// IsTransient reports whether the error came from a retryable Discord
// failure rather than a rejected credential.
func IsTransient(err error) bool {
	return stderrors.Is(err, errDiscordTransient)
}

func classifyAuthError(err error) error {
	if IsTransient(err) {
		return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	}
	return err
}
