// Package earelay routes stats provider requests through an edge relay
// function. The provider blocks datacenter egress IPs from time to
// time; the relay forwards the request from an edge POP and returns the
// upstream response untouched.
package earelay

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/neatway/proclubs-stats-sub000/internal/platform/logging"
)

type ClientConfig struct {
	// RelayURL is the edge function endpoint. The upstream URL is passed
	// as the `url` query parameter.
	RelayURL string
	Timeout  time.Duration
	Logger   *logging.Logger
}

type Client struct {
	relayURL string
	timeout  time.Duration
	client   *fasthttp.Client
	logger   *logging.Logger
}

func NewClient(cfg ClientConfig) (*Client, error) {
	relayURL := strings.TrimRight(strings.TrimSpace(cfg.RelayURL), "/")
	if relayURL == "" {
		return nil, fmt.Errorf("relay url is required")
	}
	parsed, err := url.Parse(relayURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("invalid relay url %q", relayURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		relayURL: relayURL,
		timeout:  timeout,
		client: &fasthttp.Client{
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		logger: logger,
	}, nil
}

// Get satisfies the stats client's Transport interface.
func (c *Client) Get(ctx context.Context, fullURL string, headers map[string]string) (int, []byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.relayURL + "?url=" + url.QueryEscape(fullURL))
	req.Header.SetMethod(fasthttp.MethodGet)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		c.logger.WarnContext(ctx, "relay request failed", "url", fullURL, "error", err)
		return 0, nil, fmt.Errorf("relay request: %w", err)
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return resp.StatusCode(), body, nil
}
