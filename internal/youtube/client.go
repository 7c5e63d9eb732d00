// Package youtube lists and fetches YouTube caption tracks through the
// watch page and the Innertube player endpoint.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/anatolykoptev/go-kit/strutil"
	stealth "github.com/anatolykoptev/go-stealth"
	"golang.org/x/time/rate"

	"github.com/anatolykoptev/yt_transcript/internal/metrics"
	"github.com/anatolykoptev/yt_transcript/internal/transcript"
	"github.com/anatolykoptev/yt_transcript/internal/videoid"
)

const (
	maxPageBytes    = 6 * 1024 * 1024
	maxPlayerBytes  = 3 * 1024 * 1024
	maxCaptionBytes = 2 * 1024 * 1024
	errSnippetChars = 200
)

// Client implements transcript.Provider for YouTube.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
	retry   stealth.RetryConfig
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for every upstream request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBaseURL points the client at another host. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithRateLimit paces upstream requests to rps with the given burst.
// A non-positive rps disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithRetries sets how many times a transient upstream failure is retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n < 0 {
			n = 0
		}
		c.retry.MaxRetries = n
	}
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient returns a YouTube client. Without options it makes a single
// attempt per upstream request and does not pace requests.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    NewHTTPClient(30*time.Second, ""),
		baseURL: defaultBaseURL,
		retry:   stealth.DefaultRetryConfig,
		logger:  slog.Default(),
	}
	c.retry.MaxRetries = 0
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewHTTPClient returns an http.Client with sane pooling defaults and an
// optional proxy.
func NewHTTPClient(timeout time.Duration, proxyURL string) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	tr := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     60 * time.Second,
		TLSHandshakeTimeout: 15 * time.Second,
	}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			tr.Proxy = http.ProxyURL(u)
		} else {
			slog.Warn("youtube: invalid proxy URL, connecting directly", slog.Any("error", err))
		}
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

// List fetches the caption catalog of a video.
func (c *Client) List(ctx context.Context, id videoid.ID) (transcript.Catalog, error) {
	if !videoid.Valid(id.String()) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVideoID, id)
	}
	page, cookie, err := c.watchPage(ctx, id.String())
	if err != nil {
		return nil, err
	}
	apiKey, err := extractAPIKey(page)
	if err != nil {
		return nil, err
	}
	player, err := c.player(ctx, id.String(), apiKey, cookie)
	if err != nil {
		return nil, err
	}
	if err := assertPlayable(id.String(), player.PlayabilityStatus); err != nil {
		return nil, err
	}
	if player.Captions == nil || player.Captions.Renderer == nil || player.Captions.Renderer.CaptionTracks == nil {
		return nil, transcript.ErrTranscriptsDisabled
	}
	cat := newCatalog(c, id.String(), cookie, player.Captions.Renderer)
	c.logger.Debug("youtube: caption catalog",
		slog.String("id", id.String()),
		slog.Int("manual", len(cat.manual)),
		slog.Int("generated", len(cat.generated)),
	)
	return cat, nil
}

// player POSTs to the Innertube player endpoint as the ANDROID client.
func (c *Client) player(ctx context.Context, videoID, apiKey, cookie string) (*playerResp, error) {
	body, err := json.Marshal(androidPlayerReq(videoID))
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, http.MethodPost, c.baseURL+playerPath+url.QueryEscape(apiKey), body, map[string]string{
		"Content-Type":    "application/json",
		"Accept-Language": "en-US",
		"User-Agent":      androidUserAgent,
		"Cookie":          cookie,
	}, maxPlayerBytes)
	if err != nil {
		return nil, fmt.Errorf("innertube player: %w", err)
	}
	var resp playerResp
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode player: %w: %w", ErrDataUnparsable, err)
	}
	return &resp, nil
}

// do sends one upstream request through the limiter and the retry policy and
// returns the body of a 200 response. 429 maps to ErrRequestBlocked.
func (c *Client) do(ctx context.Context, method, target string, body []byte, headers map[string]string, limit int64) ([]byte, error) {
	metrics.IncrUpstreamRequest()
	resp, err := stealth.RetryHTTP(ctx, c.retry, func() (*http.Response, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, rd)
		if err != nil {
			return nil, err
		}
		for k, v := range headers {
			if v != "" {
				req.Header.Set(k, v)
			}
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			return nil, ErrRequestBlocked
		}
		return resp, nil
	})
	if err != nil {
		metrics.IncrUpstreamError()
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		metrics.IncrUpstreamError()
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		metrics.IncrUpstreamError()
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrUnexpectedResponse, resp.StatusCode,
			strutil.TruncateWith(string(data), errSnippetChars, "..."))
	}
	return data, nil
}
