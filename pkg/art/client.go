package art

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// maxSearchBodyBytes caps the search response; a handful of descriptors
	// fits in a few hundred bytes.
	maxSearchBodyBytes = 1 << 20

	// maxErrorSnippet caps the body excerpt kept in UpstreamError.
	maxErrorSnippet = 256

	outcomeOK = "ok"
)

// ClientConfig contains settings for the cat API client.
type ClientConfig struct {
	// SearchURL is the random image search endpoint
	SearchURL string

	// APIKey is sent as x-api-key when set
	APIKey string

	// UserAgent is sent on every request
	UserAgent string

	// Timeout bounds each outbound call, including the body read
	Timeout time.Duration

	// MaxImageBytes caps downloaded image size (0 = unlimited)
	MaxImageBytes int64

	// Observer receives per-call outcomes (optional)
	Observer UpstreamObserver

	// Transport overrides the default pooled transport (optional)
	Transport http.RoundTripper
}

// Client queries the search endpoint and downloads images. It is safe for
// concurrent use; the underlying connection pool is shared.
type Client struct {
	config ClientConfig
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a client with connection pooling.
func NewClient(config ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	transport := config.Transport
	if transport == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.MaxIdleConns = 100
		t.MaxIdleConnsPerHost = 10
		t.IdleConnTimeout = 90 * time.Second
		t.ForceAttemptHTTP2 = true
		transport = t
	}

	return &Client{
		config: config,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		logger: logger,
	}
}

// RandomImage queries the search endpoint and returns the last descriptor
// of the returned array.
func (c *Client) RandomImage(ctx context.Context) (Descriptor, error) {
	start := time.Now()
	desc, err := c.randomImage(ctx)
	c.observe(TargetSearch, start, err)
	return desc, err
}

func (c *Client) randomImage(ctx context.Context) (Descriptor, error) {
	url := c.config.SearchURL

	resp, err := c.get(ctx, TargetSearch, url)
	if err != nil {
		return Descriptor{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSearchBodyBytes+1))
	if err != nil {
		return Descriptor{}, &TransportError{Target: TargetSearch, URL: url, Cause: err}
	}
	if len(body) > maxSearchBodyBytes {
		return Descriptor{}, &UpstreamError{
			Target:  TargetSearch,
			URL:     url,
			Message: fmt.Sprintf("response exceeds %d bytes", maxSearchBodyBytes),
		}
	}

	var descriptors []Descriptor
	if err := json.Unmarshal(body, &descriptors); err != nil {
		return Descriptor{}, &DecodeError{Stage: StageDescriptor, Cause: err}
	}
	if len(descriptors) == 0 {
		return Descriptor{}, &EmptyResultError{URL: url}
	}

	desc := descriptors[len(descriptors)-1]
	if strings.TrimSpace(desc.URL) == "" {
		return Descriptor{}, &DecodeError{
			Stage: StageDescriptor,
			Cause: errors.New("selected descriptor has no url"),
		}
	}

	c.logger.DebugContext(ctx, "selected image descriptor",
		"id", desc.ID,
		"url", desc.URL,
		"candidates", len(descriptors),
	)

	return desc, nil
}

// FetchImage downloads the image at url and returns its bytes.
func (c *Client) FetchImage(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()
	data, err := c.fetchImage(ctx, url)
	c.observe(TargetImage, start, err)
	return data, err
}

func (c *Client) fetchImage(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.get(ctx, TargetImage, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	limit := c.config.MaxImageBytes
	if limit > 0 {
		reader = io.LimitReader(resp.Body, limit+1)
	}

	var buf bytes.Buffer
	if resp.ContentLength > 0 && (limit <= 0 || resp.ContentLength <= limit) {
		buf.Grow(int(resp.ContentLength))
	}
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, &TransportError{Target: TargetImage, URL: url, Cause: err}
	}
	if limit > 0 && int64(buf.Len()) > limit {
		return nil, &UpstreamError{
			Target:  TargetImage,
			URL:     url,
			Message: fmt.Sprintf("image exceeds %d bytes", limit),
		}
	}

	c.logger.DebugContext(ctx, "downloaded image",
		"url", url,
		"bytes", buf.Len(),
		"content_type", resp.Header.Get("Content-Type"),
	)

	return buf.Bytes(), nil
}

// get issues a GET and returns the response only for 2xx statuses.
func (c *Client) get(ctx context.Context, target, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Target: target, URL: url, Cause: err}
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	if target == TargetSearch {
		req.Header.Set("Accept", "application/json")
		if c.config.APIKey != "" {
			req.Header.Set("x-api-key", c.config.APIKey)
		}
	}

	c.logger.DebugContext(ctx, "sending upstream request", "target", target, "url", url)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Target: target, URL: url, Cause: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorSnippet))
	resp.Body.Close()

	return nil, &UpstreamError{
		Target:     target,
		URL:        url,
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(snippet)),
	}
}

func (c *Client) observe(target string, start time.Time, err error) {
	if c.config.Observer == nil {
		return
	}
	outcome := outcomeOK
	if err != nil {
		outcome = Kind(err)
	}
	c.config.Observer.ObserveUpstream(target, outcome, time.Since(start).Seconds())
}
