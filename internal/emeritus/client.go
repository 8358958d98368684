package emeritus

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/emeritus-labs/emeritus-bridge/internal/helpers"
	"github.com/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// Client issues signed requests against the Emeritus API host. A single
// instance owns one pooled HTTP transport and is safe for concurrent use.
// Each call is a single attempt; retries are left to the caller.
type Client struct {
	host   string
	creds  Credentials
	http   *http.Client
	logger *slog.Logger
	now    func() time.Time
}

// Option defines a function type used to configure a Client instance.
type Option func(*Client)

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithClock overrides the timestamp source used for signing.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a Client for the given credential set. Malformed
// credentials are a configuration error and rejected here rather than at
// request time.
func NewClient(creds Credentials, opts ...Option) (*Client, error) {
	_inst := &Client{
		creds: creds,
		http:  &http.Client{Timeout: defaultTimeout},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}

	switch {
	case creds.Host == "":
		return nil, errors.New("missing Emeritus API host")
	case creds.UserID == "":
		return nil, errors.New("missing Emeritus user ID")
	case creds.Secret == "":
		return nil, errors.New("missing Emeritus API secret")
	}
	_inst.host = strings.TrimRight(creds.Host, "/")

	return _inst, nil
}

// Get performs a signed GET request against the given path.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post performs a signed POST request with a JSON body against the given path.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// upstreamEnvelope is the fixed response shape of the Emeritus API. A code of
// zero indicates success.
type upstreamEnvelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	target := c.host + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to construct request")
	}
	for k, v := range Sign(c.creds, c.now()) {
		req.Header.Set(k, v)
	}

	c.logger.Debug("issuing upstream request...", slog.String("method", method), slog.String("path", path))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn("upstream returned non-2xx status", slog.Int("status", resp.StatusCode), slog.String("path", path))
		return nil, &UpstreamError{Status: resp.StatusCode, Message: helpers.Truncate(string(raw), 512)}
	}

	var env upstreamEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode, Message: "malformed upstream response: " + helpers.Truncate(string(raw), 512)}
	}
	if env.Code != 0 {
		c.logger.Warn("upstream reported failure", slog.Int("code", env.Code), slog.String("msg", env.Msg))
		return nil, &UpstreamError{Status: resp.StatusCode, Code: env.Code, Message: env.Msg}
	}

	return env.Data, nil
}
