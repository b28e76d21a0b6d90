package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// APIBasePath prefixes every request path.
const APIBasePath = "/api/v1"

const defaultTimeout = 10 * time.Second

// TokenSource supplies the bearer credential attached to outgoing requests.
// A nil token source or an absent token means requests go out anonymous.
type TokenSource interface {
	Token() (string, bool)
}

// Client issues JSON requests against the platform API. Bodies are decoded
// into caller-declared types without further shape validation; non-success
// statuses become *APIError.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option modifies a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for testing).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger used for debug-level request logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client rooted at baseURL (scheme + host, no API path).
func New(baseURL string, tokens TokenSource, options ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// Get issues a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH request with a JSON body and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE request and decodes the response into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, out)
}

// Upload sends a file as a multipart form with field name "file". The
// multipart writer owns the content type so the boundary is set correctly.
func (c *Client) Upload(ctx context.Context, path, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return errors.Wrap(err, "[Client.Upload] CreateFormFile")
	}
	if _, err := io.Copy(part, file); err != nil {
		return errors.Wrap(err, "[Client.Upload] copying file contents")
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(err, "[Client.Upload] closing multipart writer")
	}
	return c.do(ctx, http.MethodPost, path, writer.FormDataContentType(), &buf, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "[Client.doJSON] encoding %s %s body", method, path)
		}
		reader = bytes.NewReader(encoded)
	}
	return c.do(ctx, method, path, "application/json", reader, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	url := c.baseURL + APIBasePath + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return errors.Wrapf(err, "[Client.do] building %s %s", method, path)
	}

	// JSON requests always declare the content type, bodyless ones included.
	// Multipart uploads carry the writer's boundary instead.
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "[Client.do] %s %s", method, path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "[Client.do] reading %s %s response", method, path)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", APIBasePath+path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).
		Msg("api request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrapf(err, "[Client.do] decoding %s %s response", method, path)
	}
	return nil
}
