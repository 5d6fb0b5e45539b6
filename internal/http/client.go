// Package http wraps go-retryablehttp into the request executor used by the
// session store and the entity services. It attaches the Kinvey
// authentication scheme, maps transport failures onto the domain error
// taxonomy, and parses management API error bodies.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/kinvey/cli/internal/constants"
	"github.com/kinvey/cli/pkg/kinvey"
)

// TokenProvider supplies the session token attached to management-plane
// requests. Obtaining a token may itself require a network round trip
// (interactive login), hence the context.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}

// Logger mirrors kinvey.Logger so this package stays dependency-light.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes a single HTTP call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string

	// SkipAuth leaves the Authorization header unset. Used only for the
	// initial login call.
	SkipAuth bool

	// BasicAuth, when set, is the pre-encoded base64(envId:masterSecret)
	// pair for data-plane calls and takes precedence over the session token.
	BasicAuth string

	// BaseURL overrides the client base URL, e.g. for data-plane hosts.
	BaseURL string
}

// Response is the raw result of a request.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client executes requests against a Kinvey API host.
type Client struct {
	baseURL    string
	tokens     TokenProvider
	httpClient *retryablehttp.Client
	logger     Logger
	userAgent  string
	deviceInfo string
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per-request socket timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig enables retries. The executor itself never retries by
// default; retry, if any, is caller-driven.
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = retryWaitMin
		c.httpClient.RetryWaitMax = retryWaitMax
	}
}

// NewClient creates a request executor for the given base URL. The token
// provider may be nil for clients that only issue unauthenticated calls.
func NewClient(baseURL string, tokens TokenProvider, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultTimeout

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		httpClient: retryClient,
		deviceInfo: fmt.Sprintf("kinvey-cli/%s %s %s", constants.CLIVersion, runtime.GOOS, runtime.GOARCH),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes the request and returns the raw response. Non-2xx responses
// and transport failures are returned as domain errors; the response is
// still populated when a body was received.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.mapTransportError(err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"url":    httpReq.URL.String(),
		})
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return resp, errorFromResponse(resp, httpResp.Status)
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) buildRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	baseURL := c.baseURL
	if req.BaseURL != "" {
		baseURL = strings.TrimSuffix(req.BaseURL, "/")
	}

	fullURL := baseURL + "/" + strings.TrimPrefix(req.Path, "/")
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var rawBody []byte

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		rawBody = data
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bytes.NewReader(rawBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(constants.HeaderDeviceInfo, c.deviceInfo)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	err = c.setAuthorizationHeader(ctx, req, httpReq)
	if err != nil {
		return nil, err
	}

	return httpReq, nil
}

// setAuthorizationHeader attaches the right scheme: pre-set headers win,
// BasicAuth covers data-plane calls, everything else gets the session token.
func (c *Client) setAuthorizationHeader(ctx context.Context, req *Request, httpReq *retryablehttp.Request) error {
	if req.SkipAuth || httpReq.Header.Get(constants.HeaderAuthorization) != "" {
		return nil
	}

	if req.BasicAuth != "" {
		httpReq.Header.Set(constants.HeaderAuthorization, "Basic "+req.BasicAuth)

		return nil
	}

	if c.tokens == nil {
		return nil
	}

	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("getting session token: %w", err)
	}

	httpReq.Header.Set(constants.HeaderAuthorization, "Kinvey "+token)

	return nil
}

// mapTransportError translates low-level network failures into the domain
// taxonomy. Unclassified errors pass through unchanged.
func (c *Client) mapTransportError(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return kinvey.NewError(kinvey.ErrorKindInvalidConfigURL, "You have configured an invalid URL.")
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return kinvey.NewError(kinvey.ErrorKindRequestTimedOut, "Request timed out.")
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return kinvey.NewError(kinvey.ErrorKindRequestTimedOut, "Request timed out.")
	}

	if errors.Is(err, syscall.ECONNRESET) {
		return kinvey.NewError(kinvey.ErrorKindConnectionReset, "Connection reset by peer.")
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return kinvey.NewError(kinvey.ErrorKindConnectionRefused, fmt.Sprintf("Connection refused at %s", c.baseURL))
	}

	return err
}

// errorFromResponse builds the domain error for a non-2xx response. The
// server error body embeds a code, a description or debug text, and an
// optional field-level validation-errors array.
func errorFromResponse(resp *Response, status string) error {
	if len(resp.Body) > 0 {
		var body kinvey.ErrorBody

		err := json.Unmarshal(resp.Body, &body)
		if err == nil && body.Code != "" {
			return kinvey.ErrorFromBody(&body, resp.StatusCode)
		}
	}

	return &kinvey.Error{
		Kind:    kinvey.ErrorKindUnknownError,
		Message: status,
		Status:  resp.StatusCode,
	}
}
