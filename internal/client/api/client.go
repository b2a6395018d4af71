// Package api is the typed HTTP client for the CloudSync backend.
//
// A single Client instance carries the cross-cutting concerns so endpoint
// wrappers never deal with authentication or error surfacing themselves:
// every outbound request is decorated with the bearer token (when one is
// present) and a request id; every inbound response is inspected centrally —
// 401 fires the registered unauthorized hook, any other error status is
// turned into a toast. The error always reaches the caller unchanged so it
// can apply operation-specific recovery on top.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/cloudsync/internal/client/notify"
	"github.com/dmitrijs2005/cloudsync/internal/common"
	"github.com/dmitrijs2005/cloudsync/internal/logging"
)

// TokenSource yields the current bearer token, or "" when anonymous.
// The session owns the token; the transport only reads it.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a plain function to the TokenSource interface.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

// Client talks to the CloudSync REST API.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	notifier notify.Notifier
	log      logging.Logger

	// onUnauthorized is registered by the session so the transport does not
	// import it (avoids the circular dependency). Called on every 401.
	onUnauthorized func()
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithNotifier sets the sink for transient error messages.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// New returns a Client for the API rooted at baseURL (e.g.
// "http://localhost:8080/api"). tokens may be nil for a client that only
// performs anonymous calls.
func New(baseURL string, tokens TokenSource, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		tokens:   tokens,
		notifier: notify.Discard{},
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnUnauthorized registers the hook invoked whenever any response comes back
// with status 401, regardless of which caller issued the request.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// newRequest builds a request with the shared decorations: bearer token
// (when present) and a correlation id.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}
	return req, nil
}

// checkResponse applies the centralized response handling: on an error
// status it builds the *Error, toasts it (except 401) and fires the
// unauthorized hook (401 only). The error is returned to the caller in all
// cases.
func (c *Client) checkResponse(resp *http.Response) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	apiErr := &Error{Status: resp.StatusCode, Message: extractMessage(resp.Body)}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	c.notifier.Error(apiErr.Message)
	return apiErr
}

// do performs a JSON round trip. body is marshalled when non-nil; the
// response is decoded into out when non-nil and the status is a success.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, query, reader, contentType)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Network-level failure: toast and classify as unavailable.
		c.notifier.Error(genericErrorMessage)
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

func (c *Client) put(ctx context.Context, path string, query url.Values, body any, out any) error {
	return c.do(ctx, http.MethodPut, path, query, body, out)
}

func (c *Client) del(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// postMultipart uploads a single file part named "file" and decodes the JSON
// response into out.
func (c *Client) postMultipart(ctx context.Context, path string, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.notifier.Error(genericErrorMessage)
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		return err
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// getBlob fetches a binary body (file download).
func (c *Client) getBlob(ctx context.Context, path string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.notifier.Error(genericErrorMessage)
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}
