/*
Package absence is the client for the remote absence-tracking service.

PURPOSE:
  Signs and issues the v2 API calls the reconciliation driver needs: list
  users, reasons, departments and absences, and create a single absence.
  All calls are POST, sequential, and unretried; a failed call surfaces as a
  transport error for the run.

SEE ALSO:
  - hawk.go: request signing
  - dto.go: wire types and their date quirks
  - service.go: adapter to the engine's remote types
*/
package absence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the production absence service endpoint.
	DefaultBaseURL = "https://app.absence.io"

	// defaultPageLimit matches the service's default page size. The driver
	// consumes a single page per call.
	defaultPageLimit = 50
)

// ErrUnauthorized marks authentication failures (bad credentials, clock
// drift beyond the service's tolerance).
var ErrUnauthorized = errors.New("absence service rejected the request as unauthorized")

// StatusError reports a non-2xx response.
type StatusError struct {
	Status int
	Path   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("absence service returned %d for %s", e.Status, e.Path)
}

func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Client issues signed requests against the absence service.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	creds   Credentials
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint (tests, staging).
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.baseURL = u
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient builds a client for the given Hawk credentials.
func NewClient(id, key string, opts ...Option) *Client {
	base, _ := url.Parse(DefaultBaseURL)
	c := &Client{
		baseURL: base,
		http:    &http.Client{Timeout: 30 * time.Second},
		creds:   Credentials{ID: id, Key: key},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UserID returns the remote identity of the credential owner.
func (c *Client) UserID() string { return c.creds.ID }

// =============================================================================
// API CALLS
// =============================================================================

func (c *Client) Absences(ctx context.Context, req ListRequest) (ListResponse[Absence], error) {
	return post[ListResponse[Absence]](ctx, c, "/api/v2/absences", req)
}

func (c *Client) Reasons(ctx context.Context, req ListRequest) (ListResponse[Reason], error) {
	return post[ListResponse[Reason]](ctx, c, "/api/v2/reasons", req)
}

func (c *Client) Users(ctx context.Context, req ListRequest) (ListResponse[User], error) {
	return post[ListResponse[User]](ctx, c, "/api/v2/users", req)
}

func (c *Client) Departments(ctx context.Context, req ListRequest) (ListResponse[Department], error) {
	return post[ListResponse[Department]](ctx, c, "/api/v2/departments", req)
}

func (c *Client) CreateAbsence(ctx context.Context, req CreateRequest) (Absence, error) {
	return post[Absence](ctx, c, "/api/v2/absences/create", req)
}

// post signs and issues one POST call and decodes the response into T.
func post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var zero T

	u := c.baseURL.JoinPath(path)

	payload, err := json.Marshal(body)
	if err != nil {
		return zero, fmt.Errorf("encoding request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return zero, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization",
		hawkHeader(http.MethodPost, u, c.creds, time.Now().Unix(), uuid.NewString()))

	logrus.WithFields(logrus.Fields{"method": http.MethodPost, "path": path}).
		Debug("absence request")

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, fmt.Errorf("absence request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{"path": path, "status": resp.StatusCode}).
		Debug("absence response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return zero, &StatusError{Status: resp.StatusCode, Path: path}
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return zero, fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return out, nil
}
