// Package evalclient is a small HTTP client for the habitat evaluation API.
package evalclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/model"
)

const (
	defaultTimeout = 10 * time.Second
	evaluatePath   = "/evaluate"

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 4 << 10
)

// ErrRequest marks failures to build, send or decode a request.
var ErrRequest = errors.New("evaluate request failed")

// Response is the decoded body of a successful POST /evaluate.
type Response struct {
	Score         float64                `json:"score"`
	FlareOverride bool                   `json:"flare_override"`
	Penalties     []habitability.Penalty `json:"penalties"`
	Record        model.PlanetRecord     `json:"record"`
}

// APIError is a non-2xx reply from the server.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d %s: %s", e.Status, e.Code, e.Message)
}

// Client calls a remote evaluator.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.http.Timeout = d
		}
	}
}

// New creates a client for the server at baseURL, e.g. "http://localhost:9080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Evaluate posts p and returns the server's assessment.
func (c *Client) Evaluate(ctx context.Context, p model.PlanetRecord) (Response, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return Response{}, fmt.Errorf("%w: marshal: %w", ErrRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+evaluatePath, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, decodeAPIError(resp)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("%w: decode response: %w", ErrRequest, err)
	}
	return out, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = strings.ToLower(strings.ReplaceAll(http.StatusText(resp.StatusCode), " ", "_"))
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}
