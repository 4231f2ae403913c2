package catalog

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// TokenFunc supplies the current access token, or "" when unauthenticated.
type TokenFunc func() string

// Client talks to the remote catalog API. Every call is a single
// request/response round trip; the client holds no state beyond the base URL
// and the token source.
type Client struct {
	baseURL   string
	http      *http.Client
	tokenFunc TokenFunc
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SetTokenFunc wires the bearer-token source. Called once at startup after the
// session manager exists; login and verify-otp work without it.
func (c *Client) SetTokenFunc(fn TokenFunc) {
	c.tokenFunc = fn
}

// SetHTTPClient swaps the underlying HTTP client, used by tests.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.http = hc
}

// envelope is the common response wrapper of the catalog API.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Error is a failed catalog call with the best human-readable message the
// response body offered. Cause holds the underlying transport error when the
// request never produced a response.
type Error struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokenFunc != nil {
		if token := c.tokenFunc(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// doJSON sends a JSON request and decodes the envelope's data into out.
// fallback is the operation's default error message when the response body has
// none worth showing.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out interface{}, fallback string) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return errors.WithStack(err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out, fallback)
}

// doMultipart sends a multipart/form-data request built by write.
func (c *Client) doMultipart(ctx context.Context, method, path string, write func(*multipart.Writer) error, out interface{}, fallback string) error {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	if err := write(mw); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return errors.WithStack(err)
	}

	req, err := c.newRequest(ctx, method, path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req, out, fallback)
}

func (c *Client) do(req *http.Request, out interface{}, fallback string) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{StatusCode: 0, Message: fallback, Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: fallback, Cause: err}
	}

	env := envelope{}
	decodable := json.Unmarshal(raw, &env) == nil

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || (decodable && !env.Success) {
		return &Error{StatusCode: resp.StatusCode, Message: extractMessage(raw, fallback)}
	}

	if out != nil {
		if !decodable || len(env.Data) == 0 {
			return &Error{StatusCode: resp.StatusCode, Message: fallback}
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &Error{StatusCode: resp.StatusCode, Message: fallback}
		}
	}
	return nil
}

// extractMessage digs a human-readable message out of a failure body, falling
// back to the operation default.
func extractMessage(raw []byte, fallback string) string {
	body := struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Data    struct {
			Message string `json:"message"`
		} `json:"data"`
	}{}
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.Message != "":
			return body.Message
		case body.Data.Message != "":
			return body.Data.Message
		case body.Error != "":
			return body.Error
		}
	}
	return fallback
}
