// Package api is the HTTP client for the Task Store API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"todo-cli/internal/model"

	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is where the reference Task Store listens by default.
	DefaultBaseURL = "http://127.0.0.1:5000"

	// DefaultTimeout bounds each request; the client never retries.
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader carries a per-request uuid that the server echoes into its logs.
	RequestIDHeader = "X-Request-Id"

	todosPath = "/api/todos"

	// Error bodies are only read for the message; cap how much we keep.
	maxErrorBody = 4 << 10
)

type Options struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the transport (tests). Timeout is ignored when set.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the Task Store. It is safe for concurrent use.
type Client struct {
	base *url.URL
	http *http.Client
	log  *slog.Logger
}

func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", raw, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", raw)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: missing host", raw)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{base: base, http: hc, log: log}, nil
}

// BaseURL returns the Task Store base url the client was built with.
func (c *Client) BaseURL() string { return c.base.String() }

func (c *Client) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, c.todosURL(), nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (c *Client) Create(ctx context.Context, text string) (model.Task, error) {
	var task model.Task
	body := model.CreateTaskRequest{Text: text}
	if err := c.do(ctx, http.MethodPost, c.todosURL(), body, &task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// Toggle asks the store to flip the completed flag. The store decides the new value.
func (c *Client) Toggle(ctx context.Context, id model.TaskID) (model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodPut, c.todoURL(id), nil, &task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (c *Client) Delete(ctx context.Context, id model.TaskID) error {
	return c.do(ctx, http.MethodDelete, c.todoURL(id), nil, nil)
}

func (c *Client) todosURL() string {
	return c.base.JoinPath(todosPath).String()
}

func (c *Client) todoURL(id model.TaskID) string {
	return c.base.JoinPath(todosPath, id.String()).String()
}

// do sends one request. Any non-2xx status is returned as *StatusError; when out is nil the
// response body is ignored.
func (c *Client) do(ctx context.Context, method, target string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", method, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("task store request failed", "method", method, "url", target, "request_id", reqID, "err", err)
		return &TransportError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("task store request",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", reqID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Method: method, URL: target, StatusCode: resp.StatusCode, Message: errorMessage(b)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, target, err)
	}
	return nil
}

// errorMessage pulls {"error": "..."} out of a store error body, falling back to the raw text.
func errorMessage(b []byte) string {
	var env struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(b, &env); err == nil && strings.TrimSpace(env.Error) != "" {
		return strings.TrimSpace(env.Error)
	}
	return strings.TrimSpace(string(b))
}
