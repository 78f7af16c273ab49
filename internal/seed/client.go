package seed

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

	service "github.com/okian/pitchside/internal/app"
	"github.com/okian/pitchside/internal/domain/model"
)

// Submission outcomes.
const (
	outcomeAccepted  = "accepted"
	outcomeDuplicate = "duplicate"
)

// ErrStatus is returned for unexpected HTTP status codes.
var ErrStatus = errors.New("unexpected status")

// Client talks to the pitchside HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var rd io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request body: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil || resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s response: %w", path, err)
	}
	return resp.StatusCode, nil
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	status, err := c.do(ctx, http.MethodGet, "/healthz", nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: healthz returned %d", ErrStatus, status)
	}
	return nil
}

// Submit posts one assessment and reports whether it was accepted or a duplicate.
func (c *Client) Submit(ctx context.Context, a model.Assessment) (string, error) {
	var ack struct {
		Status    string `json:"status"`
		Duplicate bool   `json:"duplicate"`
	}
	status, err := c.do(ctx, http.MethodPost, "/assessments", a, &ack)
	if err != nil {
		return "", err
	}
	switch status {
	case http.StatusAccepted:
		return outcomeAccepted, nil
	case http.StatusOK:
		return outcomeDuplicate, nil
	}
	return "", fmt.Errorf("%w: assessments returned %d", ErrStatus, status)
}

// BenchmarkCount reads the stored benchmark total from GET /stats.
func (c *Client) BenchmarkCount(ctx context.Context) (int, error) {
	var stats struct {
		Benchmarks int `json:"benchmarks"`
	}
	status, err := c.do(ctx, http.MethodGet, "/stats", nil, &stats)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("%w: stats returned %d", ErrStatus, status)
	}
	return stats.Benchmarks, nil
}

// Progress fetches GET /progress/{athlete}.
func (c *Client) Progress(ctx context.Context, athleteID string) (service.Progress, error) {
	var p service.Progress
	status, err := c.do(ctx, http.MethodGet, "/progress/"+url.PathEscape(athleteID), nil, &p)
	if err != nil {
		return service.Progress{}, err
	}
	if status != http.StatusOK {
		return service.Progress{}, fmt.Errorf("%w: progress for %s returned %d", ErrStatus, athleteID, status)
	}
	return p, nil
}
