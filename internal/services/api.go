// Anime store [AnimeService] implementation
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/desertthunder/zhuifan/internal/models"
	"github.com/desertthunder/zhuifan/internal/shared"
)

const defaultBaseURL string = "http://localhost:8000"

var _ AnimeService = (*AnimeClient)(nil)

// StatusError is returned when the store answers with a non-2xx status.
//
// It matches [shared.ErrAPIRequest] with [errors.Is], and [shared.ErrNotFound] for 404s.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Detail string // "detail" field of a JSON error body, if any
	Body   string // raw body, kept for diagnostics
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Detail)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case shared.ErrAPIRequest:
		return true
	case shared.ErrNotFound:
		return e.Code == http.StatusNotFound
	}
	return false
}

// AnimeClient calls the anime store REST API.
type AnimeClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAnimeClient creates a client for the store at baseURL.
func NewAnimeClient(baseURL string, client *http.Client) *AnimeClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &AnimeClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// BaseURL returns the store address the client talks to.
func (c *AnimeClient) BaseURL() string { return c.baseURL }

// doRequest sends body (when non-nil) as JSON and decodes a 2xx response into result (when non-nil).
func (c *AnimeClient) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %w: %s %s: %v", shared.ErrTransport, shared.ErrTimeout, method, endpoint, err)
		}
		return fmt.Errorf("%w: %s %s: %v", shared.ErrTransport, method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", shared.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Method: method, Path: endpoint, Code: resp.StatusCode, Body: string(data)}
		var errResp struct {
			Detail any `json:"detail"`
		}
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Detail != nil {
			statusErr.Detail = fmt.Sprint(errResp.Detail)
		}
		return statusErr
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// List retrieves all tracked animes.
//
// Calls GET /api/animes.
func (c *AnimeClient) List(ctx context.Context) ([]models.Anime, error) {
	var animes []models.Anime
	if err := c.doRequest(ctx, http.MethodGet, "/api/animes", nil, &animes); err != nil {
		return nil, err
	}
	if animes == nil {
		animes = []models.Anime{}
	}
	return animes, nil
}

// ListToday retrieves the animes releasing today, as computed by the store.
//
// Calls GET /api/animes/today.
func (c *AnimeClient) ListToday(ctx context.Context) (*models.TodayResponse, error) {
	var today models.TodayResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/animes/today", nil, &today); err != nil {
		return nil, err
	}
	if today.Animes == nil {
		today.Animes = []models.Anime{}
	}
	return &today, nil
}

// Get retrieves a single anime.
//
// Calls GET /api/animes/{id}.
func (c *AnimeClient) Get(ctx context.Context, id int64) (*models.Anime, error) {
	var anime models.Anime
	if err := c.doRequest(ctx, http.MethodGet, animePath(id), nil, &anime); err != nil {
		return nil, err
	}
	return &anime, nil
}

// Create stores a new anime.
//
// Calls POST /api/animes.
func (c *AnimeClient) Create(ctx context.Context, draft models.Draft) (*models.Anime, error) {
	var anime models.Anime
	if err := c.doRequest(ctx, http.MethodPost, "/api/animes", draft, &anime); err != nil {
		return nil, err
	}
	return &anime, nil
}

// Update replaces the writable fields of an anime.
//
// Calls PUT /api/animes/{id}.
func (c *AnimeClient) Update(ctx context.Context, id int64, draft models.Draft) (*models.Anime, error) {
	var anime models.Anime
	if err := c.doRequest(ctx, http.MethodPut, animePath(id), draft, &anime); err != nil {
		return nil, err
	}
	return &anime, nil
}

// Delete removes an anime.
//
// Calls DELETE /api/animes/{id}.
func (c *AnimeClient) Delete(ctx context.Context, id int64) error {
	return c.doRequest(ctx, http.MethodDelete, animePath(id), nil, nil)
}

func animePath(id int64) string {
	return fmt.Sprintf("/api/animes/%d", id)
}

// IsTransport reports whether err means the request never completed.
func IsTransport(err error) bool {
	return errors.Is(err, shared.ErrTransport)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
}
