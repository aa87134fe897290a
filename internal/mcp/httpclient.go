package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/hevystats/internal/analytics"
	"github.com/meltforce/hevystats/internal/models"
	"github.com/meltforce/hevystats/internal/pipeline"
)

// HTTPClient implements DataSource by calling the hevystats REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the dataset lives on the server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func filterParams(f analytics.Filter) url.Values {
	v := url.Values{}
	if f.Year != 0 {
		v.Set("year", strconv.Itoa(f.Year))
	}
	if f.Routine != "" {
		v.Set("routine", f.Routine)
	}
	return v
}

func (c *HTTPClient) Sets(ctx context.Context, f analytics.Filter, exercise string) ([]models.EnrichedSet, error) {
	params := filterParams(f)
	if exercise != "" {
		params.Set("exercise", exercise)
	}
	var sets []models.EnrichedSet
	if err := c.get(ctx, "/api/v1/sets", params, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

func (c *HTTPClient) Overview(ctx context.Context, f analytics.Filter) (*analytics.Overview, error) {
	var ov analytics.Overview
	if err := c.get(ctx, "/api/v1/summary", filterParams(f), &ov); err != nil {
		return nil, err
	}
	return &ov, nil
}

func (c *HTTPClient) Streak(ctx context.Context, f analytics.Filter) (*analytics.Streak, error) {
	var st analytics.Streak
	if err := c.get(ctx, "/api/v1/streak", filterParams(analytics.Filter{Routine: f.Routine}), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *HTTPClient) MonthlyVolume(ctx context.Context, f analytics.Filter, group string, perWorkout bool) ([]analytics.MonthlyPoint, error) {
	params := filterParams(f)
	if group != "" {
		params.Set("group", group)
	}
	if perWorkout {
		params.Set("per_workout", "true")
	}
	var points []analytics.MonthlyPoint
	if err := c.get(ctx, "/api/v1/volume/monthly", params, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (c *HTTPClient) Candidates(ctx context.Context, f analytics.Filter, minSessions int) ([]analytics.Candidate, error) {
	params := filterParams(f)
	if minSessions > 0 {
		params.Set("min_sessions", strconv.Itoa(minSessions))
	}
	var out []analytics.Candidate
	if err := c.get(ctx, "/api/v1/exercises", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Progression(ctx context.Context, f analytics.Filter, exercise, gym string) ([]analytics.SessionProgress, error) {
	params := filterParams(f)
	params.Set("exercise", exercise)
	if gym != "" {
		params.Set("gym", gym)
	}
	var out []analytics.SessionProgress
	if err := c.get(ctx, "/api/v1/exercises/progression", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Bodyweight(ctx context.Context, f analytics.Filter) ([]models.BodyweightSample, error) {
	var out []models.BodyweightSample
	if err := c.get(ctx, "/api/v1/bodyweight", filterParams(f), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Quality(ctx context.Context) (*pipeline.Quality, error) {
	var q pipeline.Quality
	if err := c.get(ctx, "/api/v1/quality", nil, &q); err != nil {
		return nil, err
	}
	return &q, nil
}
