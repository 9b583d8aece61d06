package icu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const userAgent = "intervalsicu-mcp-server/1.0"

// basicAuthUser is the literal username Intervals.icu expects for API key
// auth; the key itself goes in the password slot.
const basicAuthUser = "API_KEY"

// Client calls the Intervals.icu REST API. A single Client (and its
// underlying connection pool) is shared by every tool invocation; all
// methods are safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client targeting the given base URL. apiKey is the
// process-wide default; individual calls may override it.
func NewClient(baseURL, apiKey string, log *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// Do issues one authenticated request and decodes the JSON response into
// an untyped value (the API returns lists, objects, and keyed maps
// depending on the endpoint). body is serialized as JSON for POST/PUT.
// An empty apiKey falls back to the client default; if neither is set the
// call short-circuits without touching the network.
func (c *Client) Do(ctx context.Context, method, path string, params url.Values, body any, apiKey string) (any, error) {
	key := apiKey
	if key == "" {
		key = c.apiKey
	}
	reqID := uuid.NewString()
	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	if key == "" {
		c.log.Error("no API key for request", "url", fullURL, "request_id", reqID)
		return nil, &Error{Kind: KindMissingCredential, Message: "API key is required. Set INTERVALS_API_KEY or pass api_key"}
	}

	var reqBody io.Reader
	if body != nil && (method == http.MethodPost || method == http.MethodPut) {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindRequest, Message: fmt.Sprintf("encode request body: %v", err), Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, &Error{Kind: KindRequest, Message: err.Error(), Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(basicAuthUser, key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("request error", "url", fullURL, "request_id", reqID, "error", err)
		return nil, &Error{Kind: KindRequest, Message: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("read body failed", "url", fullURL, "request_id", reqID, "error", err)
		return nil, &Error{Kind: KindRequest, Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := statusMessage(resp.StatusCode, string(respBody))
		c.log.Error("HTTP error", "url", fullURL, "request_id", reqID, "status", resp.StatusCode, "message", msg)
		return nil, &Error{Kind: KindHTTPStatus, StatusCode: resp.StatusCode, Message: msg}
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return map[string]any{}, nil
	}

	var decoded any
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		c.log.Error("invalid JSON in response", "url", fullURL, "request_id", reqID, "error", err)
		return nil, &Error{Kind: KindDecode, Message: "Invalid JSON in response", Err: err}
	}
	return decoded, nil
}

func dateParams(oldest, newest string) url.Values {
	v := url.Values{}
	v.Set("oldest", oldest)
	v.Set("newest", newest)
	return v
}

// Activities lists activities for an athlete between oldest and newest
// (YYYY-MM-DD), capped at limit.
func (c *Client) Activities(ctx context.Context, athleteID, oldest, newest string, limit int, apiKey string) (any, error) {
	params := dateParams(oldest, newest)
	params.Set("limit", strconv.Itoa(limit))
	return c.Do(ctx, http.MethodGet, "/athlete/"+athleteID+"/activities", params, nil, apiKey)
}

// Activity fetches a single activity by ID.
func (c *Client) Activity(ctx context.Context, activityID, apiKey string) (any, error) {
	return c.Do(ctx, http.MethodGet, "/activity/"+activityID, nil, nil, apiKey)
}

// ActivityIntervals fetches per-interval metrics for an activity.
func (c *Client) ActivityIntervals(ctx context.Context, activityID, apiKey string) (any, error) {
	return c.Do(ctx, http.MethodGet, "/activity/"+activityID+"/intervals", nil, nil, apiKey)
}

// Events lists calendar events between oldest and newest (YYYY-MM-DD).
func (c *Client) Events(ctx context.Context, athleteID, oldest, newest, apiKey string) (any, error) {
	return c.Do(ctx, http.MethodGet, "/athlete/"+athleteID+"/events", dateParams(oldest, newest), nil, apiKey)
}

// Event fetches a single event by ID.
func (c *Client) Event(ctx context.Context, athleteID, eventID, apiKey string) (any, error) {
	return c.Do(ctx, http.MethodGet, "/athlete/"+athleteID+"/event/"+eventID, nil, nil, apiKey)
}

// CreateEvent posts a new calendar event.
func (c *Client) CreateEvent(ctx context.Context, athleteID string, event map[string]any, apiKey string) (any, error) {
	return c.Do(ctx, http.MethodPost, "/athlete/"+athleteID+"/events", nil, event, apiKey)
}

// UpdateEvent updates an existing calendar event.
func (c *Client) UpdateEvent(ctx context.Context, athleteID, eventID string, event map[string]any, apiKey string) (any, error) {
	return c.Do(ctx, http.MethodPut, "/athlete/"+athleteID+"/events/"+eventID, nil, event, apiKey)
}

// DeleteEvent removes a calendar event.
func (c *Client) DeleteEvent(ctx context.Context, athleteID, eventID, apiKey string) (any, error) {
	return c.Do(ctx, http.MethodDelete, "/athlete/"+athleteID+"/events/"+eventID, nil, nil, apiKey)
}

// Wellness fetches wellness entries between oldest and newest (YYYY-MM-DD).
func (c *Client) Wellness(ctx context.Context, athleteID, oldest, newest, apiKey string) (any, error) {
	return c.Do(ctx, http.MethodGet, "/athlete/"+athleteID+"/wellness", dateParams(oldest, newest), nil, apiKey)
}
