// internal/bugzilla/client.go
//
// Package bugzilla is a thin client for the Bugzilla REST API
// (https://bugzilla.readthedocs.io/en/latest/api/). Reads are anonymous;
// writes require the caller's API key.
package bugzilla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public Mozilla instance.
const DefaultBaseURL = "https://bugzilla.mozilla.org/rest"

// userFields is the column set requested for per-user dashboards.
const userFields = "id,summary,last_change_time,cf_fx_iteration,whiteboard,keywords,type,status,flags"

// Client talks to one Bugzilla instance.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New builds a client. An empty baseURL falls back to DefaultBaseURL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     logger,
	}
}

// GetBug fetches a single bug by id.
func (c *Client) GetBug(ctx context.Context, id string) (Bug, error) {
	var resp searchResponse
	if err := c.get(ctx, "/bug/"+url.PathEscape(id), nil, &resp); err != nil {
		return Bug{}, err
	}
	if len(resp.Bugs) == 0 {
		return Bug{}, ErrNoBug
	}
	return resp.Bugs[0], nil
}

// SearchWhiteboard returns bugs whose whiteboard contains value.
func (c *Client) SearchWhiteboard(ctx context.Context, value string) ([]Bug, error) {
	q := url.Values{}
	q.Set("whiteboard", value)
	var resp searchResponse
	if err := c.get(ctx, "/bug", q, &resp); err != nil {
		return nil, err
	}
	return resp.Bugs, nil
}

// SearchQuicksearch runs a Bugzilla quicksearch expression.
func (c *Client) SearchQuicksearch(ctx context.Context, query string) ([]Bug, error) {
	q := url.Values{}
	q.Set("quicksearch", query)
	var resp searchResponse
	if err := c.get(ctx, "/bug", q, &resp); err != nil {
		return nil, err
	}
	return resp.Bugs, nil
}

// AssignedTo returns the user's open assigned bugs, most recently changed
// first.
func (c *Client) AssignedTo(ctx context.Context, email string) ([]Bug, error) {
	q := userQuery("assigned_to", email)
	q.Set("resolution", "---")
	q.Set("limit", "50")
	return c.search(ctx, q)
}

// FlaggedFor returns open bugs with a flag requested from the user
// (review, needinfo and similar).
func (c *Client) FlaggedFor(ctx context.Context, email string) ([]Bug, error) {
	q := userQuery("requestees.login_name", email)
	q.Set("resolution", "---")
	q.Set("limit", "50")
	return c.search(ctx, q)
}

// CommentedBy returns bugs the user recently commented on, regardless of
// resolution.
func (c *Client) CommentedBy(ctx context.Context, email string) ([]Bug, error) {
	q := userQuery("commenter", email)
	q.Set("limit", "30")
	return c.search(ctx, q)
}

// RecentlyClosedBy returns the user's fixed bugs, most recently changed
// first.
func (c *Client) RecentlyClosedBy(ctx context.Context, email string) ([]Bug, error) {
	q := userQuery("assigned_to", email)
	q.Set("resolution", "FIXED")
	q.Set("limit", "50")
	return c.search(ctx, q)
}

// UpdateBug applies field changes to a bug on behalf of the caller.
// fields follows the REST update shape, e.g. {"status": "RESOLVED",
// "resolution": "FIXED"} or {"whiteboard": "..."}.
func (c *Client) UpdateBug(ctx context.Context, id, apiKey string, fields map[string]any) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("bugzilla: encode update: %w", err)
	}

	u := c.baseURL + "/bug/" + url.PathEscape(id) + "?api_key=" + url.QueryEscape(apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("bugzilla: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("bugzilla: put /bug/%s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}
	return nil
}

// search runs a field-based /bug query.
func (c *Client) search(ctx context.Context, q url.Values) ([]Bug, error) {
	var resp searchResponse
	if err := c.get(ctx, "/bug", q, &resp); err != nil {
		return nil, err
	}
	return resp.Bugs, nil
}

// userQuery is the shared shape of the per-user dashboard queries: request
// the dashboard columns, match one field against the user, newest first.
func userQuery(field, email string) url.Values {
	q := url.Values{}
	q.Set("include_fields", userFields)
	q.Set("order", "changeddate DESC")
	q.Set("f1", field)
	q.Set("o1", "equals")
	q.Set("v1", email)
	return q
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dst any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("bugzilla: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("bugzilla: get %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("bugzilla request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("took", time.Since(start).String()))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &StatusError{Code: resp.StatusCode, Body: string(body)}
}

// ValidBugID reports whether s looks like a Bugzilla bug number.
func ValidBugID(s string) bool {
	if s == "" {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}
