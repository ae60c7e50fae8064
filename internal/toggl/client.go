package toggl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"

	"github.com/Tiliavir/toggl-audit/internal/model"
)

// DefaultBaseURL is the Toggl Track API v9 root.
const DefaultBaseURL = "https://api.track.toggl.com/api/v9"

// Client is an authenticated Toggl Track API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client that authenticates with the given API token.
// An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Workspaces returns the workspaces the token's user belongs to.
func (c *Client) Workspaces(ctx context.Context) ([]model.Workspace, error) {
	var out []model.Workspace
	if err := c.get(ctx, "/me/workspaces", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Projects returns the projects of a workspace.
func (c *Client) Projects(ctx context.Context, workspaceID int64) ([]model.Project, error) {
	var out []model.Project
	path := "/workspaces/" + strconv.FormatInt(workspaceID, 10) + "/projects"
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TimeEntries returns the user's entries started within [from, to] that
// belong to workspaceID.
func (c *Client) TimeEntries(ctx context.Context, workspaceID int64, from, to time.Time) ([]model.TimeEntry, error) {
	query := url.Values{
		"start_date": {from.UTC().Format(time.RFC3339)},
		"end_date":   {to.UTC().Format(time.RFC3339)},
	}
	var all []model.TimeEntry
	if err := c.get(ctx, "/me/time_entries", query, &all); err != nil {
		return nil, err
	}

	out := all[:0]
	for _, e := range all {
		if e.WorkspaceID == 0 || e.WorkspaceID == workspaceID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, into any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.token, "api_token")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("toggl API request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Path: path, Body: string(body)}
	}

	if err := sonic.Unmarshal(body, into); err != nil {
		return fmt.Errorf("decoding toggl response for %s: %w", path, err)
	}
	return nil
}

// APIError is returned when Toggl answers with a non-200 status.
type APIError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("toggl API error %d on %s: %s", e.StatusCode, e.Path, e.Body)
}
