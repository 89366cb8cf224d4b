package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to the portfolio backend (project service + directory)
type Client struct {
	baseURL string
	http    *resty.Client
}

// NewClient creates a backend API client. An empty token is allowed for
// anonymous/dev backends.
func NewClient(baseURL, token string) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
	}

	client.http = resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry on 429 (Too Many Requests) and 5xx server errors
			return r.StatusCode() == 429 || (r.StatusCode() >= 500 && r.StatusCode() <= 504)
		})

	if token != "" {
		client.http.SetAuthToken(token)
	}

	return client
}

// CreateProject sends a project draft to the backend and returns the
// confirmed record with the backend-assigned id.
func (c *Client) CreateProject(ctx context.Context, payload ProjectCreatePayload) (*ProjectRecord, error) {
	var rec ProjectRecord
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&rec).
		Post(c.buildURL("api/v1/projects"))
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("backend returned %s", resp.Status())
	}
	return &rec, nil
}

// ListProjects fetches the project list for the given manager/actor,
// with tasks embedded.
func (c *Client) ListProjects(ctx context.Context, userID string) ([]ProjectRecord, error) {
	var out ProjectListResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"manager_user_id": userID,
			"include_tasks":   "true",
		}).
		SetResult(&out).
		Get(c.buildURL("api/v1/projects"))
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("backend returned %s", resp.Status())
	}
	return out.Projects, nil
}

// SaveSnapshot pushes the full local collections to the backend
// (legacy fallback sync path).
func (c *Client) SaveSnapshot(ctx context.Context, payload SnapshotPayload) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Put(c.buildURL("api/v1/portfolio/snapshot"))
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("backend returned %s", resp.Status())
	}
	return nil
}

// GetUser fetches a user row from the directory
func (c *Client) GetUser(ctx context.Context, userID string) (*UserRecord, error) {
	var rec UserRecord
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&rec).
		Get(c.buildURL(fmt.Sprintf("api/v1/users/%s", userID)))
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("backend returned %s", resp.Status())
	}
	return &rec, nil
}

// GetTeam fetches a team row from the directory
func (c *Client) GetTeam(ctx context.Context, teamID string) (*TeamRecord, error) {
	var rec TeamRecord
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&rec).
		Get(c.buildURL(fmt.Sprintf("api/v1/teams/%s", teamID)))
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("backend returned %s", resp.Status())
	}
	return &rec, nil
}

// buildURL constructs the full URL for an endpoint
func (c *Client) buildURL(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "/")
	return fmt.Sprintf("%s/%s", c.baseURL, endpoint)
}

// SetTimeout allows customizing the timeout for specific operations
func (c *Client) SetTimeout(timeout time.Duration) {
	c.http.SetTimeout(timeout)
}
