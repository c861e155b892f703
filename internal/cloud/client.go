package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/briantully/acquia-cli/internal/domain"
)

// Client is a minimal Cloud management API client. Every method is one
// blocking HTTP round trip; work-submitting calls return the platform
// Task that tracks the submitted job.
type Client struct {
	BaseURL    string
	Key        string
	Secret     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// New creates a client with sane defaults.
func New(baseURL, key, secret string) *Client {
	return &Client{
		BaseURL: baseURL,
		Key:     key,
		Secret:  secret,
		Timeout: 30 * time.Second,
	}
}

// APIError wraps non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

// ListApplications returns the applications visible to the credentials.
func (c *Client) ListApplications(ctx context.Context) ([]domain.Application, error) {
	var resp []domain.Application
	err := c.do(ctx, http.MethodGet, "applications", nil, &resp)
	return resp, err
}

// ListEnvironments returns an application's environments in platform
// order, with the environment kind resolved.
func (c *Client) ListEnvironments(ctx context.Context, appID string) ([]domain.Environment, error) {
	var resp []domain.Environment
	err := c.do(ctx, http.MethodGet, c.appPath(appID, "environments"), nil, &resp)
	if err != nil {
		return nil, err
	}
	for i := range resp {
		resp[i].Resolve()
	}
	return resp, nil
}

// ListDatabases returns an environment's databases in platform order.
func (c *Client) ListDatabases(ctx context.Context, appID, envID string) ([]domain.Database, error) {
	var resp []domain.Database
	err := c.do(ctx, http.MethodGet, c.envPath(appID, envID, "databases"), nil, &resp)
	return resp, err
}

// ListDomains returns an environment's domains in platform order.
func (c *Client) ListDomains(ctx context.Context, appID, envID string) ([]domain.Domain, error) {
	var resp []domain.Domain
	err := c.do(ctx, http.MethodGet, c.envPath(appID, envID, "domains"), nil, &resp)
	return resp, err
}

// ListServers returns an environment's servers.
func (c *Client) ListServers(ctx context.Context, appID, envID string) ([]domain.Server, error) {
	var resp []domain.Server
	err := c.do(ctx, http.MethodGet, c.envPath(appID, envID, "servers"), nil, &resp)
	return resp, err
}

// ListTasks returns an application's recent tasks.
func (c *Client) ListTasks(ctx context.Context, appID string) ([]domain.Task, error) {
	var resp []domain.Task
	err := c.do(ctx, http.MethodGet, c.appPath(appID, "tasks"), nil, &resp)
	return resp, err
}

// GetTask reads one task by identifier.
func (c *Client) GetTask(ctx context.Context, appID string, taskID int64) (domain.Task, error) {
	var resp domain.Task
	err := c.do(ctx, http.MethodGet, c.appPath(appID, fmt.Sprintf("tasks/%d", taskID)), nil, &resp)
	return resp, err
}

// CreateDatabaseBackup submits an on-demand backup of one database.
func (c *Client) CreateDatabaseBackup(ctx context.Context, appID, envID, dbName string) (domain.Task, error) {
	var resp domain.Task
	endpoint := c.envPath(appID, envID, fmt.Sprintf("databases/%s/backups", url.PathEscape(dbName)))
	err := c.do(ctx, http.MethodPost, endpoint, nil, &resp)
	return resp, err
}

// CopyDatabase submits a copy of a database from one environment into
// another. The target environment's copy is overwritten.
func (c *Client) CopyDatabase(ctx context.Context, appID, dbName, fromEnvID, toEnvID string) (domain.Task, error) {
	body := map[string]any{
		"name":   dbName,
		"source": fromEnvID,
	}
	var resp domain.Task
	err := c.do(ctx, http.MethodPost, c.envPath(appID, toEnvID, "databases"), body, &resp)
	return resp, err
}

// CopyFiles submits a copy of the managed file tree between
// environments.
func (c *Client) CopyFiles(ctx context.Context, appID, fromEnvID, toEnvID string) (domain.Task, error) {
	body := map[string]any{
		"source": fromEnvID,
	}
	var resp domain.Task
	err := c.do(ctx, http.MethodPost, c.envPath(appID, toEnvID, "files"), body, &resp)
	return resp, err
}

// PushCode submits a deployment of a branch or tag to an environment.
func (c *Client) PushCode(ctx context.Context, appID, envID, ref string) (domain.Task, error) {
	body := map[string]any{
		"ref": ref,
	}
	var resp domain.Task
	err := c.do(ctx, http.MethodPost, c.envPath(appID, envID, "code"), body, &resp)
	return resp, err
}

// PurgeCache submits a cache purge for one domain.
func (c *Client) PurgeCache(ctx context.Context, appID, envID, domainName string) (domain.Task, error) {
	var resp domain.Task
	endpoint := c.envPath(appID, envID, fmt.Sprintf("domains/%s/actions/purge", url.PathEscape(domainName)))
	err := c.do(ctx, http.MethodPost, endpoint, nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	u := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, u, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Key != "" {
		req.SetBasicAuth(c.Key, c.Secret)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) appPath(appID, p string) string {
	return fmt.Sprintf("applications/%s/%s", url.PathEscape(appID), strings.TrimLeft(p, "/"))
}

func (c *Client) envPath(appID, envID, p string) string {
	return c.appPath(appID, fmt.Sprintf("environments/%s/%s", url.PathEscape(envID), strings.TrimLeft(p, "/")))
}

func (c *Client) base() string {
	return strings.TrimRight(c.BaseURL, "/")
}
