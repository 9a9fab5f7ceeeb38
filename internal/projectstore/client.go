// Package projectstore is the client for the external persistence
// collaborator: a key-value store of named projects. Name uniqueness is
// enforced by the store, not here.
package projectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client communicates with the project store HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Record is the opaque project payload: name, outline structure, the draft
// (null when no draft has been generated), and the lifecycle status.
type Record struct {
	Name      string   `json:"name"`
	Structure []string `json:"structure"`
	Draft     *string  `json:"draft"`
	Status    string   `json:"status"`
	SavedAt   string   `json:"saved_at,omitempty"`
}

// Save stores or updates a project under its name.
func (c *Client) Save(ctx context.Context, rec Record) error {
	rec.SavedAt = time.Now().Format(time.RFC3339)
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+"/projects/"+url.PathEscape(rec.Name), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("save project %s: status %d: %s", rec.Name, resp.StatusCode, string(respBody))
	}
	return nil
}

// Get retrieves a project by name. Returns nil when the project does not
// exist.
func (c *Client) Get(ctx context.Context, name string) (*Record, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/projects/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("get project %s: status %d: %s", name, resp.StatusCode, string(respBody))
	}

	var rec Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	return &rec, nil
}

// List returns stored projects, newest first as the store reports them.
func (c *Client) List(ctx context.Context, limit int) ([]Record, error) {
	u := c.baseURL + "/projects"
	if limit > 0 {
		u += "?limit=" + url.QueryEscape(fmt.Sprintf("%d", limit))
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("list projects: status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Projects []Record `json:"projects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return result.Projects, nil
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
