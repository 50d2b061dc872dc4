// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package wordpress talks to a WordPress site through its REST API using an
// application password, and publishes local articles there as drafts.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotConfigured is returned when the site URL or credentials are missing.
var ErrNotConfigured = errors.New("wordpress connection not configured")

// Config holds the connection settings for one WordPress site.
type Config struct {
	BaseURL     string
	Username    string
	AppPassword string
}

// Configured reports whether all three connection values are present.
func (c Config) Configured() bool {
	return c.BaseURL != "" && c.Username != "" && c.AppPassword != ""
}

// APIError is a non-2xx answer from the WordPress REST API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wordpress: status %d: %s", e.Status, e.Message)
}

// Term is a category or tag as returned by the taxonomy endpoints.
type Term struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PostInput is the body of a post creation request.
type PostInput struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Status     string  `json:"status"`
	Categories []int64 `json:"categories,omitempty"`
	Tags       []int64 `json:"tags,omitempty"`
}

// Post is the subset of the created post we keep.
type Post struct {
	ID   int64  `json:"id"`
	Link string `json:"link"`
}

// Client is a thin REST client for /wp-json/wp/v2.
type Client struct {
	config Config
	http   *http.Client
}

// NewClient creates a client. The base URL loses any trailing slash.
func NewClient(cfg Config) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		config: cfg,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether the client can make authenticated calls.
func (c *Client) Configured() bool {
	return c != nil && c.config.Configured()
}

// BaseURL returns the site URL without a trailing slash.
func (c *Client) BaseURL() string { return c.config.BaseURL }

// EditURL returns the admin edit page of a post.
func (c *Client) EditURL(postID int64) string {
	return fmt.Sprintf("%s/wp-admin/post.php?post=%d&action=edit", c.config.BaseURL, postID)
}

// SearchCategories returns categories whose name matches the search term.
func (c *Client) SearchCategories(ctx context.Context, name string) ([]Term, error) {
	return c.searchTerms(ctx, "categories", name)
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, name string) (*Term, error) {
	return c.createTerm(ctx, "categories", name)
}

// SearchTags returns tags whose name matches the search term.
func (c *Client) SearchTags(ctx context.Context, name string) ([]Term, error) {
	return c.searchTerms(ctx, "tags", name)
}

// CreateTag creates a tag.
func (c *Client) CreateTag(ctx context.Context, name string) (*Term, error) {
	return c.createTerm(ctx, "tags", name)
}

// CreatePost creates a post.
func (c *Client) CreatePost(ctx context.Context, in PostInput) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPost, "posts", nil, in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Ping checks the credentials against /users/me.
func (c *Client) Ping(ctx context.Context) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	return c.do(ctx, http.MethodGet, "users/me", nil, nil, nil)
}

func (c *Client) searchTerms(ctx context.Context, kind, name string) ([]Term, error) {
	var terms []Term
	q := url.Values{"search": {name}}
	if err := c.do(ctx, http.MethodGet, kind, q, nil, &terms); err != nil {
		return nil, err
	}
	return terms, nil
}

func (c *Client) createTerm(ctx context.Context, kind, name string) (*Term, error) {
	var term Term
	if err := c.do(ctx, http.MethodPost, kind, nil, map[string]string{"name": name}, &term); err != nil {
		return nil, err
	}
	return &term, nil
}

// do performs one authenticated call and decodes the JSON answer into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.config.BaseURL + "/wp-json/wp/v2/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("wordpress marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("wordpress request: %w", err)
	}
	req.SetBasicAuth(c.config.Username, c.config.AppPassword)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("wordpress %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("wordpress read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &payload) == nil {
			apiErr.Code = payload.Code
			apiErr.Message = payload.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("wordpress decode %s: %w", path, err)
	}
	return nil
}
