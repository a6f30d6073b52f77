// Package moltbook provides the API client used to publish generated posts
// back to Moltbook.
package moltbook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/busse/molt-in-the-mist/pkg/errors"
	"github.com/busse/molt-in-the-mist/pkg/httputil"
	"github.com/busse/molt-in-the-mist/pkg/observability"
)

const (
	// DefaultBaseURL is the production Moltbook API.
	DefaultBaseURL = "https://www.moltbook.com/api/v1"

	// DefaultSubmolt is where announcement posts land without explicit
	// targeting.
	DefaultSubmolt = "general"
)

// PostRequest is the payload for creating a post.
type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Submolt string `json:"submolt"`
}

// PostResponse is the API's reply to a created post. The API has shipped
// both a flat and a nested shape, so both are accepted.
type PostResponse struct {
	ID   string `json:"id"`
	Post struct {
		ID string `json:"id"`
	} `json:"post"`
}

// PostID returns the created post's ID regardless of response shape.
func (r *PostResponse) PostID() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Post.ID
}

// URL returns the public link to the created post, or empty when no ID was
// returned.
func (r *PostResponse) URL() string {
	id := r.PostID()
	if id == "" {
		return ""
	}
	return "https://www.moltbook.com/post/" + id
}

// Client talks to the Moltbook posts API.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates a client for the given API key. An empty baseURL uses
// production.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized, "missing Moltbook API key (set MOLTBOOK_API_KEY)")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    httputil.NewHTTPClient(),
		baseURL: baseURL,
		apiKey:  apiKey,
	}, nil
}

// CreatePost publishes a post, retrying transient failures with backoff.
// Each call carries one idempotency key across all attempts so a retried
// request cannot double-post.
func (c *Client) CreatePost(ctx context.Context, req PostRequest) (*PostResponse, error) {
	if req.Title == "" {
		return nil, errors.New(errors.ErrCodeInvalidData, "post title is required")
	}
	if req.Submolt == "" {
		req.Submolt = DefaultSubmolt
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode post payload")
	}

	idempotencyKey := uuid.NewString()
	var result PostResponse
	err = httputil.RetryWithBackoff(ctx, func() error {
		return c.doCreate(ctx, payload, idempotencyKey, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) doCreate(ctx context.Context, payload []byte, idempotencyKey string, result *PostResponse) error {
	url := c.baseURL + "/posts"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Idempotency-Key", idempotencyKey)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		observability.HTTP().OnRequest(ctx, http.MethodPost, url, 0, time.Since(start), err)
		return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "post to Moltbook")}
	}
	defer resp.Body.Close()
	observability.HTTP().OnRequest(ctx, http.MethodPost, url, resp.StatusCode, time.Since(start), nil)

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidData, err, "decode Moltbook response")
	}
	return nil
}

// checkStatus maps HTTP status codes to typed errors. Server errors and
// rate limits are retryable; other client errors are terminal and include
// the response body for diagnosis.
func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code >= 500:
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "Moltbook server error: status %d", code),
		}
	case code == http.StatusTooManyRequests:
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeRateLimited, "Moltbook rate limit: status %d", code),
		}
	case code == http.StatusUnauthorized:
		return errors.New(errors.ErrCodeUnauthorized, "Moltbook rejected the API key")
	case code == http.StatusForbidden:
		return errors.New(errors.ErrCodeForbidden, "not allowed to post: %s", readBody(resp))
	default:
		return errors.New(errors.ErrCodeInvalidData, "Moltbook returned status %d: %s", code, readBody(resp))
	}
}

func readBody(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 2048))
	if err != nil || len(data) == 0 {
		return "no response body"
	}
	return string(data)
}

// String implements a terse description for logs.
func (c *Client) String() string {
	return fmt.Sprintf("moltbook.Client(%s)", c.baseURL)
}
