package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/busse/molt-in-the-mist/pkg/observability"
)

// defaultTimeout bounds a single download request.
const defaultTimeout = 30 * time.Second

// NewHTTPClient returns an http.Client with the default timeout applied.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// Download fetches url and returns the response body, retrying transient
// failures (network errors and 5xx responses) with backoff. 4xx responses
// fail immediately.
func Download(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = NewHTTPClient()
	}

	var body []byte
	start := time.Now()
	err := RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := client.Do(req)
		if err != nil {
			return &RetryableError{Err: err}
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return &RetryableError{Err: fmt.Errorf("server error: %s", resp.Status)}
		case resp.StatusCode >= 400:
			return fmt.Errorf("request failed: %s", resp.Status)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return &RetryableError{Err: err}
		}
		return nil
	})

	status := http.StatusOK
	if err != nil {
		status = 0
	}
	observability.HTTP().OnRequest(ctx, http.MethodGet, url, status, time.Since(start), err)
	return body, err
}
