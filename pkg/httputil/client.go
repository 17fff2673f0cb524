package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// UserAgent identifies this tool to the OSM APIs, which require a
// descriptive agent string.
const UserAgent = "cityposter/2.0 (+https://github.com/citymaps/cityposter)"

// DefaultClient is shared by all upstream calls. Overpass queries for
// large radii can take a while to evaluate server-side.
var DefaultClient = &http.Client{Timeout: 180 * time.Second}

// Do executes req with the shared client and returns the response
// body. Transient failures (network errors, 429, 5xx) come back
// wrapped in [RetryableError] so callers can pass the operation to
// [Retry]; other non-2xx statuses fail permanently.
func Do(ctx context.Context, client *http.Client, req *http.Request) ([]byte, error) {
	if client == nil {
		client = DefaultClient
	}
	req = req.WithContext(ctx)
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RetryableError{Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{Err: fmt.Errorf("%s returned status %d", req.URL.Host, resp.StatusCode)}
	default:
		return nil, fmt.Errorf("%s returned status %d", req.URL.Host, resp.StatusCode)
	}
}
