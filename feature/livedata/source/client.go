package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// requestTimeout bounds each upstream call independently of any retry loop.
const requestTimeout = 10 * time.Second

// fetchCached performs a GET through the adapter's private response cache.
// Transport failures classify as network errors, 429 as rate limiting and any
// other non-2xx as an API error.
func fetchCached(ctx context.Context, hc *http.Client, cache *respCache, sourceName, url string, ttl time.Duration) ([]byte, error) {
	if body, ok := cache.get(url, ttl); ok {
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/html")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, newNetworkError(sourceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(sourceName, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(sourceName, err)
	}

	cache.put(url, body)
	return body, nil
}
