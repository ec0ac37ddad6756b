package parse

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const fetchTimeout = 15 * time.Second

var httpClient = &http.Client{Timeout: fetchTimeout}

// IsURL reports whether source should be fetched over HTTP.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Open returns a reader for source, which is either an http(s) URL or a
// local file path. Non-2xx responses are errors.
func Open(ctx context.Context, source string) (io.ReadCloser, error) {
	if source == "" {
		return nil, fmt.Errorf("empty source")
	}
	if !IsURL(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %s", source, resp.Status)
	}
	return resp.Body, nil
}
