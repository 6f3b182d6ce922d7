// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP transport used by the E-utilities client.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ErrStatus matches any *StatusError with errors.Is.
var ErrStatus = errors.New("unexpected HTTP status")

// StatusError reports a response whose status was not 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.URL, e.StatusCode)
}

// Is lets errors.Is(err, ErrStatus) succeed.
func (e *StatusError) Is(target error) bool { return target == ErrStatus }

// Get issues a GET for base with params as the query string and returns the
// full response body. Any status other than 200 OK yields a *StatusError
// and the body is discarded. No retries are attempted.
func Get(ctx context.Context, client *http.Client, base string, params url.Values, userAgent string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	reqURL := base
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: base, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
