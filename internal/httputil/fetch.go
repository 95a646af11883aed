// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the outbound GET helper shared by the locator
// and the extractor. Failures are returned as-is; nothing is retried.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxBytes bounds response bodies when the caller passes zero.
const DefaultMaxBytes int64 = 32 << 20

// ErrTooLarge is returned when a response body exceeds the byte limit.
var ErrTooLarge = errors.New("response body exceeds size limit")

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Request describes a single GET.
type Request struct {
	URL       string
	UserAgent string
	Accept    string
	Header    http.Header
	MaxBytes  int64
}

// Get issues one GET and returns the full body. Transport failures, non-2xx
// statuses and bodies larger than MaxBytes are errors; the body is always
// drained and closed.
func Get(ctx context.Context, client *http.Client, r Request) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}
	if r.Accept != "" {
		req.Header.Set("Accept", r.Accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: r.URL, StatusCode: resp.StatusCode}
	}

	limit := r.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, limit)
	}
	return data, nil
}
