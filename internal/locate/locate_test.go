// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package locate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/palette-dots/pkg/types"
)

func newTestLocator(ts *httptest.Server, key string) *BingLocator {
	return NewBingLocator(ts.Client(), types.SearchConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "palette-dots/test"},
		Endpoint:   ts.URL + "/v7.0/images/search",
		APIKey:     key,
	})
}

func TestLocateRequest(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"value":[{"name":"Link","contentUrl":"https://img.example/link.png"}]}`)
	}))
	defer ts.Close()

	ref, err := newTestLocator(ts, "key-123").Locate(context.Background(), "Link from Zelda")
	require.NoError(t, err)
	assert.Equal(t, types.ImageReference("https://img.example/link.png"), ref)

	assert.Equal(t, "/v7.0/images/search", captured.URL.Path)
	q := captured.URL.Query()
	assert.Equal(t, "Link from Zelda", q.Get("q"))
	assert.Equal(t, "1", q.Get("count"))
	assert.Equal(t, "key-123", captured.Header.Get("Ocp-Apim-Subscription-Key"))
	assert.Equal(t, "palette-dots/test", captured.Header.Get("User-Agent"))
}

func TestLocateTakesFirstResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"value":[{"contentUrl":"https://a.example/1.jpg"},{"contentUrl":"https://a.example/2.jpg"}]}`)
	}))
	defer ts.Close()

	ref, err := newTestLocator(ts, "k").Locate(context.Background(), "mario")
	require.NoError(t, err)
	assert.Equal(t, types.ImageReference("https://a.example/1.jpg"), ref)
}

func TestLocateFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"empty result list", http.StatusOK, `{"value":[]}`, "no image results"},
		{"missing value key", http.StatusOK, `{"_type":"Images"}`, "unexpected response shape"},
		{"missing contentUrl", http.StatusOK, `{"value":[{"name":"x"}]}`, "unexpected response shape"},
		{"blank contentUrl", http.StatusOK, `{"value":[{"contentUrl":"  "}]}`, "no contentUrl"},
		{"malformed json", http.StatusOK, `{"value":[`, "image search response"},
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad key"}`, "HTTP 401"},
		{"server error", http.StatusInternalServerError, ``, "HTTP 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			ref, err := newTestLocator(ts, "k").Locate(context.Background(), "Link from Zelda")
			require.Error(t, err)
			assert.Empty(t, ref)
			assert.ErrorIs(t, err, types.ErrRetrieval)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLocateEmptyResultsWrapsErrNoResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"value":[]}`)
	}))
	defer ts.Close()

	_, err := newTestLocator(ts, "k").Locate(context.Background(), "nothing")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestLocateNetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	l := newTestLocator(ts, "k")
	ts.Close()

	_, err := l.Locate(context.Background(), "Link from Zelda")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrRetrieval)
}

func TestLocateEmptyQuery(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
	}))
	defer ts.Close()

	_, err := newTestLocator(ts, "k").Locate(context.Background(), "   ")
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrRetrieval)
	assert.Zero(t, calls)
}

func TestNewBingLocatorDefaultsEndpoint(t *testing.T) {
	l := NewBingLocator(http.DefaultClient, types.SearchConfig{})
	assert.Equal(t, DefaultEndpoint, l.Config.Endpoint)
}
