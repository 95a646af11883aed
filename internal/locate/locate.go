// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package locate turns a free-text query into the URL of one matching image
// by calling a web image search API.
package locate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/pdiddy/palette-dots/internal/httputil"
	"github.com/pdiddy/palette-dots/pkg/types"
)

// DefaultEndpoint is the Bing Image Search v7 endpoint.
const DefaultEndpoint = "https://api.bing.microsoft.com/v7.0/images/search"

const subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

// ErrNoResults is wrapped in the RetrievalError returned when the search
// answers with an empty result list.
var ErrNoResults = errors.New("no image results")

// Locator resolves a query to an image reference.
type Locator interface {
	Locate(ctx context.Context, query string) (types.ImageReference, error)
}

// BingLocator queries a Bing-compatible image search API.
type BingLocator struct {
	Client *http.Client
	Config types.SearchConfig
}

// NewBingLocator returns a locator for cfg. An empty endpoint falls back to
// DefaultEndpoint.
func NewBingLocator(client *http.Client, cfg types.SearchConfig) *BingLocator {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &BingLocator{Client: client, Config: cfg}
}

// Locate requests a single image result for query and returns its content
// URL. Transport failures, non-success statuses, malformed bodies and empty
// result lists are all RetrievalErrors.
func (l *BingLocator) Locate(ctx context.Context, query string) (types.ImageReference, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("query is empty")
	}

	params := url.Values{
		"q":     {query},
		"count": {"1"},
	}
	reqURL := l.Config.Endpoint
	if strings.Contains(reqURL, "?") {
		reqURL += "&" + params.Encode()
	} else {
		reqURL += "?" + params.Encode()
	}

	body, err := httputil.Get(ctx, l.Client, httputil.Request{
		URL:       reqURL,
		UserAgent: l.Config.UserAgent,
		Accept:    "application/json",
		Header:    http.Header{subscriptionKeyHeader: {l.Config.APIKey}},
	})
	if err != nil {
		return "", types.Retrieval("image search", err)
	}

	if err := validateResponse(body); err != nil {
		return "", types.Retrieval("image search response", err)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return "", types.Retrieval("parsing image search response", err)
	}
	if len(sr.Value) == 0 {
		return "", types.Retrieval("image search", fmt.Errorf("%w for %q", ErrNoResults, query))
	}

	contentURL := strings.TrimSpace(sr.Value[0].ContentURL)
	if contentURL == "" {
		return "", types.Retrieval("image search", fmt.Errorf("first result for %q has no contentUrl", query))
	}
	return types.ImageReference(contentURL), nil
}

// responseSchema describes the part of the image search answer the locator
// depends on.
const responseSchema = `{
  "type": "object",
  "required": ["value"],
  "properties": {
    "value": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["contentUrl"],
        "properties": {
          "contentUrl": {"type": "string"}
        }
      }
    }
  }
}`

var (
	compiledSchema *gojsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

func getSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchema))
	})
	return compiledSchema, compileErr
}

func validateResponse(body []byte) error {
	schema, err := getSchema()
	if err != nil {
		return fmt.Errorf("compiling response schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("malformed JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("unexpected response shape: %s", strings.Join(msgs, "; "))
}

// Bing image search JSON structures.
type searchResponse struct {
	Value []searchImage `json:"value"`
}

type searchImage struct {
	Name         string `json:"name"`
	ContentURL   string `json:"contentUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
}
