// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "palette-dots/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the image locator.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the image search URL (Bing Image Search v7 by default).
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// APIKey is the subscription key sent in Ocp-Apim-Subscription-Key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// PaletteMethod selects the quantizer used by the extractor.
type PaletteMethod string

const (
	MethodKMeans    PaletteMethod = "kmeans"
	MethodDominant  PaletteMethod = "dominant"
	MethodProminent PaletteMethod = "prominent"
)

// PaletteConfig holds settings for the palette extractor.
type PaletteConfig struct {
	HTTPConfig `yaml:",inline"`

	// Count is the number of colors to extract (default 5).
	Count int `json:"count" yaml:"count"`

	// Method selects the quantizer: kmeans, dominant, or prominent.
	Method PaletteMethod `json:"method" yaml:"method"`

	// MaxBytes caps the downloaded image payload (default 32 MiB).
	MaxBytes int64 `json:"max_bytes" yaml:"max_bytes"`
}

// CanvasKind identifies the rendering surface backend.
type CanvasKind string

const (
	CanvasPNG  CanvasKind = "png"
	CanvasSVG  CanvasKind = "svg"
	CanvasNone CanvasKind = "none"
)

// RenderConfig holds settings for the palette renderer and its canvas.
type RenderConfig struct {
	// Repeats is how many dots are drawn per palette color (default 20).
	Repeats int `json:"repeats" yaml:"repeats"`

	// Seed seeds the dot placement source; zero picks a random seed.
	Seed uint64 `json:"seed" yaml:"seed"`

	// Canvas selects the backend: png, svg, or none.
	Canvas CanvasKind `json:"canvas" yaml:"canvas"`

	// Output is the file the png and svg backends write to.
	Output string `json:"output" yaml:"output"`

	// Size is the side length of the square canvas in pixels (default 500).
	Size int `json:"size" yaml:"size"`
}

// Config groups all stage configurations.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Palette PaletteConfig `json:"palette" yaml:"palette"`
	Render  RenderConfig  `json:"render" yaml:"render"`
}
