// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures for palette-dots: the
// query and image reference that flow between stages, the extracted palette,
// stage configuration, and the closed set of error kinds the session loop
// handles.
package types

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultColorCount is the palette size used when a caller passes zero.
const DefaultColorCount = 5

// ImageReference is the URL of a remotely hosted image returned by the
// locator and consumed immediately by the extractor.
type ImageReference string

// Color is an RGB triple with each component in [0,255].
type Color struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// ColorFrom converts a go-colorful color to a Color, clamping out-of-gamut
// components first.
func ColorFrom(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Colorful returns c as a go-colorful color.
func (c Color) Colorful() colorful.Color {
	cc, _ := colorful.MakeColor(c.RGBA())
	return cc
}

// RGBA returns c as an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return c.Colorful().Hex()
}

// String renders the color as "(r, g, b)".
func (c Color) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// Palette is an ordered set of dominant colors, most dominant first.
type Palette []Color

// String renders the palette as "[(r, g, b), ...]".
func (p Palette) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Hex returns the "#rrggbb" form of every color in order.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}
