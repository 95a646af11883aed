// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	svg "github.com/ajstarks/svgo"
	"github.com/gogpu/gg"
)

// DefaultSize is the side length in pixels of the square output canvas.
const DefaultSize = 500

// PNGCanvas rasterizes the surface with gg and writes it as a PNG file.
type PNGCanvas struct {
	*Surface
	Path string
	Size int
}

// NewPNGCanvas returns a PNG canvas of size×size pixels written to path.
func NewPNGCanvas(path string, size int) *PNGCanvas {
	if size <= 0 {
		size = DefaultSize
	}
	return &PNGCanvas{Surface: NewSurface(), Path: path, Size: size}
}

// Save rasterizes the background, strokes and dots and replaces Path.
func (c *PNGCanvas) Save() error {
	dc := gg.NewContext(c.Size, c.Size)

	bg := c.Background()
	dc.SetRGB(unit(bg.R), unit(bg.G), unit(bg.B))
	dc.DrawRectangle(0, 0, float64(c.Size), float64(c.Size))
	dc.Fill()

	dc.SetLineWidth(1)
	for _, s := range c.Strokes() {
		x1, y1 := toPixel(s.From, c.Size)
		x2, y2 := toPixel(s.To, c.Size)
		dc.SetRGB(unit(s.Color.R), unit(s.Color.G), unit(s.Color.B))
		dc.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
		dc.Stroke()
	}

	for _, d := range c.Dots() {
		x, y := toPixel(d.At, c.Size)
		dc.SetRGB(unit(d.Color.R), unit(d.Color.G), unit(d.Color.B))
		dc.DrawCircle(float64(x), float64(y), float64(d.Diameter)/2)
		dc.Fill()
	}

	tmpPath, err := reserveTemp(c.Path)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("encoding png: %w", err)
	}
	return commitTemp(tmpPath, c.Path)
}

// SVGCanvas writes the surface as an SVG document with svgo.
type SVGCanvas struct {
	*Surface
	Path string
	Size int
}

// NewSVGCanvas returns an SVG canvas of size×size units written to path.
func NewSVGCanvas(path string, size int) *SVGCanvas {
	if size <= 0 {
		size = DefaultSize
	}
	return &SVGCanvas{Surface: NewSurface(), Path: path, Size: size}
}

// Save writes the background, strokes and dots and replaces Path.
func (c *SVGCanvas) Save() error {
	tmpPath, err := reserveTemp(c.Path)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("opening temp file: %w", err)
	}
	c.Encode(f)
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	return commitTemp(tmpPath, c.Path)
}

// Encode writes the SVG document to w.
func (c *SVGCanvas) Encode(w io.Writer) {
	doc := svg.New(w)
	doc.Start(c.Size, c.Size)
	doc.Title("palette-dots")

	bg := c.Background()
	doc.Rect(0, 0, c.Size, c.Size, doc.RGB(int(bg.R), int(bg.G), int(bg.B)))

	for _, s := range c.Strokes() {
		x1, y1 := toPixel(s.From, c.Size)
		x2, y2 := toPixel(s.To, c.Size)
		doc.Line(x1, y1, x2, y2, fmt.Sprintf("stroke:rgb(%d,%d,%d);stroke-width:1", s.Color.R, s.Color.G, s.Color.B))
	}

	for _, d := range c.Dots() {
		x, y := toPixel(d.At, c.Size)
		doc.Circle(x, y, d.Diameter/2, doc.RGB(int(d.Color.R), int(d.Color.G), int(d.Color.B)))
	}
	doc.End()
}

// toPixel maps centered, y-up canvas coordinates to top-left, y-down pixels.
func toPixel(p Point, size int) (int, int) {
	return size/2 + p.X, size/2 - p.Y
}

func unit(v uint8) float64 { return float64(v) / 255 }

// reserveTemp creates an empty temp file next to dest so the final rename
// stays on one filesystem.
func reserveTemp(dest string) (string, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, ".palette-*"+filepath.Ext(dest))
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	return name, nil
}

func commitTemp(tmpPath, dest string) error {
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
