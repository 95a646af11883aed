// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/palette-dots/pkg/types"
)

// Canvas is an imperative, turtle-style drawing surface. Coordinates have
// the origin at the center with y growing upwards. Colors are interpreted in
// the current color mode (0..max per channel).
type Canvas interface {
	SetBackground(c types.Color)
	SetColorMode(max int)
	SetSpeed(speed int)
	SetPenColor(c types.Color)
	PenUp()
	PenDown()
	Goto(x, y int)
	Dot(diameter int)
	Clear()
	HideCursor()
	// Save persists what the surface currently shows.
	Save() error
}

// Point is a position in canvas coordinates.
type Point struct {
	X, Y int
}

// Dot is a filled circle recorded on a surface.
type Dot struct {
	At       Point
	Diameter int
	Color    types.Color
}

// Stroke is a line drawn by moving with the pen down.
type Stroke struct {
	From, To Point
	Color    types.Color
}

// Surface holds canvas state in memory. Backends embed it and only differ in
// how Save encodes the recorded dots and strokes.
type Surface struct {
	background types.Color
	pen        types.Color
	colorMode  int
	speed      int
	penDown    bool
	pos        Point
	hidden     bool
	dots       []Dot
	strokes    []Stroke
}

// NewSurface returns a surface with a black background, a white pen down at
// the origin and color mode 255.
func NewSurface() *Surface {
	return &Surface{
		pen:       types.Color{R: 255, G: 255, B: 255},
		colorMode: 255,
		penDown:   true,
	}
}

func (s *Surface) SetBackground(c types.Color) { s.background = s.scale(c) }

func (s *Surface) SetColorMode(max int) {
	if max > 0 {
		s.colorMode = max
	}
}

func (s *Surface) SetSpeed(speed int) { s.speed = speed }

func (s *Surface) SetPenColor(c types.Color) { s.pen = s.scale(c) }

func (s *Surface) PenUp() { s.penDown = false }

func (s *Surface) PenDown() { s.penDown = true }

func (s *Surface) Goto(x, y int) {
	to := Point{X: x, Y: y}
	if s.penDown && to != s.pos {
		s.strokes = append(s.strokes, Stroke{From: s.pos, To: to, Color: s.pen})
	}
	s.pos = to
}

func (s *Surface) Dot(diameter int) {
	s.dots = append(s.dots, Dot{At: s.pos, Diameter: diameter, Color: s.pen})
}

// Clear erases all drawing and returns the cursor to the origin. Background,
// pen and color mode are kept.
func (s *Surface) Clear() {
	s.dots = nil
	s.strokes = nil
	s.pos = Point{}
}

func (s *Surface) HideCursor() { s.hidden = true }

// Save is a no-op for a bare in-memory surface.
func (s *Surface) Save() error { return nil }

// Background returns the current background color.
func (s *Surface) Background() types.Color { return s.background }

// PenColor returns the current pen color.
func (s *Surface) PenColor() types.Color { return s.pen }

// ColorMode returns the maximum channel value colors are given in.
func (s *Surface) ColorMode() int { return s.colorMode }

// Speed returns the drawing speed last set.
func (s *Surface) Speed() int { return s.speed }

// Position returns the cursor position.
func (s *Surface) Position() Point { return s.pos }

// IsPenDown reports whether moves leave a stroke.
func (s *Surface) IsPenDown() bool { return s.penDown }

// Hidden reports whether the cursor was hidden.
func (s *Surface) Hidden() bool { return s.hidden }

// Dots returns the dots drawn since the last Clear.
func (s *Surface) Dots() []Dot { return s.dots }

// Strokes returns the pen strokes drawn since the last Clear.
func (s *Surface) Strokes() []Stroke { return s.strokes }

// scale maps a color given in the current color mode to 0..255.
func (s *Surface) scale(c types.Color) types.Color {
	if s.colorMode == 255 || s.colorMode <= 0 {
		return c
	}
	f := func(v uint8) uint8 {
		scaled := int(v) * 255 / s.colorMode
		return uint8(min(scaled, 255))
	}
	return types.Color{R: f(c.R), G: f(c.G), B: f(c.B)}
}

// NewCanvas returns the backend named by cfg.Canvas. An empty kind means
// png. The "none" kind records in memory and logs to log.
func NewCanvas(cfg types.RenderConfig, log logrus.FieldLogger) (Canvas, error) {
	switch cfg.Canvas {
	case "", types.CanvasPNG:
		return NewPNGCanvas(outputOr(cfg.Output, "palette.png"), cfg.Size), nil
	case types.CanvasSVG:
		return NewSVGCanvas(outputOr(cfg.Output, "palette.svg"), cfg.Size), nil
	case types.CanvasNone:
		return NewRecorder(log), nil
	default:
		return nil, fmt.Errorf("unknown canvas kind %q (want png, svg, or none)", cfg.Canvas)
	}
}

func outputOr(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}
