// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/palette-dots/pkg/types"
)

var testPalette = types.Palette{
	{R: 200, G: 30, B: 30},
	{R: 30, G: 200, B: 30},
	{R: 30, G: 30, B: 200},
	{R: 240, G: 240, B: 10},
	{R: 250, G: 250, B: 250},
}

func newTestRenderer(seed uint64) (*Renderer, *Recorder) {
	rec := NewRecorder(nil)
	return New(rec, Options{Rand: NewRand(seed)}), rec
}

func TestRenderDotCountAndBounds(t *testing.T) {
	tests := []struct {
		name    string
		palette types.Palette
		repeats int
		want    int
	}{
		{"default repeats", testPalette, 0, 100},
		{"five by twenty", testPalette, 20, 100},
		{"single color", testPalette[:1], 7, 7},
		{"three by one", testPalette[:3], 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, rec := newTestRenderer(42)
			require.NoError(t, r.Render(tt.palette, tt.repeats))

			assert.Equal(t, tt.want, rec.DotCalls)
			require.Len(t, rec.Dots(), tt.want)
			for _, d := range rec.Dots() {
				assert.GreaterOrEqual(t, d.At.X, -200)
				assert.LessOrEqual(t, d.At.X, 200)
				assert.GreaterOrEqual(t, d.At.Y, -200)
				assert.LessOrEqual(t, d.At.Y, 200)
				assert.GreaterOrEqual(t, d.Diameter, 10)
				assert.LessOrEqual(t, d.Diameter, 50)
			}
		})
	}
}

func TestRenderCyclesPaletteInOrder(t *testing.T) {
	r, rec := newTestRenderer(7)
	require.NoError(t, r.Render(testPalette, 3))

	dots := rec.Dots()
	require.Len(t, dots, 15)
	for i, d := range dots {
		assert.Equal(t, testPalette[i%len(testPalette)], d.Color, "dot %d", i)
	}
}

func TestRenderLiftsPenBetweenDots(t *testing.T) {
	r, rec := newTestRenderer(1)
	require.NoError(t, r.Render(testPalette, 20))

	assert.Empty(t, rec.Strokes())
	assert.True(t, rec.IsPenDown())
}

func TestRenderSetsUpSurface(t *testing.T) {
	rec := NewRecorder(nil)
	rec.SetBackground(types.Color{R: 255, G: 255, B: 255})
	rec.SetColorMode(1)
	rec.SetSpeed(6)

	r := New(rec, Options{Rand: NewRand(3)})
	require.NoError(t, r.Render(testPalette[:1], 1))

	assert.Equal(t, types.Color{}, rec.Background())
	assert.Equal(t, 255, rec.ColorMode())
	assert.Equal(t, 0, rec.Speed())
}

func TestRenderUsesFullRange(t *testing.T) {
	r, rec := newTestRenderer(99)
	require.NoError(t, r.Render(testPalette[:1], 5000))

	minX, maxX, minD, maxD := 0, 0, 100, 0
	for _, d := range rec.Dots() {
		minX, maxX = min(minX, d.At.X), max(maxX, d.At.X)
		minD, maxD = min(minD, d.Diameter), max(maxD, d.Diameter)
	}
	assert.Equal(t, -200, minX)
	assert.Equal(t, 200, maxX)
	assert.Equal(t, 10, minD)
	assert.Equal(t, 50, maxD)
}

func TestRenderSameSeedSameDrawing(t *testing.T) {
	r1, rec1 := newTestRenderer(1234)
	r2, rec2 := newTestRenderer(1234)
	require.NoError(t, r1.Render(testPalette, 4))
	require.NoError(t, r2.Render(testPalette, 4))
	assert.Equal(t, rec1.Dots(), rec2.Dots())
}

func TestRenderRejectsBadInput(t *testing.T) {
	r, rec := newTestRenderer(1)
	assert.Error(t, r.Render(nil, 20))
	assert.Error(t, r.Render(testPalette, -1))
	assert.Zero(t, rec.DotCalls)
}

func TestRendererLifecycle(t *testing.T) {
	r, rec := newTestRenderer(5)
	require.NoError(t, r.Init())
	require.NoError(t, r.Render(testPalette, 2))
	require.NoError(t, r.Flush())
	assert.Equal(t, 1, rec.SaveCalls)
	assert.Len(t, rec.Dots(), 10)

	require.NoError(t, r.Reset())
	assert.Empty(t, rec.Dots())
	assert.Equal(t, 1, rec.ClearCalls)
	assert.Equal(t, 2, rec.SaveCalls)
	assert.Equal(t, types.Color{}, rec.Background())

	require.NoError(t, r.Render(testPalette, 1))
	require.NoError(t, r.Close())
	assert.True(t, rec.Hidden())
	assert.Equal(t, 3, rec.SaveCalls)
	assert.Empty(t, rec.Dots())

	assert.NoError(t, r.Close())
	assert.ErrorIs(t, r.Render(testPalette, 1), ErrClosed)
	assert.ErrorIs(t, r.Flush(), ErrClosed)
	assert.ErrorIs(t, r.Reset(), ErrClosed)
}

func TestSurfaceColorModeScaling(t *testing.T) {
	s := NewSurface()
	s.SetColorMode(1)
	s.SetPenColor(types.Color{R: 1, G: 0, B: 1})
	assert.Equal(t, types.Color{R: 255, G: 0, B: 255}, s.PenColor())

	s.SetColorMode(255)
	s.SetPenColor(types.Color{R: 12, G: 34, B: 56})
	assert.Equal(t, types.Color{R: 12, G: 34, B: 56}, s.PenColor())
}

func TestSurfaceStrokesWithPenDown(t *testing.T) {
	s := NewSurface()
	s.Goto(10, 10)
	s.PenUp()
	s.Goto(-5, 0)
	require.Len(t, s.Strokes(), 1)
	assert.Equal(t, Stroke{From: Point{}, To: Point{X: 10, Y: 10}, Color: types.Color{R: 255, G: 255, B: 255}}, s.Strokes()[0])
	assert.Equal(t, Point{X: -5}, s.Position())

	s.Clear()
	assert.Empty(t, s.Strokes())
	assert.Equal(t, Point{}, s.Position())
}

func TestSVGCanvasSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "palette.svg")
	c := NewSVGCanvas(path, 0)
	r := New(c, Options{Rand: NewRand(11)})
	require.NoError(t, r.Render(testPalette, 2))
	require.NoError(t, r.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, "<svg")
	assert.Equal(t, 10, strings.Count(doc, "<circle"))
	assert.Contains(t, doc, "fill:rgb(0,0,0)")
	assert.Contains(t, doc, "fill:rgb(200,30,30)")

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".palette-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestSVGEncodeMapsCoordinates(t *testing.T) {
	c := NewSVGCanvas("unused.svg", 100)
	c.PenUp()
	c.Goto(10, 20)
	c.Dot(8)

	var buf bytes.Buffer
	c.Encode(&buf)
	assert.Contains(t, buf.String(), `cx="60" cy="30" r="4"`)
}

func TestPNGCanvasSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.png")
	c := NewPNGCanvas(path, 120)
	r := New(c, Options{Rand: NewRand(2), Bound: 40})
	require.NoError(t, r.Render(testPalette, 3))
	require.NoError(t, r.Flush())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())

	r0, g0, b0, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r0|g0|b0, "corner should show the black background")
}

func TestNewCanvas(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		kind    types.CanvasKind
		want    any
		wantErr bool
	}{
		{"", &PNGCanvas{}, false},
		{types.CanvasPNG, &PNGCanvas{}, false},
		{types.CanvasSVG, &SVGCanvas{}, false},
		{types.CanvasNone, &Recorder{}, false},
		{"window", nil, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			c, err := NewCanvas(types.RenderConfig{Canvas: tt.kind, Output: filepath.Join(dir, "x")}, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, c)
		})
	}
}
