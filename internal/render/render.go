// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render draws a palette as randomly placed, randomly sized dots on
// a Canvas owned by a Renderer.
package render

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/pdiddy/palette-dots/pkg/types"
)

// Dot placement defaults.
const (
	DefaultRepeats     = 20
	DefaultBound       = 200
	DefaultMinDiameter = 10
	DefaultMaxDiameter = 50
)

// ErrClosed is returned by lifecycle calls after Close.
var ErrClosed = errors.New("renderer is closed")

// Options controls dot placement. Zero fields take the defaults above.
type Options struct {
	Bound       int
	MinDiameter int
	MaxDiameter int
	Rand        *rand.Rand
}

// Renderer owns a Canvas for the lifetime of a session.
type Renderer struct {
	canvas Canvas
	opts   Options
	rng    *rand.Rand
	closed bool
}

// New takes ownership of canvas. A nil opts.Rand seeds a random source.
func New(canvas Canvas, opts Options) *Renderer {
	if opts.Bound <= 0 {
		opts.Bound = DefaultBound
	}
	if opts.MinDiameter <= 0 {
		opts.MinDiameter = DefaultMinDiameter
	}
	if opts.MaxDiameter < opts.MinDiameter {
		opts.MaxDiameter = max(DefaultMaxDiameter, opts.MinDiameter)
	}
	rng := opts.Rand
	if rng == nil {
		rng = NewRand(0)
	}
	return &Renderer{canvas: canvas, opts: opts, rng: rng}
}

// NewRand returns a PCG source seeded with seed, or with a random seed when
// seed is zero.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Canvas returns the owned canvas.
func (r *Renderer) Canvas() Canvas { return r.canvas }

// Init sets a black background, full-range color mode and the fastest speed.
func (r *Renderer) Init() error {
	if r.closed {
		return ErrClosed
	}
	r.canvas.SetBackground(types.Color{})
	r.canvas.SetColorMode(255)
	r.canvas.SetSpeed(0)
	return nil
}

// Render draws the palette repeats times over, in palette order, one dot per
// color per pass. Each dot lands at a uniformly random point in
// [-Bound,Bound]² with a uniformly random diameter in
// [MinDiameter,MaxDiameter]; the pen is lifted between dots.
func (r *Renderer) Render(palette types.Palette, repeats int) error {
	if len(palette) == 0 {
		return fmt.Errorf("palette is empty")
	}
	if repeats == 0 {
		repeats = DefaultRepeats
	}
	if repeats < 0 {
		return fmt.Errorf("repeats must be positive, got %d", repeats)
	}
	if err := r.Init(); err != nil {
		return err
	}

	for range repeats {
		for _, c := range palette {
			r.canvas.SetPenColor(c)
			r.canvas.PenUp()
			r.canvas.Goto(r.between(-r.opts.Bound, r.opts.Bound), r.between(-r.opts.Bound, r.opts.Bound))
			r.canvas.PenDown()
			r.canvas.Dot(r.between(r.opts.MinDiameter, r.opts.MaxDiameter))
		}
	}
	return nil
}

// Flush persists the current drawing.
func (r *Renderer) Flush() error {
	if r.closed {
		return ErrClosed
	}
	if err := r.canvas.Save(); err != nil {
		return fmt.Errorf("saving canvas: %w", err)
	}
	return nil
}

// Reset clears the canvas, restores the initial settings and persists the
// empty surface.
func (r *Renderer) Reset() error {
	if r.closed {
		return ErrClosed
	}
	r.canvas.Clear()
	if err := r.Init(); err != nil {
		return err
	}
	return r.Flush()
}

// Close hides the cursor, persists the final drawing and clears the
// in-memory state. Further lifecycle calls return ErrClosed.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.canvas.HideCursor()
	err := r.Flush()
	r.canvas.Clear()
	r.closed = true
	return err
}

// between returns a uniform integer in [lo, hi].
func (r *Renderer) between(lo, hi int) int {
	return lo + r.rng.IntN(hi-lo+1)
}
