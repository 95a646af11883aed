// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session drives the interactive loop: prompt for a query, locate
// an image, extract its palette, draw it, and ask whether to go again.
package session

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/palette-dots/internal/console"
	"github.com/pdiddy/palette-dots/internal/locate"
	"github.com/pdiddy/palette-dots/internal/render"
	"github.com/pdiddy/palette-dots/pkg/types"
)

// State is a step of the session state machine.
type State int

const (
	Prompting State = iota
	Searching
	Extracting
	Drawing
	AwaitingContinue
	Cleared
	Terminated
)

var stateNames = [...]string{
	Prompting:        "prompting",
	Searching:        "searching",
	Extracting:       "extracting",
	Drawing:          "drawing",
	AwaitingContinue: "awaiting-continue",
	Cleared:          "cleared",
	Terminated:       "terminated",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// User-facing text.
const (
	QueryPrompt    = "Enter a character and where they're from (e.g., 'Link from Zelda'): "
	ContinuePrompt = "Would you like to draw another palette? (y/n) "
)

// Extractor turns an image reference into a palette of count colors.
type Extractor interface {
	Extract(ctx context.Context, ref types.ImageReference, count int) (types.Palette, error)
}

// Loop wires the stages together. Count and Repeats of zero take the stage
// defaults.
type Loop struct {
	Locator   locate.Locator
	Extractor Extractor
	Renderer  *render.Renderer
	Console   *console.Console
	Log       logrus.FieldLogger

	Count   int
	Repeats int

	// Observe, when set, is called on every state change.
	Observe func(from, to State)

	query   string
	ref     types.ImageReference
	palette types.Palette
}

// Run prints the banner and iterates the state machine until the user stops,
// input ends, or ctx is cancelled. Stage failures are reported and end only
// the current iteration. Run always closes the renderer; its error, if any,
// is returned.
func (l *Loop) Run(ctx context.Context) error {
	if l.Log == nil {
		l.Log = logrus.StandardLogger()
	}
	l.banner()

	if err := l.Renderer.Init(); err != nil {
		return err
	}

	state := Prompting
	for {
		if ctx.Err() != nil && state != Terminated {
			l.Log.WithError(ctx.Err()).Debug("session: cancelled")
			state = l.transition(state, Terminated)
		}

		switch state {
		case Prompting:
			state = l.transition(state, l.prompt(ctx))
		case Searching:
			state = l.transition(state, l.search(ctx))
		case Extracting:
			state = l.transition(state, l.extract(ctx))
		case Drawing:
			state = l.transition(state, l.draw())
		case AwaitingContinue:
			state = l.transition(state, l.awaitContinue(ctx))
		case Cleared:
			state = l.transition(state, l.clear())
		case Terminated:
			return l.Renderer.Close()
		}
	}
}

func (l *Loop) banner() {
	l.Console.Println("Welcome to the Color Palette Generator!")
	l.Console.Println()
	l.Console.Println("This program will generate a color palette based on an image of a character.")
	l.Console.Println()
	l.Console.Println("Answer 'n' when asked to draw another palette to clear the screen and exit.")
	l.Console.Println()
}

func (l *Loop) transition(from, to State) State {
	if from != to {
		l.Log.WithFields(logrus.Fields{"from": from.String(), "to": to.String()}).Debug("session: transition")
		if l.Observe != nil {
			l.Observe(from, to)
		}
	}
	return to
}

func (l *Loop) prompt(ctx context.Context) State {
	line, err := l.Console.PromptContext(ctx, QueryPrompt)
	if err != nil {
		if !errors.Is(err, io.EOF) && ctx.Err() == nil {
			l.Log.WithError(err).Warn("session: reading query")
		}
		l.Console.Println()
		return Terminated
	}
	query := strings.TrimSpace(line)
	if query == "" {
		return Prompting
	}
	l.query = query
	l.ref = ""
	l.palette = nil
	return Searching
}

func (l *Loop) search(ctx context.Context) State {
	l.Console.Println("Searching for image...")
	ref, err := l.Locator.Locate(ctx, l.query)
	if err != nil {
		return l.fail(err)
	}
	l.ref = ref
	l.Console.Printf("Image found: %s\n", ref)
	return Extracting
}

func (l *Loop) extract(ctx context.Context) State {
	l.Console.Println("Extracting color palette...")
	p, err := l.Extractor.Extract(ctx, l.ref, l.Count)
	if err != nil {
		return l.fail(err)
	}
	l.palette = p
	l.Console.Printf("Palette: %s\n", p)
	l.Console.Println(l.Console.Swatches(p))
	return Drawing
}

func (l *Loop) draw() State {
	l.Console.Println("Drawing color palette...")
	if err := l.Renderer.Render(l.palette, l.Repeats); err != nil {
		return l.fail(err)
	}
	if err := l.Renderer.Flush(); err != nil {
		return l.fail(err)
	}
	return AwaitingContinue
}

func (l *Loop) awaitContinue(ctx context.Context) State {
	for {
		answer, err := l.Console.PromptContext(ctx, ContinuePrompt)
		if err != nil {
			l.Console.Println()
			return Terminated
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y":
			return Prompting
		case "n", "q":
			return Cleared
		default:
			l.Console.Println("Please answer 'y' to draw another palette, or 'n' to clear the screen and stop.")
		}
	}
}

// clear wipes the canvas on the way out. A failed reset is reported but
// still ends the session.
func (l *Loop) clear() State {
	if err := l.Renderer.Reset(); err != nil {
		l.fail(err)
		return Terminated
	}
	l.Console.Println("Screen cleared!")
	return Terminated
}

// fail reports err and skips to the continuation prompt.
func (l *Loop) fail(err error) State {
	entry := l.Log.WithError(err).WithField("query", l.query)
	if kind := types.KindOf(err); kind != 0 {
		entry = entry.WithField("kind", kind.String())
	}
	entry.Debug("session: iteration failed")
	l.Console.Printf("An error occurred: %v\n", err)
	return AwaitingContinue
}
