// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package console handles line-oriented prompting and palette display.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/pdiddy/palette-dots/pkg/types"
)

// Console reads answers from in and writes prompts and progress to out.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	styled bool
}

// New returns a console. Swatches are rendered only when styled is true.
func New(in io.Reader, out io.Writer, styled bool) *Console {
	return &Console{in: bufio.NewReader(in), out: out, styled: styled}
}

// NewStd returns a console on stdin/stdout, styled when stdout is a terminal.
func NewStd() *Console {
	return New(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
}

// Println writes a line to out.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Printf writes formatted text to out.
func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Prompt writes msg and returns the next input line without its line ending.
// It returns io.EOF once input is exhausted and nothing was read.
func (c *Console) Prompt(msg string) (string, error) {
	if msg != "" {
		fmt.Fprint(c.out, msg)
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type readResult struct {
	line string
	err  error
}

// PromptContext is Prompt that gives up when ctx is done. The pending read
// is abandoned, so the console must not be used after cancellation.
func (c *Console) PromptContext(ctx context.Context, msg string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ch := make(chan readResult, 1)
	go func() {
		line, err := c.Prompt(msg)
		ch <- readResult{line: line, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

// Swatches renders one colored block per palette entry, labelled with its
// hex value. Unstyled consoles get the hex values only.
func (c *Console) Swatches(p types.Palette) string {
	parts := make([]string, len(p))
	for i, col := range p {
		hex := col.Hex()
		if !c.styled {
			parts[i] = hex
			continue
		}
		block := lipgloss.NewStyle().
			Background(lipgloss.Color(hex)).
			Render("    ")
		parts[i] = block + " " + hex
	}
	return strings.Join(parts, "  ")
}
