// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/palette-dots/pkg/types"
)

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("Link from Zelda\r\ny\nlast"), &out, false)

	got, err := c.Prompt("query: ")
	require.NoError(t, err)
	assert.Equal(t, "Link from Zelda", got)

	got, err = c.Prompt("")
	require.NoError(t, err)
	assert.Equal(t, "y", got)

	got, err = c.Prompt("")
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = c.Prompt("again: ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "query: again: ", out.String())
}

func TestSwatches(t *testing.T) {
	p := types.Palette{{R: 255}, {G: 255}}

	plain := New(strings.NewReader(""), io.Discard, false)
	assert.Equal(t, "#ff0000  #00ff00", plain.Swatches(p))

	styled := New(strings.NewReader(""), io.Discard, true)
	s := styled.Swatches(p)
	assert.Contains(t, s, "#ff0000")
	assert.Contains(t, s, "#00ff00")
}

func TestPrintHelpers(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, false)
	c.Println("Searching for image...")
	c.Printf("Image found: %s\n", "https://x")
	assert.Equal(t, "Searching for image...\nImage found: https://x\n", out.String())
}

func TestPromptContextCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c := New(pr, io.Discard, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.PromptContext(ctx, "never answered: ")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPromptContextReadsLine(t *testing.T) {
	c := New(strings.NewReader("n\n"), io.Discard, false)
	got, err := c.PromptContext(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "n", got)
}
