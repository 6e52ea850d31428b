package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenFrameShape(t *testing.T) {
	withColors(t, false)

	var out bytes.Buffer
	s := NewScreen(&out, 40, 10)

	line := s.Line()
	line.WriteString("header")
	s.WriteLine(line)
	s.Rule()
	s.Blank()
	s.End()

	frame := out.String()
	assert.True(t, strings.HasPrefix(frame, HideCursor+Home))
	assert.Contains(t, frame, "header"+ClearEOL+"\r\n")
	assert.Contains(t, frame, strings.Repeat("─", 39))
	assert.Contains(t, frame, ClearBelow)
	assert.True(t, strings.HasSuffix(frame, ShowCursor))
}

func TestScreenTruncatesLongLines(t *testing.T) {
	withColors(t, false)

	var out bytes.Buffer
	s := NewScreen(&out, 10, 5)

	line := s.Line()
	line.WriteString("abcdefghijklmnop")
	s.WriteLine(line)
	s.End()

	assert.Contains(t, out.String(), "abcdefgh…"+ClearEOL)
	assert.NotContains(t, out.String(), "abcdefghi…")
}

func TestScreenTruncationResetsStyles(t *testing.T) {
	withColors(t, true)

	var out bytes.Buffer
	s := NewScreen(&out, 10, 5)

	line := s.Line()
	line.Push(Selected)
	line.WriteString("abcdefghijklmnop")
	line.Pop()
	s.WriteLine(line)
	s.End()

	// The open background is reset before the ellipsis so the cleared tail
	// of the row stays unstyled.
	assert.Contains(t, out.String(), Reset+Dim+"…"+DimOff)
}

func TestScreenInputCursorPlacement(t *testing.T) {
	withColors(t, false)

	var out bytes.Buffer
	s := NewScreen(&out, 40, 10)

	line := s.Line()
	line.WriteString("first")
	s.WriteLine(line)

	var in Input
	in.Set("abc")
	prompt := s.Line()
	prompt.WriteString("Search: ")
	s.Input(prompt, &in)
	s.End()

	// Row 2, column = len("Search: ") + cursor 3 + 1.
	assert.Contains(t, out.String(), "\x1b[2;12H")
	assert.Contains(t, out.String(), "Search: abc"+ClearEOL)
}

func TestScreenInputGhostRendered(t *testing.T) {
	withColors(t, true)

	var out bytes.Buffer
	s := NewScreen(&out, 40, 10)

	in := Input{Placeholder: "2025-08-31-idea"}
	prompt := s.Line()
	prompt.WriteString("Create: ")
	s.Input(prompt, &in)
	s.End()

	assert.Contains(t, out.String(), "Create: "+Dim+"2025-08-31-idea"+DimOff)
	// Cursor parks at the start of the ghost, not after it.
	assert.Contains(t, out.String(), "\x1b[1;9H")
}

func TestScreenNoCursorRecorded(t *testing.T) {
	withColors(t, false)

	var out bytes.Buffer
	s := NewScreen(&out, 20, 5)
	s.Blank()
	s.End()

	assert.NotContains(t, out.String(), ";1H")
}
