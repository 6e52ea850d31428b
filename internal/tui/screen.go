package tui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Screen assembles one full frame off-screen and flushes it in a single
// write, which is what keeps redraws flicker-free without any diffing. Each
// line is cleared to end-of-line as it is written; End clears whatever is
// left below the last line.
type Screen struct {
	w          io.Writer
	buf        bytes.Buffer
	cols, rows int
	row        int

	cursorRow, cursorCol int
}

// NewScreen starts a frame for a cols x rows viewport.
func NewScreen(w io.Writer, cols, rows int) *Screen {
	s := &Screen{w: w, cols: cols, rows: rows, cursorRow: -1, cursorCol: -1}
	s.buf.WriteString(HideCursor)
	s.buf.WriteString(Home)
	return s
}

// Cols returns the viewport width.
func (s *Screen) Cols() int { return s.cols }

// Rows returns the viewport height.
func (s *Screen) Rows() int { return s.rows }

// Line returns a fresh StyleString for building one row.
func (s *Screen) Line() *StyleString { return &StyleString{} }

// WriteLine emits one row. Content wider than the viewport is truncated with
// a dim ellipsis; open styles are reset before it so the ellipsis and the
// cleared tail render plain.
func (s *Screen) WriteLine(ss *StyleString) {
	text := ss.String()
	if VisibleWidth(text) > s.cols-1 {
		cut, _ := TruncateToWidth(text, s.cols-2)
		s.buf.WriteString(cut)
		if colorsEnabled {
			s.buf.WriteString(Reset)
		}
		s.printDim("…")
	} else {
		s.buf.WriteString(text)
	}
	s.endLine()
}

// Rule emits a dim horizontal rule across the row.
func (s *Screen) Rule() {
	s.printDim(strings.Repeat("─", s.cols-1))
	s.endLine()
}

// Blank emits an empty row.
func (s *Screen) Blank() {
	s.endLine()
}

// Input emits a row holding a text field and records where the terminal
// cursor belongs, so End can park it at the edit position. If the field's
// text is a strict prefix of its placeholder, the remainder ghosts in dim.
func (s *Screen) Input(ss *StyleString, in *Input) {
	s.cursorRow = s.row + 1
	s.cursorCol = VisibleWidth(ss.String()) + in.Cursor() + 1

	text := in.Text()
	ss.WriteString(text)
	if ghost := in.ghost(); ghost != "" {
		ss.Print(Dim, ghost)
	}
	s.buf.WriteString(ss.String())
	s.endLine()
}

// End clears below the frame, positions the cursor and flushes everything in
// one write.
func (s *Screen) End() {
	s.buf.WriteString(ClearBelow)
	if s.cursorRow >= 0 {
		fmt.Fprintf(&s.buf, "\x1b[%d;%dH", s.cursorRow, s.cursorCol)
	}
	s.buf.WriteString(ShowCursor)
	_, _ = s.w.Write(s.buf.Bytes())
}

func (s *Screen) endLine() {
	s.buf.WriteString(ClearEOL)
	s.buf.WriteString("\r\n")
	s.row++
}

func (s *Screen) printDim(text string) {
	if colorsEnabled {
		s.buf.WriteString(Dim)
		s.buf.WriteString(text)
		s.buf.WriteString(DimOff)
		return
	}
	s.buf.WriteString(text)
}
