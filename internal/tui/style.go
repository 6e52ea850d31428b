package tui

import (
	"fmt"
	"strings"
)

// MaxStackDepth bounds style nesting; pushes beyond it are ignored.
const MaxStackDepth = 8

type styleFrame struct {
	style string
	flags Flags
}

// StyleString builds styled text over a growable buffer. Styles nest: Pop
// resets only the attribute classes the popped scope changed, then
// re-applies any still-active ancestor styles carrying those classes, so a
// nested region never bleeds into or erases its parent's attributes.
//
// The zero value is ready to use.
type StyleString struct {
	buf   strings.Builder
	stack [MaxStackDepth]styleFrame
	depth int
}

// Push opens a style scope.
func (ss *StyleString) Push(style string) {
	if style == "" || ss.depth >= MaxStackDepth {
		return
	}
	ss.stack[ss.depth] = styleFrame{style: style, flags: StyleFlags(style)}
	ss.depth++
	if colorsEnabled {
		ss.buf.WriteString(style)
	}
}

// Pop closes the innermost scope, restoring whatever the remaining scopes
// want for the attribute classes it changed. Pop on an empty stack is a
// no-op.
func (ss *StyleString) Pop() {
	if ss.depth == 0 {
		return
	}
	ss.depth--
	frame := ss.stack[ss.depth]
	if !colorsEnabled || frame.flags == 0 {
		return
	}
	ss.emitResets(frame.flags)
	ss.reemitAncestors(frame.flags)
}

func (ss *StyleString) emitResets(flags Flags) {
	if flags&ChangesBold != 0 {
		ss.buf.WriteString(BoldOff)
	}
	if flags&ChangesDim != 0 {
		ss.buf.WriteString(DimOff)
	}
	if flags&ChangesFG != 0 {
		ss.buf.WriteString(ResetFG)
	}
	if flags&ChangesBG != 0 {
		ss.buf.WriteString(ResetBG)
	}
}

func (ss *StyleString) reemitAncestors(flags Flags) {
	for i := 0; i < ss.depth; i++ {
		if ss.stack[i].flags&flags != 0 {
			ss.buf.WriteString(ss.stack[i].style)
		}
	}
}

// Print writes text under a style without growing the stack: style, text,
// resets, ancestor re-application.
func (ss *StyleString) Print(style, text string) {
	var flags Flags
	if colorsEnabled && style != "" {
		flags = StyleFlags(style)
		ss.buf.WriteString(style)
	}
	ss.buf.WriteString(text)
	if flags != 0 {
		ss.emitResets(flags)
		ss.reemitAncestors(flags)
	}
}

// Printf is Print with formatting.
func (ss *StyleString) Printf(style, format string, args ...any) {
	ss.Print(style, fmt.Sprintf(format, args...))
}

// WriteString appends plain text.
func (ss *StyleString) WriteString(s string) { ss.buf.WriteString(s) }

// WriteByte appends one byte.
func (ss *StyleString) WriteByte(b byte) error { return ss.buf.WriteByte(b) }

// WriteRune appends one rune.
func (ss *StyleString) WriteRune(r rune) { ss.buf.WriteRune(r) }

// Len returns the byte length of the buffer, escape sequences included.
func (ss *StyleString) Len() int { return ss.buf.Len() }

// String returns the accumulated bytes.
func (ss *StyleString) String() string { return ss.buf.String() }
