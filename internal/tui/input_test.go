package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"try/internal/terminal"
)

func typeString(in *Input, s string) {
	for _, r := range s {
		in.HandleKey(terminal.Char(byte(r)))
	}
}

func TestInputTyping(t *testing.T) {
	var in Input
	typeString(&in, "hello")
	assert.Equal(t, "hello", in.Text())
	assert.Equal(t, 5, in.Cursor())
}

func TestInputInsertMidline(t *testing.T) {
	var in Input
	typeString(&in, "hllo")
	in.HandleKey(terminal.Char(1)) // Ctrl-A
	in.HandleKey(terminal.Char(6)) // Ctrl-F
	typeString(&in, "e")
	assert.Equal(t, "hello", in.Text())
	assert.Equal(t, 2, in.Cursor())
}

func TestInputBackspace(t *testing.T) {
	var in Input
	typeString(&in, "abc")
	handled, changed := in.HandleKey(terminal.Char(0x7f))
	assert.True(t, handled)
	assert.True(t, changed)
	assert.Equal(t, "ab", in.Text())

	in.Reset()
	handled, changed = in.HandleKey(terminal.Char(0x7f))
	assert.True(t, handled)
	assert.False(t, changed)
}

func TestInputDeleteForward(t *testing.T) {
	var in Input
	typeString(&in, "abc")
	in.HandleKey(terminal.Char(1)) // Ctrl-A
	_, changed := in.HandleKey(terminal.Named(terminal.KeyDelete))
	assert.True(t, changed)
	assert.Equal(t, "bc", in.Text())
	assert.Equal(t, 0, in.Cursor())
}

func TestInputKillToEnd(t *testing.T) {
	var in Input
	typeString(&in, "hello world")
	for i := 0; i < 6; i++ {
		in.HandleKey(terminal.Char(2)) // Ctrl-B
	}
	_, changed := in.HandleKey(terminal.Char(11)) // Ctrl-K
	assert.True(t, changed)
	assert.Equal(t, "hello", in.Text())
}

func TestInputKillToStart(t *testing.T) {
	var in Input
	typeString(&in, "hello world")
	for i := 0; i < 5; i++ {
		in.HandleKey(terminal.Char(2)) // Ctrl-B
	}
	_, changed := in.HandleKey(terminal.Char(21)) // Ctrl-U
	assert.True(t, changed)
	assert.Equal(t, "world", in.Text())
	assert.Equal(t, 0, in.Cursor())
}

func TestInputDeleteWord(t *testing.T) {
	var in Input
	typeString(&in, "foo bar-baz")
	_, changed := in.HandleKey(terminal.Char(23)) // Ctrl-W
	assert.True(t, changed)
	assert.Equal(t, "foo bar-", in.Text())

	in.HandleKey(terminal.Char(23))
	assert.Equal(t, "foo ", in.Text())

	in.HandleKey(terminal.Char(23))
	assert.Equal(t, "", in.Text())

	_, changed = in.HandleKey(terminal.Char(23))
	assert.False(t, changed)
}

func TestInputArrowKeys(t *testing.T) {
	var in Input
	typeString(&in, "ab")
	in.HandleKey(terminal.Named(terminal.KeyLeft))
	assert.Equal(t, 1, in.Cursor())
	in.HandleKey(terminal.Named(terminal.KeyHome))
	assert.Equal(t, 0, in.Cursor())
	in.HandleKey(terminal.Named(terminal.KeyLeft))
	assert.Equal(t, 0, in.Cursor())
	in.HandleKey(terminal.Named(terminal.KeyEnd))
	assert.Equal(t, 2, in.Cursor())
	in.HandleKey(terminal.Named(terminal.KeyRight))
	assert.Equal(t, 2, in.Cursor())
}

func TestInputRejectsNonEditingKeys(t *testing.T) {
	var in Input
	handled, _ := in.HandleKey(terminal.Char('\r'))
	assert.False(t, handled)
	handled, _ = in.HandleKey(terminal.Named(terminal.KeyUp))
	assert.False(t, handled)
	handled, _ = in.HandleKey(terminal.KeyEvent{Kind: terminal.EventUnknown})
	assert.False(t, handled)
}

func TestInputGhost(t *testing.T) {
	in := Input{Placeholder: "2025-08-31-idea"}
	assert.Equal(t, "2025-08-31-idea", in.ghost())

	typeString(&in, "2025")
	assert.Equal(t, "-08-31-idea", in.ghost())

	in.Set("zzz")
	assert.Equal(t, "", in.ghost())

	in.Set("2025-08-31-idea")
	assert.Equal(t, "", in.ghost())
}
