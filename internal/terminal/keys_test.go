package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeysTokens(t *testing.T) {
	keys := ParseKeys("f,o,o,ENTER")
	assert.Equal(t, []KeyEvent{Char('f'), Char('o'), Char('o'), Char('\r')}, keys)

	keys = ParseKeys("UP,DOWN,LEFT,RIGHT,ESC")
	assert.Equal(t, []KeyEvent{
		Named(KeyUp), Named(KeyDown), Named(KeyLeft), Named(KeyRight), Char(0x1b),
	}, keys)

	keys = ParseKeys("CTRL-D,CTRL-A,CTRL-Z")
	assert.Equal(t, []KeyEvent{Char(4), Char(1), Char(26)}, keys)

	keys = ParseKeys("a,SPACE,B,BACKSPACE,TAB")
	assert.Equal(t, []KeyEvent{Char('a'), Char(' '), Char('B'), Char(0x7f), Char('\t')}, keys)
}

func TestParseKeysSingleToken(t *testing.T) {
	// No comma, but all caps: still token form.
	assert.Equal(t, []KeyEvent{Char('\r')}, ParseKeys("ENTER"))
	assert.Equal(t, []KeyEvent{Char(0x1b)}, ParseKeys("ESCAPE"))
}

func TestParseKeysLegacyRaw(t *testing.T) {
	keys := ParseKeys("ab\x1b[B\r")
	assert.Equal(t, []KeyEvent{Char('a'), Char('b'), Named(KeyDown), Char('\r')}, keys)

	// A raw lone escape byte stays an escape.
	keys = ParseKeys("x\x1b")
	assert.Equal(t, []KeyEvent{Char('x'), Char(0x1b)}, keys)
}

func TestParseKeysEmpty(t *testing.T) {
	assert.Nil(t, ParseKeys(""))
}

func TestSizeEnvOverride(t *testing.T) {
	t.Setenv("TRY_WIDTH", "120")
	t.Setenv("TRY_HEIGHT", "40")

	term := New(nil, nil)
	cols, rows := term.Size()
	assert.Equal(t, 120, cols)
	assert.Equal(t, 40, rows)

	// Cached until a resize invalidates it.
	t.Setenv("TRY_WIDTH", "60")
	cols, _ = term.Size()
	assert.Equal(t, 120, cols)
}
