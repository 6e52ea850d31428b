package terminal

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

// scriptedSource feeds the decoder a fixed byte sequence. Exhaustion shows
// up as a timeout (no byte arrived) so a trailing ESC decodes as a lone
// Escape, the same way a real terminal behaves.
type scriptedSource struct {
	data []byte
	pos  int
}

func (s *scriptedSource) nextByte() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	b := s.data[s.pos]
	s.pos++
	return b, nil
}

func (s *scriptedSource) nextByteTimeout() (byte, bool, error) {
	if s.pos >= len(s.data) {
		return 0, false, nil
	}
	b := s.data[s.pos]
	s.pos++
	return b, true, nil
}

func decodeAll(data []byte) []KeyEvent {
	src := &scriptedSource{data: data}
	var events []KeyEvent
	for {
		ev := decodeKey(src)
		if ev.Kind == EventEOF {
			return events
		}
		events = append(events, ev)
	}
}

func TestDecodePlainBytes(t *testing.T) {
	events := decodeAll([]byte("ab\r\x04"))
	assert.Equal(t, []KeyEvent{Char('a'), Char('b'), Char('\r'), Char(4)}, events)
}

func TestDecodeLoneEscape(t *testing.T) {
	events := decodeAll([]byte{0x1b})
	assert.Equal(t, []KeyEvent{Char(0x1b)}, events)
}

func TestDecodeArrowsAndNavigation(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		want KeyEvent
	}{
		{"up", "\x1b[A", Named(KeyUp)},
		{"down", "\x1b[B", Named(KeyDown)},
		{"right", "\x1b[C", Named(KeyRight)},
		{"left", "\x1b[D", Named(KeyLeft)},
		{"home csi", "\x1b[H", Named(KeyHome)},
		{"end csi", "\x1b[F", Named(KeyEnd)},
		{"home tilde", "\x1b[1~", Named(KeyHome)},
		{"home tilde alt", "\x1b[7~", Named(KeyHome)},
		{"end tilde", "\x1b[4~", Named(KeyEnd)},
		{"end tilde alt", "\x1b[8~", Named(KeyEnd)},
		{"delete", "\x1b[3~", Named(KeyDelete)},
		{"page up", "\x1b[5~", Named(KeyPageUp)},
		{"page down", "\x1b[6~", Named(KeyPageDown)},
		{"ss3 home", "\x1bOH", Named(KeyHome)},
		{"ss3 end", "\x1bOF", Named(KeyEnd)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := decodeAll([]byte(tt.seq))
			assert.Equal(t, []KeyEvent{tt.want}, events)
		})
	}
}

func TestDecodeUnknownSequences(t *testing.T) {
	tests := []struct {
		name string
		seq  string
	}{
		{"shift up", "\x1b[1;2A"},
		{"ctrl right", "\x1b[1;5C"},
		{"shift tab", "\x1b[Z"},
		{"sgr mouse press", "\x1b[<0;12;5M"},
		{"sgr mouse release", "\x1b[<0;12;5m"},
		{"multi digit tilde", "\x1b[15~"},
		{"ss3 other", "\x1bOP"},
		{"alt char", "\x1bx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := decodeAll([]byte(tt.seq))
			assert.Equal(t, []KeyEvent{{Kind: EventUnknown}}, events,
				"the whole sequence must be consumed as one Unknown event")
		})
	}
}

func TestDecodeUnknownNeverSwallowsFollowingKeys(t *testing.T) {
	events := decodeAll([]byte("\x1b[<32;4;8Mq"))
	assert.Equal(t, []KeyEvent{{Kind: EventUnknown}, Char('q')}, events)
}

func TestDecodeTruncatedSequenceFallsBackToEscape(t *testing.T) {
	// ESC [ with no final byte before the timeout.
	events := decodeAll([]byte("\x1b["))
	assert.Equal(t, []KeyEvent{Char(0x1b)}, events)

	events = decodeAll([]byte("\x1bO"))
	assert.Equal(t, []KeyEvent{Char(0x1b)}, events)
}

func TestIsCtrl(t *testing.T) {
	assert.True(t, Char(4).IsCtrl('d'))
	assert.True(t, Char(16).IsCtrl('p'))
	assert.False(t, Char('d').IsCtrl('d'))
	assert.False(t, Named(KeyUp).IsCtrl('d'))
}
