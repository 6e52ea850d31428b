package terminal

import "errors"

// EventKind classifies a decoded key event.
type EventKind int

const (
	// EventChar is a printable or control byte (Enter, Escape, Ctrl-X, ...).
	EventChar EventKind = iota
	// EventNamed is an arrow, Home/End, Delete or Page key.
	EventNamed
	// EventUnknown is a recognized-but-unmapped escape sequence (modified
	// arrows, mouse reports). Kept distinct from plain Escape so junk input
	// never reads as cancel.
	EventUnknown
	// EventResize means a window-resize signal interrupted the read.
	EventResize
	// EventEOF means the input source is exhausted.
	EventEOF
)

// NamedKey identifies non-byte keys.
type NamedKey int

const (
	KeyUp NamedKey = iota
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyDelete
	KeyPageUp
	KeyPageDown
)

// KeyEvent is one logical key press. The live terminal decoder and the test
// token parser both produce this type.
type KeyEvent struct {
	Kind EventKind
	Ch   byte
	Key  NamedKey
}

// Char wraps a raw byte.
func Char(b byte) KeyEvent { return KeyEvent{Kind: EventChar, Ch: b} }

// Named wraps a named key.
func Named(k NamedKey) KeyEvent { return KeyEvent{Kind: EventNamed, Key: k} }

// IsChar reports whether the event is exactly the given byte.
func (e KeyEvent) IsChar(b byte) bool { return e.Kind == EventChar && e.Ch == b }

// IsCtrl reports whether the event is Ctrl plus the given lowercase letter.
func (e KeyEvent) IsCtrl(letter byte) bool {
	return e.Kind == EventChar && e.Ch == letter-'a'+1
}

// IsNamed reports whether the event is the given named key.
func (e KeyEvent) IsNamed(k NamedKey) bool { return e.Kind == EventNamed && e.Key == k }

var errResize = errors.New("read interrupted by resize")

// byteSource feeds the decoder. The live terminal implements it over raw
// reads; tests implement it over scripted byte slices.
type byteSource interface {
	// nextByte blocks until a byte arrives, errResize on a pending resize,
	// or a terminal error (EOF, EIO).
	nextByte() (byte, error)
	// nextByteTimeout waits roughly 100ms for a byte; ok is false when none
	// arrived.
	nextByteTimeout() (byte, bool, error)
}

// decodeKey reads one logical key. A lone Escape never hangs: if no
// continuation byte arrives within the timeout the Escape itself is
// returned.
func decodeKey(src byteSource) KeyEvent {
	b, err := src.nextByte()
	if err != nil {
		if errors.Is(err, errResize) {
			return KeyEvent{Kind: EventResize}
		}
		return KeyEvent{Kind: EventEOF}
	}
	if b != 0x1b {
		return Char(b)
	}

	b2, ok, err := src.nextByteTimeout()
	if err != nil || !ok {
		return Char(0x1b)
	}
	switch b2 {
	case '[':
		return decodeCSI(src)
	case 'O':
		return decodeSS3(src)
	default:
		// Alt-modified byte; not a binding we know.
		return KeyEvent{Kind: EventUnknown}
	}
}

// decodeCSI consumes an ESC [ sequence through its final byte. Parameter
// bytes (digits, semicolons, the SGR mouse '<' marker) live in 0x20..0x3f;
// the first byte in 0x40..0x7e terminates the sequence.
func decodeCSI(src byteSource) KeyEvent {
	var params []byte
	for {
		b, ok, err := src.nextByteTimeout()
		if err != nil || !ok {
			return Char(0x1b)
		}
		if b >= 0x40 && b <= 0x7e {
			return classifyCSI(params, b)
		}
		if b >= 0x20 && b <= 0x3f {
			params = append(params, b)
			continue
		}
		return KeyEvent{Kind: EventUnknown}
	}
}

func classifyCSI(params []byte, final byte) KeyEvent {
	if len(params) == 0 {
		switch final {
		case 'A':
			return Named(KeyUp)
		case 'B':
			return Named(KeyDown)
		case 'C':
			return Named(KeyRight)
		case 'D':
			return Named(KeyLeft)
		case 'H':
			return Named(KeyHome)
		case 'F':
			return Named(KeyEnd)
		}
		return KeyEvent{Kind: EventUnknown}
	}
	if final == '~' && len(params) == 1 {
		switch params[0] {
		case '1', '7':
			return Named(KeyHome)
		case '4', '8':
			return Named(KeyEnd)
		case '3':
			return Named(KeyDelete)
		case '5':
			return Named(KeyPageUp)
		case '6':
			return Named(KeyPageDown)
		}
	}
	// Modified keys and mouse reports land here, fully consumed.
	return KeyEvent{Kind: EventUnknown}
}

func decodeSS3(src byteSource) KeyEvent {
	b, ok, err := src.nextByteTimeout()
	if err != nil || !ok {
		return Char(0x1b)
	}
	switch b {
	case 'H':
		return Named(KeyHome)
	case 'F':
		return Named(KeyEnd)
	}
	return KeyEvent{Kind: EventUnknown}
}
