package tui

import (
	"strings"

	"try/internal/terminal"
)

// Input is a single-line text field with emacs-style editing. The cursor is
// a rune index into the text.
type Input struct {
	text   []rune
	cursor int

	// Placeholder ghosts behind the text while the text is a strict prefix
	// of it.
	Placeholder string
}

// HandleKey applies one key to the field. handled reports whether the key
// was an editing key at all; changed reports whether the text changed.
func (in *Input) HandleKey(ev terminal.KeyEvent) (handled, changed bool) {
	switch ev.Kind {
	case terminal.EventNamed:
		switch ev.Key {
		case terminal.KeyLeft:
			return true, in.moveLeft()
		case terminal.KeyRight:
			return true, in.moveRight()
		case terminal.KeyHome:
			in.cursor = 0
			return true, false
		case terminal.KeyEnd:
			in.cursor = len(in.text)
			return true, false
		case terminal.KeyDelete:
			return true, in.deleteForward()
		}
		return false, false
	case terminal.EventChar:
		switch ev.Ch {
		case 1: // Ctrl-A
			in.cursor = 0
			return true, false
		case 5: // Ctrl-E
			in.cursor = len(in.text)
			return true, false
		case 2: // Ctrl-B
			return true, in.moveLeft()
		case 6: // Ctrl-F
			return true, in.moveRight()
		case 8, 0x7f: // Ctrl-H, Backspace
			return true, in.deleteBackward()
		case 11: // Ctrl-K
			if in.cursor < len(in.text) {
				in.text = in.text[:in.cursor]
				return true, true
			}
			return true, false
		case 21: // Ctrl-U
			if in.cursor > 0 {
				in.text = append([]rune{}, in.text[in.cursor:]...)
				in.cursor = 0
				return true, true
			}
			return true, false
		case 23: // Ctrl-W
			return true, in.deleteWord()
		}
		if ev.Ch >= 0x20 && ev.Ch < 0x7f {
			in.insert(rune(ev.Ch))
			return true, true
		}
	}
	return false, false
}

func (in *Input) moveLeft() bool {
	if in.cursor > 0 {
		in.cursor--
	}
	return false
}

func (in *Input) moveRight() bool {
	if in.cursor < len(in.text) {
		in.cursor++
	}
	return false
}

func (in *Input) insert(r rune) {
	in.text = append(in.text, 0)
	copy(in.text[in.cursor+1:], in.text[in.cursor:])
	in.text[in.cursor] = r
	in.cursor++
}

func (in *Input) deleteBackward() bool {
	if in.cursor == 0 {
		return false
	}
	in.text = append(in.text[:in.cursor-1], in.text[in.cursor:]...)
	in.cursor--
	return true
}

func (in *Input) deleteForward() bool {
	if in.cursor >= len(in.text) {
		return false
	}
	in.text = append(in.text[:in.cursor], in.text[in.cursor+1:]...)
	return true
}

// deleteWord removes trailing separators before the cursor, then the word
// itself, mirroring readline's unix-word-rubout.
func (in *Input) deleteWord() bool {
	end := in.cursor
	i := end
	for i > 0 && !isWordRune(in.text[i-1]) {
		i--
	}
	for i > 0 && isWordRune(in.text[i-1]) {
		i--
	}
	if i == end {
		return false
	}
	in.text = append(in.text[:i], in.text[end:]...)
	in.cursor = i
	return true
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Text returns the current contents.
func (in *Input) Text() string { return string(in.text) }

// Cursor returns the cursor position in runes.
func (in *Input) Cursor() int { return in.cursor }

// Set replaces the contents and moves the cursor to the end.
func (in *Input) Set(s string) {
	in.text = []rune(s)
	in.cursor = len(in.text)
}

// Reset clears the field.
func (in *Input) Reset() {
	in.text = in.text[:0]
	in.cursor = 0
}

// ghost returns the placeholder remainder to dim behind the text, or "".
func (in *Input) ghost() string {
	if in.Placeholder == "" {
		return ""
	}
	text := string(in.text)
	if len(text) >= len(in.Placeholder) || !strings.HasPrefix(in.Placeholder, text) {
		return ""
	}
	return in.Placeholder[len(text):]
}
