// Package tui holds the low-level rendering toolkit: ANSI constants, the
// nested style stack, width-aware truncation, the frame writer and the line
// input field.
package tui

// ANSI escape sequences (ECMA-48, hardcoded; no terminfo).
const (
	Reset   = "\x1b[0m"
	Bold    = "\x1b[1m"
	Dim     = "\x1b[2m"
	BoldOff = "\x1b[22m"
	DimOff  = "\x1b[22m"
	ResetFG = "\x1b[39m"
	ResetBG = "\x1b[49m"

	ClearEOL   = "\x1b[K"
	ClearBelow = "\x1b[J"
	Home       = "\x1b[H"
	HideCursor = "\x1b[?25l"
	ShowCursor = "\x1b[?25h"

	// Palette
	Title    = "\x1b[1;38;5;214m"
	Match    = "\x1b[38;5;11m"
	Dark     = "\x1b[38;5;245m"
	Selected = "\x1b[48;5;237m"
	Danger   = "\x1b[48;5;52m"
)

var colorsEnabled = true

// DisableColors suppresses all style and reset output; text renders plain.
func DisableColors() { colorsEnabled = false }

// EnableColors re-enables style output.
func EnableColors() { colorsEnabled = true }

// ColorsEnabled reports the global color switch.
func ColorsEnabled() bool { return colorsEnabled }

// Flags records which attribute classes an SGR style string changes.
type Flags int

const (
	ChangesFG Flags = 1 << iota
	ChangesBG
	ChangesBold
	ChangesDim
)

// StyleFlags scans the numeric parameters of every ESC[..m sequence in
// style and classifies the attribute classes it touches. Pop uses this to
// reset exactly what a scope changed and nothing else.
func StyleFlags(style string) Flags {
	var flags Flags
	for i := 0; i < len(style); i++ {
		if style[i] != 0x1b || i+1 >= len(style) || style[i+1] != '[' {
			continue
		}
		i += 2
		for i < len(style) {
			code := 0
			for i < len(style) && style[i] >= '0' && style[i] <= '9' {
				code = code*10 + int(style[i]-'0')
				i++
			}
			switch {
			case code == 1:
				flags |= ChangesBold
			case code == 2:
				flags |= ChangesDim
			case (code >= 30 && code <= 37) || code == 38 || code == 39 ||
				(code >= 90 && code <= 97):
				flags |= ChangesFG
			case (code >= 40 && code <= 47) || code == 48 || code == 49 ||
				(code >= 100 && code <= 107):
				flags |= ChangesBG
			}
			if i < len(style) && style[i] == ';' {
				i++
				continue
			}
			break
		}
	}
	return flags
}
