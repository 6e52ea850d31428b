package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
)

// VisibleWidth returns the display width of s, skipping escape sequences.
func VisibleWidth(s string) int {
	return ansi.PrintableRuneWidth(s)
}

// TruncateToWidth cuts s at the last rune boundary that fits in max display
// columns. Escape sequences are preserved in full and cost nothing, so
// styles opened before the cut stay intact in the returned prefix.
func TruncateToWidth(s string, max int) (string, bool) {
	var b strings.Builder
	width := 0
	for i := 0; i < len(s); {
		if s[i] == 0x1b {
			j := i + 1
			if j < len(s) && s[j] == '[' {
				j++
				for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
					j++
				}
				if j < len(s) {
					j++
				}
			}
			b.WriteString(s[i:j])
			i = j
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		w := runewidth.RuneWidth(r)
		if width+w > max {
			return b.String(), true
		}
		b.WriteString(s[i : i+size])
		width += w
		i += size
	}
	return b.String(), false
}
