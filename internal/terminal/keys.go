package terminal

import (
	"regexp"
	"strings"
)

var tokenSpec = regexp.MustCompile(`^[A-Z\-]+$`)

// ParseKeys converts a --and-keys spec into key events. Two forms are
// accepted: a comma-separated token stream (ENTER, ESC, UP, CTRL-D, single
// literal characters) and a legacy raw form where escape bytes and CR are
// embedded directly in the string.
func ParseKeys(spec string) []KeyEvent {
	if spec == "" {
		return nil
	}
	if strings.Contains(spec, ",") || tokenSpec.MatchString(spec) {
		return parseTokens(spec)
	}
	return parseRaw(spec)
}

func parseTokens(spec string) []KeyEvent {
	var keys []KeyEvent
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		up := strings.ToUpper(tok)
		switch up {
		case "ENTER", "RETURN":
			keys = append(keys, Char('\r'))
		case "ESC", "ESCAPE":
			keys = append(keys, Char(0x1b))
		case "UP":
			keys = append(keys, Named(KeyUp))
		case "DOWN":
			keys = append(keys, Named(KeyDown))
		case "LEFT":
			keys = append(keys, Named(KeyLeft))
		case "RIGHT":
			keys = append(keys, Named(KeyRight))
		case "BACKSPACE", "BS":
			keys = append(keys, Char(0x7f))
		case "TAB":
			keys = append(keys, Char('\t'))
		case "SPACE":
			keys = append(keys, Char(' '))
		default:
			if strings.HasPrefix(up, "CTRL-") && len(up) == 6 && up[5] >= 'A' && up[5] <= 'Z' {
				keys = append(keys, Char(up[5]-'A'+1))
			} else if len(tok) == 1 {
				keys = append(keys, Char(tok[0]))
			}
		}
	}
	return keys
}

func parseRaw(spec string) []KeyEvent {
	var keys []KeyEvent
	for i := 0; i < len(spec); {
		if spec[i] == 0x1b && i+2 < len(spec) && spec[i+1] == '[' {
			switch spec[i+2] {
			case 'A':
				keys = append(keys, Named(KeyUp))
			case 'B':
				keys = append(keys, Named(KeyDown))
			case 'C':
				keys = append(keys, Named(KeyRight))
			case 'D':
				keys = append(keys, Named(KeyLeft))
			default:
				keys = append(keys, KeyEvent{Kind: EventUnknown})
			}
			i += 3
			continue
		}
		keys = append(keys, Char(spec[i]))
		i++
	}
	return keys
}
