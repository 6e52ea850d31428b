// Package fuzzy scores try names against a search query and produces the
// highlighted render in the same pass, so the list never shows a highlight
// that disagrees with the score.
package fuzzy

import (
	"math"
	"strings"
	"time"
	"unicode"

	"try/internal/tries"
	"try/internal/tui"
)

const datePrefixRunes = 11 // "YYYY-MM-DD-"

// gapBonus precomputes 2/sqrt(gap+1) for small gaps; larger gaps fall back
// to the formula.
var gapBonus [16]float64

func init() {
	for gap := range gapBonus {
		gapBonus[gap] = 2.0 / math.Sqrt(float64(gap+1))
	}
}

// Matcher scores candidates. The clock is injectable so recency bonuses are
// deterministic under test.
type Matcher struct {
	Now func() time.Time
}

// New returns a Matcher on the wall clock.
func New() *Matcher {
	return &Matcher{Now: time.Now}
}

// Match scores name against query and renders the highlighted row text.
// Score 0 means some query rune never matched; the render is still returned
// for display outside filtering. Matching is a case-insensitive subsequence
// scan; the score rewards word boundaries, tight clusters, early matches and
// short names, with flat bonuses for a date prefix and recent modification.
func (m *Matcher) Match(name, query string, modified time.Time) (float64, string) {
	runes := []rune(name)
	qrunes := queryRunes(query)

	var ss tui.StyleString
	score := 0.0
	qi := 0
	lastMatch := -1
	darkOpen := false

	dated := tries.HasDatePrefix(name)
	for i, r := range runes {
		if dated && i == 0 {
			ss.Push(tui.Dark)
			darkOpen = true
		}
		if darkOpen && i == datePrefixRunes {
			ss.Pop()
			darkOpen = false
		}

		if qi < len(qrunes) && unicode.ToLower(r) == qrunes[qi] {
			score += 1.0
			if i == 0 || !isAlnum(runes[i-1]) {
				score += 1.0
			}
			if lastMatch >= 0 {
				gap := i - lastMatch - 1
				if gap < len(gapBonus) {
					score += gapBonus[gap]
				} else {
					score += 2.0 / math.Sqrt(float64(gap+1))
				}
			}
			lastMatch = i
			qi++
			ss.Print(tui.Match, string(r))
		} else {
			ss.WriteRune(r)
		}
	}
	if darkOpen {
		ss.Pop()
	}
	rendered := ss.String()

	if qi < len(qrunes) {
		return 0, rendered
	}
	if lastMatch >= 0 {
		score *= float64(len(qrunes)) / float64(lastMatch+1)
		score *= 10.0 / float64(len(runes)+10)
	}
	if dated {
		score += 2.0
	}
	score += m.recency(modified)
	return score, rendered
}

func (m *Matcher) recency(modified time.Time) float64 {
	if modified.IsZero() {
		return 0
	}
	hours := m.Now().Sub(modified).Hours()
	if hours < 0 {
		hours = 0
	}
	return 3.0 / math.Sqrt(hours+1)
}

// queryRunes lowercases the query and drops whitespace, so "my idea"
// matches "my-idea" without the space counting as an unmatched rune.
func queryRunes(query string) []rune {
	var out []rune
	for _, r := range strings.ToLower(query) {
		if unicode.IsSpace(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
