package selector

import (
	"fmt"

	"try/internal/tries"
	"try/internal/tui"
)

// prefixWidth covers the cursor marker and icon: "→ " plus "📁 ".
const prefixWidth = 5

// render draws the browse frame: header, search field, the candidate list
// with the create row, and the footer hints.
func (s *Selector) render() {
	cols, rows := s.term.Size()
	screen := tui.NewScreen(s.out, cols, rows)

	header := screen.Line()
	header.Print(tui.Title, "📁 Try Directory Selection")
	screen.WriteLine(header)
	screen.Rule()

	prompt := screen.Line()
	prompt.WriteString("Search: ")
	screen.Input(prompt, &s.search)
	screen.Rule()

	height := rows - 8
	if height < 1 {
		height = 1
	}
	creating := s.search.Text() != ""

	// The create row and its leading blank live below the list and never
	// scroll out of view.
	listHeight := height
	if creating {
		listHeight -= 2
		if listHeight < 0 {
			listHeight = 0
		}
	}
	s.clampScroll(max(listHeight, 1))

	drawn := 0
	for i := s.scroll; i < len(s.filtered) && drawn < listHeight; i++ {
		s.renderRow(screen, s.filtered[i], i == s.selected)
		drawn++
	}
	if creating && drawn < height {
		if len(s.filtered) > 0 {
			screen.Blank()
			drawn++
		}
		if drawn < height {
			s.renderCreateRow(screen)
			drawn++
		}
	}
	for ; drawn < height; drawn++ {
		screen.Blank()
	}

	screen.Rule()
	s.renderFooter(screen)
	screen.End()
}

// clampScroll keeps the selected candidate inside the list window. The
// create row sits outside the window and never drives scrolling.
func (s *Selector) clampScroll(height int) {
	sel := s.selected
	if sel >= len(s.filtered) {
		sel = len(s.filtered) - 1
	}
	if sel < 0 {
		s.scroll = 0
		return
	}
	if sel < s.scroll {
		s.scroll = sel
	}
	if sel >= s.scroll+height {
		s.scroll = sel - height + 1
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
}

func (s *Selector) renderRow(screen *tui.Screen, c *Candidate, selected bool) {
	line := screen.Line()
	switch {
	case c.Marked:
		line.Push(tui.Danger)
	case selected:
		line.Push(tui.Selected)
	}

	if selected {
		line.Print(tui.Match, "→ ")
	} else {
		line.WriteString("  ")
	}
	if c.Marked {
		line.WriteString("🗑️ ")
	} else {
		line.WriteString("📁 ")
	}

	nameWidth := screen.Cols() - 1 - prefixWidth
	name := c.Rendered
	if tui.VisibleWidth(name) > nameWidth {
		name, _ = tui.TruncateToWidth(name, nameWidth-1)
		line.WriteString(name)
		line.Print(tui.Dark, "…")
	} else {
		line.WriteString(name)
		s.renderMeta(line, c, nameWidth-tui.VisibleWidth(name))
	}

	if c.Marked || selected {
		line.Pop()
	}
	screen.WriteLine(line)
}

// renderMeta right-aligns "<age>, <score>" in the remaining width, dropping
// the age and then the whole column as space runs out.
func (s *Selector) renderMeta(line *tui.StyleString, c *Candidate, avail int) {
	age := tries.Age(c.Modified, s.matcher.Now())
	meta := fmt.Sprintf("%s, %.1f", age, c.Score)
	if len(meta)+1 > avail {
		meta = fmt.Sprintf("%.1f", c.Score)
	}
	if len(meta)+1 > avail {
		return
	}
	for i := 0; i < avail-len(meta); i++ {
		line.WriteByte(' ')
	}
	line.Print(tui.Dark, meta)
}

func (s *Selector) renderCreateRow(screen *tui.Screen) {
	line := screen.Line()
	selected := s.onCreateRow()
	if selected {
		line.Push(tui.Selected)
	}
	if selected {
		line.Print(tui.Match, "→ ")
	} else {
		line.WriteString("  ")
	}
	line.WriteString("📂 Create new: ")
	line.WriteString(s.createPreview())
	if selected {
		line.Pop()
	}
	screen.WriteLine(line)
}

func (s *Selector) renderFooter(screen *tui.Screen) {
	line := screen.Line()
	switch {
	case s.status != "":
		line.Print(tui.Dark, s.status)
		s.status = ""
	case s.marked > 0:
		line.Printf(tui.Danger, "%d marked for deletion", s.marked)
		line.Print(tui.Dark, " · enter confirm · esc clear marks")
	default:
		line.Print(tui.Dark, "↑/↓ navigate · enter select · ctrl-d mark · esc cancel")
	}
	screen.WriteLine(line)
}

// renderConfirm draws the full-screen delete confirmation dialog.
func (s *Selector) renderConfirm(names []string) {
	cols, rows := s.term.Size()
	screen := tui.NewScreen(s.out, cols, rows)

	header := screen.Line()
	header.Print(tui.Title, "🗑️ delete tries")
	screen.WriteLine(header)
	screen.Rule()
	screen.Blank()

	shown := names
	const maxShown = 10
	if len(shown) > maxShown {
		shown = shown[:maxShown]
	}
	for _, name := range shown {
		line := screen.Line()
		line.WriteString("  ")
		line.Print(tui.Danger, name)
		screen.WriteLine(line)
	}
	if len(names) > maxShown {
		line := screen.Line()
		line.Printf(tui.Dark, "  … and %d more", len(names)-maxShown)
		screen.WriteLine(line)
	}

	screen.Blank()
	warn := screen.Line()
	warn.Printf(tui.Danger, "This permanently deletes %d director%s.", len(names), plural(len(names), "y", "ies"))
	screen.WriteLine(warn)
	screen.Blank()

	prompt := screen.Line()
	prompt.WriteString("Type YES to confirm: ")
	screen.Input(prompt, &s.confirm)
	screen.End()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
