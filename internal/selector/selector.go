// Package selector runs the interactive picker: scan the tries root, filter
// as the user types, and resolve to one action (open, create, delete a
// marked set, or cancel).
package selector

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"try/internal/debug"
	"try/internal/fuzzy"
	"try/internal/terminal"
	"try/internal/tries"
	"try/internal/tui"
)

// Action is the outcome of a selector run.
type Action int

const (
	ActionCancel Action = iota
	ActionOpen
	ActionCreate
	ActionDelete
)

// Result carries the chosen action: Path for Open/Create, Names for Delete
// in display order.
type Result struct {
	Action Action
	Path   string
	Names  []string
}

// Candidate is one try in the list, carrying its last render and score.
type Candidate struct {
	Path     string
	Name     string
	Rendered string
	Modified time.Time
	Score    float64
	Marked   bool
}

// Options configures a run. RenderOnce draws a single frame and cancels.
// Keys, when non-nil, replaces live terminal input; exhaustion reads as EOF.
// Confirm pre-answers the delete dialog for scripted runs. Output defaults
// to stderr.
type Options struct {
	Root         string
	InitialQuery string
	RenderOnce   bool
	Keys         []terminal.KeyEvent
	Confirm      string
	Output       io.Writer
}

type state int

const (
	stateBrowsing state = iota
	stateConfirming
	stateDone
)

// Selector holds all run state. Nothing here is global; two selectors could
// run back to back without touching each other.
type Selector struct {
	opts    Options
	term    *terminal.Terminal
	out     io.Writer
	matcher *fuzzy.Matcher
	log     *logrus.Logger

	candidates []*Candidate
	filtered   []*Candidate
	selected   int
	scroll     int
	search     tui.Input
	confirm    tui.Input
	marked     int
	status     string

	keys   []terminal.KeyEvent
	keyIdx int
}

// New builds a selector over the tries under opts.Root.
func New(opts Options) *Selector {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	s := &Selector{
		opts:    opts,
		term:    terminal.New(os.Stdin, os.Stderr),
		out:     out,
		matcher: fuzzy.New(),
		log:     debug.Logger(),
		keys:    opts.Keys,
	}
	s.search.Set(opts.InitialQuery)
	s.confirm.Placeholder = "YES"
	return s
}

// Run drives the picker to a terminal state. Every exit path restores the
// terminal; fatal signals are covered by the terminal package's handler.
func (s *Selector) Run() Result {
	s.load()
	s.refilter()

	if s.opts.RenderOnce {
		s.render()
		return Result{Action: ActionCancel}
	}

	live := s.keys == nil
	if live {
		if err := s.term.EnterRaw(); err != nil {
			fmt.Fprintln(s.out, err)
			return Result{Action: ActionCancel}
		}
		s.term.EnterAltScreen()
		defer s.term.Restore()
	}

	st := stateBrowsing
	var result Result
	for st != stateDone {
		switch st {
		case stateBrowsing:
			s.render()
			st, result = s.handleBrowseKey(s.nextKey())
		case stateConfirming:
			st, result = s.confirmDelete()
		}
	}
	return result
}

func (s *Selector) load() {
	entries := tries.Scan(s.opts.Root)
	s.candidates = s.candidates[:0]
	for _, e := range entries {
		s.candidates = append(s.candidates, &Candidate{
			Path:     e.Path,
			Name:     e.Name,
			Modified: e.Modified,
		})
	}
	s.log.WithField("count", len(s.candidates)).Debug("scanned tries")
}

// refilter rescores everything against the current query and rebuilds the
// visible list. Ties sort by name so the order is stable across runs.
func (s *Selector) refilter() {
	query := s.search.Text()
	s.filtered = s.filtered[:0]
	for _, c := range s.candidates {
		c.Score, c.Rendered = s.matcher.Match(c.Name, query, c.Modified)
		if query != "" && c.Score <= 0 {
			continue
		}
		s.filtered = append(s.filtered, c)
	}
	sort.SliceStable(s.filtered, func(i, j int) bool {
		if s.filtered[i].Score != s.filtered[j].Score {
			return s.filtered[i].Score > s.filtered[j].Score
		}
		return s.filtered[i].Name < s.filtered[j].Name
	})
	if s.selected >= s.visibleCount() {
		s.selected = 0
	}
}

// visibleCount includes the virtual create row when the query is non-empty.
func (s *Selector) visibleCount() int {
	n := len(s.filtered)
	if s.search.Text() != "" {
		n++
	}
	return n
}

// onCreateRow reports whether the selection sits on the virtual create row.
func (s *Selector) onCreateRow() bool {
	return s.search.Text() != "" && s.selected == len(s.filtered)
}

// createPreview is the name the create row would produce, as it will exist
// on disk.
func (s *Selector) createPreview() string {
	name := tries.Normalize(s.search.Text())
	if name == "" {
		return ""
	}
	return tries.WithDatePrefix(name, s.matcher.Now())
}

func (s *Selector) nextKey() terminal.KeyEvent {
	if s.keys != nil {
		if s.keyIdx >= len(s.keys) {
			return terminal.KeyEvent{Kind: terminal.EventEOF}
		}
		ev := s.keys[s.keyIdx]
		s.keyIdx++
		return ev
	}
	return s.term.ReadKey()
}

func (s *Selector) handleBrowseKey(ev terminal.KeyEvent) (state, Result) {
	switch {
	case ev.Kind == terminal.EventEOF:
		return stateDone, Result{Action: ActionCancel}
	case ev.Kind == terminal.EventResize, ev.Kind == terminal.EventUnknown:
		return stateBrowsing, Result{}
	case ev.IsNamed(terminal.KeyUp) || ev.IsCtrl('p'):
		if s.selected > 0 {
			s.selected--
		}
		return stateBrowsing, Result{}
	case ev.IsNamed(terminal.KeyDown) || ev.IsCtrl('n'):
		if s.selected < s.visibleCount()-1 {
			s.selected++
		}
		return stateBrowsing, Result{}
	case ev.IsCtrl('d'):
		s.toggleMark()
		return stateBrowsing, Result{}
	case ev.IsChar('\r') || ev.IsChar('\n'):
		return s.accept()
	case ev.IsChar(0x1b) || ev.IsCtrl('c'):
		if s.marked > 0 {
			s.clearMarks()
			return stateBrowsing, Result{}
		}
		return stateDone, Result{Action: ActionCancel}
	}

	handled, changed := s.search.HandleKey(ev)
	if handled {
		s.status = ""
	}
	if changed {
		s.selected = 0
		s.refilter()
	}
	return stateBrowsing, Result{}
}

func (s *Selector) toggleMark() {
	if s.onCreateRow() || s.selected >= len(s.filtered) {
		return
	}
	c := s.filtered[s.selected]
	c.Marked = !c.Marked
	if c.Marked {
		s.marked++
	} else {
		s.marked--
	}
}

func (s *Selector) clearMarks() {
	for _, c := range s.candidates {
		c.Marked = false
	}
	s.marked = 0
}

func (s *Selector) markedNames() []string {
	var names []string
	for _, c := range s.filtered {
		if c.Marked {
			names = append(names, c.Name)
		}
	}
	// Marks on candidates filtered out by a later query still count.
	for _, c := range s.candidates {
		if c.Marked && !contains(names, c.Name) {
			names = append(names, c.Name)
		}
	}
	return names
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func (s *Selector) accept() (state, Result) {
	if s.marked > 0 {
		return stateConfirming, Result{}
	}
	if s.onCreateRow() {
		name := tries.Normalize(s.search.Text())
		if name == "" {
			return stateDone, Result{Action: ActionCancel}
		}
		name = tries.WithDatePrefix(name, s.matcher.Now())
		return stateDone, Result{
			Action: ActionCreate,
			Path:   filepath.Join(s.opts.Root, name),
		}
	}
	if s.selected < len(s.filtered) {
		return stateDone, Result{Action: ActionOpen, Path: s.filtered[s.selected].Path}
	}
	return stateDone, Result{Action: ActionCancel}
}

// confirmDelete runs the confirmation dialog. Only the exact answer YES
// deletes; anything else clears the marks and drops back to browsing.
func (s *Selector) confirmDelete() (state, Result) {
	names := s.markedNames()

	answer := s.opts.Confirm
	if s.opts.Confirm == "" {
		s.confirm.Reset()
		for {
			s.renderConfirm(names)
			ev := s.nextKey()
			switch {
			case ev.Kind == terminal.EventEOF:
				return stateDone, Result{Action: ActionCancel}
			case ev.Kind == terminal.EventResize, ev.Kind == terminal.EventUnknown:
				continue
			case ev.IsChar('\r') || ev.IsChar('\n'):
				answer = s.confirm.Text()
			case ev.IsChar(0x1b) || ev.IsCtrl('c'):
				answer = ""
			default:
				s.confirm.HandleKey(ev)
				continue
			}
			break
		}
	}

	if answer == "YES" {
		s.log.WithField("count", len(names)).Debug("delete confirmed")
		return stateDone, Result{Action: ActionDelete, Names: names}
	}
	s.clearMarks()
	s.status = "Deletion aborted."
	return stateBrowsing, Result{}
}
