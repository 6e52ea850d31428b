// Package terminal owns the controlling terminal for one selector run: raw
// mode with guaranteed restoration, the alternate screen, window-size
// resolution and byte-level key decoding.
package terminal

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"try/internal/debug"
)

const (
	altScreenOn  = "\x1b[?1049h"
	altScreenOff = "\x1b[?1049l"
	attrReset    = "\x1b[0m"
	cursorShow   = "\x1b[?25h"
)

// Terminal tracks raw-mode and alternate-screen state for one input/output
// pair, normally stdin/stderr.
type Terminal struct {
	in, out *os.File
	saved   *term.State
	raw     bool
	alt     bool

	cols, rows int
	sized      bool
}

var (
	handlersOnce  sync.Once
	resizePending atomic.Bool
	activeTerm    atomic.Pointer[Terminal]
)

// New wraps an input/output file pair. Nothing touches the terminal until
// EnterRaw or EnterAltScreen.
func New(in, out *os.File) *Terminal {
	return &Terminal{in: in, out: out}
}

// EnterRaw switches the input to raw mode. Re-entrant calls and non-terminal
// inputs are no-ops. After MakeRaw the read timers are set to VMIN=0
// VTIME=1 so blocking reads tick every ~100ms, which is what lets a pending
// resize surface and what bounds the wait for escape-sequence bytes.
func (t *Terminal) EnterRaw() error {
	if t.raw {
		return nil
	}
	if !isatty.IsTerminal(t.in.Fd()) {
		return nil
	}
	fd := int(t.in.Fd())
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	t.saved = saved
	if tio, err := unix.IoctlGetTermios(fd, ioctlReadTermios); err == nil {
		tio.Cc[unix.VMIN] = 0
		tio.Cc[unix.VTIME] = 1
		_ = unix.IoctlSetTermios(fd, ioctlWriteTermios, tio)
	}
	t.raw = true
	activeTerm.Store(t)
	handlersOnce.Do(installSignalHandlers)
	return nil
}

// Restore releases everything EnterRaw and EnterAltScreen acquired:
// alternate screen first, then a full attribute reset and cursor show, then
// the saved termios. Safe to call on every exit path, repeatedly.
func (t *Terminal) Restore() {
	t.ExitAltScreen()
	if !t.raw {
		return
	}
	fmt.Fprint(t.out, attrReset+cursorShow)
	_ = term.Restore(int(t.in.Fd()), t.saved)
	t.raw = false
	activeTerm.Store(nil)
}

// EnterAltScreen switches output to the alternate screen buffer.
func (t *Terminal) EnterAltScreen() {
	if t.alt {
		return
	}
	fmt.Fprint(t.out, altScreenOn)
	t.alt = true
}

// ExitAltScreen returns to the primary screen buffer.
func (t *Terminal) ExitAltScreen() {
	if !t.alt {
		return
	}
	fmt.Fprint(t.out, attrReset+altScreenOff)
	t.alt = false
}

// Size returns (cols, rows). Resolution order per dimension: TRY_WIDTH and
// TRY_HEIGHT, the terminal itself, a tput subprocess, then 80x24. The result
// is cached until a resize interrupts a pending read.
func (t *Terminal) Size() (cols, rows int) {
	if t.sized {
		return t.cols, t.rows
	}
	cols = envDim("TRY_WIDTH")
	rows = envDim("TRY_HEIGHT")
	if (cols == 0 || rows == 0) && t.out != nil {
		if c, r, err := term.GetSize(int(t.out.Fd())); err == nil {
			if cols == 0 {
				cols = c
			}
			if rows == 0 {
				rows = r
			}
		}
	}
	if cols == 0 {
		cols = tputDim("cols")
	}
	if rows == 0 {
		rows = tputDim("lines")
	}
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}
	t.cols, t.rows, t.sized = cols, rows, true
	return cols, rows
}

// ReadKey blocks until one logical key is decoded. A resize signal during
// the read invalidates the size cache and comes back as EventResize.
func (t *Terminal) ReadKey() KeyEvent {
	ev := decodeKey(t)
	if ev.Kind == EventResize {
		t.sized = false
	}
	debug.Logger().WithField("kind", ev.Kind).WithField("ch", ev.Ch).Debug("key decoded")
	return ev
}

func (t *Terminal) nextByte() (byte, error) {
	fd := int(t.in.Fd())
	var buf [1]byte
	for {
		if resizePending.Swap(false) {
			return 0, errResize
		}
		n, err := unix.Read(fd, buf[:])
		if err != nil {
			if err == unix.EINTR {
				return 0, errResize
			}
			if err == unix.EAGAIN {
				continue
			}
			return 0, err
		}
		if n == 0 {
			if !t.raw {
				return 0, io.EOF
			}
			// VTIME tick; poll the resize flag and wait again.
			continue
		}
		return buf[0], nil
	}
}

func (t *Terminal) nextByteTimeout() (byte, bool, error) {
	fd := int(t.in.Fd())
	var buf [1]byte
	if resizePending.Swap(false) {
		return 0, false, errResize
	}
	n, err := unix.Read(fd, buf[:])
	if err != nil {
		if err == unix.EINTR {
			return 0, false, errResize
		}
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	return buf[0], true, nil
}

// installSignalHandlers wires SIGWINCH to the resize flag and the fatal
// signals to terminal restoration. The resize handler does no work beyond
// setting the flag; ReadKey notices it between ticks. The fatal handler is
// the liveness guarantee: the terminal is never left in raw or
// alternate-screen mode, even when the process is killed mid-session.
func installSignalHandlers() {
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, unix.SIGWINCH)
	go func() {
		for range winch {
			resizePending.Store(true)
		}
	}()

	fatal := make(chan os.Signal, 1)
	signal.Notify(fatal, unix.SIGINT, unix.SIGTERM, unix.SIGABRT)
	go func() {
		sig := <-fatal
		if t := activeTerm.Load(); t != nil {
			t.Restore()
		}
		code := 128
		if s, ok := sig.(syscall.Signal); ok {
			code += int(s)
		}
		os.Exit(code)
	}()
}

func envDim(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

func tputDim(what string) int {
	out, err := exec.Command("tput", what).Output()
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0
	}
	return n
}
