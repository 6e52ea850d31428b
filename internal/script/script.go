// Package script builds the POSIX shell fragments try prints to stdout for
// the shell wrapper to eval. Everything user-visible (the picker) goes to
// stderr; stdout carries only these scripts.
package script

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Header reminds anyone running the binary directly that the output is
// meant for eval by the wrapper function.
const Header = "# if you can read this, you didn't launch try from an alias. run try --help."

// Quote single-quotes s for the shell.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// Script accumulates commands joined into one eval-able && chain.
type Script struct {
	cmds []string
}

// Add appends one command.
func (s *Script) Add(cmd string) {
	s.cmds = append(s.cmds, cmd)
}

// Addf appends one formatted command.
func (s *Script) Addf(format string, args ...any) {
	s.cmds = append(s.cmds, fmt.Sprintf(format, args...))
}

// String renders the header plus the command chain. Commands join with
// " && \" continuations so a failure stops the chain.
func (s *Script) String() string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	for i, cmd := range s.cmds {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(cmd)
		if i < len(s.cmds)-1 {
			b.WriteString(" && \\")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Cd enters an existing try, refreshing its mtime so it sorts to the top
// next time.
func Cd(path string) *Script {
	s := &Script{}
	s.Add("clear")
	s.Addf("touch %s", Quote(path))
	s.Addf("cd %s", Quote(path))
	return s
}

// MkdirCd creates a new try and enters it.
func MkdirCd(path string) *Script {
	s := &Script{}
	s.Addf("mkdir -p %s", Quote(path))
	s.cmds = append(s.cmds, Cd(path).cmds...)
	return s
}

// Clone creates a try by cloning uri into it.
func Clone(path, uri string) *Script {
	s := &Script{}
	s.Addf("mkdir -p %s", Quote(path))
	s.Addf("echo %s", Quote(fmt.Sprintf("Cloning %s.", uri)))
	s.Addf("git clone %s %s", Quote(uri), Quote(path))
	s.cmds = append(s.cmds, Cd(path).cmds...)
	return s
}

// Worktree creates a try as a detached git worktree of repo, or of the
// current directory when repo is empty or implicit. The worktree add is
// best-effort: outside a git repo the try is still created as a plain
// directory.
func Worktree(path, repo string, explicit bool) *Script {
	src := repo
	if repo == "" || !explicit {
		if cwd, err := os.Getwd(); err == nil {
			src = cwd
		}
	}

	var add string
	if repo != "" && explicit {
		r := Quote(repo)
		add = fmt.Sprintf("/usr/bin/env sh -c 'if git -C %s rev-parse --is-inside-work-tree >/dev/null 2>&1; then repo=$(git -C %s rev-parse --show-toplevel); git -C \"$repo\" worktree add --detach %s >/dev/null 2>&1 || true; fi; exit 0'", r, r, Quote(path))
	} else {
		add = fmt.Sprintf("/usr/bin/env sh -c 'if git rev-parse --is-inside-work-tree >/dev/null 2>&1; then repo=$(git rev-parse --show-toplevel); git -C \"$repo\" worktree add --detach %s >/dev/null 2>&1 || true; fi; exit 0'", Quote(path))
	}

	s := &Script{}
	s.Addf("mkdir -p %s", Quote(path))
	s.Addf("echo %s", Quote(fmt.Sprintf("Creating worktree from %s.", src)))
	s.Add(add)
	s.cmds = append(s.cmds, Cd(path).cmds...)
	return s
}

// Delete removes the named tries under base, each guarded by a directory
// test, then returns to the caller's directory (or $HOME if it vanished).
func Delete(base string, names []string) *Script {
	s := &Script{}
	s.Addf("cd %s", Quote(base))
	for _, name := range names {
		s.Addf("test -d %s && rm -rf %s", Quote(name), Quote(name))
	}
	cwd, _ := os.Getwd()
	s.Addf(`( cd %s 2>/dev/null || cd "$HOME" )`, Quote(cwd))
	return s
}

// InitSnippet renders the try() wrapper function for the user's shell. The
// wrapper runs `try exec` with stderr on the tty so the picker can draw,
// then evals the captured stdout.
func InitSnippet(binPath, triesPath string) string {
	pathArg := ""
	if triesPath != "" {
		pathArg = fmt.Sprintf(" --path %s", Quote(triesPath))
	}

	if fishShell() {
		return fmt.Sprintf(`function try
  set -l out (%s exec%s $argv 2>/dev/tty | string collect)
  if test $status -eq 0
    eval $out
  else
    echo $out
  end
end
`, Quote(binPath), pathArg)
	}

	return fmt.Sprintf(`try() {
  local out
  out=$(%s exec%s "$@" 2>/dev/tty)
  if [ $? -eq 0 ]; then
    eval "$out"
  else
    echo "$out"
  fi
}
`, Quote(binPath), pathArg)
}

// fishShell checks $SHELL, falling back to the parent process name for
// shells that don't export it.
func fishShell() bool {
	shell := os.Getenv("SHELL")
	if shell == "" {
		out, err := exec.Command("ps", "c", "-p", fmt.Sprintf("%d", os.Getppid()), "-o", "ucomm=").Output()
		if err == nil {
			shell = strings.TrimSpace(string(out))
		}
	}
	return strings.Contains(shell, "fish")
}
