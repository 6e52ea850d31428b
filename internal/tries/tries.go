// Package tries knows the naming rules and on-disk layout of the tries
// directory: date-prefixed names, normalization, uniqueness, git URI
// basenames and compact ages.
package tries

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Entry is one try directory found under the root.
type Entry struct {
	Path     string
	Name     string
	Modified time.Time
}

// Scan lists the try directories under root, newest first left to the
// caller. Hidden entries and plain files are skipped. An unreadable root
// yields an empty list; a stat failure on one entry yields a zero Modified
// rather than dropping the entry.
func Scan(root string) []Entry {
	dirents, err := os.ReadDir(root)
	if err != nil {
		return nil
	}
	var entries []Entry
	for _, de := range dirents {
		if !de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		var modified time.Time
		if info, err := de.Info(); err == nil {
			modified = info.ModTime()
		}
		entries = append(entries, Entry{
			Path:     filepath.Join(root, de.Name()),
			Name:     de.Name(),
			Modified: modified,
		})
	}
	return entries
}

// Normalize maps arbitrary input to a safe directory name: runs of
// whitespace and hyphens collapse to a single hyphen, anything outside
// [a-zA-Z0-9._-] is dropped, and leading/trailing hyphens are trimmed. An
// empty result means the input had nothing usable. Idempotent.
func Normalize(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == ' ' || r == '\t' || r == '-':
			pending = true
		case isNameRune(r):
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isNameRune(r rune) bool {
	return r == '.' || r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

var datePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)

// HasDatePrefix reports whether name starts with YYYY-MM-DD-.
func HasDatePrefix(name string) bool {
	return datePrefixRe.MatchString(name)
}

// WithDatePrefix prepends t's date unless name already carries one.
func WithDatePrefix(name string, t time.Time) string {
	if HasDatePrefix(name) {
		return name
	}
	return t.Format("2006-01-02") + "-" + name
}

var trailingNumRe = regexp.MustCompile(`^(.*?)(\d+)$`)

// Unique returns name if root/name does not exist, otherwise the first free
// versioned variant. A name already ending in a number bumps that number;
// anything else gets -2, -3, ... appended.
func Unique(root, name string) string {
	if !exists(filepath.Join(root, name)) {
		return name
	}
	if m := trailingNumRe.FindStringSubmatch(name); m != nil {
		var num int
		_, _ = fmt.Sscanf(m[2], "%d", &num)
		for n := num + 1; ; n++ {
			candidate := fmt.Sprintf("%s%d", m[1], n)
			if !exists(filepath.Join(root, candidate)) {
				return candidate
			}
		}
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", name, n)
		if !exists(filepath.Join(root, candidate)) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

var (
	scpURIRe   = regexp.MustCompile(`^git@([^:]+):([^/]+)/([^/]+)$`)
	sshURIRe   = regexp.MustCompile(`^ssh://(?:[^@]+@)?([^/:]+)(?::\d+)?/([^/]+)/([^/]+)$`)
	httpsURIRe = regexp.MustCompile(`^https?://([^/]+)/([^/]+)/([^/]+)`)
)

// ParseGitURI extracts host, owner and repo from the forms git clone
// accepts: scp-like, ssh://, http(s)://, or a local path (owner empty, repo
// is the basename).
func ParseGitURI(uri string) (host, owner, repo string, err error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", "", "", errors.New("empty git URI")
	}
	trimmed := strings.TrimSuffix(uri, ".git")

	if m := scpURIRe.FindStringSubmatch(trimmed); m != nil {
		return m[1], m[2], m[3], nil
	}
	if m := sshURIRe.FindStringSubmatch(trimmed); m != nil {
		return m[1], m[2], m[3], nil
	}
	if m := httpsURIRe.FindStringSubmatch(trimmed); m != nil {
		return m[1], m[2], m[3], nil
	}
	if strings.Contains(uri, "://") || strings.Contains(uri, "@") {
		return "", "", "", fmt.Errorf("unable to parse git URI %q", uri)
	}
	// Local path clone.
	base := filepath.Base(strings.TrimSuffix(strings.TrimRight(uri, "/"), ".git"))
	if base == "" || base == "." || base == "/" {
		return "", "", "", fmt.Errorf("unable to parse git URI %q", uri)
	}
	return "", "", base, nil
}

// IsGitURI is the routing heuristic: anything that looks like a remote git
// address rather than a search query.
func IsGitURI(arg string) bool {
	if arg == "" {
		return false
	}
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") ||
		strings.HasPrefix(arg, "git@") || strings.HasPrefix(arg, "ssh://") ||
		strings.Contains(arg, "github.com") || strings.Contains(arg, "gitlab.com") ||
		strings.HasSuffix(arg, ".git")
}

// CloneName derives the date-prefixed directory name for a clone. override,
// when non-empty, replaces the repo basename.
func CloneName(uri, override string, t time.Time) (string, error) {
	base := strings.TrimSpace(override)
	if base == "" {
		_, _, repo, err := ParseGitURI(uri)
		if err != nil {
			return "", err
		}
		base = repo
	}
	base = Normalize(base)
	if base == "" {
		return "", fmt.Errorf("no usable name in %q", uri)
	}
	return WithDatePrefix(base, t), nil
}

// Age renders a compact relative timestamp: just now, Nm ago, Nh ago,
// Nd ago, Nw ago.
func Age(t, now time.Time) string {
	if t.IsZero() {
		return "?"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw ago", int(d.Hours()/(24*7)))
	}
}
