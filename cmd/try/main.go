// Command try is a fuzzy picker for dated scratch directories. The picker
// draws on stderr; stdout emits a shell script for the try() wrapper
// function to eval (see `try init`).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"try/internal/config"
	"try/internal/debug"
	"try/internal/script"
	"try/internal/selector"
	"try/internal/terminal"
	"try/internal/tries"
	"try/internal/tui"
)

type cliFlags struct {
	path       string
	noColor    bool
	version    bool
	andExit    bool
	andKeys    string
	andConfirm string
}

func main() {
	var flags cliFlags

	root := &cobra.Command{
		Use:           "try [query...]",
		Short:         "fuzzy picker for dated scratch directories",
		Long:          "try manages a directory of dated scratch directories (\"tries\").\nRun it through the shell wrapper from `try init` so the emitted cd takes effect.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.version {
				fmt.Println(config.VersionString())
				return nil
			}
			return run(&flags, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.path, "path", "", "tries directory (overrides TRY_PATH and config)")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable color output")
	root.Flags().BoolVar(&flags.version, "version", false, "print version")
	pf.BoolVar(&flags.andExit, "and-exit", false, "render one frame and exit")
	pf.StringVar(&flags.andKeys, "and-keys", "", "scripted key input")
	pf.StringVar(&flags.andConfirm, "and-confirm", "", "scripted delete confirmation")
	for _, hidden := range []string{"and-exit", "and-keys", "and-confirm"} {
		_ = pf.MarkHidden(hidden)
	}

	root.AddCommand(
		execCmd(&flags),
		initCmd(&flags),
		cloneCmd(&flags),
		worktreeCmd(&flags),
		versionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execCmd is what the shell wrapper invokes; it routes identically to the
// bare root command.
func execCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:    "exec [query...]",
		Short:  "run the picker (wrapper entry point)",
		Hidden: true,
		Args:   cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags, args)
		},
	}
}

func initCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "print the shell wrapper function",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bin, err := os.Executable()
			if err != nil {
				bin = os.Args[0]
			}
			root := resolveRoot(flags)
			if len(args) > 0 {
				root = config.ExpandPath(args[0])
			}
			fmt.Print(script.InitSnippet(config.ExpandPath(bin), root))
			return nil
		},
	}
}

func cloneCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clone <uri> [name]",
		Short: "create a try by cloning a git repository",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setup(flags)
			override := ""
			if len(args) > 1 {
				override = args[1]
			}
			return emitClone(flags, args[0], override)
		},
	}
}

func worktreeCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "worktree [repo] [name...]",
		Short: "create a try as a detached worktree of a repository",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setup(flags)
			repo := ""
			if len(args) > 0 {
				repo = args[0]
				args = args[1:]
			}
			return emitWorktree(flags, repo, strings.Join(args, " "), true)
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.VersionString())
		},
	}
}

// run routes the free-form arguments: a git URI clones, a dot-path becomes
// a worktree of that repo, anything else seeds the picker query.
func run(flags *cliFlags, args []string) error {
	setup(flags)

	if len(args) > 0 && tries.IsGitURI(args[0]) {
		override := strings.Join(args[1:], " ")
		return emitClone(flags, args[0], override)
	}
	if len(args) > 0 && strings.HasPrefix(args[0], ".") {
		return emitWorktree(flags, args[0], strings.Join(args[1:], " "), false)
	}

	root := resolveRoot(flags)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create tries directory: %w", err)
	}

	sel := selector.New(selector.Options{
		Root:         root,
		InitialQuery: strings.Join(args, " "),
		RenderOnce:   flags.andExit,
		Keys:         terminal.ParseKeys(flags.andKeys),
		Confirm:      flags.andConfirm,
	})
	result := sel.Run()

	switch result.Action {
	case selector.ActionOpen:
		emit(script.Cd(result.Path))
	case selector.ActionCreate:
		name := tries.Unique(root, filepath.Base(result.Path))
		emit(script.MkdirCd(filepath.Join(root, name)))
	case selector.ActionDelete:
		names, err := safeDeleteNames(root, result.Names)
		if err != nil {
			return err
		}
		emit(script.Delete(root, names))
	default:
		fmt.Fprintln(os.Stderr, "Cancelled.")
		os.Exit(1)
	}
	return nil
}

func setup(flags *cliFlags) {
	if config.ColorsDisabled(flags.noColor, config.Load()) {
		tui.DisableColors()
	}
	debug.Logger().WithField("args", os.Args[1:]).Debug("invocation")
}

func resolveRoot(flags *cliFlags) string {
	return config.ResolveRoot(flags.path, config.Load())
}

func emitClone(flags *cliFlags, uri, override string) error {
	root := resolveRoot(flags)
	name, err := tries.CloneName(uri, override, time.Now())
	if err != nil {
		return err
	}
	name = tries.Unique(root, name)
	emit(script.Clone(filepath.Join(root, name), uri))
	return nil
}

func emitWorktree(flags *cliFlags, repo, customName string, explicit bool) error {
	root := resolveRoot(flags)

	repoDir := repo
	if repoDir == "" || repoDir == "." {
		if cwd, err := os.Getwd(); err == nil {
			repoDir = cwd
		}
	} else {
		repoDir = config.ExpandPath(repoDir)
	}

	base := strings.TrimSpace(customName)
	if base == "" {
		if real, err := filepath.EvalSymlinks(repoDir); err == nil {
			base = filepath.Base(real)
		} else {
			base = filepath.Base(repoDir)
		}
	}
	base = tries.Normalize(base)
	if base == "" {
		return fmt.Errorf("no usable name for worktree of %q", repoDir)
	}
	name := tries.Unique(root, tries.WithDatePrefix(base, time.Now()))
	emit(script.Worktree(filepath.Join(root, name), repoDir, explicit))
	return nil
}

// safeDeleteNames resolves each name under root and refuses anything whose
// real path escapes it, so a symlinked try can never take its target with
// it.
func safeDeleteNames(root string, names []string) ([]string, error) {
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("resolve tries directory: %w", err)
	}
	sep := string(filepath.Separator)
	var safe []string
	for _, name := range names {
		if name != filepath.Base(name) || name == "." || name == ".." {
			return nil, fmt.Errorf("refusing to delete %q: not a plain name", name)
		}
		real, err := filepath.EvalSymlinks(filepath.Join(root, name))
		if err != nil {
			// Already gone; the emitted script guards with test -d anyway.
			continue
		}
		if !strings.HasPrefix(real+sep, realRoot+sep) {
			return nil, fmt.Errorf("refusing to delete %q: resolves outside %s", name, root)
		}
		safe = append(safe, name)
	}
	return safe, nil
}

func emit(s *script.Script) {
	fmt.Print(s.String())
}
