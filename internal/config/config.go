// Package config resolves the tries root path and color handling.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Version info - set via ldflags during build
var (
	Version   = "2.0.0"
	BuildTime = ""
)

// Config is the optional ~/.config/try/config.yaml file.
type Config struct {
	Path    string `yaml:"path"`
	NoColor bool   `yaml:"no_color"`
}

// Load reads the config file from the default location. A missing or
// malformed file degrades to the zero config.
func Load() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		return &Config{}
	}
	return LoadFile(filepath.Join(home, ".config", "try", "config.yaml"))
}

// LoadFile reads a config file from an explicit path.
func LoadFile(path string) *Config {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &Config{}
	}
	return cfg
}

// ResolveRoot picks the tries root: --path flag, TRY_PATH env, config file,
// then ~/src/tries.
func ResolveRoot(flagPath string, cfg *Config) string {
	if flagPath != "" {
		return ExpandPath(flagPath)
	}
	if env := os.Getenv("TRY_PATH"); env != "" {
		return ExpandPath(env)
	}
	if cfg != nil && cfg.Path != "" {
		return ExpandPath(cfg.Path)
	}
	return ExpandPath(filepath.Join("~", "src", "tries"))
}

// ColorsDisabled reports whether color output should be suppressed: the
// --no-color flag, the config file, the NO_COLOR/CLICOLOR conventions, or a
// non-terminal stderr.
func ColorsDisabled(flagNoColor bool, cfg *Config) bool {
	if flagNoColor {
		return true
	}
	if cfg != nil && cfg.NoColor {
		return true
	}
	if termenv.EnvNoColor() {
		return true
	}
	return !isatty.IsTerminal(os.Stderr.Fd())
}

// ExpandPath expands ~ and returns an absolute path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else if strings.HasPrefix(path, "~/") {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// VersionString formats the version banner for --version.
func VersionString() string {
	if BuildTime != "" {
		return fmt.Sprintf("try %s (built %s)", Version, BuildTime)
	}
	return fmt.Sprintf("try %s", Version)
}
