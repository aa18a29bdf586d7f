package adapter

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// imdbTitleURL is the public page for a title id
const imdbTitleURL = "https://www.imdb.com/title/"

// MovieURL returns the IMDb page for an id, or "" for an empty id
func MovieURL(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	return imdbTitleURL + url.PathEscape(id) + "/"
}

// Launcher opens movie pages in an external browser
type Launcher struct {
	command string   // configured browser command, empty for detection
	args    []string // additional arguments for the browser
	logger  *slog.Logger

	// start runs a command without waiting for it; replaced in tests
	start func(name string, args ...string) error
	// lookPath resolves a command in PATH; replaced in tests
	lookPath func(file string) (string, error)
}

// candidateOpeners defines the preferred URL handlers for each platform.
// The first one found in PATH wins.
var candidateOpeners = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open", "sensible-browser", "wslview", "x-www-browser"},
	"freebsd": {"xdg-open", "firefox"},
	"windows": {"rundll32"},
}

// NewLauncher creates a Launcher. An empty command selects the platform default.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		logger:   logger,
		start:    startCommand,
		lookPath: exec.LookPath,
	}
}

func startCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	return cmd.Start() // Start async, don't wait
}

// Open opens target in the configured browser or the system default
func (l *Launcher) Open(target string) error {
	if target == "" {
		return fmt.Errorf("nothing to open")
	}

	// Tier 1: User configured a specific browser
	if l.command != "" {
		args := append(append([]string{}, l.args...), target)
		l.logger.Info("opening with configured browser", "command", l.command, "url", target)
		return l.start(l.command, args...)
	}

	// Tier 2: Try the platform's URL handlers in order
	name, err := l.detectAndOpen(target)
	if err != nil {
		return err
	}
	l.logger.Info("opened with detected handler", "handler", name, "url", target)
	return nil
}

// detectAndOpen tries candidate handlers for the current platform.
// Returns the handler that succeeded.
func (l *Launcher) detectAndOpen(target string) (string, error) {
	candidates, ok := candidateOpeners[runtime.GOOS]
	if !ok {
		candidates = candidateOpeners["linux"] // default
	}

	for _, name := range candidates {
		if _, err := l.lookPath(name); err != nil {
			l.logger.Debug("url handler not available", "handler", name, "error", err)
			continue
		}
		if err := l.start(name, handlerArgs(name, target)...); err != nil {
			l.logger.Debug("url handler failed", "handler", name, "error", err)
			continue
		}
		return name, nil
	}

	return "", fmt.Errorf("no url handler found for %s", runtime.GOOS)
}

// handlerArgs builds the argument list for a known handler
func handlerArgs(name, target string) []string {
	if name == "rundll32" {
		return []string{"url.dll,FileProtocolHandler", target}
	}
	return []string{target}
}
