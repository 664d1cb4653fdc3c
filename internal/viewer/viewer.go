// Package viewer launches an external PDF viewer at a given page.
//
// Dispatch is an ordered-attempt loop over independent viewer capabilities;
// each capability is a one-line process invocation. The only hard failure
// is exhausting the list without finding a usable viewer.
package viewer

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"

	"github.com/mandex/mandex/internal/errors"
)

// Capability describes one external viewer invocation.
type Capability struct {
	// Name is the executable looked up on PATH.
	Name string
	// Args builds the argument list opening path at the given page.
	Args func(path string, page int) []string
}

// capabilities are tried in declaration order. Viewers that can jump to a
// page come first; xdg-open is the page-less last resort.
var capabilities = []Capability{
	{Name: "zathura", Args: func(path string, page int) []string {
		return []string{"--page=" + strconv.Itoa(page), path}
	}},
	{Name: "okular", Args: func(path string, page int) []string {
		return []string{"-p", strconv.Itoa(page), path}
	}},
	{Name: "evince", Args: func(path string, page int) []string {
		return []string{"-p", strconv.Itoa(page), path}
	}},
	{Name: "mupdf", Args: func(path string, page int) []string {
		return []string{path, strconv.Itoa(page)}
	}},
	{Name: "xpdf", Args: func(path string, page int) []string {
		return []string{path, ":" + strconv.Itoa(page)}
	}},
	{Name: "xdg-open", Args: func(path string, page int) []string {
		return []string{path}
	}},
}

// Dispatcher opens a manual in the first available viewer.
type Dispatcher struct {
	caps []Capability

	// Injection points for tests.
	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// New creates a dispatcher. A non-empty preferred name restricts dispatch
// to that viewer; an unknown name is invoked as "<name> <path>".
func New(preferred string) *Dispatcher {
	d := &Dispatcher{
		caps:     capabilities,
		lookPath: exec.LookPath,
		start:    startDetached,
	}

	if preferred == "" {
		return d
	}

	for _, c := range capabilities {
		if c.Name == preferred {
			d.caps = []Capability{c}
			return d
		}
	}
	d.caps = []Capability{{
		Name: preferred,
		Args: func(path string, page int) []string { return []string{path} },
	}}
	return d
}

// Open launches a viewer showing path at page. Each capability is tried in
// order; a viewer missing from PATH or failing to start falls through to
// the next. Returns a ViewerUnavailable error when the list is exhausted.
func (d *Dispatcher) Open(path string, page int) error {
	for _, c := range d.caps {
		if _, err := d.lookPath(c.Name); err != nil {
			continue
		}

		args := c.Args(path, page)
		if err := d.start(c.Name, args...); err != nil {
			slog.Debug("viewer_start_failed",
				slog.String("viewer", c.Name),
				slog.String("error", err.Error()))
			continue
		}

		slog.Debug("viewer_started",
			slog.String("viewer", c.Name),
			slog.Int("page", page))
		return nil
	}

	return errors.New(errors.ErrCodeViewerUnavailable,
		fmt.Sprintf("no PDF viewer available to open %s", path), nil).
		WithSuggestion("install zathura, okular, evince, mupdf or xpdf, or set viewer.command")
}

// startDetached starts the viewer without waiting for it to exit, so the
// lookup command returns while the viewer window stays open.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
