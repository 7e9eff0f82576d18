// Package buildctx carries the process-wide state that the original tool
// kept in global singletons: parsed CLI options and the file cache. Per the
// language-neutral redesign, this state is an explicit Context value
// threaded through every operation instead of package-level globals;
// Default builds the one instance the CLI entry point uses.
package buildctx

import (
	"fmt"
	"io"
	"os"

	"github.com/kaptinlin/builder/filecache"
)

// Options mirrors the CLI surface's global flags.
type Options struct {
	Quiet       bool
	Verbose     int
	Directory   string
	Languages   []string
	NoRequires  bool
	ForceFetch  bool
	Sets        map[string]string
	Tasks       []string
}

// Context is the explicit replacement for the original's global options
// record and process-wide file cache: every operation that needs either
// takes a *Context parameter instead of reaching for package state.
type Context struct {
	Options Options
	Cache   *filecache.Cache
	Stdout  io.Writer
	Stderr  io.Writer
}

// Default builds the Context the CLI entry point uses: cache rooted at
// $HOME/.builder, output wired to the process's real stdout/stderr.
func Default(opts Options) (*Context, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	cache, err := filecache.New(home + "/.builder")
	if err != nil {
		return nil, err
	}
	cache.ForceRefresh = opts.ForceFetch
	return &Context{
		Options: opts,
		Cache:   cache,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}, nil
}

// Warnf writes a warning line unless Quiet is set. Terminal coloring is a
// CLI-layer concern (out of scope for the core); this just formats the
// "Warning:" label the original always prefixed.
func (c *Context) Warnf(format string, args ...any) {
	if c.Options.Quiet {
		return
	}
	fmt.Fprintf(c.Stderr, "Warning: "+format+"\n", args...) //nolint:errcheck
}

// Errorf writes a labeled error line to Stderr, regardless of Quiet.
func (c *Context) Errorf(format string, args ...any) {
	fmt.Fprintf(c.Stderr, "ERROR: "+format+"\n", args...) //nolint:errcheck
}

// Infof writes an informational line unless Quiet is set.
func (c *Context) Infof(format string, args ...any) {
	if c.Options.Quiet {
		return
	}
	fmt.Fprintf(c.Stdout, format+"\n", args...) //nolint:errcheck
}
