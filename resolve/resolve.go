// Package resolve implements the per-language dependency resolution
// pipeline: a worklist algorithm that turns a scoped set of Dependency
// values into verified local DependencyPathSet values, following
// transients discovered by the language resolver and detecting version
// conflicts along the way.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/kaptinlin/builder/dependency"
	"github.com/kaptinlin/builder/filecache"
	"github.com/kaptinlin/builder/signing"
)

// ErrNoResolver is returned when Resolve is called on a Context whose
// language declares no resolver callback.
var ErrNoResolver = errors.New("resolve: language has no dependency resolver")

// Resolver is a language backend's dependency resolution callback. It
// fetches dep's primary artifact (and any metadata describing transients)
// using the Context's helpers, calling ctx.AddDependency for anything
// discovered along the way, and returns the resulting PathSet. A nil
// result (with a nil error) means the dependency could not be resolved.
type Resolver func(ctx *Context, dep *dependency.Dependency) (*dependency.PathSet, error)

// ProjectLookup resolves a project-location dependency's key to a sibling
// project handle, the shape of which is owned by the project package; kept
// opaque here to avoid a dependency cycle between resolve and project.
type ProjectLookup func(key string) (sibling any, ok bool, err error)

// PublishDir asks the language backend for the publish directory of a
// sibling project's configuration for the context's own language.
type PublishDir func(sibling any) (dir string, err error)

// Context is one resolution pass over a worklist of dependencies for a
// single language. It is a transient workspace: state is mutated only
// during Resolve, and a Context is not reused across runs.
type Context struct {
	Lang       Resolver
	Cache      *filecache.Cache
	LocalPaths []string

	ProjectLookup ProjectLookup
	PublishDir    PublishDir

	worklist []*dependency.Dependency
	done     []*dependency.Dependency

	parentURL string
	cacheDir  string
}

// NewContext creates a Context seeded with deps as the initial worklist.
func NewContext(lang Resolver, cache *filecache.Cache, deps []*dependency.Dependency, localPaths []string) *Context {
	worklist := make([]*dependency.Dependency, len(deps))
	copy(worklist, deps)
	return &Context{
		Lang:       lang,
		Cache:      cache,
		LocalPaths: localPaths,
		worklist:   worklist,
	}
}

// Dependencies returns a copy of the context's current worklist.
func (c *Context) Dependencies() []*dependency.Dependency {
	out := make([]*dependency.Dependency, len(c.worklist))
	copy(out, c.worklist)
	return out
}

// Split produces one Context per dependency currently in this one's
// worklist, each sharing this context's language, local paths and project
// cache — used by tooling that must isolate the transient closure of each
// root dependency separately (e.g. IDE sync).
func (c *Context) Split() []*Context {
	out := make([]*Context, 0, len(c.worklist))
	for _, dep := range c.worklist {
		child := NewContext(c.Lang, c.Cache, []*dependency.Dependency{dep}, c.LocalPaths)
		child.ProjectLookup = c.ProjectLookup
		child.PublishDir = c.PublishDir
		out = append(out, child)
	}
	return out
}

// AddDependency enqueues dep as a transient discovery, marking it as such.
func (c *Context) AddDependency(dep *dependency.Dependency) {
	dep.Transient = true
	c.worklist = append(c.worklist, dep)
}

// SetRemoteInfo records the parent URL and cache-relative directory that
// subsequent ToLocalPath calls for remote dependencies will use. The
// language resolver calls this before each round of file fetches.
func (c *Context) SetRemoteInfo(parentURL, cacheDir string) {
	c.parentURL = strings.TrimSuffix(parentURL, "/")
	c.cacheDir = cacheDir
}

// Resolve drains the worklist, invoking the language resolver for each
// not-yet-done dependency and returning the PathSets in the order they
// were first resolved. Dependencies already in the done list are skipped;
// a dependency whose group:name matches a done one at a different version
// is a fatal version conflict.
func (c *Context) Resolve() ([]*dependency.PathSet, error) {
	if c.Lang == nil {
		return nil, ErrNoResolver
	}

	var result []*dependency.PathSet

	for len(c.worklist) > 0 {
		dep := c.worklist[0]
		c.worklist = c.worklist[1:]

		if containsEqual(c.done, dep) {
			continue
		}

		if similar := findSameButForVersion(c.done, dep); similar != nil {
			return nil, fmt.Errorf("the same library, %s:%s, is required at two different versions, %s vs. %s",
				dep.Group, dep.Name, similar.Version, dep.Version)
		}

		pathSet, err := c.Lang(c, dep)
		if err != nil {
			return nil, err
		}
		if pathSet == nil {
			return nil, fmt.Errorf("the dependency, %s, could not be resolved", dep)
		}

		result = append(result, pathSet)
		c.done = append(c.done, dep)
	}

	return result, nil
}

func containsEqual(done []*dependency.Dependency, dep *dependency.Dependency) bool {
	for _, d := range done {
		if d.Equal(dep) {
			return true
		}
	}
	return false
}

func findSameButForVersion(done []*dependency.Dependency, dep *dependency.Dependency) *dependency.Dependency {
	for _, d := range done {
		if dep.SameButForVersion(d) {
			return d
		}
	}
	return nil
}

// ToLocalPath isolates a local path for name, the named file belonging to
// dep. Remote dependencies are downloaded through the file cache; local
// ones are searched for across LocalPaths; project ones are resolved via
// ProjectLookup and PublishDir. Unless signatures is a non-nil empty map
// (an explicit opt-out), the result is verified via the signing package,
// with missing signatures looked up as sibling files next to name.
func (c *Context) ToLocalPath(dep *dependency.Dependency, name string, signatures map[string]string) (string, error) {
	p, err := c.fetchFile(dep, name)
	if err != nil {
		return "", err
	}
	if p == "" {
		return "", nil
	}

	if signatures == nil || len(signatures) > 0 {
		ok, err := signing.Verify(p, signatures, func(sigName string) (string, error) {
			sigPath, err := c.fetchFile(dep, sigName)
			if err != nil || sigPath == "" {
				return "", err
			}
			data, err := os.ReadFile(sigPath)
			if err != nil {
				return "", nil //nolint:nilerr
			}
			return strings.TrimSpace(string(data)), nil
		})
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("could not verify the signature of the file %s", path.Base(p))
		}
	}

	return p, nil
}

func (c *Context) fetchFile(dep *dependency.Dependency, name string) (string, error) {
	switch dep.Location {
	case dependency.Remote:
		url := c.parentURL + "/" + name
		rel := path.Join(c.cacheDir, name)
		return c.Cache.Resolve(url, rel, true)
	case dependency.Local:
		for _, dir := range c.LocalPaths {
			candidate := path.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		return "", nil
	case dependency.Project:
		return c.fetchProjectFile(dep, name)
	default:
		return "", fmt.Errorf("resolve: unknown dependency location %q", dep.Location)
	}
}

func (c *Context) fetchProjectFile(dep *dependency.Dependency, name string) (string, error) {
	if c.ProjectLookup == nil || c.PublishDir == nil {
		return "", fmt.Errorf("resolve: language has no project-dependency resolution")
	}
	sibling, ok, err := c.ProjectLookup(dep.Key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	dir, err := c.PublishDir(sibling)
	if err != nil || dir == "" {
		return "", err
	}
	candidate := path.Join(dir, name)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate, nil
	}
	return "", nil
}
