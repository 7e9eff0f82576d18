package dependency

// PathSet is the artifact file(s) one Dependency resolves to: exactly one
// primary path, plus an optional mapping from secondary-role name (e.g.
// "sources", "javadoc", or a backend-specific tag) to path. Its lifetime is
// bound to the resolution pass that produced it.
type PathSet struct {
	Dependency *Dependency
	Primary    string
	Secondary  map[string]string
}

// NewPathSet creates a PathSet with no secondary paths yet.
func NewPathSet(dep *Dependency, primary string) *PathSet {
	return &PathSet{Dependency: dep, Primary: primary, Secondary: map[string]string{}}
}

// WithSecondary records path under role, returning the PathSet for chaining.
func (p *PathSet) WithSecondary(role, path string) *PathSet {
	p.Secondary[role] = path
	return p
}
