package project

import (
	"os"
	"path/filepath"
)

// Cache resolves sibling project names to their loaded Project, for
// project-location dependencies. Every immediate subdirectory of Root that
// itself looks like a project (has a project.yaml, or is simply treated as
// a minimal one) is a candidate; projects are loaded lazily and cached by
// name on first lookup.
type Cache struct {
	Root      string
	Overrides Overrides

	byName map[string]*Project
}

// NewCache creates a Cache rooted at root.
func NewCache(root string, overrides Overrides) *Cache {
	return &Cache{Root: root, Overrides: overrides, byName: map[string]*Project{}}
}

// GetProject resolves name to a sibling project under Root, loading and
// caching it on first access. Returns (nil, false, nil) if no such
// subdirectory exists.
func (c *Cache) GetProject(name string) (*Project, bool, error) {
	if p, ok := c.byName[name]; ok {
		return p, true, nil
	}

	dir := filepath.Join(c.Root, name)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, false, nil
	}

	p, err := Load(dir, c.Overrides)
	if err != nil {
		return nil, false, err
	}
	c.byName[name] = p
	return p, true, nil
}
