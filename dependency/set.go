package dependency

import "fmt"

// Entry is one (key, raw descriptor value) pair, in the order it appeared in
// the project descriptor. raw is either a string (short-form spec) or a
// map[string]any (long form).
type Entry struct {
	Key string
	Raw any
}

// Set is an insertion-order mapping from key to Dependency, built from the
// descriptor's "dependencies" section.
type Set struct {
	order []string
	byKey map[string]*Dependency
}

// NewSet builds a Set from descriptor entries, preserving their order.
func NewSet(entries []Entry) (*Set, error) {
	s := &Set{byKey: map[string]*Dependency{}}
	for _, e := range entries {
		dep, err := parseEntry(e.Key, e.Raw)
		if err != nil {
			return nil, fmt.Errorf("dependency %q: %w", e.Key, err)
		}
		s.order = append(s.order, e.Key)
		s.byKey[e.Key] = dep
	}
	return s, nil
}

func parseEntry(key string, raw any) (*Dependency, error) {
	switch v := raw.(type) {
	case string:
		return ParseSpec(key, v)
	case map[string]any:
		return parseLongForm(key, v)
	default:
		return nil, fmt.Errorf("%w: expected a string or object", ErrMalformedSpec)
	}
}

func parseLongForm(key string, v map[string]any) (*Dependency, error) {
	location, _ := v["location"].(string)
	group, _ := v["group"].(string)
	name, _ := v["name"].(string)
	classifier, _ := v["classifier"].(string)
	version, _ := v["version"].(string)
	ignoreTransients, _ := v["ignore-transients"].(bool)

	var scope []string
	switch sv := v["scope"].(type) {
	case string:
		scope = []string{sv}
	case []any:
		for _, item := range sv {
			if s, ok := item.(string); ok {
				scope = append(scope, s)
			}
		}
	}

	return New(key, Location(location), group, name, classifier, version, ignoreTransients, scope, false)
}

// All returns every dependency in the set, in descriptor order.
func (s *Set) All() []*Dependency {
	out := make([]*Dependency, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.byKey[key])
	}
	return out
}

// Get looks up a dependency by its descriptor key.
func (s *Set) Get(key string) (*Dependency, bool) {
	d, ok := s.byKey[key]
	return d, ok
}

// DependenciesFor returns every dependency whose scope contains task, in
// descriptor order.
func (s *Set) DependenciesFor(task string) []*Dependency {
	var out []*Dependency
	for _, key := range s.order {
		dep := s.byKey[key]
		if dep.AppliesTo(task) {
			out = append(out, dep)
		}
	}
	return out
}

// CheckVersionConflicts detects the invariant violation named in the data
// model: within one resolution run, no two non-equal dependencies may share
// group:name with differing versions.
func CheckVersionConflicts(deps []*Dependency) error {
	for i, a := range deps {
		for _, b := range deps[i+1:] {
			if a.SameButForVersion(b) {
				return fmt.Errorf("%w: %s:%s required at both %s and %s",
					ErrVersionConflict, a.Group, a.Name, a.Version, b.Version)
			}
		}
	}
	return nil
}
