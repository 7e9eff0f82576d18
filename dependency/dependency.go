// Package dependency models the entities used to declare and track a
// project's build-time inputs: Dependency, DependencyPathSet, and
// DependencySet.
package dependency

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/builder/schema"
)

// Location is where a Dependency's artifact is found.
type Location string

const (
	Remote  Location = "remote"
	Local   Location = "local"
	Project Location = "project"
)

var validLocations = map[Location]bool{Remote: true, Local: true, Project: true}

// Dependency identifies one artifact to be made available to tasks.
type Dependency struct {
	Key              string
	Location         Location
	Group            string
	Name             string
	Classifier       string
	Version          string
	IgnoreTransients bool
	Scope            []string
	Transient        bool
}

// New builds a Dependency from its long-form fields, applying the defaults
// named in the data model: Group defaults to Name, Name defaults to Key.
func New(key string, location Location, group, name, classifier, version string, ignoreTransients bool, scope []string, transient bool) (*Dependency, error) {
	if !validLocations[location] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, location)
	}
	if name == "" {
		name = key
	}
	if group == "" {
		group = name
	}
	if len(scope) == 0 {
		return nil, fmt.Errorf("%w: dependency %q", ErrEmptyScope, key)
	}
	return &Dependency{
		Key: key, Location: location, Group: group, Name: name,
		Classifier: classifier, Version: version, IgnoreTransients: ignoreTransients,
		Scope: scope, Transient: transient,
	}, nil
}

// Equal implements the data model's equality: two dependencies are equal
// iff group:name:version match.
func (d *Dependency) Equal(other *Dependency) bool {
	if other == nil {
		return false
	}
	return d.Group == other.Group && d.Name == other.Name && d.Version == other.Version
}

// SameButForVersion reports whether d and other name the same group:name
// but at different versions — the condition that makes a resolution run
// fail with a version conflict.
func (d *Dependency) SameButForVersion(other *Dependency) bool {
	if other == nil {
		return false
	}
	return d.Group == other.Group && d.Name == other.Name && d.Version != other.Version
}

// AppliesTo reports whether task is in d's scope.
func (d *Dependency) AppliesTo(task string) bool {
	for _, s := range d.Scope {
		if s == task {
			return true
		}
	}
	return false
}

// DeriveFrom builds a new Dependency sharing this one's location and scope,
// for a transient dependency discovered while resolving this one's metadata.
func (d *Dependency) DeriveFrom(group, name, version string) *Dependency {
	return &Dependency{
		Key: fmt.Sprintf("%s:%s", group, name), Location: d.Location,
		Group: group, Name: name, Version: version,
		Scope: d.Scope, Transient: true,
	}
}

func (d *Dependency) String() string {
	return fmt.Sprintf("%s:%s:%s", d.Group, d.Name, d.Version)
}

// ParseSpec parses the short-form "location:[group:]name:version" spec
// string: the first token is the location, the last is the version (which
// must validate against the semver format), and the one or two tokens in
// between are name, or group and name. Tokens are space-trimmed; a token
// that is empty after trimming is silently dropped, per the short-form
// grammar's tolerance for stray whitespace around separators.
func ParseSpec(key, spec string) (*Dependency, error) {
	var tokens []string
	for _, raw := range strings.Split(spec, ":") {
		t := strings.TrimSpace(raw)
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedSpec, spec)
	}

	location := Location(tokens[0])
	if !validLocations[location] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, location)
	}

	version := tokens[len(tokens)-1]
	if !schema.Formats["semver"](version) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}

	middle := tokens[1 : len(tokens)-1]
	var group, name string
	switch len(middle) {
	case 0:
		// location:version — both group and name default to the dependency's key.
	case 1:
		name = middle[0]
	case 2:
		group, name = middle[0], middle[1]
	default:
		return nil, fmt.Errorf("%w: %q", ErrMalformedSpec, spec)
	}
	if name == "" {
		name = key
	}
	if group == "" {
		group = name
	}

	return &Dependency{
		Key: key, Location: location, Group: group, Name: name, Version: version,
	}, nil
}
