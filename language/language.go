package language

import (
	"github.com/kaptinlin/builder/resolve"
	"github.com/kaptinlin/builder/schema"
)

// Language is a fixed descriptor for one language backend, loaded once per
// tag: its configuration schema and constructor, its ordered list of
// Tasks, a dependency resolver callback, and a project-to-publish-dir
// callback used when resolving project-location dependencies.
type Language struct {
	Tag string

	ConfigSchema      *schema.Schema
	ConfigConstructor func(map[string]any) (any, error)

	Tasks    []*Task
	Resolver resolve.Resolver

	// ProjectToPublishDir maps a sibling project's configuration for this
	// language (as produced by ConfigConstructor) to its publish directory.
	ProjectToPublishDir func(config any) (string, error)
}

// GetTask returns the task named name, or nil if this language defines no
// such task.
func (l *Language) GetTask(name string) *Task {
	for _, t := range l.Tasks {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Define is the registration callback a backend package supplies: given a
// fresh Language handle for its tag, it populates tasks, resolver, and
// schema/constructor.
type Define func(l *Language)

var registry = map[string]Define{}

// Register makes a backend's Define callback available under tag, for
// later loading by LoadLanguage. Backends call this from an init function,
// the idiomatic Go analogue of the original's dynamic module import.
func Register(tag string, define Define) {
	registry[tag] = define
}

// LoadLanguage builds the Language for tag by invoking its registered
// Define callback. A tag with no registered backend is not fatal — it is
// reported to the caller (typically surfaced as an "unknown language" on
// the project) so the CLI can describe the complete set of problems in one
// pass rather than failing on the first one.
func LoadLanguage(tag string) (*Language, bool) {
	define, ok := registry[tag]
	if !ok {
		return nil, false
	}
	l := &Language{Tag: tag}
	define(l)
	return l, true
}

// Registered reports the tags with a backend registered, for diagnostics.
func Registered() []string {
	tags := make([]string, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	return tags
}
