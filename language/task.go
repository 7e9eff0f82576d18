// Package language implements the language backend registry: loading a
// backend by tag, exposing its tasks, resolver and project-to-publish-dir
// mapping, and disambiguating task names across loaded backends.
package language

import (
	"github.com/kaptinlin/builder/dependency"
	"github.com/kaptinlin/builder/schema"
)

// Input is one kind of value the engine can inject into a task's
// implementation function, named at task registration instead of
// discovered through runtime parameter introspection.
type Input string

const (
	InputProject         Input = "project"
	InputLanguageConfig  Input = "language-config"
	InputTaskConfig      Input = "task-config"
	InputDependencies    Input = "dependencies"
	InputAllDependencies Input = "all-dependencies"
)

// Args is the argument record the engine builds for one task invocation,
// populated according to the task's declared Inputs.
type Args struct {
	Project         any
	LanguageConfig  any
	TaskConfig      any
	Dependencies    []*dependency.PathSet
	AllDependencies []*dependency.PathSet
}

// Func is a task's implementation. A nil Func on a Task marks it as a pure
// aggregator: the engine prints its banner and requires its prerequisites
// without invoking anything.
type Func func(args Args) error

// Task is one named unit of work belonging to a language backend.
type Task struct {
	Name    string
	Func    Func
	Require []string
	Inputs  []Input

	ConfigSchema      *schema.Schema
	ConfigConstructor func(map[string]any) (any, error)

	NeedsAllDependencies bool
	HelpText             string
}

// Declares reports whether the task's input descriptor includes want.
func (t *Task) Declares(want Input) bool {
	for _, in := range t.Inputs {
		if in == want {
			return true
		}
	}
	return false
}
