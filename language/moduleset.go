package language

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/kaptinlin/builder/buildctx"
)

// ModuleSet owns the Language handles requested for a project, keyed by
// tag, registration order preserved for deterministic task listing. It
// guarantees every task name is globally unique: a name defined by more
// than one language is rewritten in place, in every language that defines
// it, to "<tag>::<name>".
type ModuleSet struct {
	order      []string
	modules    map[string]*Language
	taskToTag  map[string]string
	ambiguous  map[string]bool
}

// NewModuleSet builds a ModuleSet from tags mapped to their already-loaded
// Language handles (in the given order), disambiguating task names.
func NewModuleSet(tags []string, modules map[string]*Language) *ModuleSet {
	ms := &ModuleSet{
		order:     append([]string(nil), tags...),
		modules:   modules,
		taskToTag: map[string]string{},
		ambiguous: map[string]bool{},
	}
	ms.forceUniqueNames()
	return ms
}

func (ms *ModuleSet) forceUniqueNames() {
	sources := map[string][]string{}
	for _, tag := range ms.order {
		for _, task := range ms.modules[tag].Tasks {
			sources[task.Name] = append(sources[task.Name], tag)
		}
	}

	for name, tags := range sources {
		if len(tags) == 1 {
			ms.taskToTag[name] = tags[0]
			continue
		}
		ms.ambiguous[name] = true
		for _, tag := range tags {
			task := ms.modules[tag].GetTask(name)
			task.Name = fmt.Sprintf("%s::%s", tag, name)
		}
	}
}

// GetLanguage returns the named language, or nil if it was not requested.
func (ms *ModuleSet) GetLanguage(tag string) *Language {
	return ms.modules[tag]
}

var taskRefPattern = regexp.MustCompile(`^(?:(\w+?)?::)?(\w+(?:-\w+)*)$`)

// ParseTaskRef splits a "[<tag>::]<name>" reference into its optional tag
// and required name.
func ParseTaskRef(ref string) (tag, name string, err error) {
	m := taskRefPattern.FindStringSubmatch(ref)
	if m == nil {
		return "", "", fmt.Errorf("the text, %q, is not a valid task name", ref)
	}
	return m[1], m[2], nil
}

// GetTask resolves a task reference to its owning Language and Task.
func (ms *ModuleSet) GetTask(ref string) (*Language, *Task, error) {
	tag, name, err := ParseTaskRef(ref)
	if err != nil {
		return nil, nil, err
	}

	if tag == "" {
		tag = ms.taskToTag[name]
	}
	if tag == "" {
		if ms.ambiguous[name] {
			return nil, nil, fmt.Errorf("the task name, %q, is ambiguous", name)
		}
		return nil, nil, fmt.Errorf("the task name, %q, is not defined", name)
	}

	lang, ok := ms.modules[tag]
	if !ok {
		return nil, nil, fmt.Errorf("there is no language named %q", tag)
	}
	task := lang.GetTask(name)
	if task == nil && ms.ambiguous[name] {
		task = lang.GetTask(fmt.Sprintf("%s::%s", tag, name))
	}
	if task == nil {
		return nil, nil, fmt.Errorf("there is no task named %q for the %q language", name, tag)
	}
	return lang, task, nil
}

// PrintAvailableTasks writes, per language in registration order, its task
// list with help text, to ctx's stdout.
func (ms *ModuleSet) PrintAvailableTasks(ctx *buildctx.Context) {
	for _, tag := range ms.order {
		lang := ms.modules[tag]
		ctx.Infof("    %s", tag)

		width := 0
		for _, t := range lang.Tasks {
			if len(t.Name) > width {
				width = len(t.Name)
			}
		}
		names := make([]string, len(lang.Tasks))
		for i, t := range lang.Tasks {
			names[i] = t.Name
		}
		sort.Strings(names)
		for _, name := range names {
			t := lang.GetTask(name)
			ctx.Infof("        %-*s -- %s", width, t.Name, t.HelpText)
		}
		ctx.Infof("")
	}
}
