// Package engine selects tasks, computes their execution order honoring
// declared prerequisites, resolves each task's scoped dependencies, and
// invokes task implementations with the resulting argument record.
package engine

import (
	"errors"
	"fmt"

	"github.com/kaptinlin/builder/buildctx"
	"github.com/kaptinlin/builder/dependency"
	"github.com/kaptinlin/builder/language"
	"github.com/kaptinlin/builder/project"
	"github.com/kaptinlin/builder/resolve"
	"github.com/kaptinlin/builder/schema"
)

// Engine runs a project's tasks.
type Engine struct {
	Project      *project.Project
	ProjectCache *project.Cache
	LocalPaths   []string
}

// New creates an Engine for proj.
func New(proj *project.Project, projectCache *project.Cache, localPaths []string) *Engine {
	return &Engine{Project: proj, ProjectCache: projectCache, LocalPaths: localPaths}
}

type selectedTask struct {
	Lang *language.Language
	Task *language.Task
}

// Run executes ctx.Options.Tasks against the engine's project, honoring
// ctx.Options.NoRequires (the "independent" flag). It returns the process
// exit code: 1 when no tasks were specified (after printing the available
// list) or a fatal error occurred, 0 on success.
func (e *Engine) Run(ctx *buildctx.Context) int {
	moduleSet := e.Project.GetModuleSet()

	if len(ctx.Options.Tasks) == 0 {
		ctx.Warnf("No tasks specified. Available tasks are:")
		if moduleSet != nil {
			moduleSet.PrintAvailableTasks(ctx)
		}
		return 1
	}

	if moduleSet == nil {
		ctx.Errorf("the project has one or more unknown languages: %v", e.Project.GetUnknownLanguages())
		return 1
	}

	selected := make([]selectedTask, 0, len(ctx.Options.Tasks))
	for _, ref := range ctx.Options.Tasks {
		lang, task, err := moduleSet.GetTask(ref)
		if err != nil {
			ctx.Errorf("%s", err)
			return 1
		}
		selected = append(selected, selectedTask{Lang: lang, Task: task})
	}

	ordered := selected
	if !ctx.Options.NoRequires {
		var err error
		ordered, err = expandPrerequisites(selected)
		if err != nil {
			ctx.Errorf("%s", err)
			return 1
		}
	}

	return e.executeTasks(ctx, ordered)
}

// expandPrerequisites performs a post-order traversal so every task
// appears after its prerequisites and exactly once, preserving the user's
// input order among independently-requested top-level tasks. Prerequisite
// names are looked up in the requesting task's own language.
func expandPrerequisites(selected []selectedTask) ([]selectedTask, error) {
	seen := map[string]bool{}
	var out []selectedTask

	var addTask func(lang *language.Language, task *language.Task) error
	addTask = func(lang *language.Language, task *language.Task) error {
		if seen[task.Name] {
			return nil
		}
		for _, reqName := range task.Require {
			reqTask := lang.GetTask(reqName)
			if reqTask == nil {
				return fmt.Errorf("task %q requires unknown task %q in language %q", task.Name, reqName, lang.Tag)
			}
			if err := addTask(lang, reqTask); err != nil {
				return err
			}
		}
		seen[task.Name] = true
		out = append(out, selectedTask{Lang: lang, Task: task})
		return nil
	}

	for _, s := range selected {
		if err := addTask(s.Lang, s.Task); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e *Engine) executeTasks(ctx *buildctx.Context, tasks []selectedTask) int {
	for _, s := range tasks {
		ctx.Infof("--> %s", s.Task.Name)
		if s.Task.Func == nil {
			continue
		}
		args, err := e.buildArgs(ctx, s.Lang, s.Task)
		if err != nil {
			ctx.Errorf("%s", err)
			return 1
		}
		if err := s.Task.Func(args); err != nil {
			ctx.Errorf("%s", err)
			return 1
		}
	}
	return 0
}

func (e *Engine) buildArgs(ctx *buildctx.Context, lang *language.Language, task *language.Task) (language.Args, error) {
	var args language.Args

	if task.Declares(language.InputProject) {
		args.Project = e.Project
	}

	if task.Declares(language.InputLanguageConfig) {
		cfg, err := e.Project.GetConfig(lang.Tag, schemaValidateFunc(lang.ConfigSchema), lang.ConfigConstructor)
		if err != nil {
			return args, err
		}
		args.LanguageConfig = cfg
	}

	if task.Declares(language.InputTaskConfig) {
		cfg, err := e.Project.GetConfig(task.Name, schemaValidateFunc(task.ConfigSchema), task.ConfigConstructor)
		if err != nil {
			return args, err
		}
		args.TaskConfig = cfg
	}

	declaresDependencies := task.Declares(language.InputDependencies)
	scoped := e.Project.GetDependencies().DependenciesFor(task.Name)

	if declaresDependencies {
		pathSets, err := e.resolveDependencies(ctx, lang, scoped)
		if err != nil {
			return args, err
		}
		args.Dependencies = pathSets
	}

	if task.NeedsAllDependencies || task.Declares(language.InputAllDependencies) {
		pathSets, err := e.resolveDependencies(ctx, lang, e.Project.GetDependencies().All())
		if err != nil {
			return args, err
		}
		args.AllDependencies = pathSets
	}

	if len(scoped) > 0 && !declaresDependencies {
		return args, fmt.Errorf("dependencies were specified for task %s but it does not accept dependencies", task.Name)
	}

	return args, nil
}

func (e *Engine) resolveDependencies(ctx *buildctx.Context, lang *language.Language, deps []*dependency.Dependency) ([]*dependency.PathSet, error) {
	if len(deps) == 0 {
		return nil, nil
	}

	rctx := resolve.NewContext(lang.Resolver, ctx.Cache, deps, e.LocalPaths)
	rctx.ProjectLookup = func(key string) (any, bool, error) {
		if e.ProjectCache == nil {
			return nil, false, nil
		}
		return e.ProjectCache.GetProject(key)
	}
	rctx.PublishDir = func(sibling any) (string, error) {
		siblingProject, ok := sibling.(*project.Project)
		if !ok {
			return "", errors.New("engine: project lookup returned an unexpected type")
		}
		if lang.ProjectToPublishDir == nil {
			return "", fmt.Errorf("engine: language %q does not support project dependencies", lang.Tag)
		}
		cfg, err := siblingProject.GetConfig(lang.Tag, schemaValidateFunc(lang.ConfigSchema), lang.ConfigConstructor)
		if err != nil {
			return "", err
		}
		return lang.ProjectToPublishDir(cfg)
	}

	return rctx.Resolve()
}

func schemaValidateFunc(s *schema.Schema) func(map[string]any) error {
	if s == nil {
		return nil
	}
	return func(data map[string]any) error {
		result := s.Validate(data)
		if !result.Ok() {
			return errors.New(result.Error())
		}
		return nil
	}
}
