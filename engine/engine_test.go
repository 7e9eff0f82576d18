package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/builder/buildctx"
	"github.com/kaptinlin/builder/engine"
	"github.com/kaptinlin/builder/language"
	"github.com/kaptinlin/builder/project"
)

func newTestContext(t *testing.T) *buildctx.Context {
	t.Helper()
	return &buildctx.Context{
		Options: buildctx.Options{Tasks: []string{"package"}},
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

func TestTaskGraphOrdering(t *testing.T) {
	language.Register("test-task-graph-lang", func(l *language.Language) {
		l.Tasks = []*language.Task{
			{Name: "compile"},
			{Name: "compile-tests", Require: []string{"compile"}},
			{Name: "test", Require: []string{"compile-tests"}},
			{Name: "package", Require: []string{"test"}},
		}
	})

	dir := t.TempDir()
	descriptor := "info:\n  languages: [test-task-graph-lang]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.yaml"), []byte(descriptor), 0o644))

	proj, err := project.Load(dir, project.Overrides{})
	require.NoError(t, err)

	var order []string
	lang := proj.GetModuleSet().GetLanguage("test-task-graph-lang")
	for _, name := range []string{"compile", "compile-tests", "test", "package"} {
		task := lang.GetTask(name)
		captured := name
		task.Func = func(language.Args) error {
			order = append(order, captured)
			return nil
		}
	}

	eng := engine.New(proj, nil, nil)
	ctx := newTestContext(t)
	ctx.Options.Tasks = []string{"package", "compile"}

	rc := eng.Run(ctx)
	require.Equal(t, 0, rc)
	assert.Equal(t, []string{"compile", "compile-tests", "test", "package"}, order)
}

func TestIndependentTasksSkipExpansion(t *testing.T) {
	var order []string
	language.Register("test-independent-lang", func(l *language.Language) {
		l.Tasks = []*language.Task{
			{Name: "compile", Func: func(language.Args) error { order = append(order, "compile"); return nil }},
			{Name: "package", Require: []string{"compile"}, Func: func(language.Args) error {
				order = append(order, "package")
				return nil
			}},
		}
	})

	dir := t.TempDir()
	descriptor := "info:\n  languages: [test-independent-lang]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.yaml"), []byte(descriptor), 0o644))

	proj, err := project.Load(dir, project.Overrides{})
	require.NoError(t, err)

	eng := engine.New(proj, nil, nil)
	ctx := newTestContext(t)
	ctx.Options.Tasks = []string{"package", "compile"}
	ctx.Options.NoRequires = true

	rc := eng.Run(ctx)
	require.Equal(t, 0, rc)
	assert.Equal(t, []string{"package", "compile"}, order)
}

func TestFatalWhenTaskDoesNotAcceptDependencies(t *testing.T) {
	language.Register("test-scoped-dep-lang", func(l *language.Language) {
		l.Tasks = []*language.Task{
			{Name: "compile", Func: func(language.Args) error { return nil }},
		}
	})

	dir := t.TempDir()
	descriptor := `
info:
  languages: [test-scoped-dep-lang]
dependencies:
  d1:
    location: local
    version: 1.0.0
    scope: compile
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.yaml"), []byte(descriptor), 0o644))

	proj, err := project.Load(dir, project.Overrides{})
	require.NoError(t, err)

	eng := engine.New(proj, nil, nil)
	ctx := newTestContext(t)
	ctx.Options.Tasks = []string{"compile"}

	rc := eng.Run(ctx)
	assert.Equal(t, 1, rc)
}

func TestAggregatorTaskSkipsInvocation(t *testing.T) {
	invoked := false
	language.Register("test-aggregator-lang", func(l *language.Language) {
		l.Tasks = []*language.Task{
			{Name: "compile", Func: func(language.Args) error { invoked = true; return nil }},
			{Name: "build-all", Require: []string{"compile"}, Func: nil},
		}
	})

	dir := t.TempDir()
	descriptor := "info:\n  languages: [test-aggregator-lang]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.yaml"), []byte(descriptor), 0o644))

	proj, err := project.Load(dir, project.Overrides{})
	require.NoError(t, err)

	eng := engine.New(proj, nil, nil)
	ctx := newTestContext(t)
	ctx.Options.Tasks = []string{"build-all"}

	rc := eng.Run(ctx)
	require.Equal(t, 0, rc)
	assert.True(t, invoked)
}
