package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/builder/dependency"
	"github.com/kaptinlin/builder/resolve"
)

func mustDep(t *testing.T, key, group, name, version string) *dependency.Dependency {
	t.Helper()
	d, err := dependency.New(key, dependency.Remote, group, name, "", version, false, []string{"compile"}, false)
	require.NoError(t, err)
	return d
}

func TestResolveOrdersResultsAndMarksTransients(t *testing.T) {
	d1 := mustDep(t, "d1", "g", "d1", "1.2.3")

	resolver := func(ctx *resolve.Context, dep *dependency.Dependency) (*dependency.PathSet, error) {
		if dep.Key == "d1" {
			ctx.AddDependency(dep.DeriveFrom("g", "d2", "4.5.6"))
		}
		return dependency.NewPathSet(dep, "/fake/"+dep.Name), nil
	}

	ctx := resolve.NewContext(resolver, nil, []*dependency.Dependency{d1}, nil)
	result, err := ctx.Resolve()
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "d1", result[0].Dependency.Name)
	assert.False(t, result[0].Dependency.Transient)
	assert.Equal(t, "d2", result[1].Dependency.Name)
	assert.True(t, result[1].Dependency.Transient)
}

func TestResolveVersionConflict(t *testing.T) {
	a := mustDep(t, "a", "g", "shared", "1.2.3")
	b := mustDep(t, "b", "g", "shared", "4.5.6")

	resolver := func(ctx *resolve.Context, dep *dependency.Dependency) (*dependency.PathSet, error) {
		return dependency.NewPathSet(dep, "/fake/"+dep.Name), nil
	}

	ctx := resolve.NewContext(resolver, nil, []*dependency.Dependency{a, b}, nil)
	_, err := ctx.Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1.2.3")
	assert.Contains(t, err.Error(), "4.5.6")
}

func TestResolveIdempotence(t *testing.T) {
	d := mustDep(t, "d", "g", "d", "1.0.0")

	calls := 0
	resolver := func(ctx *resolve.Context, dep *dependency.Dependency) (*dependency.PathSet, error) {
		calls++
		return dependency.NewPathSet(dep, "/fake/d"), nil
	}

	ctx := resolve.NewContext(resolver, nil, []*dependency.Dependency{d, d}, nil)
	result, err := ctx.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Len(t, result, 1)
}

func TestResolveFailsWhenResolverMissing(t *testing.T) {
	d := mustDep(t, "d", "g", "d", "1.0.0")
	ctx := resolve.NewContext(nil, nil, []*dependency.Dependency{d}, nil)
	_, err := ctx.Resolve()
	assert.ErrorIs(t, err, resolve.ErrNoResolver)
}

func TestResolveFailsWhenResolverReturnsNil(t *testing.T) {
	d := mustDep(t, "d", "g", "d", "1.0.0")
	resolver := func(ctx *resolve.Context, dep *dependency.Dependency) (*dependency.PathSet, error) {
		return nil, nil
	}
	ctx := resolve.NewContext(resolver, nil, []*dependency.Dependency{d}, nil)
	_, err := ctx.Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not be resolved")
}

func TestBuildNamesVersionInURL(t *testing.T) {
	d := mustDep(t, "d", "com.example", "widget", "1.2.3")
	url, cacheDir, classified, base := resolve.BuildNames(d, true)
	assert.Equal(t, "https://repo1.maven.org/maven2/com/example/widget/1.2.3", url)
	assert.Equal(t, "widget", cacheDir)
	assert.Equal(t, "widget-1.2.3", base)
	assert.Equal(t, "widget-1.2.3", classified)

	url, _, _, _ = resolve.BuildNames(d, false)
	assert.Equal(t, "https://repo1.maven.org/maven2/com/example/widget", url)
}

func TestBuildNamesWithClassifier(t *testing.T) {
	d, err := dependency.New("d", dependency.Remote, "g", "widget", "sources", "1.2.3", false, []string{"compile"}, false)
	require.NoError(t, err)
	_, _, classified, base := resolve.BuildNames(d, true)
	assert.Equal(t, "widget-1.2.3", base)
	assert.Equal(t, "widget-1.2.3-sources", classified)
}

func TestSplitProducesOneContextPerDependency(t *testing.T) {
	a := mustDep(t, "a", "g", "a", "1.0.0")
	b := mustDep(t, "b", "g", "b", "2.0.0")
	ctx := resolve.NewContext(nil, nil, []*dependency.Dependency{a, b}, nil)

	children := ctx.Split()
	require.Len(t, children, 2)
	assert.Len(t, children[0].Dependencies(), 1)
	assert.Len(t, children[1].Dependencies(), 1)
}
