package dependency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/builder/dependency"
)

func TestEquality(t *testing.T) {
	a, err := dependency.New("k", dependency.Remote, "g", "n", "", "1.2.3", false, []string{"compile"}, false)
	require.NoError(t, err)
	b, err := dependency.New("other-key", dependency.Local, "g", "n", "", "1.2.3", false, []string{"test"}, false)
	require.NoError(t, err)
	c, err := dependency.New("k", dependency.Remote, "g", "n", "", "4.5.6", false, []string{"compile"}, false)
	require.NoError(t, err)

	assert.True(t, a.Equal(b), "equality is group:name:version only")
	assert.False(t, a.Equal(c))
	assert.True(t, a.SameButForVersion(c))
	assert.False(t, a.SameButForVersion(b))
}

func TestParseSpecShortForms(t *testing.T) {
	d, err := dependency.ParseSpec("k", "remote:1.2.3")
	require.NoError(t, err)
	assert.Equal(t, dependency.Remote, d.Location)
	assert.Equal(t, "k", d.Group)
	assert.Equal(t, "k", d.Name)
	assert.Equal(t, "1.2.3", d.Version)

	d, err = dependency.ParseSpec("k", "remote:name:1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "name", d.Group)
	assert.Equal(t, "name", d.Name)

	d, err = dependency.ParseSpec("k", "remote:group:name:1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "group", d.Group)
	assert.Equal(t, "name", d.Name)

	_, err = dependency.ParseSpec("k", "nowhere:name:1.2.3")
	assert.ErrorIs(t, err, dependency.ErrUnknownLocation)

	_, err = dependency.ParseSpec("k", "remote:name:not-a-version")
	assert.ErrorIs(t, err, dependency.ErrInvalidVersion)
}

func TestParseSpecTrimsAndDropsEmptyTokens(t *testing.T) {
	d, err := dependency.ParseSpec("k", "remote: group : name : 1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "group", d.Group)
	assert.Equal(t, "name", d.Name)

	d, err = dependency.ParseSpec("k", "remote::name:1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "name", d.Name)
	assert.Equal(t, "name", d.Group)
}

func TestDeriveFromSharesLocationAndScope(t *testing.T) {
	parent, err := dependency.New("k", dependency.Remote, "g", "n", "", "1.0.0", false, []string{"compile"}, false)
	require.NoError(t, err)

	child := parent.DeriveFrom("g2", "n2", "2.0.0")
	assert.Equal(t, dependency.Remote, child.Location)
	assert.Equal(t, []string{"compile"}, child.Scope)
	assert.True(t, child.Transient)
}

func TestSetAllPreservesOrder(t *testing.T) {
	set, err := dependency.NewSet([]dependency.Entry{
		{Key: "d1", Raw: "remote:g:d1:1.0.0"},
		{Key: "d2", Raw: map[string]any{
			"location": "local", "name": "d2", "version": "2.0.0", "scope": []any{"compile"},
		}},
		{Key: "d3", Raw: "remote:g:d3:3.0.0"},
	})
	require.NoError(t, err)

	all := set.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"d1", "d2", "d3"}, []string{all[0].Key, all[1].Key, all[2].Key})
}

func TestCheckVersionConflicts(t *testing.T) {
	a, _ := dependency.New("a", dependency.Remote, "g", "n", "", "1.2.3", false, []string{"compile"}, false)
	b, _ := dependency.New("b", dependency.Remote, "g", "n", "", "4.5.6", false, []string{"compile"}, false)

	err := dependency.CheckVersionConflicts([]*dependency.Dependency{a, b})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1.2.3")
	assert.Contains(t, err.Error(), "4.5.6")
}
