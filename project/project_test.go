package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/builder/language"
	"github.com/kaptinlin/builder/project"
)

func TestMinimalInDirectoryProject(t *testing.T) {
	dir := t.TempDir()
	foo := filepath.Join(dir, "foo")
	require.NoError(t, os.Mkdir(foo, 0o755))

	p, err := project.Load(foo, project.Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "foo", p.Name())
	assert.Equal(t, "0.0.1", p.Version())
	assert.True(t, p.HasNoLanguages())
	assert.Empty(t, p.GetDependencies().All())
}

func TestUnknownLanguage(t *testing.T) {
	language.Register("test-java-known", func(l *language.Language) {})

	dir := t.TempDir()
	descriptor := `
info:
  languages: [test-java-known, test-python-unknown]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.yaml"), []byte(descriptor), 0o644))

	p, err := project.Load(dir, project.Overrides{})
	require.NoError(t, err)

	assert.True(t, p.HasUnknownLanguages())
	assert.Equal(t, []string{"test-python-unknown"}, p.GetUnknownLanguages())
	assert.Nil(t, p.GetModuleSet())
}

func TestVariableSubstitution(t *testing.T) {
	dir := t.TempDir()
	descriptor := `
info:
  name: substitution-project
vars:
  v: "1"
extra:
  greeting: "${v} on ${v}"
  list:
    - "${v}"
    - "${missing}"
  nested:
    inner: "${v}"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.yaml"), []byte(descriptor), 0o644))

	p, err := project.Load(dir, project.Overrides{})
	require.NoError(t, err)

	cfg, err := p.GetConfig("extra", nil, nil)
	require.NoError(t, err)
	m := cfg.(map[string]any)
	assert.Equal(t, "1 on 1", m["greeting"])

	list := m["list"].([]any)
	assert.Equal(t, "1", list[0])
	assert.Equal(t, "", list[1])

	nested := m["nested"].(map[string]any)
	assert.Equal(t, "1", nested["inner"])
}

func TestDescriptorRejectsBadNamePattern(t *testing.T) {
	dir := t.TempDir()
	descriptor := `
info:
  name: "has/slash"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.yaml"), []byte(descriptor), 0o644))

	_, err := project.Load(dir, project.Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pattern")
	assert.Contains(t, err.Error(), "#/info/name")
}

func TestGetConfigCachesByIdentity(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	p, err := project.Load(filepath.Join(dir, "sub"), project.Overrides{})
	require.NoError(t, err)

	first, err := p.GetConfig("custom", nil, nil)
	require.NoError(t, err)
	second, err := p.GetConfig("custom", nil, nil)
	require.NoError(t, err)

	firstMap := first.(map[string]any)
	secondMap := second.(map[string]any)
	firstMap["mutated"] = true
	assert.True(t, secondMap["mutated"].(bool), "expected cached config to be the same instance")
}

func TestLanguageOverrideOrderPreservingDeduped(t *testing.T) {
	dir := t.TempDir()
	descriptor := `
info:
  languages: [a, b]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.yaml"), []byte(descriptor), 0o644))

	p, err := project.Load(dir, project.Overrides{Languages: []string{"b", "c"}})
	require.NoError(t, err)
	assert.True(t, p.HasUnknownLanguages())
	assert.Equal(t, []string{"a", "b", "c"}, p.GetUnknownLanguages())
}
