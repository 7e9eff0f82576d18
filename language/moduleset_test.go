package language_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/builder/language"
)

func taskNamed(name string) *language.Task {
	return &language.Task{Name: name}
}

func TestAmbiguityRewrite(t *testing.T) {
	l1 := &language.Language{Tag: "L1", Tasks: []*language.Task{
		taskNamed("t1"), taskNamed("t2"), taskNamed("t3"),
	}}
	l2 := &language.Language{Tag: "L2", Tasks: []*language.Task{
		taskNamed("t3"), taskNamed("t4"), taskNamed("t5"),
	}}

	ms := language.NewModuleSet([]string{"L1", "L2"}, map[string]*language.Language{"L1": l1, "L2": l2})

	assertNameUnchanged := func(lang *language.Language, name string) {
		t.Helper()
		assert.NotNil(t, lang.GetTask(name))
	}
	assertNameUnchanged(l1, "t1")
	assertNameUnchanged(l1, "t2")
	assertNameUnchanged(l2, "t4")
	assertNameUnchanged(l2, "t5")

	assert.Nil(t, l1.GetTask("t3"))
	assert.Nil(t, l2.GetTask("t3"))
	assert.NotNil(t, l1.GetTask("L1::t3"))
	assert.NotNil(t, l2.GetTask("L2::t3"))

	_, _, err := ms.GetTask("t3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	lang, task, err := ms.GetTask("L1::t3")
	require.NoError(t, err)
	assert.Equal(t, l1, lang)
	assert.Equal(t, "L1::t3", task.Name)

	lang, task, err = ms.GetTask("t1")
	require.NoError(t, err)
	assert.Equal(t, l1, lang)
	assert.Equal(t, "t1", task.Name)
}

func TestGetTaskNotDefined(t *testing.T) {
	l1 := &language.Language{Tag: "L1", Tasks: []*language.Task{taskNamed("build")}}
	ms := language.NewModuleSet([]string{"L1"}, map[string]*language.Language{"L1": l1})

	_, _, err := ms.GetTask("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not defined")
}

func TestParseTaskRef(t *testing.T) {
	tag, name, err := language.ParseTaskRef("L1::build")
	require.NoError(t, err)
	assert.Equal(t, "L1", tag)
	assert.Equal(t, "build", name)

	tag, name, err = language.ParseTaskRef("::build")
	require.NoError(t, err)
	assert.Equal(t, "", tag)
	assert.Equal(t, "build", name)

	tag, name, err = language.ParseTaskRef("build")
	require.NoError(t, err)
	assert.Equal(t, "", tag)
	assert.Equal(t, "build", name)

	_, _, err = language.ParseTaskRef("not a valid ref!")
	assert.Error(t, err)
}
