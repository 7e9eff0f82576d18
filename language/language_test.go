package language_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/builder/language"
)

func TestRegisterAndLoadLanguage(t *testing.T) {
	language.Register("test-lang-registry", func(l *language.Language) {
		l.Tasks = append(l.Tasks, &language.Task{Name: "build", HelpText: "builds the thing"})
	})

	lang, ok := language.LoadLanguage("test-lang-registry")
	require.True(t, ok)
	require.NotNil(t, lang.GetTask("build"))
	assert.Equal(t, "test-lang-registry", lang.Tag)
}

func TestLoadLanguageUnknownTagIsNotFatal(t *testing.T) {
	_, ok := language.LoadLanguage("no-such-language-backend")
	assert.False(t, ok)
}
