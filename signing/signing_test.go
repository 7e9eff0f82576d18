package signing_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/builder/signing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSignIsStableAcrossAlgorithms(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "artifact.jar", "hello world")

	digests, err := signing.Sign(path)
	require.NoError(t, err)
	for _, alg := range signing.Algorithms {
		assert.NotEmpty(t, digests[alg], "missing digest for %s", alg)
	}
}

func TestSignToFilesWritesSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "artifact.jar", "hello world")

	require.NoError(t, signing.SignToFiles(path))
	for _, alg := range signing.Algorithms {
		content, err := os.ReadFile(path + "." + alg)
		require.NoError(t, err)
		assert.NotEmpty(t, string(content))
	}
}

func TestVerifyEmptyMapBypasses(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "artifact.jar", "hello world")

	ok, err := signing.Verify(path, map[string]string{}, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyShortCircuitsOnFirstMatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "artifact.jar", "hello world")
	digests, err := signing.Sign(path)
	require.NoError(t, err)

	fetchCalled := false
	fetch := func(name string) (string, error) {
		fetchCalled = true
		return "", nil
	}

	ok, err := signing.Verify(path, map[string]string{
		"sha512": digests["sha512"],
		"md5":    "deadbeef",
	}, fetch)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, fetchCalled, "sha512 matched first; md5 reference should never be consulted")
}

func TestVerifyFailsWhenNoAlgorithmMatches(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "artifact.jar", "hello world")

	ok, err := signing.Verify(path, map[string]string{"sha1": "deadbeef"}, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyUsesFetchWhenSignaturesNil(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "artifact.jar", "hello world")
	digests, err := signing.Sign(path)
	require.NoError(t, err)

	fetch := func(name string) (string, error) {
		if name == "artifact.jar.sha256" {
			return digests["sha256"], nil
		}
		return "", nil
	}

	ok, err := signing.Verify(path, nil, fetch)
	require.NoError(t, err)
	assert.True(t, ok)
}
