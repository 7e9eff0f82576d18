package filecache_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/builder/filecache"
)

func newCache(t *testing.T) *filecache.Cache {
	t.Helper()
	c, err := filecache.New(t.TempDir())
	require.NoError(t, err)
	return c
}

func TestResolveDownloadsOnMiss(t *testing.T) {
	var heads, gets int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			heads++
			w.Header().Set("Content-Length", "5")
		case http.MethodGet:
			gets++
			fmt.Fprint(w, "hello")
		}
	}))
	defer srv.Close()

	c := newCache(t)
	path, err := c.Resolve(srv.URL+"/a.jar", "group/a.jar", false)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
	assert.Equal(t, 1, heads)
	assert.Equal(t, 1, gets)
}

func TestResolveCacheHitSkipsNetwork(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, "hello")
	}))
	defer srv.Close()

	c := newCache(t)
	require.NoError(t, os.MkdirAll(filepath.Join(c.BaseDir, "group"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(c.BaseDir, "group", "a.jar"), []byte("cached"), 0o644))

	path, err := c.Resolve(srv.URL+"/a.jar", "group/a.jar", false)
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cached", string(content))
	assert.Zero(t, requests)
}

func TestResolveForceRefreshRefetches(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, "fresh")
	}))
	defer srv.Close()

	c := newCache(t)
	c.ForceRefresh = true
	require.NoError(t, os.MkdirAll(filepath.Join(c.BaseDir, "group"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(c.BaseDir, "group", "a.jar"), []byte("stale"), 0o644))

	path, err := c.Resolve(srv.URL+"/a.jar", "group/a.jar", false)
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(content))
	assert.Equal(t, 2, requests) // HEAD + GET
}

func TestResolveOptionalMissingReturnsNone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newCache(t)
	path, err := c.Resolve(srv.URL+"/missing.jar", "group/missing.jar", true)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestResolveRequiredMissingErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newCache(t)
	_, err := c.Resolve(srv.URL+"/missing.jar", "group/missing.jar", false)
	assert.Error(t, err)
}
