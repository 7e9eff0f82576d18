// Package filecache maps remote URLs to a stable on-disk path, downloading
// with progress reporting and honoring a force-refresh override.
package filecache

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ProgressFunc is called as bytes of a download arrive. total is 0 when the
// server did not report Content-Length. The default Cache uses a no-op so
// the core never depends on a terminal/progress-bar library itself; the CLI
// layer wires a real one.
type ProgressFunc func(relativePath string, read, total int64)

// Cache is a process-scoped file cache rooted at a base directory (by
// convention $HOME/.builder). It does no locking: concurrent Resolve calls
// for the same file, from one process or from several processes sharing the
// same base directory, can race on the same download.
type Cache struct {
	BaseDir      string
	ForceRefresh bool
	Progress     ProgressFunc

	client *http.Client
}

// New creates a Cache rooted at baseDir, creating it if necessary.
func New(baseDir string) (*Cache, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("filecache: could not create cache directory %s: %w", baseDir, err)
	}
	return &Cache{
		BaseDir:  baseDir,
		Progress: func(string, int64, int64) {},
		client:   &http.Client{},
	}, nil
}

// Resolve maps (url, relativePath) to an absolute local path, downloading
// the file if it is not already cached or ForceRefresh is set. optional
// controls behavior when the remote file does not exist: a 4xx status on
// the initial HEAD returns ("", nil) rather than an error.
func (c *Cache) Resolve(url string, relativePath string, optional bool) (string, error) {
	fullPath := filepath.Join(c.BaseDir, relativePath)

	if !c.ForceRefresh {
		if info, err := os.Stat(fullPath); err == nil && !info.IsDir() {
			return fullPath, nil
		}
	}

	exists, contentLength, err := c.checkExists(url, optional)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", nil
	}

	if err := c.download(url, fullPath, relativePath, contentLength); err != nil {
		return "", err
	}
	return fullPath, nil
}

func (c *Cache) checkExists(url string, optional bool) (exists bool, contentLength int64, err error) {
	resp, err := c.client.Head(url)
	if err != nil {
		return false, 0, fmt.Errorf("filecache: HEAD %s: %w", url, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if optional && resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return false, 0, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, 0, fmt.Errorf("filecache: HEAD %s: unexpected status %d", url, resp.StatusCode)
	}
	return true, resp.ContentLength, nil
}

func (c *Cache) download(url, fullPath, relativePath string, contentLength int64) error {
	resp, err := c.client.Get(url) //nolint:noctx
	if err != nil {
		return fmt.Errorf("filecache: GET %s: %w", url, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("filecache: GET %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("filecache: could not create directory for %s: %w", relativePath, err)
	}

	tmp := fullPath + ".download"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("filecache: could not create %s: %w", relativePath, err)
	}

	total := contentLength
	if total <= 0 && resp.ContentLength > 0 {
		total = resp.ContentLength
	}

	var read int64
	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				out.Close() //nolint:errcheck
				os.Remove(tmp) //nolint:errcheck
				return fmt.Errorf("filecache: could not write %s: %w", relativePath, writeErr)
			}
			read += int64(n)
			c.Progress(relativePath, read, total)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			out.Close() //nolint:errcheck
			os.Remove(tmp) //nolint:errcheck
			return fmt.Errorf("filecache: could not read response body for %s: %w", relativePath, readErr)
		}
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("filecache: could not write %s: %w", relativePath, err)
	}
	if err := os.Rename(tmp, fullPath); err != nil {
		return fmt.Errorf("filecache: could not finalize %s: %w", relativePath, err)
	}
	return nil
}
