package schema

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// FormatDef defines a custom format validation rule. Type, when non-empty,
// restricts the check to values of that JSON type (e.g. "string"); an empty
// Type applies to every type the format keyword is seen on.
type FormatDef struct {
	Type     string
	Validate func(any) bool
}

// Loader fetches the raw bytes of an externally $ref'd schema document.
type Loader func(url string) ([]byte, error)

// Compiler compiles schema documents into *Schema trees and caches them by
// URI so that an external document is fetched at most once regardless of
// how many schemas $ref it.
type Compiler struct {
	mu      sync.RWMutex
	schemas map[string]*Schema // keyed by absolute $id / fetch URL

	Loaders        map[string]Loader
	DefaultBaseURI string
	AssertFormat   bool

	customFormatsMu sync.RWMutex
	customFormats   map[string]*FormatDef

	extensionsMu sync.RWMutex
	// extensions are keyed by property name or JSON-pointer path; applied
	// after a successful object validation, per the validator's contract.
	extensions map[string]func(any) *EvaluationError

	fetchMu     sync.Mutex
	fetchCounts map[string]int
}

// NewCompiler returns a Compiler with the built-in HTTP(S) loader installed.
func NewCompiler() *Compiler {
	c := &Compiler{
		schemas:       make(map[string]*Schema),
		Loaders:       make(map[string]Loader),
		customFormats: make(map[string]*FormatDef),
		extensions:    make(map[string]func(any) *EvaluationError),
		fetchCounts:   make(map[string]int),
	}
	httpLoader := func(url string) ([]byte, error) {
		resp, err := http.Get(url) //nolint:gosec,noctx
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrExternalFetch, url, err)
		}
		defer resp.Body.Close() //nolint:errcheck
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: %s: status %d", ErrExternalFetch, url, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	c.Loaders["http"] = httpLoader
	c.Loaders["https"] = httpLoader
	return c
}

// RegisterFormat adds or replaces a format's validator.
func (c *Compiler) RegisterFormat(name string, def *FormatDef) {
	c.customFormatsMu.Lock()
	defer c.customFormatsMu.Unlock()
	c.customFormats[name] = def
}

// RegisterExtension adds a sub-validator applied, after a successful object
// validation, when the given property name or JSON-pointer path is present.
func (c *Compiler) RegisterExtension(pathOrProperty string, validate func(any) *EvaluationError) {
	c.extensionsMu.Lock()
	defer c.extensionsMu.Unlock()
	c.extensions[pathOrProperty] = validate
}

// Compile compiles a schema document and caches it. If uris[0] (or the
// document's own $id) is set, it becomes the cache key; compiling the same
// URI twice decodes the document again but returns the first compiled
// result.
func (c *Compiler) Compile(document []byte, uris ...string) (*Schema, error) {
	s, err := newSchema(document)
	if err != nil {
		return nil, err
	}

	uri := s.ID
	if uri == "" && len(uris) > 0 {
		uri = uris[0]
		s.ID = uri
	}

	if uri != "" {
		c.mu.RLock()
		existing, ok := c.schemas[uri]
		c.mu.RUnlock()
		if ok {
			return existing, nil
		}
	}

	base := c.DefaultBaseURI
	s.initialize(c, nil, nil, base)

	if err := s.validateRegexSyntax(); err != nil {
		return nil, err
	}

	if s.uri != "" {
		c.register(s.uri, s)
	} else if uri != "" {
		c.register(uri, s)
	}

	return s, nil
}

func (c *Compiler) register(uri string, s *Schema) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schemas[uri] = s
}

func (c *Compiler) lookup(uri string) (*Schema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.schemas[uri]
	return s, ok
}

// fetchExternal loads and compiles an external document by its base URL
// (without fragment), counting the fetch for callers (tests) asserting a
// document is fetched at most once.
func (c *Compiler) fetchExternal(baseURL string) (*Schema, error) {
	if cached, ok := c.lookup(baseURL); ok {
		return cached, nil
	}

	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()

	// Re-check under the fetch lock: another goroutine may have just compiled it.
	if cached, ok := c.lookup(baseURL); ok {
		return cached, nil
	}

	scheme := urlScheme(baseURL)
	loader, ok := c.Loaders[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoLoaderRegistered, scheme)
	}

	data, err := loader(baseURL)
	if err != nil {
		return nil, err
	}
	c.fetchCounts[baseURL]++

	return c.Compile(data, baseURL)
}

// FetchCount reports how many times an external URL's loader has actually
// been invoked; used by tests asserting refs are fetched at most once.
func (c *Compiler) FetchCount(url string) int {
	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()
	return c.fetchCounts[url]
}

func urlScheme(u string) string {
	if idx := strings.Index(u, "://"); idx >= 0 {
		return u[:idx]
	}
	return ""
}
