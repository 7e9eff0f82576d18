// Package project parses and validates the project descriptor (project.yaml),
// resolves its language backends, caches typed configuration sections, and
// resolves "${var}" substitutions through its content.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	goyaml "github.com/goccy/go-yaml"

	"github.com/kaptinlin/builder/dependency"
	"github.com/kaptinlin/builder/language"
)

// DescriptorFileName is the fixed name of a project's descriptor file.
const DescriptorFileName = "project.yaml"

// DefaultVersion is the version assigned to a project whose descriptor (or
// synthesized minimal info block) does not specify one.
const DefaultVersion = "0.0.1"

// Info is the descriptor's "info" block.
type Info struct {
	Name      string
	Title     string
	Version   string
	Languages []string
}

// Project is a loaded, validated, variable-substituted project descriptor.
type Project struct {
	directory string
	info      Info
	content   map[string]any
	vars      map[string]string

	dependencies *dependency.Set
	moduleSet    *language.ModuleSet
	unknown      []string

	configCache map[string]any
}

// Overrides carries the CLI-supplied values that shadow or extend the
// descriptor: extra languages (order-preserving, duplicate-free merge) and
// "name=value" variable assignments that take precedence over the
// descriptor's own vars section.
type Overrides struct {
	Languages []string
	Vars      map[string]string
}

// Directory returns the project's root directory.
func (p *Project) Directory() string { return p.directory }

// Name returns the project's name.
func (p *Project) Name() string { return p.info.Name }

// Version returns the project's version.
func (p *Project) Version() string { return p.info.Version }

// Description returns the project's name, plus " -- <title>" if it has one.
func (p *Project) Description() string {
	if p.info.Title == "" {
		return p.info.Name
	}
	return fmt.Sprintf("%s -- %s", p.info.Name, p.info.Title)
}

// HasNoLanguages reports whether zero languages were requested, from
// either the descriptor or CLI overrides. It does not check whether the
// requested languages are known.
func (p *Project) HasNoLanguages() bool {
	return len(p.info.Languages) == 0
}

// HasUnknownLanguages reports whether any requested language has no
// registered backend.
func (p *Project) HasUnknownLanguages() bool {
	return p.unknown != nil
}

// GetUnknownLanguages returns the requested languages with no registered
// backend, or nil if every requested language resolved.
func (p *Project) GetUnknownLanguages() []string {
	return p.unknown
}

// GetModuleSet returns the project's set of loaded language backends, or
// nil if any requested language was unknown.
func (p *Project) GetModuleSet() *language.ModuleSet {
	return p.moduleSet
}

// GetDependencies returns the project's dependency set.
func (p *Project) GetDependencies() *dependency.Set {
	return p.dependencies
}

// GetVarValue returns a descriptor-declared (or CLI-overridden) variable's
// value, and whether it was found. Values set only via --set but not
// referenced by the descriptor are still visible here.
func (p *Project) GetVarValue(name string) (string, bool) {
	v, ok := p.vars[name]
	return v, ok
}

// ProjectDir resolves rel against the project root. If ensure is set and
// the resulting path is not a directory, it (and its parents) are created
// first; if required is set and the path is still not a directory
// afterward, an error is returned.
func (p *Project) ProjectDir(rel string, required, ensure bool) (string, error) {
	dir := filepath.Join(p.directory, rel)

	if ensure {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("project: could not create directory %s: %w", dir, err)
			}
		}
	}
	if required {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return "", fmt.Errorf("project: required directory %s does not exist or is not a directory", dir)
		}
	}
	return dir, nil
}

// GetConfig looks up a named top-level configuration section, validating
// it against schema (if given) and passing it to constructor (if given) on
// first access; subsequent calls for the same name return the cached
// value.
func (p *Project) GetConfig(name string, validate func(map[string]any) error, constructor func(map[string]any) (any, error)) (any, error) {
	if cached, ok := p.configCache[name]; ok {
		return cached, nil
	}

	raw, _ := p.content[name].(map[string]any)
	if raw == nil {
		raw = map[string]any{}
	}

	if validate != nil {
		if err := validate(raw); err != nil {
			return nil, fmt.Errorf("configuration for %q is not valid: %w", name, err)
		}
	}

	var result any = raw
	if constructor != nil {
		built, err := constructor(raw)
		if err != nil {
			return nil, err
		}
		result = built
	}

	p.configCache[name] = result
	return result, nil
}

// Load reads and parses the project.yaml at directory, if present,
// otherwise synthesizes a minimal descriptor from directory alone.
func Load(directory string, overrides Overrides) (*Project, error) {
	descriptorPath := filepath.Join(directory, DescriptorFileName)

	if _, err := os.Stat(descriptorPath); err == nil {
		return loadFromFile(directory, descriptorPath, overrides)
	}
	return loadFromDir(directory, overrides)
}

func loadFromFile(directory, path string, overrides Overrides) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: could not read %s: %w", path, err)
	}

	var content map[string]any
	if err := goyaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("project: could not parse %s: %w", path, err)
	}
	if content == nil {
		content = map[string]any{}
	}

	result := descriptorSchema.Validate(content)
	if !result.Ok() {
		return nil, fmt.Errorf("bad project file format: %s", result.Error())
	}

	depOrder, err := orderedDependencyKeys(data)
	if err != nil {
		return nil, fmt.Errorf("project: could not parse %s: %w", path, err)
	}

	return newProject(directory, content, depOrder, overrides)
}

func loadFromDir(directory string, overrides Overrides) (*Project, error) {
	content := map[string]any{
		"info": map[string]any{},
	}
	return newProject(directory, content, nil, overrides)
}

func newProject(directory string, content map[string]any, depOrder []string, overrides Overrides) (*Project, error) {
	info, _ := content["info"].(map[string]any)
	if info == nil {
		info = map[string]any{}
	}

	name, _ := info["name"].(string)
	if name == "" {
		name = filepath.Base(directory)
	}
	version, _ := info["version"].(string)
	if version == "" {
		version = DefaultVersion
	}
	title, _ := info["title"].(string)

	languages := normalizeLanguages(info["languages"], overrides.Languages)

	vars := map[string]string{}
	if rawVars, ok := content["vars"].(map[string]any); ok {
		for k, v := range rawVars {
			if s, ok := v.(string); ok {
				vars[k] = s
			}
		}
	}
	for k, v := range overrides.Vars {
		vars[k] = v
	}
	content["vars"] = toAnyMap(vars)

	substituteVars(content, vars)

	depsContent, _ := content["dependencies"].(map[string]any)
	entries := buildDependencyEntries(depsContent, depOrder)
	depSet, err := dependency.NewSet(entries)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}

	p := &Project{
		directory:    directory,
		content:      content,
		vars:         vars,
		dependencies: depSet,
		configCache:  map[string]any{},
		info: Info{
			Name: name, Title: title, Version: version, Languages: languages,
		},
	}

	p.loadModuleSet()

	return p, nil
}

func (p *Project) loadModuleSet() {
	modules := map[string]*language.Language{}
	var unknown []string

	for _, tag := range p.info.Languages {
		lang, ok := language.LoadLanguage(tag)
		if !ok {
			unknown = append(unknown, tag)
			continue
		}
		modules[tag] = lang
	}

	if unknown != nil {
		p.unknown = unknown
		return
	}
	p.moduleSet = language.NewModuleSet(p.info.Languages, modules)
}

func normalizeLanguages(raw any, extra []string) []string {
	var languages []string
	switch v := raw.(type) {
	case string:
		languages = []string{v}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				languages = append(languages, s)
			}
		}
	}

	seen := map[string]bool{}
	for _, l := range languages {
		seen[l] = true
	}
	for _, l := range extra {
		if !seen[l] {
			languages = append(languages, l)
			seen[l] = true
		}
	}
	return languages
}

func buildDependencyEntries(raw map[string]any, order []string) []dependency.Entry {
	if raw == nil {
		return nil
	}

	var entries []dependency.Entry
	seen := map[string]bool{}
	for _, key := range order {
		if v, ok := raw[key]; ok {
			entries = append(entries, dependency.Entry{Key: key, Raw: v})
			seen[key] = true
		}
	}
	// Any key missed by the ordered pass (e.g. a minimal descriptor with no
	// YAML source to derive order from) is appended in map iteration order.
	for key, v := range raw {
		if !seen[key] {
			entries = append(entries, dependency.Entry{Key: key, Raw: v})
		}
	}
	return entries
}

func toAnyMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// orderedDependencyKeys decodes just the "dependencies" top-level mapping
// as an ordered sequence of keys, preserving descriptor insertion order
// (which plain map[string]any decoding loses) for DependencySet iteration.
func orderedDependencyKeys(data []byte) ([]string, error) {
	var wrapper struct {
		Dependencies goyaml.MapSlice `yaml:"dependencies"`
	}
	if err := goyaml.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(wrapper.Dependencies))
	for _, item := range wrapper.Dependencies {
		if k, ok := item.Key.(string); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
