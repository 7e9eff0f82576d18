package project

// Conflict describes how a version conflict for one dependency should be
// handled: fail the run, or prefer the newer/older of the two versions,
// optionally with a warning. Construction and storage are preserved from
// the original configuration format; nothing in the core resolution path
// (resolve.Context.Resolve always treats a conflict as fatal) consults
// these yet — they exist for a language backend to opt into if it wants
// to relax the default.
type Conflict struct {
	Action string // "error", "newer", or "older"
	Warn   bool
}

// ErrorOut reports whether this conflict's action is to fail the run.
func (c Conflict) ErrorOut() bool { return c.Action == "" || c.Action == "error" }

// UseNewer reports whether this conflict prefers the newer version.
func (c Conflict) UseNewer() bool { return c.Action == "newer" }

// UseOlder reports whether this conflict prefers the older version.
func (c Conflict) UseOlder() bool { return c.Action == "older" }

func newConflict(data map[string]any) Conflict {
	action, _ := data["action"].(string)
	if action == "" {
		action = "error"
	}
	warn, _ := data["warn"].(bool)
	return Conflict{Action: action, Warn: warn}
}

// ConflictSet maps a dependency ID to its configured Conflict handling.
type ConflictSet struct {
	byID          map[string]Conflict
	newerWithWarn Conflict
	errorConflict Conflict
}

func newConflictSet(data map[string]any) ConflictSet {
	byID := map[string]Conflict{}
	for key, v := range data {
		if m, ok := v.(map[string]any); ok {
			byID[key] = newConflict(m)
		}
	}
	return ConflictSet{
		byID:          byID,
		newerWithWarn: Conflict{Action: "newer", Warn: true},
		errorConflict: Conflict{Action: "error"},
	}
}

// GetConflict returns the configured Conflict for dependencyID, or a
// default (error, or newer-with-warning) when none was configured.
func (cs ConflictSet) GetConflict(dependencyID string, errorDefault bool) Conflict {
	if c, ok := cs.byID[dependencyID]; ok {
		return c
	}
	if errorDefault {
		return cs.errorConflict
	}
	return cs.newerWithWarn
}

// FileCondition describes how signature verification failures for one
// cached file should be handled: ignored, warned about, or (the default)
// treated as an error. Preserved from the original configuration format;
// not yet consumed by any core flow (see ConflictSet's doc comment — same
// reasoning applies here).
type FileCondition struct {
	Signature string // "ignore", "warn", or "error"
}

// IgnoreSignature reports whether signature verification should be
// skipped entirely for the related file.
func (f FileCondition) IgnoreSignature() bool { return f.Signature == "ignore" }

// WarnOnBadSignature reports whether a failed verification should only
// warn rather than abort the run.
func (f FileCondition) WarnOnBadSignature() bool { return f.Signature == "warn" }

func newFileCondition(data map[string]any) FileCondition {
	signature, _ := data["signature"].(string)
	if signature == "" {
		signature = "error"
	}
	return FileCondition{Signature: signature}
}

// Configuration holds the conflict-handling and file-condition rules a
// language backend's section of the project descriptor may declare,
// alongside the project's local dependency search paths.
type Configuration struct {
	Conflicts        ConflictSet
	LocalPaths       []string
	fileConditions   map[string]FileCondition
	defaultCondition FileCondition
}

// NewConfiguration builds a Configuration from a language-config section's
// raw content and the project's configured local paths.
func NewConfiguration(source map[string]any, localPaths []string) Configuration {
	conflicts, _ := source["conflicts"].(map[string]any)
	cfg := Configuration{
		Conflicts:        newConflictSet(conflicts),
		LocalPaths:       localPaths,
		fileConditions:   map[string]FileCondition{},
		defaultCondition: newFileCondition(map[string]any{}),
	}

	if conditions, ok := source["conditions"].(map[string]any); ok {
		if files, ok := conditions["files"].(map[string]any); ok {
			for name, v := range files {
				if m, ok := v.(map[string]any); ok {
					cfg.fileConditions[name] = newFileCondition(m)
				}
			}
		}
	}

	return cfg
}

// GetFileCondition returns the configured condition for the named file,
// or the default (treat as error) if none was configured.
func (c Configuration) GetFileCondition(name string) FileCondition {
	if fc, ok := c.fileConditions[name]; ok {
		return fc
	}
	return c.defaultCondition
}
