package schema

import "strings"

// Validate checks value against the schema. path, when given, is the
// JSON-pointer the caller's value is already nested under (callers normally
// pass nothing and get "" — the validator extends it during recursion into
// properties/items/etc). The returned Result is never nil.
func (s *Schema) Validate(value any, path ...string) *Result {
	p := ""
	if len(path) > 0 {
		p = path[0]
	}
	if s == nil {
		return ok()
	}
	if err := s.validateAt(value, p); err != nil {
		return fail(err)
	}
	return ok()
}

func (s *Schema) validateAt(value any, path string) *EvaluationError {
	if s.boolSchema != nil {
		if *s.boolSchema {
			return nil
		}
		return NewEvaluationError("false", "schema_false", "no value is allowed here").withPath(path)
	}

	if s.Ref != "" {
		target, err := s.resolveRef()
		if err != nil {
			return NewEvaluationError("$ref", "ref_unresolved", "could not resolve $ref {ref}: {err}",
				map[string]any{"ref": s.Ref, "err": err.Error()}).withPath(path)
		}
		return target.validateAt(value, path)
	}

	for _, check := range []func(*Schema, any, string) *EvaluationError{
		evaluateType,
		evaluateEnum,
		evaluateConst,
		evaluateMinLength,
		evaluateMaxLength,
		evaluatePattern,
		evaluateFormat,
		evaluateMinimum,
		evaluateMaximum,
		evaluateExclusiveMinimum,
		evaluateExclusiveMaximum,
		evaluateMultipleOf,
		evaluateProperties,
		evaluatePatternProperties,
		evaluateAdditionalProperties,
		evaluateRequired,
		evaluatePropertyNames,
		evaluateMinProperties,
		evaluateMaxProperties,
		evaluateDependencies,
		evaluateItems,
		evaluateContains,
		evaluateMinItems,
		evaluateMaxItems,
		evaluateUniqueItems,
		evaluateAllOf,
		evaluateAnyOf,
		evaluateOneOf,
		evaluateNot,
		evaluateConditional,
	} {
		if err := check(s, value, path); err != nil {
			return err
		}
	}

	if err := s.evaluateExtension(value, path); err != nil {
		return err
	}

	return nil
}

func (e *EvaluationError) withPath(path string) *EvaluationError {
	e.Path = path
	return e
}

func childPath(path string, token string) string {
	return path + "/" + escapePointerToken(token)
}

func escapePointerToken(tok string) string {
	out := make([]byte, 0, len(tok))
	for i := 0; i < len(tok); i++ {
		switch tok[i] {
		case '~':
			out = append(out, '~', '0')
		case '/':
			out = append(out, '~', '1')
		default:
			out = append(out, tok[i])
		}
	}
	return string(out)
}

// evaluateExtension applies a compiler-registered extension validator keyed
// by this node's own path or, failing that, by the property name the node
// sits under (the last token of its path), after every built-in constraint
// passed.
func (s *Schema) evaluateExtension(value any, path string) *EvaluationError {
	if s.compiler == nil {
		return nil
	}
	s.compiler.extensionsMu.RLock()
	validate, ok := s.compiler.extensions[path]
	if !ok && path != "" {
		name := path[strings.LastIndexByte(path, '/')+1:]
		name = strings.NewReplacer("~1", "/", "~0", "~").Replace(name)
		validate, ok = s.compiler.extensions[name]
	}
	s.compiler.extensionsMu.RUnlock()
	if !ok {
		return nil
	}
	if err := validate(value); err != nil {
		return err.withPath(path)
	}
	return nil
}
